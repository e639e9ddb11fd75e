package printer

import (
	"github.com/T-Brick/parse-sml/internal/pkg/ast"
	"github.com/T-Brick/parse-sml/internal/pkg/ast/parsed"
	"github.com/T-Brick/parse-sml/internal/pkg/doc"
)

func topDecDoc(d parsed.TopDec) doc.Doc {
	switch n := d.(type) {
	case *parsed.TopDecStr:
		return strDecDoc(n.Dec)
	case *parsed.TopDecSig:
		return sigDecDoc(&n.Dec)
	case *parsed.TopDecFct:
		return fctDecDoc(&n.Dec)
	}
	return placeholder()
}

func strDecDoc(d parsed.StrDec) doc.Doc {
	switch n := d.(type) {
	case *parsed.StrDecCore:
		return decDoc(n.Dec)
	case *parsed.StrDecStructure:
		return strBindsDoc(n)
	case *parsed.StrDecLocal:
		out := doc.Above(tok(n.LocalTok), doc.Indent(strDecDoc(n.LocalDec)))
		out = doc.Above(out, tok(n.InTok))
		out = doc.Above(out, doc.Indent(strDecDoc(n.BodyDec)))
		return doc.Above(out, tok(n.EndTok))
	case *parsed.StrDecMultiple:
		return multiDoc(len(n.Decs), n.Semis, func(i int) doc.Doc { return strDecDoc(n.Decs[i]) })
	case *parsed.StrDecEmpty:
		return doc.Empty()
	}
	return placeholder()
}

func strBindsDoc(n *parsed.StrDecStructure) doc.Doc {
	var out doc.Doc
	for i, bind := range n.Binds {
		head := tok(n.Tok)
		if i > 0 {
			head = tok(n.Ands[i-1])
		}
		parts := []doc.Doc{head, tok(bind.Name)}
		if bind.Constraint != nil {
			parts = append(parts, tok(bind.Constraint.Colon), sigExpDoc(bind.Constraint.Sig))
		}
		parts = append(parts, tok(bind.Eq))
		bindDoc := bindWithStrBody(sp(parts...), bind.Str)
		if i == 0 {
			out = bindDoc
		} else {
			out = doc.Above(out, bindDoc)
		}
	}
	return out
}

// bindWithStrBody places struct ... end and let ... end bodies on
// their own line at the binding's indentation; anything else follows
// the group-then-indent shape.
func bindWithStrBody(header doc.Doc, body parsed.StrExp) doc.Doc {
	switch body.(type) {
	case *parsed.StrStruct, *parsed.StrLet:
		return doc.Above(header, strExpDoc(body))
	}
	return headerBody(header, strExpDoc(body))
}

func strExpDoc(s parsed.StrExp) doc.Doc {
	switch n := s.(type) {
	case *parsed.StrId:
		return longIdDoc(n.Id)
	case *parsed.StrStruct:
		out := doc.Above(tok(n.StructTok), doc.Indent(strDecDoc(n.Dec)))
		return doc.Above(out, tok(n.EndTok))
	case *parsed.StrConstraint:
		return doc.Group(doc.AboveOrSpace(strExpDoc(n.Str), sp(tok(n.Colon), sigExpDoc(n.Sig))))
	case *parsed.StrFunApp:
		var arg doc.Doc
		if n.ArgStr != nil {
			arg = strExpDoc(n.ArgStr)
		} else {
			arg = strDecDoc(n.ArgDec)
		}
		return doc.Beside(tok(n.Name), tok(n.Left), arg, tok(n.Right))
	case *parsed.StrLet:
		out := doc.Above(tok(n.LetTok), doc.Indent(strDecDoc(n.Dec)))
		out = doc.Above(out, tok(n.InTok))
		out = doc.Above(out, doc.Indent(strExpDoc(n.Str)))
		return doc.Above(out, tok(n.EndTok))
	}
	return placeholder()
}

func sigDecDoc(n *parsed.SigDec) doc.Doc {
	var out doc.Doc
	for i, bind := range n.Binds {
		head := tok(n.SignatureTok)
		if i > 0 {
			head = tok(n.Ands[i-1])
		}
		header := sp(head, tok(bind.Name), tok(bind.Eq))
		var bindDoc doc.Doc
		if isSigSpec(bind.Sig) {
			bindDoc = doc.Above(header, sigExpDoc(bind.Sig))
		} else {
			bindDoc = headerBody(header, sigExpDoc(bind.Sig))
		}
		if i == 0 {
			out = bindDoc
		} else {
			out = doc.Above(out, bindDoc)
		}
	}
	return out
}

func isSigSpec(s parsed.SigExp) bool {
	switch n := s.(type) {
	case *parsed.SigSpec:
		return true
	case *parsed.SigWhere:
		return isSigSpec(n.Sig)
	}
	return false
}

func sigExpDoc(s parsed.SigExp) doc.Doc {
	switch n := s.(type) {
	case *parsed.SigId:
		return tok(n.Tok)
	case *parsed.SigSpec:
		out := doc.Above(tok(n.SigTok), doc.Indent(specDoc(n.Spec)))
		return doc.Above(out, tok(n.EndTok))
	case *parsed.SigWhere:
		out := sigExpDoc(n.Sig)
		for _, clause := range n.Refinements {
			parts := []doc.Doc{tok(clause.WhereTok), tok(clause.TypeTok)}
			if tv, ok := tyVarSeqDoc(clause.TyVars); ok {
				parts = append(parts, tv)
			}
			parts = append(parts, longIdDoc(clause.Id), tok(clause.Eq), tyDoc(clause.Ty))
			out = doc.Group(doc.AboveOrSpace(out, sp(parts...)))
		}
		return out
	}
	return placeholder()
}

func specDoc(s parsed.Spec) doc.Doc {
	switch n := s.(type) {
	case *parsed.SpecVal:
		var out doc.Doc
		for i, bind := range n.Binds {
			head := tok(n.ValTok)
			if i > 0 {
				head = tok(n.Ands[i-1])
			}
			bindDoc := headerBody(sp(head, tok(bind.Name), tok(bind.Colon)), tyDoc(bind.Ty))
			if i == 0 {
				out = bindDoc
			} else {
				out = doc.Above(out, bindDoc)
			}
		}
		return out

	case *parsed.SpecType:
		var out doc.Doc
		for i, bind := range n.Binds {
			head := tok(n.Tok)
			if i > 0 {
				head = tok(n.Ands[i-1])
			}
			parts := []doc.Doc{head}
			if tv, ok := tyVarSeqDoc(bind.TyVars); ok {
				parts = append(parts, tv)
			}
			parts = append(parts, tok(bind.Name))
			var bindDoc doc.Doc
			if bind.Eq != nil {
				bindDoc = headerBody(sp(append(parts, tok(*bind.Eq))...), tyDoc(bind.Ty))
			} else {
				bindDoc = sp(parts...)
			}
			if i == 0 {
				out = bindDoc
			} else {
				out = doc.Above(out, bindDoc)
			}
		}
		return out

	case *parsed.SpecDatatype:
		return datBindsDoc(n.DatatypeTok, n.Binds, n.Ands)

	case *parsed.SpecReplicateDatatype:
		return sp(tok(n.LeftTok), tok(n.Name), tok(n.Eq), tok(n.RightTok), longIdDoc(n.Id))

	case *parsed.SpecException:
		var out doc.Doc
		for i, bind := range n.Binds {
			head := tok(n.Tok)
			if i > 0 {
				head = tok(n.Ands[i-1])
			}
			bindDoc := sp(head, conBindDoc(bind))
			if i == 0 {
				out = bindDoc
			} else {
				out = doc.Above(out, bindDoc)
			}
		}
		return out

	case *parsed.SpecStructure:
		var out doc.Doc
		for i, bind := range n.Binds {
			head := tok(n.Tok)
			if i > 0 {
				head = tok(n.Ands[i-1])
			}
			header := sp(head, tok(bind.Name), tok(bind.Colon))
			var bindDoc doc.Doc
			if isSigSpec(bind.Sig) {
				bindDoc = doc.Above(header, sigExpDoc(bind.Sig))
			} else {
				bindDoc = headerBody(header, sigExpDoc(bind.Sig))
			}
			if i == 0 {
				out = bindDoc
			} else {
				out = doc.Above(out, bindDoc)
			}
		}
		return out

	case *parsed.SpecInclude:
		parts := []doc.Doc{tok(n.Tok)}
		for _, sig := range n.Sigs {
			parts = append(parts, sigExpDoc(sig))
		}
		return sp(parts...)

	case *parsed.SpecSharingType:
		parts := []doc.Doc{tok(n.SharingTok), tok(n.TypeTok)}
		parts = append(parts, sharingPathDocs(n.Paths, n.Eqs)...)
		return sp(parts...)

	case *parsed.SpecSharing:
		parts := []doc.Doc{tok(n.SharingTok)}
		parts = append(parts, sharingPathDocs(n.Paths, n.Eqs)...)
		return sp(parts...)

	case *parsed.SpecMultiple:
		return multiDoc(len(n.Specs), n.Semis, func(i int) doc.Doc { return specDoc(n.Specs[i]) })

	case *parsed.SpecEmpty:
		return doc.Empty()
	}
	return placeholder()
}

func sharingPathDocs(paths []parsed.LongId, eqs []ast.Token) []doc.Doc {
	var parts []doc.Doc
	for i, path := range paths {
		if i > 0 {
			parts = append(parts, tok(eqs[i-1]))
		}
		parts = append(parts, longIdDoc(path))
	}
	return parts
}

func fctDecDoc(n *parsed.FctDec) doc.Doc {
	var out doc.Doc
	for i, bind := range n.Binds {
		head := tok(n.FunctorTok)
		if i > 0 {
			head = tok(n.Ands[i-1])
		}
		var param doc.Doc
		switch p := bind.Param.(type) {
		case *parsed.FctParamStructure:
			param = sp(tok(p.Name), tok(p.Colon), sigExpDoc(p.Sig))
		case *parsed.FctParamSpec:
			param = specDoc(p.Spec)
		default:
			param = placeholder()
		}
		parts := []doc.Doc{head, doc.Beside(tok(bind.Name), doc.Space(),
			tok(bind.Left), param, tok(bind.Right))}
		if bind.Constraint != nil {
			parts = append(parts, tok(bind.Constraint.Colon), sigExpDoc(bind.Constraint.Sig))
		}
		parts = append(parts, tok(bind.Eq))
		bindDoc := bindWithStrBody(sp(parts...), bind.Body)
		if i == 0 {
			out = bindDoc
		} else {
			out = doc.Above(out, bindDoc)
		}
	}
	return out
}
