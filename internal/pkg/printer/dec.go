package printer

import (
	"github.com/T-Brick/parse-sml/internal/pkg/ast"
	"github.com/T-Brick/parse-sml/internal/pkg/ast/parsed"
	"github.com/T-Brick/parse-sml/internal/pkg/doc"
)

func decDoc(d parsed.Dec) doc.Doc {
	switch n := d.(type) {
	case *parsed.DecVal:
		return decValDoc(n)
	case *parsed.DecFun:
		return decFunDoc(n)
	case *parsed.DecType:
		return tyBindsDoc(n.TypeTok, n.Binds, n.Ands)
	case *parsed.DecDatatype:
		out := datBindsDoc(n.DatatypeTok, n.Binds, n.Ands)
		if n.Withtype != nil {
			out = doc.Above(out, tyBindsDoc(n.Withtype.Tok, n.Withtype.Binds, n.Withtype.Ands))
		}
		return out
	case *parsed.DecReplicateDatatype:
		return sp(tok(n.LeftTok), tok(n.Name), tok(n.Eq), tok(n.RightTok), longIdDoc(n.Id))
	case *parsed.DecAbstype:
		return decAbstypeDoc(n)
	case *parsed.DecException:
		return decExceptionDoc(n)
	case *parsed.DecLocal:
		out := doc.Above(tok(n.LocalTok), doc.Indent(decDoc(n.LocalDec)))
		out = doc.Above(out, tok(n.InTok))
		out = doc.Above(out, doc.Indent(decDoc(n.BodyDec)))
		return doc.Above(out, tok(n.EndTok))
	case *parsed.DecOpen:
		parts := []doc.Doc{tok(n.Tok)}
		for _, id := range n.Ids {
			parts = append(parts, longIdDoc(id))
		}
		return sp(parts...)
	case *parsed.DecFixity:
		parts := []doc.Doc{tok(n.Tok)}
		if n.Precedence != nil {
			parts = append(parts, tok(*n.Precedence))
		}
		for _, id := range n.Ids {
			parts = append(parts, tok(id))
		}
		return sp(parts...)
	case *parsed.DecMultiple:
		return multiDoc(len(n.Decs), n.Semis, func(i int) doc.Doc { return decDoc(n.Decs[i]) })
	case *parsed.DecEmpty:
		return doc.Empty()
	}
	return placeholder()
}

// multiDoc chains a declaration sequence vertically, attaching each
// optional semicolon to the end of its declaration.
func multiDoc(count int, semis []*ast.Token, at func(int) doc.Doc) doc.Doc {
	var out doc.Doc
	for i := 0; i < count; i++ {
		d := at(i)
		if semis[i] != nil {
			d = doc.Beside(d, tok(*semis[i]))
		}
		if i == 0 {
			out = d
		} else {
			out = doc.Above(out, d)
		}
	}
	return out
}

func decValDoc(n *parsed.DecVal) doc.Doc {
	var out doc.Doc
	for i, bind := range n.Binds {
		parts := []doc.Doc{}
		if i == 0 {
			parts = append(parts, tok(n.ValTok))
			if tv, ok := tyVarSeqDoc(n.TyVars); ok {
				parts = append(parts, tv)
			}
			if n.RecTok != nil {
				parts = append(parts, tok(*n.RecTok))
			}
		} else {
			parts = append(parts, tok(n.Ands[i-1]))
		}
		parts = append(parts, patDoc(bind.Pat), tok(bind.Eq))
		bindDoc := headerBody(sp(parts...), expDoc(bind.Exp))
		if i == 0 {
			out = bindDoc
		} else {
			out = doc.Above(out, bindDoc)
		}
	}
	return out
}

func decFunDoc(n *parsed.DecFun) doc.Doc {
	var out doc.Doc
	for i, bind := range n.Binds {
		var lead doc.Doc
		if i == 0 {
			lead = tok(n.FunTok)
			if tv, ok := tyVarSeqDoc(n.TyVars); ok {
				lead = sp(lead, tv)
			}
		} else {
			lead = tok(n.Ands[i-1])
		}
		bindDoc := doc.Beside(lead, doc.Space(), funBindDoc(bind))
		if i == 0 {
			out = bindDoc
		} else {
			out = doc.Above(out, bindDoc)
		}
	}
	return out
}

func funBindDoc(bind parsed.FunBind) doc.Doc {
	out := funClauseDoc(bind.Clauses[0])
	for i := 1; i < len(bind.Clauses); i++ {
		continuation := sp(tok(bind.Bars[i-1]), funClauseDoc(bind.Clauses[i]))
		out = doc.Above(out, doc.Indent(continuation))
	}
	return out
}

func funClauseDoc(clause parsed.FunClause) doc.Doc {
	var parts []doc.Doc
	switch c := clause.(type) {
	case *parsed.FunClausePrefix:
		if c.Op != nil {
			parts = append(parts, tok(*c.Op))
		}
		parts = append(parts, tok(c.Name))
		for _, arg := range c.Args {
			parts = append(parts, atomPatDoc(arg))
		}
	case *parsed.FunClauseInfix:
		parts = append(parts, atomPatDoc(c.Left), tok(c.Name), atomPatDoc(c.Right))
	case *parsed.FunClauseCurriedInfix:
		head := doc.Beside(tok(c.LParen),
			sp(atomPatDoc(c.Left), tok(c.Name), atomPatDoc(c.Right)), tok(c.RParen))
		parts = append(parts, head)
		for _, arg := range c.Args {
			parts = append(parts, atomPatDoc(arg))
		}
	default:
		return placeholder()
	}
	if colon, ty := clause.ResultTy(); colon != nil {
		parts = append(parts, tok(*colon), tyDoc(ty))
	}
	eq, body := clause.ClauseBody()
	parts = append(parts, tok(eq))
	return headerBody(sp(parts...), expDoc(body))
}

// tyBindsDoc renders type/withtype binding groups.
func tyBindsDoc(lead ast.Token, binds []parsed.TyBind, ands []ast.Token) doc.Doc {
	var out doc.Doc
	for i, bind := range binds {
		head := tok(lead)
		if i > 0 {
			head = tok(ands[i-1])
		}
		parts := []doc.Doc{head}
		if tv, ok := tyVarSeqDoc(bind.TyVars); ok {
			parts = append(parts, tv)
		}
		parts = append(parts, tok(bind.Name), tok(bind.Eq))
		bindDoc := headerBody(sp(parts...), tyDoc(bind.Ty))
		if i == 0 {
			out = bindDoc
		} else {
			out = doc.Above(out, bindDoc)
		}
	}
	return out
}

func datBindsDoc(lead ast.Token, binds []parsed.DatBind, ands []ast.Token) doc.Doc {
	var out doc.Doc
	for i, bind := range binds {
		head := tok(lead)
		if i > 0 {
			head = tok(ands[i-1])
		}
		parts := []doc.Doc{head}
		if tv, ok := tyVarSeqDoc(bind.TyVars); ok {
			parts = append(parts, tv)
		}
		parts = append(parts, tok(bind.Name), tok(bind.Eq))
		cons := conBindDoc(bind.Cons[0])
		for j := 1; j < len(bind.Cons); j++ {
			cons = doc.AboveOrSpace(cons, sp(tok(bind.Bars[j-1]), conBindDoc(bind.Cons[j])))
		}
		bindDoc := doc.Group(doc.AboveOrSpace(sp(parts...), doc.Indent(cons)))
		if i == 0 {
			out = bindDoc
		} else {
			out = doc.Above(out, bindDoc)
		}
	}
	return out
}

func conBindDoc(bind parsed.ConBind) doc.Doc {
	var parts []doc.Doc
	if bind.Op != nil {
		parts = append(parts, tok(*bind.Op))
	}
	parts = append(parts, tok(bind.Id))
	if bind.Of != nil {
		parts = append(parts, tok(*bind.Of), tyDoc(bind.Ty))
	}
	return sp(parts...)
}

func decAbstypeDoc(n *parsed.DecAbstype) doc.Doc {
	out := datBindsDoc(n.AbstypeTok, n.Binds, n.Ands)
	if n.Withtype != nil {
		out = doc.Above(out, tyBindsDoc(n.Withtype.Tok, n.Withtype.Binds, n.Withtype.Ands))
	}
	out = doc.Above(out, tok(n.WithTok))
	out = doc.Above(out, doc.Indent(decDoc(n.Dec)))
	return doc.Above(out, tok(n.EndTok))
}

func decExceptionDoc(n *parsed.DecException) doc.Doc {
	var out doc.Doc
	for i, bind := range n.Binds {
		head := tok(n.Tok)
		if i > 0 {
			head = tok(n.Ands[i-1])
		}
		var bindDoc doc.Doc
		switch b := bind.(type) {
		case *parsed.ExnBindNew:
			parts := []doc.Doc{head}
			if b.Op != nil {
				parts = append(parts, tok(*b.Op))
			}
			parts = append(parts, tok(b.Id))
			if b.Of != nil {
				parts = append(parts, tok(*b.Of), tyDoc(b.Ty))
			}
			bindDoc = sp(parts...)
		case *parsed.ExnBindRepl:
			parts := []doc.Doc{head}
			if b.Op != nil {
				parts = append(parts, tok(*b.Op))
			}
			parts = append(parts, tok(b.Id), tok(b.Eq))
			if b.RightOp != nil {
				parts = append(parts, tok(*b.RightOp))
			}
			parts = append(parts, longIdDoc(b.Right))
			bindDoc = sp(parts...)
		default:
			bindDoc = placeholder()
		}
		if i == 0 {
			out = bindDoc
		} else {
			out = doc.Above(out, bindDoc)
		}
	}
	return out
}
