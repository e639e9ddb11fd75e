package printer

import (
	"github.com/T-Brick/parse-sml/internal/pkg/ast"
	"github.com/T-Brick/parse-sml/internal/pkg/ast/parsed"
	"github.com/T-Brick/parse-sml/internal/pkg/common"
	"github.com/T-Brick/parse-sml/internal/pkg/doc"
)

func expDoc(e parsed.Exp) doc.Doc {
	switch n := e.(type) {
	case *parsed.ExpConst:
		return tok(n.Tok)

	case *parsed.ExpUnit:
		return doc.Beside(tok(n.Left), tok(n.Right))

	case *parsed.ExpId:
		return identDoc(n.Op, n.Id)

	case *parsed.ExpParens:
		return doc.Beside(tok(n.Left), expDoc(n.Exp), tok(n.Right))

	case *parsed.ExpTuple:
		return sequence(n.Left, n.Delims, n.Right, expDocs(n.Elems))

	case *parsed.ExpSeq:
		return sequence(n.Left, n.Delims, n.Right, expDocs(n.Elems))

	case *parsed.ExpList:
		return sequence(n.Left, n.Delims, n.Right, expDocs(n.Elems))

	case *parsed.ExpRecord:
		elems := make([]doc.Doc, len(n.Rows))
		for i, row := range n.Rows {
			elems[i] = headerBody(sp(tok(row.Lab), tok(row.Eq)), expDoc(row.Exp))
		}
		return sequence(n.Left, n.Delims, n.Right, elems)

	case *parsed.ExpSelect:
		return doc.Beside(tok(n.Hash), tok(n.Lab))

	case *parsed.ExpApp:
		return appDoc(n)

	case *parsed.ExpInfix:
		return doc.Group(doc.AboveOrSpace(expDoc(n.Left), sp(tok(n.Op), expDoc(n.Right))))

	case *parsed.ExpAndalso:
		return doc.Group(doc.AboveOrSpace(expDoc(n.Left), sp(tok(n.Tok), expDoc(n.Right))))

	case *parsed.ExpOrelse:
		return doc.Group(doc.AboveOrSpace(expDoc(n.Left), sp(tok(n.Tok), expDoc(n.Right))))

	case *parsed.ExpTyped:
		return sp(expDoc(n.Exp), tok(n.Colon), tyDoc(n.Ty))

	case *parsed.ExpIf:
		return ifDoc(n)

	case *parsed.ExpWhile:
		return doc.Above(
			doc.Group(sp(tok(n.WhileTok), expDoc(n.Cond), tok(n.DoTok))),
			doc.Indent(expDoc(n.Body)))

	case *parsed.ExpRaise:
		return headerBody(tok(n.Tok), expDoc(n.Exp))

	case *parsed.ExpHandle:
		return doc.Above(
			doc.Group(sp(expDoc(n.Exp), tok(n.Tok))),
			matchDoc(n.Arms, n.Bars))

	case *parsed.ExpCase:
		return doc.Above(
			doc.Group(sp(tok(n.CaseTok), expDoc(n.Exp), tok(n.OfTok))),
			matchDoc(n.Arms, n.Bars))

	case *parsed.ExpFn:
		return fnDoc(n)

	case *parsed.ExpLet:
		return letDoc(n)
	}
	return placeholder()
}

func expDocs(exps []parsed.Exp) []doc.Doc {
	return common.Map(expDoc, exps)
}

// appDoc flattens the application spine so arguments break together.
func appDoc(app *parsed.ExpApp) doc.Doc {
	var spine []parsed.Exp
	var e parsed.Exp = app
	for {
		a, ok := e.(*parsed.ExpApp)
		if !ok {
			break
		}
		spine = append([]parsed.Exp{a.Arg}, spine...)
		e = a.Fn
	}
	d := atomExpDoc(e)
	for _, arg := range spine {
		d = doc.AboveOrSpace(d, doc.Indent(atomExpDoc(arg)))
	}
	return doc.Group(d)
}

// atomExpDoc parenthesizes expressions that could not re-parse in an
// atomic position.
func atomExpDoc(e parsed.Exp) doc.Doc {
	if isAtomicExp(e) {
		return expDoc(e)
	}
	return parens(expDoc(e))
}

func isAtomicExp(e parsed.Exp) bool {
	switch e.(type) {
	case *parsed.ExpConst, *parsed.ExpUnit, *parsed.ExpId, *parsed.ExpParens,
		*parsed.ExpTuple, *parsed.ExpSeq, *parsed.ExpList, *parsed.ExpRecord,
		*parsed.ExpSelect, *parsed.ExpLet:
		return true
	}
	return false
}

func ifDoc(n *parsed.ExpIf) doc.Doc {
	header := doc.Group(sp(tok(n.IfTok), expDoc(n.Cond), tok(n.ThenTok)))
	d := doc.Above(header, doc.Indent(expDoc(n.Then)))
	if elseIf, ok := n.Else.(*parsed.ExpIf); ok {
		return doc.Above(d, sp(tok(n.ElseTok), ifDoc(elseIf)))
	}
	d = doc.Above(d, tok(n.ElseTok))
	return doc.Above(d, doc.Indent(expDoc(n.Else)))
}

// matchDoc lays out match arms with the first arm indented and each
// continuation led by its | two spaces shallower than arm bodies.
func matchDoc(arms []parsed.MatchArm, bars []ast.Token) doc.Doc {
	d := doc.Indent(armDoc(arms[0]))
	for i := 1; i < len(arms); i++ {
		d = doc.Above(d, sp(tok(bars[i-1]), armDoc(arms[i])))
	}
	return d
}

func armDoc(arm parsed.MatchArm) doc.Doc {
	return headerBody(sp(patDoc(arm.Pat), tok(arm.Arrow)), expDoc(arm.Exp))
}

func fnDoc(n *parsed.ExpFn) doc.Doc {
	if len(n.Arms) == 1 {
		return doc.Group(sp(tok(n.FnTok), armDoc(n.Arms[0])))
	}
	d := doc.Beside(tok(n.FnTok), doc.Space(), armDoc(n.Arms[0]))
	for i := 1; i < len(n.Arms); i++ {
		d = doc.Above(d, doc.Indent(sp(tok(n.Bars[i-1]), armDoc(n.Arms[i]))))
	}
	return d
}

func letDoc(n *parsed.ExpLet) doc.Doc {
	body := expDoc(n.Body[0])
	for i := 1; i < len(n.Body); i++ {
		body = doc.Above(doc.Beside(body, tok(n.Delims[i-1])), expDoc(n.Body[i]))
	}
	d := doc.Above(tok(n.LetTok), doc.Indent(decDoc(n.Dec)))
	d = doc.Above(d, tok(n.InTok))
	d = doc.Above(d, doc.Indent(body))
	return doc.Above(d, tok(n.EndTok))
}
