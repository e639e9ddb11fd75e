package printer

import (
	"github.com/T-Brick/parse-sml/internal/pkg/ast"
	"github.com/T-Brick/parse-sml/internal/pkg/ast/parsed"
	"github.com/T-Brick/parse-sml/internal/pkg/doc"
)

func tyDoc(t parsed.Ty) doc.Doc {
	switch n := t.(type) {
	case *parsed.TyVar:
		return tok(n.Tok)

	case *parsed.TyCon:
		switch {
		case n.Args.IsEmpty():
			return longIdDoc(n.Id)
		case n.Args.IsMany():
			elems := make([]doc.Doc, len(n.Args.Elems))
			for i, arg := range n.Args.Elems {
				elems[i] = tyDoc(arg)
			}
			args := sequence(*n.Args.Left, n.Args.Delims, *n.Args.Right, elems)
			return sp(args, longIdDoc(n.Id))
		default:
			return sp(tyDoc(n.Args.Elems[0]), longIdDoc(n.Id))
		}

	case *parsed.TyParens:
		return doc.Beside(tok(n.Left), tyDoc(n.Ty), tok(n.Right))

	case *parsed.TyTuple:
		d := tyDoc(n.Elems[0])
		for i := 1; i < len(n.Elems); i++ {
			d = doc.AboveOrSpace(d, sp(tok(n.Stars[i-1]), tyDoc(n.Elems[i])))
		}
		return doc.Group(d)

	case *parsed.TyRecord:
		elems := make([]doc.Doc, len(n.Rows))
		for i, row := range n.Rows {
			elems[i] = tyRowDoc(row)
		}
		return sequence(n.Left, n.Delims, n.Right, elems)

	case *parsed.TyArrow:
		return doc.Group(doc.AboveOrSpace(tyDoc(n.From), sp(tok(n.Arrow), tyDoc(n.To))))
	}
	return placeholder()
}

func tyRowDoc(row parsed.TyRow) doc.Doc {
	return headerBody(doc.Beside(tok(row.Lab), doc.Space(), tok(row.Colon)), tyDoc(row.Ty))
}

// tyVarSeqDoc renders an optional type-variable sequence and reports
// whether it is non-empty. The result carries no trailing space;
// callers join it to the name with sp.
func tyVarSeqDoc(seq parsed.SyntaxSeq[ast.Token]) (doc.Doc, bool) {
	switch {
	case seq.IsEmpty():
		return nil, false
	case seq.IsMany():
		elems := make([]doc.Doc, len(seq.Elems))
		for i, tv := range seq.Elems {
			elems[i] = tok(tv)
		}
		return sequence(*seq.Left, seq.Delims, *seq.Right, elems), true
	default:
		return tok(seq.Elems[0]), true
	}
}
