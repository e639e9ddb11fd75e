package printer

import (
	"github.com/T-Brick/parse-sml/internal/pkg/ast/parsed"
	"github.com/T-Brick/parse-sml/internal/pkg/common"
	"github.com/T-Brick/parse-sml/internal/pkg/doc"
)

func patDoc(p parsed.Pat) doc.Doc {
	switch n := p.(type) {
	case *parsed.PatWild:
		return tok(n.Tok)

	case *parsed.PatConst:
		return tok(n.Tok)

	case *parsed.PatUnit:
		return doc.Beside(tok(n.Left), tok(n.Right))

	case *parsed.PatId:
		return identDoc(n.Op, n.Id)

	case *parsed.PatParens:
		return doc.Beside(tok(n.Left), patDoc(n.Pat), tok(n.Right))

	case *parsed.PatTuple:
		return sequence(n.Left, n.Delims, n.Right, patDocs(n.Elems))

	case *parsed.PatList:
		return sequence(n.Left, n.Delims, n.Right, patDocs(n.Elems))

	case *parsed.PatRecord:
		elems := make([]doc.Doc, len(n.Rows))
		for i, row := range n.Rows {
			elems[i] = patRowDoc(row)
		}
		return sequence(n.Left, n.Delims, n.Right, elems)

	case *parsed.PatCon:
		return sp(identDoc(n.Op, n.Id), atomPatDoc(n.Arg))

	case *parsed.PatTyped:
		return sp(patDoc(n.Pat), tok(n.Colon), tyDoc(n.Ty))

	case *parsed.PatAs:
		parts := []doc.Doc{}
		if n.Op != nil {
			parts = append(parts, tok(*n.Op))
		}
		parts = append(parts, tok(n.Id))
		if n.Colon != nil {
			parts = append(parts, tok(*n.Colon), tyDoc(n.Ty))
		}
		parts = append(parts, tok(n.As), patDoc(n.Pat))
		return sp(parts...)

	case *parsed.PatInfix:
		return doc.Group(doc.AboveOrSpace(patDoc(n.Left), sp(tok(n.Op), patDoc(n.Right))))
	}
	return placeholder()
}

func patDocs(pats []parsed.Pat) []doc.Doc {
	return common.Map(patDoc, pats)
}

// atomPatDoc parenthesizes patterns that are not atomic so they can
// stand in argument position.
func atomPatDoc(p parsed.Pat) doc.Doc {
	if isAtomicPat(p) {
		return patDoc(p)
	}
	return parens(patDoc(p))
}

func isAtomicPat(p parsed.Pat) bool {
	switch p.(type) {
	case *parsed.PatWild, *parsed.PatConst, *parsed.PatUnit, *parsed.PatId,
		*parsed.PatParens, *parsed.PatTuple, *parsed.PatList, *parsed.PatRecord:
		return true
	}
	return false
}

func patRowDoc(row parsed.PatRow) doc.Doc {
	switch n := row.(type) {
	case *parsed.PatRowWild:
		return tok(n.Tok)
	case *parsed.PatRowEq:
		return headerBody(sp(tok(n.Lab), tok(n.Eq)), patDoc(n.Pat))
	case *parsed.PatRowAs:
		parts := []doc.Doc{tok(n.Id)}
		if n.Colon != nil {
			parts = append(parts, tok(*n.Colon), tyDoc(n.Ty))
		}
		if n.As != nil {
			parts = append(parts, tok(*n.As), patDoc(n.Pat))
		}
		return sp(parts...)
	}
	return placeholder()
}
