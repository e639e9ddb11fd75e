package parser

import (
	"github.com/T-Brick/parse-sml/internal/pkg/ast"
	"github.com/T-Brick/parse-sml/internal/pkg/ast/parsed"
)

// parseTy parses a full type: tuples bind tighter than ->, and
// constructor application tighter than tuples.
func (p *parser) parseTy() (parsed.Ty, error) {
	t, err := p.parseTyTuple()
	if err != nil {
		return nil, err
	}
	if p.peek().IsPunct("->") {
		arrow := p.advance()
		to, err := p.parseTy()
		if err != nil {
			return nil, err
		}
		return &parsed.TyArrow{From: t, Arrow: arrow, To: to}, nil
	}
	return t, nil
}

func (p *parser) parseTyTuple() (parsed.Ty, error) {
	first, err := p.parseTyApp()
	if err != nil {
		return nil, err
	}
	elems := []parsed.Ty{first}
	var stars []ast.Token
	for p.peek().Is(ast.KindSymbolicIdentifier, "*") {
		stars = append(stars, p.advance())
		next, err := p.parseTyApp()
		if err != nil {
			return nil, err
		}
		elems = append(elems, next)
	}
	if len(elems) == 1 {
		return first, nil
	}
	return &parsed.TyTuple{Elems: elems, Stars: stars}, nil
}

func (p *parser) isTyConName(t ast.Token) bool {
	if t.Kind == ast.KindIdentifier {
		return true
	}
	return t.Kind == ast.KindSymbolicIdentifier && t.Text() != "*"
}

func (p *parser) parseTyApp() (parsed.Ty, error) {
	t, err := p.parseAtTy()
	if err != nil {
		return nil, err
	}
	for p.isTyConName(p.peek()) {
		id, err := p.parseLongIdHere("in type constructor")
		if err != nil {
			return nil, err
		}
		t = &parsed.TyCon{Args: parsed.SyntaxSeq[parsed.Ty]{Elems: []parsed.Ty{t}}, Id: id}
	}
	return t, nil
}

func (p *parser) parseAtTy() (parsed.Ty, error) {
	t := p.peek()
	switch {
	case t.Kind == ast.KindTypeVariable:
		p.advance()
		return &parsed.TyVar{Tok: t}, nil

	case p.isTyConName(t):
		id, err := p.parseLongId(p.advance())
		if err != nil {
			return nil, err
		}
		return &parsed.TyCon{Id: id}, nil

	case t.IsPunct("{"):
		return p.parseTyRecord()

	case t.IsPunct("("):
		left := p.advance()
		inner, err := p.parseTy()
		if err != nil {
			return nil, err
		}
		if p.peek().IsPunct(",") {
			return p.parseTyConArgs(left, inner)
		}
		right, err := p.expectPunct(")", "closing the parenthesized type")
		if err != nil {
			return nil, err
		}
		return &parsed.TyParens{Left: left, Ty: inner, Right: right}, nil
	}
	return nil, p.errorHere("expected a type",
		"Types start with a type variable, a type constructor, `{`, or `(`.")
}

// parseTyConArgs finishes a multi-argument constructor application
// (ty, ..., ty) longtycon after the first comma has been seen.
func (p *parser) parseTyConArgs(left ast.Token, first parsed.Ty) (parsed.Ty, error) {
	seq := parsed.SyntaxSeq[parsed.Ty]{Left: &left, Elems: []parsed.Ty{first}}
	for p.peek().IsPunct(",") {
		seq.Delims = append(seq.Delims, p.advance())
		next, err := p.parseTy()
		if err != nil {
			return nil, err
		}
		seq.Elems = append(seq.Elems, next)
	}
	right, err := p.expectPunct(")", "closing the type arguments")
	if err != nil {
		return nil, err
	}
	seq.Right = &right
	if !p.isTyConName(p.peek()) {
		return nil, p.errorHere("expected type constructor after type arguments",
			"A parenthesized list of types must be applied to a constructor, as in (int, string) pair.")
	}
	id, err := p.parseLongIdHere("in type constructor")
	if err != nil {
		return nil, err
	}
	ty := parsed.Ty(&parsed.TyCon{Args: seq, Id: id})
	return ty, nil
}

func (p *parser) parseTyRecord() (parsed.Ty, error) {
	left := p.advance()
	record := &parsed.TyRecord{Left: left}
	if p.peek().IsPunct("}") {
		record.Right = p.advance()
		return record, nil
	}
	for {
		lab := p.peek()
		if lab.Kind != ast.KindIdentifier && lab.Kind != ast.KindIntLiteral {
			return nil, p.errorHere("expected record label",
				"Record types list rows as label : type.")
		}
		p.advance()
		colon, err := p.expectPunct(":", "after record label")
		if err != nil {
			return nil, err
		}
		ty, err := p.parseTy()
		if err != nil {
			return nil, err
		}
		record.Rows = append(record.Rows, parsed.TyRow{Lab: lab, Colon: colon, Ty: ty})
		if p.peek().IsPunct(",") {
			record.Delims = append(record.Delims, p.advance())
			continue
		}
		break
	}
	right, err := p.expectPunct("}", "closing the record type")
	if err != nil {
		return nil, err
	}
	record.Right = right
	return record, nil
}
