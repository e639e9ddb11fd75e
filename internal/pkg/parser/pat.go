package parser

import (
	"github.com/T-Brick/parse-sml/internal/pkg/ast"
	"github.com/T-Brick/parse-sml/internal/pkg/ast/parsed"
)

func isConstKind(k ast.TokenKind) bool {
	switch k {
	case ast.KindIntLiteral, ast.KindWordLiteral, ast.KindRealLiteral,
		ast.KindCharLiteral, ast.KindStringLiteral:
		return true
	}
	return false
}

// parsePat parses a full pattern including type ascription and
// layering.
func (p *parser) parsePat() (parsed.Pat, error) {
	pat, err := p.parseInfPat()
	if err != nil {
		return nil, err
	}
	var colon *ast.Token
	var ty parsed.Ty
	if p.peek().IsPunct(":") {
		c := p.advance()
		ty, err = p.parseTy()
		if err != nil {
			return nil, err
		}
		colon = &c
		pat = &parsed.PatTyped{Pat: pat, Colon: c, Ty: ty}
	}
	if p.peek().IsKeyword("as") {
		asTok := p.advance()
		inner, err := p.parsePat()
		if err != nil {
			return nil, err
		}
		layered, ok := layeredHead(pat)
		if !ok {
			return nil, p.errorAt(asTok, "only an identifier may be layered with `as`",
				"Layered patterns look like x as (a, b) or x : ty as (a, b).")
		}
		layered.Colon = colon
		layered.Ty = ty
		layered.As = asTok
		layered.Pat = inner
		return layered, nil
	}
	return pat, nil
}

// layeredHead checks that a pattern is a bare unqualified identifier
// (possibly op-prefixed, possibly type-ascribed) and rebuilds it as
// the head of a layered pattern.
func layeredHead(pat parsed.Pat) (*parsed.PatAs, bool) {
	switch n := pat.(type) {
	case *parsed.PatId:
		if n.Id.IsQualified() {
			return nil, false
		}
		return &parsed.PatAs{Op: n.Op, Id: n.Id.First()}, true
	case *parsed.PatTyped:
		id, ok := n.Pat.(*parsed.PatId)
		if !ok || id.Id.IsQualified() {
			return nil, false
		}
		return &parsed.PatAs{Op: id.Op, Id: id.Id.First()}, true
	}
	return nil, false
}

// parseInfPat collects a flat run of application-level patterns
// separated by infix constructors, then rebrackets by fixity.
func (p *parser) parseInfPat() (parsed.Pat, error) {
	first, err := p.parseAppPat()
	if err != nil {
		return nil, err
	}
	operands := []parsed.Pat{first}
	var ops []opToken
	for {
		// Unlike expressions, = is never an infix constructor here; it
		// always means the end of the pattern.
		t := p.peek()
		if !p.isIdentish(t) {
			break
		}
		fix, infix := p.env.lookup(t.Text())
		if !infix {
			break
		}
		p.advance()
		ops = append(ops, opToken{tok: t, fixity: fix})
		operand, err := p.parseAppPat()
		if err != nil {
			return nil, err
		}
		operands = append(operands, operand)
	}
	if len(ops) == 0 {
		return first, nil
	}
	return p.resolvePatInfix(operands, ops)
}

func (p *parser) parseAppPat() (parsed.Pat, error) {
	pat, err := p.parseAtPat()
	if err != nil {
		return nil, err
	}
	// A constructor identifier may take one atomic argument.
	if id, ok := pat.(*parsed.PatId); ok && p.startsAtPat(p.peek()) {
		arg, err := p.parseAtPat()
		if err != nil {
			return nil, err
		}
		return &parsed.PatCon{Op: id.Op, Id: id.Id, Arg: arg}, nil
	}
	return pat, nil
}

func (p *parser) startsAtPat(t ast.Token) bool {
	if isConstKind(t.Kind) {
		return true
	}
	if p.isIdentish(t) {
		_, infix := p.env.lookup(t.Text())
		return !infix
	}
	if t.IsKeyword("op") {
		return true
	}
	return t.IsPunct("(") || t.IsPunct("[") || t.IsPunct("{") || t.IsPunct("_")
}

func (p *parser) parseAtPat() (parsed.Pat, error) {
	t := p.peek()
	switch {
	case t.IsPunct("_"):
		p.advance()
		return &parsed.PatWild{Tok: t}, nil

	case isConstKind(t.Kind):
		p.advance()
		return &parsed.PatConst{Tok: t}, nil

	case t.IsKeyword("op"):
		opTok := p.advance()
		id, err := p.parseLongIdHere("after `op`")
		if err != nil {
			return nil, err
		}
		return &parsed.PatId{Op: &opTok, Id: id}, nil

	case p.isIdentish(t):
		id, err := p.parseLongId(p.advance())
		if err != nil {
			return nil, err
		}
		return &parsed.PatId{Id: id}, nil

	case t.IsPunct("("):
		return p.parseParenPat()

	case t.IsPunct("["):
		return p.parseListPat()

	case t.IsPunct("{"):
		return p.parseRecordPat()
	}
	return nil, p.errorHere("expected a pattern",
		"Patterns start with a literal, an identifier, `_`, `(`, `[`, or `{`.")
}

func (p *parser) parseParenPat() (parsed.Pat, error) {
	left := p.advance()
	if p.peek().IsPunct(")") {
		return &parsed.PatUnit{Left: left, Right: p.advance()}, nil
	}
	first, err := p.parsePat()
	if err != nil {
		return nil, err
	}
	if p.peek().IsPunct(",") {
		tuple := &parsed.PatTuple{Left: left, Elems: []parsed.Pat{first}}
		for p.peek().IsPunct(",") {
			tuple.Delims = append(tuple.Delims, p.advance())
			next, err := p.parsePat()
			if err != nil {
				return nil, err
			}
			tuple.Elems = append(tuple.Elems, next)
		}
		right, err := p.expectPunct(")", "closing the tuple pattern")
		if err != nil {
			return nil, err
		}
		tuple.Right = right
		return tuple, nil
	}
	right, err := p.expectPunct(")", "closing the parenthesized pattern")
	if err != nil {
		return nil, err
	}
	return &parsed.PatParens{Left: left, Pat: first, Right: right}, nil
}

func (p *parser) parseListPat() (parsed.Pat, error) {
	left := p.advance()
	list := &parsed.PatList{Left: left}
	if p.peek().IsPunct("]") {
		list.Right = p.advance()
		return list, nil
	}
	for {
		elem, err := p.parsePat()
		if err != nil {
			return nil, err
		}
		list.Elems = append(list.Elems, elem)
		if p.peek().IsPunct(",") {
			list.Delims = append(list.Delims, p.advance())
			continue
		}
		break
	}
	right, err := p.expectPunct("]", "closing the list pattern")
	if err != nil {
		return nil, err
	}
	list.Right = right
	return list, nil
}

func (p *parser) parseRecordPat() (parsed.Pat, error) {
	left := p.advance()
	record := &parsed.PatRecord{Left: left}
	if p.peek().IsPunct("}") {
		record.Right = p.advance()
		return record, nil
	}
	for {
		row, err := p.parsePatRow()
		if err != nil {
			return nil, err
		}
		record.Rows = append(record.Rows, row)
		if p.peek().IsPunct(",") {
			record.Delims = append(record.Delims, p.advance())
			continue
		}
		break
	}
	right, err := p.expectPunct("}", "closing the record pattern")
	if err != nil {
		return nil, err
	}
	record.Right = right
	return record, nil
}

func (p *parser) parsePatRow() (parsed.PatRow, error) {
	t := p.peek()
	if t.IsPunct("...") {
		p.advance()
		return &parsed.PatRowWild{Tok: t}, nil
	}
	if t.Kind != ast.KindIdentifier && t.Kind != ast.KindIntLiteral {
		return nil, p.errorHere("expected record pattern row",
			"Rows are label = pattern, a punned identifier, or `...`.")
	}
	lab := p.advance()
	if p.peek().IsPunct("=") {
		eq := p.advance()
		pat, err := p.parsePat()
		if err != nil {
			return nil, err
		}
		return &parsed.PatRowEq{Lab: lab, Eq: eq, Pat: pat}, nil
	}
	row := &parsed.PatRowAs{Id: lab}
	if p.peek().IsPunct(":") {
		colon := p.advance()
		ty, err := p.parseTy()
		if err != nil {
			return nil, err
		}
		row.Colon = &colon
		row.Ty = ty
	}
	if p.peek().IsKeyword("as") {
		asTok := p.advance()
		pat, err := p.parsePat()
		if err != nil {
			return nil, err
		}
		row.As = &asTok
		row.Pat = pat
	}
	return row, nil
}
