package parser

import (
	"github.com/T-Brick/parse-sml/internal/pkg/ast"
	"github.com/T-Brick/parse-sml/internal/pkg/ast/parsed"
)

// parseExp parses a full expression. The layering, loosest first, is
// orelse, andalso, type ascription, then the infix run.
func (p *parser) parseExp() (parsed.Exp, error) {
	e, err := p.parseAndalsoExp()
	if err != nil {
		return nil, err
	}
	for p.peek().IsKeyword("orelse") {
		tok := p.advance()
		right, err := p.parseAndalsoExp()
		if err != nil {
			return nil, err
		}
		e = &parsed.ExpOrelse{Left: e, Tok: tok, Right: right}
	}
	return e, nil
}

func (p *parser) parseAndalsoExp() (parsed.Exp, error) {
	e, err := p.parseTypedExp()
	if err != nil {
		return nil, err
	}
	for p.peek().IsKeyword("andalso") {
		tok := p.advance()
		right, err := p.parseTypedExp()
		if err != nil {
			return nil, err
		}
		e = &parsed.ExpAndalso{Left: e, Tok: tok, Right: right}
	}
	return e, nil
}

func (p *parser) parseTypedExp() (parsed.Exp, error) {
	e, err := p.parseInfExp()
	if err != nil {
		return nil, err
	}
	for p.peek().IsPunct(":") {
		colon := p.advance()
		ty, err := p.parseTy()
		if err != nil {
			return nil, err
		}
		e = &parsed.ExpTyped{Exp: e, Colon: colon, Ty: ty}
	}
	return e, nil
}

// parseInfExp collects a flat run of application-level expressions
// separated by infix occurrences and rebrackets it by fixity. The
// reserved = also acts as an operator here.
func (p *parser) parseInfExp() (parsed.Exp, error) {
	first, terminal, err := p.parseInfOperand()
	if err != nil {
		return nil, err
	}
	operands := []parsed.Exp{first}
	var ops []opToken
	for !terminal {
		t := p.peek()
		if !p.isIdentish(t) && !t.IsPunct("=") {
			break
		}
		fix, infix := p.env.lookup(t.Text())
		if !infix {
			break
		}
		p.advance()
		ops = append(ops, opToken{tok: t, fixity: fix})
		var operand parsed.Exp
		operand, terminal, err = p.parseInfOperand()
		if err != nil {
			return nil, err
		}
		operands = append(operands, operand)
	}
	if len(ops) == 0 {
		return first, nil
	}
	return p.resolveExpInfix(operands, ops)
}

// parseInfOperand parses one item of an infix run: either a greedy
// keyword form (which swallows the rest of the expression), or an
// application chain with any trailing handle attached. handle binds
// tighter than infix operators and looser than application.
func (p *parser) parseInfOperand() (parsed.Exp, bool, error) {
	t := p.peek()
	if t.IsKeyword("if") || t.IsKeyword("while") || t.IsKeyword("raise") ||
		t.IsKeyword("case") || t.IsKeyword("fn") {
		e, err := p.parseKeywordExp()
		return e, true, err
	}
	e, err := p.parseAppExp()
	if err != nil {
		return nil, false, err
	}
	for p.peek().IsKeyword("handle") {
		tok := p.advance()
		arms, bars, err := p.parseMatch()
		if err != nil {
			return nil, false, err
		}
		e = &parsed.ExpHandle{Exp: e, Tok: tok, Arms: arms, Bars: bars}
	}
	return e, false, nil
}

func (p *parser) parseKeywordExp() (parsed.Exp, error) {
	switch tok := p.peek(); {
	case tok.IsKeyword("if"):
		ifTok := p.advance()
		cond, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		thenTok, err := p.expectKeyword("then", "after the condition of `if`")
		if err != nil {
			return nil, err
		}
		thenExp, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		elseTok, err := p.expectKeyword("else", "after the `then` branch")
		if err != nil {
			return nil, err
		}
		elseExp, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		return &parsed.ExpIf{IfTok: ifTok, Cond: cond, ThenTok: thenTok,
			Then: thenExp, ElseTok: elseTok, Else: elseExp}, nil

	case tok.IsKeyword("while"):
		whileTok := p.advance()
		cond, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		doTok, err := p.expectKeyword("do", "after the condition of `while`")
		if err != nil {
			return nil, err
		}
		body, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		return &parsed.ExpWhile{WhileTok: whileTok, Cond: cond, DoTok: doTok, Body: body}, nil

	case tok.IsKeyword("raise"):
		raiseTok := p.advance()
		e, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		return &parsed.ExpRaise{Tok: raiseTok, Exp: e}, nil

	case tok.IsKeyword("case"):
		caseTok := p.advance()
		scrutinee, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		ofTok, err := p.expectKeyword("of", "after the subject of `case`")
		if err != nil {
			return nil, err
		}
		arms, bars, err := p.parseMatch()
		if err != nil {
			return nil, err
		}
		return &parsed.ExpCase{CaseTok: caseTok, Exp: scrutinee, OfTok: ofTok,
			Arms: arms, Bars: bars}, nil

	case tok.IsKeyword("fn"):
		fnTok := p.advance()
		arms, bars, err := p.parseMatch()
		if err != nil {
			return nil, err
		}
		return &parsed.ExpFn{FnTok: fnTok, Arms: arms, Bars: bars}, nil
	}
	return nil, p.errorHere("expected expression", "")
}

func (p *parser) parseMatch() ([]parsed.MatchArm, []ast.Token, error) {
	var arms []parsed.MatchArm
	var bars []ast.Token
	for {
		pat, err := p.parsePat()
		if err != nil {
			return nil, nil, err
		}
		arrow, err := p.expectPunct("=>", "after the pattern of a match arm")
		if err != nil {
			return nil, nil, err
		}
		body, err := p.parseExp()
		if err != nil {
			return nil, nil, err
		}
		arms = append(arms, parsed.MatchArm{Pat: pat, Arrow: arrow, Exp: body})
		if p.peek().IsPunct("|") {
			bars = append(bars, p.advance())
			continue
		}
		return arms, bars, nil
	}
}

func (p *parser) parseAppExp() (parsed.Exp, error) {
	e, err := p.parseAtExp()
	if err != nil {
		return nil, err
	}
	for p.startsAtExp(p.peek()) {
		arg, err := p.parseAtExp()
		if err != nil {
			return nil, err
		}
		e = &parsed.ExpApp{Fn: e, Arg: arg}
	}
	return e, nil
}

func (p *parser) startsAtExp(t ast.Token) bool {
	if isConstKind(t.Kind) {
		return true
	}
	if p.isIdentish(t) {
		_, infix := p.env.lookup(t.Text())
		return !infix
	}
	if t.IsKeyword("op") || t.IsKeyword("let") {
		return true
	}
	return t.IsPunct("(") || t.IsPunct("[") || t.IsPunct("{") || t.IsPunct("#")
}

func (p *parser) parseAtExp() (parsed.Exp, error) {
	t := p.peek()
	switch {
	case isConstKind(t.Kind):
		p.advance()
		return &parsed.ExpConst{Tok: t}, nil

	case t.IsKeyword("op"):
		opTok := p.advance()
		id, err := p.parseLongIdHere("after `op`")
		if err != nil {
			return nil, err
		}
		return &parsed.ExpId{Op: &opTok, Id: id}, nil

	case p.isIdentish(t):
		id, err := p.parseLongId(p.advance())
		if err != nil {
			return nil, err
		}
		return &parsed.ExpId{Id: id}, nil

	case t.IsPunct("#"):
		hash := p.advance()
		lab := p.peek()
		if lab.Kind != ast.KindIdentifier && lab.Kind != ast.KindIntLiteral {
			return nil, p.errorHere("expected record label after `#`",
				"Selectors look like #name or #1.")
		}
		p.advance()
		return &parsed.ExpSelect{Hash: hash, Lab: lab}, nil

	case t.IsPunct("("):
		return p.parseParenExp()

	case t.IsPunct("["):
		return p.parseListExp()

	case t.IsPunct("{"):
		return p.parseRecordExp()

	case t.IsKeyword("let"):
		return p.parseLetExp()
	}
	return nil, p.errorHere("expected expression",
		"Expressions start with a literal, an identifier, `(`, `[`, `{`, `#`, or a keyword such as let.")
}

func (p *parser) parseParenExp() (parsed.Exp, error) {
	left := p.advance()
	if p.peek().IsPunct(")") {
		return &parsed.ExpUnit{Left: left, Right: p.advance()}, nil
	}
	first, err := p.parseExp()
	if err != nil {
		return nil, err
	}
	switch {
	case p.peek().IsPunct(","):
		tuple := &parsed.ExpTuple{Left: left, Elems: []parsed.Exp{first}}
		for p.peek().IsPunct(",") {
			tuple.Delims = append(tuple.Delims, p.advance())
			next, err := p.parseExp()
			if err != nil {
				return nil, err
			}
			tuple.Elems = append(tuple.Elems, next)
		}
		right, err := p.expectPunct(")", "closing the tuple")
		if err != nil {
			return nil, err
		}
		tuple.Right = right
		return tuple, nil

	case p.peek().IsPunct(";"):
		seq := &parsed.ExpSeq{Left: left, Elems: []parsed.Exp{first}}
		for p.peek().IsPunct(";") {
			seq.Delims = append(seq.Delims, p.advance())
			next, err := p.parseExp()
			if err != nil {
				return nil, err
			}
			seq.Elems = append(seq.Elems, next)
		}
		right, err := p.expectPunct(")", "closing the sequence")
		if err != nil {
			return nil, err
		}
		seq.Right = right
		return seq, nil
	}
	right, err := p.expectPunct(")", "closing the parenthesized expression")
	if err != nil {
		return nil, err
	}
	return &parsed.ExpParens{Left: left, Exp: first, Right: right}, nil
}

func (p *parser) parseListExp() (parsed.Exp, error) {
	left := p.advance()
	list := &parsed.ExpList{Left: left}
	if p.peek().IsPunct("]") {
		list.Right = p.advance()
		return list, nil
	}
	for {
		elem, err := p.parseExp()
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
	right, err := p.expectPunct("]", "closing the list")
	if err != nil {
		return nil, err
	}
	list.Right = right
	return list, nil
}

func (p *parser) parseRecordExp() (parsed.Exp, error) {
	left := p.advance()
	record := &parsed.ExpRecord{Left: left}
	if p.peek().IsPunct("}") {
		record.Right = p.advance()
		return record, nil
	}
	for {
		lab := p.peek()
		if lab.Kind != ast.KindIdentifier && lab.Kind != ast.KindIntLiteral {
			return nil, p.errorHere("expected record label",
				"Record expressions list rows as label = expression.")
		}
		p.advance()
		eq, err := p.expectPunct("=", "after record label")
		if err != nil {
			return nil, err
		}
		value, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		record.Rows = append(record.Rows, parsed.ExpRow{Lab: lab, Eq: eq, Exp: value})
		if p.peek().IsPunct(",") {
			record.Delims = append(record.Delims, p.advance())
			continue
		}
		break
	}
	right, err := p.expectPunct("}", "closing the record")
	if err != nil {
		return nil, err
	}
	record.Right = right
	return record, nil
}

func (p *parser) parseLetExp() (parsed.Exp, error) {
	letTok := p.advance()
	p.env.pushFrame()
	defer p.env.popFrame()

	dec, err := p.parseDec()
	if err != nil {
		return nil, err
	}
	inTok, err := p.expectKeyword("in", "after the declarations of `let`")
	if err != nil {
		return nil, err
	}
	let := &parsed.ExpLet{LetTok: letTok, Dec: dec, InTok: inTok}
	for {
		body, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		let.Body = append(let.Body, body)
		if p.peek().IsPunct(";") {
			let.Delims = append(let.Delims, p.advance())
			continue
		}
		break
	}
	endTok, err := p.expectKeyword("end", "closing `let`")
	if err != nil {
		return nil, err
	}
	let.EndTok = endTok
	return let, nil
}
