package parser

import (
	"github.com/T-Brick/parse-sml/internal/pkg/ast"
	"github.com/T-Brick/parse-sml/internal/pkg/ast/parsed"
)

// parseAst parses a whole source file as a sequence of top-level
// declarations with optional trailing semicolons.
func (p *parser) parseAst() (*parsed.Ast, error) {
	result := &parsed.Ast{}
	for !p.atEOF() {
		var entry parsed.TopDecEntry
		switch t := p.peek(); {
		case t.IsPunct(";"):
			semi := p.advance()
			entry = parsed.TopDecEntry{
				Dec:       &parsed.TopDecStr{Dec: &parsed.StrDecEmpty{}},
				Semicolon: &semi,
			}
			result.Decs = append(result.Decs, entry)
			continue

		case t.IsKeyword("signature"):
			dec, err := p.parseSigDec()
			if err != nil {
				return nil, err
			}
			entry.Dec = &parsed.TopDecSig{Dec: *dec}

		case t.IsKeyword("functor"):
			dec, err := p.parseFctDec()
			if err != nil {
				return nil, err
			}
			entry.Dec = &parsed.TopDecFct{Dec: *dec}

		default:
			item, err := p.parseStrDecItem()
			if err != nil {
				return nil, err
			}
			entry.Dec = &parsed.TopDecStr{Dec: item}
		}
		if p.peek().IsPunct(";") {
			semi := p.advance()
			entry.Semicolon = &semi
		}
		result.Decs = append(result.Decs, entry)
	}
	result.EOF = p.peek()
	return result, nil
}

func (p *parser) parseSigDec() (*parsed.SigDec, error) {
	dec := &parsed.SigDec{SignatureTok: p.advance()}
	for {
		name, err := p.expectIdent("naming the signature")
		if err != nil {
			return nil, err
		}
		eq, err := p.expectPunct("=", "after the signature name")
		if err != nil {
			return nil, err
		}
		sig, err := p.parseSigExp()
		if err != nil {
			return nil, err
		}
		dec.Binds = append(dec.Binds, parsed.SigBind{Name: name, Eq: eq, Sig: sig})
		if p.peek().IsKeyword("and") {
			dec.Ands = append(dec.Ands, p.advance())
			continue
		}
		return dec, nil
	}
}

func (p *parser) parseFctDec() (*parsed.FctDec, error) {
	dec := &parsed.FctDec{FunctorTok: p.advance()}
	for {
		bind, err := p.parseFctBind()
		if err != nil {
			return nil, err
		}
		dec.Binds = append(dec.Binds, bind)
		if p.peek().IsKeyword("and") {
			dec.Ands = append(dec.Ands, p.advance())
			continue
		}
		return dec, nil
	}
}

func (p *parser) parseFctBind() (parsed.FctBind, error) {
	var bind parsed.FctBind
	name, err := p.expectIdent("naming the functor")
	if err != nil {
		return bind, err
	}
	bind.Name = name
	left, err := p.expectPunct("(", "opening the functor parameter")
	if err != nil {
		return bind, err
	}
	bind.Left = left
	if p.peek().Kind == ast.KindIdentifier && p.peekAt(1).IsPunct(":") {
		paramName := p.advance()
		colon := p.advance()
		sig, err := p.parseSigExp()
		if err != nil {
			return bind, err
		}
		bind.Param = &parsed.FctParamStructure{Name: paramName, Colon: colon, Sig: sig}
	} else {
		spec, err := p.parseSpec()
		if err != nil {
			return bind, err
		}
		bind.Param = &parsed.FctParamSpec{Spec: spec}
	}
	right, err := p.expectPunct(")", "closing the functor parameter")
	if err != nil {
		return bind, err
	}
	bind.Right = right
	constraint, err := p.parseStrConstraintClause()
	if err != nil {
		return bind, err
	}
	bind.Constraint = constraint
	eq, err := p.expectPunct("=", "before the functor body")
	if err != nil {
		return bind, err
	}
	bind.Eq = eq
	body, err := p.parseStrExp()
	if err != nil {
		return bind, err
	}
	bind.Body = body
	return bind, nil
}

func (p *parser) parseStrConstraintClause() (*parsed.StrConstraintClause, error) {
	if !p.peek().IsPunct(":") && !p.peek().IsPunct(":>") {
		return nil, nil
	}
	colon := p.advance()
	sig, err := p.parseSigExp()
	if err != nil {
		return nil, err
	}
	return &parsed.StrConstraintClause{Colon: colon, Sig: sig}, nil
}

// parseStrDec parses a sequence of structure-level declarations with
// optional semicolons, stopping at in/end/EOF.
func (p *parser) parseStrDec() (parsed.StrDec, error) {
	var decs []parsed.StrDec
	var semis []*ast.Token
	for {
		if p.peek().IsPunct(";") {
			semi := p.advance()
			if len(decs) > 0 && semis[len(semis)-1] == nil {
				semis[len(semis)-1] = &semi
			} else {
				decs = append(decs, &parsed.StrDecEmpty{})
				semis = append(semis, &semi)
			}
			continue
		}
		t := p.peek()
		if !t.IsKeyword("structure") && !t.IsKeyword("local") && !startsDec(t) {
			break
		}
		d, err := p.parseStrDecItem()
		if err != nil {
			return nil, err
		}
		decs = append(decs, d)
		semis = append(semis, nil)
	}
	switch len(decs) {
	case 0:
		return &parsed.StrDecEmpty{}, nil
	case 1:
		if semis[0] == nil {
			return decs[0], nil
		}
	}
	return &parsed.StrDecMultiple{Decs: decs, Semis: semis}, nil
}

// parseStrDecItem parses exactly one structure-level declaration.
func (p *parser) parseStrDecItem() (parsed.StrDec, error) {
	switch t := p.peek(); {
	case t.IsKeyword("structure"):
		return p.parseStrDecStructure()
	case t.IsKeyword("local"):
		return p.parseStrDecLocal()
	case startsDec(t):
		dec, err := p.parseOneDec()
		if err != nil {
			return nil, err
		}
		return &parsed.StrDecCore{Dec: dec}, nil
	}
	return nil, p.errorHere("expected declaration",
		"Top-level declarations start with val, fun, type, datatype, structure, signature, functor, and friends.")
}

func (p *parser) parseStrDecStructure() (parsed.StrDec, error) {
	dec := &parsed.StrDecStructure{Tok: p.advance()}
	for {
		name, err := p.expectIdent("naming the structure")
		if err != nil {
			return nil, err
		}
		constraint, err := p.parseStrConstraintClause()
		if err != nil {
			return nil, err
		}
		eq, err := p.expectPunct("=", "before the structure body")
		if err != nil {
			return nil, err
		}
		body, err := p.parseStrExp()
		if err != nil {
			return nil, err
		}
		dec.Binds = append(dec.Binds, parsed.StrBind{Name: name, Constraint: constraint,
			Eq: eq, Str: body})
		if p.peek().IsKeyword("and") {
			dec.Ands = append(dec.Ands, p.advance())
			continue
		}
		return dec, nil
	}
}

func (p *parser) parseStrDecLocal() (parsed.StrDec, error) {
	localTok := p.advance()
	p.env.pushFrame()
	defer p.env.popFrame()

	localDec, err := p.parseStrDec()
	if err != nil {
		return nil, err
	}
	inTok, err := p.expectKeyword("in", "after the local declarations")
	if err != nil {
		return nil, err
	}
	bodyDec, err := p.parseStrDec()
	if err != nil {
		return nil, err
	}
	endTok, err := p.expectKeyword("end", "closing `local`")
	if err != nil {
		return nil, err
	}
	return &parsed.StrDecLocal{LocalTok: localTok, LocalDec: localDec, InTok: inTok,
		BodyDec: bodyDec, EndTok: endTok}, nil
}

func (p *parser) parseStrExp() (parsed.StrExp, error) {
	var str parsed.StrExp
	switch t := p.peek(); {
	case t.IsKeyword("struct"):
		structTok := p.advance()
		p.env.pushFrame()
		dec, err := p.parseStrDec()
		p.env.popFrame()
		if err != nil {
			return nil, err
		}
		endTok, err := p.expectKeyword("end", "closing `struct`")
		if err != nil {
			return nil, err
		}
		str = &parsed.StrStruct{StructTok: structTok, Dec: dec, EndTok: endTok}

	case t.IsKeyword("let"):
		letTok := p.advance()
		p.env.pushFrame()
		dec, err := p.parseStrDec()
		if err != nil {
			p.env.popFrame()
			return nil, err
		}
		inTok, err := p.expectKeyword("in", "after the declarations of `let`")
		if err != nil {
			p.env.popFrame()
			return nil, err
		}
		body, err := p.parseStrExp()
		p.env.popFrame()
		if err != nil {
			return nil, err
		}
		endTok, err := p.expectKeyword("end", "closing `let`")
		if err != nil {
			return nil, err
		}
		str = &parsed.StrLet{LetTok: letTok, Dec: dec, InTok: inTok, Str: body, EndTok: endTok}

	case t.Kind == ast.KindIdentifier:
		if p.peekAt(1).IsPunct("(") {
			name := p.advance()
			left := p.advance()
			app := &parsed.StrFunApp{Name: name, Left: left}
			if startsDec(p.peek()) || p.peek().IsKeyword("structure") || p.peek().IsKeyword("local") {
				arg, err := p.parseStrDec()
				if err != nil {
					return nil, err
				}
				app.ArgDec = arg
			} else {
				arg, err := p.parseStrExp()
				if err != nil {
					return nil, err
				}
				app.ArgStr = arg
			}
			right, err := p.expectPunct(")", "closing the functor argument")
			if err != nil {
				return nil, err
			}
			app.Right = right
			str = app
			break
		}
		id, err := p.parseLongIdHere("naming the structure")
		if err != nil {
			return nil, err
		}
		str = &parsed.StrId{Id: id}

	default:
		return nil, p.errorHere("expected structure expression",
			"Structure expressions are struct ... end, a structure name, a functor application, or let ... in ... end.")
	}

	for p.peek().IsPunct(":") || p.peek().IsPunct(":>") {
		colon := p.advance()
		sig, err := p.parseSigExp()
		if err != nil {
			return nil, err
		}
		str = &parsed.StrConstraint{Str: str, Colon: colon, Sig: sig}
	}
	return str, nil
}
