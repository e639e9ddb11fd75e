package parser

import (
	"strconv"

	"github.com/T-Brick/parse-sml/internal/pkg/ast"
	"github.com/T-Brick/parse-sml/internal/pkg/ast/parsed"
)

func startsDec(t ast.Token) bool {
	if t.Kind != ast.KindKeyword {
		return false
	}
	switch t.Text() {
	case "val", "fun", "type", "datatype", "abstype", "exception",
		"local", "open", "infix", "infixr", "nonfix":
		return true
	}
	return false
}

// parseDec parses a possibly-empty sequence of core declarations with
// optional semicolon separators.
func (p *parser) parseDec() (parsed.Dec, error) {
	var decs []parsed.Dec
	var semis []*ast.Token
	for {
		if p.peek().IsPunct(";") {
			semi := p.advance()
			if len(decs) > 0 && semis[len(semis)-1] == nil {
				semis[len(semis)-1] = &semi
			} else {
				decs = append(decs, &parsed.DecEmpty{})
				semis = append(semis, &semi)
			}
			continue
		}
		if !startsDec(p.peek()) {
			break
		}
		d, err := p.parseOneDec()
		if err != nil {
			return nil, err
		}
		decs = append(decs, d)
		semis = append(semis, nil)
	}
	switch len(decs) {
	case 0:
		return &parsed.DecEmpty{}, nil
	case 1:
		if semis[0] == nil {
			return decs[0], nil
		}
	}
	return &parsed.DecMultiple{Decs: decs, Semis: semis}, nil
}

func (p *parser) parseOneDec() (parsed.Dec, error) {
	switch t := p.peek(); t.Text() {
	case "val":
		return p.parseDecVal()
	case "fun":
		return p.parseDecFun()
	case "type":
		return p.parseDecType()
	case "datatype":
		return p.parseDecDatatype()
	case "abstype":
		return p.parseDecAbstype()
	case "exception":
		return p.parseDecException()
	case "local":
		return p.parseDecLocal()
	case "open":
		return p.parseDecOpen()
	case "infix", "infixr", "nonfix":
		return p.parseDecFixity()
	}
	return nil, p.errorHere("expected declaration", "")
}

func (p *parser) parseDecVal() (parsed.Dec, error) {
	valTok := p.advance()
	dec := &parsed.DecVal{ValTok: valTok}
	tyVars, err := p.parseTyVarSeq()
	if err != nil {
		return nil, err
	}
	dec.TyVars = tyVars
	if p.peek().IsKeyword("rec") {
		rec := p.advance()
		dec.RecTok = &rec
	}
	for {
		pat, err := p.parsePat()
		if err != nil {
			return nil, err
		}
		eq, err := p.expectPunct("=", "after the pattern of a `val` binding")
		if err != nil {
			return nil, err
		}
		body, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		dec.Binds = append(dec.Binds, parsed.ValBind{Pat: pat, Eq: eq, Exp: body})
		if p.peek().IsKeyword("and") {
			dec.Ands = append(dec.Ands, p.advance())
			continue
		}
		return dec, nil
	}
}

func (p *parser) parseDecFun() (parsed.Dec, error) {
	funTok := p.advance()
	dec := &parsed.DecFun{FunTok: funTok}
	tyVars, err := p.parseTyVarSeq()
	if err != nil {
		return nil, err
	}
	dec.TyVars = tyVars
	for {
		bind, err := p.parseFunBind()
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

func (p *parser) parseFunBind() (parsed.FunBind, error) {
	var bind parsed.FunBind
	for {
		clause, err := p.parseFunClause()
		if err != nil {
			return bind, err
		}
		bind.Clauses = append(bind.Clauses, clause)
		if p.peek().IsPunct("|") {
			bind.Bars = append(bind.Bars, p.advance())
			continue
		}
		break
	}
	first := bind.Clauses[0]
	for _, clause := range bind.Clauses[1:] {
		if clause.ClauseName() != first.ClauseName() {
			return bind, p.errorAt(clauseNameToken(clause),
				"clauses of one function must share its name",
				"This clause defines `%s` but the first clause defines `%s`.",
				clause.ClauseName(), first.ClauseName())
		}
		if clause.ClauseArity() != first.ClauseArity() {
			return bind, p.errorAt(clauseNameToken(clause),
				"clauses of one function must take the same number of arguments",
				"This clause takes %d argument(s) but the first clause takes %d.",
				clause.ClauseArity(), first.ClauseArity())
		}
	}
	return bind, nil
}

func clauseNameToken(c parsed.FunClause) ast.Token {
	switch n := c.(type) {
	case *parsed.FunClausePrefix:
		return n.Name
	case *parsed.FunClauseInfix:
		return n.Name
	case *parsed.FunClauseCurriedInfix:
		return n.Name
	}
	return ast.Token{}
}

func (p *parser) parseFunClause() (parsed.FunClause, error) {
	if p.peek().IsKeyword("op") {
		opTok := p.advance()
		name, err := p.expectIdent("after `op` in a clause head")
		if err != nil {
			return nil, err
		}
		return p.finishPrefixClause(&opTok, name)
	}

	if p.isIdentish(p.peek()) {
		if _, infix := p.env.lookup(p.peek().Text()); !infix {
			name := p.advance()
			// A clause head like `x ++ y` reaches here with x taken
			// for the name; the following infix identifier reveals
			// the infix form.
			if p.isIdentish(p.peek()) {
				if _, isInfix := p.env.lookup(p.peek().Text()); isInfix && !p.startsAtPat(p.peek()) {
					opName := p.advance()
					right, err := p.parseAtPat()
					if err != nil {
						return nil, err
					}
					left := &parsed.PatId{Id: parsed.LongId{Pieces: []ast.Token{name}}}
					return p.finishInfixClause(left, opName, right)
				}
			}
			return p.finishPrefixClause(nil, name)
		}
	}

	head, err := p.parseAtPat()
	if err != nil {
		return nil, err
	}
	// A parenthesized infix pattern followed by argument patterns is
	// the curried form (x ++ y) z ...; if an infix identifier follows
	// instead, the parenthesized pattern is the left operand of an
	// infix clause.
	if parens, ok := head.(*parsed.PatParens); ok {
		if inner, ok := parens.Pat.(*parsed.PatInfix); ok && p.startsAtPat(p.peek()) {
			clause := &parsed.FunClauseCurriedInfix{
				LParen: parens.Left,
				Left:   inner.Left,
				Name:   inner.Op,
				Right:  inner.Right,
				RParen: parens.Right,
			}
			for p.startsAtPat(p.peek()) {
				arg, err := p.parseAtPat()
				if err != nil {
					return nil, err
				}
				clause.Args = append(clause.Args, arg)
			}
			return p.finishClauseTail(clause)
		}
	}
	if p.isIdentish(p.peek()) {
		opName := p.advance()
		right, err := p.parseAtPat()
		if err != nil {
			return nil, err
		}
		return p.finishInfixClause(head, opName, right)
	}
	return nil, p.errorHere("expected function name in clause head",
		"Function clauses look like f x y = e, x ++ y = e, or (x ++ y) z = e.")
}

func (p *parser) finishPrefixClause(opTok *ast.Token, name ast.Token) (parsed.FunClause, error) {
	clause := &parsed.FunClausePrefix{Op: opTok, Name: name}
	for p.startsAtPat(p.peek()) {
		arg, err := p.parseAtPat()
		if err != nil {
			return nil, err
		}
		clause.Args = append(clause.Args, arg)
	}
	if len(clause.Args) == 0 {
		return nil, p.errorHere("expected clause arguments",
			"A function clause needs at least one argument pattern after the name.")
	}
	return p.finishClauseTail(clause)
}

func (p *parser) finishInfixClause(left parsed.Pat, name ast.Token, right parsed.Pat) (parsed.FunClause, error) {
	clause := &parsed.FunClauseInfix{Left: left, Name: name, Right: right}
	return p.finishClauseTail(clause)
}

// finishClauseTail parses the optional result type and the = body
// shared by all clause shapes.
func (p *parser) finishClauseTail(clause parsed.FunClause) (parsed.FunClause, error) {
	var colon *ast.Token
	var ty parsed.Ty
	if p.peek().IsPunct(":") {
		c := p.advance()
		parsedTy, err := p.parseTy()
		if err != nil {
			return nil, err
		}
		colon = &c
		ty = parsedTy
	}
	eq, err := p.expectPunct("=", "before the body of the clause")
	if err != nil {
		return nil, err
	}
	body, err := p.parseExp()
	if err != nil {
		return nil, err
	}
	switch n := clause.(type) {
	case *parsed.FunClausePrefix:
		n.Colon, n.Ty, n.Eq, n.Body = colon, ty, eq, body
	case *parsed.FunClauseInfix:
		n.Colon, n.Ty, n.Eq, n.Body = colon, ty, eq, body
	case *parsed.FunClauseCurriedInfix:
		n.Colon, n.Ty, n.Eq, n.Body = colon, ty, eq, body
	}
	return clause, nil
}

func (p *parser) parseTyBind() (parsed.TyBind, error) {
	tyVars, err := p.parseTyVarSeq()
	if err != nil {
		return parsed.TyBind{}, err
	}
	name, err := p.expectIdent("naming the type")
	if err != nil {
		return parsed.TyBind{}, err
	}
	eq, err := p.expectPunct("=", "after the type name")
	if err != nil {
		return parsed.TyBind{}, err
	}
	ty, err := p.parseTy()
	if err != nil {
		return parsed.TyBind{}, err
	}
	return parsed.TyBind{TyVars: tyVars, Name: name, Eq: eq, Ty: ty}, nil
}

func (p *parser) parseDecType() (parsed.Dec, error) {
	typeTok := p.advance()
	dec := &parsed.DecType{TypeTok: typeTok}
	for {
		bind, err := p.parseTyBind()
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

func (p *parser) parseConBind() (parsed.ConBind, error) {
	var bind parsed.ConBind
	if p.peek().IsKeyword("op") {
		opTok := p.advance()
		bind.Op = &opTok
	}
	name, err := p.expectIdent("naming the constructor")
	if err != nil {
		return bind, err
	}
	bind.Id = name
	if p.peek().IsKeyword("of") {
		ofTok := p.advance()
		ty, err := p.parseTy()
		if err != nil {
			return bind, err
		}
		bind.Of = &ofTok
		bind.Ty = ty
	}
	return bind, nil
}

func (p *parser) parseDatBind() (parsed.DatBind, error) {
	var bind parsed.DatBind
	tyVars, err := p.parseTyVarSeq()
	if err != nil {
		return bind, err
	}
	bind.TyVars = tyVars
	name, err := p.expectIdent("naming the datatype")
	if err != nil {
		return bind, err
	}
	bind.Name = name
	eq, err := p.expectPunct("=", "after the datatype name")
	if err != nil {
		return bind, err
	}
	bind.Eq = eq
	for {
		con, err := p.parseConBind()
		if err != nil {
			return bind, err
		}
		bind.Cons = append(bind.Cons, con)
		if p.peek().IsPunct("|") {
			bind.Bars = append(bind.Bars, p.advance())
			continue
		}
		return bind, nil
	}
}

func (p *parser) parseWithType() (*parsed.WithTypeClause, error) {
	if !p.peek().IsKeyword("withtype") {
		return nil, nil
	}
	clause := &parsed.WithTypeClause{Tok: p.advance()}
	for {
		bind, err := p.parseTyBind()
		if err != nil {
			return nil, err
		}
		clause.Binds = append(clause.Binds, bind)
		if p.peek().IsKeyword("and") {
			clause.Ands = append(clause.Ands, p.advance())
			continue
		}
		return clause, nil
	}
}

func (p *parser) parseDecDatatype() (parsed.Dec, error) {
	datatypeTok := p.advance()
	// Replication has no type variables and a second datatype keyword
	// after the =.
	if p.peek().Kind == ast.KindIdentifier && p.peekAt(1).IsPunct("=") &&
		p.peekAt(2).IsKeyword("datatype") {
		name := p.advance()
		eq := p.advance()
		rightTok := p.advance()
		id, err := p.parseLongIdHere("naming the replicated datatype")
		if err != nil {
			return nil, err
		}
		return &parsed.DecReplicateDatatype{LeftTok: datatypeTok, Name: name,
			Eq: eq, RightTok: rightTok, Id: id}, nil
	}
	dec := &parsed.DecDatatype{DatatypeTok: datatypeTok}
	for {
		bind, err := p.parseDatBind()
		if err != nil {
			return nil, err
		}
		dec.Binds = append(dec.Binds, bind)
		if p.peek().IsKeyword("and") {
			dec.Ands = append(dec.Ands, p.advance())
			continue
		}
		break
	}
	withType, err := p.parseWithType()
	if err != nil {
		return nil, err
	}
	dec.Withtype = withType
	return dec, nil
}

func (p *parser) parseDecAbstype() (parsed.Dec, error) {
	abstypeTok := p.advance()
	dec := &parsed.DecAbstype{AbstypeTok: abstypeTok}
	for {
		bind, err := p.parseDatBind()
		if err != nil {
			return nil, err
		}
		dec.Binds = append(dec.Binds, bind)
		if p.peek().IsKeyword("and") {
			dec.Ands = append(dec.Ands, p.advance())
			continue
		}
		break
	}
	withType, err := p.parseWithType()
	if err != nil {
		return nil, err
	}
	dec.Withtype = withType
	withTok, err := p.expectKeyword("with", "after the abstype bindings")
	if err != nil {
		return nil, err
	}
	dec.WithTok = withTok
	body, err := p.parseDec()
	if err != nil {
		return nil, err
	}
	dec.Dec = body
	endTok, err := p.expectKeyword("end", "closing `abstype`")
	if err != nil {
		return nil, err
	}
	dec.EndTok = endTok
	return dec, nil
}

func (p *parser) parseDecException() (parsed.Dec, error) {
	exnTok := p.advance()
	dec := &parsed.DecException{Tok: exnTok}
	for {
		var opTok *ast.Token
		if p.peek().IsKeyword("op") {
			t := p.advance()
			opTok = &t
		}
		name, err := p.expectIdent("naming the exception")
		if err != nil {
			return nil, err
		}
		switch {
		case p.peek().IsKeyword("of"):
			ofTok := p.advance()
			ty, err := p.parseTy()
			if err != nil {
				return nil, err
			}
			dec.Binds = append(dec.Binds, &parsed.ExnBindNew{Op: opTok, Id: name, Of: &ofTok, Ty: ty})
		case p.peek().IsPunct("="):
			eq := p.advance()
			var rightOp *ast.Token
			if p.peek().IsKeyword("op") {
				t := p.advance()
				rightOp = &t
			}
			right, err := p.parseLongIdHere("naming the rebound exception")
			if err != nil {
				return nil, err
			}
			dec.Binds = append(dec.Binds, &parsed.ExnBindRepl{Op: opTok, Id: name,
				Eq: eq, RightOp: rightOp, Right: right})
		default:
			dec.Binds = append(dec.Binds, &parsed.ExnBindNew{Op: opTok, Id: name})
		}
		if p.peek().IsKeyword("and") {
			dec.Ands = append(dec.Ands, p.advance())
			continue
		}
		return dec, nil
	}
}

func (p *parser) parseDecLocal() (parsed.Dec, error) {
	localTok := p.advance()
	p.env.pushFrame()
	defer p.env.popFrame()

	localDec, err := p.parseDec()
	if err != nil {
		return nil, err
	}
	inTok, err := p.expectKeyword("in", "after the local declarations")
	if err != nil {
		return nil, err
	}
	bodyDec, err := p.parseDec()
	if err != nil {
		return nil, err
	}
	endTok, err := p.expectKeyword("end", "closing `local`")
	if err != nil {
		return nil, err
	}
	return &parsed.DecLocal{LocalTok: localTok, LocalDec: localDec, InTok: inTok,
		BodyDec: bodyDec, EndTok: endTok}, nil
}

func (p *parser) parseDecOpen() (parsed.Dec, error) {
	openTok := p.advance()
	dec := &parsed.DecOpen{Tok: openTok}
	for {
		id, err := p.parseLongIdHere("naming the opened structure")
		if err != nil {
			return nil, err
		}
		dec.Ids = append(dec.Ids, id)
		if !p.isIdentish(p.peek()) {
			return dec, nil
		}
	}
}

// parseDecFixity parses infix/infixr/nonfix and updates the fixity
// environment as a side effect.
func (p *parser) parseDecFixity() (parsed.Dec, error) {
	tok := p.advance()
	dec := &parsed.DecFixity{Tok: tok}
	precedence := 0
	if tok.Text() != "nonfix" && p.peek().Kind == ast.KindIntLiteral {
		digit := p.peek()
		value, err := strconv.Atoi(digit.Text())
		if err != nil || value < 0 || value > 9 {
			return nil, p.errorAt(digit, "expected a precedence digit between 0 and 9",
				"Fixity declarations accept a single decimal digit, as in infix 6 ++.")
		}
		p.advance()
		dec.Precedence = &digit
		precedence = value
	}
	for {
		id, err := p.expectIdent("to receive the fixity")
		if err != nil {
			return nil, err
		}
		dec.Ids = append(dec.Ids, id)
		switch tok.Text() {
		case "infix":
			p.env.extend(id.Text(), Fixity{Precedence: precedence, Assoc: AssocLeft})
		case "infixr":
			p.env.extend(id.Text(), Fixity{Precedence: precedence, Assoc: AssocRight})
		case "nonfix":
			p.env.extendNonfix(id.Text())
		}
		if !p.isIdentish(p.peek()) {
			return dec, nil
		}
	}
}
