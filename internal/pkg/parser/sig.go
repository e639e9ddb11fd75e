package parser

import (
	"github.com/T-Brick/parse-sml/internal/pkg/ast"
	"github.com/T-Brick/parse-sml/internal/pkg/ast/parsed"
)

func (p *parser) parseSigExp() (parsed.SigExp, error) {
	var sig parsed.SigExp
	switch t := p.peek(); {
	case t.IsKeyword("sig"):
		sigTok := p.advance()
		p.env.pushFrame()
		spec, err := p.parseSpec()
		p.env.popFrame()
		if err != nil {
			return nil, err
		}
		endTok, err := p.expectKeyword("end", "closing `sig`")
		if err != nil {
			return nil, err
		}
		sig = &parsed.SigSpec{SigTok: sigTok, Spec: spec, EndTok: endTok}

	case t.Kind == ast.KindIdentifier:
		sig = &parsed.SigId{Tok: p.advance()}

	default:
		return nil, p.errorHere("expected signature expression",
			"Signature expressions are a signature identifier or sig ... end.")
	}

	var refinements []parsed.WhereTypeClause
	for {
		t := p.peek()
		isWhere := t.IsKeyword("where")
		isChain := t.IsKeyword("and") && p.peekAt(1).IsKeyword("type") && len(refinements) > 0
		if !isWhere && !isChain {
			break
		}
		whereTok := p.advance()
		typeTok, err := p.expectKeyword("type", "after `where`")
		if err != nil {
			return nil, err
		}
		tyVars, err := p.parseTyVarSeq()
		if err != nil {
			return nil, err
		}
		id, err := p.parseLongIdHere("naming the refined type")
		if err != nil {
			return nil, err
		}
		eq, err := p.expectPunct("=", "in the type refinement")
		if err != nil {
			return nil, err
		}
		ty, err := p.parseTy()
		if err != nil {
			return nil, err
		}
		refinements = append(refinements, parsed.WhereTypeClause{WhereTok: whereTok,
			TypeTok: typeTok, TyVars: tyVars, Id: id, Eq: eq, Ty: ty})
	}
	if len(refinements) > 0 {
		return &parsed.SigWhere{Sig: sig, Refinements: refinements}, nil
	}
	return sig, nil
}

func startsSpec(t ast.Token) bool {
	if t.Kind != ast.KindKeyword {
		return false
	}
	switch t.Text() {
	case "val", "type", "eqtype", "datatype", "exception", "structure",
		"include", "sharing":
		return true
	}
	return false
}

// parseSpec parses a possibly-empty sequence of specifications with
// optional semicolon separators, stopping at `end`.
func (p *parser) parseSpec() (parsed.Spec, error) {
	var specs []parsed.Spec
	var semis []*ast.Token
	for {
		if p.peek().IsPunct(";") {
			semi := p.advance()
			if len(specs) > 0 && semis[len(semis)-1] == nil {
				semis[len(semis)-1] = &semi
			} else {
				specs = append(specs, &parsed.SpecEmpty{})
				semis = append(semis, &semi)
			}
			continue
		}
		if !startsSpec(p.peek()) {
			break
		}
		s, err := p.parseOneSpec()
		if err != nil {
			return nil, err
		}
		specs = append(specs, s)
		semis = append(semis, nil)
	}
	switch len(specs) {
	case 0:
		return &parsed.SpecEmpty{}, nil
	case 1:
		if semis[0] == nil {
			return specs[0], nil
		}
	}
	return &parsed.SpecMultiple{Specs: specs, Semis: semis}, nil
}

func (p *parser) parseOneSpec() (parsed.Spec, error) {
	switch p.peek().Text() {
	case "val":
		return p.parseSpecVal()
	case "type", "eqtype":
		return p.parseSpecType()
	case "datatype":
		return p.parseSpecDatatype()
	case "exception":
		return p.parseSpecException()
	case "structure":
		return p.parseSpecStructure()
	case "include":
		return p.parseSpecInclude()
	case "sharing":
		return p.parseSpecSharing()
	}
	return nil, p.errorHere("expected specification", "")
}

func (p *parser) parseSpecVal() (parsed.Spec, error) {
	spec := &parsed.SpecVal{ValTok: p.advance()}
	for {
		name, err := p.expectIdent("naming the specified value")
		if err != nil {
			return nil, err
		}
		colon, err := p.expectPunct(":", "after the value name")
		if err != nil {
			return nil, err
		}
		ty, err := p.parseTy()
		if err != nil {
			return nil, err
		}
		spec.Binds = append(spec.Binds, parsed.SpecValBind{Name: name, Colon: colon, Ty: ty})
		if p.peek().IsKeyword("and") {
			spec.Ands = append(spec.Ands, p.advance())
			continue
		}
		return spec, nil
	}
}

func (p *parser) parseSpecType() (parsed.Spec, error) {
	spec := &parsed.SpecType{Tok: p.advance()}
	for {
		tyVars, err := p.parseTyVarSeq()
		if err != nil {
			return nil, err
		}
		name, err := p.expectIdent("naming the specified type")
		if err != nil {
			return nil, err
		}
		bind := parsed.SpecTyBind{TyVars: tyVars, Name: name}
		if p.peek().IsPunct("=") {
			eq := p.advance()
			ty, err := p.parseTy()
			if err != nil {
				return nil, err
			}
			bind.Eq = &eq
			bind.Ty = ty
		}
		spec.Binds = append(spec.Binds, bind)
		if p.peek().IsKeyword("and") {
			spec.Ands = append(spec.Ands, p.advance())
			continue
		}
		return spec, nil
	}
}

func (p *parser) parseSpecDatatype() (parsed.Spec, error) {
	datatypeTok := p.advance()
	if p.peek().Kind == ast.KindIdentifier && p.peekAt(1).IsPunct("=") &&
		p.peekAt(2).IsKeyword("datatype") {
		name := p.advance()
		eq := p.advance()
		rightTok := p.advance()
		id, err := p.parseLongIdHere("naming the replicated datatype")
		if err != nil {
			return nil, err
		}
		return &parsed.SpecReplicateDatatype{LeftTok: datatypeTok, Name: name,
			Eq: eq, RightTok: rightTok, Id: id}, nil
	}
	spec := &parsed.SpecDatatype{DatatypeTok: datatypeTok}
	for {
		bind, err := p.parseDatBind()
		if err != nil {
			return nil, err
		}
		spec.Binds = append(spec.Binds, bind)
		if p.peek().IsKeyword("and") {
			spec.Ands = append(spec.Ands, p.advance())
			continue
		}
		return spec, nil
	}
}

func (p *parser) parseSpecException() (parsed.Spec, error) {
	spec := &parsed.SpecException{Tok: p.advance()}
	for {
		bind, err := p.parseConBind()
		if err != nil {
			return nil, err
		}
		spec.Binds = append(spec.Binds, bind)
		if p.peek().IsKeyword("and") {
			spec.Ands = append(spec.Ands, p.advance())
			continue
		}
		return spec, nil
	}
}

func (p *parser) parseSpecStructure() (parsed.Spec, error) {
	spec := &parsed.SpecStructure{Tok: p.advance()}
	for {
		name, err := p.expectIdent("naming the specified structure")
		if err != nil {
			return nil, err
		}
		colon, err := p.expectPunct(":", "after the structure name")
		if err != nil {
			return nil, err
		}
		sig, err := p.parseSigExp()
		if err != nil {
			return nil, err
		}
		spec.Binds = append(spec.Binds, parsed.SpecStrBind{Name: name, Colon: colon, Sig: sig})
		if p.peek().IsKeyword("and") {
			spec.Ands = append(spec.Ands, p.advance())
			continue
		}
		return spec, nil
	}
}

func (p *parser) parseSpecInclude() (parsed.Spec, error) {
	spec := &parsed.SpecInclude{Tok: p.advance()}
	sig, err := p.parseSigExp()
	if err != nil {
		return nil, err
	}
	spec.Sigs = append(spec.Sigs, sig)
	// include SIG1 SIG2 ... lists additional bare signature names.
	for p.peek().Kind == ast.KindIdentifier {
		spec.Sigs = append(spec.Sigs, &parsed.SigId{Tok: p.advance()})
	}
	return spec, nil
}

func (p *parser) parseSpecSharing() (parsed.Spec, error) {
	sharingTok := p.advance()
	if p.peek().IsKeyword("type") {
		typeTok := p.advance()
		spec := &parsed.SpecSharingType{SharingTok: sharingTok, TypeTok: typeTok}
		paths, eqs, err := p.parseSharingPaths()
		if err != nil {
			return nil, err
		}
		spec.Paths, spec.Eqs = paths, eqs
		return spec, nil
	}
	spec := &parsed.SpecSharing{SharingTok: sharingTok}
	paths, eqs, err := p.parseSharingPaths()
	if err != nil {
		return nil, err
	}
	spec.Paths, spec.Eqs = paths, eqs
	return spec, nil
}

func (p *parser) parseSharingPaths() ([]parsed.LongId, []ast.Token, error) {
	var paths []parsed.LongId
	var eqs []ast.Token
	first, err := p.parseLongIdHere("in the sharing constraint")
	if err != nil {
		return nil, nil, err
	}
	paths = append(paths, first)
	for p.peek().IsPunct("=") {
		eqs = append(eqs, p.advance())
		next, err := p.parseLongIdHere("in the sharing constraint")
		if err != nil {
			return nil, nil, err
		}
		paths = append(paths, next)
	}
	if len(paths) < 2 {
		return nil, nil, p.errorHere("expected `=` in the sharing constraint",
			"Sharing constraints equate two or more paths, as in sharing type A.t = B.t.")
	}
	return paths, eqs, nil
}
