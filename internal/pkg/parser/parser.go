package parser

import (
	"fmt"

	"github.com/T-Brick/parse-sml/internal/pkg/ast"
	"github.com/T-Brick/parse-sml/internal/pkg/ast/parsed"
	"github.com/T-Brick/parse-sml/internal/pkg/common"
	"github.com/T-Brick/parse-sml/internal/pkg/lexer"
)

// Parse lexes and parses one SML source file. The first lex or parse
// error stops everything and is returned as a common.Error.
func Parse(src *ast.Source) (*parsed.Ast, error) {
	raw, err := lexer.Lex(src)
	if err != nil {
		return nil, err
	}
	return ParseTokens(lexer.AttachComments(raw))
}

// ParseWithContent parses a source given directly as a string.
func ParseWithContent(filePath string, content string) (*parsed.Ast, error) {
	return Parse(ast.NewSource(filePath, content))
}

// ParseTokens parses a comment-attached token stream ending in EOF.
func ParseTokens(tokens []ast.Token) (*parsed.Ast, error) {
	p := &parser{tokens: tokens, env: newFixityEnv()}
	return p.parseAst()
}

type parser struct {
	tokens []ast.Token
	pos    int
	env    *fixityEnv
}

func (p *parser) peek() ast.Token {
	return p.tokens[p.pos]
}

func (p *parser) peekAt(offset int) ast.Token {
	i := p.pos + offset
	if i >= len(p.tokens) {
		i = len(p.tokens) - 1
	}
	return p.tokens[i]
}

func (p *parser) atEOF() bool {
	return p.peek().Kind == ast.KindEOF
}

func (p *parser) advance() ast.Token {
	t := p.peek()
	if !p.atEOF() {
		p.pos++
	}
	return t
}

func (p *parser) errorHere(what string, explainFormat string, args ...any) error {
	return common.Error{
		Location: p.peek().Location,
		What:     what,
		Explain:  fmt.Sprintf(explainFormat, args...),
	}
}

func (p *parser) errorAt(tok ast.Token, what string, explainFormat string, args ...any) error {
	return common.Error{
		Location: tok.Location,
		What:     what,
		Explain:  fmt.Sprintf(explainFormat, args...),
	}
}

func (p *parser) expectKeyword(text string, context string) (ast.Token, error) {
	if !p.peek().IsKeyword(text) {
		return ast.Token{}, p.errorHere(
			fmt.Sprintf("expected `%s` %s", text, context),
			"Found %s `%s` instead.", p.peek().Kind, p.peek().Text())
	}
	return p.advance(), nil
}

func (p *parser) expectPunct(text string, context string) (ast.Token, error) {
	if !p.peek().IsPunct(text) {
		return ast.Token{}, p.errorHere(
			fmt.Sprintf("expected `%s` %s", text, context),
			"Found %s `%s` instead.", p.peek().Kind, p.peek().Text())
	}
	return p.advance(), nil
}

func (p *parser) isIdentish(t ast.Token) bool {
	return t.Kind == ast.KindIdentifier || t.Kind == ast.KindSymbolicIdentifier
}

func (p *parser) expectIdent(context string) (ast.Token, error) {
	if !p.isIdentish(p.peek()) {
		return ast.Token{}, p.errorHere(
			fmt.Sprintf("expected identifier %s", context),
			"Found %s `%s` instead.", p.peek().Kind, p.peek().Text())
	}
	return p.advance(), nil
}

func isAlphaNumId(t ast.Token) bool {
	return t.Kind == ast.KindIdentifier
}

// parseLongId assembles a dot-qualified identifier starting from an
// already-consumed first piece. Qualifiers must be alphanumeric; the
// final piece may be symbolic.
func (p *parser) parseLongId(first ast.Token) (parsed.LongId, error) {
	id := parsed.LongId{Pieces: []ast.Token{first}}
	for p.peek().IsPunct(".") && isAlphaNumId(id.Pieces[len(id.Pieces)-1]) {
		dot := p.advance()
		piece := p.peek()
		if !p.isIdentish(piece) {
			return id, p.errorAt(piece, "expected identifier after `.` in qualified name",
				"Qualified names look like Structure.Sub.item.")
		}
		p.advance()
		id.Dots = append(id.Dots, dot)
		id.Pieces = append(id.Pieces, piece)
	}
	return id, nil
}

func (p *parser) parseLongIdHere(context string) (parsed.LongId, error) {
	first, err := p.expectIdent(context)
	if err != nil {
		return parsed.LongId{}, err
	}
	return p.parseLongId(first)
}

// parseTyVarSeq parses an optional type-variable sequence: nothing, a
// single 'a, or ('a, 'b). The parenthesized form is only entered when
// a type variable follows the opening parenthesis, since the ( may
// otherwise open a pattern.
func (p *parser) parseTyVarSeq() (parsed.SyntaxSeq[ast.Token], error) {
	var seq parsed.SyntaxSeq[ast.Token]
	if p.peek().Kind == ast.KindTypeVariable {
		tv := p.advance()
		seq.Elems = []ast.Token{tv}
		return seq, nil
	}
	if p.peek().IsPunct("(") && p.peekAt(1).Kind == ast.KindTypeVariable {
		left := p.advance()
		seq.Left = &left
		for {
			if p.peek().Kind != ast.KindTypeVariable {
				return seq, p.errorHere("expected type variable in sequence",
					"Type-variable sequences look like ('a, 'b).")
			}
			seq.Elems = append(seq.Elems, p.advance())
			if p.peek().IsPunct(",") {
				seq.Delims = append(seq.Delims, p.advance())
				continue
			}
			break
		}
		right, err := p.expectPunct(")", "closing the type-variable sequence")
		if err != nil {
			return seq, err
		}
		seq.Right = &right
		return seq, nil
	}
	return seq, nil
}
