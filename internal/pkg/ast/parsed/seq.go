package parsed

import (
	"strings"

	"github.com/T-Brick/parse-sml/internal/pkg/ast"
)

// LongId is a possibly-qualified identifier such as A.B.x, kept as its
// component tokens so the original spelling survives formatting.
type LongId struct {
	Pieces []ast.Token
	Dots   []ast.Token
}

func (l LongId) First() ast.Token {
	return l.Pieces[0]
}

func (l LongId) Last() ast.Token {
	return l.Pieces[len(l.Pieces)-1]
}

func (l LongId) IsQualified() bool {
	return len(l.Pieces) > 1
}

func (l LongId) String() string {
	parts := make([]string, len(l.Pieces))
	for i, p := range l.Pieces {
		parts[i] = p.Text()
	}
	return strings.Join(parts, ".")
}

// SyntaxSeq is the shared shape for optional parenthesized lists, as
// in type-variable sequences: empty, a single unparenthesized element,
// or a parenthesized comma-separated list.
type SyntaxSeq[T any] struct {
	Left   *ast.Token
	Elems  []T
	Delims []ast.Token
	Right  *ast.Token
}

func (s SyntaxSeq[T]) IsEmpty() bool {
	return len(s.Elems) == 0
}

func (s SyntaxSeq[T]) IsOne() bool {
	return len(s.Elems) == 1 && s.Left == nil
}

func (s SyntaxSeq[T]) IsMany() bool {
	return s.Left != nil
}
