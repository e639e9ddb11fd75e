package parsed

import "github.com/T-Brick/parse-sml/internal/pkg/ast"

// TopDec is one top-level declaration: a structure-level declaration,
// a signature group, or a functor group.
type TopDec interface {
	topDecNode()
}

type TopDecStr struct {
	Dec StrDec
}

type TopDecSig struct {
	Dec SigDec
}

type TopDecFct struct {
	Dec FctDec
}

func (*TopDecStr) topDecNode() {}
func (*TopDecSig) topDecNode() {}
func (*TopDecFct) topDecNode() {}

// TopDecEntry pairs a top-level declaration with its optional trailing
// semicolon.
type TopDecEntry struct {
	Dec       TopDec
	Semicolon *ast.Token
}

// Ast is a whole parsed source file. EOF carries any comments that
// trail the final declaration.
type Ast struct {
	Decs []TopDecEntry
	EOF  ast.Token
}
