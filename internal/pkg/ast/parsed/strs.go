package parsed

import "github.com/T-Brick/parse-sml/internal/pkg/ast"

// StrExp is a structure expression.
type StrExp interface {
	strExpNode()
}

type StrId struct {
	Id LongId
}

type StrStruct struct {
	StructTok ast.Token
	Dec       StrDec
	EndTok    ast.Token
}

// StrConstraint is "strexp : sigexp" or "strexp :> sigexp"; Colon
// holds whichever symbol appeared.
type StrConstraint struct {
	Str   StrExp
	Colon ast.Token
	Sig   SigExp
}

// StrFunApp is a functor application. Exactly one of ArgStr and
// ArgDec is set: functors accept either a structure expression or a
// bare declaration sequence.
type StrFunApp struct {
	Name   ast.Token
	Left   ast.Token
	ArgStr StrExp
	ArgDec StrDec
	Right  ast.Token
}

type StrLet struct {
	LetTok ast.Token
	Dec    StrDec
	InTok  ast.Token
	Str    StrExp
	EndTok ast.Token
}

func (*StrId) strExpNode()         {}
func (*StrStruct) strExpNode()     {}
func (*StrConstraint) strExpNode() {}
func (*StrFunApp) strExpNode()     {}
func (*StrLet) strExpNode()        {}

// StrDec is a structure-level declaration.
type StrDec interface {
	strDecNode()
}

// StrDecCore embeds a core declaration at structure level.
type StrDecCore struct {
	Dec Dec
}

type StrConstraintClause struct {
	Colon ast.Token
	Sig   SigExp
}

type StrBind struct {
	Name       ast.Token
	Constraint *StrConstraintClause
	Eq         ast.Token
	Str        StrExp
}

type StrDecStructure struct {
	Tok   ast.Token
	Binds []StrBind
	Ands  []ast.Token
}

type StrDecLocal struct {
	LocalTok ast.Token
	LocalDec StrDec
	InTok    ast.Token
	BodyDec  StrDec
	EndTok   ast.Token
}

type StrDecMultiple struct {
	Decs  []StrDec
	Semis []*ast.Token
}

type StrDecEmpty struct{}

func (*StrDecCore) strDecNode()      {}
func (*StrDecStructure) strDecNode() {}
func (*StrDecLocal) strDecNode()     {}
func (*StrDecMultiple) strDecNode()  {}
func (*StrDecEmpty) strDecNode()     {}

// FctParam is a functor parameter: either a named "X : SIG" parameter
// or a bare specification.
type FctParam interface {
	fctParamNode()
}

type FctParamStructure struct {
	Name  ast.Token
	Colon ast.Token
	Sig   SigExp
}

type FctParamSpec struct {
	Spec Spec
}

func (*FctParamStructure) fctParamNode() {}
func (*FctParamSpec) fctParamNode()      {}

type FctBind struct {
	Name       ast.Token
	Left       ast.Token
	Param      FctParam
	Right      ast.Token
	Constraint *StrConstraintClause
	Eq         ast.Token
	Body       StrExp
}

// FctDec is a top-level functor binding group.
type FctDec struct {
	FunctorTok ast.Token
	Binds      []FctBind
	Ands       []ast.Token
}
