package parsed

import "github.com/T-Brick/parse-sml/internal/pkg/ast"

// Dec is a core-language declaration.
type Dec interface {
	decNode()
}

type ValBind struct {
	Pat Pat
	Eq  ast.Token
	Exp Exp
}

type DecVal struct {
	ValTok ast.Token
	RecTok *ast.Token
	TyVars SyntaxSeq[ast.Token]
	Binds  []ValBind
	Ands   []ast.Token
}

// FunClause is one clause of a function binding. The three shapes
// mirror the grammar: prefix (f x y = e), infix (x ++ y = e), and
// curried infix ((x ++ y) z = e).
type FunClause interface {
	funClauseNode()
	ClauseName() string
	ClauseArity() int
	ResultTy() (*ast.Token, Ty)
	ClauseBody() (ast.Token, Exp)
}

type FunClausePrefix struct {
	Op    *ast.Token
	Name  ast.Token
	Args  []Pat
	Colon *ast.Token
	Ty    Ty
	Eq    ast.Token
	Body  Exp
}

type FunClauseInfix struct {
	Left  Pat
	Name  ast.Token
	Right Pat
	Colon *ast.Token
	Ty    Ty
	Eq    ast.Token
	Body  Exp
}

type FunClauseCurriedInfix struct {
	LParen ast.Token
	Left   Pat
	Name   ast.Token
	Right  Pat
	RParen ast.Token
	Args   []Pat
	Colon  *ast.Token
	Ty     Ty
	Eq     ast.Token
	Body   Exp
}

func (*FunClausePrefix) funClauseNode()       {}
func (*FunClauseInfix) funClauseNode()        {}
func (*FunClauseCurriedInfix) funClauseNode() {}

func (c *FunClausePrefix) ClauseName() string { return c.Name.Text() }
func (c *FunClauseInfix) ClauseName() string { return c.Name.Text() }
func (c *FunClauseCurriedInfix) ClauseName() string { return c.Name.Text() }

func (c *FunClausePrefix) ClauseArity() int { return len(c.Args) }
func (c *FunClauseInfix) ClauseArity() int { return 2 }
func (c *FunClauseCurriedInfix) ClauseArity() int { return 2 + len(c.Args) }

func (c *FunClausePrefix) ResultTy() (*ast.Token, Ty) { return c.Colon, c.Ty }
func (c *FunClauseInfix) ResultTy() (*ast.Token, Ty) { return c.Colon, c.Ty }
func (c *FunClauseCurriedInfix) ResultTy() (*ast.Token, Ty) { return c.Colon, c.Ty }

func (c *FunClausePrefix) ClauseBody() (ast.Token, Exp) { return c.Eq, c.Body }
func (c *FunClauseInfix) ClauseBody() (ast.Token, Exp) { return c.Eq, c.Body }
func (c *FunClauseCurriedInfix) ClauseBody() (ast.Token, Exp) { return c.Eq, c.Body }

type FunBind struct {
	Clauses []FunClause
	Bars    []ast.Token
}

type DecFun struct {
	FunTok ast.Token
	TyVars SyntaxSeq[ast.Token]
	Binds  []FunBind
	Ands   []ast.Token
}

type TyBind struct {
	TyVars SyntaxSeq[ast.Token]
	Name   ast.Token
	Eq     ast.Token
	Ty     Ty
}

type DecType struct {
	TypeTok ast.Token
	Binds   []TyBind
	Ands    []ast.Token
}

type ConBind struct {
	Op *ast.Token
	Id ast.Token
	Of *ast.Token
	Ty Ty
}

type DatBind struct {
	TyVars SyntaxSeq[ast.Token]
	Name   ast.Token
	Eq     ast.Token
	Cons   []ConBind
	Bars   []ast.Token
}

type WithTypeClause struct {
	Tok   ast.Token
	Binds []TyBind
	Ands  []ast.Token
}

type DecDatatype struct {
	DatatypeTok ast.Token
	Binds       []DatBind
	Ands        []ast.Token
	Withtype    *WithTypeClause
}

// DecReplicateDatatype is "datatype t = datatype u".
type DecReplicateDatatype struct {
	LeftTok  ast.Token
	Name     ast.Token
	Eq       ast.Token
	RightTok ast.Token
	Id       LongId
}

type DecAbstype struct {
	AbstypeTok ast.Token
	Binds      []DatBind
	Ands       []ast.Token
	Withtype   *WithTypeClause
	WithTok    ast.Token
	Dec        Dec
	EndTok     ast.Token
}

// ExnBind is one binding of an exception declaration: a fresh
// exception, optionally with a payload type, or a rebinding.
type ExnBind interface {
	exnBindNode()
}

type ExnBindNew struct {
	Op *ast.Token
	Id ast.Token
	Of *ast.Token
	Ty Ty
}

type ExnBindRepl struct {
	Op      *ast.Token
	Id      ast.Token
	Eq      ast.Token
	RightOp *ast.Token
	Right   LongId
}

func (*ExnBindNew) exnBindNode()  {}
func (*ExnBindRepl) exnBindNode() {}

type DecException struct {
	Tok   ast.Token
	Binds []ExnBind
	Ands  []ast.Token
}

type DecLocal struct {
	LocalTok ast.Token
	LocalDec Dec
	InTok    ast.Token
	BodyDec  Dec
	EndTok   ast.Token
}

type DecOpen struct {
	Tok ast.Token
	Ids []LongId
}

// DecFixity covers infix, infixr, and nonfix declarations; for nonfix
// the precedence is always absent.
type DecFixity struct {
	Tok        ast.Token
	Precedence *ast.Token
	Ids        []ast.Token
}

// DecMultiple is a sequence of declarations; Semis[i] is the optional
// semicolon following Decs[i].
type DecMultiple struct {
	Decs  []Dec
	Semis []*ast.Token
}

type DecEmpty struct{}

func (*DecVal) decNode()               {}
func (*DecFun) decNode()               {}
func (*DecType) decNode()              {}
func (*DecDatatype) decNode()          {}
func (*DecReplicateDatatype) decNode() {}
func (*DecAbstype) decNode()           {}
func (*DecException) decNode()         {}
func (*DecLocal) decNode()             {}
func (*DecOpen) decNode()              {}
func (*DecFixity) decNode()            {}
func (*DecMultiple) decNode()          {}
func (*DecEmpty) decNode()             {}
