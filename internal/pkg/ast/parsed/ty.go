package parsed

import "github.com/T-Brick/parse-sml/internal/pkg/ast"

// Ty is a type expression.
type Ty interface {
	tyNode()
}

// TyVar is a type variable such as 'a.
type TyVar struct {
	Tok ast.Token
}

// TyCon is a type constructor application: int, int list,
// (int, string) pair.
type TyCon struct {
	Args SyntaxSeq[Ty]
	Id   LongId
}

type TyParens struct {
	Left  ast.Token
	Ty    Ty
	Right ast.Token
}

// TyTuple is a *-separated product type.
type TyTuple struct {
	Elems []Ty
	Stars []ast.Token
}

type TyRow struct {
	Lab   ast.Token
	Colon ast.Token
	Ty    Ty
}

type TyRecord struct {
	Left   ast.Token
	Rows   []TyRow
	Delims []ast.Token
	Right  ast.Token
}

type TyArrow struct {
	From  Ty
	Arrow ast.Token
	To    Ty
}

func (*TyVar) tyNode()    {}
func (*TyCon) tyNode()    {}
func (*TyParens) tyNode() {}
func (*TyTuple) tyNode()  {}
func (*TyRecord) tyNode() {}
func (*TyArrow) tyNode()  {}
