package parsed

import "github.com/T-Brick/parse-sml/internal/pkg/ast"

// Pat is a pattern.
type Pat interface {
	patNode()
}

type PatWild struct {
	Tok ast.Token
}

// PatConst is a literal constant pattern.
type PatConst struct {
	Tok ast.Token
}

type PatUnit struct {
	Left  ast.Token
	Right ast.Token
}

// PatId is a value identifier or nullary constructor reference,
// optionally op-prefixed and qualified.
type PatId struct {
	Op *ast.Token
	Id LongId
}

type PatParens struct {
	Left  ast.Token
	Pat   Pat
	Right ast.Token
}

type PatTuple struct {
	Left   ast.Token
	Elems  []Pat
	Delims []ast.Token
	Right  ast.Token
}

type PatList struct {
	Left   ast.Token
	Elems  []Pat
	Delims []ast.Token
	Right  ast.Token
}

// PatRow is one row of a record pattern.
type PatRow interface {
	patRowNode()
}

// PatRowWild is the flexible-record row "...".
type PatRowWild struct {
	Tok ast.Token
}

// PatRowEq is "lab = pat".
type PatRowEq struct {
	Lab ast.Token
	Eq  ast.Token
	Pat Pat
}

// PatRowAs is the punned row "id (: ty)? (as pat)?".
type PatRowAs struct {
	Id    ast.Token
	Colon *ast.Token
	Ty    Ty
	As    *ast.Token
	Pat   Pat
}

func (*PatRowWild) patRowNode() {}
func (*PatRowEq) patRowNode()   {}
func (*PatRowAs) patRowNode()   {}

type PatRecord struct {
	Left   ast.Token
	Rows   []PatRow
	Delims []ast.Token
	Right  ast.Token
}

// PatCon is a constructor applied to an atomic pattern.
type PatCon struct {
	Op  *ast.Token
	Id  LongId
	Arg Pat
}

type PatTyped struct {
	Pat   Pat
	Colon ast.Token
	Ty    Ty
}

// PatAs is a layered pattern: id (: ty)? as pat.
type PatAs struct {
	Op    *ast.Token
	Id    ast.Token
	Colon *ast.Token
	Ty    Ty
	As    ast.Token
	Pat   Pat
}

type PatInfix struct {
	Left  Pat
	Op    ast.Token
	Right Pat
}

func (*PatWild) patNode()   {}
func (*PatConst) patNode()  {}
func (*PatUnit) patNode()   {}
func (*PatId) patNode()     {}
func (*PatParens) patNode() {}
func (*PatTuple) patNode()  {}
func (*PatList) patNode()   {}
func (*PatRecord) patNode() {}
func (*PatCon) patNode()    {}
func (*PatTyped) patNode()  {}
func (*PatAs) patNode()     {}
func (*PatInfix) patNode()  {}
