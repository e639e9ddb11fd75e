package parsed

import "github.com/T-Brick/parse-sml/internal/pkg/ast"

// SigExp is a signature expression.
type SigExp interface {
	sigExpNode()
}

type SigId struct {
	Tok ast.Token
}

type SigSpec struct {
	SigTok ast.Token
	Spec   Spec
	EndTok ast.Token
}

// WhereTypeClause is one "where type tyvars longtycon = ty"
// refinement; chained clauses reuse the and keyword.
type WhereTypeClause struct {
	WhereTok ast.Token
	TypeTok  ast.Token
	TyVars   SyntaxSeq[ast.Token]
	Id       LongId
	Eq       ast.Token
	Ty       Ty
}

type SigWhere struct {
	Sig         SigExp
	Refinements []WhereTypeClause
}

func (*SigId) sigExpNode()    {}
func (*SigSpec) sigExpNode()  {}
func (*SigWhere) sigExpNode() {}

type SigBind struct {
	Name ast.Token
	Eq   ast.Token
	Sig  SigExp
}

// SigDec is a top-level signature binding group.
type SigDec struct {
	SignatureTok ast.Token
	Binds        []SigBind
	Ands         []ast.Token
}

// Spec is one signature-body specification.
type Spec interface {
	specNode()
}

type SpecValBind struct {
	Name  ast.Token
	Colon ast.Token
	Ty    Ty
}

type SpecVal struct {
	ValTok ast.Token
	Binds  []SpecValBind
	Ands   []ast.Token
}

// SpecTyBind describes a type spec; Eq/Ty are set for abbreviations
// and absent for opaque types.
type SpecTyBind struct {
	TyVars SyntaxSeq[ast.Token]
	Name   ast.Token
	Eq     *ast.Token
	Ty     Ty
}

// SpecType covers both "type" and "eqtype" specifications; Tok holds
// the introducing keyword.
type SpecType struct {
	Tok   ast.Token
	Binds []SpecTyBind
	Ands  []ast.Token
}

type SpecDatatype struct {
	DatatypeTok ast.Token
	Binds       []DatBind
	Ands        []ast.Token
}

type SpecReplicateDatatype struct {
	LeftTok  ast.Token
	Name     ast.Token
	Eq       ast.Token
	RightTok ast.Token
	Id       LongId
}

type SpecException struct {
	Tok   ast.Token
	Binds []ConBind
	Ands  []ast.Token
}

type SpecStrBind struct {
	Name  ast.Token
	Colon ast.Token
	Sig   SigExp
}

type SpecStructure struct {
	Tok   ast.Token
	Binds []SpecStrBind
	Ands  []ast.Token
}

type SpecInclude struct {
	Tok  ast.Token
	Sigs []SigExp
}

// SpecSharingType is "sharing type p1 = p2 = ...".
type SpecSharingType struct {
	SharingTok ast.Token
	TypeTok    ast.Token
	Paths      []LongId
	Eqs        []ast.Token
}

// SpecSharing is structure sharing: "sharing A = B".
type SpecSharing struct {
	SharingTok ast.Token
	Paths      []LongId
	Eqs        []ast.Token
}

type SpecMultiple struct {
	Specs []Spec
	Semis []*ast.Token
}

type SpecEmpty struct{}

func (*SpecVal) specNode()               {}
func (*SpecType) specNode()              {}
func (*SpecDatatype) specNode()          {}
func (*SpecReplicateDatatype) specNode() {}
func (*SpecException) specNode()         {}
func (*SpecStructure) specNode()         {}
func (*SpecInclude) specNode()           {}
func (*SpecSharingType) specNode()       {}
func (*SpecSharing) specNode()           {}
func (*SpecMultiple) specNode()          {}
func (*SpecEmpty) specNode()             {}
