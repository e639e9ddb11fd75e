package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/T-Brick/parse-sml/internal/pkg/ast/parsed"
	"github.com/T-Brick/parse-sml/internal/pkg/common"
)

func mustParse(t *testing.T, input string) *parsed.Ast {
	t.Helper()
	tree, err := ParseWithContent("test.sml", input)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return tree
}

// coreDec digs the i-th top-level declaration out as a core dec.
func coreDec(t *testing.T, tree *parsed.Ast, i int) parsed.Dec {
	t.Helper()
	str, ok := tree.Decs[i].Dec.(*parsed.TopDecStr)
	if !ok {
		t.Fatalf("top dec %d is %T, want core declaration", i, tree.Decs[i].Dec)
	}
	core, ok := str.Dec.(*parsed.StrDecCore)
	if !ok {
		t.Fatalf("top dec %d is %T, want core declaration", i, str.Dec)
	}
	return core.Dec
}

func valExp(t *testing.T, tree *parsed.Ast, i int) parsed.Exp {
	t.Helper()
	val, ok := coreDec(t, tree, i).(*parsed.DecVal)
	if !ok {
		t.Fatalf("top dec %d is not a val declaration", i)
	}
	return val.Binds[0].Exp
}

func TestFixityResolution(t *testing.T) {
	tree := mustParse(t, "infix 6 @@\nval x = 1 @@ 2 + 3")

	top, ok := valExp(t, tree, 1).(*parsed.ExpInfix)
	if !ok {
		t.Fatalf("val body is %T, want infix", valExp(t, tree, 1))
	}
	if top.Op.Text() != "+" {
		t.Errorf("outer operator = %q, want +", top.Op.Text())
	}
	left, ok := top.Left.(*parsed.ExpInfix)
	if !ok {
		t.Fatalf("left operand is %T, want infix", top.Left)
	}
	if left.Op.Text() != "@@" {
		t.Errorf("inner operator = %q, want @@", left.Op.Text())
	}
}

func TestRightAssociativity(t *testing.T) {
	tree := mustParse(t, "val x = 1 :: 2 :: nil")

	top, ok := valExp(t, tree, 0).(*parsed.ExpInfix)
	if !ok {
		t.Fatal("val body is not infix")
	}
	if _, ok := top.Right.(*parsed.ExpInfix); !ok {
		t.Errorf("right operand is %T; :: should group to the right", top.Right)
	}
}

func TestMixedAssociativityRejected(t *testing.T) {
	_, err := ParseWithContent("test.sml", "infixr 6 +++\nval x = 1 + 2 +++ 3")
	var diag common.Error
	if !errors.As(err, &diag) {
		t.Fatalf("error = %v, want a diagnostic", err)
	}
	if !strings.Contains(diag.What, "associate differently") {
		t.Errorf("What = %q", diag.What)
	}
}

func TestLongIdentifier(t *testing.T) {
	tree := mustParse(t, "structure A = struct val z = B.C.d end")

	str := tree.Decs[0].Dec.(*parsed.TopDecStr).Dec.(*parsed.StrDecStructure)
	body := str.Binds[0].Str.(*parsed.StrStruct)
	val := body.Dec.(*parsed.StrDecCore).Dec.(*parsed.DecVal)
	id, ok := val.Binds[0].Exp.(*parsed.ExpId)
	if !ok {
		t.Fatalf("val body is %T, want identifier", val.Binds[0].Exp)
	}
	if id.Id.String() != "B.C.d" {
		t.Errorf("long identifier = %q, want B.C.d", id.Id.String())
	}
}

func TestHandleBindsTighterThanInfix(t *testing.T) {
	tree := mustParse(t, "val x = f a handle Fail => b\nval y = a + f b handle Fail => c")

	if _, ok := valExp(t, tree, 0).(*parsed.ExpHandle); !ok {
		t.Errorf("val body is %T, want handle", valExp(t, tree, 0))
	}
	// The handle attaches to the application f b, which then stands as
	// the right operand of +.
	top, ok := valExp(t, tree, 1).(*parsed.ExpInfix)
	if !ok {
		t.Fatalf("val body is %T, want infix", valExp(t, tree, 1))
	}
	if _, ok := top.Right.(*parsed.ExpHandle); !ok {
		t.Errorf("right operand of + is %T, want handle", top.Right)
	}
}

func TestDanglingElseIsGreedy(t *testing.T) {
	tree := mustParse(t, "val x = if a then b else c + 1")

	ifExp, ok := valExp(t, tree, 0).(*parsed.ExpIf)
	if !ok {
		t.Fatalf("val body is %T, want if", valExp(t, tree, 0))
	}
	if _, ok := ifExp.Else.(*parsed.ExpInfix); !ok {
		t.Errorf("else branch is %T; it should absorb the trailing infix", ifExp.Else)
	}
}

func TestFunClauseForms(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"prefix", "fun f 0 acc = acc | f n acc = f (n - 1) (acc * n)"},
		{"infix", "infix 6 ++\nfun x ++ y = x + y"},
		{"curried infix", "infix 6 ++\nfun (x ++ y) z = x + y + z"},
		{"op prefix", "fun op + (x, y) = x"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mustParse(t, tc.input)
		})
	}
}

func TestFunClauseAgreement(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"arity", "fun f 0 = 1 | f n m = 2", "same number of arguments"},
		{"names", "fun f 0 = 1 | g n = 2", "share its name"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseWithContent("test.sml", tc.input)
			var diag common.Error
			if !errors.As(err, &diag) {
				t.Fatalf("error = %v, want a diagnostic", err)
			}
			if !strings.Contains(diag.What, tc.want) {
				t.Errorf("What = %q, want it to mention %q", diag.What, tc.want)
			}
		})
	}
}

func TestFixityScopeEndsWithLocal(t *testing.T) {
	tree := mustParse(t, "local infix 5 ## in val x = a ## b end\nval y = a ## b")

	// Inside local, ## is infix.
	local := tree.Decs[0].Dec.(*parsed.TopDecStr).Dec.(*parsed.StrDecLocal)
	inner := local.BodyDec.(*parsed.StrDecCore).Dec.(*parsed.DecVal)
	if _, ok := inner.Binds[0].Exp.(*parsed.ExpInfix); !ok {
		t.Errorf("body of local is %T, want infix application", inner.Binds[0].Exp)
	}
	// Afterwards the declaration is out of scope and ## is an ordinary
	// identifier again, so the run parses as application.
	if _, ok := valExp(t, tree, 1).(*parsed.ExpApp); !ok {
		t.Errorf("after local, expression is %T, want application", valExp(t, tree, 1))
	}
}

func TestParseErrorsAreLocated(t *testing.T) {
	_, err := ParseWithContent("test.sml", "val x = ")
	var diag common.Error
	if !errors.As(err, &diag) {
		t.Fatalf("error = %v, want a diagnostic", err)
	}
	if diag.What == "" || diag.Location.IsEmpty() {
		t.Errorf("diagnostic missing what/location: %+v", diag)
	}
}

func TestSignatureAndFunctor(t *testing.T) {
	input := `signature ORD = sig
  type t
  val compare : t * t -> order
end

functor SetFn (O : ORD) :> sig type set end = struct
  type set = O.t list
end`
	tree := mustParse(t, input)
	if _, ok := tree.Decs[0].Dec.(*parsed.TopDecSig); !ok {
		t.Errorf("first top dec is %T, want signature", tree.Decs[0].Dec)
	}
	if _, ok := tree.Decs[1].Dec.(*parsed.TopDecFct); !ok {
		t.Errorf("second top dec is %T, want functor", tree.Decs[1].Dec)
	}
}

func TestDatatypeForms(t *testing.T) {
	inputs := []string{
		"datatype 'a tree = Leaf | Node of 'a tree * 'a * 'a tree",
		"datatype t = datatype Other.t",
		"datatype ('a, 'b) pair = Pair of 'a * 'b",
		"datatype stream = Cons of int * unit -> stream withtype gen = unit -> stream",
		"abstype t = T of int with val mk = T end",
		"exception Overflow and Domain of string and Reraise = Fail",
	}
	for _, input := range inputs {
		if _, err := ParseWithContent("test.sml", input); err != nil {
			t.Errorf("parse %q failed: %v", input, err)
		}
	}
}

func TestFixityEnvironment(t *testing.T) {
	env := newFixityEnv()
	if _, infix := env.lookup("::"); !infix {
		t.Error(":: should start out infix")
	}
	env.pushFrame()
	env.extendNonfix("::")
	if _, infix := env.lookup("::"); infix {
		t.Error("nonfix declaration should shadow ::")
	}
	env.popFrame()
	if _, infix := env.lookup("::"); !infix {
		t.Error("popping the frame should restore ::")
	}
}
