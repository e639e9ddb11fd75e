package printer

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/T-Brick/parse-sml/internal/pkg/ast"
	"github.com/T-Brick/parse-sml/internal/pkg/doc"
	"github.com/T-Brick/parse-sml/internal/pkg/lexer"
	"github.com/T-Brick/parse-sml/internal/pkg/parser"
)

func format(t *testing.T, input string, settings doc.Settings) string {
	t.Helper()
	tree, err := parser.ParseWithContent("test.sml", input)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return Print(tree, settings)
}

func TestBasicFun(t *testing.T) {
	input := "fun fib n = if n < 2 then n\n else fib (n-1)\n  + fib (n-2)"
	want := "fun fib n =\n" +
		"  if n < 2 then\n" +
		"    n\n" +
		"  else\n" +
		"    fib (n - 1) + fib (n - 2)\n"
	got := format(t, input, doc.DefaultSettings())
	if got != want {
		t.Errorf("output mismatch (-want +got):\n%s", cmp.Diff(want, got))
	}
}

func TestCommentPreservation(t *testing.T) {
	input := "fun fib n = (* c1\n               * c2 *) if n < 2 then n else 0"
	want := "fun fib n =\n" +
		"  (* c1\n" +
		"     * c2 *)\n" +
		"  if n < 2 then\n" +
		"    n\n" +
		"  else\n" +
		"    0\n"
	got := format(t, input, doc.DefaultSettings())
	if got != want {
		t.Errorf("output mismatch (-want +got):\n%s", cmp.Diff(want, got))
	}
}

func TestValGroup(t *testing.T) {
	input := "val f5 = fib 5\nval f10 =\n  fib 10\nval f15 = fib 15"
	want := "val f5 = fib 5\nval f10 = fib 10\nval f15 = fib 15\n"
	got := format(t, input, doc.DefaultSettings())
	if got != want {
		t.Errorf("output mismatch (-want +got):\n%s", cmp.Diff(want, got))
	}
}

func TestLongIdentifierVerbatim(t *testing.T) {
	input := "structure A = struct val z = B.C.d end"
	want := "structure A =\nstruct\n  val z = B.C.d\nend\n"
	got := format(t, input, doc.DefaultSettings())
	if got != want {
		t.Errorf("output mismatch (-want +got):\n%s", cmp.Diff(want, got))
	}
}

func TestSequenceBreaking(t *testing.T) {
	input := "val result = foobar (alpha, beta, gamma, delta)"
	settings := doc.DefaultSettings()

	if got := format(t, input, settings); got != input+"\n" {
		t.Errorf("wide output = %q, want input unchanged", got)
	}

	settings.MaxWidth = 20
	want := "val result =\n" +
		"  foobar\n" +
		"    ( alpha\n" +
		"    , beta\n" +
		"    , gamma\n" +
		"    , delta\n" +
		"    )\n"
	if got := format(t, input, settings); got != want {
		t.Errorf("narrow output mismatch (-want +got):\n%s", cmp.Diff(want, got))
	}
}

func TestCaseLayout(t *testing.T) {
	input := "val x = case xs of nil => 0 | y :: ys => y"
	want := "val x =\n" +
		"  case xs of\n" +
		"    nil => 0\n" +
		"  | y :: ys => y\n"
	got := format(t, input, doc.DefaultSettings())
	if got != want {
		t.Errorf("output mismatch (-want +got):\n%s", cmp.Diff(want, got))
	}
}

func TestLetLayout(t *testing.T) {
	input := "fun f x = let val y = x in y + 1 end"
	want := "fun f x =\n" +
		"  let\n" +
		"    val y = x\n" +
		"  in\n" +
		"    y + 1\n" +
		"  end\n"
	got := format(t, input, doc.DefaultSettings())
	if got != want {
		t.Errorf("output mismatch (-want +got):\n%s", cmp.Diff(want, got))
	}
}

func TestDatatypeLayout(t *testing.T) {
	input := "datatype color = Red | Green | Blue"

	if got := format(t, input, doc.DefaultSettings()); got != input+"\n" {
		t.Errorf("wide output = %q, want input unchanged", got)
	}

	settings := doc.DefaultSettings()
	settings.MaxWidth = 20
	want := "datatype color =\n" +
		"  Red\n" +
		"  | Green\n" +
		"  | Blue\n"
	if got := format(t, input, settings); got != want {
		t.Errorf("narrow output mismatch (-want +got):\n%s", cmp.Diff(want, got))
	}
}

func TestIdempotence(t *testing.T) {
	inputs := []string{
		"fun fib n = if n < 2 then n else fib (n-1) + fib (n-2)",
		"val f5 = fib 5\nval f10 =\n  fib 10",
		"fun fib n = (* c1\n               * c2 *) if n < 2 then n else 0",
		"datatype 'a tree = Leaf | Node of 'a tree * 'a * 'a tree",
		"val x = case xs of nil => 0 | y :: ys => y",
		"fun f x = let val y = x in (y; y + 1) end",
		"signature S = sig type t val x : t end",
		"structure A = struct val z = B.C.d end",
		"functor F (X : S) = struct open X end",
		"infix 6 @@\nval x = 1 @@ 2 + 3",
		"exception Fail of string\nval r = {a = 1, b = \"two\"}",
		"local infix 5 ## in val x = a ## b end",
		"fun fact 0 = 1 | fact n = n * fact (n - 1)",
		"val x = (f a handle Fail m => m) before print done",
		"fun loop r = while !r > 0 do r := !r - 1",
		"val g = fn nil => 0 | x :: _ => x",
	}
	for _, input := range inputs {
		once := format(t, input, doc.DefaultSettings())
		twice := format(t, once, doc.DefaultSettings())
		if once != twice {
			t.Errorf("formatting %q is not idempotent (-once +twice):\n%s",
				input, cmp.Diff(once, twice))
		}
	}
}

func TestCommentsSurvive(t *testing.T) {
	inputs := []string{
		"(* header *)\nval x = 1",
		"val x = 1 (* trailing *)",
		"val x = (* inner *) 1",
		"fun f x = x (* a *) (* b *)",
	}
	for _, input := range inputs {
		got := format(t, input, doc.DefaultSettings())
		src := ast.NewSource("test.sml", input)
		tokens, err := lexer.Lex(src)
		if err != nil {
			t.Fatalf("lex failed: %v", err)
		}
		for _, tok := range tokens {
			if tok.IsComment() && !strings.Contains(got, tok.Text()) {
				t.Errorf("comment %q missing from output %q", tok.Text(), got)
			}
		}
	}
}

func TestWidthBound(t *testing.T) {
	inputs := []string{
		"val result = foobar (alpha, beta, gamma, delta)",
		"fun combine (first, second) = first andalso second orelse first",
		"val record = {alpha = 1, beta = 2, gamma = 3, delta = 4, epsilon = 5}",
	}
	settings := doc.DefaultSettings()
	settings.MaxWidth = 24
	for _, input := range inputs {
		got := format(t, input, settings)
		for _, line := range strings.Split(got, "\n") {
			if len(line) > settings.MaxWidth && strings.Contains(strings.TrimSpace(line), " ") {
				t.Errorf("line %q exceeds width %d in output:\n%s", line, settings.MaxWidth, got)
			}
		}
	}
}
