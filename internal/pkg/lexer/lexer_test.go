package lexer

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/T-Brick/parse-sml/internal/pkg/ast"
	"github.com/T-Brick/parse-sml/internal/pkg/common"
)

// reconstruct interleaves token slices with the whitespace between
// their spans; for any successfully lexed source it must reproduce the
// input byte for byte.
func reconstruct(src *ast.Source, tokens []ast.Token) string {
	var sb strings.Builder
	prev := uint32(0)
	for _, t := range tokens {
		sb.WriteString(src.Slice(prev, t.Location.Start))
		sb.WriteString(t.Text())
		prev = t.Location.End
	}
	sb.WriteString(src.Slice(prev, src.Len()))
	return sb.String()
}

func TestTokenizationRoundTrip(t *testing.T) {
	inputs := []string{
		"val x = 1",
		"fun fib n = if n < 2 then n\n else fib (n-1)\n  + fib (n-2)",
		"(* comment (* nested *) done *) val s = \"str\\n\"",
		"val r = 1.5e~7 and w = 0wx1F and c = #\"a\"",
		"infix 6 @@ val x = op@@ (1, 2)",
		"structure A = struct val z = B.C.d end;",
	}
	for _, input := range inputs {
		src := ast.NewSource("test.sml", input)
		tokens, err := Lex(src)
		if err != nil {
			t.Errorf("Lex(%q) failed: %v", input, err)
			continue
		}
		if got := reconstruct(src, tokens); got != input {
			t.Errorf("round trip mismatch (-want +got):\n%s", cmp.Diff(input, got))
		}
	}
}

func TestClassification(t *testing.T) {
	input := `val x' = f ('a, 13, 0wx1F, ~2, 1.5e~7, #"a", "hi", x :: xs) => | andalso`
	want := []ast.TokenKind{
		ast.KindKeyword,            // val
		ast.KindIdentifier,         // x'
		ast.KindPunct,              // =
		ast.KindIdentifier,         // f
		ast.KindPunct,              // (
		ast.KindTypeVariable,       // 'a
		ast.KindPunct,              // ,
		ast.KindIntLiteral,         // 13
		ast.KindPunct,              // ,
		ast.KindWordLiteral,        // 0wx1F
		ast.KindPunct,              // ,
		ast.KindIntLiteral,         // ~2
		ast.KindPunct,              // ,
		ast.KindRealLiteral,        // 1.5e~7
		ast.KindPunct,              // ,
		ast.KindCharLiteral,        // #"a"
		ast.KindPunct,              // ,
		ast.KindStringLiteral,      // "hi"
		ast.KindPunct,              // ,
		ast.KindIdentifier,         // x
		ast.KindSymbolicIdentifier, // ::
		ast.KindIdentifier,         // xs
		ast.KindPunct,              // )
		ast.KindPunct,              // =>
		ast.KindPunct,              // |
		ast.KindKeyword,            // andalso
		ast.KindEOF,
	}
	tokens, err := Lex(ast.NewSource("test.sml", input))
	if err != nil {
		t.Fatalf("Lex failed: %v", err)
	}
	var got []ast.TokenKind
	for _, tok := range tokens {
		got = append(got, tok.Kind)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("classification mismatch (-want +got):\n%s", diff)
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		what    string
		partial int
	}{
		{"unterminated string", `val s = "unterminated`, "unterminated string literal", 3},
		{"unterminated comment", "val x = 1 (* open", "unterminated comment", 4},
		{"invalid escape", `val s = "a\q"`, "invalid escape sequence", 3},
		{"invalid control escape", `val s = "\^a"`, "invalid escape sequence", 3},
		{"malformed real", "val r = 1.x", "invalid numeric literal", 3},
		{"illegal character", "val x = \x01", "illegal character", 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tokens, err := Lex(ast.NewSource("test.sml", tc.input))
			if err == nil {
				t.Fatalf("Lex(%q) succeeded, want error", tc.input)
			}
			var lexErr common.Error
			if !errors.As(err, &lexErr) {
				t.Fatalf("error is %T, want common.Error", err)
			}
			if lexErr.What != tc.what {
				t.Errorf("What = %q, want %q", lexErr.What, tc.what)
			}
			if lexErr.Explain == "" {
				t.Errorf("Explain is empty, want guidance text")
			}
			if len(tokens) != tc.partial {
				t.Errorf("partial token count = %d, want %d", len(tokens), tc.partial)
			}
		})
	}
}

func TestCommentAttachment(t *testing.T) {
	input := "(* first *) val x = 1 (* trailing *)"
	raw, err := Lex(ast.NewSource("test.sml", input))
	if err != nil {
		t.Fatalf("Lex failed: %v", err)
	}
	tokens := AttachComments(raw)

	if tokens[0].Text() != "val" {
		t.Fatalf("first significant token = %q, want val", tokens[0].Text())
	}
	if len(tokens[0].LeadingComments) != 1 ||
		tokens[0].LeadingComments[0].Text() != "(* first *)" {
		t.Errorf("leading comments of val = %v", tokens[0].LeadingComments)
	}
	eof := tokens[len(tokens)-1]
	if eof.Kind != ast.KindEOF {
		t.Fatalf("last token kind = %v, want EOF", eof.Kind)
	}
	if len(eof.LeadingComments) != 1 ||
		eof.LeadingComments[0].Text() != "(* trailing *)" {
		t.Errorf("trailing comments = %v", eof.LeadingComments)
	}
}

func TestMLBMode(t *testing.T) {
	input := "local $(SML_LIB)/basis/basis.mlb foo.sml in structure Main end"
	tokens, err := LexMLB(ast.NewSource("sources.mlb", input))
	if err != nil {
		t.Fatalf("LexMLB failed: %v", err)
	}
	var kinds []ast.TokenKind
	var texts []string
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
		texts = append(texts, tok.Text())
	}
	wantKinds := []ast.TokenKind{
		ast.KindKeyword, // local
		ast.KindMLBPath, // $(SML_LIB)/basis/basis.mlb
		ast.KindMLBPath, // foo.sml
		ast.KindKeyword, // in
		ast.KindKeyword, // structure
		ast.KindIdentifier,
		ast.KindKeyword, // end
		ast.KindEOF,
	}
	if diff := cmp.Diff(wantKinds, kinds); diff != "" {
		t.Errorf("kind mismatch (-want +got):\n%s\ntokens: %v", diff, texts)
	}
	if texts[1] != "$(SML_LIB)/basis/basis.mlb" {
		t.Errorf("path token = %q", texts[1])
	}
}
