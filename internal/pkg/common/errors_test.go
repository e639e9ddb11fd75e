package common

import (
	"strings"
	"testing"

	"github.com/T-Brick/parse-sml/internal/pkg/ast"
)

func TestErrorRender(t *testing.T) {
	content := []rune("val s = \"oops")
	err := Error{
		Location: ast.NewLocation("test.sml", content, 8, 13),
		What:     "unterminated string literal",
		Explain:  "Close the string with a double quote.",
	}

	rendered := err.Render()
	for _, want := range []string{
		"test.sml:1:9 unterminated string literal",
		"val s = \"oops",
		"^^^^^",
		"Close the string with a double quote.",
	} {
		if !strings.Contains(rendered, want) {
			t.Errorf("rendered diagnostic missing %q:\n%s", want, rendered)
		}
	}
}

func TestErrorWithoutLocation(t *testing.T) {
	err := Error{What: "out of range"}
	if got := err.Error(); got != "out of range" {
		t.Errorf("Error() = %q", got)
	}
}
