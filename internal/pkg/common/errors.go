package common

import (
	"fmt"
	"strings"

	"github.com/T-Brick/parse-sml/internal/pkg/ast"
)

// Error is a diagnostic anchored to a source span. What is a short,
// machine-readable line naming the failed expectation; Explain is an
// optional longer hint for humans.
type Error struct {
	Location ast.Location
	What     string
	Explain  string
}

func (e Error) Error() string {
	cursorString := e.Location.CursorString()
	if cursorString == "" {
		return e.What
	}
	return fmt.Sprintf("%s %s", cursorString, e.What)
}

func NewError(loc ast.Location, what string) error {
	return Error{Location: loc, What: what}
}

func NewErrorExplained(loc ast.Location, what string, explainFormat string, args ...any) error {
	return Error{Location: loc, What: what, Explain: fmt.Sprintf(explainFormat, args...)}
}

// Render formats the diagnostic for a terminal: cursor line, the
// offending source line, an underline of the span, then Explain.
func (e Error) Render() string {
	sb := strings.Builder{}
	sb.WriteString(e.Error())
	sb.WriteString("\n")

	line, col, endLine, endCol := e.Location.GetLineAndColumn()
	text := e.Location.FileContent
	if text != nil {
		lineStart := 0
		curLine := 1
		for i, c := range text {
			if curLine == line {
				lineStart = i
				break
			}
			if c == '\n' {
				curLine++
				lineStart = i + 1
			}
		}
		lineEnd := lineStart
		for lineEnd < len(text) && text[lineEnd] != '\n' {
			lineEnd++
		}
		sb.WriteString("  ")
		sb.WriteString(string(text[lineStart:lineEnd]))
		sb.WriteString("\n  ")
		width := 1
		if endLine == line && endCol > col {
			width = endCol - col
		} else if endLine > line {
			width = lineEnd - lineStart - (col - 1)
		}
		if width < 1 {
			width = 1
		}
		sb.WriteString(strings.Repeat(" ", col-1))
		sb.WriteString(strings.Repeat("^", width))
		sb.WriteString("\n")
	}

	if e.Explain != "" {
		sb.WriteString(e.Explain)
		sb.WriteString("\n")
	}
	return sb.String()
}

func NewSystemError(err error) error {
	return systemError{inner: err}
}

type systemError struct {
	inner error
}

func (e systemError) Error() string {
	return fmt.Sprintf("system error: %v", e.inner)
}

func (e systemError) Unwrap() error {
	return e.inner
}
