package ast

import "fmt"

// Location is a half-open span [Start, End) of rune offsets into the
// file content it was produced from. Line and column numbers are
// derived on demand so tokens stay small.
type Location struct {
	FilePath    string
	FileContent []rune
	Start       uint32
	End         uint32
}

func NewLocation(filePath string, content []rune, start, end uint32) Location {
	return Location{FilePath: filePath, FileContent: content, Start: start, End: end}
}

func (loc Location) EqualsTo(other Location) bool {
	return loc.FilePath == other.FilePath && loc.Start == other.Start && loc.End == other.End
}

func (loc Location) IsEmpty() bool {
	return loc.FilePath == "" && loc.FileContent == nil
}

func (loc Location) Text() string {
	if loc.FileContent == nil {
		return ""
	}
	return string(loc.FileContent[loc.Start:loc.End])
}

func (loc Location) Size() uint32 {
	return loc.End - loc.Start
}

// GetLineAndColumn returns 1-based line/column pairs for both ends of
// the span.
func (loc Location) GetLineAndColumn() (startLine, startColumn, endLine, endColumn int) {
	line, column := 1, 1
	startLine, startColumn, endLine, endColumn = 1, 1, 1, 1
	for i := uint32(0); i <= uint32(len(loc.FileContent)); i++ {
		if i == loc.Start {
			startLine, startColumn = line, column
		}
		if i == loc.End {
			endLine, endColumn = line, column
		}
		if i == uint32(len(loc.FileContent)) {
			break
		}
		if loc.FileContent[i] == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return
}

func (loc Location) CursorString() string {
	if loc.IsEmpty() {
		return ""
	}
	line, col, _, _ := loc.GetLineAndColumn()
	return fmt.Sprintf("%s:%d:%d", loc.FilePath, line, col)
}
