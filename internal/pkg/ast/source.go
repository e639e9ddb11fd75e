package ast

// Source is an immutable view of one input file. Tokens and locations
// reference it by offset; it outlives everything derived from it.
type Source struct {
	FilePath string
	Text     []rune
}

func NewSource(filePath string, content string) *Source {
	return &Source{FilePath: filePath, Text: []rune(content)}
}

func (s *Source) Len() uint32 {
	return uint32(len(s.Text))
}

func (s *Source) Slice(start, end uint32) string {
	return string(s.Text[start:end])
}

func (s *Source) Location(start, end uint32) Location {
	return Location{FilePath: s.FilePath, FileContent: s.Text, Start: start, End: end}
}
