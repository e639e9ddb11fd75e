package lexer

import (
	"fmt"
	"unicode"

	"github.com/T-Brick/parse-sml/internal/pkg/ast"
	"github.com/T-Brick/parse-sml/internal/pkg/common"
)

// Mode selects the token set: plain SML source, or MLB build manifests
// which additionally lex $(NAME) path variables and use their own
// keyword list.
type Mode int

const (
	ModeSML Mode = iota
	ModeMLB
)

var reservedWords = map[string]bool{
	"abstype": true, "and": true, "andalso": true, "as": true,
	"case": true, "datatype": true, "do": true, "else": true,
	"end": true, "eqtype": true, "exception": true, "fn": true,
	"fun": true, "functor": true, "handle": true, "if": true,
	"in": true, "include": true, "infix": true, "infixr": true,
	"let": true, "local": true, "nonfix": true, "of": true,
	"op": true, "open": true, "orelse": true, "raise": true,
	"rec": true, "sharing": true, "sig": true, "signature": true,
	"struct": true, "structure": true, "then": true, "type": true,
	"val": true, "where": true, "while": true, "with": true,
	"withtype": true,
}

var mlbReservedWords = map[string]bool{
	"ann": true, "and": true, "bas": true, "basis": true, "end": true,
	"functor": true, "in": true, "let": true, "local": true,
	"open": true, "signature": true, "structure": true,
}

// Reserved symbols carved out of symbolic-identifier runs.
var reservedSymbols = map[string]bool{
	":": true, ":>": true, "|": true, "=": true, "=>": true,
	"->": true, "#": true,
}

const symbolicChars = "!%&$#+-/:<=>?@\\~`^|*"

func isSymbolicChar(c rune) bool {
	for _, x := range symbolicChars {
		if c == x {
			return true
		}
	}
	return false
}

func isAlphaNumChar(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' || c == '\''
}

func isDecDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c rune) bool {
	return isDecDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

type lexer struct {
	src    *ast.Source
	cursor uint32
	mode   Mode
	tokens []ast.Token
}

func (l *lexer) isOk() bool {
	return l.cursor < l.src.Len()
}

func (l *lexer) peek() rune {
	return l.src.Text[l.cursor]
}

func (l *lexer) peekAt(offset uint32) (rune, bool) {
	if l.cursor+offset >= l.src.Len() {
		return 0, false
	}
	return l.src.Text[l.cursor+offset], true
}

func (l *lexer) emit(kind ast.TokenKind, start uint32) {
	l.tokens = append(l.tokens, ast.Token{
		Kind:     kind,
		Location: l.src.Location(start, l.cursor),
	})
}

func (l *lexer) errorAt(start uint32, what string, explainFormat string, args ...any) error {
	return common.Error{
		Location: l.src.Location(start, l.cursor),
		What:     what,
		Explain:  fmt.Sprintf(explainFormat, args...),
	}
}

// Lex tokenizes an SML source. On error the tokens produced before the
// failure are returned alongside it so diagnostics can still be shown
// in context.
func Lex(src *ast.Source) ([]ast.Token, error) {
	return run(src, ModeSML)
}

// LexMLB tokenizes a build manifest.
func LexMLB(src *ast.Source) ([]ast.Token, error) {
	return run(src, ModeMLB)
}

func run(src *ast.Source, mode Mode) ([]ast.Token, error) {
	l := &lexer{src: src, mode: mode}
	for {
		l.skipWhiteSpace()
		start := l.cursor
		if !l.isOk() {
			l.emit(ast.KindEOF, start)
			return l.tokens, nil
		}
		if err := l.next(start); err != nil {
			return l.tokens, err
		}
	}
}

func (l *lexer) skipWhiteSpace() {
	for l.isOk() && unicode.IsSpace(l.peek()) {
		l.cursor++
	}
}

func (l *lexer) next(start uint32) error {
	c := l.peek()

	if c == '(' {
		if c2, ok := l.peekAt(1); ok && c2 == '*' {
			return l.lexComment(start)
		}
		l.cursor++
		l.emit(ast.KindPunct, start)
		return nil
	}
	if c == '"' {
		return l.lexString(start, ast.KindStringLiteral)
	}
	if c == '#' {
		if c2, ok := l.peekAt(1); ok && c2 == '"' {
			l.cursor++
			return l.lexString(start, ast.KindCharLiteral)
		}
		// # alone or part of a symbolic run; fall through below.
	}
	if l.mode == ModeMLB && isMLBPathStart(c) {
		return l.lexMLBPath(start)
	}
	if c == '~' {
		if c2, ok := l.peekAt(1); ok && isDecDigit(c2) {
			l.cursor++
			return l.lexNumber(start)
		}
	}
	if isDecDigit(c) {
		return l.lexNumber(start)
	}
	if c == '\'' {
		l.lexAlphaNum(start, ast.KindTypeVariable)
		return nil
	}
	if unicode.IsLetter(c) {
		l.lexAlphaNum(start, ast.KindIdentifier)
		return nil
	}
	if isSymbolicChar(c) {
		l.lexSymbolic(start)
		return nil
	}

	switch c {
	case ')', '[', ']', '{', '}', ',', ';':
		l.cursor++
		l.emit(ast.KindPunct, start)
		return nil
	case '_':
		l.cursor++
		l.emit(ast.KindPunct, start)
		return nil
	case '.':
		if c2, ok := l.peekAt(1); ok && c2 == '.' {
			if c3, ok := l.peekAt(2); ok && c3 == '.' {
				l.cursor += 3
				l.emit(ast.KindPunct, start)
				return nil
			}
		}
		l.cursor++
		l.emit(ast.KindPunct, start)
		return nil
	}

	l.cursor++
	return l.errorAt(start, "illegal character",
		"The character %q cannot begin any token.", string(c))
}

func (l *lexer) lexComment(start uint32) error {
	l.cursor += 2
	level := 1
	for l.isOk() {
		c := l.peek()
		if c == '(' {
			if c2, ok := l.peekAt(1); ok && c2 == '*' {
				l.cursor += 2
				level++
				continue
			}
		}
		if c == '*' {
			if c2, ok := l.peekAt(1); ok && c2 == ')' {
				l.cursor += 2
				level--
				if level == 0 {
					l.emit(ast.KindBlockComment, start)
					return nil
				}
				continue
			}
		}
		l.cursor++
	}
	return l.errorAt(start, "unterminated comment",
		"Comments open with (* and close with *); they nest, so every opener needs its own closer.")
}

func (l *lexer) lexString(start uint32, kind ast.TokenKind) error {
	l.cursor++ // opening quote
	for l.isOk() {
		c := l.peek()
		if c == '"' {
			l.cursor++
			l.emit(kind, start)
			return nil
		}
		if c == '\n' {
			break
		}
		if c == '\\' {
			if err := l.lexEscape(); err != nil {
				return err
			}
			continue
		}
		l.cursor++
	}
	what := "unterminated string literal"
	if kind == ast.KindCharLiteral {
		what = "unterminated character literal"
	}
	return l.errorAt(start, what,
		"String literals must close with \" on the same line; use \\ gaps to span lines.")
}

func (l *lexer) lexEscape() error {
	start := l.cursor
	l.cursor++ // backslash
	if !l.isOk() {
		return l.errorAt(start, "invalid escape sequence", "The file ends in the middle of an escape.")
	}
	c := l.peek()
	switch c {
	case 'n', 't', 'a', 'b', 'v', 'f', 'r', '"', '\\':
		l.cursor++
		return nil
	case '^':
		l.cursor++
		if !l.isOk() {
			return l.errorAt(start, "invalid escape sequence", "Control escapes look like \\^C.")
		}
		c = l.peek()
		if c < '@' || c > '_' {
			l.cursor++
			return l.errorAt(start, "invalid escape sequence",
				"Control escapes \\^C require C in the range @ through _.")
		}
		l.cursor++
		return nil
	case 'u':
		l.cursor++
		for i := 0; i < 4; i++ {
			if !l.isOk() || !isHexDigit(l.peek()) {
				return l.errorAt(start, "invalid escape sequence",
					"Unicode escapes look like \\uXXXX with four hexadecimal digits.")
			}
			l.cursor++
		}
		return nil
	}
	if isDecDigit(c) {
		for i := 0; i < 3; i++ {
			if !l.isOk() || !isDecDigit(l.peek()) {
				return l.errorAt(start, "invalid escape sequence",
					"Decimal escapes look like \\ddd with three digits.")
			}
			l.cursor++
		}
		return nil
	}
	if unicode.IsSpace(c) {
		// \...\ gap: whitespace (including newlines) closed by a backslash.
		for l.isOk() && unicode.IsSpace(l.peek()) {
			l.cursor++
		}
		if !l.isOk() || l.peek() != '\\' {
			return l.errorAt(start, "invalid escape sequence",
				"A string gap opened with \\ must close with another \\ after the whitespace.")
		}
		l.cursor++
		return nil
	}
	l.cursor++
	return l.errorAt(start, "invalid escape sequence",
		"Unknown escape \\%s.", string(c))
}

func (l *lexer) lexNumber(start uint32) error {
	// Cursor sits on the first digit; a leading ~ is already consumed.
	kind := ast.KindIntLiteral
	digits := isDecDigit
	isHex := false
	if l.peek() == '0' {
		c2, ok2 := l.peekAt(1)
		c3, ok3 := l.peekAt(2)
		switch {
		case ok2 && c2 == 'w' && ok3 && c3 == 'x':
			l.cursor += 3
			kind = ast.KindWordLiteral
			digits = isHexDigit
			isHex = true
		case ok2 && c2 == 'w' && ok3 && isDecDigit(c3):
			l.cursor += 2
			kind = ast.KindWordLiteral
		case ok2 && c2 == 'x' && ok3 && isHexDigit(c3):
			l.cursor += 2
			digits = isHexDigit
			isHex = true
		}
	}
	if kind == ast.KindWordLiteral && l.src.Text[start] == '~' {
		return l.errorAt(start, "invalid numeric literal", "Word literals cannot be negative.")
	}

	n := 0
	for l.isOk() && digits(l.peek()) {
		l.cursor++
		n++
	}
	if n == 0 {
		return l.errorAt(start, "invalid numeric literal", "Digits are required after the base prefix.")
	}
	if kind == ast.KindWordLiteral || isHex {
		l.emit(kind, start)
		return nil
	}

	isReal := false
	if l.isOk() && l.peek() == '.' {
		c2, ok := l.peekAt(1)
		if !ok || !isDecDigit(c2) {
			l.cursor++
			return l.errorAt(start, "invalid numeric literal",
				"A real literal needs digits on both sides of the point.")
		}
		l.cursor++
		for l.isOk() && isDecDigit(l.peek()) {
			l.cursor++
		}
		isReal = true
	}
	if l.isOk() && (l.peek() == 'e' || l.peek() == 'E') {
		c2, ok2 := l.peekAt(1)
		c3, ok3 := l.peekAt(2)
		if ok2 && isDecDigit(c2) || (ok2 && c2 == '~' && ok3 && isDecDigit(c3)) {
			l.cursor++
			if l.peek() == '~' {
				l.cursor++
			}
			for l.isOk() && isDecDigit(l.peek()) {
				l.cursor++
			}
			isReal = true
		}
	}
	if isReal {
		kind = ast.KindRealLiteral
	}
	l.emit(kind, start)
	return nil
}

func (l *lexer) lexAlphaNum(start uint32, kind ast.TokenKind) {
	for l.isOk() && isAlphaNumChar(l.peek()) {
		l.cursor++
	}
	if kind == ast.KindIdentifier {
		text := l.src.Slice(start, l.cursor)
		if l.reserved(text) {
			kind = ast.KindKeyword
		}
	}
	l.emit(kind, start)
}

func (l *lexer) reserved(text string) bool {
	if l.mode == ModeMLB {
		return mlbReservedWords[text]
	}
	return reservedWords[text]
}

func (l *lexer) lexSymbolic(start uint32) {
	for l.isOk() && isSymbolicChar(l.peek()) {
		l.cursor++
	}
	kind := ast.KindSymbolicIdentifier
	if reservedSymbols[l.src.Slice(start, l.cursor)] {
		kind = ast.KindPunct
	}
	l.emit(kind, start)
}

func isMLBPathStart(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) ||
		c == '.' || c == '/' || c == '$'
}

func isMLBPathChar(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) ||
		c == '.' || c == '/' || c == '-' || c == '_'
}

// lexMLBPath scans a manifest path, identifier, or $(NAME) reference.
// Paths may embed $(NAME) segments anywhere.
func (l *lexer) lexMLBPath(start uint32) error {
	sawPathChar := false
	vars := 0
	for l.isOk() {
		c := l.peek()
		if c == '$' {
			c2, ok := l.peekAt(1)
			if !ok || c2 != '(' {
				break
			}
			l.cursor += 2
			closed := false
			for l.isOk() {
				if l.peek() == ')' {
					l.cursor++
					closed = true
					break
				}
				l.cursor++
			}
			if !closed {
				return l.errorAt(start, "unterminated path variable",
					"Path variables look like $(NAME).")
			}
			vars++
			continue
		}
		if !isMLBPathChar(c) {
			break
		}
		if c == '.' || c == '/' {
			sawPathChar = true
		}
		l.cursor++
	}
	text := l.src.Slice(start, l.cursor)
	switch {
	case vars == 1 && !sawPathChar && text[0] == '$' && text[len(text)-1] == ')':
		l.emit(ast.KindMLBPathVar, start)
	case sawPathChar || vars > 0:
		l.emit(ast.KindMLBPath, start)
	case mlbReservedWords[text]:
		l.emit(ast.KindKeyword, start)
	default:
		l.emit(ast.KindIdentifier, start)
	}
	return nil
}

// AttachComments folds comment tokens into the LeadingComments of the
// next significant token and returns the significant tokens only. The
// EOF token collects any trailing comments.
func AttachComments(tokens []ast.Token) []ast.Token {
	var out []ast.Token
	var pending []ast.Token
	for _, t := range tokens {
		if t.IsComment() {
			pending = append(pending, t)
			continue
		}
		t.LeadingComments = pending
		pending = nil
		out = append(out, t)
	}
	return out
}
