package doc

// Doc is a layout document. Groups decide between their flat and
// broken renderings; everything else renders the same way in both
// modes except the soft separators and the vertical concatenations.
type Doc interface {
	// width returns the flat width of the node in columns, or
	// infinite if the node can never render on one line. Results are
	// memoized per node.
	width(tabWidth int) int
}

const infinite = -1

type empty struct{}

type text struct {
	s string
	w int
}

type space struct{}

// softSpace renders as a space in flat mode and vanishes in broken
// mode.
type softSpace struct{}

// breakSpace is the dual: nothing in flat mode, a space in broken
// mode. Broken sequences need it to keep elements aligned behind the
// opening delimiter.
type breakSpace struct{}

type beside struct {
	l, r Doc
	w    int
}

// above is a hard vertical concatenation; it never flattens.
type above struct {
	l, r Doc
}

type aboveOrSpace struct {
	l, r Doc
	w    int
}

type aboveOrBeside struct {
	l, r Doc
	w    int
}

type group struct {
	d Doc
	w int
}

// indent raises the base indentation for its child by the configured
// indent width.
type indent struct {
	d Doc
	w int
}

const unmeasured = -2

func Empty() Doc {
	return &empty{}
}

func Text(s string) Doc {
	return &text{s: s, w: unmeasured}
}

func Space() Doc {
	return &space{}
}

func SoftSpace() Doc {
	return &softSpace{}
}

func BreakSpace() Doc {
	return &breakSpace{}
}

func Beside(docs ...Doc) Doc {
	var result Doc = &empty{}
	first := true
	for _, d := range docs {
		if first {
			result = d
			first = false
			continue
		}
		result = &beside{l: result, r: d, w: unmeasured}
	}
	return result
}

func Above(l, r Doc) Doc {
	return &above{l: l, r: r}
}

func AboveOrSpace(l, r Doc) Doc {
	return &aboveOrSpace{l: l, r: r, w: unmeasured}
}

func AboveOrBeside(l, r Doc) Doc {
	return &aboveOrBeside{l: l, r: r, w: unmeasured}
}

func Group(d Doc) Doc {
	return &group{d: d, w: unmeasured}
}

func Indent(d Doc) Doc {
	return &indent{d: d, w: unmeasured}
}

func addWidths(a, b int, extra int) int {
	if a == infinite || b == infinite {
		return infinite
	}
	return a + b + extra
}

func (*empty) width(int) int      { return 0 }
func (*space) width(int) int      { return 1 }
func (*softSpace) width(int) int  { return 1 }
func (*breakSpace) width(int) int { return 0 }

func (t *text) width(tabWidth int) int {
	if t.w == unmeasured {
		t.w = measure(t.s, tabWidth)
	}
	return t.w
}

func (b *beside) width(tabWidth int) int {
	if b.w == unmeasured {
		b.w = addWidths(b.l.width(tabWidth), b.r.width(tabWidth), 0)
	}
	return b.w
}

func (*above) width(int) int { return infinite }

func (a *aboveOrSpace) width(tabWidth int) int {
	if a.w == unmeasured {
		a.w = addWidths(a.l.width(tabWidth), a.r.width(tabWidth), 1)
	}
	return a.w
}

func (a *aboveOrBeside) width(tabWidth int) int {
	if a.w == unmeasured {
		a.w = addWidths(a.l.width(tabWidth), a.r.width(tabWidth), 0)
	}
	return a.w
}

func (g *group) width(tabWidth int) int {
	if g.w == unmeasured {
		g.w = g.d.width(tabWidth)
	}
	return g.w
}

func (i *indent) width(tabWidth int) int {
	if i.w == unmeasured {
		i.w = i.d.width(tabWidth)
	}
	return i.w
}

// measure computes the visible width of a single-line string, with
// tabs advancing to the next tab stop. Strings containing newlines
// have no flat width.
func measure(s string, tabWidth int) int {
	col := 0
	for _, c := range s {
		switch c {
		case '\n':
			return infinite
		case '\t':
			col = col - col%tabWidth + tabWidth
		default:
			col++
		}
	}
	return col
}
