package doc

import "strings"

// Settings configure the layout engine.
type Settings struct {
	MaxWidth    int
	RibbonFrac  float64
	IndentWidth int
	TabWidth    int
}

func DefaultSettings() Settings {
	return Settings{MaxWidth: 80, RibbonFrac: 1.0, IndentWidth: 2, TabWidth: 4}
}

func (s Settings) normalized() Settings {
	if s.MaxWidth < 1 {
		s.MaxWidth = 1
	}
	if s.RibbonFrac <= 0 || s.RibbonFrac > 1 {
		s.RibbonFrac = 1.0
	}
	if s.IndentWidth < 0 {
		s.IndentWidth = 0
	}
	if s.TabWidth < 1 {
		s.TabWidth = 1
	}
	return s
}

const (
	padNone = -1
	padBase = -2
)

type renderer struct {
	sb  strings.Builder
	s   Settings
	col int
	// lls is the column at which the current line's content starts;
	// aboveOrBeside aligns continuation lines to it.
	lls int
	// pending is the deferred-newline state: padNone for no pending
	// newline, padBase to pad to the base current at flush time, or a
	// fixed column.
	pending int
}

// Render lays out a document and returns the final text, without a
// trailing newline.
func Render(d Doc, settings Settings) string {
	r := &renderer{s: settings.normalized(), pending: padNone}
	r.render(d, 0, false)
	return r.sb.String()
}

func (r *renderer) flush(base int) {
	if r.pending == padNone {
		return
	}
	target := r.pending
	if target == padBase {
		target = base
	}
	r.sb.WriteString("\n")
	r.sb.WriteString(strings.Repeat(" ", target))
	r.col = target
	r.lls = target
	r.pending = padNone
}

func (r *renderer) write(s string, base int) {
	r.flush(base)
	r.sb.WriteString(s)
	r.col = advance(r.col, s, r.s.TabWidth)
}

// writeLines emits a text payload that may span lines; continuation
// lines are padded to the base indentation, keeping whatever relative
// indentation the payload itself carries.
func (r *renderer) writeLines(s string, base int) {
	r.flush(base)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if i > 0 {
			r.sb.WriteString("\n")
			r.sb.WriteString(strings.Repeat(" ", base))
			r.col = base
			r.lls = base
		}
		r.sb.WriteString(line)
		r.col = advance(r.col, line, r.s.TabWidth)
	}
}

func advance(col int, s string, tabWidth int) int {
	for _, c := range s {
		if c == '\t' {
			col = col - col%tabWidth + tabWidth
		} else {
			col++
		}
	}
	return col
}

// effCol is the column the next visible character will land on.
func (r *renderer) effCol(base int) int {
	switch r.pending {
	case padNone:
		return r.col
	case padBase:
		return base
	default:
		return r.pending
	}
}

func (r *renderer) fits(w int, base int) bool {
	if w == infinite {
		return false
	}
	budget := r.s.MaxWidth - r.effCol(base)
	ribbon := int(r.s.RibbonFrac * float64(r.s.MaxWidth-base))
	if ribbon < budget {
		budget = ribbon
	}
	return w <= budget
}

func (r *renderer) render(d Doc, base int, flat bool) {
	switch n := d.(type) {
	case *empty:
	case *text:
		if strings.ContainsRune(n.s, '\n') {
			r.writeLines(n.s, base)
		} else {
			r.write(n.s, base)
		}
	case *space:
		r.write(" ", base)
	case *softSpace:
		if flat {
			r.write(" ", base)
		}
	case *breakSpace:
		if !flat {
			r.write(" ", base)
		}
	case *beside:
		r.render(n.l, base, flat)
		r.render(n.r, base, flat)
	case *above:
		r.render(n.l, base, flat)
		r.pending = padBase
		r.render(n.r, base, flat)
	case *aboveOrSpace:
		if flat {
			r.render(n.l, base, true)
			r.write(" ", base)
			r.render(n.r, base, true)
		} else {
			r.render(n.l, base, false)
			r.pending = padBase
			r.render(n.r, base, false)
		}
	case *aboveOrBeside:
		if flat {
			r.render(n.l, base, true)
			r.render(n.r, base, true)
		} else {
			r.render(n.l, base, false)
			r.pending = r.lls
			r.render(n.r, base, false)
		}
	case *group:
		childFlat := flat || r.fits(n.width(r.s.TabWidth), base)
		r.render(n.d, base, childFlat)
	case *indent:
		r.render(n.d, base+r.s.IndentWidth, flat)
	}
}
