package doc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func settingsWith(maxWidth int) Settings {
	s := DefaultSettings()
	s.MaxWidth = maxWidth
	return s
}

func TestGroupFlatVersusBroken(t *testing.T) {
	d := Group(AboveOrSpace(Text("ab"), Indent(Text("cd"))))

	if got := Render(d, settingsWith(80)); got != "ab cd" {
		t.Errorf("flat layout = %q, want %q", got, "ab cd")
	}
	if got := Render(d, settingsWith(4)); got != "ab\n  cd" {
		t.Errorf("broken layout = %q, want %q", got, "ab\n  cd")
	}
}

func TestAboveNeverFlattens(t *testing.T) {
	d := Group(Above(Text("a"), Text("b")))
	if got := Render(d, settingsWith(80)); got != "a\nb" {
		t.Errorf("layout = %q, want %q", got, "a\nb")
	}
}

func TestSequenceAlignment(t *testing.T) {
	d := Group(AboveOrBeside(
		AboveOrBeside(
			Beside(Text("("), BreakSpace(), Text("1")),
			Beside(Text(","), Space(), Text("2"))),
		Text(")")))

	if got := Render(d, settingsWith(80)); got != "(1, 2)" {
		t.Errorf("flat layout = %q, want %q", got, "(1, 2)")
	}
	want := "( 1\n, 2\n)"
	if got := Render(d, settingsWith(3)); got != want {
		t.Errorf("broken layout = %q, want %q", got, want)
	}
}

func TestSoftSpace(t *testing.T) {
	d := Group(Beside(Text("a"), SoftSpace(), Text("b")))
	if got := Render(d, settingsWith(80)); got != "a b" {
		t.Errorf("flat layout = %q, want %q", got, "a b")
	}
	if got := Render(d, settingsWith(1)); got != "ab" {
		t.Errorf("broken layout = %q, want %q", got, "ab")
	}
}

func TestRibbonConstrainsFlatLayout(t *testing.T) {
	d := Group(AboveOrSpace(Text("abc"), Text("de")))
	s := settingsWith(10)

	if got := Render(d, s); got != "abc de" {
		t.Errorf("layout without ribbon = %q, want %q", got, "abc de")
	}
	s.RibbonFrac = 0.5
	if got := Render(d, s); got != "abc\nde" {
		t.Errorf("layout with ribbon = %q, want %q", got, "abc\nde")
	}
}

func TestTabAwareMeasurement(t *testing.T) {
	d := Group(AboveOrSpace(Text("a\tb"), Text("c")))

	// a advances to 1, the tab to the next stop at 4, b to 5; with the
	// joining space and c the flat width is 7.
	if got := Render(d, settingsWith(7)); got != "a\tb c" {
		t.Errorf("flat layout = %q, want %q", got, "a\tb c")
	}
	if got := Render(d, settingsWith(6)); got != "a\tb\nc" {
		t.Errorf("broken layout = %q, want %q", got, "a\tb\nc")
	}
}

func TestMultiLineTextReindents(t *testing.T) {
	d := Group(AboveOrSpace(Text("x"), Indent(Text("(* a\n   b *)"))))
	want := "x\n  (* a\n     b *)"
	if got := Render(d, settingsWith(80)); got != want {
		t.Errorf("layout diff (-want +got):\n%s", cmp.Diff(want, got))
	}
}

func TestSettingsNormalization(t *testing.T) {
	s := Settings{MaxWidth: 0, RibbonFrac: 2.0, IndentWidth: -1, TabWidth: 0}.normalized()
	want := Settings{MaxWidth: 1, RibbonFrac: 1.0, IndentWidth: 0, TabWidth: 1}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("normalized settings mismatch (-want +got):\n%s", diff)
	}
}
