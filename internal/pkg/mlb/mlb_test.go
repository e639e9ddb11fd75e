package mlb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExpand(t *testing.T) {
	vars := PathVars{
		"ROOT": "/project",
		"LIB":  "$(ROOT)/lib",
	}
	tests := []struct {
		in   string
		want string
	}{
		{"plain.sml", "plain.sml"},
		{"$(ROOT)/a.sml", "/project/a.sml"},
		{"$(LIB)/b.sml", "/project/lib/b.sml"},
	}
	for _, tc := range tests {
		got, err := vars.Expand(tc.in)
		if err != nil {
			t.Errorf("Expand(%q) failed: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Expand(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExpandErrors(t *testing.T) {
	if _, err := (PathVars{}).Expand("$(MISSING)/a.sml"); err == nil {
		t.Error("undefined variable should be an error")
	}
	cyclic := PathVars{"A": "$(B)", "B": "$(A)"}
	if _, err := cyclic.Expand("$(A)/a.sml"); err == nil {
		t.Error("cyclic expansion should be an error")
	}
}

func TestSourceFilesFromContent(t *testing.T) {
	content := `local
  $(ROOT)/util.sml
  "quoted file.sig"
in
  main.sml
end`
	got, err := SourceFilesFromContent("sources.mlb", content, PathVars{"ROOT": "/r"})
	if err != nil {
		t.Fatalf("SourceFilesFromContent failed: %v", err)
	}
	want := []string{"/r/util.sml", "quoted file.sig", "main.sml"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
}

func TestSourceFilesRecursesIntoManifests(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	write := func(path, content string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write(filepath.Join(dir, "all.mlb"), "a.sml\nsub/nested.mlb\nb.sig\n")
	write(filepath.Join(sub, "nested.mlb"), "c.fun\n")

	got, err := SourceFiles(filepath.Join(dir, "all.mlb"), PathVars{})
	if err != nil {
		t.Fatalf("SourceFiles failed: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.sml"),
		filepath.Join(sub, "c.fun"),
		filepath.Join(dir, "b.sig"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
}

func TestSourceFilesDetectsCycles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "loop.mlb")
	if err := os.WriteFile(path, []byte("loop.mlb\nok.sml\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := SourceFiles(path, PathVars{})
	if err != nil {
		t.Fatalf("SourceFiles failed: %v", err)
	}
	want := []string{filepath.Join(dir, "ok.sml")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
}
