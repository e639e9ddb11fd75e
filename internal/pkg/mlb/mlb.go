package mlb

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/T-Brick/parse-sml/internal/pkg/ast"
	"github.com/T-Brick/parse-sml/internal/pkg/common"
	"github.com/T-Brick/parse-sml/internal/pkg/lexer"
)

// PathVars supplies substitutions for $(NAME) references inside
// manifests. Values may themselves contain references.
type PathVars map[string]string

const maxExpansionDepth = 32

// Expand substitutes every $(NAME) in s, recursively.
func (v PathVars) Expand(s string) (string, error) {
	for depth := 0; ; depth++ {
		open := strings.Index(s, "$(")
		if open < 0 {
			return s, nil
		}
		if depth >= maxExpansionDepth {
			return "", fmt.Errorf("cyclic path variable expansion in %q", s)
		}
		closing := strings.Index(s[open:], ")")
		if closing < 0 {
			return "", fmt.Errorf("unterminated path variable in %q", s)
		}
		name := s[open+2 : open+closing]
		value, ok := v[name]
		if !ok {
			return "", fmt.Errorf("undefined path variable $(%s)", name)
		}
		s = s[:open] + value + s[open+closing+1:]
	}
}

func isSourceExt(ext string) bool {
	switch ext {
	case ".sml", ".sig", ".fun":
		return true
	}
	return false
}

// SourceFiles enumerates, in order, the SML source files referenced by
// the manifest at path, recursing into nested manifests. Nested paths
// resolve relative to the manifest that mentions them; a manifest is
// visited at most once.
func SourceFiles(path string, vars PathVars) ([]string, error) {
	visited := map[string]bool{}
	return sourceFiles(path, vars, visited)
}

func sourceFiles(path string, vars PathVars, visited map[string]bool) ([]string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if visited[abs] {
		return nil, nil
	}
	visited[abs] = true

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, common.NewSystemError(fmt.Errorf("failed to read manifest `%s`: %w", path, err))
	}
	tokens, err := lexer.LexMLB(ast.NewSource(path, string(data)))
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	var files []string
	for _, t := range tokens {
		var ref string
		switch t.Kind {
		case ast.KindMLBPath:
			ref = t.Text()
		case ast.KindStringLiteral:
			ref = strings.Trim(t.Text(), `"`)
		default:
			continue
		}
		expanded, err := vars.Expand(ref)
		if err != nil {
			return nil, common.Error{Location: t.Location, What: err.Error()}
		}
		if !filepath.IsAbs(expanded) {
			expanded = filepath.Join(dir, expanded)
		}
		switch ext := filepath.Ext(expanded); {
		case ext == ".mlb":
			nested, err := sourceFiles(expanded, vars, visited)
			if err != nil {
				return nil, err
			}
			files = append(files, nested...)
		case isSourceExt(ext):
			files = append(files, expanded)
		default:
			return nil, common.Error{
				Location: t.Location,
				What:     fmt.Sprintf("unsupported file extension in manifest: %s", ref),
				Explain:  "Manifests may reference .sml, .sig, .fun, and .mlb files.",
			}
		}
	}
	return files, nil
}

// SourceFilesFromContent is SourceFiles for an in-memory manifest; it
// does not recurse into nested manifests.
func SourceFilesFromContent(path string, content string, vars PathVars) ([]string, error) {
	tokens, err := lexer.LexMLB(ast.NewSource(path, content))
	if err != nil {
		return nil, err
	}
	var files []string
	for _, t := range tokens {
		var ref string
		switch t.Kind {
		case ast.KindMLBPath:
			ref = t.Text()
		case ast.KindStringLiteral:
			ref = strings.Trim(t.Text(), `"`)
		default:
			continue
		}
		expanded, err := vars.Expand(ref)
		if err != nil {
			return nil, common.Error{Location: t.Location, What: err.Error()}
		}
		files = append(files, expanded)
	}
	return files, nil
}
