package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v2"

	"github.com/T-Brick/parse-sml/internal/pkg/ast"
	"github.com/T-Brick/parse-sml/internal/pkg/common"
	"github.com/T-Brick/parse-sml/internal/pkg/doc"
	"github.com/T-Brick/parse-sml/internal/pkg/mlb"
	"github.com/T-Brick/parse-sml/internal/pkg/parser"
	"github.com/T-Brick/parse-sml/internal/pkg/printer"
)

const defaultConfigFile = "smlfmt.yaml"

// fileConfig mirrors the optional smlfmt.yaml; flags given explicitly
// on the command line win over it.
type fileConfig struct {
	MaxWidth    *int              `yaml:"max-width"`
	RibbonFrac  *float64          `yaml:"ribbon-frac"`
	IndentWidth *int              `yaml:"indent-width"`
	TabWidth    *int              `yaml:"tab-width"`
	PathVars    map[string]string `yaml:"mlb-path-vars"`
}

type pathVarFlag struct {
	vars mlb.PathVars
}

func (f *pathVarFlag) String() string { return "" }

func (f *pathVarFlag) Set(value string) error {
	name, val, ok := strings.Cut(value, " ")
	if !ok || name == "" {
		return fmt.Errorf("path variables are given as \"NAME VALUE\", got %q", value)
	}
	f.vars[name] = val
	return nil
}

func main() {
	pathVars := &pathVarFlag{vars: mlb.PathVars{}}

	force := flag.Bool("force", false, "overwrite files without confirmation")
	preview := flag.Bool("preview", false, "also write formatted output to stdout")
	previewOnly := flag.Bool("preview-only", false, "write formatted output to stdout only")
	watch := flag.Bool("watch", false, "keep running and reformat files when they change")
	ribbonFrac := flag.Float64("ribbon-frac", 1.0, "fraction of the width budget usable past the indentation, in (0, 1]")
	maxWidth := flag.Int("max-width", 80, "target line width")
	indentWidth := flag.Int("indent-width", 2, "spaces per indentation level")
	tabWidth := flag.Int("tab-width", 4, "width of tab characters when measuring")
	configPath := flag.String("config", "", "configuration file (default "+defaultConfigFile+" if present)")
	flag.Var(pathVars, "mlb-path-var", "definition \"NAME VALUE\" for $(NAME) in manifests (repeatable)")
	flag.Parse()

	settings := doc.Settings{
		MaxWidth:    *maxWidth,
		RibbonFrac:  *ribbonFrac,
		IndentWidth: *indentWidth,
		TabWidth:    *tabWidth,
	}
	explicit := map[string]bool{}
	flag.CommandLine.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	if err := applyConfig(*configPath, explicit, &settings, pathVars.vars); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := validateSettings(settings); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *previewOnly && *force {
		fmt.Fprintln(os.Stderr, "--preview-only and --force are incompatible")
		os.Exit(1)
	}
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "no input files, run as `smlfmt <file>.{sml,sig,fun,mlb} ...`")
		os.Exit(1)
	}

	files, err := collectFiles(flag.Args(), pathVars.vars)
	if err != nil {
		reportError(err)
		os.Exit(1)
	}

	ok := true
	for _, file := range files {
		if !formatFile(file, settings, *force, *preview, *previewOnly) {
			ok = false
		}
	}

	if *watch && !*previewOnly {
		watchFiles(files, settings, *force, *preview)
	}
	if !ok {
		os.Exit(1)
	}
}

func applyConfig(path string, explicit map[string]bool, settings *doc.Settings, vars mlb.PathVars) error {
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err != nil {
			return nil
		}
		path = defaultConfigFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read configuration: %w", err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if cfg.MaxWidth != nil && !explicit["max-width"] {
		settings.MaxWidth = *cfg.MaxWidth
	}
	if cfg.RibbonFrac != nil && !explicit["ribbon-frac"] {
		settings.RibbonFrac = *cfg.RibbonFrac
	}
	if cfg.IndentWidth != nil && !explicit["indent-width"] {
		settings.IndentWidth = *cfg.IndentWidth
	}
	if cfg.TabWidth != nil && !explicit["tab-width"] {
		settings.TabWidth = *cfg.TabWidth
	}
	for name, value := range cfg.PathVars {
		if _, ok := vars[name]; !ok {
			vars[name] = value
		}
	}
	return nil
}

func validateSettings(s doc.Settings) error {
	if s.MaxWidth < 1 {
		return fmt.Errorf("max-width must be at least 1, got %d", s.MaxWidth)
	}
	if s.RibbonFrac <= 0 || s.RibbonFrac > 1 {
		return fmt.Errorf("ribbon-frac must be in (0, 1], got %g", s.RibbonFrac)
	}
	if s.IndentWidth < 0 {
		return fmt.Errorf("indent-width must not be negative, got %d", s.IndentWidth)
	}
	if s.TabWidth < 1 {
		return fmt.Errorf("tab-width must be at least 1, got %d", s.TabWidth)
	}
	return nil
}

// collectFiles expands manifest arguments into the source files they
// reference and checks the extensions of everything else.
func collectFiles(args []string, vars mlb.PathVars) ([]string, error) {
	var files []string
	for _, arg := range args {
		switch ext := filepath.Ext(arg); ext {
		case ".mlb":
			nested, err := mlb.SourceFiles(arg, vars)
			if err != nil {
				return nil, err
			}
			files = append(files, nested...)
		case ".sml", ".sig", ".fun":
			files = append(files, arg)
		default:
			return nil, fmt.Errorf("unsupported file extension on %s (expected .sml, .sig, .fun, or .mlb)", arg)
		}
	}
	return files, nil
}

func formatFile(path string, settings doc.Settings, force, preview, previewOnly bool) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, common.NewSystemError(err))
		return false
	}
	content := string(data)
	tree, err := parser.Parse(ast.NewSource(path, content))
	if err != nil {
		reportError(err)
		return false
	}
	formatted := printer.Print(tree, settings)

	if preview || previewOnly {
		fmt.Print(formatted)
	}
	if previewOnly {
		return true
	}
	if formatted == content {
		return true
	}
	if !force && !confirmOverwrite(path) {
		return true
	}
	if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, common.NewSystemError(err))
		return false
	}
	return true
}

func confirmOverwrite(path string) bool {
	fmt.Fprintf(os.Stderr, "overwrite %s? [y/N] ", path)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func reportError(err error) {
	var diag common.Error
	if errors.As(err, &diag) {
		fmt.Fprint(os.Stderr, diag.Render())
		return
	}
	fmt.Fprintln(os.Stderr, err)
}

// watchFiles reformats files as they change until interrupted.
func watchFiles(files []string, settings doc.Settings, force, preview bool) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatal(err)
	}
	defer watcher.Close()

	watched := map[string]bool{}
	for _, file := range files {
		watched[file] = true
		if err := watcher.Add(file); err != nil {
			log.Printf("cannot watch %s: %v", file, err)
		}
	}
	log.Printf("watching %d file(s)", len(watched))

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Write != 0 && watched[event.Name] {
				log.Printf("reformatting %s", event.Name)
				formatFile(event.Name, settings, force, preview, false)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watch error: %v", err)
		}
	}
}
