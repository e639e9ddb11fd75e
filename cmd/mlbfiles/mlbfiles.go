package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/T-Brick/parse-sml/internal/pkg/mlb"
)

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

// mlbfiles lists the source files referenced by build manifests, in
// order, one per line.
func main() {
	pathVars := &pathVarFlag{vars: mlb.PathVars{}}
	flag.Var(pathVars, "mlb-path-var", "definition \"NAME VALUE\" for $(NAME) in manifests (repeatable)")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "no input manifests, run as `mlbfiles <file>.mlb ...`")
		os.Exit(1)
	}
	for _, arg := range flag.Args() {
		files, err := mlb.SourceFiles(arg, pathVars.vars)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for _, file := range files {
			fmt.Println(file)
		}
	}
}
