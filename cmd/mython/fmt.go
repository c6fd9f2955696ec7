package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mythonlang/mython/internal/lexer"
	"github.com/mythonlang/mython/internal/parser"
	"github.com/mythonlang/mython/internal/prettyprinter"
)

// runFmt implements "mython fmt [-w] <file>": reformat a program to
// canonical style, printing to stdout or rewriting in place with -w.
func runFmt(args []string) error {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	write := fs.Bool("w", false, "write result back to the source file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: mython fmt [-w] <file>")
	}
	path := fs.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	l := lexer.New(string(data))
	p := parser.New(l.Tokenize())
	root := p.ParseProgram()

	if errs := append(l.Errors(), p.Errors()...); len(errs) > 0 {
		for _, e := range errs {
			if e.File == "" {
				e.File = path
			}
			fmt.Fprintf(os.Stderr, "- %s\n", e.Error())
		}
		return fmt.Errorf("%s has syntax errors; not formatted", path)
	}

	formatted := prettyprinter.New().Print(root)

	if *write {
		return os.WriteFile(path, []byte(formatted), 0o644)
	}
	_, err = fmt.Print(formatted)
	return err
}
