package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/mythonlang/mython/internal/analyzer"
	"github.com/mythonlang/mython/internal/backend"
	"github.com/mythonlang/mython/internal/config"
	"github.com/mythonlang/mython/internal/lexer"
	"github.com/mythonlang/mython/internal/parser"
	"github.com/mythonlang/mython/internal/pipeline"
)

var errHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)

func main() {
	// Catch panics and show a user-friendly error.
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r) // Re-panic to get a stack trace
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	args := os.Args

	if len(args) >= 2 {
		switch args[1] {
		case "repl":
			if err := runREPL(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s\n", err)
				os.Exit(1)
			}
			return
		case "fmt":
			if err := runFmt(args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s\n", err)
				os.Exit(1)
			}
			return
		case "help", "-h", "--help":
			printUsage()
			return
		}
	}

	sourceCode, filePath, err := readInput(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cfg, err := config.Discover(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	runPipeline(sourceCode, filePath, cfg)
}

// runPipeline executes a source text through lex, parse and tree-walk
// evaluation, reporting collected diagnostics on stderr.
func runPipeline(sourceCode, filePath string, cfg *config.Config) {
	ctx := pipeline.NewPipelineContext(sourceCode)
	ctx.FilePath = filePath
	ctx.Config = cfg
	ctx.Out = os.Stdout

	processingPipeline := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.SemanticAnalyzerProcessor{},
		backend.NewExecutionProcessor(backend.NewTreeWalk()),
	)

	finalContext := processingPipeline.Run(ctx)

	if len(finalContext.Errors) > 0 {
		header := "Processing failed with errors:"
		if useColor(cfg) {
			header = errHeaderStyle.Render(header)
		}
		fmt.Fprintln(os.Stderr, header)
		for _, err := range finalContext.Errors {
			fmt.Fprintf(os.Stderr, "- %s\n", err.Error())
		}
		os.Exit(1)
	}
}

func readInput(args []string) (string, string, error) {
	if len(args) >= 2 {
		path := args[1]
		if !isSourceFile(path) {
			return "", "", fmt.Errorf("%s is not a Mython source file (expected %s)",
				path, strings.Join(config.SourceFileExtensions, " or "))
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return "", "", err
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		return string(data), abs, nil
	}

	// Read from stdin
	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return "", "", fmt.Errorf("usage: %s <file%s> | %s repl | pipe from stdin",
			args[0], config.SourceFileExt, args[0])
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", "", err
	}
	return string(data), "", nil
}

func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func useColor(cfg *config.Config) bool {
	switch cfg.Color {
	case "always":
		return true
	case "never":
		return false
	}
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Printf("  mython <file%s>      run a Mython program\n", config.SourceFileExt)
	fmt.Println("  mython repl          start the interactive playground")
	fmt.Println("  mython fmt [-w] <f>  reformat a program")
	fmt.Println("  mython               read a program from stdin")
}
