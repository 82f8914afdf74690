package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"klurigt/pkg/compiler"
	"klurigt/pkg/utils"
)

var (
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// errUsage marks failures caused by bad invocation rather than bad source.
var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("klurigt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	inPath := fs.String("in", "", "input source file path ('-' reads stdin)")
	outPath := fs.String("out", "", "output file path (default: input with .rs extension, '-' writes stdout)")
	emit := fs.String("emit", "rust", "what to write: rust, tokens or ast")
	strict := fs.Bool("strict", false, "reject unknown characters instead of skipping them")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *inPath == "" {
		fmt.Fprintln(stderr, "nothing to do: provide -in <file> or -in - to read stdin")
		fs.Usage()
		return 2
	}

	src, err := utils.ReadSource(*inPath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "failed to read input file %q: %v\n", *inPath, err)
		return 1
	}

	text, err := translate(src, *emit, *strict, stderr)
	if err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(stderr, err)
			return 2
		}
		reportError(stderr, err, src)
		return 1
	}

	output := *outPath
	if output == "" {
		output = utils.DefaultOutputPath(*inPath, ".rs")
	}
	if err := utils.WriteOutput(output, text, stdout); err != nil {
		fmt.Fprintf(stderr, "failed to write output file %q: %v\n", output, err)
		return 1
	}
	if output != utils.Stdio {
		full, _, err := utils.GetPathInfo(output)
		if err != nil {
			full = output
		}
		fmt.Fprintf(stderr, "translated %s -> %s\n", *inPath, full)
	}
	return 0
}

// translate produces the text selected by emit. Skipped characters are
// reported on stderr unless strict mode turns the first one into an error.
func translate(src, emit string, strict bool, stderr io.Writer) (string, error) {
	if emit != "rust" && emit != "tokens" && emit != "ast" {
		return "", fmt.Errorf("%w: unknown -emit value %q (want rust, tokens or ast)", errUsage, emit)
	}

	lx := compiler.NewLexer(src)
	var tokens []compiler.Token
	for tok := range lx.All() {
		tokens = append(tokens, tok)
	}
	for _, sk := range lx.Skipped() {
		if strict {
			return "", &compiler.LexError{Char: sk.Char, Line: sk.Line, Col: sk.Col}
		}
		fmt.Fprintln(stderr, warnStyle.Render(fmt.Sprintf("warning: skipped unknown character %q at %d:%d", sk.Char, sk.Line, sk.Col)))
	}

	var b strings.Builder
	if emit == "tokens" {
		for _, tok := range tokens {
			fmt.Fprintln(&b, tok)
		}
		return b.String(), nil
	}

	prog, err := compiler.Parse(tokens, src)
	if err != nil {
		return "", err
	}
	if emit == "rust" {
		return compiler.Generate(prog), nil
	}
	fmt.Fprintln(&b, prog)
	for _, s := range prog.Stmts {
		fmt.Fprintln(&b, " ", s)
	}
	return b.String(), nil
}

// reportError prints the caret snippet with a styled header line.
func reportError(w io.Writer, err error, src string) {
	msg := compiler.FormatError(err, src)
	header, rest, _ := strings.Cut(msg, "\n")
	fmt.Fprintln(w, errStyle.Render(header))
	if rest != "" {
		fmt.Fprint(w, rest)
	}
}
