package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	"klurigt/pkg/compiler"
)

const (
	historyFile = ".klurigt_history"
	promptMain  = "kl> "
	promptCont  = "... "
	banner      = "klurigt REPL. Type :help for commands, Ctrl+D to exit."
)

var (
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	codeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	infoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

const helpText = `:help     show this message
:strict   toggle strict mode (reject unknown characters)
:quit     exit`

// session holds the settings that persist between inputs.
type session struct {
	strict bool
}

// command runs a ':' command and reports whether the REPL should exit.
func (s *session) command(cmd string) (quit bool, msg string) {
	switch strings.ToLower(strings.TrimSpace(cmd)) {
	case ":quit", ":q":
		return true, ""
	case ":help":
		return false, helpText
	case ":strict":
		s.strict = !s.strict
		if s.strict {
			return false, "strict mode on"
		}
		return false, "strict mode off"
	}
	return false, fmt.Sprintf("unknown command %s. Type :help for commands.", strings.TrimSpace(cmd))
}

// render compiles src and returns either the styled Rust output or the styled
// error snippet.
func (s *session) render(src string) (string, bool) {
	out, err := compiler.Compile(src, compiler.Options{Strict: s.strict})
	if err != nil {
		return styleError(compiler.FormatError(err, src)), false
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	for i, l := range lines {
		lines[i] = codeStyle.Render(l)
	}
	return strings.Join(lines, "\n"), true
}

func styleError(msg string) string {
	header, rest, _ := strings.Cut(msg, "\n")
	return errStyle.Render(header) + "\n" + strings.TrimSuffix(rest, "\n")
}

// needsMore reports whether src is a prefix of a program that more lines
// could complete.
func needsMore(src string) bool {
	tokens := compiler.Lex(src)
	if len(tokens) == 0 {
		return false
	}
	_, err := compiler.Parse(tokens, src)
	return compiler.IsIncomplete(err)
}

func main() {
	s := &session{}
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		os.Exit(runBatch(s, os.Stdin, os.Stdout, os.Stderr))
	}
	os.Exit(runInteractive(s))
}

// runBatch treats the whole of r as a single program.
func runBatch(s *session, r io.Reader, stdout, stderr io.Writer) int {
	data, err := io.ReadAll(r)
	if err != nil {
		fmt.Fprintln(stderr, "read error:", err)
		return 1
	}
	text, ok := s.render(string(data))
	if !ok {
		fmt.Fprintln(stderr, text)
		return 1
	}
	fmt.Fprintln(stdout, text)
	return 0
}

func runInteractive(s *session) int {
	fmt.Println(infoStyle.Render(banner))

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		src, ok := readProgram(ln)
		if !ok {
			fmt.Println()
			return 0
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			quit, msg := s.command(src)
			if quit {
				return 0
			}
			fmt.Println(infoStyle.Render(msg))
			continue
		}

		text, ok := s.render(src)
		if !ok {
			fmt.Fprintln(os.Stderr, text)
			continue
		}
		fmt.Println(text)
	}
}

// readProgram collects lines until they form a complete program or a definite
// error. Ctrl+C drops the pending input; false means end of input.
func readProgram(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			fmt.Println(infoStyle.Render("(input discarded)"))
			continue
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || !needsMore(src) {
			return src, true
		}
	}
}
