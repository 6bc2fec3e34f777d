package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/urfave/cli/v2"
	"github.com/vyPal/Carlos/lib/analyzer"
	"github.com/vyPal/Carlos/lib/parser"
)

const (
	historyFile = ".carlos_history"
	promptMain  = "carlos> "
	promptCont  = "   ...> "
)

func init() {
	commands = append(commands, &cli.Command{
		Name:     "repl",
		Usage:    "Check Carlos programs interactively",
		Category: "analyze",
		Action:   repl,
	})
}

func repl(c *cli.Context) error {
	fmt.Printf("Carlos %s. Each input is checked as a whole program; :quit exits.\n", version)

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
			return nil
		}

		switch strings.TrimSpace(src) {
		case "":
			continue
		case ":quit", ":q":
			return nil
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		prog, err := parser.ParseString("<repl>", src)
		if err != nil {
			fmt.Fprintln(os.Stderr, color.RedString("%s", diagnostic(err)))
			continue
		}
		analyzed, err := analyzer.Analyze(prog)
		if err != nil {
			fmt.Fprintln(os.Stderr, color.RedString("%s", diagnostic(err)))
			continue
		}
		color.Green("ok")
		for _, line := range summarize(analyzer.ScanSymbols(analyzed)) {
			fmt.Println(line)
		}
	}
}

// readProgram collects lines until they form a complete input. It returns
// false at end of input or when the user aborts.
func readProgram(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if complete(b.String()) {
			return b.String(), true
		}
	}
}

// complete reports whether src can be handed to the parser: brackets are
// balanced and the last token ends a statement. Commands are always
// complete.
func complete(src string) bool {
	trimmed := strings.TrimSpace(src)
	if trimmed == "" || strings.HasPrefix(trimmed, ":") {
		return true
	}
	if !balanced(trimmed) {
		return false
	}
	return strings.HasSuffix(trimmed, ";") || strings.HasSuffix(trimmed, "}")
}

// balanced reports whether every (, [ and { in src is closed. Brackets in
// strings and comments are ignored. An excess closer counts as balanced so
// the parser can report it.
func balanced(src string) bool {
	depth := 0
	inString, escaped := false, false
	for i := 0; i < len(src); i++ {
		ch := src[i]
		switch {
		case inString:
			if escaped {
				escaped = false
			} else if ch == '\\' {
				escaped = true
			} else if ch == '"' {
				inString = false
			}
		case ch == '"':
			inString = true
		case ch == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case ch == '(' || ch == '[' || ch == '{':
			depth++
		case ch == ')' || ch == ']' || ch == '}':
			depth--
		}
	}
	return depth <= 0 && !inString
}

func summarize(symbols []analyzer.Symbol) []string {
	lines := make([]string, 0, len(symbols))
	for _, s := range symbols {
		lines = append(lines, fmt.Sprintf("%s %s: %s", s.Kind, s.Name, s.Type))
	}
	return lines
}
