package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dutow/metamorf/pkg/compiler/lexer"
	"github.com/dutow/metamorf/pkg/compiler/parser"
	"github.com/dutow/metamorf/pkg/compiler/source"
	"github.com/peterh/liner"
	"go.uber.org/zap"
)

const (
	promptMain = "metamorf> "
	promptCont = "     ...> "
)

// prompter is satisfied by *liner.State.
type prompter interface {
	Prompt(prompt string) (string, error)
}

// lineReader serves prompts from a non-interactive input. It prints no
// prompt.
type lineReader struct {
	sc *bufio.Scanner
}

func (r lineReader) Prompt(string) (string, error) {
	if r.sc.Scan() {
		return r.sc.Text(), nil
	}
	if err := r.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (e *env) repl() int {
	var in prompter = lineReader{sc: bufio.NewScanner(e.stdin)}
	var history func(string)

	if isTerminal(e.stdin) && isTerminal(e.stdout) {
		ln := liner.NewLiner()
		defer ln.Close()
		ln.SetCtrlCAborts(true)

		if path := e.cfg.HistoryFile; path != "" {
			if f, err := os.Open(path); err == nil {
				_, _ = ln.ReadHistory(f)
				_ = f.Close()
			}
			defer func() {
				if f, err := os.Create(path); err == nil {
					_, _ = ln.WriteHistory(f)
					_ = f.Close()
				}
			}()
		}
		fmt.Fprintln(e.stdout, "metamorf", version, "- enter a { ... } block, :quit to exit")
		in, history = ln, ln.AppendHistory
	}

	for n := 1; ; {
		code, ok := readByParseProbe(in, e)
		if !ok {
			return 0
		}
		trimmed := strings.TrimSpace(code)
		switch {
		case trimmed == "":
			continue
		case trimmed == ":quit" || trimmed == ":q":
			return 0
		case strings.HasPrefix(trimmed, ":"):
			fmt.Fprintln(e.stderr, "unknown command, type :quit to exit")
			continue
		}

		if history != nil {
			history(strings.ReplaceAll(code, "\n", " "))
		}
		e.eval(fmt.Sprintf("<repl:%d>", n), code)
		n++
	}
}

// readByParseProbe reads lines until the accumulated text parses or fails
// for a reason more input cannot fix. ok is false at end of input.
func readByParseProbe(in prompter, e *env) (code string, ok bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := in.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				e.log.Warn("reading input failed", zap.Error(err))
			}
			if b.Len() > 0 {
				return b.String(), true
			}
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || strings.TrimSpace(src) == "" {
			return src, true
		}
		_, perr := parser.NewParser(lexer.NewScanner("", src, nil), e.ctx).Parse()
		if perr != nil && parser.Incomplete(perr) {
			continue
		}
		return src, true
	}
}

// eval parses one entry and prints its declarations or its errors.
func (e *env) eval(file, code string) {
	var rep source.Reporter
	s := lexer.NewScanner(file, code, &rep)
	block, err := parser.NewParser(s, e.ctx, parser.WithLogger(e.log)).Parse()
	if err == nil {
		printBlock(e.stdout, block)
	}
	e.report(s, &rep, err)
}
