package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dutow/metamorf/internal/config"
	"github.com/dutow/metamorf/internal/render"
	"github.com/dutow/metamorf/internal/term"
	"github.com/dutow/metamorf/pkg/compiler/ast"
	"github.com/dutow/metamorf/pkg/compiler/lexer"
	"github.com/dutow/metamorf/pkg/compiler/parser"
	"github.com/dutow/metamorf/pkg/compiler/source"
	"github.com/dutow/metamorf/pkg/compiler/symbols"
	"go.uber.org/zap"
)

var version = "dev"

const usage = `Usage: metamorf <command> [flags] [file]

Commands:
  tokens <file>   print the token stream and diagnostics
  parse <file>    parse a { ... } program and print its declarations
  repl            read programs interactively
  version         print the version

A file argument of "-" reads standard input.
Run "metamorf <command> -h" for the flags of a command.
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// env carries what a command needs besides its arguments.
type env struct {
	cfg    config.Config
	ctx    *symbols.Context
	log    *zap.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(stderr, "metamorf: %v\n", err)
		return 2
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "version":
		fmt.Fprintf(stdout, "metamorf %s\n", version)
		return 0
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	case "tokens", "parse", "repl":
	default:
		fmt.Fprintf(stderr, "metamorf: unknown command %q\n\n%s", cmd, usage)
		return 2
	}

	ctx := symbols.New()
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg.RegisterFlags(fs)
	fs.Func("operators", "comma-separated operator spellings to declare", func(s string) error {
		for _, op := range strings.Split(s, ",") {
			if op = strings.TrimSpace(op); op != "" {
				ctx.DeclareOperator(op)
			}
		}
		return nil
	})
	if err := fs.Parse(rest); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	log := cfg.Logger(stderr)
	defer log.Sync()

	e := &env{cfg: cfg, ctx: ctx, log: log, stdin: stdin, stdout: stdout, stderr: stderr}

	switch cmd {
	case "repl":
		if fs.NArg() != 0 {
			fmt.Fprintln(stderr, "metamorf: repl takes no arguments")
			return 2
		}
		return e.repl()
	default:
		if fs.NArg() != 1 {
			fmt.Fprintf(stderr, "metamorf: %s needs exactly one file\n", cmd)
			return 2
		}
		file, src, err := e.readSource(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(stderr, "metamorf: %v\n", err)
			return 1
		}
		if cmd == "tokens" {
			return e.tokens(file, src)
		}
		return e.parse(file, src)
	}
}

func (e *env) readSource(path string) (file, src string, err error) {
	if path == "-" {
		b, err := io.ReadAll(e.stdin)
		if err != nil {
			return "", "", fmt.Errorf("read standard input: %w", err)
		}
		return "<stdin>", string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("read source: %w", err)
	}
	e.log.Debug("source loaded", zap.String("path", path), zap.Int("bytes", len(b)))
	return path, string(b), nil
}

// tokens prints every token up to and including EOF, or up to an operator
// the symbol context does not know, past which scanning cannot continue.
func (e *env) tokens(file, src string) int {
	var rep source.Reporter
	s := lexer.NewScanner(file, src, &rep)
	for {
		tok := s.Next(e.ctx.OperatorOrPrefix)
		if tok.Kind == lexer.KindEOF {
			break
		}
		if tok.Stalled() {
			e.log.Debug("scanning stopped at unknown operator", zap.Stringer("pos", tok.Range.Start))
			break
		}
	}
	e.log.Debug("scanned", zap.Int("tokens", len(s.Tokens())), zap.Int("diagnostics", rep.Len()))

	e.printer(e.stdout, s.Source()).Tokens(s.Tokens())
	return e.report(s, &rep, nil)
}

func (e *env) parse(file, src string) int {
	var rep source.Reporter
	s := lexer.NewScanner(file, src, &rep)
	block, err := parser.NewParser(s, e.ctx, parser.WithLogger(e.log)).Parse()
	if err == nil {
		printBlock(e.stdout, block)
	}
	return e.report(s, &rep, err)
}

// report prints the parse error and the diagnostics, and returns the exit
// code they amount to.
func (e *env) report(s *lexer.Scanner, rep *source.Reporter, err error) int {
	p := e.printer(e.stderr, s.Source())
	var perr *parser.Error
	if errors.As(err, &perr) {
		p.ParseError(perr)
	} else if err != nil {
		fmt.Fprintf(e.stderr, "metamorf: %v\n", err)
	}
	p.Diagnostics(rep.Messages())
	p.Summary()

	if err != nil || rep.HasErrors() {
		return 1
	}
	return 0
}

func (e *env) printer(w io.Writer, src string) *render.Printer {
	return render.New(w, src, e.cfg.UseColor(isTerminal(w)), e.cfg.MaxDiagnostics)
}

func printBlock(w io.Writer, block *ast.Block) {
	for _, stmt := range block.Statements {
		switch st := stmt.(type) {
		case *ast.VarDecl:
			fmt.Fprintf(w, "%s var %s %s = %s\n", st.Range().Start, st.Name.Text, st.Type.Text, st.Value.Text)
		default:
			fmt.Fprintf(w, "%s %T\n", st.Range().Start, st)
		}
	}
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminalFile(f)
}
