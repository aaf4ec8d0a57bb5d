// Package render prints tokens, diagnostics and parse errors for humans.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dutow/metamorf/pkg/compiler/lexer"
	"github.com/dutow/metamorf/pkg/compiler/parser"
	"github.com/dutow/metamorf/pkg/compiler/source"
	"github.com/muesli/termenv"
)

type styles struct {
	err, warn, code, loc, gutter, caret, help, dim lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		err:    r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		warn:   r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		code:   r.NewStyle().Bold(true),
		loc:    r.NewStyle().Foreground(lipgloss.Color("12")),
		gutter: r.NewStyle().Foreground(lipgloss.Color("12")),
		caret:  r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		help:   r.NewStyle().Foreground(lipgloss.Color("10")),
		dim:    r.NewStyle().Faint(true),
	}
}

// Printer writes reports to one destination. It is not safe for
// concurrent use.
type Printer struct {
	w       io.Writer
	lines   []string
	limit   int
	shown   int
	dropped int
	st      styles
}

// New returns a Printer for diagnostics about src. With color false the
// output carries no escape sequences. A limit of 0 prints every
// diagnostic.
func New(w io.Writer, src string, color bool, limit int) *Printer {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{
		w:     w,
		lines: strings.Split(src, "\n"),
		limit: limit,
		st:    newStyles(r),
	}
}

// Tokens prints one line per token: position, kind, quoted text and a
// marker for erroneous tokens.
func (p *Printer) Tokens(toks []lexer.Token) {
	for _, tok := range toks {
		kind := fmt.Sprintf("%-19s", tok.Kind)
		line := fmt.Sprintf("%-7s %s %q", tok.Range.Start, kind, tok.Text)
		if tok.Err {
			line += " " + p.st.err.Render("error")
		}
		fmt.Fprintln(p.w, line)
	}
}

// Diagnostics prints ds in order until the limit is reached. The rest
// are counted and mentioned by Summary.
func (p *Printer) Diagnostics(ds []source.Diagnostic) {
	for _, d := range ds {
		if p.limit > 0 && p.shown >= p.limit {
			p.dropped++
			continue
		}
		p.shown++
		p.diagnostic(d)
	}
}

func (p *Printer) diagnostic(d source.Diagnostic) {
	sev := p.st.err
	if d.Message.Severity() == source.SeverityWarning {
		sev = p.st.warn
	}
	fmt.Fprintf(p.w, "%s: %s%s %s\n",
		p.st.loc.Render(location(d.File, d.Range.Start)),
		sev.Render(d.Message.Severity().String()),
		p.st.code.Render(fmt.Sprintf("[E%03d]:", d.Message.Code())),
		d.Message.Text())
	p.snippet(d.Range)
	if d.Suggestion != "" {
		fmt.Fprintf(p.w, "%s %s\n", p.st.help.Render("  help:"), d.Suggestion)
	}
}

// ParseError prints a parse failure with the same layout as a
// diagnostic. It is never subject to the limit.
func (p *Printer) ParseError(err *parser.Error) {
	fmt.Fprintf(p.w, "%s: %s %s\n",
		p.st.loc.Render(location(err.File, err.Got.Range.Start)),
		p.st.err.Render("error:"),
		err.Detail())
	p.snippet(err.Range())
}

// Summary prints how many diagnostics were left out, if any.
func (p *Printer) Summary() {
	if p.dropped == 0 {
		return
	}
	noun := "diagnostics"
	if p.dropped == 1 {
		noun = "diagnostic"
	}
	fmt.Fprintln(p.w, p.st.dim.Render(fmt.Sprintf("... and %d more %s (raise -max-diagnostics to see them)", p.dropped, noun)))
}

// Dropped returns the number of diagnostics Summary will mention.
func (p *Printer) Dropped() int { return p.dropped }

// snippet prints the source line of r.Start with carets under the range.
// Ranges spanning lines are underlined to the end of the first line.
func (p *Printer) snippet(r source.Range) {
	idx := r.Start.Line - 1
	if idx < 0 || idx >= len(p.lines) {
		return
	}
	line := strings.TrimSuffix(p.lines[idx], "\r")
	col := r.Start.Column
	if col > len(line) {
		col = len(line)
	}
	width := 1
	if r.End.Line == r.Start.Line && r.End.Column > col {
		width = r.End.Column - col
	} else if r.End.Line > r.Start.Line && len(line) > col {
		width = len(line) - col
	}

	num := fmt.Sprintf("%d", r.Start.Line)
	pad := strings.Repeat(" ", len(num))
	fmt.Fprintf(p.w, " %s %s\n", p.st.gutter.Render(num+" |"), line)
	fmt.Fprintf(p.w, " %s %s%s\n", p.st.gutter.Render(pad+" |"), indent(line[:col]), p.st.caret.Render(strings.Repeat("^", width)))
}

// indent keeps tabs so carets line up under tab-indented source.
func indent(prefix string) string {
	var b strings.Builder
	for _, c := range prefix {
		if c == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func location(file string, pos source.Position) string {
	if file == "" {
		return pos.String()
	}
	return file + ":" + pos.String()
}
