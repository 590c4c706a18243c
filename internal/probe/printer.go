package probe

import (
	"fmt"
	"io"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const defaultRuleWidth = 60

// Printer renders titled response blocks: the payload as indented JSON
// between separator rules, plus numbered step headers for the scripted
// sequence.
type Printer struct {
	out   io.Writer
	width int
	title lipgloss.Style
	rule  lipgloss.Style
}

// fdWriter is satisfied by *os.File; buffers and pipes without a descriptor
// keep the default rule width.
type fdWriter interface {
	Fd() uintptr
}

func NewPrinter(out io.Writer) *Printer {
	width := defaultRuleWidth
	// Shrink the rule on narrow terminals; keep the default when the output
	// is not a tty (tests, pipes).
	if f, ok := out.(fdWriter); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 && w < width {
			width = w
		}
	}
	return &Printer{
		out:   out,
		width: width,
		title: lipgloss.NewStyle().Bold(true),
		rule:  lipgloss.NewStyle().Faint(true),
	}
}

// Response prints a titled block containing the payload as indented JSON.
func (p *Printer) Response(title string, payload map[string]any) {
	rule := p.rule.Render(strings.Repeat("=", p.width))
	fmt.Fprintf(p.out, "\n%v\n%v\n%v\n", rule, p.title.Render(title), rule)
	fmt.Fprintf(p.out, "%v\n", debug.IndentedJsonFmt(payload))
}

// Step prints a numbered header for one step of the scripted sequence.
func (p *Printer) Step(n int, title string) {
	fmt.Fprintf(p.out, "\n%d. %v\n", n, title)
}
