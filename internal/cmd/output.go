package cmd

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"

	"github.com/Iron-Ham/relay/internal/config"
	"github.com/Iron-Ham/relay/internal/logging"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// live holds the logger of the running command so a config reload can
// adjust its level.
var live atomic.Pointer[logging.Logger]

func activeLogger() *logging.Logger {
	if l := live.Load(); l != nil {
		return l
	}
	return logging.NopLogger()
}

// newLogger builds the command logger from config and makes it the target of
// live level changes.
func newLogger(cfg config.LoggingConfig) (*logging.Logger, error) {
	logger, err := logging.New(logging.Options{
		Dir:    cfg.Dir,
		Level:  cfg.Level,
		Format: cfg.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	live.Store(logger)
	return logger, nil
}

// isTerminal reports whether w is a terminal. Styled output is only used for
// terminals so piped output stays plain.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the column count of w, or 0 when w is not a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// printer writes command output, styling it when the destination is a terminal.
// A non-zero width clips each line to that many columns.
type printer struct {
	w      io.Writer
	styled bool
	width  int
}

func newPrinter(w io.Writer) *printer {
	p := &printer{w: w, styled: isTerminal(w)}
	if p.styled {
		p.width = terminalWidth(w)
	}
	return p
}

// fit clips s to the printer width, counting visible columns only so escape
// sequences survive.
func (p *printer) fit(s string) string {
	if p.width <= 0 {
		return s
	}
	if p.width <= 3 {
		return "..."
	}
	if lipgloss.Width(s) <= p.width {
		return s
	}
	return ansi.Truncate(s, p.width, "...")
}

func (p *printer) render(style lipgloss.Style, s string) string {
	if !p.styled {
		return s
	}
	return style.Render(p.fit(s))
}

func (p *printer) heading(format string, args ...any) {
	fmt.Fprintln(p.w, p.render(headingStyle, fmt.Sprintf(format, args...)))
}

func (p *printer) line(format string, args ...any) {
	fmt.Fprintln(p.w, p.fit(fmt.Sprintf(format, args...)))
}

func (p *printer) muted(format string, args ...any) {
	fmt.Fprintln(p.w, p.render(mutedStyle, fmt.Sprintf(format, args...)))
}

func (p *printer) ok(format string, args ...any) {
	fmt.Fprintln(p.w, p.render(okStyle, fmt.Sprintf(format, args...)))
}

func (p *printer) fail(format string, args ...any) {
	fmt.Fprintln(p.w, p.render(failStyle, fmt.Sprintf(format, args...)))
}
