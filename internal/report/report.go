// Package report implements the leveled console channels used across
// ec2-zcssh: error, warning, ok, info and debug, each gated by the run's
// verbosity mode. The reporter also owns the abort flag that decides whether
// the session launcher may run.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Mode is the console verbosity level for a single run.
type Mode int

const (
	Silent Mode = iota
	Quiet
	Normal
	Verbose
	Debug
)

// String returns the mode name as used in log fields.
func (m Mode) String() string {
	switch m {
	case Silent:
		return "silent"
	case Quiet:
		return "quiet"
	case Verbose:
		return "verbose"
	case Debug:
		return "debug"
	default:
		return "normal"
	}
}

// ModeFromFlags maps the mutually exclusive verbosity flags to a Mode.
// Cobra enforces exclusivity, so at most one of these is true.
func ModeFromFlags(verbose, quiet, silent, debug bool) Mode {
	switch {
	case debug:
		return Debug
	case verbose:
		return Verbose
	case quiet:
		return Quiet
	case silent:
		return Silent
	default:
		return Normal
	}
}

// Semantic colors, ANSI codes so they degrade cleanly on basic terminals.
const (
	colorError   lipgloss.Color = "1" // red
	colorOk      lipgloss.Color = "2" // green
	colorWarning lipgloss.Color = "3" // yellow
	colorMuted   lipgloss.Color = "8" // gray
)

var (
	errorStyle = lipgloss.NewStyle().Foreground(colorError)
	okStyle    = lipgloss.NewStyle().Foreground(colorOk)
	warnStyle  = lipgloss.NewStyle().Foreground(colorWarning)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

// Reporter writes leveled messages and tracks whether the run should abort.
// Errors always set the abort flag; warnings set it only when die-on-warning
// is active. Suppressing a message never suppresses the abort decision.
//
// All channels write to the error stream except Ok, which writes to stdout.
type Reporter struct {
	mode         Mode
	dieOnWarning bool
	aborted      bool
	out          io.Writer
	errOut       io.Writer
}

// New creates a Reporter writing to the process streams.
func New(mode Mode, dieOnWarning bool) *Reporter {
	return NewWithWriters(mode, dieOnWarning, os.Stdout, os.Stderr)
}

// NewWithWriters creates a Reporter with explicit streams, for tests.
func NewWithWriters(mode Mode, dieOnWarning bool, out, errOut io.Writer) *Reporter {
	return &Reporter{
		mode:         mode,
		dieOnWarning: dieOnWarning,
		out:          out,
		errOut:       errOut,
	}
}

// Mode returns the active verbosity mode.
func (r *Reporter) Mode() Mode { return r.mode }

// Aborted reports whether an error, or a warning under die-on-warning,
// has been recorded.
func (r *Reporter) Aborted() bool { return r.aborted }

// Errorf records an error. The message is suppressed in silent mode but the
// abort flag is set regardless.
func (r *Reporter) Errorf(format string, args ...any) {
	r.aborted = true
	if r.mode == Silent {
		return
	}
	fmt.Fprintln(r.errOut, errorStyle.Render("error: "+fmt.Sprintf(format, args...)))
}

// Warnf records a warning. Under die-on-warning the abort flag is set even
// when quiet or silent mode suppresses the message itself.
func (r *Reporter) Warnf(format string, args ...any) {
	if r.dieOnWarning {
		r.aborted = true
	}
	if r.mode <= Quiet {
		return
	}
	fmt.Fprintln(r.errOut, warnStyle.Render("warning: "+fmt.Sprintf(format, args...)))
}

// Okf reports a success message on stdout. Suppressed in quiet and silent
// modes, never affects the abort flag.
func (r *Reporter) Okf(format string, args ...any) {
	if r.mode <= Quiet {
		return
	}
	fmt.Fprintln(r.out, okStyle.Render(fmt.Sprintf(format, args...)))
}

// Infof reports progress detail, shown only in verbose and debug modes.
func (r *Reporter) Infof(format string, args ...any) {
	if r.mode < Verbose {
		return
	}
	fmt.Fprintln(r.errOut, fmt.Sprintf(format, args...))
}

// Debugf reports internals, shown only in debug mode.
func (r *Reporter) Debugf(format string, args ...any) {
	if r.mode < Debug {
		return
	}
	fmt.Fprintln(r.errOut, mutedStyle.Render("debug: "+fmt.Sprintf(format, args...)))
}
