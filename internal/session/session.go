// Package session launches the external multi-host terminal program
// (csshX by default) against a resolved address list.
//
// The program is spawned with the parent's stdin, stdout and stderr wired
// through directly, so the session is fully interactive and signals reach
// the child through the shared terminal. Arguments are passed via argv,
// never through a shell.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// DefaultProgram is the multiplexer binary used when no override is
// configured.
const DefaultProgram = "csshX"

// Launcher builds and runs the terminal-session command.
type Launcher struct {
	Program    string // binary name, resolved via PATH
	Login      string // optional ssh login override (-l)
	Fullscreen bool   // start the session fullscreen (-F)
}

// Args returns the argv tail for the session command: optional -l <login>,
// optional -F, then the address list.
func (l *Launcher) Args(addrs []string) []string {
	var args []string
	if l.Login != "" {
		args = append(args, "-l", l.Login)
	}
	if l.Fullscreen {
		args = append(args, "-F")
	}
	return append(args, addrs...)
}

// CommandLine renders the full command for dry-run display.
func (l *Launcher) CommandLine(addrs []string) string {
	return strings.Join(append([]string{l.Program}, l.Args(addrs)...), " ")
}

// EnsureProgram checks that the session binary is on PATH, so a missing
// multiplexer surfaces as a clear error before anything is spawned.
func (l *Launcher) EnsureProgram() error {
	if _, err := exec.LookPath(l.Program); err != nil {
		return fmt.Errorf("%s not found in PATH", l.Program)
	}
	return nil
}

// Run spawns the session with inherited stdio and blocks until it exits.
// A non-zero child exit comes back as an *exec.ExitError.
func (l *Launcher) Run(ctx context.Context, addrs []string) error {
	cmd := exec.CommandContext(ctx, l.Program, l.Args(addrs)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// ExitCode extracts the child's exit status from a Run error. Errors that
// carry no exit status (spawn failures) map to 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}
