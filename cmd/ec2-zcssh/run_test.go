package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZoidBB/ec2-zcssh/internal/report"
)

// resetState clears flag values and cobra flag state between executions.
func resetState(t *testing.T) {
	t.Helper()
	flagFilters, flagInstances = nil, nil
	flagLogin, flagRegion, flagProgram, flagConfig = "", "", "", ""
	flagPublic, flagFullscreen = false, false
	flagVerbose, flagQuiet, flagSilent, flagDebug = false, false, false, false
	flagDieOnWarning, flagDryRun = false, false
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	rootCmd.SilenceUsage = false
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	resetState(t)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestRun_NoSourcesIsValidationError(t *testing.T) {
	err := execute(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to connect to")
}

func TestVerbosityFlagsMutuallyExclusive(t *testing.T) {
	err := execute(t, "--verbose", "--quiet", "10.0.0.1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verbose")
	assert.Contains(t, err.Error(), "quiet")
}

func TestDieOnWarningExclusiveWithDryRun(t *testing.T) {
	err := execute(t, "--die-on-warning", "--dry-run", "10.0.0.1")
	require.Error(t, err)
}

func TestRun_DryRunWithExplicitIPs(t *testing.T) {
	// explicit IPs only: no inventory query, no exec
	err := execute(t, "--dry-run", "--silent", "10.0.0.1", "10.0.0.2")
	assert.NoError(t, err)
}

func TestRun_MalformedFilterIsFatal(t *testing.T) {
	err := execute(t, "--silent", "--filter", "tag:role")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed filter clause")
}

func TestRun_DieOnWarningAbortsBeforeLaunch(t *testing.T) {
	err := execute(t, "--die-on-warning", "--silent", "10.0.0.1", "10.0.0.1")
	require.Error(t, err)

	var ee *exitError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, 1, ee.code)
}

func newBufferedReporter(mode report.Mode, dieOnWarning bool) (*report.Reporter, *bytes.Buffer) {
	errOut := &bytes.Buffer{}
	return report.NewWithWriters(mode, dieOnWarning, &bytes.Buffer{}, errOut), errOut
}

func TestParseFilters_DuplicateWarnsButStillProcesses(t *testing.T) {
	reporter, errOut := newBufferedReporter(report.Normal, false)

	specs, err := parseFilters([]string{"tag:role=db", "tag:role=db"}, reporter)
	require.NoError(t, err)

	// the duplicate is warned about, not skipped
	assert.Len(t, specs, 2)
	assert.Equal(t, 1, strings.Count(errOut.String(), "duplicate filter"))
}

func TestResolveAll_ExplicitIPsDeduplicated(t *testing.T) {
	reporter, errOut := newBufferedReporter(report.Normal, false)

	hosts := resolveAll(context.Background(), resolveOptions{
		ips: []string{"10.0.0.1", "10.0.0.2", "10.0.0.1", "10.0.0.1"},
	}, reporter)

	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, hosts.Addrs())
	// exactly one warning per repeat occurrence
	assert.Equal(t, 2, strings.Count(errOut.String(), "duplicate address 10.0.0.1"))
	assert.False(t, reporter.Aborted())
}

func TestFirstOf(t *testing.T) {
	assert.Equal(t, "a", firstOf("a", "b"))
	assert.Equal(t, "b", firstOf("", "b"))
	assert.Equal(t, "", firstOf("", ""))
}
