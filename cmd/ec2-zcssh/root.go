package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ZoidBB/ec2-zcssh/internal/report"
)

var version = "0.2.0"

var (
	flagFilters    []string
	flagInstances  []string
	flagPublic     bool
	flagLogin      string
	flagFullscreen bool
	flagRegion     string
	flagProgram    string
	flagConfig     string

	flagVerbose bool
	flagQuiet   bool
	flagSilent  bool
	flagDebug   bool

	flagDieOnWarning bool
	flagDryRun       bool
)

var rootCmd = &cobra.Command{
	Use:   "ec2-zcssh [flags] [ip ...]",
	Short: "Open a multi-pane SSH session against EC2 instances",
	Long: `ec2-zcssh resolves EC2 instances to IP addresses and opens a
multi-pane terminal session (csshX) against all of them at once.

Instances can be named three ways, combined freely:
  - literal IP addresses as positional arguments
  - --filter with a boto-style attribute filter (name=value1:value2,...)
  - --instance with instance IDs

Duplicate addresses are dropped with a warning. With --die-on-warning any
warning aborts the run before the session is launched.`,
	Example: `  ec2-zcssh --filter tag:role=db,instance-state-name=running
  ec2-zcssh --filter tag:env=prod:staging --public --login admin
  ec2-zcssh --instance i-0abc123,i-0def456 10.1.2.3
  ec2-zcssh --dry-run --filter tag:role=web`,
	Version:       version,
	Args:          cobra.ArbitraryArgs,
	SilenceErrors: true,
	RunE:          run,
}

// Execute runs the root command, mapping run outcomes to exit codes.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// exitError ends the process with a specific code without further output.
// Used for the abort path and for propagating the session's exit status.
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit code %d", e.code) }

func init() {
	rootCmd.SetVersionTemplate(`ec2-zcssh {{.Version}}
`)

	rootCmd.Flags().StringArrayVarP(&flagFilters, "filter", "f", nil, "boto-style filter spec, repeatable (name=value1:value2,...)")
	rootCmd.Flags().StringSliceVarP(&flagInstances, "instance", "i", nil, "instance IDs, comma separated, repeatable")
	rootCmd.Flags().BoolVarP(&flagPublic, "public", "p", false, "connect to public IPs instead of private IPs")
	rootCmd.Flags().StringVarP(&flagLogin, "login", "l", "", "ssh login override")
	rootCmd.Flags().BoolVarP(&flagFullscreen, "fullscreen", "F", false, "start the session fullscreen")
	rootCmd.Flags().StringVarP(&flagRegion, "region", "r", "", "AWS region (default: environment / shared config)")
	rootCmd.Flags().StringVar(&flagProgram, "program", "", "terminal multiplexer binary (default csshX)")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "defaults file (default ~/.config/ec2-zcssh/config.yaml)")

	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "show progress detail")
	rootCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "errors only")
	rootCmd.Flags().BoolVar(&flagSilent, "silent", false, "no output at all")
	rootCmd.Flags().BoolVarP(&flagDebug, "debug", "d", false, "debug output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet", "silent", "debug")

	rootCmd.Flags().BoolVar(&flagDieOnWarning, "die-on-warning", false, "treat any warning as fatal, abort before launch")
	rootCmd.Flags().BoolVarP(&flagDryRun, "dry-run", "n", false, "resolve and print the host list without launching")
	rootCmd.MarkFlagsMutuallyExclusive("die-on-warning", "dry-run")
}

// setupLogging configures the global zerolog logger for the debug channel.
func setupLogging(mode report.Mode) {
	zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	switch mode {
	case report.Debug:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case report.Verbose:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case report.Silent:
		zerolog.SetGlobalLevel(zerolog.Disabled)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}
