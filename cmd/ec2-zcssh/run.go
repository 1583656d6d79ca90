package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ZoidBB/ec2-zcssh/internal/config"
	"github.com/ZoidBB/ec2-zcssh/internal/filterspec"
	"github.com/ZoidBB/ec2-zcssh/internal/hostlist"
	"github.com/ZoidBB/ec2-zcssh/internal/inventory"
	"github.com/ZoidBB/ec2-zcssh/internal/report"
	"github.com/ZoidBB/ec2-zcssh/internal/session"
)

func run(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && len(flagFilters) == 0 && len(flagInstances) == 0 {
		return fmt.Errorf("nothing to connect to: give at least one ip, --filter or --instance")
	}

	// Past validation; failures from here on are not usage errors.
	cmd.SilenceUsage = true

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	mode := report.ModeFromFlags(flagVerbose, flagQuiet, flagSilent, flagDebug)
	setupLogging(mode)
	reporter := report.New(mode, flagDieOnWarning)

	// Malformed filter syntax is fatal, not an escalatable warning.
	specs, err := parseFilters(flagFilters, reporter)
	if err != nil {
		return err
	}

	launcher := &session.Launcher{
		Program:    firstOf(flagProgram, cfg.Program),
		Login:      firstOf(flagLogin, cfg.Login),
		Fullscreen: flagFullscreen,
	}

	hosts := resolveAll(cmd.Context(), resolveOptions{
		ips:       args,
		specs:     specs,
		instances: flagInstances,
		region:    firstOf(flagRegion, cfg.Region),
		public:    flagPublic || cfg.Public,
	}, reporter)

	if reporter.Aborted() {
		return &exitError{code: 1}
	}

	reporter.Okf("connecting to %d hosts: %s", hosts.Len(), strings.Join(hosts.Addrs(), " "))

	if flagDryRun {
		reporter.Okf("dry-run: would exec %s", launcher.CommandLine(hosts.Addrs()))
		return nil
	}

	if err := launcher.EnsureProgram(); err != nil {
		reporter.Errorf("%v", err)
		return &exitError{code: 1}
	}

	reporter.Infof("exec %s", launcher.CommandLine(hosts.Addrs()))
	if err := launcher.Run(cmd.Context(), hosts.Addrs()); err != nil {
		return &exitError{code: session.ExitCode(err)}
	}
	return nil
}

// loadConfig reads the defaults file. An explicitly named file must exist;
// the standard location is optional.
func loadConfig() (*config.Config, error) {
	if flagConfig != "" {
		return config.Load(flagConfig)
	}
	return config.LoadDefault()
}

// parseFilters parses every raw filter string in order. A raw string seen
// before is warned about but still parsed and later queried; the warning is
// the only dedup applied.
func parseFilters(raws []string, reporter *report.Reporter) ([]filterspec.Spec, error) {
	specs := make([]filterspec.Spec, 0, len(raws))
	seen := make(map[string]bool)

	for _, raw := range raws {
		if seen[raw] {
			reporter.Warnf("duplicate filter %q", raw)
		}
		seen[raw] = true

		spec, err := filterspec.Parse(raw)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

type resolveOptions struct {
	ips       []string
	specs     []filterspec.Spec
	instances []string
	region    string
	public    bool
}

// resolveAll merges the three sources in fixed order: explicit IPs, filter
// results, then instance-ID results. Resolution errors are reported and the
// remaining sources still run; the reporter's abort flag carries the final
// verdict.
func resolveAll(ctx context.Context, opts resolveOptions, reporter *report.Reporter) *hostlist.List {
	hosts := &hostlist.List{}

	for _, ip := range opts.ips {
		addHost(hosts, ip, reporter)
	}

	if len(opts.specs) == 0 && len(opts.instances) == 0 {
		return hosts
	}

	resolver, err := inventory.New(ctx, opts.region, opts.public, reporter)
	if err != nil {
		reporter.Errorf("%v", err)
		return hosts
	}

	for _, spec := range opts.specs {
		reporter.Infof("resolving filter %q", spec.Raw)
		resolved, err := resolver.ByFilter(ctx, spec)
		if err != nil {
			reporter.Errorf("%v", err)
			continue
		}
		for _, addr := range inventory.Addrs(resolved) {
			addHost(hosts, addr, reporter)
		}
	}

	if len(opts.instances) > 0 {
		reporter.Infof("resolving instances %s", strings.Join(opts.instances, ", "))
		resolved, err := resolver.ByInstanceIDs(ctx, opts.instances)
		if err != nil {
			reporter.Errorf("%v", err)
		}
		for _, addr := range inventory.Addrs(resolved) {
			addHost(hosts, addr, reporter)
		}
	}

	return hosts
}

func addHost(hosts *hostlist.List, addr string, reporter *report.Reporter) {
	if !hosts.Add(addr) {
		reporter.Warnf("duplicate address %s ignored", addr)
	}
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
