// Package inventory resolves EC2 instances to IP addresses through the
// DescribeInstances API, either by attribute filter or by explicit
// instance-ID list.
package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/ZoidBB/ec2-zcssh/internal/filterspec"
	"github.com/ZoidBB/ec2-zcssh/internal/report"
)

// DescribeInstancesAPI is the slice of the EC2 API the resolver uses.
type DescribeInstancesAPI interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
}

// Host pairs an instance ID with its selected address. Resolution results
// keep API discovery order so downstream accumulation stays deterministic.
type Host struct {
	InstanceID string
	Addr       string
}

// Resolver queries EC2 inventory and selects the public or private address
// per instance. Instances without a usable address are skipped with a
// warning rather than failing the whole resolution.
type Resolver struct {
	client    DescribeInstancesAPI
	usePublic bool
	reporter  *report.Reporter
}

// New builds a Resolver on the default AWS credential chain. An empty
// region defers to the environment and shared config.
func New(ctx context.Context, region string, usePublic bool, reporter *report.Reporter) (*Resolver, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewWithClient(ec2.NewFromConfig(cfg), usePublic, reporter), nil
}

// NewWithClient builds a Resolver around an existing client, for tests.
func NewWithClient(client DescribeInstancesAPI, usePublic bool, reporter *report.Reporter) *Resolver {
	return &Resolver{client: client, usePublic: usePublic, reporter: reporter}
}

// ByFilter resolves all instances matching spec. A completed query that
// yields no usable address emits a warning naming the filter.
func (r *Resolver) ByFilter(ctx context.Context, spec filterspec.Spec) ([]Host, error) {
	filters := lo.Map(spec.Names(), func(name string, _ int) ec2types.Filter {
		return ec2types.Filter{Name: aws.String(name), Values: spec.Values(name)}
	})

	hosts, err := r.describe(ctx, &ec2.DescribeInstancesInput{Filters: filters})
	if err != nil {
		return nil, fmt.Errorf("describe instances for filter %q: %w", spec.Raw, err)
	}
	if len(hosts) == 0 {
		r.reporter.Warnf("filter %q matched no usable addresses", spec.Raw)
	}
	return hosts, nil
}

// ByInstanceIDs resolves the given instance IDs. A completed query that
// yields no usable address emits a warning naming the ID set.
func (r *Resolver) ByInstanceIDs(ctx context.Context, ids []string) ([]Host, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	hosts, err := r.describe(ctx, &ec2.DescribeInstancesInput{InstanceIds: ids})
	if err != nil {
		return nil, fmt.Errorf("describe instances %s: %w", strings.Join(ids, ","), err)
	}
	if len(hosts) == 0 {
		r.reporter.Warnf("instances %s yielded no usable addresses", strings.Join(ids, ", "))
	}
	return hosts, nil
}

// describe follows NextToken until the API stops returning one. Termination
// depends on the token alone: a page whose reservations yield no usable
// address still advances the loop.
func (r *Resolver) describe(ctx context.Context, input *ec2.DescribeInstancesInput) ([]Host, error) {
	var hosts []Host
	var nextToken *string
	page := 0

	for {
		input.NextToken = nextToken
		output, err := r.client.DescribeInstances(ctx, input)
		if err != nil {
			return nil, err
		}
		page++
		log.Debug().
			Int("page", page).
			Int("reservations", len(output.Reservations)).
			Msg("describe instances page")

		for _, reservation := range output.Reservations {
			for _, instance := range reservation.Instances {
				if host, ok := r.selectAddr(instance); ok {
					hosts = append(hosts, host)
				}
			}
		}

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	return hosts, nil
}

// selectAddr picks the configured address of an instance, warning and
// skipping when it is absent.
func (r *Resolver) selectAddr(instance ec2types.Instance) (Host, bool) {
	addr := instance.PrivateIpAddress
	kind := "private"
	if r.usePublic {
		addr = instance.PublicIpAddress
		kind = "public"
	}

	if aws.ToString(addr) == "" {
		r.reporter.Warnf("instance %s has no %s address, skipping", aws.ToString(instance.InstanceId), kind)
		return Host{}, false
	}
	return Host{InstanceID: aws.ToString(instance.InstanceId), Addr: aws.ToString(addr)}, true
}

// Addrs flattens resolved hosts to their addresses, preserving order.
// Instance identity is not carried past this point.
func Addrs(hosts []Host) []string {
	return lo.Map(hosts, func(h Host, _ int) string { return h.Addr })
}
