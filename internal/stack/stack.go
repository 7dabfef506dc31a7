// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package stack

import (
	"context"
	"fmt"
	"strings"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	cfnv2 "github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/dustin/go-humanize"

	"github.com/stkctl/stkctl/internal/aws"
	"github.com/stkctl/stkctl/internal/differ"
	"github.com/stkctl/stkctl/internal/log"
	"github.com/stkctl/stkctl/internal/settings"
)

// API is the slice of the CloudFormation client a Reference needs.
type API interface {
	DescribeStacks(
		ctx context.Context,
		params *cfnv2.DescribeStacksInput,
		optFns ...func(*cfnv2.Options),
	) (*cfnv2.DescribeStacksOutput, error)
	GetTemplate(
		ctx context.Context,
		params *cfnv2.GetTemplateInput,
		optFns ...func(*cfnv2.Options),
	) (*cfnv2.GetTemplateOutput, error)
}

// Reference points at a named CloudFormation stack and answers existence,
// output and diff questions about it. It holds no state beyond a cached
// describe result for the current invocation.
type Reference struct {
	Name string

	api       API
	described *cfnv2.DescribeStacksOutput
}

// New wraps an existing CloudFormation-compatible client.
func New(api API, name string) *Reference {
	return &Reference{Name: name, api: api}
}

// NewFromSettings loads AWS config for the resolved settings and constructs a
// Reference backed by a real CloudFormation client.
func NewFromSettings(ctx context.Context, s settings.Settings, name string) (*Reference, error) {
	cfg, err := aws.LoadAWSConfig(ctx, aws.WithRegion(s.Region))
	if err != nil {
		return nil, err
	}
	return New(aws.NewCloudFormation(cfg), name), nil
}

// Exists reports whether the named stack exists. CloudFormation signals a
// missing stack through a ValidationError, which is folded into (false, nil);
// every other error surfaces.
func (r *Reference) Exists(ctx context.Context) (bool, error) {
	_, err := r.describe(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "does not exist") {
			log.Debugf("stack not found: name=%s", r.Name)
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Outputs returns the stack's outputs as a flat key/value mapping.
func (r *Reference) Outputs(ctx context.Context) (map[string]string, error) {
	out, err := r.describe(ctx)
	if err != nil {
		return nil, err
	}
	if len(out.Stacks) == 0 {
		return nil, fmt.Errorf("stack %s not found", r.Name)
	}

	outputs := map[string]string{}
	for _, o := range out.Stacks[0].Outputs {
		outputs[awsv2.ToString(o.OutputKey)] = awsv2.ToString(o.OutputValue)
	}
	log.Debugf("outputs fetched: stack=%s, count=%d", r.Name, len(outputs))
	return outputs, nil
}

// LastUpdated returns the stack's last update time, falling back to creation
// time for never-updated stacks.
func (r *Reference) LastUpdated(ctx context.Context) (time.Time, error) {
	out, err := r.describe(ctx)
	if err != nil {
		return time.Time{}, err
	}
	if len(out.Stacks) == 0 {
		return time.Time{}, fmt.Errorf("stack %s not found", r.Name)
	}
	s := out.Stacks[0]
	if s.LastUpdatedTime != nil {
		return *s.LastUpdatedTime, nil
	}
	return awsv2.ToTime(s.CreationTime), nil
}

// Diff compares the rendered template body against the deployed one and
// returns a human-readable diff with color escape sequences stripped. An
// empty string means no drift.
func (r *Reference) Diff(ctx context.Context, rendered []byte) (string, error) {
	deployed, err := r.deployedTemplate(ctx)
	if err != nil {
		return "", err
	}

	diff, err := differ.Compare(deployed, rendered)
	if err != nil {
		return "", err
	}
	if diff == "" {
		return "", nil
	}

	header := r.diffHeader(ctx, len(rendered))
	return differ.StripEscapes(header + diff), nil
}

// diffHeader describes the two sides of the diff; failures here only cost
// the header, never the diff itself.
func (r *Reference) diffHeader(ctx context.Context, renderedSize int) string {
	deployedAt := "unknown age"
	if t, err := r.LastUpdated(ctx); err == nil && !t.IsZero() {
		deployedAt = humanize.Time(t)
	}
	return fmt.Sprintf("--- %s (deployed %s)\n+++ rendered (%s)\n",
		r.Name, deployedAt, humanize.Bytes(uint64(renderedSize)))
}

// deployedTemplate fetches the current template body for the stack.
func (r *Reference) deployedTemplate(ctx context.Context) ([]byte, error) {
	out, err := r.api.GetTemplate(ctx, &cfnv2.GetTemplateInput{
		StackName: awsv2.String(r.Name),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get deployed template for %s: %w", r.Name, err)
	}
	return []byte(awsv2.ToString(out.TemplateBody)), nil
}

// describe runs DescribeStacks once per invocation and caches the result.
func (r *Reference) describe(ctx context.Context) (*cfnv2.DescribeStacksOutput, error) {
	if r.described != nil {
		return r.described, nil
	}
	out, err := r.api.DescribeStacks(ctx, &cfnv2.DescribeStacksInput{
		StackName: awsv2.String(r.Name),
	})
	if err != nil {
		return nil, err
	}
	r.described = out
	return out, nil
}
