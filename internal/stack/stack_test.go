// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package stack

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	cfnv2 "github.com/aws/aws-sdk-go-v2/service/cloudformation"
	cfntypes "github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCFN answers DescribeStacks/GetTemplate from canned data.
type fakeCFN struct {
	stacks        []cfntypes.Stack
	describeErr   error
	template      string
	templateErr   error
	describeCalls int
}

func (f *fakeCFN) DescribeStacks(
	_ context.Context,
	_ *cfnv2.DescribeStacksInput,
	_ ...func(*cfnv2.Options),
) (*cfnv2.DescribeStacksOutput, error) {
	f.describeCalls++
	if f.describeErr != nil {
		return nil, f.describeErr
	}
	return &cfnv2.DescribeStacksOutput{Stacks: f.stacks}, nil
}

func (f *fakeCFN) GetTemplate(
	_ context.Context,
	_ *cfnv2.GetTemplateInput,
	_ ...func(*cfnv2.Options),
) (*cfnv2.GetTemplateOutput, error) {
	if f.templateErr != nil {
		return nil, f.templateErr
	}
	return &cfnv2.GetTemplateOutput{TemplateBody: awsv2.String(f.template)}, nil
}

func stackWithOutputs(outputs map[string]string) cfntypes.Stack {
	s := cfntypes.Stack{
		StackName:    awsv2.String("dev-vpc"),
		CreationTime: awsv2.Time(time.Now().Add(-48 * time.Hour)),
	}
	for k, v := range outputs {
		s.Outputs = append(s.Outputs, cfntypes.Output{
			OutputKey:   awsv2.String(k),
			OutputValue: awsv2.String(v),
		})
	}
	return s
}

// TestExists verifies an answered describe means the stack exists.
func TestExists(t *testing.T) {
	ref := New(&fakeCFN{stacks: []cfntypes.Stack{stackWithOutputs(nil)}}, "dev-vpc")

	exists, err := ref.Exists(context.Background())

	require.NoError(t, err)
	assert.True(t, exists)
}

// TestExists_NotFound verifies the ValidationError CloudFormation uses for a
// missing stack folds into (false, nil).
func TestExists_NotFound(t *testing.T) {
	ref := New(&fakeCFN{
		describeErr: errors.New("ValidationError: Stack with id dev-vpc does not exist"),
	}, "dev-vpc")

	exists, err := ref.Exists(context.Background())

	require.NoError(t, err)
	assert.False(t, exists)
}

// TestExists_OtherError verifies unrelated errors surface.
func TestExists_OtherError(t *testing.T) {
	ref := New(&fakeCFN{describeErr: errors.New("Throttling: rate exceeded")}, "dev-vpc")

	_, err := ref.Exists(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Throttling")
}

// TestOutputs verifies the outputs mapping is reported verbatim.
func TestOutputs(t *testing.T) {
	want := map[string]string{"VpcId": "vpc-123", "CidrBlock": "10.0.0.0/16"}
	ref := New(&fakeCFN{stacks: []cfntypes.Stack{stackWithOutputs(want)}}, "dev-vpc")

	outputs, err := ref.Outputs(context.Background())

	require.NoError(t, err)
	assert.Equal(t, want, outputs)
}

// TestDescribeCaching verifies Exists+Outputs share one DescribeStacks call
// per invocation.
func TestDescribeCaching(t *testing.T) {
	api := &fakeCFN{stacks: []cfntypes.Stack{stackWithOutputs(nil)}}
	ref := New(api, "dev-vpc")

	_, err := ref.Exists(context.Background())
	require.NoError(t, err)
	_, err = ref.Outputs(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, api.describeCalls)
}

// TestLastUpdated verifies creation time is the fallback for never-updated
// stacks and LastUpdatedTime wins when present.
func TestLastUpdated(t *testing.T) {
	created := time.Now().Add(-72 * time.Hour)
	updated := time.Now().Add(-1 * time.Hour)

	s := stackWithOutputs(nil)
	s.CreationTime = awsv2.Time(created)
	ref := New(&fakeCFN{stacks: []cfntypes.Stack{s}}, "dev-vpc")
	got, err := ref.LastUpdated(context.Background())
	require.NoError(t, err)
	assert.WithinDuration(t, created, got, time.Second)

	s.LastUpdatedTime = awsv2.Time(updated)
	ref = New(&fakeCFN{stacks: []cfntypes.Stack{s}}, "dev-vpc")
	got, err = ref.LastUpdated(context.Background())
	require.NoError(t, err)
	assert.WithinDuration(t, updated, got, time.Second)
}

// TestDiff verifies drift is rendered with escape codes stripped and no
// bracketed color fragments left behind.
func TestDiff(t *testing.T) {
	api := &fakeCFN{
		stacks:   []cfntypes.Stack{stackWithOutputs(nil)},
		template: "Resources:\n  Bucket:\n    Type: AWS::S3::Bucket\n    Properties:\n      BucketName: old\n",
	}
	ref := New(api, "dev-vpc")
	rendered := "Resources:\n  Bucket:\n    Type: AWS::S3::Bucket\n    Properties:\n      BucketName: new\n"

	diff, err := ref.Diff(context.Background(), []byte(rendered))

	require.NoError(t, err)
	require.NotEmpty(t, diff)
	assert.Contains(t, diff, "BucketName")
	assert.Contains(t, diff, "+++ rendered")
	assert.False(t, strings.Contains(diff, "[0m"), "diff still contains color codes: %q", diff)
}

// TestDiff_NoDrift verifies identical templates yield an empty diff.
func TestDiff_NoDrift(t *testing.T) {
	body := "Resources:\n  Bucket:\n    Type: AWS::S3::Bucket\n"
	ref := New(&fakeCFN{
		stacks:   []cfntypes.Stack{stackWithOutputs(nil)},
		template: body,
	}, "dev-vpc")

	diff, err := ref.Diff(context.Background(), []byte(body))

	require.NoError(t, err)
	assert.Empty(t, diff)
}
