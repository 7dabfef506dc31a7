// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package account

import (
	"context"
	"errors"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	stsv2 "github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/stkctl/stkctl/internal/aws"
	"github.com/stkctl/stkctl/internal/log"
	"github.com/stkctl/stkctl/internal/settings"
)

// CallerIdentityAPI is the slice of the STS client the resolver needs.
type CallerIdentityAPI interface {
	GetCallerIdentity(
		ctx context.Context,
		params *stsv2.GetCallerIdentityInput,
		optFns ...func(*stsv2.Options),
	) (*stsv2.GetCallerIdentityOutput, error)
}

// Resolver obtains the AWS account id for the current credentials.
type Resolver struct {
	api CallerIdentityAPI
}

// New wraps an existing STS-compatible client.
func New(api CallerIdentityAPI) *Resolver {
	return &Resolver{api: api}
}

// NewFromSettings loads AWS config for the resolved settings and constructs a
// resolver backed by a real STS client.
func NewFromSettings(ctx context.Context, s settings.Settings) (*Resolver, error) {
	cfg, err := aws.LoadAWSConfig(ctx, aws.WithRegion(s.Region))
	if err != nil {
		return nil, err
	}
	return New(aws.NewSTS(cfg)), nil
}

// AccountID returns the account id of the current caller identity.
func (r *Resolver) AccountID(ctx context.Context) (string, error) {
	out, err := r.api.GetCallerIdentity(ctx, &stsv2.GetCallerIdentityInput{})
	if err != nil {
		return "", err
	}
	id := awsv2.ToString(out.Account)
	if id == "" {
		return "", errors.New("caller identity has no account id")
	}
	log.Debugf("caller identity resolved: account=%s", id)
	return id, nil
}
