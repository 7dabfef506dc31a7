// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package account

import (
	"context"
	"errors"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	stsv2 "github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSTS returns a canned caller identity or error.
type fakeSTS struct {
	account string
	err     error
}

func (f *fakeSTS) GetCallerIdentity(
	_ context.Context,
	_ *stsv2.GetCallerIdentityInput,
	_ ...func(*stsv2.Options),
) (*stsv2.GetCallerIdentityOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := &stsv2.GetCallerIdentityOutput{}
	if f.account != "" {
		out.Account = awsv2.String(f.account)
	}
	return out, nil
}

// TestAccountID verifies the caller identity's account id is returned.
func TestAccountID(t *testing.T) {
	r := New(&fakeSTS{account: "123456789012"})

	id, err := r.AccountID(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "123456789012", id)
}

// TestAccountID_ClientError verifies delegate errors surface unchanged.
func TestAccountID_ClientError(t *testing.T) {
	r := New(&fakeSTS{err: errors.New("ExpiredToken: credentials expired")})

	_, err := r.AccountID(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ExpiredToken")
}

// TestAccountID_EmptyIdentity verifies an identity without an account id is
// an error rather than an empty success.
func TestAccountID_EmptyIdentity(t *testing.T) {
	r := New(&fakeSTS{})

	_, err := r.AccountID(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no account id")
}
