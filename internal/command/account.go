// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/stkctl/stkctl/internal/account"
	"github.com/stkctl/stkctl/internal/config"
	"github.com/stkctl/stkctl/internal/meta"
	"github.com/stkctl/stkctl/internal/module"
)

// accountCommandAction resolves the current AWS account id and optionally
// verifies it against an expected value.
func accountCommandAction(ctx context.Context, cmd *cli.Command) error {

	config.Config.Namespace = "account"

	resp := &module.Response{}

	var args module.AccountArgs
	if err := BindArgs(cmd, &args); err != nil {
		return Finish(cmd, resp.FailErr("Invalid arguments", err))
	}
	if v := cmd.String("expected-account-id"); v != "" {
		args.ExpectedAccountID = v
	}

	s, err := ResolveSettings(cmd, args.AWS)
	if err != nil {
		return Finish(cmd, resp.FailErr("Invalid arguments", err))
	}

	resolver, err := account.NewFromSettings(ctx, s)
	if err != nil {
		resp.Error = fmt.Sprintf("Unable to retrieve account ID: %v, %s", err, s)
		return Finish(cmd, resp.Fail("Client error"))
	}

	id, err := resolver.AccountID(ctx)
	if err != nil {
		resp.Error = fmt.Sprintf("Unable to retrieve account ID: %v, %s", err, s)
		return Finish(cmd, resp.Fail("Client error"))
	}

	resp.ID = id
	if args.ExpectedAccountID != "" && args.ExpectedAccountID != id {
		resp.Error = fmt.Sprintf("Expected account ID %s but got %s", args.ExpectedAccountID, id)
		return Finish(cmd, resp.Fail("Account mismatch"))
	}

	return Finish(cmd, resp)
}

// accountCommandBuilder constructs the cli.Command for "account".
func accountCommandBuilder(meta meta.Meta) *cli.Command {
	flags := append(NewGlobalFlags(),
		&cli.StringFlag{
			Name:  "expected-account-id",
			Usage: "fail unless the resolved account id matches",
		},
		NewRegionFlag("account", meta.Config.Source),
		NewCfnBucketFlag("account", meta.Config.Source),
	)

	return &cli.Command{
		Name:      "account",
		Usage:     "fetch and confirm the AWS account",
		UsageText: "stkctl account [ARGS_FILE] [options]",
		Flags:     flags,
		Action:    accountCommandAction,
		Metadata:  map[string]interface{}{"meta": meta},
	}
}
