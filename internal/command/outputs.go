// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/stkctl/stkctl/internal/config"
	"github.com/stkctl/stkctl/internal/meta"
	"github.com/stkctl/stkctl/internal/module"
	"github.com/stkctl/stkctl/internal/stack"
)

// outputsCommandAction exposes the outputs of an existing CloudFormation
// stack as the handler payload.
func outputsCommandAction(ctx context.Context, cmd *cli.Command) error {

	config.Config.Namespace = "outputs"

	resp := &module.Response{}

	var args module.OutputsArgs
	if err := BindArgs(cmd, &args); err != nil {
		return Finish(cmd, resp.FailErr("Invalid arguments", err))
	}
	if v := cmd.String("stack-name"); v != "" {
		args.StackName = v
	}
	if err := module.ValidateArgs(args); err != nil {
		return Finish(cmd, resp.FailErr("Invalid arguments", err))
	}

	s, err := ResolveSettings(cmd, args.AWS)
	if err != nil {
		return Finish(cmd, resp.FailErr("Invalid arguments", err))
	}

	ref, err := stack.NewFromSettings(ctx, s, args.StackName)
	if err != nil {
		return Finish(cmd, resp.FailErr("Client error", err))
	}

	exists, err := ref.Exists(ctx)
	if err != nil {
		return Finish(cmd, resp.FailErr("Client error", err))
	}
	if !exists {
		msg := fmt.Sprintf("Stack %s not found", args.StackName)
		resp.Error = msg
		return Finish(cmd, resp.Fail(msg))
	}

	outputs, err := ref.Outputs(ctx)
	if err != nil {
		return Finish(cmd, resp.FailErr("Client error", err))
	}

	resp.Outputs = outputs
	return Finish(cmd, resp)
}

// outputsCommandBuilder constructs the cli.Command for "outputs".
func outputsCommandBuilder(meta meta.Meta) *cli.Command {
	flags := append(NewGlobalFlags(),
		&cli.StringFlag{
			Name:    "stack-name",
			Aliases: []string{"n"},
			Usage:   "name of the stack to read outputs from",
		},
		NewRegionFlag("outputs", meta.Config.Source),
		NewCfnBucketFlag("outputs", meta.Config.Source),
	)

	return &cli.Command{
		Name:      "outputs",
		Usage:     "expose CloudFormation outputs",
		UsageText: "stkctl outputs [ARGS_FILE] [options]",
		Flags:     flags,
		Action:    outputsCommandAction,
		Metadata:  map[string]interface{}{"meta": meta},
	}
}
