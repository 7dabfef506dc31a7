// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"errors"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/stkctl/stkctl/internal/meta"
	"github.com/stkctl/stkctl/internal/module"
	"github.com/stkctl/stkctl/internal/output"
	"github.com/stkctl/stkctl/internal/settings"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// BindArgs loads the optional positional args file into dst. Individual
// fields may still be overridden by flags afterwards; validation runs in the
// handler once overrides are applied.
func BindArgs(cmd *cli.Command, dst any) error {
	path := cmd.Args().First()
	if path == "" {
		return nil
	}
	return module.LoadArgs(path, dst)
}

// ResolveSettings builds the effective Settings for this invocation.
// Precedence: args-file aws block, then flags/env/config-file sources, then
// fixed fallbacks.
func ResolveSettings(cmd *cli.Command, awsBlock map[string]interface{}) (settings.Settings, error) {
	flagOverride := &settings.Settings{
		Region:    cmd.String("region"),
		CfnBucket: cmd.String("cfn-bucket"),
	}
	resolved := settings.Resolve(flagOverride, settings.Defaults())

	fileOverride, err := settings.FromMap(awsBlock)
	if err != nil {
		return settings.Settings{}, err
	}
	return settings.Resolve(fileOverride, resolved), nil
}

// Finish reports the response to the host runtime and converts a failed
// response into the non-zero process exit the runtime keys off. The result
// document has already been written when the error propagates.
func Finish(cmd *cli.Command, resp *module.Response) error {
	if err := output.Emit(resp, cmd, os.Stdout); err != nil {
		return err
	}
	if resp.Failed {
		return errors.New(resp.Msg)
	}
	return nil
}
