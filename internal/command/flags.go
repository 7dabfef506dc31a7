// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	altyaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/stkctl/stkctl/internal/output"
)

// NewGlobalFlags returns the output-shaping flags shared by every handler.
func NewGlobalFlags() (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"o"},
			Usage:   "result format",
			Value:   "json",
			Validator: func(value string) error {
				return output.FormatValidator(value)
			},
		},
		&cli.StringFlag{
			Name:    "query",
			Aliases: []string{"q"},
			Usage:   "extract a dotted path from the result",
		},
		&cli.BoolFlag{
			Name:        "pretty",
			Usage:       "human-readable output when stdout is a terminal",
			HideDefault: true,
		},
	}
	return
}

// NewRegionFlag constructs the "region" flag, optionally namespaced to a
// command and config file. params[1] is the config file.
func NewRegionFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:    "region",
		Aliases: []string{"r"},
		Usage:   "AWS region for all delegate calls",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("STKCTL_REGION"),
			cli.EnvVar("AWS_REGION"),
		),
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], "region", flag)
	}

	return
}

// NewCfnBucketFlag constructs the "cfn-bucket" flag, optionally namespaced to
// a command and config file. params[1] is the config file.
func NewCfnBucketFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:    "cfn-bucket",
		Aliases: []string{"b"},
		Usage:   "artifact bucket used by upload-style helpers",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("STKCTL_CFN_BUCKET"),
		),
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], "cfn_bucket", flag)
	}

	return
}

// NameSpacedValueChainFlagFromConfigFile appends config-file value sources to
// a flag: the namespaced config key (e.g. "template.region") first, then the
// bare key. The config key may differ from the flag name (cfn-bucket vs
// cfn_bucket).
func NameSpacedValueChainFlagFromConfigFile(ns, path, key string, flag *cli.StringFlag) *cli.StringFlag {
	src := altyaml.YAML(ns+"."+key, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = altyaml.YAML(key, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}
