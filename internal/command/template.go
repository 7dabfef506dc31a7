// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/stkctl/stkctl/internal/aws"
	"github.com/stkctl/stkctl/internal/config"
	"github.com/stkctl/stkctl/internal/log"
	"github.com/stkctl/stkctl/internal/meta"
	"github.com/stkctl/stkctl/internal/module"
	"github.com/stkctl/stkctl/internal/settings"
	"github.com/stkctl/stkctl/internal/stack"
	"github.com/stkctl/stkctl/internal/template"
)

// templateCommandAction renders an stk-style CloudFormation template: it
// resolves the template source, merges variables, renders, reports IAM
// capability flags, and diffs against the deployed stack when one exists.
func templateCommandAction(ctx context.Context, cmd *cli.Command) error {

	config.Config.Namespace = "template"

	resp := &module.Response{}

	args, err := bindTemplateArgs(cmd)
	if err != nil {
		return Finish(cmd, resp.FailErr("Invalid arguments", err))
	}
	if err := module.ValidateArgs(args); err != nil {
		return Finish(cmd, resp.FailErr("Invalid arguments", err))
	}

	// Only "render" is implemented. Anything else fails before any work.
	if args.Action != "render" {
		msg := fmt.Sprintf("Unknown action %s", args.Action)
		resp.Error = msg
		return Finish(cmd, resp.Fail(msg))
	}

	src, err := template.ParseSource(args.Template)
	if err != nil {
		return Finish(cmd, resp.FailErr("Invalid arguments", err))
	}

	provider, err := src.Provider(ctx)
	if err != nil {
		return Finish(cmd, resp.FailErr("Error rendering template", err))
	}
	if c, ok := provider.(interface{ Cleanup() }); ok {
		defer c.Cleanup()
	}

	vars := map[string]interface{}{}
	if args.VarsFile != "" {
		vars, err = template.LoadVarsFile(args.VarsFile)
		if err != nil {
			return Finish(cmd, resp.FailErr("Error rendering template", err))
		}
	}
	vars = template.MergeVars(vars, args.Vars)
	template.AttachDeployInfo(vars, provider, GetMeta(cmd).StartingDir)

	s, err := ResolveSettings(cmd, args.AWS)
	if err != nil {
		return Finish(cmd, resp.FailErr("Invalid arguments", err))
	}

	helpers, err := buildHelpers(ctx, provider, s, args)
	if err != nil {
		return Finish(cmd, resp.FailErr("Error rendering template", err))
	}
	funcs, err := helpers.Funcs(args.Helpers)
	if err != nil {
		return Finish(cmd, resp.FailErr("Error rendering template", err))
	}

	rendered := template.New(src.Name, provider, funcs).Render(vars)
	resp.Content = rendered.Content
	if rendered.Err != nil {
		resp.Error = rendered.Err.Error()
		return Finish(cmd, resp.Fail("Error rendering template"))
	}

	resp.Capabilities = rendered.Capabilities()
	resp.Diff = templateDiff(ctx, s, vars, rendered.Content)

	return Finish(cmd, resp)
}

// templateDiff diffs the rendered content against the deployed stack named
// by vars["stack_name"], when that stack exists. Diffing is best effort on
// top of a successful render, so failures are logged and yield no diff.
func templateDiff(ctx context.Context, s settings.Settings, vars map[string]interface{}, content string) string {
	name, _ := vars["stack_name"].(string)
	if name == "" {
		return ""
	}

	ref, err := stack.NewFromSettings(ctx, s, name)
	if err != nil {
		log.WithError(err).Warnf("skipping diff for stack %s", name)
		return ""
	}

	exists, err := ref.Exists(ctx)
	if err != nil {
		log.WithError(err).Warnf("skipping diff for stack %s", name)
		return ""
	}
	if !exists {
		return ""
	}

	diff, err := ref.Diff(ctx, []byte(content))
	if err != nil {
		log.WithError(err).Warnf("skipping diff for stack %s", name)
		return ""
	}
	return diff
}

// bindTemplateArgs merges the args file with flag overrides.
func bindTemplateArgs(cmd *cli.Command) (module.TemplateArgs, error) {
	var args module.TemplateArgs
	if err := BindArgs(cmd, &args); err != nil {
		return args, err
	}

	if v := cmd.String("template"); v != "" {
		args.Template = v
	}
	if v := cmd.String("vars-file"); v != "" {
		args.VarsFile = v
	}
	if cmd.IsSet("action") {
		args.Action = cmd.String("action")
	}
	if pairs := cmd.StringSlice("var"); len(pairs) > 0 {
		if args.Vars == nil {
			args.Vars = map[string]interface{}{}
		}
		for _, p := range pairs {
			k, v, err := splitPair(p)
			if err != nil {
				return args, err
			}
			args.Vars[k] = v
		}
	}
	if pairs := cmd.StringSlice("tag"); len(pairs) > 0 {
		if args.Tags == nil {
			args.Tags = map[string]string{}
		}
		for _, p := range pairs {
			k, v, err := splitPair(p)
			if err != nil {
				return args, err
			}
			args.Tags[k] = v
		}
	}
	if list := cmd.String("helpers"); list != "" {
		for _, h := range strings.Split(list, ",") {
			if h = strings.TrimSpace(h); h != "" {
				args.Helpers = append(args.Helpers, h)
			}
		}
	}

	if args.Action == "" {
		args.Action = "render"
	}
	return args, nil
}

// buildHelpers wires the helper set, attaching a real S3 client only when an
// uploading helper was requested. Pure renders stay credential-free.
func buildHelpers(ctx context.Context, provider template.Provider, s settings.Settings, args module.TemplateArgs) (*template.Helpers, error) {
	var s3 template.S3API
	if slices.Contains(args.Helpers, "upload") {
		cfg, err := aws.LoadAWSConfig(ctx, aws.WithRegion(s.Region))
		if err != nil {
			return nil, err
		}
		s3 = aws.NewS3(cfg)
	}
	return template.NewHelpers(ctx, provider, s.CfnBucket, args.Tags, s3), nil
}

func splitPair(p string) (string, string, error) {
	k, v, found := strings.Cut(p, "=")
	if !found || k == "" {
		return "", "", fmt.Errorf("invalid key=value pair: %s", p)
	}
	return k, v, nil
}

// templateCommandBuilder constructs the cli.Command for "template".
func templateCommandBuilder(meta meta.Meta) *cli.Command {
	flags := append(NewGlobalFlags(),
		&cli.StringFlag{
			Name:    "template",
			Aliases: []string{"t"},
			Usage:   "template name, or a YAML descriptor with name/repo fields",
		},
		&cli.StringFlag{
			Name:  "vars-file",
			Usage: "YAML file of template variables, loaded before inline vars",
		},
		&cli.StringSliceFlag{
			Name:  "var",
			Usage: "inline template variable (key=value, repeatable)",
		},
		&cli.StringSliceFlag{
			Name:  "tag",
			Usage: "deployment tag (key=value, repeatable)",
		},
		&cli.StringFlag{
			Name:  "helpers",
			Usage: "comma-separated list of opt-in helper names",
		},
		&cli.StringFlag{
			Name:  "action",
			Usage: "action to perform",
			Value: "render",
		},
		NewRegionFlag("template", meta.Config.Source),
		NewCfnBucketFlag("template", meta.Config.Source),
	)

	return &cli.Command{
		Name:      "template",
		Usage:     "render an stk-style CloudFormation template",
		UsageText: "stkctl template [ARGS_FILE] [options]",
		Flags:     flags,
		Action:    templateCommandAction,
		Metadata:  map[string]interface{}{"meta": meta},
	}
}
