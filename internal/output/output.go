// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
	yamlv2 "gopkg.in/yaml.v2"

	"github.com/stkctl/stkctl/internal/module"
)

// Emit writes the handler response to w according to the command's output
// flags. The default is the machine-facing JSON document; --format yaml,
// --query and --pretty adjust it.
func Emit(resp *module.Response, cmd *cli.Command, w io.Writer) error {
	jsonBytes, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	if query := cmd.String("query"); query != "" {
		result := gjson.GetBytes(jsonBytes, query)
		fmt.Fprintln(w, result.String())
		return nil
	}

	if cmd.Bool("pretty") && isTerminal(w) {
		fmt.Fprint(w, prettyRender(resp))
		return nil
	}

	switch cmd.String("format") {
	case "yaml":
		out, err := yamlv2.Marshal(resp)
		if err != nil {
			return fmt.Errorf("failed to marshal response: %w", err)
		}
		fmt.Fprint(w, string(out))
	default:
		fmt.Fprintln(w, string(jsonBytes))
	}
	return nil
}

// FormatValidator rejects output formats other than json and yaml.
func FormatValidator(value string) error {
	if value != "json" && value != "yaml" {
		return fmt.Errorf("invalid format %s (expected json or yaml)", value)
	}
	return nil
}

var (
	okStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	failStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	labelStyle = lipgloss.NewStyle().Bold(true)
)

// prettyRender produces a terminal-friendly rendering for humans running
// stkctl by hand. The host runtime never sees this form.
func prettyRender(resp *module.Response) string {
	var b strings.Builder

	if resp.Failed {
		b.WriteString(failStyle.Render("FAILED") + " " + resp.Msg + "\n")
		if resp.Error != "" {
			b.WriteString(labelStyle.Render("error:") + " " + resp.Error + "\n")
		}
	} else {
		b.WriteString(okStyle.Render("OK") + "\n")
	}

	if resp.ID != "" {
		b.WriteString(labelStyle.Render("account:") + " " + resp.ID + "\n")
	}
	if len(resp.Outputs) > 0 {
		b.WriteString(labelStyle.Render("outputs:") + "\n")
		for k, v := range resp.Outputs {
			b.WriteString(fmt.Sprintf("  %s: %s\n", k, v))
		}
	}
	if len(resp.Capabilities) > 0 {
		b.WriteString(labelStyle.Render("capabilities:") + " " + strings.Join(resp.Capabilities, ", ") + "\n")
	}
	if resp.Content != "" {
		b.WriteString(labelStyle.Render("content:") + "\n" + resp.Content + "\n")
	}
	if resp.Diff != "" {
		b.WriteString(labelStyle.Render("diff:") + "\n" + resp.Diff + "\n")
	}
	return b.String()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
