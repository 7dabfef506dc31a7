// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"bytes"
	"fmt"
	texttemplate "text/template"

	"github.com/stkctl/stkctl/internal/log"
)

// Template pairs a named template body with the helper functions it may call.
type Template struct {
	Name string

	provider Provider
	funcs    texttemplate.FuncMap
}

// Rendered is the outcome of a render: the produced content, or the error
// that stopped it. Callers inspect Err rather than receiving a Go error, so
// partial content survives for diagnostics.
type Rendered struct {
	Content string
	Err     error
}

// New constructs a Template served by provider with the given helper funcs.
func New(name string, provider Provider, funcs texttemplate.FuncMap) *Template {
	return &Template{Name: name, provider: provider, funcs: funcs}
}

// Render executes the template against vars.
func (t *Template) Render(vars map[string]interface{}) Rendered {
	body, err := t.provider.Body(t.Name)
	if err != nil {
		return Rendered{Err: err}
	}

	tpl, err := texttemplate.New(t.Name).Funcs(t.funcs).Option("missingkey=zero").Parse(string(body))
	if err != nil {
		return Rendered{Err: fmt.Errorf("failed to parse template %s: %w", t.Name, err)}
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, vars); err != nil {
		return Rendered{Content: buf.String(), Err: fmt.Errorf("failed to render template %s: %w", t.Name, err)}
	}

	log.Debugf("template rendered: name=%s, bytes=%d", t.Name, buf.Len())
	return Rendered{Content: buf.String()}
}

// Capabilities returns the IAM capability flags the rendered document
// declares a need for.
func (r Rendered) Capabilities() []string {
	return iamCapabilities([]byte(r.Content))
}
