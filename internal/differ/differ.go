// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
	"gopkg.in/yaml.v3"

	"github.com/stkctl/stkctl/internal/log"
)

// Bracketed escape substrings: complete [...] groups, plus the unterminated
// [31m / [0m color codes the ascii formatter emits. The escape character
// itself is left alone.
var escapePattern = regexp.MustCompile(`\[[^\]]*\]|\[[0-9;]*m`)

// Compare renders the structural difference between a deployed template body
// and a freshly rendered one. Both documents are normalized YAML→JSON first,
// since CloudFormation hands back either format. Returns "" when the
// documents are semantically identical.
func Compare(deployed, rendered []byte) (string, error) {
	left, err := normalize(deployed)
	if err != nil {
		return "", fmt.Errorf("failed to parse deployed template: %w", err)
	}
	right, err := normalize(rendered)
	if err != nil {
		return "", fmt.Errorf("failed to parse rendered template: %w", err)
	}

	leftJSON, err := json.Marshal(left)
	if err != nil {
		return "", err
	}
	rightJSON, err := json.Marshal(right)
	if err != nil {
		return "", err
	}

	delta, err := gojsondiff.New().Compare(leftJSON, rightJSON)
	if err != nil {
		return "", fmt.Errorf("failed to compare templates: %w", err)
	}

	if !delta.Modified() {
		log.Debug("templates are identical")
		return "", nil
	}

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       true,
	}
	diffString, err := formatter.NewAsciiFormatter(left, config).Format(delta)
	if err != nil {
		return "", err
	}

	return diffString, nil
}

// StripEscapes removes every bracketed escape substring from s. Color codes
// such as "[31m" lose their bracketed body while surrounding text survives.
func StripEscapes(s string) string {
	return escapePattern.ReplaceAllString(s, "")
}

// normalize decodes a YAML or JSON template body into a JSON-compatible
// document tree.
func normalize(body []byte) (map[string]interface{}, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
