// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/stkctl/stkctl/internal/log"
)

// DeployKey is the reserved variable name carrying deploy metadata into the
// template.
const DeployKey = "deploy"

// LoadVarsFile reads a YAML mapping of template variables from disk.
func LoadVarsFile(path string) (map[string]interface{}, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vars file %s: %w", path, err)
	}
	var vars map[string]interface{}
	if err := yaml.Unmarshal(raw, &vars); err != nil {
		return nil, fmt.Errorf("failed to parse vars file %s: %w", path, err)
	}
	return vars, nil
}

// MergeVars overlays inline vars onto file-sourced vars. Inline values win on
// key collision; neither input is mutated.
func MergeVars(fileVars, inline map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(fileVars)+len(inline))
	for k, v := range fileVars {
		merged[k] = v
	}
	for k, v := range inline {
		merged[k] = v
	}
	return merged
}

// AttachDeployInfo records, under the reserved "deploy" key, where the
// template came from. configPath is the invocation's starting directory,
// falling back to the current directory when empty. Head resolution is best
// effort: any failure is debug-logged and rendering proceeds without commit
// details.
func AttachDeployInfo(vars map[string]interface{}, provider Provider, configPath string) {
	if configPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			cwd = "."
		}
		configPath = cwd
	}

	deploy := map[string]interface{}{
		"config_path":   filepath.Clean(configPath),
		"deployed_with": "stkctl",
	}
	vars[DeployKey] = deploy

	head, err := provider.Head()
	if err != nil {
		log.Debugf("deploy metadata unavailable: err=%v", err)
		return
	}
	deploy["template_sha"] = head.SHA
	deploy["template_ref"] = head.Ref
}
