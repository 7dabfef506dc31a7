// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Properties that turn an IAM resource into an explicitly named one, which
// CloudFormation gates behind CAPABILITY_NAMED_IAM.
var namedIAMProperties = []string{
	"RoleName",
	"UserName",
	"GroupName",
	"ManagedPolicyName",
	"InstanceProfileName",
}

// iamCapabilities scans a rendered CloudFormation document for IAM resources
// and reports the capability flags a deployment of it would need. A document
// that fails to parse reports none; the render step has already surfaced any
// real template error.
func iamCapabilities(body []byte) []string {
	var doc struct {
		Resources map[string]struct {
			Type       string                 `yaml:"Type"`
			Properties map[string]interface{} `yaml:"Properties"`
		} `yaml:"Resources"`
	}
	if err := yaml.Unmarshal(body, &doc); err != nil {
		return nil
	}

	hasIAM := false
	named := false
	for _, res := range doc.Resources {
		if !strings.HasPrefix(res.Type, "AWS::IAM::") {
			continue
		}
		hasIAM = true
		for _, prop := range namedIAMProperties {
			if _, ok := res.Properties[prop]; ok {
				named = true
				break
			}
		}
	}

	switch {
	case named:
		return []string{"CAPABILITY_NAMED_IAM"}
	case hasIAM:
		return []string{"CAPABILITY_IAM"}
	default:
		return nil
	}
}
