// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package settings

import (
	"fmt"

	"github.com/stkctl/stkctl/internal/config"
)

// Fixed fallbacks, used when neither the caller nor the config file supplies
// a value. These mirror the defaults baked into the original stk collection.
const (
	DefaultRegion    = "ap-southeast-2"
	DefaultCfnBucket = "None"
)

// Settings is the region + artifact-store pair handed to every AWS call.
// It is constructed once per invocation and never mutated afterwards.
type Settings struct {
	Region    string `json:"region" yaml:"region"`
	CfnBucket string `json:"cfn_bucket" yaml:"cfn_bucket"`
}

// String implements fmt.Stringer for error messages that include the
// effective settings.
func (s Settings) String() string {
	return fmt.Sprintf("region=%s cfn_bucket=%s", s.Region, s.CfnBucket)
}

// Defaults returns the base settings: user config file values when present,
// otherwise the fixed fallbacks.
func Defaults() Settings {
	region, _ := config.GetString("region", DefaultRegion)
	bucket, _ := config.GetString("cfn_bucket", DefaultCfnBucket)
	return Settings{Region: region, CfnBucket: bucket}
}

// Resolve merges an optional caller override onto defaults, field by field.
// A nil override or an empty field leaves the default in place.
func Resolve(override *Settings, defaults Settings) Settings {
	resolved := defaults
	if override == nil {
		return resolved
	}
	if override.Region != "" {
		resolved.Region = override.Region
	}
	if override.CfnBucket != "" {
		resolved.CfnBucket = override.CfnBucket
	}
	return resolved
}

// FromMap builds Settings from a loosely-typed aws block (as decoded from an
// args file). Unknown keys are ignored; non-string values are an error.
func FromMap(m map[string]interface{}) (*Settings, error) {
	if m == nil {
		return nil, nil
	}
	s := &Settings{}
	for key, dst := range map[string]*string{
		"region":     &s.Region,
		"cfn_bucket": &s.CfnBucket,
	} {
		raw, ok := m[key]
		if !ok || raw == nil {
			continue
		}
		str, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("aws.%s must be a string", key)
		}
		*dst = str
	}
	return s, nil
}
