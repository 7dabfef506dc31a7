// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Source describes where a template comes from: a bare name rooted in the
// current directory, or a name inside a remote git repository.
type Source struct {
	Name string `json:"name" yaml:"name"`
	Root string `json:"root,omitempty" yaml:"root,omitempty"`
	Repo string `json:"repo,omitempty" yaml:"repo,omitempty"`
	Ref  string `json:"ref,omitempty" yaml:"ref,omitempty"`
}

// ParseSource builds a Source from the raw template argument. A plain string
// names a local template in the current directory; a mapping supplies name
// plus repo/ref/root fields. A string that itself parses as a YAML mapping
// (e.g. passed through a CLI flag) is treated like the mapping form.
func ParseSource(raw interface{}) (Source, error) {
	switch v := raw.(type) {
	case nil:
		return Source{}, errors.New("template is required")
	case string:
		var node interface{}
		if err := yaml.Unmarshal([]byte(v), &node); err == nil {
			if m, ok := node.(map[string]interface{}); ok {
				return sourceFromMap(m)
			}
		}
		return Source{Name: v, Root: "."}, nil
	case map[string]interface{}:
		return sourceFromMap(v)
	default:
		return Source{}, fmt.Errorf("template must be a string or a mapping, got %T", raw)
	}
}

// Remote reports whether the template lives in a git repository.
func (s Source) Remote() bool {
	return s.Repo != ""
}

// Provider resolves the Source to a Provider able to read the template body
// and report the head commit.
func (s Source) Provider(ctx context.Context) (Provider, error) {
	if s.Remote() {
		return newGitProvider(ctx, s)
	}
	root := s.Root
	if root == "" {
		root = "."
	}
	return &localProvider{root: root}, nil
}

func sourceFromMap(m map[string]interface{}) (Source, error) {
	out, err := yaml.Marshal(m)
	if err != nil {
		return Source{}, err
	}
	var s Source
	if err := yaml.Unmarshal(out, &s); err != nil {
		return Source{}, fmt.Errorf("invalid template descriptor: %w", err)
	}
	if s.Name == "" {
		return Source{}, errors.New("template descriptor requires a name")
	}
	if !s.Remote() && s.Root == "" {
		s.Root = "."
	}
	return s, nil
}
