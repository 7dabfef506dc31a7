// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package module

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/stkctl/stkctl/internal/log"
)

// Response is the uniform result record handed back to the host runtime.
// Changed is always false: all stkctl handlers are read-only. Payload fields
// are populated per handler and omitted when empty.
type Response struct {
	Changed bool   `json:"changed" yaml:"changed"`
	Failed  bool   `json:"failed" yaml:"failed"`
	Msg     string `json:"msg,omitempty" yaml:"msg,omitempty"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`

	ID           string            `json:"id,omitempty" yaml:"id,omitempty"`
	Outputs      map[string]string `json:"outputs,omitempty" yaml:"outputs,omitempty"`
	Content      string            `json:"content,omitempty" yaml:"content,omitempty"`
	Capabilities []string          `json:"capabilities,omitempty" yaml:"capabilities,omitempty"`
	Diff         string            `json:"diff,omitempty" yaml:"diff,omitempty"`
}

// Fail marks the response failed with the given message and returns it so
// handlers can `return resp.Fail(...)`.
func (r *Response) Fail(msg string) *Response {
	r.Failed = true
	r.Msg = msg
	return r
}

// FailErr records the flattened error text alongside the failure message.
func (r *Response) FailErr(msg string, err error) *Response {
	if err != nil {
		r.Error = err.Error()
	}
	return r.Fail(msg)
}

// AccountArgs binds the account handler's argument set.
type AccountArgs struct {
	ExpectedAccountID string                 `json:"expected_account_id" yaml:"expected_account_id"`
	AWS               map[string]interface{} `json:"aws" yaml:"aws"`
}

// OutputsArgs binds the outputs handler's argument set.
type OutputsArgs struct {
	StackName string                 `json:"stack_name" yaml:"stack_name" validate:"required"`
	AWS       map[string]interface{} `json:"aws" yaml:"aws"`
}

// TemplateArgs binds the template handler's argument set. Template is either
// a plain string (local template name) or a mapping with name/repo fields;
// parsing is deferred to the template package.
type TemplateArgs struct {
	Action   string                 `json:"action" yaml:"action"`
	Template interface{}            `json:"template" yaml:"template" validate:"required"`
	Vars     map[string]interface{} `json:"vars" yaml:"vars"`
	VarsFile string                 `json:"vars_file" yaml:"vars_file"`
	AWS      map[string]interface{} `json:"aws" yaml:"aws"`
	Tags     map[string]string      `json:"tags" yaml:"tags"`
	Helpers  []string               `json:"helpers" yaml:"helpers"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadArgs reads an Ansible-style args file (JSON or YAML mapping) into dst.
// A path of "-" reads from stdin.
func LoadArgs(path string, dst any) error {
	var raw []byte
	var err error
	if path == "-" {
		raw, err = readAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read args file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("failed to parse args file %s: %w", path, err)
	}
	log.Debugf("args loaded: path=%s", path)
	return nil
}

// ValidateArgs checks required fields and reports the first violation using
// the wire-level (json tag) field name.
func ValidateArgs(args any) error {
	err := validate.Struct(args)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if ok := asValidationErrors(err, &verrs); ok && len(verrs) > 0 {
		field := wireName(args, verrs[0].StructField())
		return fmt.Errorf("missing required argument: %s", field)
	}
	return err
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	if verrs, ok := err.(validator.ValidationErrors); ok {
		*target = verrs
		return true
	}
	return false
}

// wireName maps a Go struct field name to its json tag name so validation
// failures read like the args the caller actually wrote.
func wireName(args any, structField string) string {
	t, err := fieldTag(args, structField)
	if err != nil || t == "" {
		return strings.ToLower(structField)
	}
	return t
}
