// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	texttemplate "text/template"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"gopkg.in/yaml.v3"

	"github.com/stkctl/stkctl/internal/log"
)

// S3API is the slice of the S3 client the upload helper needs.
type S3API interface {
	PutObject(
		ctx context.Context,
		params *s3v2.PutObjectInput,
		optFns ...func(*s3v2.Options),
	) (*s3v2.PutObjectOutput, error)
}

// Helpers builds the function map exposed to templates. The base helpers are
// always available; opt-in helpers are selected by name and may touch AWS
// (artifact uploads to the cfn bucket).
type Helpers struct {
	Provider Provider
	Bucket   string
	Tags     map[string]string
	S3       S3API

	ctx context.Context
}

// NewHelpers wires a helper set for one render invocation.
func NewHelpers(ctx context.Context, provider Provider, bucket string, tags map[string]string, s3 S3API) *Helpers {
	return &Helpers{
		Provider: provider,
		Bucket:   bucket,
		Tags:     tags,
		S3:       s3,
		ctx:      ctx,
	}
}

// Funcs returns the template FuncMap: base helpers plus any requested by
// name. An unknown helper name is a setup error, reported before rendering.
func (h *Helpers) Funcs(names []string) (texttemplate.FuncMap, error) {
	funcs := texttemplate.FuncMap{
		"to_yaml":   toYAML,
		"to_json":   toJSON,
		"b64encode": b64encode,
		"indent":    indent,
		"tag":       h.tag,
	}

	optional := map[string]interface{}{
		"user_data": h.userData,
		"upload":    h.upload,
	}

	for _, name := range names {
		fn, ok := optional[name]
		if !ok {
			return nil, fmt.Errorf("unknown helper %s", name)
		}
		funcs[name] = fn
	}
	return funcs, nil
}

// tag looks up a deployment tag by name; missing tags render empty.
func (h *Helpers) tag(name string) string {
	return h.Tags[name]
}

// userData reads a file from the template source and base64-encodes it for
// use in EC2 UserData properties.
func (h *Helpers) userData(name string) (string, error) {
	body, err := h.Provider.Body(name)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(body), nil
}

// upload pushes a file from the template source to the artifact bucket and
// returns its s3:// URL.
func (h *Helpers) upload(name string) (string, error) {
	if h.S3 == nil || h.Bucket == "" || h.Bucket == "None" {
		return "", fmt.Errorf("upload helper requires a cfn_bucket setting")
	}
	body, err := h.Provider.Body(name)
	if err != nil {
		return "", err
	}

	key := "artifacts/" + name
	_, err = h.S3.PutObject(h.ctx, &s3v2.PutObjectInput{
		Bucket: awsv2.String(h.Bucket),
		Key:    awsv2.String(key),
		Body:   strings.NewReader(string(body)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", name, err)
	}
	log.Debugf("artifact uploaded: bucket=%s, key=%s", h.Bucket, key)
	return fmt.Sprintf("s3://%s/%s", h.Bucket, key), nil
}

func toYAML(v interface{}) (string, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(out), "\n"), nil
}

func toJSON(v interface{}) (string, error) {
	out, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func b64encode(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func indent(spaces int, s string) string {
	pad := strings.Repeat(" ", spaces)
	return pad + strings.ReplaceAll(s, "\n", "\n"+pad)
}
