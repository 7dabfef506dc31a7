// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"context"
	"io"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 records PutObject calls.
type fakeS3 struct {
	bucket string
	key    string
	body   string
}

func (f *fakeS3) PutObject(
	_ context.Context,
	params *s3v2.PutObjectInput,
	_ ...func(*s3v2.Options),
) (*s3v2.PutObjectOutput, error) {
	f.bucket = awsv2.ToString(params.Bucket)
	f.key = awsv2.ToString(params.Key)
	b, _ := io.ReadAll(params.Body)
	f.body = string(b)
	return &s3v2.PutObjectOutput{}, nil
}

// TestFuncs_UnknownHelper verifies unknown helper names are a setup error.
func TestFuncs_UnknownHelper(t *testing.T) {
	h := NewHelpers(context.Background(), &fakeProvider{}, "None", nil, nil)

	_, err := h.Funcs([]string{"nope"})

	require.Error(t, err)
	assert.Equal(t, "unknown helper nope", err.Error())
}

// TestFuncs_Base verifies the always-on helpers.
func TestFuncs_Base(t *testing.T) {
	h := NewHelpers(context.Background(), &fakeProvider{}, "None", nil, nil)

	funcs, err := h.Funcs(nil)

	require.NoError(t, err)
	for _, name := range []string{"to_yaml", "to_json", "b64encode", "indent", "tag"} {
		assert.Contains(t, funcs, name)
	}
	assert.NotContains(t, funcs, "upload")
}

// TestUserDataHelper verifies file content is base64-encoded from the
// template source.
func TestUserDataHelper(t *testing.T) {
	p := &fakeProvider{files: map[string]string{"boot.sh": "#!/bin/sh\n"}}
	h := NewHelpers(context.Background(), p, "None", nil, nil)

	out, err := h.userData("boot.sh")

	require.NoError(t, err)
	assert.Equal(t, "IyEvYmluL3NoCg==", out)
}

// TestUploadHelper verifies artifacts land in the cfn bucket and the s3 URL
// is returned.
func TestUploadHelper(t *testing.T) {
	p := &fakeProvider{files: map[string]string{"lambda.zip": "zipbytes"}}
	s3 := &fakeS3{}
	h := NewHelpers(context.Background(), p, "my-bucket", nil, s3)

	url, err := h.upload("lambda.zip")

	require.NoError(t, err)
	assert.Equal(t, "s3://my-bucket/artifacts/lambda.zip", url)
	assert.Equal(t, "my-bucket", s3.bucket)
	assert.Equal(t, "artifacts/lambda.zip", s3.key)
	assert.Equal(t, "zipbytes", s3.body)
}

// TestUploadHelper_NoBucket verifies the upload helper demands a real bucket
// setting.
func TestUploadHelper_NoBucket(t *testing.T) {
	h := NewHelpers(context.Background(), &fakeProvider{}, "None", nil, &fakeS3{})

	_, err := h.upload("lambda.zip")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cfn_bucket")
}

// TestIndent verifies the indent helper pads every line.
func TestIndent(t *testing.T) {
	assert.Equal(t, "  a\n  b", indent(2, "a\nb"))
}

// TestToYAML verifies round-trippable YAML output without a trailing newline.
func TestToYAML(t *testing.T) {
	out, err := toYAML(map[string]string{"a": "1"})

	require.NoError(t, err)
	assert.Equal(t, "a: \"1\"", out)
}
