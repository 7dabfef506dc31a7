// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package module

import (
	"errors"
	"io"
	"reflect"
	"strings"
)

// fieldTag returns the json tag name (without options) for structField on
// args, which may be a struct or pointer to struct.
func fieldTag(args any, structField string) (string, error) {
	t := reflect.TypeOf(args)
	if t == nil {
		return "", errors.New("nil args")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return "", errors.New("args is not a struct")
	}
	f, ok := t.FieldByName(structField)
	if !ok {
		return "", errors.New("no such field")
	}
	tag := f.Tag.Get("json")
	if idx := strings.Index(tag, ","); idx != -1 {
		tag = tag[:idx]
	}
	return tag, nil
}

func readAll(r io.Reader) ([]byte, error) {
	return io.ReadAll(r)
}
