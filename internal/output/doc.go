// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output serializes handler responses for the host runtime (JSON or
// YAML) and for humans (--pretty), with optional gjson path extraction.
package output
