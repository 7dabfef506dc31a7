// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package template resolves template sources (local directory or remote git
// repository), merges variables, and renders CloudFormation documents with a
// helper function set.
package template
