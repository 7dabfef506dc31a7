// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws contains AWS SDK v2 config loading and client constructors used
// by the account, stack and template helper layers.
package aws
