// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package settings resolves the per-invocation AWS settings (region and
// CloudFormation artifact bucket) from caller overrides, the user config file
// and fixed fallbacks.
package settings
