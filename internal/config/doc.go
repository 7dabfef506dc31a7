// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config loads the optional stkctl user configuration file and exposes
// dotted-key getters used for per-command defaults.
package config
