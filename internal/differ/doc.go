// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ computes the structural difference between a rendered
// template and the version currently deployed, and scrubs color escape
// sequences from the result.
package differ
