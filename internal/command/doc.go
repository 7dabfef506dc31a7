// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the stkctl CLI surface: one subcommand per handler
// (account, outputs, template), plus the shared flag and result plumbing.
package command
