// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package account resolves the AWS account id of the current credentials via
// STS, for the account handler's identity check.
package account
