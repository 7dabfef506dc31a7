// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package stack wraps CloudFormation DescribeStacks/GetTemplate behind a
// Reference type answering existence, outputs and drift questions for a
// single named stack.
package stack
