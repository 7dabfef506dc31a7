// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package module is the host-runtime boundary: it binds Ansible-style args
// files to typed argument sets, validates required fields, and defines the
// uniform Response record every handler reports through.
package module
