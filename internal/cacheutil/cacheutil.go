// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/stkctl/stkctl/internal/log"
)

// Dir resolves the base cache directory.
// Precedence:
//  1. STKCTL_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/stkctl
//
// Returns ("", false) if a base cannot be resolved (treat as disabled).
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("STKCTL_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "stkctl"), true
	}
	return "", false
}

// Enabled returns true unless STKCTL_CACHE explicitly disables it ("0"/"false").
func Enabled() bool {
	enabled, _ := os.LookupEnv("STKCTL_CACHE")
	return enabled == "" || (enabled != "0" && enabled != "false")
}

// EnsureBaseDir creates the base cache directory if caching is enabled and
// a base path can be resolved. Returns the path, whether it is usable, and an
// error if creation failed.
func EnsureBaseDir() (string, bool, error) {
	if !Enabled() {
		return "", false, nil
	}

	base, ok := Dir()
	if !ok {
		return "", false, nil
	}

	if err := os.MkdirAll(base, 0o755); err != nil { //nolint:mnd
		return base, false, fmt.Errorf("failed to create cache base directory: %w", err)
	}
	log.Debugf("created cache dir: path=%s", base)
	return base, true, nil
}

// RepoDir returns the directory where a clone of the given repository URL and
// ref lives beneath the cache base, plus whether a clone is already present.
// Returns ("", false) when caching is unavailable; callers should fall back to
// a temporary directory.
func RepoDir(url, ref string) (string, bool) {
	base, ok := Dir()
	if !ok || !Enabled() {
		return "", false
	}
	p := filepath.Join(base, "repos", encodeKey(url+"::"+ref))
	if fi, err := os.Stat(p); err == nil && fi.IsDir() {
		return p, true
	}
	return p, false
}

// Purge removes clone directories older than the provided number of hours.
// If hours <= 0 or the cache dir cannot be resolved, it is a no-op.
func Purge(hours int) error {
	if hours <= 0 {
		log.Debug("cache cleaning disabled")
		return nil
	}

	base, ok := Dir()
	if !ok {
		return nil
	}

	maxAge := time.Duration(hours) * time.Hour
	entries, err := os.ReadDir(filepath.Join(base, "repos"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to purge cache: %w", err)
	}

	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) > maxAge {
			p := filepath.Join(base, "repos", entry.Name())
			if err := os.RemoveAll(p); err == nil {
				log.Debugf("removed cached clone %s", p)
			} else {
				log.WithError(err).Warnf("failed to remove cached clone %s", p)
			}
		}
	}
	return nil
}

// sha256 hex digest, used to flatten repo URLs into directory names.
func encodeKey(input string) string {
	h := sha256.New()
	h.Write([]byte(input))
	return hex.EncodeToString(h.Sum(nil))
}
