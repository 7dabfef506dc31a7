// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/stkctl/stkctl/internal/cacheutil"
	"github.com/stkctl/stkctl/internal/config"
	"github.com/stkctl/stkctl/internal/log"
)

// Head identifies the commit a template was rendered from.
type Head struct {
	SHA string
	Ref string
}

// Provider reads template bodies from a resolved source location and reports
// the source-control head, when there is one.
type Provider interface {
	Body(name string) ([]byte, error)
	Head() (Head, error)
}

// localProvider serves templates from a directory on disk. Head works when
// the directory happens to live inside a git work tree.
type localProvider struct {
	root string
}

func (p *localProvider) Body(name string) ([]byte, error) {
	b, err := os.ReadFile(filepath.Join(p.root, name))
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", name, err)
	}
	return b, nil
}

func (p *localProvider) Head() (Head, error) {
	repo, err := git.PlainOpenWithOptions(p.root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return Head{}, err
	}
	return headOf(repo)
}

// gitProvider clones the template repository (into the clone cache when
// available, a throwaway directory otherwise) and serves files from the
// resulting work tree.
type gitProvider struct {
	dir  string
	repo *git.Repository
	ref  string
	temp bool
}

func newGitProvider(ctx context.Context, s Source) (*gitProvider, error) {
	purgeStaleClones()

	temp := false
	dir, cached := cacheutil.RepoDir(s.Repo, s.Ref)
	if dir == "" {
		tmp, err := os.MkdirTemp("", "stkctl-template-*")
		if err != nil {
			return nil, err
		}
		dir = tmp
		temp = true
	}

	if cached {
		repo, err := git.PlainOpen(dir)
		if err == nil {
			log.Debugf("using cached clone: repo=%s, dir=%s", s.Repo, dir)
			return &gitProvider{dir: dir, repo: repo, ref: s.Ref}, nil
		}
		// A broken cache entry is discarded and re-cloned.
		log.WithError(err).Warnf("discarding unusable cached clone %s", dir)
		if err := os.RemoveAll(dir); err != nil {
			return nil, err
		}
	}

	opts := &git.CloneOptions{
		URL:   s.Repo,
		Depth: 1,
	}
	if s.Ref != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(s.Ref)
	}

	repo, err := git.PlainCloneContext(ctx, dir, false, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to clone template repo %s: %w", s.Repo, err)
	}
	log.Debugf("cloned template repo: repo=%s, dir=%s", s.Repo, dir)
	return &gitProvider{dir: dir, repo: repo, ref: s.Ref, temp: temp}, nil
}

// Cleanup removes a throwaway clone directory. Cached clones are kept for
// reuse across invocations.
func (p *gitProvider) Cleanup() {
	if !p.temp {
		return
	}
	if err := os.RemoveAll(p.dir); err != nil {
		log.WithError(err).Warnf("failed to remove temp clone %s", p.dir)
	}
}

func (p *gitProvider) Body(name string) ([]byte, error) {
	b, err := os.ReadFile(filepath.Join(p.dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", name, err)
	}
	return b, nil
}

func (p *gitProvider) Head() (Head, error) {
	h, err := headOf(p.repo)
	if err != nil {
		return Head{}, err
	}
	if p.ref != "" {
		h.Ref = p.ref
	}
	return h, nil
}

// purgeStaleClones evicts cached clones older than the cache.clean config key
// (hours). Unset or zero leaves the cache alone.
func purgeStaleClones() {
	hours, err := config.GetInt("cache.clean", 0)
	if err != nil {
		log.WithError(err).Warnf("ignoring invalid cache.clean value")
		return
	}
	if err := cacheutil.Purge(hours); err != nil {
		log.WithError(err).Warnf("clone cache purge failed")
	}
}

func headOf(repo *git.Repository) (Head, error) {
	head, err := repo.Head()
	if err != nil {
		return Head{}, err
	}
	return Head{
		SHA: head.Hash().String(),
		Ref: head.Name().Short(),
	}, nil
}
