// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package scan walks a working tree and yields files that look stale.
package scan

import (
	"context"
	"io/fs"
	"iter"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/cleanup/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// 📄 Candidate is a file selected for archiving
type Candidate struct {
	Path string // Root-joined path
	Rel  string // Path relative to the root
	Size int64  // Always > 0
}

// 🔎 Scanner walks a root, pruning the archive directory
type Scanner struct {
	root    string
	archive string
	skip    map[string]bool
	matcher *Matcher
}

// 🏭 New creates a scanner for a validated config
func New(cfg *config.Config) (*Scanner, error) {
	m, err := NewMatcher(cfg.Patterns)
	if err != nil {
		return nil, errors.Errorf("building matcher: %w", err)
	}
	skip := make(map[string]bool, len(cfg.SkipDirs))
	for _, d := range cfg.SkipDirs {
		skip[d] = true
	}
	return &Scanner{
		root:    cfg.Root,
		archive: cfg.ArchivePath(),
		skip:    skip,
		matcher: m,
	}, nil
}

// 🚶 Candidates returns a lazy sequence of candidates. Every call walks the
// tree again from scratch. Unreadable entries are skipped, never reported.
func (s *Scanner) Candidates(ctx context.Context) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		logger := zerolog.Ctx(ctx)

		_ = filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
			if ctx.Err() != nil {
				return filepath.SkipAll
			}
			if err != nil {
				logger.Debug().Err(err).Str("path", path).Msg("skipping unreadable entry")
				return nil
			}

			if d.IsDir() {
				if path == s.archive {
					logger.Debug().Str("path", path).Msg("pruning archive directory")
					return filepath.SkipDir
				}
				if path != s.root && s.skip[d.Name()] {
					return filepath.SkipDir
				}
				return nil
			}

			// symlinks, sockets, devices and the like are never archived
			if !d.Type().IsRegular() {
				return nil
			}
			if !s.matcher.Match(d.Name()) {
				return nil
			}

			info, err := d.Info()
			if err != nil {
				logger.Debug().Err(err).Str("path", path).Msg("skipping file without info")
				return nil
			}
			if info.Size() == 0 {
				logger.Debug().Str("path", path).Msg("skipping empty file")
				return nil
			}

			rel, err := filepath.Rel(s.root, path)
			if err != nil {
				return nil
			}

			if !yield(Candidate{Path: path, Rel: rel, Size: info.Size()}) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}
