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

// Package archive moves candidates under the archive root and keeps the
// append-only audit log.
//
// A live move is two filesystem operations: the rename, then the log append.
// They are not atomic. If the process dies between them the file is already
// relocated but has no log line; the archive tree itself is still the source
// of truth for what was moved.
package archive

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/cleanup/pkg/config"
	"github.com/walteh/cleanup/pkg/scan"
	"gitlab.com/tozd/go/errors"
)

// ErrDestinationExists is returned instead of overwriting an archived file.
var ErrDestinationExists = errors.Base("archive destination already exists")

// 🗄️ Archiver relocates candidates into the archive root
type Archiver struct {
	root       string
	archiveDir string
	actor      string
	journal    *Journal
	now        func() time.Time
}

// Option configures an Archiver.
type Option func(*Archiver)

// ⏰ WithClock overrides the time source used for records
func WithClock(now func() time.Time) Option {
	return func(a *Archiver) {
		a.now = now
	}
}

// 🏭 New creates an archiver for a validated config
func New(cfg *config.Config, opts ...Option) *Archiver {
	a := &Archiver{
		root:       cfg.Root,
		archiveDir: cfg.ArchiveDir,
		actor:      cfg.Actor,
		journal:    NewJournal(cfg.LogPath()),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// 🧭 Plan returns the record a live move of c would write. Nothing is touched.
func (a *Archiver) Plan(c scan.Candidate) Record {
	return Record{
		Time:        a.now(),
		Source:      c.Rel,
		Destination: filepath.Join(a.archiveDir, c.Rel),
		Actor:       a.actor,
	}
}

// 📦 Archive moves c under the archive root and then appends its record.
func (a *Archiver) Archive(ctx context.Context, c scan.Candidate) (Record, error) {
	logger := zerolog.Ctx(ctx)

	rec := a.Plan(c)
	dest := filepath.Join(a.root, rec.Destination)

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return Record{}, errors.Errorf("creating archive directory for %s: %w", c.Rel, err)
	}

	if _, err := os.Lstat(dest); err == nil {
		return Record{}, errors.Errorf("%s: %w", rec.Destination, ErrDestinationExists)
	} else if !os.IsNotExist(err) {
		return Record{}, errors.Errorf("checking archive destination %s: %w", rec.Destination, err)
	}

	if err := os.Rename(c.Path, dest); err != nil {
		return Record{}, errors.Errorf("moving %s: %w", c.Rel, err)
	}
	logger.Debug().Str("source", c.Rel).Str("destination", rec.Destination).Msg("moved file")

	if err := a.journal.Append(rec); err != nil {
		return Record{}, errors.Errorf("logging move of %s: %w", c.Rel, err)
	}

	return rec, nil
}
