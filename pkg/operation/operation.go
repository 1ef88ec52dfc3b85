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

package operation

import (
	"context"
	"time"

	"github.com/walteh/cleanup/pkg/archive"
	"github.com/walteh/cleanup/pkg/build"
	"github.com/walteh/cleanup/pkg/config"
	"github.com/walteh/cleanup/pkg/scan"
	"github.com/walteh/cleanup/pkg/vcs"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operator runs the cleanup pipeline
type Operator interface {
	// Run checks the working tree, archives candidates and, in live mode,
	// verifies the build. The console logger is taken from ctx with
	// log.FromContext. A failure is always a *StageError.
	Run(ctx context.Context) (*Report, error)
}

// 🔧 Options contains configuration for the operator
type Options struct {
	// Config describes the run
	Config *config.Config
	// Status checks the working tree before anything is scanned
	Status vcs.StatusChecker
	// Builder verifies the workspace after a live run
	Builder build.Verifier
	// Clock stamps audit records, defaults to time.Now
	Clock func() time.Time
}

// 📊 Report is the outcome of a run
type Report struct {
	DryRun   bool             // Mode the run used
	Planned  []archive.Record // Moves reported by a dry run
	Archived []archive.Record // Moves completed by a live run
	Verified bool             // Whether the build passed after a live run
}

// 🏭 New creates a new operator with the given options
func New(opts Options) (Operator, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Status == nil {
		return nil, errors.Errorf("status checker is required")
	}
	if opts.Builder == nil {
		return nil, errors.Errorf("build verifier is required")
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	scanner, err := scan.New(opts.Config)
	if err != nil {
		return nil, errors.Errorf("creating scanner: %w", err)
	}

	var archiveOpts []archive.Option
	if opts.Clock != nil {
		archiveOpts = append(archiveOpts, archive.WithClock(opts.Clock))
	}

	return &operator{
		config:   opts.Config,
		status:   opts.Status,
		builder:  opts.Builder,
		scanner:  scanner,
		archiver: archive.New(opts.Config, archiveOpts...),
	}, nil
}

// 🎮 operator implements the Operator interface
type operator struct {
	config   *config.Config
	status   vcs.StatusChecker
	builder  build.Verifier
	scanner  *scan.Scanner
	archiver *archive.Archiver
}

