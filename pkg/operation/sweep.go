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

	"github.com/rs/zerolog"
	"github.com/walteh/cleanup/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// 🧹 Run executes the pipeline: status check, scan and archive, then build.
func (op *operator) Run(ctx context.Context) (*Report, error) {
	logger := zerolog.Ctx(ctx)
	out := log.FromContext(ctx)
	logger.Debug().Str("config", op.config.String()).Msg("starting cleanup")

	clean, err := op.status.Clean(ctx)
	if err != nil {
		return nil, &StageError{Stage: StagePrecondition, Err: errors.Errorf("checking working tree: %w", err)}
	}
	if !clean {
		return nil, &StageError{Stage: StagePrecondition, Err: ErrDirtyTree}
	}

	report := &Report{DryRun: op.config.DryRun}

	for c := range op.scanner.Candidates(ctx) {
		if op.config.DryRun {
			rec := op.archiver.Plan(c)
			report.Planned = append(report.Planned, rec)
			out.LogArchiveOperation(ctx, log.ArchiveOperation{
				Source:      rec.Source,
				Destination: rec.Destination,
				DryRun:      true,
			})
			continue
		}

		// first failure stops the whole run; earlier moves stay in the archive
		rec, err := op.archiver.Archive(ctx, c)
		if err != nil {
			if n := len(report.Archived); n > 0 {
				out.Warningf("%d file(s) already moved to %s stay archived", n, op.config.ArchiveDir)
			}
			return report, &StageError{Stage: StageArchive, Err: err}
		}
		report.Archived = append(report.Archived, rec)
		out.LogArchiveOperation(ctx, log.ArchiveOperation{
			Source:      rec.Source,
			Destination: rec.Destination,
		})
	}
	if err := ctx.Err(); err != nil {
		return report, &StageError{Stage: StageArchive, Err: errors.Errorf("scanning: %w", err)}
	}

	if op.config.DryRun {
		logger.Debug().Int("planned", len(report.Planned)).Msg("dry run complete")
		return report, nil
	}

	out.Summary()

	if err := op.builder.Verify(ctx); err != nil {
		logger.Debug().Err(err).Int("archived", len(report.Archived)).Msg("build failed after cleanup")
		return report, &StageError{Stage: StageBuild, Err: err}
	}
	report.Verified = true

	return report, nil
}
