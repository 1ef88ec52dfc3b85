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
	"fmt"

	"github.com/walteh/cleanup/pkg/build"
	"gitlab.com/tozd/go/errors"
)

// ErrDirtyTree is the precondition failure for a tree with pending changes.
var ErrDirtyTree = errors.Base("working tree is not clean")

// 🚦 Stage is the pipeline step a failure came from
type Stage int

const (
	StagePrecondition Stage = iota + 1 // Working tree dirty or status unknown
	StageArchive                       // Filesystem error while scanning or archiving
	StageBuild                         // Build failed after a live run
)

// String returns a string representation of Stage
func (s Stage) String() string {
	switch s {
	case StagePrecondition:
		return "precondition"
	case StageArchive:
		return "archive"
	case StageBuild:
		return "build"
	default:
		return "unknown"
	}
}

// ❌ StageError ties a failure to the step that produced it
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %s", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// StageOf returns the stage of err, or 0 when err is not a *StageError.
func StageOf(err error) Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return 0
}

// 💬 Describe turns a run failure into the message shown to the user
func Describe(err error) string {
	var se *StageError
	if !errors.As(err, &se) {
		return fmt.Sprintf("Error during cleanup: %s", err)
	}

	switch se.Stage {
	case StagePrecondition:
		if errors.Is(se.Err, ErrDirtyTree) {
			return "Git working directory is not clean. Commit or stash changes before running cleanup."
		}
		return fmt.Sprintf("Could not determine git working directory status (%s). Refusing to run cleanup.", se.Err)
	case StageBuild:
		if errors.Is(se.Err, build.ErrToolNotFound) {
			return fmt.Sprintf("Could not rebuild workspace after cleanup (%s). Review changes and restore from archive if needed.", se.Err)
		}
		return "Workspace rebuild failed after cleanup. Review changes and restore from archive if needed."
	default:
		return fmt.Sprintf("Error during cleanup: %s", se.Err)
	}
}
