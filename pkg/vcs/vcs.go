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

// Package vcs answers whether the working tree is clean.
package vcs

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Sentinel errors returned when the status cannot be obtained.
var (
	ErrGitNotFound  = errors.Base("git not found on PATH")
	ErrStatusFailed = errors.Base("git status failed")
)

// 🔍 StatusChecker reports whether the working tree has pending changes
type StatusChecker interface {
	// Clean returns true only when the tree is known to be clean. Any error
	// comes with false.
	Clean(ctx context.Context) (bool, error)
}

var _ StatusChecker = (*Git)(nil)

// 🌿 Git checks status with `git status --porcelain`
type Git struct {
	Dir    string // Directory the command runs in
	Binary string // Defaults to "git"
}

// 🏭 NewGit creates a checker for dir
func NewGit(dir string) *Git {
	return &Git{Dir: dir, Binary: "git"}
}

// Clean implements StatusChecker.
func (g *Git) Clean(ctx context.Context) (bool, error) {
	logger := zerolog.Ctx(ctx)

	bin := g.Binary
	if bin == "" {
		bin = "git"
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return false, errors.Errorf("%w: %s", ErrGitNotFound, err.Error())
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, "status", "--porcelain")
	cmd.Dir = g.Dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return false, errors.Errorf("%w: %s", ErrStatusFailed, msg)
	}

	pending := strings.TrimSpace(stdout.String())
	if pending != "" {
		logger.Debug().Int("entries", strings.Count(pending, "\n")+1).Msg("working tree has pending changes")
		return false, nil
	}
	return true, nil
}
