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

package vcs

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/cleanup/pkg/testutils"
	"gitlab.com/tozd/go/errors"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not on PATH")
	}
}

// isolatedDir returns a directory git will not treat as part of an enclosing repository.
func isolatedDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))
	return dir
}

func TestGitClean(t *testing.T) {
	requireGit(t)
	dir := isolatedDir(t)
	ctx := testutils.Context(t)

	cmd := exec.Command("git", "init", "--quiet", dir)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git init: %s", out)

	clean, err := NewGit(dir).Clean(ctx)
	require.NoError(t, err)
	assert.True(t, clean, "fresh repository should be clean")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "edit.txt"), []byte("x"), 0o644))

	clean, err = NewGit(dir).Clean(ctx)
	require.NoError(t, err)
	assert.False(t, clean, "untracked file should make the tree dirty")
}

func TestGitCleanFailsClosed(t *testing.T) {
	tests := []struct {
		name    string
		git     func(t *testing.T) *Git
		wantErr error
	}{
		{
			name: "missing_binary",
			git: func(t *testing.T) *Git {
				return &Git{Dir: t.TempDir(), Binary: "definitely-not-a-real-git-binary"}
			},
			wantErr: ErrGitNotFound,
		},
		{
			name: "not_a_repository",
			git: func(t *testing.T) *Git {
				requireGit(t)
				return NewGit(isolatedDir(t))
			},
			wantErr: ErrStatusFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clean, err := tt.git(t).Clean(testutils.Context(t))

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.False(t, clean, "an unknown status must never read as clean")
		})
	}
}
