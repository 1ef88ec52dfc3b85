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

package scan

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/cleanup/pkg/config"
	"github.com/walteh/cleanup/pkg/testutils"
)

func TestMatcher(t *testing.T) {
	m, err := NewMatcher(config.DefaultPatterns)
	require.NoError(t, err)

	tests := []struct {
		name string
		want bool
	}{
		{name: "old.bak", want: true},
		{name: ".bak", want: true},
		{name: "main.go.bak", want: true},
		{name: "unused_helper.go", want: true},
		{name: "helper_unused", want: true},
		{name: "legacy", want: true},
		{name: ".legacy.rc", want: true},
		{name: "old.BAK", want: false},
		{name: "Unused.go", want: false},
		{name: "LEGACY.md", want: false},
		{name: "old.bak.txt", want: false},
		{name: "backup", want: false},
		{name: "readme.txt", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Match(tt.name))
		})
	}
}

func TestNewMatcherErrors(t *testing.T) {
	_, err := NewMatcher(nil)
	require.Error(t, err)

	_, err = NewMatcher([]string{"*.bak", "[oops"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pattern")
}

func newScanner(t *testing.T, root string) *Scanner {
	t.Helper()
	cfg := config.Default(root)
	require.NoError(t, cfg.Validate())
	s, err := New(cfg)
	require.NoError(t, err)
	return s
}

func rels(cs []Candidate) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, filepath.ToSlash(c.Rel))
	}
	sort.Strings(out)
	return out
}

func TestCandidates(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  []string
	}{
		{
			name: "reference_layout",
			files: map[string]string{
				"old.bak":                  "0123456789",
				"readme.txt":               "0123456789",
				"empty_unused.txt":         "",
				"archive/stale_legacy.txt": "01234",
			},
			want: []string{"old.bak"},
		},
		{
			name: "nested_matches",
			files: map[string]string{
				"src/legacy/client.go":      "package legacy",
				"src/api/unused_handler.go": "package api",
				"src/api/handler.go":        "package api",
				"docs/notes.md.bak":         "notes",
			},
			want: []string{"docs/notes.md.bak", "src/api/unused_handler.go"},
		},
		{
			name: "directory_names_do_not_match",
			files: map[string]string{
				"legacy/keep.go": "package keep",
				"unused/x.txt":   "x",
			},
			want: []string{},
		},
		{
			name: "archive_pruned_at_any_depth_of_name",
			files: map[string]string{
				"archive/a/b/c.bak":       "x",
				"archive/ARCHIVE_LOG.txt": "line",
				"sub/archive/d.bak":       "x",
			},
			want: []string{"sub/archive/d.bak"},
		},
		{
			name: "git_metadata_pruned",
			files: map[string]string{
				".git/refs/heads/legacy-branch": "abc123",
				".git/config.bak":               "x",
				"keep.bak":                      "x",
			},
			want: []string{"keep.bak"},
		},
		{
			name: "case_sensitive",
			files: map[string]string{
				"OLD.BAK":     "x",
				"LegacyA.txt": "x",
				"legacyB.txt": "x",
			},
			want: []string{"legacyB.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			testutils.WriteTree(t, root, tt.files)
			s := newScanner(t, root)

			got := slices.Collect(s.Candidates(testutils.Context(t)))

			assert.Equal(t, tt.want, rels(got))
			for _, c := range got {
				assert.Equal(t, filepath.Join(root, c.Rel), c.Path, "path should be root-joined")
				assert.Positive(t, c.Size, "candidates are never empty")
			}
		})
	}
}

func TestCandidatesSkipsSymlinks(t *testing.T) {
	root := t.TempDir()
	testutils.WriteTree(t, root, map[string]string{"target.txt": "data"})
	if err := os.Symlink(filepath.Join(root, "target.txt"), filepath.Join(root, "link.bak")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	got := slices.Collect(newScanner(t, root).Candidates(testutils.Context(t)))

	assert.Empty(t, got, "symlinks should never be candidates")
}

func TestCandidatesSkipsUnreadableDirectories(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	root := t.TempDir()
	testutils.WriteTree(t, root, map[string]string{
		"locked/inner.bak": "x",
		"open/outer.bak":   "x",
	})
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	got := slices.Collect(newScanner(t, root).Candidates(testutils.Context(t)))

	assert.Equal(t, []string{"open/outer.bak"}, rels(got), "unreadable directory should be skipped, not fatal")
}

func TestCandidatesIsLazy(t *testing.T) {
	root := t.TempDir()
	testutils.WriteTree(t, root, map[string]string{
		"a.bak": "x",
		"b.bak": "x",
		"c.bak": "x",
	})
	s := newScanner(t, root)

	var seen []string
	for c := range s.Candidates(testutils.Context(t)) {
		seen = append(seen, c.Rel)
		break
	}
	assert.Equal(t, []string{"a.bak"}, seen, "walk should stop when the consumer stops")

	// a fresh walk starts from scratch
	assert.Len(t, slices.Collect(s.Candidates(testutils.Context(t))), 3)
}

func TestCandidatesCancelled(t *testing.T) {
	root := t.TempDir()
	testutils.WriteTree(t, root, map[string]string{"a.bak": "x"})
	s := newScanner(t, root)

	ctx, cancel := context.WithCancel(testutils.Context(t))
	cancel()

	assert.Empty(t, slices.Collect(s.Candidates(ctx)))
}

func TestCandidatesMissingRoot(t *testing.T) {
	s := newScanner(t, filepath.Join(t.TempDir(), "nope"))

	assert.Empty(t, slices.Collect(s.Candidates(testutils.Context(t))), "missing root is skipped like any unreadable entry")
}
