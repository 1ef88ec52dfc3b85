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

package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// 📦 Defaults for a cleanup run
const (
	DefaultArchiveDir = "archive"
	DefaultLogName    = "ARCHIVE_LOG.txt"
	DefaultActor      = "cleanup tool"
)

// 🗺️ DefaultPatterns flag a base name ending in .bak or containing "unused" or "legacy".
var DefaultPatterns = []string{"*.bak", "*unused*", "*legacy*"}

// 🙈 DefaultSkipDirs are pruned during the walk in addition to the archive directory.
var DefaultSkipDirs = []string{".git"}

// 📚 Config describes a single cleanup run
type Config struct {
	Root       string   // Working tree root
	ArchiveDir string   // Archive directory, relative to Root
	LogName    string   // Audit log file name inside the archive directory
	Actor      string   // Label written to every audit record
	Patterns   []string // Case-sensitive base name globs
	SkipDirs   []string // Directory names pruned wherever they appear
	DryRun     bool     // Report instead of moving
}

// 🏭 Default returns the configuration used by the cli for root
func Default(root string) *Config {
	return &Config{
		Root:       root,
		ArchiveDir: DefaultArchiveDir,
		LogName:    DefaultLogName,
		Actor:      DefaultActor,
		Patterns:   append([]string(nil), DefaultPatterns...),
		SkipDirs:   append([]string(nil), DefaultSkipDirs...),
	}
}

// 🔍 Validate checks the configuration and normalises its paths
func (cfg *Config) Validate() error {
	if cfg.Root == "" {
		return errors.Errorf("root is required")
	}
	if cfg.ArchiveDir == "" {
		return errors.Errorf("archive directory is required")
	}
	if cfg.LogName == "" || strings.ContainsRune(cfg.LogName, filepath.Separator) {
		return errors.Errorf("invalid log name %q", cfg.LogName)
	}
	if len(cfg.Patterns) == 0 {
		return errors.Errorf("at least one pattern is required")
	}
	for _, p := range cfg.Patterns {
		if p == "" || !doublestar.ValidatePattern(p) {
			return errors.Errorf("invalid pattern %q", p)
		}
	}

	cfg.Root = filepath.Clean(cfg.Root)
	cfg.ArchiveDir = filepath.Clean(cfg.ArchiveDir)
	if filepath.IsAbs(cfg.ArchiveDir) || cfg.ArchiveDir == "." || strings.HasPrefix(cfg.ArchiveDir, "..") {
		return errors.Errorf("archive directory must be inside the root: %q", cfg.ArchiveDir)
	}

	if cfg.Actor == "" {
		cfg.Actor = DefaultActor
	}

	return nil
}

// ArchivePath is the archive directory joined to the root.
func (cfg *Config) ArchivePath() string {
	return filepath.Join(cfg.Root, cfg.ArchiveDir)
}

// LogPath is the audit log location.
func (cfg *Config) LogPath() string {
	return filepath.Join(cfg.ArchivePath(), cfg.LogName)
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	mode := "live"
	if cfg.DryRun {
		mode = "dry-run"
	}
	return fmt.Sprintf("%s -> %s [%s] (%s)", cfg.Root, cfg.ArchivePath(), strings.Join(cfg.Patterns, ","), mode)
}
