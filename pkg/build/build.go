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

// Package build verifies that a workspace still builds.
package build

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Sentinel errors returned by Command.Verify.
var (
	ErrToolNotFound = errors.Base("build tool not found on PATH")
	ErrBuildFailed  = errors.Base("build failed")
)

// 🔨 Verifier runs the project's build
type Verifier interface {
	Verify(ctx context.Context) error
}

var _ Verifier = (*Command)(nil)

// 🛠️ Command is a build invocation run with its output discarded
type Command struct {
	Dir  string
	Name string
	Args []string
}

// 🗺️ markers maps a file at the project root to its standard build command,
// checked in order.
var markers = []struct {
	file string
	name string
	args []string
}{
	{file: "go.mod", name: "go", args: []string{"build", "./..."}},
	{file: "Cargo.toml", name: "cargo", args: []string{"build"}},
	{file: "Makefile", name: "make"},
}

// 🔍 Detect picks the build command for the project at root. A root with no
// known marker is treated as a Go workspace.
func Detect(root string) *Command {
	for _, m := range markers {
		if info, err := os.Stat(filepath.Join(root, m.file)); err == nil && !info.IsDir() {
			return &Command{Dir: root, Name: m.name, Args: append([]string(nil), m.args...)}
		}
	}
	return &Command{Dir: root, Name: "go", Args: []string{"build", "./..."}}
}

// String returns the command line.
func (c *Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// ✅ Verify runs the command and returns nil when it exits 0
func (c *Command) Verify(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	path, err := exec.LookPath(c.Name)
	if err != nil {
		return errors.Errorf("%w: %s", ErrToolNotFound, c.Name)
	}

	cmd := exec.CommandContext(ctx, path, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdout = nil
	cmd.Stderr = nil

	logger.Debug().Str("command", c.String()).Str("dir", c.Dir).Msg("verifying build")
	if err := cmd.Run(); err != nil {
		return errors.Errorf("%w: %s: %s", ErrBuildFailed, c.String(), err.Error())
	}
	return nil
}
