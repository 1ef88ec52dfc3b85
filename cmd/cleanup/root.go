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

package main

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/cleanup/pkg/build"
	"github.com/walteh/cleanup/pkg/config"
	"github.com/walteh/cleanup/pkg/log"
	"github.com/walteh/cleanup/pkg/operation"
	"github.com/walteh/cleanup/pkg/vcs"
	"gitlab.com/tozd/go/errors"
)

const dryRunFlag = "--dry-run"

// logLevelEnv selects the zerolog level for diagnostics on stderr
const logLevelEnv = "CLEANUP_LOG_LEVEL"

// 🧩 app holds what the root command needs from the outside world
type app struct {
	root    string
	stdout  io.Writer
	stderr  io.Writer
	status  func(root string) vcs.StatusChecker
	builder func(root string) build.Verifier
}

// 🏭 newApp wires the real git status check and build detection
func newApp(root string, stdout, stderr io.Writer) *app {
	return &app{
		root:    root,
		stdout:  stdout,
		stderr:  stderr,
		status:  func(root string) vcs.StatusChecker { return vcs.NewGit(root) },
		builder: func(root string) build.Verifier { return build.Detect(root) },
	}
}

// isDryRun reports whether --dry-run is present. Nothing else is parsed.
func isDryRun(args []string) bool {
	for _, a := range args {
		if a == dryRunFlag {
			return true
		}
	}
	return false
}

// logLevel reads the diagnostics level, defaulting to warn
func logLevel() zerolog.Level {
	raw := strings.TrimSpace(os.Getenv(logLevelEnv))
	if raw == "" {
		return zerolog.WarnLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(raw))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.WarnLevel
	}
	return level
}

// setupLogging puts a zerolog console logger for diagnostics on ctx
func setupLogging(ctx context.Context, w io.Writer, level zerolog.Level) context.Context {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
	return logger.WithContext(ctx)
}

// newRootCmd builds the only command. Flag parsing is disabled so that every
// argument other than --dry-run, --help included, is ignored.
func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:                "cleanup",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := log.New(a.stdout, a.stderr, zerolog.Ctx(ctx).GetLevel())

			cfg := config.Default(a.root)
			cfg.DryRun = isDryRun(args)

			op, err := operation.New(operation.Options{
				Config:  cfg,
				Status:  a.status(cfg.Root),
				Builder: a.builder(cfg.Root),
			})
			if err != nil {
				logger.Error(operation.Describe(err))
				return errors.Errorf("creating operator: %w", err)
			}

			if _, err := op.Run(log.NewContext(ctx, logger)); err != nil {
				logger.Error(operation.Describe(err))
				return err
			}

			if !cfg.DryRun {
				logger.Success("Cleanup complete and workspace rebuilt successfully.")
			}
			return nil
		},
	}
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	return cmd
}

// commandArgs drops the hidden completion request names cobra would otherwise
// route to its own command. The slice is never nil so cobra does not fall back
// to os.Args.
func commandArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if a == cobra.ShellCompRequestCmd || a == cobra.ShellCompNoDescRequestCmd {
			continue
		}
		out = append(out, a)
	}
	return out
}

// run executes the command and maps the outcome to a process exit code
func run(ctx context.Context, args []string, a *app) int {
	ctx = setupLogging(ctx, a.stderr, logLevel())
	logVersion(ctx)

	cmd := newRootCmd(a)
	cmd.SetArgs(commandArgs(args))
	if err := cmd.ExecuteContext(ctx); err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("stage", operation.StageOf(err).String()).Msg("cleanup failed")
		return 1
	}
	return 0
}
