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

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📦 ArchiveOperation is one planned or completed move
type ArchiveOperation struct {
	Source      string // Path relative to the root
	Destination string // Path relative to the root
	DryRun      bool   // Whether the move was only planned
}

// 🎯 Logger prints user-facing lines and mirrors them into zerolog
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	errs       io.Writer
	mu         sync.Mutex
	operations []ArchiveOperation
}

// 🏭 New creates a logger. Regular output goes to console, failures to errs.
// Every line is mirrored at debug level into a zerolog console writer on errs.
func New(console, errs io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.ConsoleWriter{Out: errs}).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		errs:    errs,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatArchiveOperation formats a move for display
func formatArchiveOperation(op ArchiveOperation) string {
	if op.DryRun {
		return fmt.Sprintf("%s %s", color.New(color.FgYellow).Sprint("Would archive:"), op.Source)
	}
	return fmt.Sprintf("%s archived %s %s %s",
		color.New(color.FgGreen).Sprint("✓"),
		op.Source,
		color.New(color.Faint).Sprint("→"),
		color.New(color.FgCyan).Sprint(op.Destination))
}

// 📝 LogArchiveOperation prints a planned or completed move
func (l *Logger) LogArchiveOperation(ctx context.Context, op ArchiveOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.operations = append(l.operations, op)
	fmt.Fprintln(l.console, formatArchiveOperation(op))

	l.zlog.Debug().
		Str("source", op.Source).
		Str("destination", op.Destination).
		Bool("dry_run", op.DryRun).
		Msg("archive operation")
}

// 📊 Summary renders a table of the completed moves
func (l *Logger) Summary() {
	l.mu.Lock()
	data := pterm.TableData{{"Source", "Archived as"}}
	for _, op := range l.operations {
		if op.DryRun {
			continue
		}
		data = append(data, []string{op.Source, op.Destination})
	}
	l.mu.Unlock()

	if len(data) == 1 {
		l.Info("nothing to archive")
		return
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		l.zlog.Debug().Err(err).Msg("rendering summary table")
		return
	}
	// pterm styles unconditionally, color knows when the output is not a terminal
	if color.NoColor {
		table = pterm.RemoveColorFromString(table)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console, table)
	l.zlog.Debug().Int("archived", len(data)-1).Msg("summary")
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Debug().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.errs, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Debug().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.errs, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Debug().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Debug().Msg(msg)
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}
