// Copyright 2024 The goevm Authors
// This file is part of the goevm library.
//
// The goevm library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The goevm library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the goevm library. If not, see <http://www.gnu.org/licenses/>.

// Package log is a small structured, leveled logger in the classic
// go-probeum/go-ethereum style: call sites pass a message plus an
// alternating list of key/value pairs, e.g.
//
//	log.Info("frame halted", "pc", pc, "gasUsed", gasUsed)
//
// Output is line-oriented so it composes with the interpreter's debug
// tracer (one key=value line per executed opcode).
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/go-stack/stack"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Level is a logging severity.
type Level int

const (
	LvlError Level = iota
	LvlWarn
	LvlInfo
	LvlDebug
	LvlTrace
)

func (l Level) String() string {
	switch l {
	case LvlError:
		return "ERROR"
	case LvlWarn:
		return "WARN"
	case LvlInfo:
		return "INFO"
	case LvlDebug:
		return "DEBUG"
	case LvlTrace:
		return "TRACE"
	default:
		return "???"
	}
}

var levelColor = map[Level]*color.Color{
	LvlError: color.New(color.FgRed, color.Bold),
	LvlWarn:  color.New(color.FgYellow),
	LvlInfo:  color.New(color.FgGreen),
	LvlDebug: color.New(color.FgCyan),
	LvlTrace: color.New(color.FgWhite),
}

// Logger writes leveled, key/value log lines to an underlying writer.
// The zero value is not usable; use New or the package-level default.
type Logger struct {
	mu       sync.Mutex
	out      io.Writer
	colorize bool
	minLevel Level
	callsite bool
}

// New creates a Logger writing to w. Color output is enabled
// automatically when w is a TTY (detected with go-isatty), routed
// through go-colorable so ANSI sequences render on Windows consoles too.
func New(w io.Writer) *Logger {
	colorize := false
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		w = colorable.NewColorable(f)
		colorize = true
	}
	return &Logger{
		out:      w,
		colorize: colorize,
		minLevel: LvlInfo,
		callsite: true,
	}
}

// SetLevel sets the minimum level that is actually written.
func (l *Logger) SetLevel(lvl Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.minLevel = lvl
}

// SetCallsite toggles whether the caller's file:line is included,
// captured via go-stack/stack.
func (l *Logger) SetCallsite(on bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.callsite = on
}

func (l *Logger) log(lvl Level, msg string, ctx []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if lvl > l.minLevel {
		return
	}

	ts := time.Now().Format("2006-01-02T15:04:05.000Z0700")
	levelStr := lvl.String()
	if l.colorize {
		if c, ok := levelColor[lvl]; ok {
			levelStr = c.Sprintf("%-5s", levelStr)
		}
	} else {
		levelStr = fmt.Sprintf("%-5s", levelStr)
	}

	line := fmt.Sprintf("%s [%s] %s", ts, levelStr, msg)
	if l.callsite {
		if call := callerFrame(); call != "" {
			line += " caller=" + call
		}
	}
	for i := 0; i+1 < len(ctx); i += 2 {
		line += fmt.Sprintf(" %v=%v", ctx[i], ctx[i+1])
	}
	if len(ctx)%2 == 1 {
		line += fmt.Sprintf(" %v=MISSING", ctx[len(ctx)-1])
	}
	fmt.Fprintln(l.out, line)
}

// callerFrame walks the stack (via go-stack/stack) past this package's
// own frames to find the first external caller.
func callerFrame() string {
	for _, c := range stack.Trace().TrimRuntime() {
		fn := fmt.Sprintf("%k", c)
		if fn == "log" || fn == "" {
			continue
		}
		return fmt.Sprintf("%+v", c)
	}
	return ""
}

func (l *Logger) Error(msg string, ctx ...interface{}) { l.log(LvlError, msg, ctx) }
func (l *Logger) Warn(msg string, ctx ...interface{})  { l.log(LvlWarn, msg, ctx) }
func (l *Logger) Info(msg string, ctx ...interface{})  { l.log(LvlInfo, msg, ctx) }
func (l *Logger) Debug(msg string, ctx ...interface{}) { l.log(LvlDebug, msg, ctx) }
func (l *Logger) Trace(msg string, ctx ...interface{}) { l.log(LvlTrace, msg, ctx) }

// root is the package-level default logger, writing to stderr, matching
// the teacher's package-level log.Info/log.Warn call convention.
var root = New(os.Stderr)

// Root returns the package-level default Logger.
func Root() *Logger { return root }

func Error(msg string, ctx ...interface{}) { root.Error(msg, ctx...) }
func Warn(msg string, ctx ...interface{})  { root.Warn(msg, ctx...) }
func Info(msg string, ctx ...interface{})  { root.Info(msg, ctx...) }
func Debug(msg string, ctx ...interface{}) { root.Debug(msg, ctx...) }
func Trace(msg string, ctx ...interface{}) { root.Trace(msg, ctx...) }
