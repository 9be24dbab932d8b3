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

package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerWritesKeyValuePairs(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.SetCallsite(false)
	l.Info("frame halted", "pc", 5, "gasUsed", 9)

	out := buf.String()
	if !strings.Contains(out, "frame halted") {
		t.Errorf("expected message in output, got %q", out)
	}
	if !strings.Contains(out, "pc=5") || !strings.Contains(out, "gasUsed=9") {
		t.Errorf("expected key/value pairs in output, got %q", out)
	}
}

func TestLoggerRespectsMinLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.SetCallsite(false)
	l.SetLevel(LvlWarn)
	l.Debug("should not appear")
	l.Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Errorf("expected debug message to be suppressed, got %q", out)
	}
	if !strings.Contains(out, "should appear") {
		t.Errorf("expected warn message to be logged, got %q", out)
	}
}

func TestLoggerOddContextMarksMissing(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.SetCallsite(false)
	l.Info("odd context", "onlyKey")

	if !strings.Contains(buf.String(), "onlyKey=MISSING") {
		t.Errorf("expected MISSING marker for unpaired key, got %q", buf.String())
	}
}
