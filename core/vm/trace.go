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

package vm

import (
	"github.com/holiman/uint256"
	"github.com/probechain/goevm/log"
)

// TraceStep is one pre-execution snapshot of a Frame, emitted in
// program order so a trace is deterministic and replayable — the same
// property the original evm-rs's ad hoc debug prints aimed for, now
// structured and routed through the logger instead of println!.
type TraceStep struct {
	PC        uint64
	Op        OpCode
	GasLeft   uint64
	Depth     int
	StackSize int
	MemSize   int
	// Stack holds the top few operands at the time of the step, most
	// recently pushed last, for tracers that print or diff stack state.
	Stack []uint256.Int
}

// Tracer receives one TraceStep per opcode, before it executes.
type Tracer interface {
	CaptureStep(step TraceStep)
}

// LogTracer is the default Tracer: it writes one structured log line
// per step via the log package's Debug level, in the same
// "msg", "k", v, ... convention the teacher's miner and state packages
// use throughout.
type LogTracer struct{}

// NewLogTracer returns a Tracer that logs each step.
func NewLogTracer() *LogTracer { return &LogTracer{} }

func (LogTracer) CaptureStep(step TraceStep) {
	log.Debug("step",
		"pc", step.PC,
		"op", step.Op.String(),
		"gas", step.GasLeft,
		"stackSize", step.StackSize,
		"memSize", step.MemSize,
		"top", formatStackTop(step.Stack),
	)
}

// formatStackTop renders a handful of top-of-stack words for a log line,
// most recently pushed first.
func formatStackTop(top []uint256.Int) string {
	if len(top) == 0 {
		return "[]"
	}
	s := "["
	for i := len(top) - 1; i >= 0; i-- {
		if i != len(top)-1 {
			s += " "
		}
		s += top[i].String()
	}
	return s + "]"
}

// CollectingTracer buffers every step in memory instead of logging it,
// for callers that want to print or serialize the whole trace at the
// end of a run.
type CollectingTracer struct {
	Steps []TraceStep
}

// NewCollectingTracer returns a Tracer that records steps for later retrieval.
func NewCollectingTracer() *CollectingTracer { return &CollectingTracer{} }

func (t *CollectingTracer) CaptureStep(step TraceStep) {
	t.Steps = append(t.Steps, step)
}

// stackTop returns a snapshot of the top n elements of a stack's
// backing slice (bottom-first, so the last element is the current
// top), for inclusion in a TraceStep. The slice is copied so a later
// push or pop on the live stack cannot mutate an already-captured step.
func stackTop(data []uint256.Int, n int) []uint256.Int {
	if n > len(data) {
		n = len(data)
	}
	top := data[len(data)-n:]
	snapshot := make([]uint256.Int, len(top))
	copy(snapshot, top)
	return snapshot
}
