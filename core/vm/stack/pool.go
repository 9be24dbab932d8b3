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

package stack

import "sync"

var stackPool = sync.Pool{
	New: func() interface{} { return New() },
}

// NewNormalStack returns a Stack borrowed from the shared pool, saving
// an allocation on the common path of running many short-lived frames
// back to back (e.g. from a test harness or a batch CLI run).
func NewNormalStack() *Stack {
	return stackPool.Get().(*Stack)
}

// ReturnNormalStack clears s and returns it to the pool. Callers must
// not use s again after calling this.
func ReturnNormalStack(s *Stack) {
	s.reset()
	stackPool.Put(s)
}
