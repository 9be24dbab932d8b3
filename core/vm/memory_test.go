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
	"bytes"
	"testing"

	"github.com/holiman/uint256"
)

func TestMemoryResizeRoundsUpToWord(t *testing.T) {
	m := NewMemory()
	m.Resize(1)
	if m.Len() != 32 {
		t.Errorf("Resize(1) = %d, want 32", m.Len())
	}
	m.Resize(33)
	if m.Len() != 64 {
		t.Errorf("Resize(33) = %d, want 64", m.Len())
	}
}

func TestMemoryResizeNeverShrinks(t *testing.T) {
	m := NewMemory()
	m.Resize(64)
	m.Resize(32)
	if m.Len() != 64 {
		t.Errorf("Resize should not shrink memory, got len=%d", m.Len())
	}
}

func TestMemorySetAndGetCopy(t *testing.T) {
	m := NewMemory()
	m.Set(0, 4, []byte{0xde, 0xad, 0xbe, 0xef})

	got := m.GetCopy(0, 4)
	want := []byte{0xde, 0xad, 0xbe, 0xef}
	if !bytes.Equal(got, want) {
		t.Errorf("GetCopy = %x, want %x", got, want)
	}
}

func TestMemoryGetCopyZeroPadsBeyondLength(t *testing.T) {
	m := NewMemory()
	m.Set(0, 2, []byte{0x01, 0x02})

	got := m.GetCopy(0, 8)
	want := []byte{0x01, 0x02, 0, 0, 0, 0, 0, 0}
	if !bytes.Equal(got, want) {
		t.Errorf("GetCopy = %x, want %x", got, want)
	}
}

func TestMemorySet32WritesFullWindow(t *testing.T) {
	m := NewMemory()
	val := uint256.NewInt(1)
	m.Set32(0, val)

	got := m.GetCopy(0, 32)
	want := make([]byte, 32)
	want[31] = 1
	if !bytes.Equal(got, want) {
		t.Errorf("Set32 wrote %x, want %x", got, want)
	}
}

func TestMemoryCopyOverlapping(t *testing.T) {
	m := NewMemory()
	m.Set(0, 8, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	m.Copy(2, 0, 4) // shift [0,4) into [2,6)

	got := m.GetCopy(0, 8)
	want := []byte{1, 2, 1, 2, 3, 4, 7, 8}
	if !bytes.Equal(got, want) {
		t.Errorf("Copy result = %x, want %x", got, want)
	}
}

func TestMemoryGasCostQuadratic(t *testing.T) {
	cases := []struct {
		size uint64
		want uint64
	}{
		{0, 0},
		{32, 3},
		{64, 6},
		{1024, 98},
	}
	for _, c := range cases {
		got := MemoryGasCost(c.size)
		if got != c.want {
			t.Errorf("MemoryGasCost(%d) = %d, want %d", c.size, got, c.want)
		}
	}
}

func TestMemoryGasCostDeltaCharging(t *testing.T) {
	before := MemoryGasCost(32)
	after := MemoryGasCost(64)
	delta := after - before
	if delta != 3 {
		t.Errorf("expansion delta = %d, want 3", delta)
	}
}

func TestMemoryExpansionCostChargedOnce(t *testing.T) {
	m := NewMemory()
	first := m.ExpansionCost(64)
	if first != MemoryGasCost(64) {
		t.Errorf("first ExpansionCost(64) = %d, want %d", first, MemoryGasCost(64))
	}
	second := m.ExpansionCost(64)
	if second != 0 {
		t.Errorf("repeated ExpansionCost(64) = %d, want 0", second)
	}
	third := m.ExpansionCost(32)
	if third != 0 {
		t.Errorf("ExpansionCost for a smaller size = %d, want 0", third)
	}
}

func TestMemoryReset(t *testing.T) {
	m := NewMemory()
	m.Set(0, 32, make([]byte, 32))
	m.Reset()
	if m.Len() != 0 {
		t.Errorf("Reset should zero length, got %d", m.Len())
	}
}
