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

package common

import (
	"encoding/json"
	"testing"
)

func TestBytesToHashPadding(t *testing.T) {
	h := BytesToHash([]byte{0x01, 0x02})
	want := "0x0000000000000000000000000000000000000000000000000000000000000102"
	if h.Hex() != want {
		t.Errorf("Hex() = %s, want %s", h.Hex(), want)
	}
}

func TestBytesToHashCropsFromLeft(t *testing.T) {
	b := make([]byte, 40)
	b[39] = 0xff
	h := BytesToHash(b)
	if h[31] != 0xff {
		t.Errorf("expected cropped hash to keep rightmost byte, got %x", h)
	}
}

func TestBytesToAddressPadding(t *testing.T) {
	a := BytesToAddress([]byte{0xab})
	if a[19] != 0xab {
		t.Errorf("expected rightmost byte 0xab, got %x", a)
	}
	for i := 0; i < 19; i++ {
		if a[i] != 0 {
			t.Errorf("expected left padding to be zero at byte %d, got %x", i, a[i])
		}
	}
}

func TestAddressHash(t *testing.T) {
	a := BytesToAddress([]byte{0x01, 0x02, 0x03})
	h := a.Hash()
	if !h.IsZero() && h[31] != 0x03 {
		t.Errorf("Hash() = %x, want address right-aligned in 32 bytes", h)
	}
}

func TestHexToAddressRoundTrip(t *testing.T) {
	a, err := HexToAddress("0x000000000000000000000000000000000000ff")
	if err != nil {
		t.Fatalf("HexToAddress returned error: %v", err)
	}
	if a[19] != 0xff {
		t.Errorf("HexToAddress round-trip failed: got %x", a)
	}
}

func TestHexToHashInvalid(t *testing.T) {
	if _, err := HexToHash("0xzz"); err == nil {
		t.Error("expected error for invalid hex string")
	}
}

func TestHashJSONRoundTrip(t *testing.T) {
	h := BytesToHash([]byte{0xde, 0xad, 0xbe, 0xef})
	enc, err := json.Marshal(h)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	var got Hash
	if err := json.Unmarshal(enc, &got); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if got != h {
		t.Errorf("round trip = %x, want %x", got, h)
	}
}

func TestAddressJSONRoundTrip(t *testing.T) {
	a := BytesToAddress([]byte{0x01, 0x02, 0x03})
	enc, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	var got Address
	if err := json.Unmarshal(enc, &got); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if got != a {
		t.Errorf("round trip = %x, want %x", got, a)
	}
}
