// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bitio

import (
	"bytes"
	"testing"

	"github.com/dsnet/jsonpack/internal/testutil"

	"github.com/dsnet/golib/bits"
)

func TestWriterReader(t *testing.T) {
	vectors := []struct {
		writes []struct {
			val uint64
			nb  uint
		}
		output []byte
	}{{
		writes: nil,
		output: []byte{},
	}, {
		writes: []struct {
			val uint64
			nb  uint
		}{{0x1, 1}, {0x0, 1}, {0x1, 1}},
		output: []byte{0x05},
	}, {
		// The first bit written lands in bit 0 of the first byte.
		writes: []struct {
			val uint64
			nb  uint
		}{{0x5, 3}, {0xff, 8}, {0x0, 0}, {0x3, 2}},
		output: []byte{0xfd, 0x1f},
	}, {
		writes: []struct {
			val uint64
			nb  uint
		}{{0xffffffffffffffff, 64}, {0x1, 1}},
		output: []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01},
	}}

	for i, v := range vectors {
		bw := new(Writer)
		var total int64
		for _, w := range v.writes {
			bw.WriteBits(w.val, w.nb)
			total += int64(w.nb)
		}
		if got := bw.BitsWritten(); got != total {
			t.Errorf("test %d, BitsWritten() = %d, want %d", i, got, total)
		}
		buf := bw.Bytes()
		if !bytes.Equal(buf, v.output) {
			t.Errorf("test %d, output mismatch:\ngot  %x\nwant %x", i, buf, v.output)
		}
		if want := (total + 7) / 8; int64(len(buf)) != want {
			t.Errorf("test %d, len(buf) = %d, want %d", i, len(buf), want)
		}

		br := NewReader(buf)
		for j, w := range v.writes {
			val, err := br.ReadBits(w.nb)
			if err != nil {
				t.Errorf("test %d, read %d, unexpected error: %v", i, j, err)
			}
			if val != maskBits(w.val, w.nb) {
				t.Errorf("test %d, read %d, ReadBits() = %x, want %x", i, j, val, maskBits(w.val, w.nb))
			}
		}
	}
}

func TestRoundTripRand(t *testing.T) {
	rand := testutil.NewRand(0)
	type write struct {
		val uint64
		nb  uint
	}

	for trial := 0; trial < 100; trial++ {
		var writes []write
		var total int64
		for i := 0; i < 100; i++ {
			w := write{val: rand.Uint64(), nb: uint(rand.Intn(65))}
			writes = append(writes, w)
			total += int64(w.nb)
		}

		bw := new(Writer)
		for _, w := range writes {
			bw.WriteBits(w.val, w.nb)
		}
		buf := bw.Bytes()
		if int64(len(buf)) != (total+7)/8 {
			t.Fatalf("trial %d, len(buf) = %d, want %d", trial, len(buf), (total+7)/8)
		}

		br := NewReader(buf)
		for j, w := range writes {
			val, err := br.ReadBits(w.nb)
			if err != nil {
				t.Fatalf("trial %d, read %d, unexpected error: %v", trial, j, err)
			}
			if val != maskBits(w.val, w.nb) {
				t.Fatalf("trial %d, read %d, ReadBits() = %x, want %x", trial, j, val, maskBits(w.val, w.nb))
			}
		}

		// Trailing padding bits must be zero.
		if pads := int64(len(buf))*8 - total; pads > 0 {
			val, err := br.ReadBits(uint(pads))
			if err != nil || val != 0 {
				t.Fatalf("trial %d, pads = %x (err: %v), want 0", trial, val, err)
			}
		}
	}
}

// TestOracle cross-checks the LSB-first packing against an independent
// bit buffer implementation.
func TestOracle(t *testing.T) {
	rand := testutil.NewRand(1)
	bb := bits.NewBuffer(nil)
	bw := new(Writer)
	for i := 0; i < 1000; i++ {
		nb := rand.Intn(16) + 1
		val := uint(rand.Intn(1 << uint(nb)))
		bb.WriteBits(val, nb)
		bw.WriteBits(uint64(val), uint(nb))
	}
	for !bb.WriteAligned() {
		bb.WriteBits(0, 1)
	}
	if !bytes.Equal(bw.Bytes(), bb.Bytes()) {
		t.Errorf("output mismatch:\ngot  %x\nwant %x", bw.Bytes(), bb.Bytes())
	}
}

func TestOutOfBounds(t *testing.T) {
	br := NewReader([]byte{0xab, 0xcd})
	if rem := br.BitsRemaining(); rem != 16 {
		t.Errorf("BitsRemaining() = %d, want 16", rem)
	}
	if _, err := br.ReadBits(17); err != ErrOutOfBounds {
		t.Errorf("ReadBits(17) error = %v, want %v", err, ErrOutOfBounds)
	}
	if v, err := br.ReadBits(12); err != nil || v != 0xdab {
		t.Errorf("ReadBits(12) = %x (err: %v), want dab", v, err)
	}
	if rem := br.BitsRemaining(); rem != 4 {
		t.Errorf("BitsRemaining() = %d, want 4", rem)
	}
	if _, err := br.ReadBits(5); err != ErrOutOfBounds {
		t.Errorf("ReadBits(5) error = %v, want %v", err, ErrOutOfBounds)
	}
	if v, err := br.ReadBits(4); err != nil || v != 0xc {
		t.Errorf("ReadBits(4) = %x (err: %v), want c", v, err)
	}
	if _, err := br.ReadByte(); err != ErrOutOfBounds {
		t.Errorf("ReadByte() error = %v, want %v", err, ErrOutOfBounds)
	}
}

func TestWriterReset(t *testing.T) {
	bw := new(Writer)
	bw.WriteBits(0x3, 2)
	bw.Reset()
	bw.WriteByte(0x42)
	if !bytes.Equal(bw.Bytes(), []byte{0x42}) {
		t.Errorf("output after Reset = %x, want 42", bw.Bytes())
	}
}
