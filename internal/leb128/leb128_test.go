// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package leb128

import (
	"bytes"
	"math"
	"testing"

	"github.com/dsnet/jsonpack/internal/bitio"
	"github.com/dsnet/jsonpack/internal/testutil"
)

func TestUvarint(t *testing.T) {
	vectors := []struct {
		val    uint64
		output []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{624485, []byte{0xe5, 0x8e, 0x26}},
		{math.MaxUint64, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}},
	}

	for i, v := range vectors {
		bw := new(bitio.Writer)
		WriteUvarint(bw, v.val)
		buf := bw.Bytes()
		if !bytes.Equal(buf, v.output) {
			t.Errorf("test %d, output mismatch:\ngot  %x\nwant %x", i, buf, v.output)
		}

		val, err := ReadUvarint(bitio.NewReader(buf))
		if err != nil {
			t.Errorf("test %d, unexpected error: %v", i, err)
		}
		if val != v.val {
			t.Errorf("test %d, ReadUvarint() = %d, want %d", i, val, v.val)
		}
	}
}

func TestVarint(t *testing.T) {
	vectors := []struct {
		val    int64
		output []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{-1, []byte{0x7f}},
		{63, []byte{0x3f}},
		{64, []byte{0xc0, 0x00}},
		{-64, []byte{0x40}},
		{-65, []byte{0xbf, 0x7f}},
		{-123456, []byte{0xc0, 0xbb, 0x78}},
		{math.MaxInt64, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x00}},
		{math.MinInt64, []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x7f}},
	}

	for i, v := range vectors {
		bw := new(bitio.Writer)
		WriteVarint(bw, v.val)
		buf := bw.Bytes()
		if !bytes.Equal(buf, v.output) {
			t.Errorf("test %d, output mismatch:\ngot  %x\nwant %x", i, buf, v.output)
		}

		val, err := ReadVarint(bitio.NewReader(buf))
		if err != nil {
			t.Errorf("test %d, unexpected error: %v", i, err)
		}
		if val != v.val {
			t.Errorf("test %d, ReadVarint() = %d, want %d", i, val, v.val)
		}
	}
}

func TestRoundTripRand(t *testing.T) {
	rand := testutil.NewRand(0)
	for i := 0; i < 10000; i++ {
		u := rand.Uint64()
		bw := new(bitio.Writer)
		WriteUvarint(bw, u)
		WriteVarint(bw, int64(u))

		br := bitio.NewReader(bw.Bytes())
		gotU, err := ReadUvarint(br)
		if err != nil || gotU != u {
			t.Fatalf("test %d, ReadUvarint() = %d (err: %v), want %d", i, gotU, err, u)
		}
		gotI, err := ReadVarint(br)
		if err != nil || gotI != int64(u) {
			t.Fatalf("test %d, ReadVarint() = %d (err: %v), want %d", i, gotI, err, int64(u))
		}
	}
}

// Varints interleave with sub-byte fields without assuming byte alignment.
func TestUnaligned(t *testing.T) {
	bw := new(bitio.Writer)
	bw.WriteBits(0x5, 3)
	WriteUvarint(bw, 624485)
	bw.WriteBits(0x1, 1)
	WriteVarint(bw, -65)

	br := bitio.NewReader(bw.Bytes())
	if v, _ := br.ReadBits(3); v != 0x5 {
		t.Fatalf("ReadBits(3) = %x, want 5", v)
	}
	if v, err := ReadUvarint(br); err != nil || v != 624485 {
		t.Fatalf("ReadUvarint() = %d (err: %v), want 624485", v, err)
	}
	if v, _ := br.ReadBits(1); v != 0x1 {
		t.Fatalf("ReadBits(1) = %x, want 1", v)
	}
	if v, err := ReadVarint(br); err != nil || v != -65 {
		t.Fatalf("ReadVarint() = %d (err: %v), want -65", v, err)
	}
}

func TestOverflow(t *testing.T) {
	// Eleven continuation groups never terminate within the 64-bit budget.
	overlong := bytes.Repeat([]byte{0x80}, 11)
	if _, err := ReadUvarint(bitio.NewReader(overlong)); err != ErrOverflow {
		t.Errorf("ReadUvarint() error = %v, want %v", err, ErrOverflow)
	}
	if _, err := ReadVarint(bitio.NewReader(overlong)); err != ErrOverflow {
		t.Errorf("ReadVarint() error = %v, want %v", err, ErrOverflow)
	}

	// Truncation surfaces as an out-of-bounds read.
	if _, err := ReadUvarint(bitio.NewReader([]byte{0x80})); err != bitio.ErrOutOfBounds {
		t.Errorf("ReadUvarint() error = %v, want %v", err, bitio.ErrOutOfBounds)
	}
	if _, err := ReadVarint(bitio.NewReader([]byte{0xff})); err != bitio.ErrOutOfBounds {
		t.Errorf("ReadVarint() error = %v, want %v", err, bitio.ErrOutOfBounds)
	}
}
