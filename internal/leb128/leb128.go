// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package leb128 implements LEB128 variable-length integers on top of a
// bitio stream. Each group is emitted as a whole byte against the bit
// stream, so varints may be freely interleaved with sub-byte fields.
package leb128

import (
	"github.com/dsnet/jsonpack/internal"
	"github.com/dsnet/jsonpack/internal/bitio"
)

// ErrOverflow is reported when a varint does not terminate within the
// 64-bit budget.
var ErrOverflow error = internal.Error("varint overflow")

// maxGroups is the number of 7-bit groups needed to carry 64 bits.
const maxGroups = 10

// WriteUvarint writes v as an unsigned LEB128 integer.
func WriteUvarint(bw *bitio.Writer, v uint64) {
	for {
		c := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			c |= 0x80
		}
		bw.WriteByte(c)
		if v == 0 {
			return
		}
	}
}

// ReadUvarint reads an unsigned LEB128 integer.
func ReadUvarint(br *bitio.Reader) (uint64, error) {
	var v uint64
	var shift uint
	for i := 0; i < maxGroups; i++ {
		c, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		v |= uint64(c&0x7f) << shift
		if c&0x80 == 0 {
			return v, nil
		}
		shift += 7
	}
	return 0, ErrOverflow
}

// WriteVarint writes v as a signed LEB128 integer.
func WriteVarint(bw *bitio.Writer, v int64) {
	for {
		c := byte(v & 0x7f)
		v >>= 7
		// The value is fully emitted once the remaining bits match the
		// sign bit of the last group.
		if (v == 0 && c&0x40 == 0) || (v == -1 && c&0x40 != 0) {
			bw.WriteByte(c)
			return
		}
		bw.WriteByte(c | 0x80)
	}
}

// ReadVarint reads a signed LEB128 integer, sign-extending from bit 6 of
// the final group.
func ReadVarint(br *bitio.Reader) (int64, error) {
	var v int64
	var shift uint
	for {
		c, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		v |= int64(c&0x7f) << shift
		shift += 7
		if c&0x80 == 0 {
			if shift < 64 && c&0x40 != 0 {
				v |= ^int64(0) << shift
			}
			return v, nil
		}
		if shift >= 64 {
			return 0, ErrOverflow
		}
	}
}
