// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package jsonpack

import (
	"math"
	"unicode/utf8"

	"github.com/dsnet/jsonpack/internal/bitio"

	"github.com/dsnet/golib/errs"
)

type decoder struct {
	br      *bitio.Reader
	keys    *keyCoder
	pool    *stringPool
	version byte
}

// value reads one value record. It panics on malformed input; Decompress
// recovers at the boundary.
func (dec *decoder) value() Value {
	switch tag := readBits(dec.br, 3); tag {
	case tagNull:
		return Null()
	case tagBoolFalse:
		return Bool(false)
	case tagBoolTrue:
		return Bool(true)
	case tagInt:
		if readBits(dec.br, 1) == 0 {
			return Int(readVarint(dec.br))
		}
		return Uint(readUvarint(dec.br))
	case tagFloat:
		f := math.Float64frombits(readBits(dec.br, 64))
		errs.Assert(!math.IsNaN(f) && !math.IsInf(f, 0), ErrIllegalFloat)
		return Float(f)
	case tagString:
		return String(dec.readString())
	case tagArray:
		cnt := readUvarint(dec.br)
		elems := make([]Value, 0, clampCap(cnt))
		for i := uint64(0); i < cnt; i++ {
			elems = append(elems, dec.value())
		}
		return Array(elems...)
	case tagObject:
		cnt := readUvarint(dec.br)
		mems := make([]Member, 0, clampCap(cnt))
		for i := uint64(0); i < cnt; i++ {
			key := dec.keys.readKey(dec.br)
			mems = append(mems, Member{Key: key, Value: dec.value()})
		}
		return Object(mems...)
	default:
		panic(ErrHuffman) // Unreachable: all eight tag values are handled
	}
}

func (dec *decoder) readString() string {
	if dec.version == versionV2 {
		if readBits(dec.br, 1) == 1 {
			id := readUvarint(dec.br)
			s, ok := dec.pool.at(id)
			errs.Assert(ok, ErrPoolIDOutOfRange)
			return s
		}
	}
	return readStringPayload(dec.br)
}

// readStringRecord reads the flag-free STRING form used by pool entries.
func readStringRecord(br *bitio.Reader) string {
	errs.Assert(readBits(br, 3) == tagString, ErrHuffman)
	return readStringPayload(br)
}

func readStringPayload(br *bitio.Reader) string {
	n := readUvarint(br)
	errs.Assert(int64(n) >= 0 && int64(n) <= br.BitsRemaining()/8, ErrOutOfBounds)
	b := make([]byte, n)
	for i := range b {
		b[i] = readByte(br)
	}
	errs.Assert(utf8.Valid(b), ErrInvalidUTF8)
	return string(b)
}

// clampCap bounds speculative allocations for wire-supplied counts.
func clampCap(cnt uint64) int {
	const max = 1 << 12
	if cnt > max {
		return max
	}
	return int(cnt)
}
