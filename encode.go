// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package jsonpack

import (
	"math"

	"github.com/dsnet/jsonpack/internal/bitio"
	"github.com/dsnet/jsonpack/internal/leb128"

	"github.com/dsnet/golib/errs"
)

// Every value record starts with a 3-bit type tag, LSB-first.
const (
	tagNull      = 0x0
	tagBoolFalse = 0x1
	tagBoolTrue  = 0x2
	tagInt       = 0x3
	tagFloat     = 0x4
	tagString    = 0x5
	tagObject    = 0x6
	tagArray     = 0x7
)

type encoder struct {
	bw   *bitio.Writer
	keys *keyCoder
	pool *stringPool // nil for version 1 packages
}

// value writes one value record. It panics on invalid input; Compress
// recovers at the boundary.
func (enc *encoder) value(v Value) {
	switch v.Kind() {
	case KindNull:
		enc.bw.WriteBits(tagNull, 3)
	case KindBool:
		if v.Bool() {
			enc.bw.WriteBits(tagBoolTrue, 3)
		} else {
			enc.bw.WriteBits(tagBoolFalse, 3)
		}
	case KindInt:
		enc.writeInt(v.Int())
	case KindUint:
		// The signed domain is preferred whenever the value fits.
		if v.Uint() <= math.MaxInt64 {
			enc.writeInt(int64(v.Uint()))
		} else {
			enc.bw.WriteBits(tagInt, 3)
			enc.bw.WriteBits(1, 1)
			leb128.WriteUvarint(enc.bw, v.Uint())
		}
	case KindFloat:
		errs.Assert(!math.IsNaN(v.Float()) && !math.IsInf(v.Float(), 0), ErrIllegalFloat)
		enc.bw.WriteBits(tagFloat, 3)
		enc.bw.WriteBits(v.num, 64)
	case KindString:
		enc.writeString(v.Str())
	case KindArray:
		enc.bw.WriteBits(tagArray, 3)
		leb128.WriteUvarint(enc.bw, uint64(len(v.Elems())))
		for _, e := range v.Elems() {
			enc.value(e)
		}
	case KindObject:
		enc.bw.WriteBits(tagObject, 3)
		leb128.WriteUvarint(enc.bw, uint64(len(v.Members())))
		for _, m := range v.Members() {
			enc.keys.writeKey(enc.bw, m.Key)
			enc.value(m.Value)
		}
	default:
		errs.Panic(ErrHuffman)
	}
}

func (enc *encoder) writeInt(v int64) {
	enc.bw.WriteBits(tagInt, 3)
	enc.bw.WriteBits(0, 1)
	leb128.WriteVarint(enc.bw, v)
}

func (enc *encoder) writeString(s string) {
	enc.bw.WriteBits(tagString, 3)
	if enc.pool == nil {
		writeStringPayload(enc.bw, s)
		return
	}
	// Version 2: a one-bit flag selects a pool reference or a literal.
	if id, ok := enc.pool.lookup(s); ok {
		enc.bw.WriteBits(1, 1)
		leb128.WriteUvarint(enc.bw, id)
	} else {
		enc.bw.WriteBits(0, 1)
		writeStringPayload(enc.bw, s)
	}
}

// writeStringRecord writes the flag-free STRING form used by pool entries.
func writeStringRecord(bw *bitio.Writer, s string) {
	bw.WriteBits(tagString, 3)
	writeStringPayload(bw, s)
}

func writeStringPayload(bw *bitio.Writer, s string) {
	leb128.WriteUvarint(bw, uint64(len(s)))
	for i := 0; i < len(s); i++ {
		bw.WriteByte(s[i])
	}
}
