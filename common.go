// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package jsonpack

import (
	"github.com/dsnet/jsonpack/internal/bitio"
	"github.com/dsnet/jsonpack/internal/leb128"

	"github.com/dsnet/golib/errs"
)

// The codec is recursive, so the readers below panic on failure and the
// public entry points recover at the boundary.

func readBits(br *bitio.Reader, nb uint) uint64 {
	v, err := br.ReadBits(nb)
	errs.Panic(err)
	return v
}

func readByte(br *bitio.Reader) byte {
	c, err := br.ReadByte()
	errs.Panic(err)
	return c
}

func readUvarint(br *bitio.Reader) uint64 {
	v, err := leb128.ReadUvarint(br)
	errs.Panic(err)
	return v
}

func readVarint(br *bitio.Reader) int64 {
	v, err := leb128.ReadVarint(br)
	errs.Panic(err)
	return v
}
