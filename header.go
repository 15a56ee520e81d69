// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package jsonpack

import (
	"github.com/dsnet/jsonpack/internal/bitio"
	"github.com/dsnet/jsonpack/internal/leb128"

	"github.com/dsnet/golib/errs"
)

const hdrMagic = "JCPR"

const (
	versionV1 = 0x01 // No string pool
	versionV2 = 0x02 // String pool present, possibly empty
)

type header struct {
	version byte
	dictLen uint64
	poolLen uint64
}

func writeHeader(bw *bitio.Writer, version byte, dictLen, poolLen uint64) {
	for i := 0; i < len(hdrMagic); i++ {
		bw.WriteByte(hdrMagic[i])
	}
	bw.WriteByte(version)
	leb128.WriteUvarint(bw, dictLen)
	leb128.WriteUvarint(bw, poolLen)
}

// readHeader panics with the appropriate error on malformed input.
func readHeader(br *bitio.Reader) header {
	var magic [len(hdrMagic)]byte
	for i := range magic {
		magic[i] = readByte(br)
	}
	errs.Assert(string(magic[:]) == hdrMagic, ErrBadMagic)

	version := readByte(br)
	errs.Assert(version == versionV1 || version == versionV2, ErrBadVersion)

	dictLen := readUvarint(br)
	poolLen := readUvarint(br)
	errs.Assert(version != versionV1 || poolLen == 0, ErrBadVersion)
	return header{version: version, dictLen: dictLen, poolLen: poolLen}
}
