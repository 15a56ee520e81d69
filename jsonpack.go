// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package jsonpack implements a lossless compression codec for JSON
// documents.
//
// A compression call produces a self-describing binary package from a JSON
// value; decompression reconstructs an equal value. The codec exploits two
// statistical regularities: object keys repeat across nested structures, so
// keys are coded with a document-local canonical Huffman code, and long
// string values may recur verbatim, so version 2 packages may carry a
// document-local string pool referenced by small identifiers.
//
// Package layout:
//
//	MAGIC "JCPR"  VERSION  DICT_LEN  POOL_LEN
//	dictionary entries (sorted by key bytes)
//	pool entries (version 2 only)
//	root value, zero-padded to the next byte boundary
//
// All structures are per call. Concurrent calls on different inputs share
// nothing.
package jsonpack

import (
	"github.com/dsnet/jsonpack/internal"
	"github.com/dsnet/jsonpack/internal/bitio"
	"github.com/dsnet/jsonpack/internal/leb128"
	"github.com/dsnet/jsonpack/internal/prefix"

	"github.com/dsnet/golib/errs"
)

var (
	ErrBadMagic         error = internal.Error("magic number mismatch")
	ErrBadVersion       error = internal.Error("unsupported package version")
	ErrIllegalFloat     error = internal.Error("non-finite float")
	ErrInvalidUTF8      error = internal.Error("invalid UTF-8 string")
	ErrPoolIDOutOfRange error = internal.Error("pool id out of range")
	ErrBase64           error = internal.Error("malformed base64 input")

	// ErrOutOfBounds is reported when a package ends before its root value.
	ErrOutOfBounds = bitio.ErrOutOfBounds

	// ErrVarintOverflow is reported when a length or count field does not
	// terminate within its 64-bit budget.
	ErrVarintOverflow = leb128.ErrOverflow

	// ErrHuffman is reported for malformed structure: an unknown value tag,
	// a key missing from the dictionary at encode time, or a corrupted key
	// code at decode time.
	ErrHuffman = prefix.ErrCorrupt
)

// Options configures compression. The zero value of each field selects its
// default, so a nil *Options means all defaults.
type Options struct {
	// EnableValuePool emits a version 2 package with a (possibly empty)
	// string pool. The default is a version 1 package without one.
	EnableValuePool bool

	// PoolMinRepeats is the minimum number of occurrences for a string to
	// qualify for the pool (default 3).
	PoolMinRepeats uint32

	// PoolMinStringLen is the minimum byte length for a string to qualify
	// for the pool (default 8).
	PoolMinStringLen int
}

const (
	defaultPoolMinRepeats   = 3
	defaultPoolMinStringLen = 8
)

func (o *Options) poolMinRepeats() uint32 {
	if o == nil || o.PoolMinRepeats == 0 {
		return defaultPoolMinRepeats
	}
	return o.PoolMinRepeats
}

func (o *Options) poolMinStringLen() int {
	if o == nil || o.PoolMinStringLen == 0 {
		return defaultPoolMinStringLen
	}
	return o.PoolMinStringLen
}

func (o *Options) poolEnabled() bool {
	return o != nil && o.EnableValuePool
}

// Compress encodes v as a binary package.
func Compress(v Value, opts *Options) (buf []byte, err error) {
	defer errs.Recover(&err)

	freqs := collectKeys(v)
	kc := newKeyCoder(freqs)

	var pool *stringPool
	version := byte(versionV1)
	if opts.poolEnabled() {
		version = versionV2
		pool = collectStringPool(v, opts.poolMinRepeats(), opts.poolMinStringLen())
	}

	bw := new(bitio.Writer)
	writeHeader(bw, version, uint64(len(freqs)), uint64(pool.size()))
	writeDictionary(bw, freqs)
	if pool != nil {
		pool.write(bw)
	}
	enc := encoder{bw: bw, keys: kc, pool: pool}
	enc.value(v)
	return bw.Bytes(), nil
}

// Decompress decodes a binary package produced by Compress.
func Decompress(buf []byte) (v Value, err error) {
	defer errs.Recover(&err)

	br := bitio.NewReader(buf)
	hdr := readHeader(br)
	freqs := readDictionary(br, hdr.dictLen)
	kc := newKeyCoder(freqs)

	dec := decoder{br: br, keys: kc, version: hdr.version}
	if hdr.version == versionV2 {
		dec.pool = readStringPool(br, hdr.poolLen)
	}
	return dec.value(), nil
}

// CompressBase64 encodes v and wraps the package in unpadded standard
// base64 text.
func CompressBase64(v Value, opts *Options) (string, error) {
	buf, err := Compress(v, opts)
	if err != nil {
		return "", err
	}
	return encodeBase64(buf), nil
}

// DecompressBase64 decodes a package from base64 text. Both padded and
// unpadded input are accepted, and ASCII whitespace is ignored.
func DecompressBase64(s string) (Value, error) {
	buf, err := decodeBase64(s)
	if err != nil {
		return Value{}, err
	}
	return Decompress(buf)
}
