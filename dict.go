// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package jsonpack

import (
	"sort"
	"unicode/utf8"

	"github.com/dsnet/jsonpack/internal/bitio"
	"github.com/dsnet/jsonpack/internal/leb128"
	"github.com/dsnet/jsonpack/internal/prefix"

	"github.com/dsnet/golib/errs"
)

// keyFreq is one dictionary entry: a distinct object key and the number of
// times it occurs anywhere in the value tree.
type keyFreq struct {
	key string
	cnt uint64
}

// collectKeys walks the tree depth-first and returns the key-frequency
// table sorted by ascending key bytes. Array positions and string values
// contribute nothing.
func collectKeys(v Value) []keyFreq {
	cnts := make(map[string]uint64)
	var walk func(Value)
	walk = func(v Value) {
		switch v.Kind() {
		case KindArray:
			for _, e := range v.Elems() {
				walk(e)
			}
		case KindObject:
			for _, m := range v.Members() {
				cnts[m.Key]++
				walk(m.Value)
			}
		}
	}
	walk(v)

	freqs := make([]keyFreq, 0, len(cnts))
	for key, cnt := range cnts {
		freqs = append(freqs, keyFreq{key, cnt})
	}
	sort.Slice(freqs, func(i, j int) bool { return freqs[i].key < freqs[j].key })
	return freqs
}

// writeDictionary emits the table entries in sorted order. The entry count
// was already written as DICT_LEN in the header.
//
// The sorted emission is load-bearing: symbol indices follow the sorted
// order, and they are the canonical tie-breaker of the key code.
func writeDictionary(bw *bitio.Writer, freqs []keyFreq) {
	for _, f := range freqs {
		leb128.WriteUvarint(bw, uint64(len(f.key)))
		for i := 0; i < len(f.key); i++ {
			bw.WriteByte(f.key[i])
		}
		leb128.WriteUvarint(bw, f.cnt)
	}
}

// readDictionary reads cnt entries and returns the table sorted by key.
// Duplicate keys are last-wins; a zero frequency fails the decode since no
// conformant encoder emits one.
func readDictionary(br *bitio.Reader, cnt uint64) []keyFreq {
	cnts := make(map[string]uint64)
	for i := uint64(0); i < cnt; i++ {
		n := readUvarint(br)
		key := make([]byte, n)
		for j := range key {
			key[j] = readByte(br)
		}
		errs.Assert(utf8.Valid(key), ErrInvalidUTF8)
		freq := readUvarint(br)
		errs.Assert(freq > 0, ErrHuffman)
		cnts[string(key)] = freq
	}

	freqs := make([]keyFreq, 0, len(cnts))
	for key, cnt := range cnts {
		freqs = append(freqs, keyFreq{key, cnt})
	}
	sort.Slice(freqs, func(i, j int) bool { return freqs[i].key < freqs[j].key })
	return freqs
}

// keyCoder maps object keys to and from their Huffman codes. Symbol i is
// the i-th key in sorted order.
type keyCoder struct {
	syms map[string]uint32
	keys []string
	enc  prefix.Encoder
	dec  prefix.Decoder
}

// newKeyCoder builds the canonical code for a sorted frequency table.
// It panics on tables whose code cannot be represented.
func newKeyCoder(freqs []keyFreq) *keyCoder {
	kc := &keyCoder{syms: make(map[string]uint32, len(freqs))}
	codes := make(prefix.PrefixCodes, len(freqs))
	for i, f := range freqs {
		kc.syms[f.key] = uint32(i)
		kc.keys = append(kc.keys, f.key)
		codes[i] = prefix.PrefixCode{Sym: uint32(i), Cnt: f.cnt}
	}
	errs.Panic(prefix.GenerateLengths(codes))
	errs.Panic(prefix.GeneratePrefixes(codes))
	kc.enc.Init(codes)
	errs.Panic(kc.dec.Init(codes))
	return kc
}

// writeKey writes the codeword of key, which must be in the dictionary the
// coder was built from.
func (kc *keyCoder) writeKey(bw *bitio.Writer, key string) {
	sym, ok := kc.syms[key]
	errs.Assert(ok, ErrHuffman)
	kc.enc.WriteSym(bw, sym)
}

// readKey decodes the next codeword. An empty dictionary has no code, so
// any read fails.
func (kc *keyCoder) readKey(br *bitio.Reader) string {
	errs.Assert(len(kc.keys) > 0, ErrHuffman)
	sym, err := kc.dec.ReadSym(br)
	errs.Panic(err)
	return kc.keys[sym]
}
