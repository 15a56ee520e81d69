// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build gofuzz
// +build gofuzz

package jsonpack

import (
	"bytes"

	gjsonpack "github.com/dsnet/jsonpack"
)

func Fuzz(data []byte) int {
	v, err := gjsonpack.Decompress(data)
	if err != nil {
		return 0 // Arbitrary bytes rarely form a valid package
	}

	// A decodable package must re-encode to an equal value under every
	// option shape, and re-encoding must be deterministic.
	for _, opts := range []*gjsonpack.Options{nil, {EnableValuePool: true}} {
		buf1, err := gjsonpack.Compress(v, opts)
		if err != nil {
			// A decoded value holds only finite floats, so it must re-encode.
			panic(err)
		}
		buf2, err := gjsonpack.Compress(v, opts)
		if err != nil || !bytes.Equal(buf1, buf2) {
			panic("non-deterministic compression")
		}
		got, err := gjsonpack.Decompress(buf1)
		if err != nil {
			panic(err)
		}
		if !got.Equal(v) {
			panic("mismatching values")
		}
	}
	return 1 // Favor valid inputs
}
