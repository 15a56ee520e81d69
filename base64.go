// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package jsonpack

import (
	"encoding/base64"
	"strings"
)

// The textual envelope is standard-alphabet base64. Output is unpadded;
// input may be padded or not, with ASCII whitespace ignored.

func encodeBase64(buf []byte) string {
	return base64.RawStdEncoding.EncodeToString(buf)
}

func decodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n', '\f':
			return -1
		}
		return r
	}, s)

	if buf, err := base64.RawStdEncoding.DecodeString(s); err == nil {
		return buf, nil
	}
	buf, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, ErrBase64
	}
	return buf, nil
}
