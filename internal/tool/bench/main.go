// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Benchmark tool to compare the compression ratio of jsonpack against
// general-purpose codecs on JSON corpora. Individual implementations are
// referred to as codecs.
//
// Example usage:
//	$ go run main.go -files ../../../testdata/users.json
//
//	BENCHMARK: ratio
//		benchmark       rawSize  compSize  ratio
//
// followed by one row per file and codec (jp1, jp2, fl, xz) giving the
// file's byte size, the compressed size, and rawSize/compSize.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/dsnet/jsonpack"

	"github.com/klauspost/compress/flate"
	"github.com/ulikunitz/xz"
)

// A codec compresses a JSON document given both its textual form and its
// parsed value.
type codec struct {
	name     string
	compress func(data []byte, v jsonpack.Value) ([]byte, error)
}

var codecs = []codec{{
	name: "jp1",
	compress: func(data []byte, v jsonpack.Value) ([]byte, error) {
		return jsonpack.Compress(v, nil)
	},
}, {
	name: "jp2",
	compress: func(data []byte, v jsonpack.Value) ([]byte, error) {
		return jsonpack.Compress(v, &jsonpack.Options{EnableValuePool: true})
	},
}, {
	name: "fl",
	compress: func(data []byte, v jsonpack.Value) ([]byte, error) {
		var buf bytes.Buffer
		zw, err := flate.NewWriter(&buf, flate.BestCompression)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(zw, bytes.NewReader(data)); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	},
}, {
	name: "xz",
	compress: func(data []byte, v jsonpack.Value) ([]byte, error) {
		var buf bytes.Buffer
		zw, err := xz.NewWriter(&buf)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(zw, bytes.NewReader(data)); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	},
}}

func main() {
	files := flag.String("files", "../../../testdata/users.json,../../../testdata/events.json",
		"Comma-separated list of JSON files to benchmark")
	flag.Parse()

	fmt.Println("BENCHMARK: ratio")
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "\tbenchmark\trawSize\tcompSize\tratio\t")
	for _, file := range strings.Split(*files, ",") {
		if err := runFile(tw, file); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", file, err)
			os.Exit(1)
		}
	}
	tw.Flush()
}

func runFile(tw *tabwriter.Writer, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	v, err := jsonpack.Parse(data)
	if err != nil {
		return err
	}

	for _, c := range codecs {
		comp, err := c.compress(data, v)
		if err != nil {
			return fmt.Errorf("codec %s: %v", c.name, err)
		}
		// Verify that jsonpack packages still decode to the input.
		if strings.HasPrefix(c.name, "jp") {
			got, err := jsonpack.Decompress(comp)
			if err != nil {
				return fmt.Errorf("codec %s: %v", c.name, err)
			}
			if !got.Equal(v) {
				return fmt.Errorf("codec %s: round-trip mismatch", c.name)
			}
		}
		fmt.Fprintf(tw, "\t%s:%s\t%d\t%d\t%.3f\t\n",
			filepath.Base(file), c.name, len(data), len(comp),
			float64(len(data))/float64(len(comp)))
	}
	return nil
}
