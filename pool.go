// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package jsonpack

import (
	"sort"

	"github.com/dsnet/jsonpack/internal/bitio"
)

// stringPool is the document-local table of reusable string values carried
// by version 2 packages. Entries are distinct strings; ids are assigned by
// descending occurrence count with ties broken by ascending bytes.
type stringPool struct {
	entries []string
	index   map[string]uint64
}

// collectStringPool visits every string value in the tree and retains those
// occurring at least minRepeats times with a byte length of at least
// minStringLen.
func collectStringPool(root Value, minRepeats uint32, minStringLen int) *stringPool {
	cnts := make(map[string]uint32)
	var walk func(Value)
	walk = func(v Value) {
		switch v.Kind() {
		case KindString:
			cnts[v.Str()]++
		case KindArray:
			for _, e := range v.Elems() {
				walk(e)
			}
		case KindObject:
			for _, m := range v.Members() {
				walk(m.Value)
			}
		}
	}
	walk(root)

	type candidate struct {
		s   string
		cnt uint32
	}
	var cands []candidate
	for s, cnt := range cnts {
		if cnt >= minRepeats && len(s) >= minStringLen {
			cands = append(cands, candidate{s, cnt})
		}
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].cnt != cands[j].cnt {
			return cands[i].cnt > cands[j].cnt
		}
		return cands[i].s < cands[j].s
	})

	pool := &stringPool{index: make(map[string]uint64, len(cands))}
	for i, c := range cands {
		pool.index[c.s] = uint64(i)
		pool.entries = append(pool.entries, c.s)
	}
	return pool
}

func (p *stringPool) size() int {
	if p == nil {
		return 0
	}
	return len(p.entries)
}

// lookup reports the id of s if it is pooled.
func (p *stringPool) lookup(s string) (uint64, bool) {
	if p == nil {
		return 0, false
	}
	id, ok := p.index[s]
	return id, ok
}

// write emits the pool entries in id order. Each entry is a STRING value
// record without the reference flag; the flag exists only in the data
// section of version 2 packages.
func (p *stringPool) write(bw *bitio.Writer) {
	for _, s := range p.entries {
		writeStringRecord(bw, s)
	}
}

// readStringPool reads cnt literal STRING records and rebuilds the table.
func readStringPool(br *bitio.Reader, cnt uint64) *stringPool {
	pool := &stringPool{index: make(map[string]uint64)}
	for i := uint64(0); i < cnt; i++ {
		s := readStringRecord(br)
		pool.index[s] = uint64(len(pool.entries))
		pool.entries = append(pool.entries, s)
	}
	return pool
}

// at resolves an id from the data section.
func (p *stringPool) at(id uint64) (string, bool) {
	if p == nil || id >= uint64(len(p.entries)) {
		return "", false
	}
	return p.entries[id], true
}
