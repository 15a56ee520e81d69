// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package prefix implements a canonical Huffman coder.
//
// Symbols are dense indices assigned by the caller in lexical order of the
// underlying keys. Code lengths come from the classic combine-two-smallest
// construction with a deterministic tie-breaker, and codewords follow the
// canonical scheme: sorted by (length, symbol), each length's first code is
// the previous length's next free code shifted left by one.
//
// Codewords are MSB-first by definition; the bitstream is LSB-first. The
// Encoder therefore stores each length-L codeword with its low L bits
// reversed so that it can be written directly, while the Decoder walks a
// binary tree keyed on the MSB as bits arrive.
package prefix

import (
	"container/heap"
	"sort"

	"github.com/dsnet/jsonpack/internal"
	"github.com/dsnet/jsonpack/internal/bitio"
)

// ErrCorrupt is reported for structurally invalid codes: unassignable
// lengths, over-long codewords, or a walk that escapes the code tree.
var ErrCorrupt error = internal.Error("corrupted prefix code")

// PrefixCode is a (symbol, count) pair with its assigned codeword.
type PrefixCode struct {
	Sym uint32 // The symbol being mapped
	Cnt uint64 // The number of times this symbol occurs
	Len uint32 // Bit-length of the codeword
	Val uint64 // Value of the codeword, MSB-first
}

// PrefixCodes is an ordered list of codes, indexed by symbol.
type PrefixCodes []PrefixCode

// Length reports the sum of the weighted code lengths.
func (pc PrefixCodes) Length() (nb int64) {
	for _, c := range pc {
		nb += int64(c.Cnt) * int64(c.Len)
	}
	return nb
}

// GenerateLengths assigns a code length to every code based on its count.
// The codes must be sorted by ascending symbol and have non-zero counts.
//
// Ties are broken by the minimum symbol index present in each subtree,
// which pins down a single tree shape for any count profile.
func GenerateLengths(codes PrefixCodes) error {
	if len(codes) == 0 {
		return nil
	}
	if len(codes) == 1 {
		codes[0].Len = 1
		return nil
	}

	// Tree nodes: the first len(codes) entries are leaves.
	nodes := make([]huffNode, len(codes), 2*len(codes)-1)
	for i, c := range codes {
		if c.Cnt == 0 {
			return ErrCorrupt
		}
		nodes[i] = huffNode{cnt: c.Cnt, minSym: c.Sym, left: -1, right: -1}
	}

	h := &nodeHeap{nodes: nodes}
	for i := range nodes {
		h.order = append(h.order, i)
	}
	heap.Init(h)
	for h.Len() > 1 {
		a := heap.Pop(h).(int)
		b := heap.Pop(h).(int)
		minSym := h.nodes[a].minSym
		if h.nodes[b].minSym < minSym {
			minSym = h.nodes[b].minSym
		}
		h.nodes = append(h.nodes, huffNode{
			cnt:    h.nodes[a].cnt + h.nodes[b].cnt,
			minSym: minSym,
			left:   a, right: b,
		})
		heap.Push(h, len(h.nodes)-1)
	}

	// Leaf depths become the code lengths.
	root := h.order[0]
	var walk func(idx, depth int)
	walk = func(idx, depth int) {
		n := h.nodes[idx]
		if n.left < 0 {
			codes[idx].Len = uint32(depth)
			return
		}
		walk(n.left, depth+1)
		walk(n.right, depth+1)
	}
	walk(root, 0)
	return nil
}

type huffNode struct {
	cnt         uint64
	minSym      uint32
	left, right int
}

type nodeHeap struct {
	nodes []huffNode
	order []int
}

func (h *nodeHeap) Len() int { return len(h.order) }
func (h *nodeHeap) Less(i, j int) bool {
	ni, nj := h.nodes[h.order[i]], h.nodes[h.order[j]]
	if ni.cnt != nj.cnt {
		return ni.cnt < nj.cnt
	}
	return ni.minSym < nj.minSym
}
func (h *nodeHeap) Swap(i, j int) { h.order[i], h.order[j] = h.order[j], h.order[i] }
func (h *nodeHeap) Push(x interface{}) {
	h.order = append(h.order, x.(int))
}
func (h *nodeHeap) Pop() interface{} {
	x := h.order[len(h.order)-1]
	h.order = h.order[:len(h.order)-1]
	return x
}

// GeneratePrefixes assigns canonical MSB-first codewords from the lengths.
// The codes must be sorted by ascending symbol with lengths already set.
func GeneratePrefixes(codes PrefixCodes) error {
	if len(codes) == 0 {
		return nil
	}

	order := make([]int, len(codes))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		ci, cj := codes[order[i]], codes[order[j]]
		if ci.Len != cj.Len {
			return ci.Len < cj.Len
		}
		return ci.Sym < cj.Sym
	})

	maxLen := codes[order[len(order)-1]].Len
	if codes[order[0]].Len == 0 || maxLen > 64 {
		return ErrCorrupt
	}

	blCount := make([]uint64, maxLen+1)
	for _, c := range codes {
		blCount[c.Len]++
	}
	nextCode := make([]uint64, maxLen+1)
	var code uint64
	for nb := uint32(1); nb <= maxLen; nb++ {
		code = (code + blCount[nb-1]) << 1
		nextCode[nb] = code
	}

	for _, idx := range order {
		c := &codes[idx]
		if c.Len < 64 && nextCode[c.Len]>>c.Len > 0 {
			return ErrCorrupt // Lengths over-subscribe the code space
		}
		c.Val = nextCode[c.Len]
		nextCode[c.Len]++
	}
	return nil
}

// Encoder maps symbols to codewords stored in writable (bit-reversed) form.
type Encoder struct {
	lens []uint32
	vals []uint64 // Low Len bits reversed, ready for LSB-first emission
}

// Init initializes the encoder from codes indexed by symbol.
func (pe *Encoder) Init(codes PrefixCodes) {
	pe.lens = make([]uint32, len(codes))
	pe.vals = make([]uint64, len(codes))
	for i, c := range codes {
		pe.lens[i] = c.Len
		pe.vals[i] = internal.ReverseUint64N(c.Val, uint(c.Len))
	}
}

// WriteSym writes the codeword for sym. The symbol must be one the encoder
// was initialized with.
func (pe *Encoder) WriteSym(bw *bitio.Writer, sym uint32) {
	bw.WriteBits(pe.vals[sym], uint(pe.lens[sym]))
}

// Decoder recovers symbols by descending a binary tree one bit at a time:
// a zero bit follows the left branch, a one bit the right.
type Decoder struct {
	nodes []treeNode
}

type treeNode struct {
	child [2]int32 // Index of the child node, or 0 if absent
	sym   int32    // Symbol at this leaf, or -1 for internal nodes
}

// Init builds the decode tree from codes indexed by symbol.
func (pd *Decoder) Init(codes PrefixCodes) error {
	pd.nodes = pd.nodes[:0]
	pd.nodes = append(pd.nodes, treeNode{sym: -1})
	for _, c := range codes {
		if c.Len == 0 || c.Len > 64 {
			return ErrCorrupt
		}
		idx := int32(0)
		for i := int(c.Len) - 1; i >= 0; i-- {
			if pd.nodes[idx].sym >= 0 {
				return ErrCorrupt // Some codeword is a prefix of this one
			}
			b := (c.Val >> uint(i)) & 1
			next := pd.nodes[idx].child[b]
			if next == 0 {
				pd.nodes = append(pd.nodes, treeNode{sym: -1})
				next = int32(len(pd.nodes) - 1)
				pd.nodes[idx].child[b] = next
			}
			idx = next
		}
		n := &pd.nodes[idx]
		if n.sym >= 0 || n.child[0] != 0 || n.child[1] != 0 {
			return ErrCorrupt
		}
		n.sym = int32(c.Sym)
	}
	return nil
}

// ReadSym reads bits until it lands on a leaf and returns that symbol.
func (pd *Decoder) ReadSym(br *bitio.Reader) (uint32, error) {
	idx := int32(0)
	for {
		n := pd.nodes[idx]
		if n.sym >= 0 {
			return uint32(n.sym), nil
		}
		b, err := br.ReadBits(1)
		if err != nil {
			return 0, err
		}
		idx = n.child[b]
		if idx == 0 {
			return 0, ErrCorrupt // Walked into an unassigned branch
		}
	}
}
