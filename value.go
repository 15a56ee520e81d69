// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package jsonpack

import "math"

// Kind classifies a Value.
//
// Numbers carry their encode-time class: a signed 64-bit integer, an
// unsigned 64-bit integer, or a 64-bit float. The class determines the
// wire form, except that a Uint within the signed range is written (and
// decoded) as an Int; Equal compares Int and Uint values numerically.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindString
	KindArray
	KindObject
)

// Value is a JSON value. Object members preserve insertion order, and that
// order is part of the wire contract: two objects with the same members in
// different orders produce different packages.
//
// The zero Value is null.
type Value struct {
	kind Kind
	num  uint64 // Int, Uint, or Float bit pattern
	str  string
	arr  []Value
	mem  []Member
}

// Member is a single key-value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(v bool) Value {
	if v {
		return Value{kind: KindBool, num: 1}
	}
	return Value{kind: KindBool}
}

// Int returns a signed integer value.
func Int(v int64) Value { return Value{kind: KindInt, num: uint64(v)} }

// Uint returns an unsigned integer value.
func Uint(v uint64) Value { return Value{kind: KindUint, num: v} }

// Float returns a float value. Non-finite floats are representable in
// memory but are rejected by Compress.
func Float(v float64) Value { return Value{kind: KindFloat, num: math.Float64bits(v)} }

// String returns a string value.
func String(v string) Value { return Value{kind: KindString, str: v} }

// Array returns an array of the given elements.
func Array(vs ...Value) Value { return Value{kind: KindArray, arr: vs} }

// Object returns an object with the given members in the given order.
func Object(ms ...Member) Value { return Value{kind: KindObject, mem: ms} }

// Kind reports the kind of the value.
func (v Value) Kind() Kind { return v.kind }

// Bool reports the boolean payload. It is false for any other kind.
func (v Value) Bool() bool { return v.kind == KindBool && v.num != 0 }

// Int reports the signed integer payload.
func (v Value) Int() int64 { return int64(v.num) }

// Uint reports the unsigned integer payload.
func (v Value) Uint() uint64 { return v.num }

// Float reports the float payload.
func (v Value) Float() float64 { return math.Float64frombits(v.num) }

// Str reports the string payload.
func (v Value) Str() string { return v.str }

// Len reports the number of elements or members of a composite value.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.mem)
	}
	return 0
}

// Elems reports the elements of an array. The caller must not mutate them.
func (v Value) Elems() []Value { return v.arr }

// Members reports the members of an object in insertion order.
// The caller must not mutate them.
func (v Value) Members() []Member { return v.mem }

// Equal reports whether two values are equal as JSON values. Array elements
// and object members must match in order. Int and Uint values compare
// numerically, so a Uint within the signed range equals the same Int.
// Floats compare by bit pattern and never equal integers.
func (v Value) Equal(u Value) bool {
	switch {
	case v.kind == u.kind:
		// Handled below.
	case v.kind == KindInt && u.kind == KindUint:
		return v.num < 1<<63 && v.num == u.num
	case v.kind == KindUint && u.kind == KindInt:
		return u.num < 1<<63 && v.num == u.num
	default:
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindBool, KindInt, KindUint, KindFloat:
		return v.num == u.num
	case KindString:
		return v.str == u.str
	case KindArray:
		if len(v.arr) != len(u.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(u.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.mem) != len(u.mem) {
			return false
		}
		for i := range v.mem {
			if v.mem[i].Key != u.mem[i].Key || !v.mem[i].Value.Equal(u.mem[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}
