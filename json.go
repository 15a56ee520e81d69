// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package jsonpack

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dsnet/jsonpack/internal"

	jsoniter "github.com/json-iterator/go"
)

// ErrSyntax is reported when JSON text handed to Parse is malformed or
// carries data after the root value.
var ErrSyntax error = internal.Error("invalid JSON text")

var jsonCfg = jsoniter.ConfigDefault

// Parse converts JSON text to a Value, preserving object member order.
//
// Numbers are classified the way the codec encodes them: a signed 64-bit
// integer when the token is integral and fits, else an unsigned 64-bit
// integer, else a finite 64-bit float.
func Parse(data []byte) (Value, error) {
	it := jsoniter.ParseBytes(jsonCfg, data)
	v, err := parseValue(it)
	if err != nil {
		return Value{}, err
	}
	// Only whitespace may follow the root value: anything else shows up
	// either as a further token or as a garbage byte with no read error.
	if it.WhatIsNext() != jsoniter.InvalidValue || it.Error != io.EOF {
		return Value{}, ErrSyntax
	}
	return v, nil
}

// ParseString is like Parse but operates on a string.
func ParseString(s string) (Value, error) {
	return Parse([]byte(s))
}

func parseValue(it *jsoniter.Iterator) (Value, error) {
	switch it.WhatIsNext() {
	case jsoniter.NilValue:
		it.ReadNil()
		return Null(), errOf(it)
	case jsoniter.BoolValue:
		v := Bool(it.ReadBool())
		return v, errOf(it)
	case jsoniter.NumberValue:
		tok := it.ReadNumber()
		if it.Error != nil && it.Error != io.EOF {
			return Value{}, ErrSyntax
		}
		return parseNumber(string(tok))
	case jsoniter.StringValue:
		v := String(it.ReadString())
		return v, errOf(it)
	case jsoniter.ArrayValue:
		var elems []Value
		it.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			e, err := parseValue(it)
			if err != nil {
				it.ReportError("parse", err.Error())
				return false
			}
			elems = append(elems, e)
			return true
		})
		if err := errOf(it); err != nil {
			return Value{}, err
		}
		return Array(elems...), nil
	case jsoniter.ObjectValue:
		var mems []Member
		it.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
			e, err := parseValue(it)
			if err != nil {
				it.ReportError("parse", err.Error())
				return false
			}
			mems = append(mems, Member{Key: key, Value: e})
			return true
		})
		if err := errOf(it); err != nil {
			return Value{}, err
		}
		return Object(mems...), nil
	default:
		return Value{}, ErrSyntax
	}
}

// errOf converts any iterator failure to ErrSyntax. Inside a value even
// io.EOF is a failure: every composite or quoted form ends with a closing
// token, so hitting the end of input mid-read means a truncated document.
func errOf(it *jsoniter.Iterator) error {
	if it.Error != nil {
		return ErrSyntax
	}
	return nil
}

func parseNumber(tok string) (Value, error) {
	if !strings.ContainsAny(tok, ".eE") {
		if i, err := strconv.ParseInt(tok, 10, 64); err == nil {
			return Int(i), nil
		}
		if u, err := strconv.ParseUint(tok, 10, 64); err == nil {
			return Uint(u), nil
		}
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil && !math.IsInf(f, 0) {
		return Value{}, ErrSyntax
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return Value{}, ErrIllegalFloat
	}
	return Float(f), nil
}

// MarshalJSON renders the value as JSON text, preserving member order and
// the integer classes.
func (v Value) MarshalJSON() ([]byte, error) {
	st := jsoniter.NewStream(jsonCfg, nil, 256)
	writeJSON(st, v)
	if st.Error != nil {
		return nil, st.Error
	}
	buf := make([]byte, len(st.Buffer()))
	copy(buf, st.Buffer())
	return buf, nil
}

// JSONString renders the value as JSON text.
func (v Value) JSONString() (string, error) {
	buf, err := v.MarshalJSON()
	return string(buf), err
}

// UnmarshalJSON replaces the value with the parsed text.
func (v *Value) UnmarshalJSON(data []byte) error {
	u, err := Parse(data)
	if err != nil {
		return err
	}
	*v = u
	return nil
}

func writeJSON(st *jsoniter.Stream, v Value) {
	switch v.Kind() {
	case KindNull:
		st.WriteNil()
	case KindBool:
		st.WriteBool(v.Bool())
	case KindInt:
		st.WriteInt64(v.Int())
	case KindUint:
		st.WriteUint64(v.Uint())
	case KindFloat:
		st.WriteFloat64(v.Float())
	case KindString:
		st.WriteString(v.Str())
	case KindArray:
		st.WriteArrayStart()
		for i, e := range v.Elems() {
			if i > 0 {
				st.WriteMore()
			}
			writeJSON(st, e)
		}
		st.WriteArrayEnd()
	case KindObject:
		st.WriteObjectStart()
		for i, m := range v.Members() {
			if i > 0 {
				st.WriteMore()
			}
			st.WriteObjectField(m.Key)
			writeJSON(st, m.Value)
		}
		st.WriteObjectEnd()
	}
}
