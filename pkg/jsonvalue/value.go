// Package jsonvalue provides a tagged-variant model of decoded JSON values
// and the classification of those values into semantic type labels.
package jsonvalue

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind uint8

// Value kinds. The zero Kind is Invalid and is never produced by Decode.
const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindNull:    "null",
	KindBool:    "bool",
	KindInt:     "int",
	KindFloat:   "float",
	KindString:  "string",
	KindArray:   "array",
	KindObject:  "object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Value is a decoded JSON value.
// Numbers keep their literal text so integral and non-integral numbers
// stay distinguishable regardless of magnitude.
type Value struct {
	kind Kind
	b    bool
	s    string // string contents, or the number literal
	arr  []Value
	obj  map[string]Value
}

// Null returns the JSON null value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a JSON boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// String returns a JSON string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Number returns a JSON number from its literal text.
// The literal is an int unless it has a fraction or an exponent.
func Number(literal string) Value {
	if strings.ContainsAny(literal, ".eE") {
		return Value{kind: KindFloat, s: literal}
	}
	return Value{kind: KindInt, s: literal}
}

// Array returns a JSON array holding items.
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, arr: items}
}

// Object returns a JSON object holding members.
func Object(members map[string]Value) Value {
	if members == nil {
		members = map[string]Value{}
	}
	return Value{kind: KindObject, obj: members}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsObject reports whether v is a key-value mapping.
func (v Value) IsObject() bool { return v.kind == KindObject }

// IsArray reports whether v is an ordered sequence.
func (v Value) IsArray() bool { return v.kind == KindArray }

// IsString reports whether v is text.
func (v Value) IsString() bool { return v.kind == KindString }

// IsNull reports whether v is JSON null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// BoolValue returns the boolean held by v, false for other kinds.
func (v Value) BoolValue() bool { return v.b }

// Literal returns the number literal for int and float values.
func (v Value) Literal() string {
	if v.kind == KindInt || v.kind == KindFloat {
		return v.s
	}
	return ""
}

// Str returns the text of a string value, "" for other kinds.
func (v Value) Str() string {
	if v.kind == KindString {
		return v.s
	}
	return ""
}

// Items returns the elements of an array value, nil for other kinds.
func (v Value) Items() []Value { return v.arr }

// Members returns the members of an object value, nil for other kinds.
// The returned map must not be modified.
func (v Value) Members() map[string]Value { return v.obj }

// Get looks up key in an object value.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	m, ok := v.obj[key]
	return m, ok
}

// Keys returns the member names of an object value in sorted order.
func (v Value) Keys() []string {
	keys := make([]string, 0, len(v.obj))
	for k := range v.obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of elements or members, 0 for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	}
	return 0
}

// String returns the compact JSON text of v with object keys sorted.
func (v Value) String() string {
	var buf bytes.Buffer
	v.writeJSON(&buf)
	return buf.String()
}

func (v Value) writeJSON(buf *bytes.Buffer) {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindInt, KindFloat:
		buf.WriteString(v.s)
	case KindString:
		writeQuoted(buf, v.s)
	case KindArray:
		buf.WriteByte('[')
		for i, item := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			item.writeJSON(buf)
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, k := range v.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeQuoted(buf, k)
			buf.WriteByte(':')
			v.obj[k].writeJSON(buf)
		}
		buf.WriteByte('}')
	default:
		buf.WriteString(v.kind.String())
	}
}

func writeQuoted(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	// Encode appends a newline.
	buf.Truncate(buf.Len() - 1)
}

// Interface converts v to the native Go tree used by encoding/json and jq
// engines: nil, bool, int, *big.Int, float64, string, []any, map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		if n, err := strconv.Atoi(v.s); err == nil {
			return n
		}
		if n, ok := new(big.Int).SetString(v.s, 10); ok {
			return n
		}
		f, _ := strconv.ParseFloat(v.s, 64)
		return f
	case KindFloat:
		f, _ := strconv.ParseFloat(v.s, 64)
		return f
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.arr))
		for i, item := range v.arr {
			out[i] = item.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.obj))
		for k, m := range v.obj {
			out[k] = m.Interface()
		}
		return out
	}
	return nil
}
