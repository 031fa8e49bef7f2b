package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	// KindInvalid represents an invalid kind.
	KindInvalid Kind = iota
	// KindNull represents a JSON null.
	KindNull
	// KindBool represents a boolean value.
	KindBool
	// KindInt represents an integer value.
	KindInt
	// KindFloat represents a float value.
	KindFloat
	// KindString represents a string value.
	KindString
	// KindArray represents an array value.
	KindArray
	// KindObject represents an object value.
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Value is a tagged union covering the JSON data model. Documents are
// arbitrary trees of Values with no fixed schema.
//
// NOTE: This is also used for persistence; keep it stable.
type Value struct {
	Kind Kind
	I64  int64
	F64  float64
	S    string
	B    bool
	A    []Value
	O    map[string]Value
}

// Null returns a null Value.
func Null() Value { return Value{Kind: KindNull} }

// Bool returns a boolean Value.
func Bool(v bool) Value { return Value{Kind: KindBool, B: v} }

// Int returns an int64 Value.
func Int(v int64) Value { return Value{Kind: KindInt, I64: v} }

// Float returns a float64 Value.
func Float(v float64) Value { return Value{Kind: KindFloat, F64: v} }

// String returns a string Value.
func String(v string) Value { return Value{Kind: KindString, S: v} }

// Array returns an array Value.
func Array(v ...Value) Value { return Value{Kind: KindArray, A: v} }

// Object returns an object Value.
func Object(v map[string]Value) Value { return Value{Kind: KindObject, O: v} }

// AsInt64 returns the int64 value if Kind is KindInt.
func (v Value) AsInt64() (int64, bool) {
	if v.Kind != KindInt {
		return 0, false
	}
	return v.I64, true
}

// AsFloat64 returns the value as a float64 for either numeric kind.
func (v Value) AsFloat64() (float64, bool) {
	switch v.Kind {
	case KindInt:
		return float64(v.I64), true
	case KindFloat:
		return v.F64, true
	default:
		return 0, false
	}
}

// AsString returns the string value if Kind is KindString.
func (v Value) AsString() (string, bool) {
	if v.Kind != KindString {
		return "", false
	}
	return v.S, true
}

// AsBool returns the boolean value if Kind is KindBool.
func (v Value) AsBool() (bool, bool) {
	if v.Kind != KindBool {
		return false, false
	}
	return v.B, true
}

// AsArray returns the array value if Kind is KindArray.
func (v Value) AsArray() ([]Value, bool) {
	if v.Kind != KindArray {
		return nil, false
	}
	return v.A, true
}

// IsNumber reports whether the value is an int or a float.
func (v Value) IsNumber() bool {
	return v.Kind == KindInt || v.Kind == KindFloat
}

// Field returns the named member of an object Value.
func (v Value) Field(name string) (Value, bool) {
	if v.Kind != KindObject {
		return Value{}, false
	}
	f, ok := v.O[name]
	return f, ok
}

// Equal compares two Values structurally. Numeric kinds compare by numeric
// value, so Int(2) equals Float(2).
func (v Value) Equal(other Value) bool {
	if v.IsNumber() && other.IsNumber() {
		if v.Kind == KindInt && other.Kind == KindInt {
			return v.I64 == other.I64
		}
		a, _ := v.AsFloat64()
		b, _ := other.AsFloat64()
		return a == b
	}
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindNull:
		return true
	case KindBool:
		return v.B == other.B
	case KindString:
		return v.S == other.S
	case KindArray:
		if len(v.A) != len(other.A) {
			return false
		}
		for i := range v.A {
			if !v.A[i].Equal(other.A[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.O) != len(other.O) {
			return false
		}
		for k, a := range v.O {
			b, ok := other.O[k]
			if !ok || !a.Equal(b) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Clone creates a deep copy of the Value.
func (v Value) Clone() Value {
	switch v.Kind {
	case KindArray:
		a := make([]Value, len(v.A))
		for i := range v.A {
			a[i] = v.A[i].Clone()
		}
		return Value{Kind: KindArray, A: a}
	case KindObject:
		o := make(map[string]Value, len(v.O))
		for k, m := range v.O {
			o[k] = m.Clone()
		}
		return Value{Kind: KindObject, O: o}
	default:
		return v
	}
}

// Render returns the compact JSON encoding of the value with object keys in
// sorted order. It is the canonical textual form used by keyword search and
// aggregation bucketing and must remain stable across versions.
func (v Value) Render() string {
	var buf bytes.Buffer
	v.render(&buf)
	return buf.String()
}

func (v Value) render(buf *bytes.Buffer) {
	switch v.Kind {
	case KindNull, KindInvalid:
		buf.WriteString("null")
	case KindBool:
		if v.B {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindInt:
		buf.WriteString(strconv.FormatInt(v.I64, 10))
	case KindFloat:
		buf.WriteString(strconv.FormatFloat(v.F64, 'g', -1, 64))
	case KindString:
		b, _ := json.Marshal(v.S)
		buf.Write(b)
	case KindArray:
		buf.WriteByte('[')
		for i := range v.A {
			if i > 0 {
				buf.WriteByte(',')
			}
			v.A[i].render(buf)
		}
		buf.WriteByte(']')
	case KindObject:
		keys := make([]string, 0, len(v.O))
		for k := range v.O {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, _ := json.Marshal(k)
			buf.Write(kb)
			buf.WriteByte(':')
			v.O[k].render(buf)
		}
		buf.WriteByte('}')
	}
}

// MarshalJSON implements json.Marshaler using the canonical rendering.
func (v Value) MarshalJSON() ([]byte, error) {
	return []byte(v.Render()), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Decode(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Decode parses a JSON document into a Value. Integers that fit int64 keep
// KindInt; all other numbers become KindFloat.
func Decode(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Value{}, fmt.Errorf("document: decode: %w", err)
	}
	return FromAny(raw)
}

// FromAny converts a decoded JSON value (as produced by encoding/json with
// UseNumber) into a Value.
func FromAny(raw any) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("document: number %q: %w", t.String(), err)
		}
		return Float(f), nil
	case float64:
		// Plain interface decoding without UseNumber.
		if t == float64(int64(t)) {
			return Int(int64(t)), nil
		}
		return Float(t), nil
	case []any:
		a := make([]Value, len(t))
		for i, e := range t {
			v, err := FromAny(e)
			if err != nil {
				return Value{}, err
			}
			a[i] = v
		}
		return Value{Kind: KindArray, A: a}, nil
	case map[string]any:
		o := make(map[string]Value, len(t))
		for k, e := range t {
			v, err := FromAny(e)
			if err != nil {
				return Value{}, err
			}
			o[k] = v
		}
		return Object(o), nil
	default:
		return Value{}, errors.New("document: unsupported value type " + fmt.Sprintf("%T", raw))
	}
}
