package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

type ValueKind int

const (
	KindString ValueKind = iota
	KindInt
	KindFloat
)

// Value is a scalar property value. Statements only carry strings and numbers.
type Value struct {
	Kind  ValueKind
	Str   string
	Int   int64
	Float float64
}

func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

func IntValue(i int64) Value { return Value{Kind: KindInt, Int: i} }

func FloatValue(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// Literal renders the value as it appears inside a property block.
// Floats always carry a decimal point so they parse back as floats.
func (v Value) Literal() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		if math.IsNaN(v.Float) || math.IsInf(v.Float, 0) {
			return Quote(strconv.FormatFloat(v.Float, 'f', -1, 64))
		}
		s := strconv.FormatFloat(v.Float, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	default:
		return Quote(v.Str)
	}
}

// String returns the unquoted text of the value.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'f', -1, 64)
	default:
		return v.Str
	}
}

// Any unwraps the value for drivers and encoders.
func (v Value) Any() any {
	switch v.Kind {
	case KindInt:
		return v.Int
	case KindFloat:
		return v.Float
	default:
		return v.Str
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Any())
}

// Quote wraps s in double quotes, escaping backslashes, quotes and line breaks
// so a statement always stays on one line.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

type Property struct {
	Key   string
	Value Value
}

// Properties keeps insertion order; it only affects how statements look.
type Properties []Property

func (p Properties) Get(key string) (Value, bool) {
	for _, prop := range p {
		if prop.Key == key {
			return prop.Value, true
		}
	}
	return Value{}, false
}

// Text returns the string form of key, or "" when absent.
func (p Properties) Text(key string) string {
	v, ok := p.Get(key)
	if !ok {
		return ""
	}
	return v.String()
}

// Set replaces an existing key in place or appends a new one.
func (p *Properties) Set(key string, v Value) {
	for i := range *p {
		if (*p)[i].Key == key {
			(*p)[i].Value = v
			return
		}
	}
	*p = append(*p, Property{Key: key, Value: v})
}

// Without returns a copy of p lacking key, or nil when nothing remains.
func (p Properties) Without(key string) Properties {
	var out Properties
	for _, prop := range p {
		if prop.Key != key {
			out = append(out, prop)
		}
	}
	return out
}

// Equal compares keys and values ignoring order.
func (p Properties) Equal(other Properties) bool {
	if len(p) != len(other) {
		return false
	}
	for _, prop := range p {
		v, ok := other.Get(prop.Key)
		if !ok || v != prop.Value {
			return false
		}
	}
	return true
}

// Map flattens the properties for query parameters.
func (p Properties) Map() map[string]any {
	m := make(map[string]any, len(p))
	for _, prop := range p {
		m[prop.Key] = prop.Value.Any()
	}
	return m
}

func (p Properties) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Map())
}

// block renders "k: v, k2: v2" without braces.
func (p Properties) block() string {
	parts := make([]string, len(p))
	for i, prop := range p {
		parts[i] = prop.Key + ": " + prop.Value.Literal()
	}
	return strings.Join(parts, ", ")
}
