package resume

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Value is a JSON-derived value. Mappings remember the order in which their keys
// appeared in the source document.
type Value struct {
	kind Kind
	b    bool
	// text holds string content or the literal form of a number.
	text   string
	items  []Value
	keys   []string
	fields map[string]Value
}

// Field is a single key/value pair of a mapping.
type Field struct {
	Key   string
	Value Value
}

func Null() Value { return Value{} }

func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number builds a number from its literal text, e.g. "3" or "2.50".
func Number(literal string) Value { return Value{kind: KindNumber, text: literal} }

func String(s string) Value { return Value{kind: KindString, text: s} }

func Sequence(items ...Value) Value {
	return Value{kind: KindSequence, items: append([]Value{}, items...)}
}

// Mapping builds a mapping keeping the order of the supplied fields. A repeated
// key keeps its first position and takes the last value.
func Mapping(fields ...Field) Value {
	m := Value{kind: KindMapping, fields: make(map[string]Value, len(fields))}
	for _, f := range fields {
		m.set(f.Key, f.Value)
	}
	return m
}

func (v *Value) set(key string, val Value) {
	if _, ok := v.fields[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.fields[key] = val
}

func (v Value) Kind() Kind { return v.kind }

// Str returns the string content when v is a string.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.text, true
}

// Items returns the elements of a sequence.
func (v Value) Items() []Value {
	if v.kind != KindSequence {
		return nil
	}
	return v.items
}

// Keys returns mapping keys in document order.
func (v Value) Keys() []string {
	if v.kind != KindMapping {
		return nil
	}
	return v.keys
}

// Get looks up a key in a mapping. It reports false for non-mappings.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindMapping {
		return Value{}, false
	}
	val, ok := v.fields[key]
	return val, ok
}

func (v Value) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Len returns the number of elements of a sequence or fields of a mapping.
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.items)
	case KindMapping:
		return len(v.keys)
	default:
		return 0
	}
}

// Truthy reports whether v counts as present when used as a fallback source:
// null, false, zero, "" and empty containers are not.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		f, err := strconv.ParseFloat(v.text, 64)
		return err != nil || f != 0
	case KindString:
		return v.text != ""
	case KindSequence, KindMapping:
		return v.Len() > 0
	default:
		return false
	}
}

// String returns the textual form of scalars and the normalized text of containers.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber, KindString:
		return v.text
	default:
		return Normalize(v)
	}
}

// Parse decodes a single JSON document keeping mapping key order.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return Value{}, err
	}

	if tok, err := dec.Token(); err != io.EOF {
		if err != nil {
			return Value{}, err
		}
		return Value{}, fmt.Errorf("unexpected token %v after top-level value", tok)
	}

	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeMapping(dec)
		case '[':
			return decodeSequence(dec)
		}
		return Value{}, fmt.Errorf("unexpected delimiter %q", t)
	case string:
		return String(t), nil
	case json.Number:
		return Number(t.String()), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	default:
		return Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeMapping(dec *json.Decoder) (Value, error) {
	m := Mapping()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("unexpected object key %v", tok)
		}

		val, err := decodeValue(dec)
		if err != nil {
			return Value{}, fmt.Errorf("key %q: %w", key, err)
		}
		m.set(key, val)
	}

	// closing '}'
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return m, nil
}

func decodeSequence(dec *json.Decoder) (Value, error) {
	seq := Sequence()
	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return Value{}, fmt.Errorf("index %d: %w", len(seq.items), err)
		}
		seq.items = append(seq.items, val)
	}

	// closing ']'
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return seq, nil
}
