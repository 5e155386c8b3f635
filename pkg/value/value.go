// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

// Package value defines RuntimeValue, the typed JSON-superset values that
// flow through pattern evaluation: inputs, function outputs, and the
// transformed results patterns produce.
package value

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind discriminates the RuntimeValue variants.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInteger
	KindDecimal
	KindBoolean
	KindObject
	KindList
	KindOctets
)

// String renders the kind's lowercase type name, used in pattern mismatch
// rationales ("expected string, got integer").
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal"
	case KindBoolean:
		return "boolean"
	case KindObject:
		return "object"
	case KindList:
		return "list"
	case KindOctets:
		return "octets"
	default:
		return "unknown"
	}
}

// Object is an insertion-ordered mapping from field name to a shared Value.
type Object struct {
	fields *orderedmap.OrderedMap[string, *Value]
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{fields: orderedmap.New[string, *Value]()}
}

// Set inserts or replaces a field, preserving its original insertion
// position on replacement (as the backing ordered map does).
func (o *Object) Set(name string, v *Value) *Object {
	if o.fields == nil {
		o.fields = orderedmap.New[string, *Value]()
	}
	o.fields.Set(name, v)
	return o
}

// Get returns the field's value and whether it was present.
func (o *Object) Get(name string) (*Value, bool) {
	if o.fields == nil {
		return nil, false
	}
	return o.fields.Get(name)
}

// Len returns the number of fields.
func (o *Object) Len() int {
	if o.fields == nil {
		return 0
	}
	return o.fields.Len()
}

// Pair is one (name, value) entry of an Object, yielded in insertion order.
type Pair struct {
	Name  string
	Value *Value
}

// Pairs returns the Object's entries in insertion order.
func (o *Object) Pairs() []Pair {
	if o.fields == nil {
		return nil
	}
	out := make([]Pair, 0, o.fields.Len())
	for p := o.fields.Oldest(); p != nil; p = p.Next() {
		out = append(out, Pair{Name: p.Key, Value: p.Value})
	}
	return out
}

// HasStr reports whether field name holds a string value equal to expected.
func (o *Object) HasStr(name, expected string) bool {
	return o.HasAttr(name, func(v *Value) bool {
		s, ok := v.TryString()
		return ok && s == expected
	})
}

// HasAttr reports whether field name is present and predicate holds for it.
func (o *Object) HasAttr(name string, predicate func(*Value) bool) bool {
	v, ok := o.Get(name)
	if !ok {
		return false
	}
	return predicate(v)
}

// Equal reports structural equality: same field count, same keys in the
// same insertion order, and equal values.
func (o *Object) Equal(other *Object) bool {
	if o.Len() != other.Len() {
		return false
	}
	a, b := o.Pairs(), other.Pairs()
	for i := range a {
		if a[i].Name != b[i].Name || !a[i].Value.Equal(b[i].Value) {
			return false
		}
	}
	return true
}

// Value is the tagged-sum runtime value: Null | String | Integer | Decimal |
// Boolean | Object | List | Octets.
type Value struct {
	kind    Kind
	str     string
	integer int64
	decimal float64
	boolean bool
	object  *Object
	list    []*Value
	octets  []byte
}

// Null is the shared null value.
func Null() *Value { return &Value{kind: KindNull} }

// NewString constructs a String value.
func NewString(s string) *Value { return &Value{kind: KindString, str: s} }

// NewInteger constructs an Integer value.
func NewInteger(i int64) *Value { return &Value{kind: KindInteger, integer: i} }

// NewDecimal constructs a Decimal value.
func NewDecimal(f float64) *Value { return &Value{kind: KindDecimal, decimal: f} }

// NewBoolean constructs a Boolean value.
func NewBoolean(b bool) *Value { return &Value{kind: KindBoolean, boolean: b} }

// NewOctets constructs an Octets value from a raw byte sequence.
func NewOctets(b []byte) *Value {
	cp := make([]byte, len(b))
	copy(cp, b)
	return &Value{kind: KindOctets, octets: cp}
}

// NewList constructs a List value from a sequence of shared Values.
func NewList(items []*Value) *Value {
	cp := make([]*Value, len(items))
	copy(cp, items)
	return &Value{kind: KindList, list: cp}
}

// NewObjectValue wraps an Object as a Value.
func NewObjectValue(o *Object) *Value {
	if o == nil {
		o = NewObject()
	}
	return &Value{kind: KindObject, object: o}
}

// Kind returns the value's variant tag.
func (v *Value) Kind() Kind { return v.kind }

// TypeName is the lowercase type name used in rationale text.
func (v *Value) TypeName() string { return v.kind.String() }

// TryString returns the String payload, if any.
func (v *Value) TryString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// TryInteger returns the Integer payload, if any.
func (v *Value) TryInteger() (int64, bool) {
	if v.kind != KindInteger {
		return 0, false
	}
	return v.integer, true
}

// TryDecimal returns the Decimal payload, if any.
func (v *Value) TryDecimal() (float64, bool) {
	if v.kind != KindDecimal {
		return 0, false
	}
	return v.decimal, true
}

// TryBoolean returns the Boolean payload, if any.
func (v *Value) TryBoolean() (bool, bool) {
	if v.kind != KindBoolean {
		return false, false
	}
	return v.boolean, true
}

// TryList returns the List payload, if any.
func (v *Value) TryList() ([]*Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.list, true
}

// TryObject returns the Object payload, if any.
func (v *Value) TryObject() (*Object, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.object, true
}

// TryOctets returns the Octets payload, if any.
func (v *Value) TryOctets() ([]byte, bool) {
	if v.kind != KindOctets {
		return nil, false
	}
	return v.octets, true
}

// Equal is structural equality. Octets and String compare equal when the
// string's UTF-8 bytes equal the octets, per the cross-type equality rule;
// all other cross-kind comparisons are unequal.
func (v *Value) Equal(other *Value) bool {
	if v == nil || other == nil {
		return v == other
	}
	switch {
	case v.kind == KindBoolean && other.kind == KindBoolean:
		return v.boolean == other.boolean
	case v.kind == KindInteger && other.kind == KindInteger:
		return v.integer == other.integer
	case v.kind == KindDecimal && other.kind == KindDecimal:
		return v.decimal == other.decimal
	case v.kind == KindString && other.kind == KindString:
		return v.str == other.str
	case v.kind == KindOctets && other.kind == KindOctets:
		return string(v.octets) == string(other.octets)
	case v.kind == KindObject && other.kind == KindObject:
		return v.object.Equal(other.object)
	case v.kind == KindList && other.kind == KindList:
		return equalLists(v.list, other.list)
	case v.kind == KindNull && other.kind == KindNull:
		return true
	case v.kind == KindOctets && other.kind == KindString:
		return string(v.octets) == other.str
	case v.kind == KindString && other.kind == KindOctets:
		return v.str == string(other.octets)
	default:
		return false
	}
}

func equalLists(a, b []*Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Ordering is the result of a partial comparison: values of unrelated kinds
// have no ordering.
type Ordering int

const (
	OrderLess Ordering = iota - 1
	OrderEqual
	OrderGreater
	OrderNone // no ordering defined between these kinds
)

// Compare returns the partial order between v and other. Integer and
// Decimal cross-compare numerically; String and List compare
// lexicographically/elementwise; every other cross-kind pair is OrderNone.
func (v *Value) Compare(other *Value) Ordering {
	switch {
	case v.kind == KindBoolean && other.kind == KindBoolean:
		return compareBool(v.boolean, other.boolean)
	case v.kind == KindInteger && other.kind == KindInteger:
		return compareOrdered(v.integer, other.integer)
	case v.kind == KindDecimal && other.kind == KindDecimal:
		return compareOrdered(v.decimal, other.decimal)
	case v.kind == KindDecimal && other.kind == KindInteger:
		return compareOrdered(v.decimal, float64(other.integer))
	case v.kind == KindInteger && other.kind == KindDecimal:
		return compareOrdered(float64(v.integer), other.decimal)
	case v.kind == KindString && other.kind == KindString:
		return compareOrdered(v.str, other.str)
	case v.kind == KindOctets && other.kind == KindOctets:
		return compareOrdered(string(v.octets), string(other.octets))
	case v.kind == KindList && other.kind == KindList:
		return compareLists(v.list, other.list)
	case v.kind == KindNull && other.kind == KindNull:
		return OrderEqual
	default:
		return OrderNone
	}
}

func compareBool(a, b bool) Ordering {
	switch {
	case a == b:
		return OrderEqual
	case !a && b:
		return OrderLess
	default:
		return OrderGreater
	}
}

type ordered interface {
	~int64 | ~float64 | ~string
}

func compareOrdered[T ordered](a, b T) Ordering {
	switch {
	case a < b:
		return OrderLess
	case a > b:
		return OrderGreater
	default:
		return OrderEqual
	}
}

func compareLists(a, b []*Value) Ordering {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := a[i].Compare(b[i]); c != OrderEqual {
			return c
		}
	}
	return compareOrdered(len(a), len(b))
}

// AsJSON produces the canonical JSON projection: Octets render as a
// space-separated hex-pair string (lossy; use MarshalJSON for a
// round-trippable tagged encoding).
func (v *Value) AsJSON() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindString:
		return v.str
	case KindInteger:
		return v.integer
	case KindDecimal:
		return v.decimal
	case KindBoolean:
		return v.boolean
	case KindObject:
		m := make(map[string]any, v.object.Len())
		order := make([]string, 0, v.object.Len())
		for _, p := range v.object.Pairs() {
			m[p.Name] = p.Value.AsJSON()
			order = append(order, p.Name)
		}
		return orderedJSONObject{keys: order, values: m}
	case KindList:
		out := make([]any, len(v.list))
		for i, e := range v.list {
			out[i] = e.AsJSON()
		}
		return out
	case KindOctets:
		var b strings.Builder
		for i, octet := range v.octets {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%02x", octet)
		}
		return b.String()
	default:
		return nil
	}
}

// orderedJSONObject implements json.Marshaler to preserve field insertion
// order in the canonical JSON projection (encoding/json sorts plain maps).
type orderedJSONObject struct {
	keys   []string
	values map[string]any
}

func (o orderedJSONObject) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, fmt.Errorf("marshal object key %q: %w", k, err)
		}
		val, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, fmt.Errorf("marshal object field %q: %w", k, err)
		}
		b.Write(key)
		b.WriteByte(':')
		b.Write(val)
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

// wireValue is the tagged encoding used by MarshalJSON/UnmarshalJSON so that
// Octets round-trips losslessly (base64) rather than through the lossy hex
// projection AsJSON uses for display.
type wireValue struct {
	Kind    string          `json:"kind"`
	Str     *string         `json:"str,omitempty"`
	Integer *int64          `json:"integer,omitempty"`
	Decimal *float64        `json:"decimal,omitempty"`
	Boolean *bool           `json:"boolean,omitempty"`
	Object  []wireField     `json:"object,omitempty"`
	List    []*Value        `json:"list,omitempty"`
	Octets  *string     `json:"octets,omitempty"` // base64
}

type wireField struct {
	Name  string `json:"name"`
	Value *Value `json:"value"`
}

// MarshalJSON emits the tagged round-trip encoding.
func (v *Value) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	w := wireValue{Kind: v.kind.String()}
	switch v.kind {
	case KindString:
		w.Str = &v.str
	case KindInteger:
		w.Integer = &v.integer
	case KindDecimal:
		w.Decimal = &v.decimal
	case KindBoolean:
		w.Boolean = &v.boolean
	case KindObject:
		for _, p := range v.object.Pairs() {
			w.Object = append(w.Object, wireField{Name: p.Name, Value: p.Value})
		}
	case KindList:
		w.List = v.list
	case KindOctets:
		enc := base64.StdEncoding.EncodeToString(v.octets)
		w.Octets = &enc
	}
	b, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("marshal value: %w", err)
	}
	return b, nil
}

// UnmarshalJSON parses the tagged round-trip encoding produced by MarshalJSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	var w wireValue
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("unmarshal value: %w", err)
	}
	switch w.Kind {
	case "null", "":
		*v = Value{kind: KindNull}
	case "string":
		*v = Value{kind: KindString, str: deref(w.Str)}
	case "integer":
		*v = Value{kind: KindInteger, integer: derefInt(w.Integer)}
	case "decimal":
		*v = Value{kind: KindDecimal, decimal: derefF(w.Decimal)}
	case "boolean":
		*v = Value{kind: KindBoolean, boolean: derefB(w.Boolean)}
	case "object":
		obj := NewObject()
		for _, f := range w.Object {
			obj.Set(f.Name, f.Value)
		}
		*v = Value{kind: KindObject, object: obj}
	case "list":
		*v = Value{kind: KindList, list: w.List}
	case "octets":
		raw, err := base64.StdEncoding.DecodeString(deref(w.Octets))
		if err != nil {
			return fmt.Errorf("decode octets: %w", err)
		}
		*v = Value{kind: KindOctets, octets: raw}
	default:
		return fmt.Errorf("unknown value kind %q", w.Kind)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int64) int64 {
	if i == nil {
		return 0
	}
	return *i
}

func derefF(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func derefB(b *bool) bool {
	if b == nil {
		return false
	}
	return *b
}

// ParseJSON decodes plain JSON text into a Value. Numbers are classified as
// Integer or Decimal by lexical form (an exponent or decimal point makes a
// Decimal), not by value. Objects are decoded through map[string]any, so
// their fields come out in sorted key order; the source text's field
// order is not kept.
func ParseJSON(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return FromJSON(raw), nil
}

// FromJSON converts a decoded JSON value (as produced by a json.Decoder
// configured with UseNumber) into a Value. This is the direction used when
// an evaluation input arrives as plain JSON rather than the tagged wire
// form. Object key order follows the order produced by a json.Decoder
// reading into an *orderedmap.OrderedMap; a plain map[string]any input has
// no preserved order and falls back to sorted keys for determinism.
func FromJSON(v any) *Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case string:
		return NewString(t)
	case bool:
		return NewBoolean(t)
	case json.Number:
		s := t.String()
		if !strings.ContainsAny(s, ".eE") {
			if i, err := strconv.ParseInt(s, 10, 64); err == nil {
				return NewInteger(i)
			}
		}
		f, err := t.Float64()
		if err != nil {
			return Null()
		}
		return NewDecimal(f)
	case int64:
		return NewInteger(t)
	case int:
		return NewInteger(int64(t))
	case float64:
		if t == float64(int64(t)) {
			return NewDecimal(t)
		}
		return NewDecimal(t)
	case []any:
		out := make([]*Value, len(t))
		for i, e := range t {
			out[i] = FromJSON(e)
		}
		return NewList(out)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := NewObject()
		for _, k := range keys {
			obj.Set(k, FromJSON(t[k]))
		}
		return NewObjectValue(obj)
	case *orderedmap.OrderedMap[string, any]:
		obj := NewObject()
		for p := t.Oldest(); p != nil; p = p.Next() {
			obj.Set(p.Key, FromJSON(p.Value))
		}
		return NewObjectValue(obj)
	default:
		return Null()
	}
}
