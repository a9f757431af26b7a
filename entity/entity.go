// Copyright (C) 2025 Camille Roussille. All Rights Reserved.

// Package entity defines an editable, order-preserving representation of JSON
// values.
//
// An Entity is a tagged value with one of six kinds: Object, Array, String,
// Integer, Float, or Bool. Objects and arrays hold ordered children; the
// order is meaningful and is preserved by every edit. Object keys are not
// required to be unique in memory, so a document being edited may pass
// through states with colliding keys; serialization is the single place
// where uniqueness is enforced (see Marshal).
//
// Entities are treated as immutable: the editing functions in this package
// (Retype, SetValue, Append, RemoveAt, RenameAt, ReplaceAt, Update) return a
// new value and leave their input alone. Unchanged subtrees may be shared
// between the old and new values, which is safe precisely because nothing
// mutates them in place.
package entity

import (
	"strconv"
	"strings"
)

// An Entity is a single node of an editable JSON document.
// The concrete type is Object, Array, String, Integer, Float, or Bool.
type Entity interface {
	// Kind reports the kind tag of the entity.
	Kind() Kind

	// JSON renders the entity as compact JSON text. The rendering is purely
	// syntactic: an object with duplicate keys renders all its members.
	// Use Marshal for the validated canonical form.
	JSON() string
}

// An Object is an ordered collection of key-value members.
// Keys may repeat; DuplicateKeys reports collisions.
type Object []*Member

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Entity
}

func (Object) Kind() Kind { return ObjectKind }

func (o Object) Len() int { return len(o) }

// Find returns the first member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	if i := o.Index(key); i >= 0 {
		return o[i]
	}
	return nil
}

// Index returns the position of the first member of o with the given key,
// or -1.
func (o Object) Index(key string) int {
	for i, m := range o {
		if m.Key == key {
			return i
		}
	}
	return -1
}

// Keys returns the keys of o in order, including any repeats.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}
	return keys
}

func (o Object) JSON() string {
	if len(o) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	sb.WriteString(o[0].JSON())
	for _, m := range o[1:] {
		sb.WriteByte(',')
		sb.WriteString(m.JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

func (o Object) String() string { return "Object(len=" + strconv.Itoa(len(o)) + ")" }

func (m Member) JSON() string {
	k := String(m.Key).JSON()
	v := m.Value.JSON()
	buf := make([]byte, len(k)+len(v)+1)
	n := copy(buf, k)
	buf[n] = ':'
	copy(buf[n+1:], v)
	return string(buf)
}

func (m Member) String() string { return "Member(key=" + strconv.Quote(m.Key) + ")" }

// An Array is an ordered sequence of entities.
type Array []Entity

func (Array) Kind() Kind { return ArrayKind }

func (a Array) Len() int { return len(a) }

func (a Array) JSON() string {
	if len(a) == 0 {
		return "[]"
	}
	var sb strings.Builder
	sb.WriteByte('[')
	sb.WriteString(a[0].JSON())
	for _, v := range a[1:] {
		sb.WriteByte(',')
		sb.WriteString(v.JSON())
	}
	sb.WriteByte(']')
	return sb.String()
}

func (a Array) String() string { return "Array(len=" + strconv.Itoa(len(a)) + ")" }

// A String is a text value.
type String string

func (String) Kind() Kind { return StringKind }

func (s String) JSON() string { return quote(string(s)) }

// An Integer is a whole-number value.
type Integer int64

func (Integer) Kind() Kind { return IntegerKind }

func (z Integer) JSON() string { return strconv.FormatInt(int64(z), 10) }

func (z Integer) Int64() int64 { return int64(z) }

// A Float is a fractional numeric value. It is kept distinct from Integer so
// that re-serialization does not coerce 3 to 3.0 or vice versa.
type Float float64

func (Float) Kind() Kind { return FloatKind }

func (n Float) JSON() string { return strconv.FormatFloat(float64(n), 'g', -1, 64) }

func (n Float) Float64() float64 { return float64(n) }

// A Bool is a Boolean value.
type Bool bool

func (Bool) Kind() Kind { return BoolKind }

func (b Bool) JSON() string {
	if b {
		return "true"
	}
	return "false"
}

func (b Bool) Value() bool { return bool(b) }
