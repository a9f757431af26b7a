// Copyright (C) 2025 Camille Roussille. All Rights Reserved.

package entity

import (
	"fmt"
	"slices"
)

// New constructs an empty entity of the given kind: an object or array with
// no children, or a scalar holding its zero value.
func New(kind Kind) Entity {
	switch kind {
	case ObjectKind:
		return Object(nil)
	case ArrayKind:
		return Array(nil)
	case StringKind:
		return String("")
	case IntegerKind:
		return Integer(0)
	case FloatKind:
		return Float(0)
	case BoolKind:
		return Bool(false)
	}
	panic(fmt.Sprintf("unknown kind %d", kind))
}

// ToValue converts a string, int, float, bool, nil, or Entity into an
// Entity. A nil input becomes the string "null". It panics if v does not
// have one of those types; use FromValue for a total conversion over
// arbitrary native values.
func ToValue(v any) Entity {
	e, err := toValue(v)
	if err != nil {
		panic(err)
	}
	return e
}

func toValue(v any) (Entity, error) {
	switch t := v.(type) {
	case Entity:
		return t, nil
	case string:
		return String(t), nil
	case int:
		return Integer(t), nil
	case int64:
		return Integer(t), nil
	case float32:
		return Float(t), nil
	case float64:
		return Float(t), nil
	case bool:
		return Bool(t), nil
	case nil:
		return String("null"), nil
	}
	return nil, fmt.Errorf("invalid value of type %T", v)
}

// Field constructs an object member with the given key and value.
// The value must be a string, int, float, bool, nil, or Entity.
func Field(key string, value any) *Member {
	return &Member{Key: key, Value: ToValue(value)}
}

// A RetypePolicy controls whether Retype may discard the children of a
// container entity.
type RetypePolicy int

const (
	// RetypeStrict refuses to retype a container that still has children;
	// the caller must remove them first. This is the conventional policy: it
	// keeps a single mistyped selection from silently discarding a subtree.
	RetypeStrict RetypePolicy = iota

	// RetypeForce retypes unconditionally, discarding any children.
	RetypeForce
)

// Retype converts e to an empty entity of the given kind, discarding its
// current value. Under RetypeStrict it reports ErrInvalidTransition if e is
// an object or array that still has children.
func Retype(e Entity, kind Kind, policy RetypePolicy) (Entity, error) {
	if policy == RetypeStrict {
		if n := childCount(e); n > 0 {
			return nil, fmt.Errorf("retype %v with %d children: %w", e.Kind(), n, ErrInvalidTransition)
		}
	}
	return New(kind), nil
}

func childCount(e Entity) int {
	switch t := e.(type) {
	case Object:
		return len(t)
	case Array:
		return len(t)
	}
	return 0
}

// SetValue replaces the payload of a scalar entity, keeping its kind. The
// value must already have the Go type matching the entity's kind; the model
// does not parse or validate numeric text, that is the caller's job.
func SetValue(e Entity, v any) (Entity, error) {
	if !e.Kind().IsLeaf() {
		return nil, fmt.Errorf("set value on %v: %w", e.Kind(), ErrInvalidTransition)
	}
	nv, err := toValue(v)
	if err != nil {
		return nil, fmt.Errorf("set value: %v: %w", err, ErrInvalidTransition)
	}
	if nv.Kind() != e.Kind() {
		return nil, fmt.Errorf("set %v value on %v: %w", nv.Kind(), e.Kind(), ErrInvalidTransition)
	}
	return nv, nil
}

// Append adds a placeholder child at the end of a container: an empty-keyed
// empty string member for an object, an empty string element for an array.
// The caller is expected to rename and retype the child as needed.
func Append(e Entity) (Entity, error) {
	switch t := e.(type) {
	case Object:
		return append(t[:len(t):len(t)], &Member{Key: "", Value: String("")}), nil
	case Array:
		return append(t[:len(t):len(t)], String("")), nil
	}
	return nil, fmt.Errorf("append to %v: %w", e.Kind(), ErrInvalidTransition)
}

// RemoveAt removes the child at position i of a container.
func RemoveAt(e Entity, i int) (Entity, error) {
	switch t := e.(type) {
	case Object:
		if i < 0 || i >= len(t) {
			return nil, fmt.Errorf("remove index %d of %d: %w", i, len(t), ErrIndexOutOfRange)
		}
		out := make(Object, 0, len(t)-1)
		out = append(out, t[:i]...)
		return append(out, t[i+1:]...), nil
	case Array:
		if i < 0 || i >= len(t) {
			return nil, fmt.Errorf("remove index %d of %d: %w", i, len(t), ErrIndexOutOfRange)
		}
		out := make(Array, 0, len(t)-1)
		out = append(out, t[:i]...)
		return append(out, t[i+1:]...), nil
	}
	return nil, fmt.Errorf("remove from %v: %w", e.Kind(), ErrInvalidTransition)
}

// RenameAt replaces the key of the member at position i of an object,
// leaving its value and position unchanged. Renaming onto an existing key is
// permitted; collisions are advisory (DuplicateKeys) until serialization.
func RenameAt(e Entity, i int, newKey string) (Entity, error) {
	o, ok := e.(Object)
	if !ok {
		return nil, fmt.Errorf("rename key on %v: %w", e.Kind(), ErrInvalidTransition)
	}
	if i < 0 || i >= len(o) {
		return nil, fmt.Errorf("rename index %d of %d: %w", i, len(o), ErrIndexOutOfRange)
	}
	out := slices.Clone(o)
	out[i] = &Member{Key: newKey, Value: o[i].Value}
	return out, nil
}

// ReplaceAt atomically replaces the child at position i of a container with
// a new value, and for objects also its key. The key is ignored for arrays.
// It is the primitive used to thread an edited child back into its parent.
func ReplaceAt(e Entity, i int, key string, v Entity) (Entity, error) {
	switch t := e.(type) {
	case Object:
		if i < 0 || i >= len(t) {
			return nil, fmt.Errorf("replace index %d of %d: %w", i, len(t), ErrIndexOutOfRange)
		}
		out := slices.Clone(t)
		out[i] = &Member{Key: key, Value: v}
		return out, nil
	case Array:
		if i < 0 || i >= len(t) {
			return nil, fmt.Errorf("replace index %d of %d: %w", i, len(t), ErrIndexOutOfRange)
		}
		out := slices.Clone(t)
		out[i] = v
		return out, nil
	}
	return nil, fmt.Errorf("replace in %v: %w", e.Kind(), ErrInvalidTransition)
}
