// Copyright (C) 2025 Camille Roussille. All Rights Reserved.

package entity

import (
	"fmt"
	"slices"
)

// Update applies f to the entity at the given path beneath root and returns
// a new root in which the result has been threaded back up through fresh
// copies of each ancestor. Siblings of the edited path are shared with the
// input, not copied. An empty path applies f to root itself.
//
// Path elements are either strings (resolving the first member of an object
// with that key) or ints (resolving a child of an object or array by
// position; negative indices count back from the end). A missing key or
// out-of-bounds index reports ErrIndexOutOfRange; descending into a scalar
// reports ErrInvalidTransition.
func Update(root Entity, path []any, f func(Entity) (Entity, error)) (Entity, error) {
	if len(path) == 0 {
		return f(root)
	}
	switch t := root.(type) {
	case Object:
		i, err := resolveChild(len(t), path[0], func(key string) int { return t.Index(key) })
		if err != nil {
			return nil, err
		}
		nv, err := Update(t[i].Value, path[1:], f)
		if err != nil {
			return nil, err
		}
		out := slices.Clone(t)
		out[i] = &Member{Key: t[i].Key, Value: nv}
		return out, nil

	case Array:
		i, err := resolveChild(len(t), path[0], nil)
		if err != nil {
			return nil, err
		}
		nv, err := Update(t[i], path[1:], f)
		if err != nil {
			return nil, err
		}
		out := slices.Clone(t)
		out[i] = nv
		return out, nil
	}
	return nil, fmt.Errorf("cannot traverse %v with %v: %w", root.Kind(), path[0], ErrInvalidTransition)
}

// resolveChild maps a path element to a child position. findKey is nil for
// arrays, which cannot be addressed by key.
func resolveChild(n int, elt any, findKey func(string) int) (int, error) {
	switch t := elt.(type) {
	case string:
		if findKey == nil {
			return 0, fmt.Errorf("cannot resolve key %q in an array: %w", t, ErrInvalidTransition)
		}
		i := findKey(t)
		if i < 0 {
			return 0, fmt.Errorf("key %q not found: %w", t, ErrIndexOutOfRange)
		}
		return i, nil
	case int:
		i, ok := fixBound(n, t)
		if !ok {
			return 0, fmt.Errorf("index %d of %d: %w", t, n, ErrIndexOutOfRange)
		}
		return i, nil
	}
	return 0, fmt.Errorf("invalid path element %v (%T)", elt, elt)
}

// fixBound normalizes a possibly-negative index against length n.
func fixBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}

// A Cursor is a pointer that navigates into the structure of an Entity.
// Traversal errors are recorded on the cursor; check Err after moving.
type Cursor struct {
	org Entity
	stk []Entity
	err error
}

// NewCursor constructs a cursor to traverse the structure of origin.
func NewCursor(origin Entity) *Cursor { return &Cursor{org: origin} }

// Origin returns the origin value of c.
func (c *Cursor) Origin() Entity { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Value reports the current value under the cursor.
func (c *Cursor) Value() Entity {
	if c.AtOrigin() {
		return c.org
	}
	return c.stk[len(c.stk)-1]
}

// Path reports the sequence of values from the origin to the current
// location in c, inclusive of both.
func (c *Cursor) Path() []Entity {
	return append([]Entity{c.org}, c.stk...)
}

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves the cursor one position toward its origin, if possible.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
	}
	return c
}

// Reset returns the cursor to its origin and clears its error.
func (c *Cursor) Reset() { c.stk = c.stk[:0]; c.err = nil }

// Down traverses a sequential path into the structure of c starting from
// the current value, using the path element syntax of Update. If the path
// cannot be completely consumed, the cursor stays where traversal stopped
// and the error is recorded; use Err to recover it. It returns c to permit
// chaining.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil
	for _, elt := range path {
		cur := c.Value()
		switch t := cur.(type) {
		case Object:
			i, err := resolveChild(len(t), elt, func(key string) int { return t.Index(key) })
			if err != nil {
				return c.setError(err)
			}
			c.stk = append(c.stk, t[i].Value)
		case Array:
			i, err := resolveChild(len(t), elt, nil)
			if err != nil {
				return c.setError(err)
			}
			c.stk = append(c.stk, t[i])
		default:
			return c.setError(fmt.Errorf("cannot traverse %v with %v: %w", cur.Kind(), elt, ErrInvalidTransition))
		}
	}
	return c
}

func (c *Cursor) setError(err error) *Cursor { c.err = err; return c }
