// Copyright (C) 2025 Camille Roussille. All Rights Reserved.

package entity

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidTransition is reported when an edit is applied to an entity
	// of an incompatible kind, such as appending a child to a scalar or
	// strictly retyping a container that still has children.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrIndexOutOfRange is reported when a positional edit or traversal
	// addresses a child that does not exist, typically because the caller
	// holds a stale index.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// A DuplicateKeyError reports the object keys that occur more than once in a
// tree submitted for serialization. Duplicate keys are tolerated in memory;
// only serialization refuses them.
type DuplicateKeyError struct {
	Keys []string // in first-occurrence order, each key listed once
}

func (e *DuplicateKeyError) Error() string {
	return "duplicate object keys: " + strings.Join(e.Keys, ", ")
}
