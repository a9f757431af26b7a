// Copyright (C) 2025 Camille Roussille. All Rights Reserved.

package entity

import "fmt"

// A Kind identifies the type of JSON value an Entity represents.
type Kind int

const (
	ObjectKind Kind = iota
	ArrayKind
	StringKind
	IntegerKind
	FloatKind
	BoolKind
)

var kindNames = map[Kind]string{
	ObjectKind:  "Object",
	ArrayKind:   "Array",
	StringKind:  "String",
	IntegerKind: "Integer",
	FloatKind:   "Float",
	BoolKind:    "Bool",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "<unknown kind>"
}

// IsLeaf reports whether k is a scalar kind, one that cannot have children.
func (k Kind) IsLeaf() bool {
	switch k {
	case ObjectKind, ArrayKind:
		return false
	default:
		return true
	}
}

// MarshalText encodes k as its name, for use in configuration and logs.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText decodes a kind from its name.
func (k *Kind) UnmarshalText(data []byte) error {
	for kind, name := range kindNames {
		if name == string(data) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unrecognized kind %q", data)
}

// Kinds returns all entity kinds in declaration order.
func Kinds() []Kind {
	return []Kind{ObjectKind, ArrayKind, StringKind, IntegerKind, FloatKind, BoolKind}
}
