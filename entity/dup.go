// Copyright (C) 2025 Camille Roussille. All Rights Reserved.

package entity

import "github.com/creachadair/mds/mapset"

// DuplicateKeys returns the keys that occur more than once among the members
// of o, in first-occurrence order, each key listed once. The result is
// advisory: a duplicate-key object is valid in memory and only rejected at
// serialization.
func (o Object) DuplicateKeys() []string {
	var dups []string
	seen := mapset.New[string]()
	reported := mapset.New[string]()
	for _, m := range o {
		if seen.Has(m.Key) && !reported.Has(m.Key) {
			dups = append(dups, m.Key)
			reported.Add(m.Key)
		}
		seen.Add(m.Key)
	}
	return dups
}

// DuplicateKeys returns every duplicated object key in the tree rooted at e,
// in depth-first, first-occurrence order, each key listed once. An empty
// result means e is serializable.
func DuplicateKeys(e Entity) []string {
	var dups []string
	reported := mapset.New[string]()
	var walk func(Entity)
	walk = func(e Entity) {
		switch t := e.(type) {
		case Object:
			for _, key := range t.DuplicateKeys() {
				if !reported.Has(key) {
					dups = append(dups, key)
					reported.Add(key)
				}
			}
			for _, m := range t {
				walk(m.Value)
			}
		case Array:
			for _, v := range t {
				walk(v)
			}
		}
	}
	walk(e)
	return dups
}
