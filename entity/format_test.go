// Copyright (C) 2025 Camille Roussille. All Rights Reserved.

package entity_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/croussille/jent/entity"
	"github.com/google/go-cmp/cmp"
)

func TestMarshal(t *testing.T) {
	tests := []struct {
		name  string
		input entity.Entity
		want  string
	}{
		{"EmptyObject", entity.Object{}, "{}"},
		{"EmptyArray", entity.Array{}, "[]"},
		{"ScalarRoot", entity.String("solo"), `"solo"`},
		{"FlatObject", entity.Object{
			entity.Field("name", "Ada"),
			entity.Field("age", 36),
		}, `{
  "name": "Ada",
  "age": 36
}`},
		{"NestedContainers", entity.Object{
			entity.Field("empty", entity.Object{}),
			entity.Field("list", entity.Array{
				entity.Integer(1),
				entity.Object{entity.Field("deep", true)},
			}),
		}, `{
  "empty": {},
  "list": [
    1,
    {
      "deep": true
    }
  ]
}`},
		{"ArrayRoot", entity.Array{
			entity.Integer(1),
			entity.Float(2.5),
			entity.String("three"),
		}, `[
  1,
  2.5,
  "three"
]`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := entity.Marshal(tc.input)
			if err != nil {
				t.Fatalf("Marshal: unexpected error: %v", err)
			}
			if diff := cmp.Diff(string(got), tc.want); diff != "" {
				t.Errorf("Marshal (-got, +want):\n%s", diff)
			}
		})
	}
}

func TestMarshalDuplicateKeys(t *testing.T) {
	obj := entity.Object{
		entity.Field("x", 1),
		entity.Field("y", 2),
		entity.Field("x", 3),
	}
	_, err := entity.Marshal(obj)
	if err == nil {
		t.Fatal("Marshal: got nil, want error")
	}
	var dke *entity.DuplicateKeyError
	if !errors.As(err, &dke) {
		t.Fatalf("Marshal: got error %v, want *DuplicateKeyError", err)
	}
	if diff := cmp.Diff(dke.Keys, []string{"x"}); diff != "" {
		t.Errorf("Keys (-got, +want):\n%s", diff)
	}
	if !strings.Contains(err.Error(), "x") {
		t.Errorf("error %q does not name the duplicate key", err)
	}

	// Duplicates nested below the root are also refused.
	root := entity.Array{obj}
	if _, err := entity.Marshal(root); err == nil {
		t.Error("Marshal nested: got nil, want error")
	}
}

func TestMarshalIdempotent(t *testing.T) {
	root := entity.Object{
		entity.Field("a", entity.Array{entity.Integer(1), entity.Float(0.5)}),
		entity.Field("b", "two"),
	}
	first, err := entity.Marshal(root)
	if err != nil {
		t.Fatalf("Marshal: unexpected error: %v", err)
	}
	second, err := entity.Marshal(root)
	if err != nil {
		t.Fatalf("Marshal: unexpected error: %v", err)
	}
	if string(first) != string(second) {
		t.Errorf("Marshal not idempotent:\nfirst:  %s\nsecond: %s", first, second)
	}
}

func TestFormat(t *testing.T) {
	var sb strings.Builder
	if err := entity.Format(&sb, entity.Array{entity.Bool(true)}); err != nil {
		t.Fatalf("Format: unexpected error: %v", err)
	}
	const want = "[\n  true\n]"
	if got := sb.String(); got != want {
		t.Errorf("Format: got %#q, want %#q", got, want)
	}

	bad := entity.Object{entity.Field("k", 1), entity.Field("k", 2)}
	if err := entity.Format(&sb, bad); err == nil {
		t.Error("Format: got nil, want error")
	}
}

func TestStringEscapes(t *testing.T) {
	tests := []struct {
		input entity.String
		want  string
	}{
		{"plain", `"plain"`},
		{"tab\tnewline\n", `"tab\tnewline\n"`},
		{`quote " backslash \`, `"quote \" backslash \\"`},
		{"control \x01", `"control \u0001"`},
		{"s\u00e9ance \u00fcn\u00efcode", "\"s\u00e9ance \u00fcn\u00efcode\""},
		{"line\u2028sep", `"line\u2028sep"`},
		{"para\u2029sep", `"para\u2029sep"`},
		{"replacement \ufffd", `"replacement \ufffd"`},
	}
	for _, tc := range tests {
		if got := tc.input.JSON(); got != tc.want {
			t.Errorf("JSON(%#q): got %#q, want %#q", string(tc.input), got, tc.want)
		}
	}
}
