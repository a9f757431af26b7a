// Copyright (C) 2025 Camille Roussille. All Rights Reserved.

package entity_test

import (
	"math"
	"strings"
	"testing"

	"github.com/croussille/jent/entity"
	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  entity.Entity
	}{
		{"EmptyObject", `{}`, entity.Object(nil)},
		{"EmptyArray", `[]`, entity.Array(nil)},
		{"String", `"hello"`, entity.String("hello")},
		{"Integer", `42`, entity.Integer(42)},
		{"Float", `2.5`, entity.Float(2.5)},
		{"IntegralFloat", `3.0`, entity.Integer(3)},
		{"Exponent", `1e3`, entity.Integer(1000)},
		{"MaxInt64", `9223372036854775807`, entity.Integer(math.MaxInt64)},
		{"MinInt64", `-9223372036854775808`, entity.Integer(math.MinInt64)},
		// 2^63 does not fit in int64; it must widen to Float, not wrap
		// negative.
		{"JustPastMaxInt64", `9223372036854775808`, entity.Float(9223372036854775808)},
		{"HugeWhole", `1.8e19`, entity.Float(1.8e19)},
		{"NegativeHugeWhole", `-1.8e19`, entity.Float(-1.8e19)},
		// Beyond float64 range the numeral keeps its text.
		{"PastFloat64", `1e999`, entity.String("1e999")},
		{"Bool", `true`, entity.Bool(true)},
		{"NullBecomesString", `null`, entity.String("null")},
		{"MixedArray", `[1, 2.5, "three"]`, entity.Array{
			entity.Integer(1),
			entity.Float(2.5),
			entity.String("three"),
		}},
		{"OrderPreserved", `{"z": 1, "a": 2, "m": 3}`, entity.Object{
			entity.Field("z", 1),
			entity.Field("a", 2),
			entity.Field("m", 3),
		}},
		{"DuplicatesPreserved", `{"k": 1, "k": 2}`, entity.Object{
			entity.Field("k", 1),
			entity.Field("k", 2),
		}},
		{"Nested", `{"a": [{"b": null}]}`, entity.Object{
			entity.Field("a", entity.Array{
				entity.Object{entity.Field("b", "null")},
			}),
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := entity.Parse(strings.NewReader(tc.input))
			if err != nil {
				t.Fatalf("Parse: unexpected error: %v", err)
			}
			if diff := cmp.Diff(got, tc.want); diff != "" {
				t.Errorf("Parse (-got, +want):\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		``,              // empty input
		`{`,             // truncated
		`[1, 2`,         // truncated
		`{"a": 1} 2`,    // extra input
		`{"a": 1}{");`,  // extra input
		`{'a': 1}`,      // not JSON
		`[1, 2,]`,       // trailing comma (strict mode)
		`// hi` + "\n1", // comment (strict mode)
	}
	for _, input := range tests {
		if _, err := entity.Parse(strings.NewReader(input)); err == nil {
			t.Errorf("Parse %#q: got nil, want error", input)
		}
	}
}

func TestParseLenient(t *testing.T) {
	const input = `{
  // a comment
  "a": 1,
  "b": [2, 3], // trailing comma next
}`
	got, err := entity.ParseLenient([]byte(input))
	if err != nil {
		t.Fatalf("ParseLenient: unexpected error: %v", err)
	}
	want := entity.Object{
		entity.Field("a", 1),
		entity.Field("b", entity.Array{entity.Integer(2), entity.Integer(3)}),
	}
	if diff := cmp.Diff(got, entity.Entity(want)); diff != "" {
		t.Errorf("ParseLenient (-got, +want):\n%s", diff)
	}

	if _, err := entity.ParseLenient([]byte(`{]`)); err == nil {
		t.Error("ParseLenient: got nil, want error")
	}
}

// Round trip: on null-free JSON, Marshal(Parse(v)) parses back equal to v,
// and integral numbers stay integral.
func TestRoundTrip(t *testing.T) {
	tests := []string{
		`{}`,
		`[]`,
		`"only a string"`,
		`[1, 2.5, "three"]`,
		`{"name": "Ada", "age": 36, "tags": ["math", "engines"], "ratio": 0.5}`,
		`{"nested": {"deep": [{"deeper": [[]]}]}, "ok": true}`,
		`[9223372036854775807, 9223372036854775808, -9223372036854775808]`,
	}
	for _, input := range tests {
		e, err := entity.Parse(strings.NewReader(input))
		if err != nil {
			t.Errorf("Parse %#q: unexpected error: %v", input, err)
			continue
		}
		data, err := entity.Marshal(e)
		if err != nil {
			t.Errorf("Marshal %#q: unexpected error: %v", input, err)
			continue
		}

		var got, want any
		if err := json.Unmarshal(data, &got); err != nil {
			t.Errorf("output %#q is not valid JSON: %v", data, err)
			continue
		}
		if err := json.Unmarshal([]byte(input), &want); err != nil {
			t.Fatalf("invalid test input %#q: %v", input, err)
		}
		if diff := cmp.Diff(got, want); diff != "" {
			t.Errorf("round trip of %#q (-got, +want):\n%s", input, diff)
		}

		// Serialization did not disturb the entity.
		again, err := entity.Marshal(e)
		if err != nil {
			t.Errorf("re-Marshal: unexpected error: %v", err)
		} else if string(again) != string(data) {
			t.Errorf("re-Marshal differs:\nfirst:  %s\nsecond: %s", data, again)
		}
	}
}

// The editing scenario from the session contract: seed with {}, append a
// member, rename it, set its value, serialize.
func TestEditScenario(t *testing.T) {
	root, err := entity.Parse(strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	if got := root.Kind(); got != entity.ObjectKind {
		t.Fatalf("root kind: got %v, want %v", got, entity.ObjectKind)
	}

	root, err = entity.Append(root)
	if err != nil {
		t.Fatalf("Append: unexpected error: %v", err)
	}
	want := entity.Object{entity.Field("", "")}
	if diff := cmp.Diff(root, entity.Entity(want)); diff != "" {
		t.Fatalf("after Append (-got, +want):\n%s", diff)
	}

	root, err = entity.RenameAt(root, 0, "name")
	if err != nil {
		t.Fatalf("RenameAt: unexpected error: %v", err)
	}
	root, err = entity.Update(root, []any{"name"}, func(e entity.Entity) (entity.Entity, error) {
		return entity.SetValue(e, "Ada")
	})
	if err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}

	data, err := entity.Marshal(root)
	if err != nil {
		t.Fatalf("Marshal: unexpected error: %v", err)
	}
	const wantJSON = "{\n  \"name\": \"Ada\"\n}"
	if got := string(data); got != wantJSON {
		t.Errorf("Marshal: got %#q, want %#q", got, wantJSON)
	}
}

func TestFromValue(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  entity.Entity
	}{
		{"Nil", nil, entity.String("null")},
		{"Bool", true, entity.Bool(true)},
		{"String", "hi", entity.String("hi")},
		{"Int", 42, entity.Integer(42)},
		{"IntegralFloat", 3.0, entity.Integer(3)},
		{"Float", 2.5, entity.Float(2.5)},
		{"FloatAtInt64Boundary", 9223372036854775808.0, entity.Float(9223372036854775808)},
		{"Uint", uint(7), entity.Integer(7)},
		{"Uint64Overflow", uint64(math.MaxUint64), entity.Float(18446744073709551615)},
		{"Number", json.Number("7"), entity.Integer(7)},
		{"Entity", entity.Bool(false), entity.Bool(false)},
		{"SliceInOrder", []any{1.0, "two", nil}, entity.Array{
			entity.Integer(1),
			entity.String("two"),
			entity.String("null"),
		}},
		{"MapKeysSorted", map[string]any{"z": 1.0, "a": 2.0}, entity.Object{
			entity.Field("a", 2),
			entity.Field("z", 1),
		}},
		{"FallbackJSONText", struct {
			N int `json:"n"`
		}{N: 3}, entity.String(`{"n":3}`)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(entity.FromValue(tc.input), tc.want); diff != "" {
				t.Errorf("FromValue (-got, +want):\n%s", diff)
			}
		})
	}
}
