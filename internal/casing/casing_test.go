package casing

import (
	"reflect"
	"testing"
)

func TestSnakeToCamel(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"user_id", "userId"},
		{"first_name", "firstName"},
		{"refresh_token", "refreshToken"},
		{"already", "already"},
		{"", ""},
		{"_private_field", "_privateField"},
		{"__double", "__double"},
		{"double__underscore", "doubleUnderscore"},
		{"trailing_", "trailing_"},
		{"amount_2_pay", "amount2Pay"},
	}

	for _, c := range cases {
		if got := SnakeToCamel(c.in); got != c.want {
			t.Errorf("SnakeToCamel(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCamelToSnake(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"userId", "user_id"},
		{"firstName", "first_name"},
		{"already", "already"},
		{"", ""},
		{"_privateField", "_private_field"},
		{"amount2Pay", "amount_2pay"},
		{"parseURL", "parse_url"},
	}

	for _, c := range cases {
		if got := CamelToSnake(c.in); got != c.want {
			t.Errorf("CamelToSnake(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	// snake -> camel -> snake is identity for single-word boundaries.
	for _, s := range []string{"user_id", "first_name", "account_id", "created_at", "is_default"} {
		if got := CamelToSnake(SnakeToCamel(s)); got != s {
			t.Errorf("round trip of %q = %q", s, got)
		}
	}
}

func TestKeysToCamel(t *testing.T) {
	in := map[string]any{
		"access_token": "abc",
		"user": map[string]any{
			"first_name": "Test",
			"last_name":  "User",
			"is_active":  true,
		},
		"tags":   []any{"a", "b"},
		"nested": []any{map[string]any{"account_id": "1"}},
		"null":   nil,
	}

	want := map[string]any{
		"accessToken": "abc",
		"user": map[string]any{
			"firstName": "Test",
			"lastName":  "User",
			"isActive":  true,
		},
		"tags":   []any{"a", "b"},
		"nested": []any{map[string]any{"accountId": "1"}},
		"null":   nil,
	}

	if got := KeysToCamel(in); !reflect.DeepEqual(got, want) {
		t.Errorf("KeysToCamel mismatch:\ngot  %#v\nwant %#v", got, want)
	}
}

func TestTreeRoundTrip(t *testing.T) {
	in := map[string]any{
		"accountId":   "acc-1",
		"isDefault":   true,
		"tags":        []any{"food", "travel"},
		"createdAt":   "2024-12-31T00:00:00Z",
		"balance":     1234.56,
		"description": nil,
	}

	if got := KeysToCamel(KeysToSnake(in)); !reflect.DeepEqual(got, in) {
		t.Errorf("tree round trip mismatch:\ngot  %#v\nwant %#v", got, in)
	}
}

func TestScalarsPassThrough(t *testing.T) {
	if got := KeysToSnake(42.0); got != 42.0 {
		t.Errorf("expected scalar passthrough, got %v", got)
	}
	if got := KeysToCamel(nil); got != nil {
		t.Errorf("expected nil passthrough, got %v", got)
	}
}
