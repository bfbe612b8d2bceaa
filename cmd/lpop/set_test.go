package main

import "testing"

func TestChomp(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"secret\n", "secret"},
		{"secret", "secret"},
		{"secret\n\n", "secret\n"},
		{"line one\nline two\n", "line one\nline two"},
		{"\n", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := chomp(tc.in); got != tc.want {
			t.Errorf("chomp(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
