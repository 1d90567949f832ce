package main

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateRunesKeepsValidUTF8(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"plain ascii", 60, "plain ascii"},
		{strings.Repeat("x", 61), 60, strings.Repeat("x", 60) + "…"},
		{strings.Repeat("α", 65), 60, strings.Repeat("α", 60) + "…"},
	}
	for _, tc := range cases {
		got := truncateRunes(tc.in, tc.max)
		if got != tc.want {
			t.Errorf("truncateRunes(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncateRunes(%q, %d) produced invalid UTF-8", tc.in, tc.max)
		}
	}
}
