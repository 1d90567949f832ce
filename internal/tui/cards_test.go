package tui

import (
	"strings"
	"testing"
	"time"
)

func TestClipBodyCollapsesPastThreshold(t *testing.T) {
	t.Parallel()

	content := strings.Join([]string{"l1", "l2", "l3", "l4", "l5", "l6"}, "\n")

	collapsed := clipBody(content, false)
	if !strings.Contains(collapsed, "(+2 lines)") {
		t.Errorf("collapsed body missing hint: %q", collapsed)
	}
	if strings.Contains(collapsed, "l5") {
		t.Error("collapsed body leaks hidden lines")
	}

	if got := clipBody(content, true); got != content {
		t.Errorf("expanded body altered: %q", got)
	}
}

func TestClipBodyShortContentUntouched(t *testing.T) {
	t.Parallel()

	content := "one\ntwo"
	if got := clipBody(content, false); got != content {
		t.Errorf("got %q, want %q", got, content)
	}
}

func TestTruncateRunes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"hello world", 5, "hello…"},
		{"ααααα", 3, "ααα…"},
		{"日本語テキスト", 2, "日本…"},
	}
	for _, tc := range cases {
		if got := truncateRunes(tc.in, tc.max); got != tc.want {
			t.Errorf("truncateRunes(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}

func TestRelAge(t *testing.T) {
	t.Parallel()

	now := time.Now()
	cases := []struct {
		t    time.Time
		want string
	}{
		{time.Time{}, "-"},
		{now.Add(-10 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-49 * time.Hour), "2d ago"},
	}
	for _, tc := range cases {
		if got := relAge(tc.t); got != tc.want {
			t.Errorf("relAge(%v) = %q, want %q", tc.t, got, tc.want)
		}
	}
}
