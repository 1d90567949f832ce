package state

import (
	"fmt"
	"testing"

	"github.com/Bhanujeet/stackpad/internal/message"
)

func clip(id, content string) message.Clip {
	return message.Clip{
		ID:      id,
		Content: content,
		Metadata: message.ClipMetadata{
			SourceApp:   "App-" + id,
			WindowTitle: "Title-" + id,
		},
		Status: "raw",
	}
}

func clips(n int) []message.Clip {
	out := make([]message.Clip, n)
	for i := range out {
		out[i] = clip(fmt.Sprintf("c%d", i), fmt.Sprintf("content %d", i))
	}
	return out
}

func TestReplaceKeepsOrder(t *testing.T) {
	t.Parallel()

	var c ClipCache
	gen := c.NextGen()
	if !c.Replace(gen, clips(3)) {
		t.Fatal("current-generation replace rejected")
	}
	if got, want := fmt.Sprint(c.IDs()), "[c0 c1 c2]"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestReplaceDiscardsStaleGeneration(t *testing.T) {
	t.Parallel()

	var c ClipCache
	first := c.NextGen()
	second := c.NextGen()

	// The newer load's response lands first.
	if !c.Replace(second, clips(2)) {
		t.Fatal("newest-generation replace rejected")
	}
	// The older response must not clobber it.
	if c.Replace(first, clips(5)) {
		t.Error("stale replace applied")
	}
	if c.Len() != 2 {
		t.Errorf("got %d clips, want 2", c.Len())
	}
}

func TestPrependGrowsByOneAtFront(t *testing.T) {
	t.Parallel()

	var c ClipCache
	c.Replace(c.NextGen(), clips(2))
	c.Prepend(clip("new", "fresh"))

	if c.Len() != 3 {
		t.Fatalf("got %d clips, want 3", c.Len())
	}
	if c.IDs()[0] != "new" {
		t.Errorf("got front id %q, want %q", c.IDs()[0], "new")
	}
}

func TestReorderListedThenUnlisted(t *testing.T) {
	t.Parallel()

	var c ClipCache
	c.Replace(c.NextGen(), clips(4))
	c.Reorder([]string{"c2", "c0", "ghost"})

	if got, want := fmt.Sprint(c.IDs()), "[c2 c0 c1 c3]"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRemoveReportsPresence(t *testing.T) {
	t.Parallel()

	var c ClipCache
	c.Replace(c.NextGen(), clips(2))

	if !c.Remove("c1") {
		t.Error("removing present clip reported absent")
	}
	if c.Remove("c1") {
		t.Error("removing absent clip reported present")
	}
	if c.Len() != 1 {
		t.Errorf("got %d clips, want 1", c.Len())
	}
}

func TestFilterMatchesAllMetadataFields(t *testing.T) {
	t.Parallel()

	var c ClipCache
	c.Replace(c.NextGen(), []message.Clip{
		clip("a", "the quick brown fox"),
		clip("b", "lazy dog"),
	})

	cases := []struct {
		query string
		want  int
	}{
		{"", 2},
		{"QUICK", 1},     // content, case-insensitive
		{"app-b", 1},     // source app
		{"title-", 2},    // window title
		{"no match", 0},
	}
	for _, tc := range cases {
		if got := len(c.Filter(tc.query)); got != tc.want {
			t.Errorf("Filter(%q) = %d clips, want %d", tc.query, got, tc.want)
		}
	}
}

func TestSetContent(t *testing.T) {
	t.Parallel()

	var c ClipCache
	c.Replace(c.NextGen(), clips(1))

	if !c.SetContent("c0", "edited") {
		t.Fatal("SetContent on present clip reported absent")
	}
	got, _ := c.Get("c0")
	if got.Content != "edited" {
		t.Errorf("got %q, want %q", got.Content, "edited")
	}
	if c.SetContent("ghost", "x") {
		t.Error("SetContent on absent clip reported present")
	}
}
