package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Bhanujeet/stackpad/internal/message"
)

type captureWriter struct{ text string }

func (w *captureWriter) Name() string             { return "test" }
func (w *captureWriter) WriteText(s string) error { w.text = s; return nil }
func (w *captureWriter) Close()                   {}

func testClip(id, content string) message.Clip {
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

func testClips(n int) []message.Clip {
	out := make([]message.Clip, n)
	for i := range out {
		out[i] = testClip(fmt.Sprintf("c%d", i), fmt.Sprintf("content %d", i))
	}
	return out
}

// loadedCanvas is a canvas with clips applied as the initial load's result.
// The bridge client stays nil: command closures are asserted on, never run.
func loadedCanvas(t *testing.T, clips []message.Clip) canvasModel {
	t.Helper()
	m := newCanvas(nil, &captureWriter{})
	mm, _ := m.Update(clipsLoadedMsg{gen: m.initialGen, clips: clips})
	return mm.(canvasModel)
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestEmptyStateWording(t *testing.T) {
	t.Parallel()

	m := loadedCanvas(t, nil)
	if got := m.View(); !strings.Contains(got, "no clips yet") {
		t.Errorf("empty view missing empty-state line:\n%s", got)
	}

	m.search.SetValue("fox")
	if got := m.View(); !strings.Contains(got, `no clips match "fox"`) {
		t.Errorf("searched empty view missing match wording:\n%s", got)
	}
}

func TestLoadRendersOneCardPerClipInOrder(t *testing.T) {
	t.Parallel()

	m := loadedCanvas(t, testClips(3))
	view := m.View()

	last := -1
	for i := 0; i < 3; i++ {
		content := fmt.Sprintf("content %d", i)
		idx := strings.Index(view, content)
		if idx < 0 {
			t.Fatalf("view missing %q:\n%s", content, view)
		}
		if idx < last {
			t.Errorf("%q rendered out of order", content)
		}
		last = idx
	}
}

func TestStaleLoadResponseDiscarded(t *testing.T) {
	t.Parallel()

	m := newCanvas(nil, &captureWriter{})
	first := m.initialGen
	second := m.clips.NextGen()

	mm, _ := m.Update(clipsLoadedMsg{gen: second, clips: testClips(2)})
	m = mm.(canvasModel)
	mm, _ = m.Update(clipsLoadedMsg{gen: first, clips: testClips(5)})
	m = mm.(canvasModel)

	if m.clips.Len() != 2 {
		t.Errorf("got %d clips, want 2 (stale load must not apply)", m.clips.Len())
	}
}

func TestSelectionKeys(t *testing.T) {
	t.Parallel()

	m := loadedCanvas(t, testClips(3))

	mm, _ := m.Update(keyRune('a'))
	m = mm.(canvasModel)
	if got := m.sel.Count(); got != 3 {
		t.Errorf("after select all: got %d, want 3", got)
	}

	mm, _ = m.Update(keyRune('A'))
	m = mm.(canvasModel)
	if got := m.sel.Count(); got != 0 {
		t.Errorf("after clear: got %d, want 0", got)
	}

	space := tea.KeyMsg{Type: tea.KeySpace}
	mm, _ = m.Update(space)
	m = mm.(canvasModel)
	if got := m.sel.Count(); got != 1 {
		t.Errorf("after toggle: got %d, want 1", got)
	}
	mm, _ = m.Update(space)
	m = mm.(canvasModel)
	if got := m.sel.Count(); got != 0 {
		t.Errorf("after double toggle: got %d, want 0", got)
	}
}

func TestMergeRequiresTwoSelected(t *testing.T) {
	t.Parallel()

	m := loadedCanvas(t, testClips(3))
	mm, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = mm.(canvasModel)

	mm, _ = m.Update(keyRune('M'))
	m = mm.(canvasModel)
	if m.busy != "" {
		t.Errorf("merge started with %d selected; busy = %q", 1, m.busy)
	}
	if m.toast == "" {
		t.Error("expected a validation toast")
	}
}

func TestEmptyContentEditNeverCallsBackend(t *testing.T) {
	t.Parallel()

	m := loadedCanvas(t, testClips(1))
	mm, _ := m.Update(keyRune('e'))
	m = mm.(canvasModel)
	if m.modal != modalEdit {
		t.Fatalf("got modal %d, want modalEdit", m.modal)
	}

	m.editArea.SetValue("   ")
	mm, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = mm.(canvasModel)

	if m.modal != modalEdit {
		t.Error("empty save closed the modal; a call must have been issued")
	}
	got, _ := m.clips.Get("c0")
	if got.Content != "content 0" {
		t.Errorf("content changed to %q", got.Content)
	}
}

func TestCaptureEventPrependsOne(t *testing.T) {
	t.Parallel()

	m := loadedCanvas(t, testClips(2))
	frame, err := message.NewEvent(message.EventClipCaptured, testClip("fresh", "pushed"))
	if err != nil {
		t.Fatal(err)
	}

	mm, _ := m.Update(backendEventMsg{frame: frame})
	m = mm.(canvasModel)

	if m.clips.Len() != 3 {
		t.Fatalf("got %d clips, want 3", m.clips.Len())
	}
	if m.clips.IDs()[0] != "fresh" {
		t.Errorf("got front id %q, want %q", m.clips.IDs()[0], "fresh")
	}
}

func TestFocusClipEventMovesCursor(t *testing.T) {
	t.Parallel()

	m := loadedCanvas(t, testClips(3))
	frame, err := message.NewEvent(message.EventFocusClip, message.FocusPayload{ID: "c2"})
	if err != nil {
		t.Fatal(err)
	}

	mm, _ := m.Update(backendEventMsg{frame: frame})
	m = mm.(canvasModel)

	if m.cursor != 2 {
		t.Errorf("got cursor %d, want 2", m.cursor)
	}
	if m.flashID != "c2" {
		t.Errorf("got flash id %q, want %q", m.flashID, "c2")
	}
}

func TestFocusClipClearsHidingSearch(t *testing.T) {
	t.Parallel()

	m := loadedCanvas(t, testClips(3))
	m.search.SetValue("content 0") // hides c2

	frame, err := message.NewEvent(message.EventFocusClip, message.FocusPayload{ID: "c2"})
	if err != nil {
		t.Fatal(err)
	}
	mm, _ := m.Update(backendEventMsg{frame: frame})
	m = mm.(canvasModel)

	if m.search.Value() != "" {
		t.Error("search not cleared for hidden focus target")
	}
	if m.cursor != 2 {
		t.Errorf("got cursor %d, want 2", m.cursor)
	}
}

func TestBulkDeletePartialFailure(t *testing.T) {
	t.Parallel()

	m := loadedCanvas(t, testClips(3))
	mm, _ := m.Update(bulkDeleteDoneMsg{
		deleted: []string{"c0", "c2"},
		failed:  []string{"c1"},
		err:     fmt.Errorf("backend says no"),
	})
	m = mm.(canvasModel)

	if got, want := fmt.Sprint(m.clips.IDs()), "[c1]"; got != want {
		t.Errorf("got %v, want %v (failed id must survive)", got, want)
	}
	if m.toastKind != toastError {
		t.Error("partial failure not surfaced as an error")
	}
	if !strings.Contains(m.toast, "1 failed") {
		t.Errorf("toast %q does not name the failure count", m.toast)
	}
}

func TestAPIKeyErrorOpensSettings(t *testing.T) {
	t.Parallel()

	m := loadedCanvas(t, testClips(1))
	mm, _ := m.Update(chatReplyMsg{err: message.Errorf(message.KindAPIKey, "no key configured")})
	m = mm.(canvasModel)

	if m.modal != modalSettings {
		t.Errorf("got modal %d, want modalSettings", m.modal)
	}
	if m.toastKind != toastError {
		t.Error("failure not surfaced on the status line")
	}
}

func TestReorderIsOptimisticAndReloadsOnReject(t *testing.T) {
	t.Parallel()

	m := loadedCanvas(t, testClips(3))
	mm, cmd := m.Update(keyRune('J'))
	m = mm.(canvasModel)

	if got, want := fmt.Sprint(m.clips.IDs()), "[c1 c0 c2]"; got != want {
		t.Errorf("got %v, want %v (optimistic reorder missing)", got, want)
	}
	if m.cursor != 1 {
		t.Errorf("got cursor %d, want 1", m.cursor)
	}
	if cmd == nil {
		t.Fatal("no reorder invocation issued")
	}

	_, cmd = m.Update(reorderDoneMsg{err: fmt.Errorf("conflict")})
	if cmd == nil {
		t.Error("rejected reorder did not trigger a reload")
	}
}

func TestReorderBlockedWhileSearching(t *testing.T) {
	t.Parallel()

	m := loadedCanvas(t, testClips(3))
	m.search.SetValue("content")

	before := fmt.Sprint(m.clips.IDs())
	mm, _ := m.Update(keyRune('J'))
	m = mm.(canvasModel)

	if got := fmt.Sprint(m.clips.IDs()); got != before {
		t.Errorf("got %v, want unchanged %v", got, before)
	}
	if m.toast == "" {
		t.Error("expected a toast explaining the block")
	}
}

func TestClearAllBlockedWhileBusy(t *testing.T) {
	t.Parallel()

	m := loadedCanvas(t, testClips(2))
	m.busy = "sort"

	mm, cmd := m.Update(keyRune('x'))
	m = mm.(canvasModel)

	if m.modal != modalNone {
		t.Errorf("got modal %v, want none while an exclusive op runs", m.modal)
	}
	if m.busy != "sort" {
		t.Errorf("got busy %q, want the running op untouched", m.busy)
	}
	if cmd != nil {
		t.Error("blocked clear issued a command")
	}
}

func TestSwitchSettlesRegardlessOfReloadOrder(t *testing.T) {
	t.Parallel()

	m := loadedCanvas(t, testClips(2))

	// The switch confirmation triggers the dual reload; generation 2 is the
	// clip load it issues (generation 1 was the initial load).
	mm, cmd := m.Update(bookSwitchedMsg{id: "pb2"})
	m = mm.(canvasModel)
	if cmd == nil {
		t.Fatal("confirmed switch issued no reloads")
	}

	// Reload responses land out of order: clips first, then books.
	mm, _ = m.Update(clipsLoadedMsg{gen: 2, clips: testClips(1)})
	m = mm.(canvasModel)
	mm, _ = m.Update(booksLoadedMsg{
		entries: []message.PastebookEntry{{ID: "pb2", Name: "Work", Count: 1}},
		active:  &message.Pastebook{ID: "pb2", Name: "Work"},
	})
	m = mm.(canvasModel)

	if m.clips.Len() != 1 {
		t.Errorf("got %d clips, want 1", m.clips.Len())
	}
	if got := m.books.ActiveName(); got != "Work" {
		t.Errorf("got active %q, want %q", got, "Work")
	}
	if m.sel.Count() != 0 {
		t.Error("selection survived the pastebook switch")
	}
}

func TestReplaceClearsSelection(t *testing.T) {
	t.Parallel()

	m := loadedCanvas(t, testClips(3))
	mm, _ := m.Update(keyRune('a'))
	m = mm.(canvasModel)

	gen := m.clips.NextGen()
	mm, _ = m.Update(clipsLoadedMsg{gen: gen, clips: testClips(2)})
	m = mm.(canvasModel)

	if m.sel.Count() != 0 {
		t.Errorf("got %d selected after reload, want 0", m.sel.Count())
	}
}

func TestCopyLocalUsesClipboardWriter(t *testing.T) {
	t.Parallel()

	w := &captureWriter{}
	m := newCanvas(nil, w)
	mm, _ := m.Update(clipsLoadedMsg{gen: m.initialGen, clips: testClips(1)})
	m = mm.(canvasModel)

	_, cmd := m.Update(keyRune('y'))
	if cmd == nil {
		t.Fatal("no copy command issued")
	}
	if msg := cmd(); msg == nil {
		t.Fatal("copy command returned nothing")
	}
	if w.text != "content 0" {
		t.Errorf("clipboard got %q, want %q", w.text, "content 0")
	}
}

func TestDeleteSelectedWithEmptySelectionShortCircuits(t *testing.T) {
	t.Parallel()

	m := loadedCanvas(t, testClips(2))
	mm, _ := m.Update(keyRune('D'))
	m = mm.(canvasModel)

	if m.clips.Len() != 2 {
		t.Error("clips changed without a selection")
	}
	if m.toast == "" {
		t.Error("expected a nothing-selected toast")
	}
}
