package backendtest

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/Bhanujeet/stackpad/internal/bridge"
	"github.com/Bhanujeet/stackpad/internal/message"
)

func connect(t *testing.T, b *Backend, source string) *bridge.Client {
	t.Helper()
	cliSide, srvSide := net.Pipe()
	b.ServeConn(srvSide)
	c, err := bridge.New(cliSide, source)
	if err != nil {
		t.Fatalf("connect %s: %v", source, err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func seed(b *Backend, contents ...string) []message.Clip {
	for _, content := range contents {
		b.Store().AddClip(b.Store().NewClip(content, "TestApp", "Test Window"))
	}
	return b.Store().Clips()
}

func nextEvent(t *testing.T, c *bridge.Client) *message.Message {
	t.Helper()
	select {
	case m := <-c.Events():
		return m
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func expectNoEvent(t *testing.T, c *bridge.Client) {
	t.Helper()
	select {
	case m := <-c.Events():
		t.Fatalf("unexpected event %q", m.Event)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestMergeSemantics(t *testing.T) {
	t.Parallel()

	b := New()
	clips := seed(b, "third", "second", "first") // newest first: first, second, third
	c := connect(t, b, message.SourceCanvas)

	// Merge the first and third clip, in display order.
	merged, err := c.MergeClips(context.Background(), []string{clips[0].ID, clips[2].ID})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if merged == nil {
		t.Fatal("merge returned nil for two valid ids")
	}
	if got, want := merged.Content, "first\n\nthird"; got != want {
		t.Errorf("got content %q, want %q", got, want)
	}
	if !merged.Metadata.Timestamp.Equal(clips[0].Metadata.Timestamp) ||
		merged.Metadata.SourceApp != clips[0].Metadata.SourceApp ||
		merged.Metadata.WindowTitle != clips[0].Metadata.WindowTitle {
		t.Errorf("merged metadata %+v, want first matched clip's %+v", merged.Metadata, clips[0].Metadata)
	}

	after := b.Store().Clips()
	if len(after) != 2 {
		t.Fatalf("got %d clips after merge, want 2", len(after))
	}
	if after[0].ID != merged.ID {
		t.Error("merged clip is not at the front")
	}
	if after[1].Content != "second" {
		t.Errorf("surviving clip is %q, want %q", after[1].Content, "second")
	}
}

func TestMergeDeclinesSingleID(t *testing.T) {
	t.Parallel()

	b := New()
	clips := seed(b, "only")
	c := connect(t, b, message.SourceCanvas)

	merged, err := c.MergeClips(context.Background(), []string{clips[0].ID})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if merged != nil {
		t.Errorf("merge of one id returned %+v, want nil", merged)
	}
	if b.Store().Clips()[0].ID != clips[0].ID {
		t.Error("declined merge changed the store")
	}
}

func TestReorderListedThenUnlisted(t *testing.T) {
	t.Parallel()

	b := New()
	clips := seed(b, "c", "b", "a") // order: a, b, c
	c := connect(t, b, message.SourceCanvas)

	if err := c.ReorderClips(context.Background(), []string{clips[2].ID, clips[0].ID}); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	after := b.Store().Clips()
	got := []string{after[0].Content, after[1].Content, after[2].Content}
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got order %v, want %v", got, want)
		}
	}
}

func TestCannotDeleteLastPastebook(t *testing.T) {
	t.Parallel()

	b := New()
	c := connect(t, b, message.SourceCanvas)

	books, err := c.ListPastebooks(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	deleted, err := c.DeletePastebook(context.Background(), books[0].ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted {
		t.Error("deleting the last pastebook succeeded")
	}
}

func TestDeletingActiveSwitchesToFirst(t *testing.T) {
	t.Parallel()

	b := New()
	c := connect(t, b, message.SourceCanvas)
	ctx := context.Background()

	created, err := c.CreatePastebook(ctx, "Second")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	active, err := c.GetActivePastebook(ctx)
	if err != nil || active == nil {
		t.Fatalf("active: %v %v", active, err)
	}
	if active.ID != created.ID {
		t.Fatal("create did not activate the new pastebook")
	}

	deleted, err := c.DeletePastebook(ctx, created.ID)
	if err != nil || !deleted {
		t.Fatalf("delete active: %v %v", deleted, err)
	}
	active, err = c.GetActivePastebook(ctx)
	if err != nil || active == nil {
		t.Fatalf("active after delete: %v %v", active, err)
	}
	if active.Name != DefaultBookName {
		t.Errorf("got active %q, want %q", active.Name, DefaultBookName)
	}
}

func TestMutationFansOutToOtherWindowsOnly(t *testing.T) {
	t.Parallel()

	b := New()
	clips := seed(b, "doomed")
	canvas := connect(t, b, message.SourceCanvas)
	sidebar := connect(t, b, message.SourceSidebar)

	deleted, err := canvas.DeleteClip(context.Background(), clips[0].ID)
	if err != nil || !deleted {
		t.Fatalf("delete: %v %v", deleted, err)
	}

	if evt := nextEvent(t, sidebar); evt.Event != message.EventClipsUpdated {
		t.Errorf("sidebar got %q, want clips-updated", evt.Event)
	}
	expectNoEvent(t, canvas)
}

func TestEmitExcludesSender(t *testing.T) {
	t.Parallel()

	b := New()
	canvas := connect(t, b, message.SourceCanvas)
	sidebar := connect(t, b, message.SourceSidebar)

	if err := sidebar.EmitFocusClip("c42"); err != nil {
		t.Fatalf("emit: %v", err)
	}

	evt := nextEvent(t, canvas)
	if evt.Event != message.EventFocusClip {
		t.Fatalf("canvas got %q, want focus-clip", evt.Event)
	}
	var p message.FocusPayload
	if err := evt.DecodePayload(&p); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if p.ID != "c42" {
		t.Errorf("got id %q, want c42", p.ID)
	}
	expectNoEvent(t, sidebar)
}

func TestPushCaptureReachesAllWindows(t *testing.T) {
	t.Parallel()

	b := New()
	canvas := connect(t, b, message.SourceCanvas)
	sidebar := connect(t, b, message.SourceSidebar)

	clip := b.Store().NewClip("captured text", "Firefox", "Some Page")
	b.PushCapture(clip)

	for _, c := range []*bridge.Client{canvas, sidebar} {
		evt := nextEvent(t, c)
		if evt.Event != message.EventClipCaptured {
			t.Fatalf("got %q, want clip-captured", evt.Event)
		}
		var got message.Clip
		if err := evt.DecodePayload(&got); err != nil {
			t.Fatalf("payload: %v", err)
		}
		if got.ID != clip.ID || got.Content != "captured text" {
			t.Errorf("got %+v, want the captured clip", got)
		}
	}
	if b.Store().Clips()[0].ID != clip.ID {
		t.Error("capture not stored at the front")
	}
}

func TestAIRequiresKey(t *testing.T) {
	t.Parallel()

	b := New()
	c := connect(t, b, message.SourceCanvas)
	ctx := context.Background()

	_, err := c.GetModels(ctx)
	var ie *message.InvokeError
	if !errors.As(err, &ie) || ie.Kind != message.KindAPIKey {
		t.Fatalf("got %v, want api_key error", err)
	}

	if err := c.SetAPIKey(ctx, "sk-test"); err != nil {
		t.Fatalf("set key: %v", err)
	}
	models, err := c.GetModels(ctx)
	if err != nil {
		t.Fatalf("models after key: %v", err)
	}
	if len(models) == 0 || !strings.HasPrefix(models[0], "models/") {
		t.Errorf("got %v, want model names", models)
	}

	reply, err := c.ChatSubmit(ctx, "hello")
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if reply == "" {
		t.Error("empty chat reply")
	}
}

func TestMagicSortOrdersByContent(t *testing.T) {
	t.Parallel()

	b := New()
	seed(b, "banana", "Apple", "cherry") // order: cherry, Apple, banana
	b.Store().SetAPIKey("sk-test")
	c := connect(t, b, message.SourceCanvas)

	if err := c.MagicSort(context.Background()); err != nil {
		t.Fatalf("magic sort: %v", err)
	}
	after := b.Store().Clips()
	got := []string{after[0].Content, after[1].Content, after[2].Content}
	want := []string{"Apple", "banana", "cherry"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got order %v, want %v", got, want)
		}
	}
}

func TestFailureInjection(t *testing.T) {
	t.Parallel()

	b := New()
	seed(b, "x")
	c := connect(t, b, message.SourceCanvas)
	ctx := context.Background()

	b.Fail(message.CmdReorderClips, message.Errorf(message.KindInternal, "boom"))
	err := c.ReorderClips(ctx, []string{"anything"})
	var ie *message.InvokeError
	if !errors.As(err, &ie) || ie.Kind != message.KindInternal {
		t.Fatalf("got %v, want injected internal error", err)
	}

	b.Fail(message.CmdReorderClips, nil)
	// An empty id list is still a valid reorder.
	if err := c.ReorderClips(ctx, nil); err != nil {
		t.Fatalf("reorder after clearing injection: %v", err)
	}
}

func TestCopyAllRecordsJoinedContent(t *testing.T) {
	t.Parallel()

	b := New()
	seed(b, "two", "one")
	c := connect(t, b, message.SourceCanvas)

	if err := c.CopyAllToClipboard(context.Background()); err != nil {
		t.Fatalf("copy all: %v", err)
	}
	if got, want := b.CopiedAll(), "one\n\ntwo"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
