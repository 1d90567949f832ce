package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Bhanujeet/stackpad/internal/bridge"
	"github.com/Bhanujeet/stackpad/internal/clip"
	"github.com/Bhanujeet/stackpad/internal/message"
)

// Every backend call runs as a tea.Cmd goroutine and comes back as one of
// the typed messages below; all state mutation happens in Update. Load
// results carry the generation they were issued under so a response overtaken
// by a newer load is dropped at apply time.

type clipsLoadedMsg struct {
	gen   uint64
	clips []message.Clip
	err   error
}

type booksLoadedMsg struct {
	entries []message.PastebookEntry
	active  *message.Pastebook
	err     error
}

type clipDeletedMsg struct {
	id  string
	err error
}

// bulkDeleteDoneMsg reports a sequential multi-delete. Deletion is per-id on
// the wire, so some ids can succeed while others fail; both lists come back.
type bulkDeleteDoneMsg struct {
	deleted []string
	failed  []string
	err     error
}

type contentSavedMsg struct {
	id      string
	content string
	err     error
}

type reorderDoneMsg struct{ err error }

type mergeDoneMsg struct{ err error }

type clearAllDoneMsg struct{ err error }

type copyAllDoneMsg struct{ err error }

type copiedLocallyMsg struct{ err error }

type focusEmittedMsg struct{ err error }

type bookSwitchedMsg struct {
	id  string
	err error
}

type bookCreatedMsg struct {
	book message.Pastebook
	err  error
}

type bookRenamedMsg struct{ err error }

type bookDeletedMsg struct{ err error }

type magicSortDoneMsg struct{ err error }

type chatReplyMsg struct {
	prompt string
	reply  string
	err    error
}

type apiKeySavedMsg struct{ err error }

type modelsLoadedMsg struct {
	models []string
	err    error
}

// backendEventMsg wraps one pushed EVENT frame.
type backendEventMsg struct{ frame *message.Message }

// bridgeClosedMsg means the backend connection is gone for good.
type bridgeClosedMsg struct{}

type clearToastMsg struct{ seq int }

type clearFlashMsg struct{ seq int }

const toastDuration = 4 * time.Second

const flashDuration = 1200 * time.Millisecond

func invokeCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), bridge.DefaultTimeout)
}

func aiCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), bridge.AITimeout)
}

func loadClipsCmd(c *bridge.Client, gen uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := invokeCtx()
		defer cancel()
		clips, err := c.GetClips(ctx)
		return clipsLoadedMsg{gen: gen, clips: clips, err: err}
	}
}

func loadBooksCmd(c *bridge.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := invokeCtx()
		defer cancel()
		entries, err := c.ListPastebooks(ctx)
		if err != nil {
			return booksLoadedMsg{err: err}
		}
		active, err := c.GetActivePastebook(ctx)
		return booksLoadedMsg{entries: entries, active: active, err: err}
	}
}

func deleteClipCmd(c *bridge.Client, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := invokeCtx()
		defer cancel()
		_, err := c.DeleteClip(ctx, id)
		return clipDeletedMsg{id: id, err: err}
	}
}

// bulkDeleteCmd deletes ids one by one. There is no batch command on the
// backend; a failure mid-way must not discard the deletions that already
// landed.
func bulkDeleteCmd(c *bridge.Client, ids []string) tea.Cmd {
	return func() tea.Msg {
		var done bulkDeleteDoneMsg
		for _, id := range ids {
			ctx, cancel := invokeCtx()
			_, err := c.DeleteClip(ctx, id)
			cancel()
			if err != nil {
				done.failed = append(done.failed, id)
				done.err = err
				continue
			}
			done.deleted = append(done.deleted, id)
		}
		return done
	}
}

func saveContentCmd(c *bridge.Client, id, content string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := invokeCtx()
		defer cancel()
		_, err := c.UpdateClip(ctx, id, content)
		return contentSavedMsg{id: id, content: content, err: err}
	}
}

func reorderCmd(c *bridge.Client, ids []string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := invokeCtx()
		defer cancel()
		return reorderDoneMsg{err: c.ReorderClips(ctx, ids)}
	}
}

func mergeCmd(c *bridge.Client, ids []string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := invokeCtx()
		defer cancel()
		_, err := c.MergeClips(ctx, ids)
		return mergeDoneMsg{err: err}
	}
}

func clearAllCmd(c *bridge.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := invokeCtx()
		defer cancel()
		return clearAllDoneMsg{err: c.ClearAllClips(ctx)}
	}
}

func copyAllCmd(c *bridge.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := invokeCtx()
		defer cancel()
		return copyAllDoneMsg{err: c.CopyAllToClipboard(ctx)}
	}
}

func copyLocalCmd(w clip.Writer, text string) tea.Cmd {
	return func() tea.Msg {
		return copiedLocallyMsg{err: w.WriteText(text)}
	}
}

func switchBookCmd(c *bridge.Client, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := invokeCtx()
		defer cancel()
		_, err := c.SwitchPastebook(ctx, id)
		return bookSwitchedMsg{id: id, err: err}
	}
}

func createBookCmd(c *bridge.Client, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := invokeCtx()
		defer cancel()
		pb, err := c.CreatePastebook(ctx, name)
		return bookCreatedMsg{book: pb, err: err}
	}
}

func renameBookCmd(c *bridge.Client, id, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := invokeCtx()
		defer cancel()
		_, err := c.RenamePastebook(ctx, id, name)
		return bookRenamedMsg{err: err}
	}
}

func deleteBookCmd(c *bridge.Client, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := invokeCtx()
		defer cancel()
		_, err := c.DeletePastebook(ctx, id)
		return bookDeletedMsg{err: err}
	}
}

func magicSortCmd(c *bridge.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := aiCtx()
		defer cancel()
		return magicSortDoneMsg{err: c.MagicSort(ctx)}
	}
}

func chatCmd(c *bridge.Client, prompt string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := aiCtx()
		defer cancel()
		reply, err := c.ChatSubmit(ctx, prompt)
		return chatReplyMsg{prompt: prompt, reply: reply, err: err}
	}
}

func saveAPIKeyCmd(c *bridge.Client, key string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := invokeCtx()
		defer cancel()
		return apiKeySavedMsg{err: c.SetAPIKey(ctx, key)}
	}
}

func loadModelsCmd(c *bridge.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := invokeCtx()
		defer cancel()
		models, err := c.GetModels(ctx)
		return modelsLoadedMsg{models: models, err: err}
	}
}

func emitFocusCmd(c *bridge.Client, id string) tea.Cmd {
	return func() tea.Msg {
		return focusEmittedMsg{err: c.EmitFocusClip(id)}
	}
}

// waitEventCmd blocks on the bridge event channel and re-arms itself from the
// reducer after every delivery.
func waitEventCmd(c *bridge.Client) tea.Cmd {
	return func() tea.Msg {
		select {
		case frame := <-c.Events():
			return backendEventMsg{frame: frame}
		case <-c.Done():
			return bridgeClosedMsg{}
		}
	}
}

func clearToastAfter(seq int) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return clearToastMsg{seq: seq}
	})
}

func clearFlashAfter(seq int) tea.Cmd {
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return clearFlashMsg{seq: seq}
	})
}
