package bridge

import (
	"context"

	"github.com/Bhanujeet/stackpad/internal/message"
)

// GetClips fetches the clips of the active pastebook, newest first.
func (c *Client) GetClips(ctx context.Context) ([]message.Clip, error) {
	var clips []message.Clip
	if err := c.Invoke(ctx, message.CmdGetClips, nil, &clips); err != nil {
		return nil, err
	}
	return clips, nil
}

// DeleteClip removes one clip. The backend reports whether the id existed.
func (c *Client) DeleteClip(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := c.Invoke(ctx, message.CmdDeleteClip, message.IDArgs{ID: id}, &deleted)
	return deleted, err
}

// UpdateClip replaces a clip's content. The backend reports whether the id
// existed.
func (c *Client) UpdateClip(ctx context.Context, id, content string) (bool, error) {
	var updated bool
	err := c.Invoke(ctx, message.CmdUpdateClip, message.UpdateClipArgs{ID: id, Content: content}, &updated)
	return updated, err
}

// ReorderClips submits a new clip order: listed ids first, unlisted clips
// keep their relative order after them.
func (c *Client) ReorderClips(ctx context.Context, ids []string) error {
	return c.Invoke(ctx, message.CmdReorderClips, message.IDsArgs{IDs: ids}, nil)
}

// MergeClips merges the given clips into one new clip. A nil result means
// the backend declined (fewer than two known ids).
func (c *Client) MergeClips(ctx context.Context, ids []string) (*message.Clip, error) {
	var merged *message.Clip
	err := c.Invoke(ctx, message.CmdMergeClips, message.IDsArgs{IDs: ids}, &merged)
	return merged, err
}

// GetAllContent returns every clip's content joined into one string.
func (c *Client) GetAllContent(ctx context.Context) (string, error) {
	var content string
	err := c.Invoke(ctx, message.CmdGetAllContent, nil, &content)
	return content, err
}

// CopyAllToClipboard asks the backend to place the joined contents on the
// system clipboard of the backend host.
func (c *Client) CopyAllToClipboard(ctx context.Context) error {
	return c.Invoke(ctx, message.CmdCopyAllToClipboard, nil, nil)
}

// ClearAllClips empties the active pastebook.
func (c *Client) ClearAllClips(ctx context.Context) error {
	return c.Invoke(ctx, message.CmdClearAllClips, nil, nil)
}

// ListPastebooks returns every pastebook with its clip count.
func (c *Client) ListPastebooks(ctx context.Context) ([]message.PastebookEntry, error) {
	var entries []message.PastebookEntry
	if err := c.Invoke(ctx, message.CmdListPastebooks, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetActivePastebook returns the active pastebook, or nil when none is set.
func (c *Client) GetActivePastebook(ctx context.Context) (*message.Pastebook, error) {
	var pb *message.Pastebook
	err := c.Invoke(ctx, message.CmdGetActivePastebook, nil, &pb)
	return pb, err
}

// CreatePastebook creates a pastebook and makes it active.
func (c *Client) CreatePastebook(ctx context.Context, name string) (message.Pastebook, error) {
	var pb message.Pastebook
	err := c.Invoke(ctx, message.CmdCreatePastebook, message.NameArgs{Name: name}, &pb)
	return pb, err
}

// SwitchPastebook makes the given pastebook active. The backend reports
// whether the id existed.
func (c *Client) SwitchPastebook(ctx context.Context, id string) (bool, error) {
	var switched bool
	err := c.Invoke(ctx, message.CmdSwitchPastebook, message.IDArgs{ID: id}, &switched)
	return switched, err
}

// DeletePastebook removes a pastebook. The backend refuses to delete the
// last one.
func (c *Client) DeletePastebook(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := c.Invoke(ctx, message.CmdDeletePastebook, message.IDArgs{ID: id}, &deleted)
	return deleted, err
}

// RenamePastebook renames a pastebook. The backend reports whether the id
// existed.
func (c *Client) RenamePastebook(ctx context.Context, id, name string) (bool, error) {
	var renamed bool
	err := c.Invoke(ctx, message.CmdRenamePastebook, message.RenameArgs{ID: id, Name: name}, &renamed)
	return renamed, err
}

// MagicSort asks the backend's model to reorder the active pastebook's clips
// into a logical structure. Callers reload afterwards.
func (c *Client) MagicSort(ctx context.Context) error {
	return c.Invoke(ctx, message.CmdMagicSort, nil, nil)
}

// ChatSubmit sends a prompt to the backend's model and returns the reply.
func (c *Client) ChatSubmit(ctx context.Context, prompt string) (string, error) {
	var reply string
	err := c.Invoke(ctx, message.CmdChatSubmit, message.ChatArgs{Prompt: prompt}, &reply)
	return reply, err
}

// SetAPIKey stores the model API key on the backend.
func (c *Client) SetAPIKey(ctx context.Context, apiKey string) error {
	return c.Invoke(ctx, message.CmdSetAPIKey, message.APIKeyArgs{APIKey: apiKey}, nil)
}

// GetModels returns the model names usable for chat and magic sort.
func (c *Client) GetModels(ctx context.Context) ([]string, error) {
	var models []string
	if err := c.Invoke(ctx, message.CmdGetModels, nil, &models); err != nil {
		return nil, err
	}
	return models, nil
}

// EmitFocusClip asks other windows to bring the given clip into view.
func (c *Client) EmitFocusClip(id string) error {
	return c.Emit(message.EventFocusClip, message.FocusPayload{ID: id})
}
