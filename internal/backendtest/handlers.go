package backendtest

import (
	"github.com/Bhanujeet/stackpad/internal/message"
)

var cannedModels = []string{
	"models/gemini-flash-latest",
	"models/gemini-pro-latest",
}

// CopiedAll returns the payload of the most recent copy_all_to_clipboard
// call. There is no real clipboard here; tests assert on this instead.
func (b *Backend) CopiedAll() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.copiedAll
}

func (b *Backend) recordCopyAll(content string) {
	b.mu.Lock()
	b.copiedAll = content
	b.mu.Unlock()
}

// handle answers one INVOKE frame. The second return reports whether the
// clip set may have changed, which triggers a clips-updated fanout to the
// other windows.
func (b *Backend) handle(m *message.Message) (*message.Message, bool) {
	if err := b.injectedFailure(m.Cmd); err != nil {
		return message.NewError(m.ID, err), false
	}

	switch m.Cmd {
	case message.CmdGetClips:
		return result(m.ID, b.store.Clips()), false

	case message.CmdDeleteClip:
		var args message.IDArgs
		if err := m.DecodeArgs(&args); err != nil {
			return badArgs(m), false
		}
		deleted := b.store.DeleteClip(args.ID)
		return result(m.ID, deleted), deleted

	case message.CmdUpdateClip:
		var args message.UpdateClipArgs
		if err := m.DecodeArgs(&args); err != nil {
			return badArgs(m), false
		}
		updated := b.store.UpdateClip(args.ID, args.Content)
		return result(m.ID, updated), updated

	case message.CmdReorderClips:
		var args message.IDsArgs
		if err := m.DecodeArgs(&args); err != nil {
			return badArgs(m), false
		}
		b.store.ReorderClips(args.IDs)
		return result(m.ID, nil), true

	case message.CmdMergeClips:
		var args message.IDsArgs
		if err := m.DecodeArgs(&args); err != nil {
			return badArgs(m), false
		}
		merged := b.store.MergeClips(args.IDs)
		return result(m.ID, merged), merged != nil

	case message.CmdGetAllContent:
		return result(m.ID, b.store.AllContent()), false

	case message.CmdCopyAllToClipboard:
		b.recordCopyAll(b.store.AllContent())
		return result(m.ID, nil), false

	case message.CmdClearAllClips:
		b.store.ClearClips()
		return result(m.ID, nil), true

	case message.CmdListPastebooks:
		return result(m.ID, b.store.ListPastebooks()), false

	case message.CmdGetActivePastebook:
		return result(m.ID, b.store.ActivePastebook()), false

	case message.CmdCreatePastebook:
		var args message.NameArgs
		if err := m.DecodeArgs(&args); err != nil {
			return badArgs(m), false
		}
		if args.Name == "" {
			return message.NewError(m.ID, message.Errorf(message.KindInvalidArgument, "pastebook name is empty")), false
		}
		return result(m.ID, b.store.CreatePastebook(args.Name)), true

	case message.CmdSwitchPastebook:
		var args message.IDArgs
		if err := m.DecodeArgs(&args); err != nil {
			return badArgs(m), false
		}
		switched := b.store.SwitchPastebook(args.ID)
		return result(m.ID, switched), switched

	case message.CmdDeletePastebook:
		var args message.IDArgs
		if err := m.DecodeArgs(&args); err != nil {
			return badArgs(m), false
		}
		deleted := b.store.DeletePastebook(args.ID)
		return result(m.ID, deleted), deleted

	case message.CmdRenamePastebook:
		var args message.RenameArgs
		if err := m.DecodeArgs(&args); err != nil {
			return badArgs(m), false
		}
		return result(m.ID, b.store.RenamePastebook(args.ID, args.Name)), false

	case message.CmdMagicSort:
		if b.store.APIKey() == "" {
			return noKey(m), false
		}
		b.store.MagicSort()
		return result(m.ID, nil), true

	case message.CmdChatSubmit:
		if b.store.APIKey() == "" {
			return noKey(m), false
		}
		var args message.ChatArgs
		if err := m.DecodeArgs(&args); err != nil {
			return badArgs(m), false
		}
		return result(m.ID, b.chatReply(args.Prompt)), false

	case message.CmdSetAPIKey:
		var args message.APIKeyArgs
		if err := m.DecodeArgs(&args); err != nil {
			return badArgs(m), false
		}
		if args.APIKey == "" {
			return message.NewError(m.ID, message.Errorf(message.KindInvalidArgument, "API key is empty")), false
		}
		b.store.SetAPIKey(args.APIKey)
		return result(m.ID, nil), false

	case message.CmdGetModels:
		if b.store.APIKey() == "" {
			return noKey(m), false
		}
		return result(m.ID, cannedModels), false

	default:
		return message.NewError(m.ID, message.Errorf(message.KindNotFound, "unknown command %q", m.Cmd)), false
	}
}

func result(id uint64, v any) *message.Message {
	r, err := message.NewResult(id, v)
	if err != nil {
		return message.NewError(id, message.Errorf(message.KindInternal, "encode result: %v", err))
	}
	return r
}

func badArgs(m *message.Message) *message.Message {
	return message.NewError(m.ID, message.Errorf(message.KindInvalidArgument, "malformed %s args", m.Cmd))
}

func noKey(m *message.Message) *message.Message {
	return message.NewError(m.ID, message.Errorf(message.KindAPIKey, "no API key configured"))
}
