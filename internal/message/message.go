// Package message defines the stackpad bridge protocol.
//
// All frames are newline-delimited JSON. A window sends INVOKE frames and
// receives a matching RESULT or ERROR frame carrying the same id; the backend
// pushes EVENT frames to every subscribed window. Each frame is exactly one
// line: <json>\n
package message

import (
	"encoding/json"
	"fmt"
	"time"
)

// Type identifies the kind of frame.
type Type string

const (
	TypeInvoke    Type = "INVOKE"
	TypeResult    Type = "RESULT"
	TypeError     Type = "ERROR"
	TypeEvent     Type = "EVENT"
	TypeSubscribe Type = "SUBSCRIBE"
	TypeEmit      Type = "EMIT"
)

// Command names an operation on the backend. The strings are the wire
// contract and never change independently of the backend.
type Command string

const (
	CmdGetClips           Command = "get_clips"
	CmdDeleteClip         Command = "delete_clip"
	CmdUpdateClip         Command = "update_clip"
	CmdReorderClips       Command = "reorder_clips"
	CmdMergeClips         Command = "merge_clips"
	CmdGetAllContent      Command = "get_all_content"
	CmdCopyAllToClipboard Command = "copy_all_to_clipboard"
	CmdClearAllClips      Command = "clear_all_clips"
	CmdListPastebooks     Command = "list_pastebooks"
	CmdGetActivePastebook Command = "get_active_pastebook"
	CmdCreatePastebook    Command = "create_pastebook"
	CmdSwitchPastebook    Command = "switch_pastebook"
	CmdDeletePastebook    Command = "delete_pastebook"
	CmdRenamePastebook    Command = "rename_pastebook"
	CmdMagicSort          Command = "magic_sort"
	CmdChatSubmit         Command = "chat_submit"
	CmdSetAPIKey          Command = "set_api_key"
	CmdGetModels          Command = "get_models"
)

// Event names a backend push. FocusClip is window-to-window: a window EMITs
// it and the backend fans it out to the other subscribed windows.
type Event string

const (
	EventClipCaptured Event = "clip-captured"
	EventClipsUpdated Event = "clips-updated"
	EventFocusClip    Event = "focus-clip"
)

// Window sources carried by SUBSCRIBE frames. The backend routes EMIT frames
// to every subscribed window except the emitting one.
const (
	SourceCanvas  = "canvas"
	SourceSidebar = "sidebar"
)

// ErrorKind classifies an ERROR frame so callers can branch on the class of
// failure instead of matching message text.
type ErrorKind string

const (
	KindInvalidArgument ErrorKind = "invalid_argument"
	KindNotFound        ErrorKind = "not_found"
	KindAPIKey          ErrorKind = "api_key"
	KindAI              ErrorKind = "ai"
	KindInternal        ErrorKind = "internal"
	KindUnavailable     ErrorKind = "unavailable"
)

// InvokeError is the structured error carried by an ERROR frame.
type InvokeError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *InvokeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Errorf builds an InvokeError with a formatted message.
func Errorf(kind ErrorKind, format string, args ...any) *InvokeError {
	return &InvokeError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Clip is a single captured piece of text with its capture context.
type Clip struct {
	ID       string       `json:"id"`
	Content  string       `json:"content"`
	Metadata ClipMetadata `json:"metadata"`
	Status   string       `json:"status"`
}

// ClipMetadata records where and when a clip was captured.
type ClipMetadata struct {
	Timestamp   time.Time `json:"timestamp"`
	SourceApp   string    `json:"source_app"`
	WindowTitle string    `json:"window_title"`
}

// Pastebook is a named collection of clips. Clip contents are fetched
// separately via get_clips; only the identity travels here.
type Pastebook struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// PastebookEntry is one row of a list_pastebooks response. The backend
// serialises entries as [id, name, count] triples, so the struct maps to a
// JSON array rather than an object.
type PastebookEntry struct {
	ID    string
	Name  string
	Count int
}

func (p PastebookEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]any{p.ID, p.Name, p.Count})
}

func (p *PastebookEntry) UnmarshalJSON(b []byte) error {
	var t [3]json.RawMessage
	if err := json.Unmarshal(b, &t); err != nil {
		return fmt.Errorf("pastebook entry: %w", err)
	}
	if err := json.Unmarshal(t[0], &p.ID); err != nil {
		return fmt.Errorf("pastebook entry id: %w", err)
	}
	if err := json.Unmarshal(t[1], &p.Name); err != nil {
		return fmt.Errorf("pastebook entry name: %w", err)
	}
	if err := json.Unmarshal(t[2], &p.Count); err != nil {
		return fmt.Errorf("pastebook entry count: %w", err)
	}
	return nil
}

// IDArgs carries the single-id argument of delete_clip, switch_pastebook and
// delete_pastebook.
type IDArgs struct {
	ID string `json:"id"`
}

// IDsArgs carries the ordered id list of reorder_clips and merge_clips.
type IDsArgs struct {
	IDs []string `json:"ids"`
}

// UpdateClipArgs carries the arguments of update_clip.
type UpdateClipArgs struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// NameArgs carries the argument of create_pastebook.
type NameArgs struct {
	Name string `json:"name"`
}

// RenameArgs carries the arguments of rename_pastebook.
type RenameArgs struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ChatArgs carries the argument of chat_submit.
type ChatArgs struct {
	Prompt string `json:"prompt"`
}

// APIKeyArgs carries the argument of set_api_key.
type APIKeyArgs struct {
	APIKey string `json:"apiKey"`
}

// FocusPayload is the payload of a focus-clip event.
type FocusPayload struct {
	ID string `json:"id"`
}

// Message is the top-level wire envelope.
type Message struct {
	// Always present
	Type Type `json:"type"`

	// INVOKE / RESULT / ERROR — correlation id, unique per connection
	ID uint64 `json:"id,omitempty"`

	// INVOKE
	Cmd  Command         `json:"cmd,omitempty"`
	Args json.RawMessage `json:"args,omitempty"`

	// RESULT
	Result json.RawMessage `json:"result,omitempty"`

	// ERROR
	Error *InvokeError `json:"error,omitempty"`

	// EVENT / EMIT
	Event   Event           `json:"event,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`

	// SUBSCRIBE — which window this connection belongs to
	Source string `json:"source,omitempty"`
}

// Encode serialises the frame to JSON without a trailing newline.
func (m *Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// Decode deserialises a frame from raw JSON bytes.
func Decode(b []byte) (*Message, error) {
	var m Message
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("message decode: %w", err)
	}
	return &m, nil
}

// NewInvoke builds an INVOKE frame, marshalling args. A nil args produces an
// argument-less invocation.
func NewInvoke(id uint64, cmd Command, args any) (*Message, error) {
	m := &Message{Type: TypeInvoke, ID: id, Cmd: cmd}
	if args != nil {
		b, err := json.Marshal(args)
		if err != nil {
			return nil, fmt.Errorf("marshal %s args: %w", cmd, err)
		}
		m.Args = b
	}
	return m, nil
}

// NewResult builds a RESULT frame for the invocation id, marshalling result.
func NewResult(id uint64, result any) (*Message, error) {
	m := &Message{Type: TypeResult, ID: id}
	if result != nil {
		b, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("marshal result: %w", err)
		}
		m.Result = b
	}
	return m, nil
}

// NewError builds an ERROR frame for the invocation id.
func NewError(id uint64, e *InvokeError) *Message {
	return &Message{Type: TypeError, ID: id, Error: e}
}

// NewEvent builds an EVENT frame, marshalling payload. A nil payload produces
// a bare notification.
func NewEvent(event Event, payload any) (*Message, error) {
	m := &Message{Type: TypeEvent, Event: event}
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s payload: %w", event, err)
		}
		m.Payload = b
	}
	return m, nil
}

// DecodePayload unmarshals the frame's event payload into v.
func (m *Message) DecodePayload(v any) error {
	if err := json.Unmarshal(m.Payload, v); err != nil {
		return fmt.Errorf("decode %s payload: %w", m.Event, err)
	}
	return nil
}

// DecodeArgs unmarshals the frame's invocation arguments into v.
func (m *Message) DecodeArgs(v any) error {
	if err := json.Unmarshal(m.Args, v); err != nil {
		return fmt.Errorf("decode %s args: %w", m.Cmd, err)
	}
	return nil
}
