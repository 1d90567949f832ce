// Package tui implements the two interactive stackpad surfaces: the canvas
// (full management UI) and the sidebar (minimal capture feed). Both are
// bubbletea programs over the same bridge client; they share the protocol,
// the theme and the card renderer, but not model code.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/Bhanujeet/stackpad/internal/bridge"
	"github.com/Bhanujeet/stackpad/internal/clip"
	"github.com/Bhanujeet/stackpad/internal/message"
	"github.com/Bhanujeet/stackpad/internal/state"
)

type canvasModal int

const (
	modalNone canvasModal = iota
	modalEdit
	modalBooks
	modalBookName
	modalConfirmDeleteBook
	modalConfirmClear
	modalChat
	modalSettings
)

type toastKind int

const (
	toastInfo toastKind = iota
	toastSuccess
	toastError
)

type chatLine struct {
	role string // "you" or "ai"
	text string
}

// canvasModel is the full management surface. All fields are owned by the
// bubbletea loop; backend calls run as commands and mutate nothing directly.
type canvasModel struct {
	client *bridge.Client
	clipb  clip.Writer

	clips state.ClipCache
	sel   state.Selection
	books state.Pastebooks

	width  int
	height int
	cursor int
	scroll int

	// expanded tracks which long clips show their full content.
	expanded map[string]bool

	search    textinput.Model
	searching bool

	modal    canvasModal
	editID   string
	editArea textarea.Model

	bookCursor   int
	bookInput    textinput.Model
	bookRenameID string // "" while creating
	bookDeleteID string

	chat      []chatLine
	chatInput textinput.Model
	chatView  viewport.Model

	keyInput textinput.Model
	models   []string

	spin spinner.Model
	busy string // "" or the running exclusive operation: merge, sort, chat, clear

	toast     string
	toastKind toastKind
	toastSeq  int

	flashID  string
	flashSeq int

	// initialGen tags the load issued by Init. Init runs on a copy of the
	// model, so the generation is taken here where the mutation sticks.
	initialGen uint64
}

func newCanvas(client *bridge.Client, clipb clip.Writer) canvasModel {
	m := canvasModel{
		client:   client,
		clipb:    clipb,
		width:    80,
		height:   24,
		expanded: make(map[string]bool),
	}

	m.search = textinput.New()
	m.search.Placeholder = "search"
	m.search.Prompt = "/"
	m.search.CharLimit = 200

	m.editArea = textarea.New()
	m.editArea.CharLimit = 0
	m.editArea.ShowLineNumbers = false
	m.editArea.SetWidth(64)
	m.editArea.SetHeight(8)

	m.bookInput = textinput.New()
	m.bookInput.Placeholder = "pastebook name"
	m.bookInput.CharLimit = 120

	m.chatInput = textinput.New()
	m.chatInput.Placeholder = "ask about your clips"
	m.chatInput.CharLimit = 0
	m.chatView = viewport.New(64, 10)

	m.keyInput = textinput.New()
	m.keyInput.Placeholder = "Gemini API key"
	m.keyInput.EchoMode = textinput.EchoPassword
	m.keyInput.CharLimit = 200

	m.spin = spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styleAccent))

	m.initialGen = m.clips.NextGen()
	return m
}

func (m canvasModel) Init() tea.Cmd {
	return tea.Batch(
		loadClipsCmd(m.client, m.initialGen),
		loadBooksCmd(m.client),
		waitEventCmd(m.client),
	)
}

// visible projects the cache through the active search query.
func (m *canvasModel) visible() []message.Clip {
	return m.clips.Filter(m.search.Value())
}

// clampCursor keeps the cursor inside the filtered view and the scroll
// window around it.
func (m *canvasModel) clampCursor() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	vis := m.visibleRows()
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	}
	if m.cursor >= m.scroll+vis {
		m.scroll = m.cursor - vis + 1
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

// visibleRows is how many cards fit the card area. Collapsed cards are about
// six terminal rows; expanded ones are taller, so this is a lower-bound
// heuristic and the view truncates the rest.
func (m *canvasModel) visibleRows() int {
	rows := (m.height - 4) / 6
	if rows < 1 {
		rows = 1
	}
	return rows
}

// setToast replaces the status line and schedules its expiry.
func (m *canvasModel) setToast(kind toastKind, text string) tea.Cmd {
	m.toast = text
	m.toastKind = kind
	m.toastSeq++
	return clearToastAfter(m.toastSeq)
}

// cursorClip returns the clip under the cursor in the filtered view.
func (m *canvasModel) cursorClip() (message.Clip, bool) {
	vis := m.visible()
	if m.cursor < 0 || m.cursor >= len(vis) {
		return message.Clip{}, false
	}
	return vis[m.cursor], true
}

// reloadAll issues a fresh generation-tagged clip load plus a pastebook
// reload. The two complete independently; the generation guard makes the
// newest clip load win regardless of completion order.
func (m *canvasModel) reloadAll() tea.Cmd {
	gen := m.clips.NextGen()
	return tea.Batch(loadClipsCmd(m.client, gen), loadBooksCmd(m.client))
}

func (m *canvasModel) reloadClips() tea.Cmd {
	gen := m.clips.NextGen()
	return loadClipsCmd(m.client, gen)
}
