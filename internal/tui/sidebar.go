package tui

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Bhanujeet/stackpad/internal/bridge"
	"github.com/Bhanujeet/stackpad/internal/message"
	"github.com/Bhanujeet/stackpad/internal/state"
)

// sidebarModel is the minimal capture feed: one row per clip, open-in-canvas
// and delete. Everything else lives on the canvas.
type sidebarModel struct {
	client *bridge.Client

	clips state.ClipCache

	width  int
	height int
	cursor int
	scroll int

	toast     string
	toastKind toastKind
	toastSeq  int

	initialGen uint64
}

func newSidebar(client *bridge.Client) sidebarModel {
	m := sidebarModel{
		client: client,
		width:  40,
		height: 24,
	}
	m.initialGen = m.clips.NextGen()
	return m
}

func (m sidebarModel) Init() tea.Cmd {
	return tea.Batch(
		loadClipsCmd(m.client, m.initialGen),
		waitEventCmd(m.client),
	)
}

func (m sidebarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clamp()
		return m, nil

	case clearToastMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil

	case clipsLoadedMsg:
		if msg.err != nil {
			slog.Error("load clips failed", "err", msg.err)
			return m, m.setToast(toastError, "load failed: "+msg.err.Error())
		}
		if !m.clips.Replace(msg.gen, msg.clips) {
			return m, nil
		}
		m.clamp()
		return m, nil

	case clipDeletedMsg:
		if msg.err != nil {
			slog.Error("delete failed", "err", msg.err)
			return m, m.setToast(toastError, "delete failed: "+msg.err.Error())
		}
		m.clips.Remove(msg.id)
		m.clamp()
		return m, m.setToast(toastSuccess, "deleted")

	case focusEmittedMsg:
		if msg.err != nil {
			return m, m.setToast(toastError, "open failed: "+msg.err.Error())
		}
		return m, m.setToast(toastInfo, "opened in canvas")

	case backendEventMsg:
		return m.applyEvent(msg.frame)

	case bridgeClosedMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m sidebarModel) applyEvent(frame *message.Message) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{waitEventCmd(m.client)}

	switch frame.Event {
	case message.EventClipCaptured:
		var clip message.Clip
		if err := frame.DecodePayload(&clip); err != nil {
			slog.Error("bad clip-captured payload", "err", err)
			break
		}
		m.clips.Prepend(clip)
		m.clamp()

	case message.EventClipsUpdated:
		gen := m.clips.NextGen()
		cmds = append(cmds, loadClipsCmd(m.client, gen))
	}
	// focus-clip is for the canvas; the sidebar ignores it.

	return m, tea.Batch(cmds...)
}

func (m sidebarModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "j", "down":
		m.cursor++
		m.clamp()
	case "k", "up":
		m.cursor--
		m.clamp()
	case "enter":
		if c, ok := m.cursorClip(); ok {
			return m, emitFocusCmd(m.client, c.ID)
		}
	case "d":
		if c, ok := m.cursorClip(); ok {
			return m, deleteClipCmd(m.client, c.ID)
		}
	case "R":
		gen := m.clips.NextGen()
		return m, loadClipsCmd(m.client, gen)
	}
	return m, nil
}

func (m *sidebarModel) cursorClip() (message.Clip, bool) {
	clips := m.clips.Clips()
	if m.cursor < 0 || m.cursor >= len(clips) {
		return message.Clip{}, false
	}
	return clips[m.cursor], true
}

func (m *sidebarModel) clamp() {
	if m.cursor >= m.clips.Len() {
		m.cursor = m.clips.Len() - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	rows := m.height - 3
	if rows < 1 {
		rows = 1
	}
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	}
	if m.cursor >= m.scroll+rows {
		m.scroll = m.cursor - rows + 1
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

func (m *sidebarModel) setToast(kind toastKind, text string) tea.Cmd {
	m.toast = text
	m.toastKind = kind
	m.toastSeq++
	return clearToastAfter(m.toastSeq)
}

func (m sidebarModel) View() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("stackpad") + styleMuted.Render(fmt.Sprintf("  %d clips", m.clips.Len())))
	b.WriteString("\n")

	clips := m.clips.Clips()
	if len(clips) == 0 {
		b.WriteString(styleMuted.Render("no clips yet"))
	} else {
		rows := m.height - 3
		if rows < 1 {
			rows = 1
		}
		end := m.scroll + rows
		if end > len(clips) {
			end = len(clips)
		}
		for i := m.scroll; i < end; i++ {
			c := clips[i]
			marker := "  "
			if i == m.cursor {
				marker = styleAccent.Render("> ")
			}
			b.WriteString(marker + sidebarRow(c, m.width-2))
			if i != end-1 {
				b.WriteString("\n")
			}
		}
	}

	b.WriteString("\n")
	switch {
	case m.toast != "" && m.toastKind == toastError:
		b.WriteString(styleError.Render(m.toast))
	case m.toast != "":
		b.WriteString(styleMuted.Render(m.toast))
	default:
		b.WriteString(styleMuted.Render("enter: open  d: delete  R: reload  q: quit"))
	}
	return b.String()
}

// sidebarRow is one compact line: first content line, then source and age.
func sidebarRow(c message.Clip, width int) string {
	first, _, _ := strings.Cut(c.Content, "\n")
	first = strings.TrimSpace(first)
	if width > 10 {
		first = truncateRunes(first, width-10)
	}
	return first + "  " + styleMuted.Render(c.Metadata.SourceApp+" "+relAge(c.Metadata.Timestamp))
}
