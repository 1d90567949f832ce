package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Bhanujeet/stackpad/internal/message"
)

func (m canvasModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editArea.SetWidth(min(64, msg.Width-8))
		m.chatView.Width = min(64, msg.Width-8)
		m.clampCursor()
		return m, nil

	case spinner.TickMsg:
		if m.busy == "" {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case clearToastMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil

	case clearFlashMsg:
		if msg.seq == m.flashSeq {
			m.flashID = ""
		}
		return m, nil

	case backendEventMsg:
		return m.applyEvent(msg.frame)

	case bridgeClosedMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.applyResult(msg)
}

// applyResult folds one backend response into the model.
func (m canvasModel) applyResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clipsLoadedMsg:
		if msg.err != nil {
			slog.Error("load clips failed", "err", msg.err)
			return m, m.setToast(toastError, "load failed: "+msg.err.Error())
		}
		if !m.clips.Replace(msg.gen, msg.clips) {
			// Superseded by a newer load.
			return m, nil
		}
		m.sel.Clear()
		m.pruneExpanded()
		m.clampCursor()
		return m, nil

	case booksLoadedMsg:
		if msg.err != nil {
			slog.Error("load pastebooks failed", "err", msg.err)
			return m, m.setToast(toastError, "load pastebooks failed: "+msg.err.Error())
		}
		m.books.SetEntries(msg.entries)
		m.books.SetActive(msg.active)
		if m.bookCursor >= m.books.Len() {
			m.bookCursor = m.books.Len() - 1
		}
		if m.bookCursor < 0 {
			m.bookCursor = 0
		}
		return m, nil

	case clipDeletedMsg:
		if msg.err != nil {
			return m, m.failToast("delete", msg.err)
		}
		m.clips.Remove(msg.id)
		m.sel.Set(msg.id, false)
		m.clampCursor()
		return m, m.setToast(toastSuccess, "clip deleted")

	case bulkDeleteDoneMsg:
		for _, id := range msg.deleted {
			m.clips.Remove(id)
			m.sel.Set(id, false)
		}
		m.clampCursor()
		if len(msg.failed) > 0 {
			slog.Error("bulk delete partially failed",
				"deleted", len(msg.deleted), "failed", len(msg.failed), "err", msg.err)
			return m, m.setToast(toastError,
				fmt.Sprintf("deleted %d clips, %d failed", len(msg.deleted), len(msg.failed)))
		}
		return m, m.setToast(toastSuccess, fmt.Sprintf("deleted %d clips", len(msg.deleted)))

	case contentSavedMsg:
		if msg.err != nil {
			return m, m.failToast("save", msg.err)
		}
		m.clips.SetContent(msg.id, msg.content)
		return m, m.setToast(toastSuccess, "clip updated")

	case reorderDoneMsg:
		if msg.err != nil {
			// The optimistic order may be wrong now; backend truth wins.
			slog.Warn("reorder rejected, reloading", "err", msg.err)
			return m, tea.Batch(m.failToast("reorder", msg.err), m.reloadClips())
		}
		return m, nil

	case mergeDoneMsg:
		m.busy = ""
		if msg.err != nil {
			return m, m.failToast("merge", msg.err)
		}
		// Merge result identity and position are backend-determined.
		return m, tea.Batch(m.setToast(toastSuccess, "clips merged"), m.reloadAll())

	case clearAllDoneMsg:
		m.busy = ""
		if msg.err != nil {
			return m, m.failToast("clear", msg.err)
		}
		return m, tea.Batch(m.setToast(toastSuccess, "pastebook cleared"), m.reloadAll())

	case copyAllDoneMsg:
		if msg.err != nil {
			return m, m.failToast("copy all", msg.err)
		}
		return m, m.setToast(toastSuccess, "all clips copied")

	case copiedLocallyMsg:
		if msg.err != nil {
			return m, m.failToast("copy", msg.err)
		}
		return m, m.setToast(toastSuccess, "copied")

	case bookSwitchedMsg:
		if msg.err != nil {
			return m, m.failToast("switch pastebook", msg.err)
		}
		return m, m.reloadAll()

	case bookCreatedMsg:
		if msg.err != nil {
			return m, m.failToast("create pastebook", msg.err)
		}
		return m, tea.Batch(m.setToast(toastSuccess, "created "+msg.book.Name), m.reloadAll())

	case bookRenamedMsg:
		if msg.err != nil {
			return m, m.failToast("rename pastebook", msg.err)
		}
		return m, tea.Batch(m.setToast(toastSuccess, "pastebook renamed"), m.reloadAll())

	case bookDeletedMsg:
		if msg.err != nil {
			return m, m.failToast("delete pastebook", msg.err)
		}
		return m, tea.Batch(m.setToast(toastSuccess, "pastebook deleted"), m.reloadAll())

	case magicSortDoneMsg:
		m.busy = ""
		if msg.err != nil {
			return m, m.failToast("magic sort", msg.err)
		}
		return m, tea.Batch(m.setToast(toastSuccess, "clips sorted"), m.reloadClips())

	case chatReplyMsg:
		m.busy = ""
		if msg.err != nil {
			return m, m.failToast("chat", msg.err)
		}
		m.chat = append(m.chat, chatLine{role: "ai", text: msg.reply})
		m.chatView.SetContent(renderChatTranscript(m.chat, m.chatView.Width))
		m.chatView.GotoBottom()
		return m, nil

	case apiKeySavedMsg:
		if msg.err != nil {
			return m, m.failToast("save API key", msg.err)
		}
		m.modal = modalNone
		m.keyInput.Blur()
		return m, m.setToast(toastSuccess, "API key saved")

	case modelsLoadedMsg:
		if msg.err != nil {
			slog.Warn("load models failed", "err", msg.err)
			return m, nil
		}
		m.models = msg.models
		return m, nil

	case focusEmittedMsg:
		if msg.err != nil {
			return m, m.failToast("focus", msg.err)
		}
		return m, nil
	}

	return m, nil
}

// failToast logs the failure and surfaces it on the status line. An api_key
// error additionally opens the settings modal, since the fix lives there.
func (m *canvasModel) failToast(op string, err error) tea.Cmd {
	slog.Error(op+" failed", "err", err)
	cmd := m.setToast(toastError, op+" failed: "+err.Error())

	var ie *message.InvokeError
	if errors.As(err, &ie) && ie.Kind == message.KindAPIKey {
		m.openSettings()
		return tea.Batch(cmd, loadModelsCmd(m.client), textinput.Blink)
	}
	return cmd
}

func (m *canvasModel) openSettings() {
	m.modal = modalSettings
	m.keyInput.SetValue("")
	m.keyInput.Focus()
}

func (m *canvasModel) pruneExpanded() {
	for id := range m.expanded {
		if _, ok := m.clips.Get(id); !ok {
			delete(m.expanded, id)
		}
	}
}

// applyEvent folds a backend push into the model and re-arms the event wait.
func (m canvasModel) applyEvent(frame *message.Message) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{waitEventCmd(m.client)}

	switch frame.Event {
	case message.EventClipCaptured:
		var clip message.Clip
		if err := frame.DecodePayload(&clip); err != nil {
			slog.Error("bad clip-captured payload", "err", err)
			break
		}
		m.clips.Prepend(clip)
		m.clampCursor()

	case message.EventClipsUpdated:
		// Cross-window mutation; cheapest safe reconciliation is a reload.
		cmds = append(cmds, m.reloadAll())

	case message.EventFocusClip:
		var p message.FocusPayload
		if err := frame.DecodePayload(&p); err != nil {
			slog.Error("bad focus-clip payload", "err", err)
			break
		}
		cmds = append(cmds, m.focusClip(p.ID))

	default:
		slog.Debug("ignoring unknown event", "event", frame.Event)
	}

	return m, tea.Batch(cmds...)
}

// focusClip moves the cursor to the clip and flashes its card. An active
// search that hides the clip is cleared first.
func (m *canvasModel) focusClip(id string) tea.Cmd {
	idx := clipIndex(m.visible(), id)
	if idx < 0 && m.search.Value() != "" {
		m.search.SetValue("")
		m.searching = false
		idx = clipIndex(m.visible(), id)
	}
	if idx < 0 {
		return nil
	}
	m.cursor = idx
	m.clampCursor()
	m.flashID = id
	m.flashSeq++
	return clearFlashAfter(m.flashSeq)
}

func clipIndex(clips []message.Clip, id string) int {
	for i, c := range clips {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (m canvasModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKey(msg)
	}
	switch m.modal {
	case modalNone:
		return m.handleListKey(msg)
	case modalEdit:
		return m.handleEditKey(msg)
	case modalBooks:
		return m.handleBooksKey(msg)
	case modalBookName:
		return m.handleBookNameKey(msg)
	case modalConfirmDeleteBook:
		return m.handleConfirmKey(msg, func(m *canvasModel) tea.Cmd {
			m.modal = modalBooks
			return deleteBookCmd(m.client, m.bookDeleteID)
		}, modalBooks)
	case modalConfirmClear:
		return m.handleConfirmKey(msg, func(m *canvasModel) tea.Cmd {
			m.modal = modalNone
			m.busy = "clear"
			return tea.Batch(clearAllCmd(m.client), m.spin.Tick)
		}, modalNone)
	case modalChat:
		return m.handleChatKey(msg)
	case modalSettings:
		return m.handleSettingsKey(msg)
	}
	return m, nil
}

func (m canvasModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "j", "down":
		m.cursor++
		m.clampCursor()
	case "k", "up":
		m.cursor--
		m.clampCursor()

	case " ":
		if c, ok := m.cursorClip(); ok {
			m.sel.Toggle(c.ID)
		}
	case "a":
		m.sel.SelectAll(m.clips.IDs())
	case "A":
		m.sel.Clear()

	case "/":
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink
	case "esc":
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.clampCursor()
		}

	case "enter":
		if c, ok := m.cursorClip(); ok {
			m.expanded[c.ID] = !m.expanded[c.ID]
		}

	case "e":
		if c, ok := m.cursorClip(); ok {
			m.modal = modalEdit
			m.editID = c.ID
			m.editArea.SetValue(c.Content)
			m.editArea.Focus()
			return m, textinput.Blink
		}

	case "d":
		if c, ok := m.cursorClip(); ok {
			return m, deleteClipCmd(m.client, c.ID)
		}
	case "D":
		if !m.sel.CanDelete() {
			return m, m.setToast(toastInfo, "nothing selected")
		}
		return m, bulkDeleteCmd(m.client, m.sel.Ordered(m.clips.IDs()))

	case "M":
		if m.busy != "" {
			return m, nil
		}
		if !m.sel.CanMerge() {
			return m, m.setToast(toastInfo, "select at least 2 clips to merge")
		}
		ids := m.sel.Ordered(m.clips.IDs())
		m.busy = "merge"
		return m, tea.Batch(mergeCmd(m.client, ids), m.spin.Tick)

	case "J":
		return m.moveClip(1)
	case "K":
		return m.moveClip(-1)

	case "p":
		m.modal = modalBooks
		if i := m.books.ActiveIndex(); i >= 0 {
			m.bookCursor = i
		}
		return m, loadBooksCmd(m.client)

	case "y":
		if c, ok := m.cursorClip(); ok {
			return m, copyLocalCmd(m.clipb, c.Content)
		}
	case "Y":
		return m, copyAllCmd(m.client)

	case "x":
		if m.busy != "" {
			return m, nil
		}
		if m.clips.Len() == 0 {
			return m, m.setToast(toastInfo, "nothing to clear")
		}
		m.modal = modalConfirmClear

	case "s":
		if m.busy != "" {
			return m, nil
		}
		m.busy = "sort"
		return m, tea.Batch(magicSortCmd(m.client), m.spin.Tick)

	case "c":
		m.modal = modalChat
		m.chatInput.Focus()
		m.chatView.SetContent(renderChatTranscript(m.chat, m.chatView.Width))
		m.chatView.GotoBottom()
		return m, textinput.Blink

	case "S":
		m.openSettings()
		return m, tea.Batch(loadModelsCmd(m.client), textinput.Blink)

	case "R":
		return m, m.reloadAll()
	}

	return m, nil
}

// moveClip swaps the cursor clip with its neighbor and confirms the new
// order with the backend. A rejected reorder falls back to a reload.
func (m canvasModel) moveClip(delta int) (tea.Model, tea.Cmd) {
	if m.search.Value() != "" {
		return m, m.setToast(toastInfo, "clear search to reorder")
	}
	ids := m.clips.IDs()
	i := m.cursor
	j := i + delta
	if i < 0 || i >= len(ids) || j < 0 || j >= len(ids) {
		return m, nil
	}
	ids[i], ids[j] = ids[j], ids[i]
	m.clips.Reorder(ids)
	m.cursor = j
	m.clampCursor()
	return m, reorderCmd(m.client, ids)
}

func (m canvasModel) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.clampCursor()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.cursor = 0
	m.scroll = 0
	return m, cmd
}

func (m canvasModel) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.modal = modalNone
		m.editArea.Blur()
		return m, nil
	case "ctrl+s":
		content := m.editArea.Value()
		if strings.TrimSpace(content) == "" {
			// Known-invalid input: no round-trip.
			return m, m.setToast(toastInfo, "clip content cannot be empty")
		}
		m.modal = modalNone
		m.editArea.Blur()
		return m, saveContentCmd(m.client, m.editID, content)
	}
	var cmd tea.Cmd
	m.editArea, cmd = m.editArea.Update(msg)
	return m, cmd
}

func (m canvasModel) handleBooksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "p":
		m.modal = modalNone
		return m, nil
	case "j", "down":
		if m.bookCursor < m.books.Len()-1 {
			m.bookCursor++
		}
	case "k", "up":
		if m.bookCursor > 0 {
			m.bookCursor--
		}
	case "enter":
		entries := m.books.Entries()
		if m.bookCursor >= len(entries) {
			return m, nil
		}
		target := entries[m.bookCursor]
		m.modal = modalNone
		if active := m.books.Active(); active != nil && active.ID == target.ID {
			return m, nil
		}
		return m, switchBookCmd(m.client, target.ID)
	case "n":
		m.modal = modalBookName
		m.bookRenameID = ""
		m.bookInput.SetValue("")
		m.bookInput.Focus()
		return m, textinput.Blink
	case "r":
		entries := m.books.Entries()
		if m.bookCursor >= len(entries) {
			return m, nil
		}
		m.modal = modalBookName
		m.bookRenameID = entries[m.bookCursor].ID
		m.bookInput.SetValue(entries[m.bookCursor].Name)
		m.bookInput.Focus()
		return m, textinput.Blink
	case "x":
		entries := m.books.Entries()
		if m.bookCursor >= len(entries) {
			return m, nil
		}
		m.modal = modalConfirmDeleteBook
		m.bookDeleteID = entries[m.bookCursor].ID
	}
	return m, nil
}

func (m canvasModel) handleBookNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.modal = modalBooks
		m.bookInput.Blur()
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.bookInput.Value())
		if name == "" {
			return m, m.setToast(toastInfo, "pastebook name cannot be empty")
		}
		m.modal = modalBooks
		m.bookInput.Blur()
		if m.bookRenameID != "" {
			return m, renameBookCmd(m.client, m.bookRenameID, name)
		}
		return m, createBookCmd(m.client, name)
	}
	var cmd tea.Cmd
	m.bookInput, cmd = m.bookInput.Update(msg)
	return m, cmd
}

// handleConfirmKey reduces a yes/no modal: confirm runs on y/enter, anything
// declining returns to the fallback modal.
func (m canvasModel) handleConfirmKey(msg tea.KeyMsg, confirm func(*canvasModel) tea.Cmd, fallback canvasModal) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		cmd := confirm(&m)
		return m, cmd
	case "n", "esc", "q":
		m.modal = fallback
		return m, nil
	}
	return m, nil
}

func (m canvasModel) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.modal = modalNone
		m.chatInput.Blur()
		return m, nil
	case "enter":
		if m.busy != "" {
			return m, nil
		}
		prompt := strings.TrimSpace(m.chatInput.Value())
		if prompt == "" {
			return m, m.setToast(toastInfo, "prompt cannot be empty")
		}
		m.chat = append(m.chat, chatLine{role: "you", text: prompt})
		m.chatView.SetContent(renderChatTranscript(m.chat, m.chatView.Width))
		m.chatView.GotoBottom()
		m.chatInput.SetValue("")
		m.busy = "chat"
		return m, tea.Batch(chatCmd(m.client, prompt), m.spin.Tick)
	case "pgup", "pgdown", "ctrl+u", "ctrl+d":
		var cmd tea.Cmd
		m.chatView, cmd = m.chatView.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

func (m canvasModel) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.modal = modalNone
		m.keyInput.Blur()
		return m, nil
	case "enter":
		key := strings.TrimSpace(m.keyInput.Value())
		if key == "" {
			return m, m.setToast(toastInfo, "API key cannot be empty")
		}
		return m, saveAPIKeyCmd(m.client, key)
	}
	var cmd tea.Cmd
	m.keyInput, cmd = m.keyInput.Update(msg)
	return m, cmd
}
