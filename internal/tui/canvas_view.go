package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m canvasModel) View() string {
	var b strings.Builder

	b.WriteString(m.headerView())
	b.WriteString("\n")

	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}

	switch m.modal {
	case modalNone:
		b.WriteString(m.listView())
	case modalEdit:
		b.WriteString(renderModalBox(m.width, "edit clip",
			m.editArea.View()+"\n\n"+styleMuted.Render("ctrl+s: save   esc: cancel")))
	case modalBooks:
		b.WriteString(m.booksModalView())
	case modalBookName:
		title := "new pastebook"
		if m.bookRenameID != "" {
			title = "rename pastebook"
		}
		b.WriteString(renderModalBox(m.width, title,
			m.bookInput.View()+"\n\n"+styleMuted.Render("enter: save   esc: back")))
	case modalConfirmDeleteBook:
		b.WriteString(renderConfirmModal(m.width, "delete pastebook",
			"Delete this pastebook and all its clips?"))
	case modalConfirmClear:
		b.WriteString(renderConfirmModal(m.width, "clear all clips",
			fmt.Sprintf("Delete all %d clips in %q?", m.clips.Len(), m.books.ActiveName())))
	case modalChat:
		b.WriteString(renderModalBox(m.width, "chat",
			m.chatView.View()+"\n"+m.chatInput.View()+"\n\n"+
				styleMuted.Render("enter: send   pgup/pgdn: scroll   esc: close")))
	case modalSettings:
		b.WriteString(m.settingsModalView())
	}

	b.WriteString("\n")
	b.WriteString(m.statusView())
	return b.String()
}

func (m canvasModel) headerView() string {
	title := styleTitle.Render("stackpad")
	book := m.books.ActiveName()
	if book == "" {
		book = "…"
	}
	info := styleMuted.Render(fmt.Sprintf("  %s · %d clips", book, m.clips.Len()))
	return title + info
}

func (m canvasModel) listView() string {
	vis := m.visible()
	if len(vis) == 0 {
		if q := m.search.Value(); q != "" {
			return styleMuted.Render(fmt.Sprintf("no clips match %q", q))
		}
		return styleMuted.Render("no clips yet — copy something to capture it")
	}

	end := m.scroll + m.visibleRows()
	if end > len(vis) {
		end = len(vis)
	}

	cards := make([]string, 0, end-m.scroll)
	for i := m.scroll; i < end; i++ {
		c := vis[i]
		cards = append(cards, renderCard(c, cardState{
			width:    m.width,
			selected: m.sel.Has(c.ID),
			cursor:   i == m.cursor,
			flash:    c.ID == m.flashID,
			expanded: m.expanded[c.ID],
		}))
	}
	if end < len(vis) {
		cards = append(cards, styleMuted.Render(fmt.Sprintf("  … %d more", len(vis)-end)))
	}
	return strings.Join(cards, "\n")
}

func (m canvasModel) booksModalView() string {
	var rows []string
	active := m.books.Active()
	for i, e := range m.books.Entries() {
		marker := "  "
		if active != nil && e.ID == active.ID {
			marker = styleAccent.Render("* ")
		}
		row := fmt.Sprintf("%s%s (%d)", marker, e.Name, e.Count)
		if i == m.bookCursor {
			row = styleAccent.Render("> ") + row
		} else {
			row = "  " + row
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		rows = append(rows, styleMuted.Render("no pastebooks"))
	}
	body := strings.Join(rows, "\n") + "\n\n" +
		styleMuted.Render("enter: switch   n: new   r: rename   x: delete   esc: close")
	return renderModalBox(m.width, "pastebooks", body)
}

func (m canvasModel) settingsModalView() string {
	var body strings.Builder
	body.WriteString(m.keyInput.View())
	body.WriteString("\n")
	if len(m.models) > 0 {
		body.WriteString("\n" + styleMuted.Render("available models:") + "\n")
		for _, model := range m.models {
			body.WriteString("  " + model + "\n")
		}
	}
	body.WriteString("\n" + styleMuted.Render("enter: save key   esc: close"))
	return renderModalBox(m.width, "settings", body.String())
}

func (m canvasModel) statusView() string {
	var parts []string
	if m.busy != "" {
		parts = append(parts, m.spin.View()+m.busy+"…")
	}
	if m.toast != "" {
		switch m.toastKind {
		case toastError:
			parts = append(parts, styleError.Render(m.toast))
		case toastSuccess:
			parts = append(parts, styleSuccess.Render(m.toast))
		default:
			parts = append(parts, m.toast)
		}
	}
	if n := m.sel.Count(); n > 0 {
		parts = append(parts, styleAccent.Render(fmt.Sprintf("%d selected", n)))
	}
	if len(parts) == 0 {
		parts = append(parts, styleMuted.Render(
			"j/k: move  space: select  /: search  e: edit  d/D: delete  M: merge  p: books  s: sort  c: chat  q: quit"))
	}
	return strings.Join(parts, "  ")
}

func renderChatTranscript(lines []chatLine, width int) string {
	if len(lines) == 0 {
		return styleMuted.Render("ask anything about the clips in this pastebook")
	}
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		label := styleAccent.Render(l.role + ":")
		b.WriteString(label + " " + lipgloss.NewStyle().Width(width-len(l.role)-2).Render(l.text))
	}
	return b.String()
}
