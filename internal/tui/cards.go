package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Bhanujeet/stackpad/internal/message"
)

// collapseLines is the visible-content threshold: longer clips render
// truncated with an expand hint.
const collapseLines = 4

type cardState struct {
	width    int
	selected bool
	cursor   bool
	flash    bool
	expanded bool
}

// renderCard draws one clip: checkbox, capture context, age, then the
// content block, collapsed past the threshold unless expanded.
func renderCard(c message.Clip, st cardState) string {
	check := "[ ]"
	if st.selected {
		check = "[x]"
	}

	source := c.Metadata.SourceApp
	if c.Metadata.WindowTitle != "" {
		source += " · " + c.Metadata.WindowTitle
	}
	header := check + " " + styleMeta.Render(source) + "  " + styleMuted.Render(relAge(c.Metadata.Timestamp))

	body := clipBody(c.Content, st.expanded)

	style := styleCard
	switch {
	case st.flash:
		style = styleFlash
	case st.cursor:
		style = styleCardHot
	}
	w := st.width - 4
	if w > 8 {
		style = style.Width(w)
	}
	return style.Render(header + "\n" + body)
}

// clipBody truncates content past collapseLines with a "(+N lines)" tail.
// Pure view concern; the cache always holds the full content.
func clipBody(content string, expanded bool) string {
	lines := strings.Split(content, "\n")
	if expanded || len(lines) <= collapseLines {
		return content
	}
	shown := strings.Join(lines[:collapseLines], "\n")
	return shown + "\n" + styleMuted.Render(fmt.Sprintf("… (+%d lines)", len(lines)-collapseLines))
}

// truncateRunes cuts s to at most max runes, appending an ellipsis when it
// cut anything. Byte slicing would split multibyte runes mid-sequence.
func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "…"
}

// relAge renders a capture timestamp as a short relative age.
func relAge(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	age := time.Since(t)
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	case age < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(age.Hours()/24))
	}
	return t.Format("2006-01-02")
}
