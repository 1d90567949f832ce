//go:build darwin || windows || linux

package clip

import (
	"log/slog"

	"golang.design/x/clipboard"
)

type systemWriter struct{}

// New returns the system clipboard writer, or a headless no-op writer if the
// display environment is unavailable (e.g. a Linux box without X11 or
// Wayland). clipboard.Init is called here rather than in init() so that
// non-copying commands don't trigger the warning.
func New() Writer {
	if err := clipboard.Init(); err != nil {
		slog.Warn("clipboard unavailable, running headless", "err", err)
		return &headlessWriter{}
	}
	return &systemWriter{}
}

func (w *systemWriter) Name() string { return "system clipboard" }

func (w *systemWriter) WriteText(text string) error {
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

func (w *systemWriter) Close() {}
