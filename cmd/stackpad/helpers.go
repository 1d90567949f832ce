package main

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/Bhanujeet/stackpad/internal/bridge"
	"github.com/Bhanujeet/stackpad/internal/ipc"
)

// sourceCLI is the subscribe identity of the non-interactive verbs. They
// connect, invoke and exit; events pushed in between are discarded with the
// connection.
const sourceCLI = "cli"

// dialBridge connects and subscribes to the backend, honoring --socket.
func dialBridge(v *viper.Viper, source string) (*bridge.Client, error) {
	path := v.GetString("socket")
	if path == "" {
		path = ipc.SocketPath()
	}
	conn, err := ipc.DialAt(path)
	if err != nil {
		return nil, fmt.Errorf("connect backend at %s (is it running?): %w", path, err)
	}
	client, err := bridge.New(conn, source)
	if err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}
	return client, nil
}

// truncateRunes cuts s to at most max runes, appending an ellipsis when it
// cut anything. Slicing by byte index would split multibyte runes.
func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "…"
}

// fmtAge renders a timestamp as a short age column value.
func fmtAge(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	age := time.Since(t).Round(time.Second)
	switch {
	case age < time.Minute:
		return fmt.Sprintf("%ds", int(age.Seconds()))
	case age < time.Hour:
		return fmt.Sprintf("%dm", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh", int(age.Hours()))
	}
	return t.Format("2006-01-02")
}
