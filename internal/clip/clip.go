// Package clip writes to the local system clipboard. The surfaces use it for
// single-clip copy actions; whole-pastebook copies go through the backend so
// the text lands on the backend host's clipboard.
//
// Build constraints select the implementation:
//
//	clip_desktop.go — macOS / Windows / Linux via golang.design/x/clipboard
//	clip_other.go   — headless / container stub
package clip

// Writer is the write side of the system clipboard.
type Writer interface {
	// Name returns a human-readable name for the implementation.
	Name() string

	// WriteText places text on the system clipboard.
	WriteText(text string) error

	// Close releases any resources held by the writer.
	Close()
}
