package clip

// headlessWriter is a no-op clipboard writer for environments without a
// display server (headless Linux servers, containers, etc.). Writes are
// silently discarded.
type headlessWriter struct{}

func (w *headlessWriter) Name() string             { return "headless (no-op)" }
func (w *headlessWriter) WriteText(_ string) error { return nil }
func (w *headlessWriter) Close()                   {}
