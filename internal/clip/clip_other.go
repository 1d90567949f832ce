//go:build !darwin && !windows && !linux

package clip

// New returns a no-op writer suitable for headless platforms.
func New() Writer {
	return &headlessWriter{}
}
