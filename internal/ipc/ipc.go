// Package ipc provides the local socket channel between the stackpad
// surfaces and the backend. The backend listens; windows and CLI verbs dial.
//
// The channel carries newline-delimited JSON frames (see internal/wire). No
// auth needed — the socket is local and owner-restricted by the OS.
package ipc

import (
	"net"
	"os"
)

// SocketPath returns the platform-appropriate path for the backend socket.
//
//   - Linux:   $XDG_RUNTIME_DIR/stackpad.sock, else $TMPDIR/stackpad.sock
//   - macOS:   $TMPDIR/stackpad.sock
//   - Windows: \\.\pipe\stackpad (named pipe)
//
// Override with $STACKPAD_SOCKET.
func SocketPath() string {
	if s := os.Getenv("STACKPAD_SOCKET"); s != "" {
		return s
	}
	return socketPath()
}

// IsRunning reports whether a backend appears to be listening on the socket.
// It does a cheap dial-and-close; no data is exchanged.
func IsRunning() bool {
	return IsRunningAt(SocketPath())
}

// IsRunningAt is IsRunning against an explicit socket path.
func IsRunningAt(path string) bool {
	c, err := dialIPC(path)
	if err != nil {
		return false
	}
	_ = c.Close()
	return true
}

// Listen creates and returns a net.Listener on the socket path, removing any
// stale socket file first.
func Listen() (net.Listener, error) {
	path := SocketPath()
	// Remove stale socket from a previous (crashed) run.
	_ = os.Remove(path)
	return listenIPC(path)
}

// Dial connects to the backend socket.
func Dial() (net.Conn, error) {
	return dialIPC(SocketPath())
}

// DialAt connects to a backend socket at an explicit path.
func DialAt(path string) (net.Conn, error) {
	return dialIPC(path)
}

// ListenAt listens at an explicit path, removing any stale socket file first.
func ListenAt(path string) (net.Listener, error) {
	_ = os.Remove(path)
	return listenIPC(path)
}
