package backendtest

import (
	"errors"
	"log/slog"
	"net"
	"sync"

	"github.com/Bhanujeet/stackpad/internal/message"
	"github.com/Bhanujeet/stackpad/internal/wire"
)

// Backend serves the bridge protocol backed by a Store. Connections register
// on SUBSCRIBE and receive pushed events; EMIT frames fan out to every other
// subscribed connection, mutations fan out clips-updated the same way.
type Backend struct {
	store *Store

	mu        sync.Mutex
	conns     map[*conn]struct{}
	failures  map[message.Command]*message.InvokeError
	chat      func(prompt string) string
	copiedAll string
}

// New returns a backend over a fresh store.
func New() *Backend {
	return &Backend{
		store:    NewStore(),
		conns:    make(map[*conn]struct{}),
		failures: make(map[message.Command]*message.InvokeError),
	}
}

// Store exposes the backing store for direct seeding and inspection.
func (b *Backend) Store() *Store { return b.store }

// Fail makes every subsequent invocation of cmd answer with err. A nil err
// clears the injection.
func (b *Backend) Fail(cmd message.Command, err *message.InvokeError) {
	b.mu.Lock()
	if err == nil {
		delete(b.failures, cmd)
	} else {
		b.failures[cmd] = err
	}
	b.mu.Unlock()
}

// SetChatReply replaces the canned chat responder.
func (b *Backend) SetChatReply(f func(prompt string) string) {
	b.mu.Lock()
	b.chat = f
	b.mu.Unlock()
}

// Serve accepts connections until the listener closes.
func (b *Backend) Serve(ln net.Listener) {
	for {
		nc, err := ln.Accept()
		if err != nil {
			return
		}
		b.ServeConn(nc)
	}
}

// ServeConn serves a single established connection in the background.
func (b *Backend) ServeConn(nc net.Conn) {
	c := &conn{
		b:      b,
		wc:     wire.New(nc),
		sendCh: make(chan *message.Message, 64),
	}
	go c.serve()
}

// PushCapture stores clip as a fresh capture and pushes clip-captured to
// every subscribed connection. Stands in for the real backend's hotkey
// capture path.
func (b *Backend) PushCapture(clip message.Clip) {
	b.store.AddClip(clip)
	m, err := message.NewEvent(message.EventClipCaptured, clip)
	if err != nil {
		slog.Error("encode clip-captured", "err", err)
		return
	}
	b.broadcast(m, nil)
}

// NotifyClipsUpdated pushes clips-updated to every subscribed connection.
func (b *Backend) NotifyClipsUpdated() {
	m, err := message.NewEvent(message.EventClipsUpdated, nil)
	if err != nil {
		return
	}
	b.broadcast(m, nil)
}

// broadcast delivers m to every subscribed connection except origin.
func (b *Backend) broadcast(m *message.Message, origin *conn) {
	b.mu.Lock()
	targets := make([]*conn, 0, len(b.conns))
	for c := range b.conns {
		if c != origin {
			targets = append(targets, c)
		}
	}
	b.mu.Unlock()

	for _, c := range targets {
		c.send(m)
	}
}

func (b *Backend) register(c *conn) {
	b.mu.Lock()
	b.conns[c] = struct{}{}
	total := len(b.conns)
	b.mu.Unlock()
	slog.Debug("window subscribed", "source", c.source, "total", total)
}

func (b *Backend) unregister(c *conn) {
	b.mu.Lock()
	delete(b.conns, c)
	b.mu.Unlock()
}

func (b *Backend) injectedFailure(cmd message.Command) *message.InvokeError {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures[cmd]
}

func (b *Backend) chatReply(prompt string) string {
	b.mu.Lock()
	f := b.chat
	b.mu.Unlock()
	if f != nil {
		return f(prompt)
	}
	return "echo: " + prompt
}

// conn is one served connection.
type conn struct {
	b      *Backend
	wc     *wire.Conn
	sendCh chan *message.Message
	source string
}

// send queues m for the writer. Must be non-blocking.
func (c *conn) send(m *message.Message) {
	select {
	case c.sendCh <- m:
	default:
		slog.Warn("send channel full, dropping", "source", c.source)
	}
}

func (c *conn) serve() {
	defer c.wc.Close()

	// Writer
	done := make(chan struct{})
	go func() {
		for {
			select {
			case m := <-c.sendCh:
				if err := c.wc.WriteMsg(m); err != nil {
					c.wc.Close()
					return
				}
			case <-done:
				return
			}
		}
	}()

	defer func() {
		c.b.unregister(c)
		close(done)
	}()

	// Reader
	for {
		m, err := c.wc.ReadMsg()
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				slog.Debug("connection closed", "source", c.source, "err", err)
			}
			return
		}

		switch m.Type {
		case message.TypeSubscribe:
			c.source = m.Source
			c.b.register(c)

		case message.TypeInvoke:
			reply, mutated := c.b.handle(m)
			c.send(reply)
			if mutated {
				evt, err := message.NewEvent(message.EventClipsUpdated, nil)
				if err == nil {
					c.b.broadcast(evt, c)
				}
			}

		case message.TypeEmit:
			fwd := &message.Message{Type: message.TypeEvent, Event: m.Event, Payload: m.Payload}
			c.b.broadcast(fwd, c)

		default:
			slog.Debug("unexpected frame", "type", m.Type, "source", c.source)
		}
	}
}
