// Package bridge implements the invocation and event channel a stackpad
// surface uses to talk to the backend.
//
// A Client owns one connection. Invocations are correlated by id: Invoke
// registers a pending slot, writes an INVOKE frame and blocks until the
// matching RESULT or ERROR frame arrives or the context ends. Abandoning an
// invocation (context cancellation) forgets the slot, so a late response is
// discarded instead of being delivered to a caller that moved on. EVENT
// frames are delivered in arrival order on the Events channel.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Bhanujeet/stackpad/internal/ipc"
	"github.com/Bhanujeet/stackpad/internal/message"
	"github.com/Bhanujeet/stackpad/internal/wire"
)

// DefaultTimeout bounds ordinary invocations issued by surfaces and CLI
// verbs. AI-backed commands use AITimeout instead.
const (
	DefaultTimeout = 10 * time.Second
	AITimeout      = 60 * time.Second
)

// ErrClosed is returned by operations on a closed client.
var ErrClosed = errors.New("bridge: connection closed")

type response struct {
	result json.RawMessage
	err    *message.InvokeError
}

// Client is a connected, subscribed bridge endpoint. Safe for concurrent use.
type Client struct {
	wc     *wire.Conn
	source string
	sendCh chan *message.Message
	events chan *message.Message
	done   chan struct{}

	nextID atomic.Uint64

	mu      sync.Mutex
	pending map[uint64]chan response
	err     error

	closeOnce sync.Once
}

// Dial connects to the backend socket and subscribes as source.
func Dial(source string) (*Client, error) {
	conn, err := ipc.Dial()
	if err != nil {
		return nil, fmt.Errorf("dial backend: %w", err)
	}
	return New(conn, source)
}

// New wraps an established connection, sends the SUBSCRIBE frame and starts
// the read and write loops. The client owns conn from here on.
func New(conn net.Conn, source string) (*Client, error) {
	c := &Client{
		wc:      wire.New(conn),
		source:  source,
		sendCh:  make(chan *message.Message, 8),
		events:  make(chan *message.Message, 32),
		done:    make(chan struct{}),
		pending: make(map[uint64]chan response),
	}

	if err := c.wc.WriteMsg(&message.Message{Type: message.TypeSubscribe, Source: source}); err != nil {
		c.wc.Close()
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	go c.writeLoop()
	go c.readLoop()
	return c, nil
}

// Source returns the window identity this client subscribed as.
func (c *Client) Source() string { return c.source }

// Events returns the channel carrying EVENT frames pushed by the backend.
// The channel is never closed while the client is open; after Close it stops
// receiving.
func (c *Client) Events() <-chan *message.Message { return c.events }

// Done is closed when the connection shuts down, whichever side initiated it.
func (c *Client) Done() <-chan struct{} { return c.done }

// Close tears down the connection. Pending invocations fail with ErrClosed.
func (c *Client) Close() error {
	c.shutdown(ErrClosed)
	return nil
}

// Invoke runs cmd on the backend and decodes the result into result (ignored
// when nil). A *message.InvokeError is returned as-is so callers can branch
// on its kind with errors.As.
func (c *Client) Invoke(ctx context.Context, cmd message.Command, args, result any) error {
	id := c.nextID.Add(1)
	m, err := message.NewInvoke(id, cmd, args)
	if err != nil {
		return err
	}

	ch := make(chan response, 1)
	c.mu.Lock()
	if c.err != nil {
		err := c.err
		c.mu.Unlock()
		return err
	}
	c.pending[id] = ch
	c.mu.Unlock()

	select {
	case c.sendCh <- m:
	case <-ctx.Done():
		c.forget(id)
		return ctx.Err()
	case <-c.done:
		c.forget(id)
		return c.terminalErr()
	}

	select {
	case resp := <-ch:
		if resp.err != nil {
			return resp.err
		}
		if result != nil && len(resp.result) > 0 {
			if err := json.Unmarshal(resp.result, result); err != nil {
				return fmt.Errorf("decode %s result: %w", cmd, err)
			}
		}
		return nil
	case <-ctx.Done():
		c.forget(id)
		return ctx.Err()
	case <-c.done:
		c.forget(id)
		return c.terminalErr()
	}
}

// Emit sends a window-to-window event. The backend fans it out to the other
// subscribed windows; the sender receives nothing back.
func (c *Client) Emit(event message.Event, payload any) error {
	m, err := message.NewEvent(event, payload)
	if err != nil {
		return err
	}
	m.Type = message.TypeEmit

	select {
	case c.sendCh <- m:
		return nil
	case <-c.done:
		return c.terminalErr()
	}
}

func (c *Client) writeLoop() {
	for {
		select {
		case msg := <-c.sendCh:
			if err := c.wc.WriteMsg(msg); err != nil {
				slog.Error("bridge write failed", "err", err)
				c.shutdown(fmt.Errorf("bridge write: %w", err))
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *Client) readLoop() {
	for {
		msg, err := c.wc.ReadMsg()
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				slog.Info("backend closed connection", "err", err)
			}
			c.shutdown(fmt.Errorf("bridge read: %w", err))
			return
		}

		switch msg.Type {
		case message.TypeResult:
			c.dispatch(msg.ID, response{result: msg.Result})

		case message.TypeError:
			e := msg.Error
			if e == nil {
				e = message.Errorf(message.KindInternal, "malformed error frame")
			}
			c.dispatch(msg.ID, response{err: e})

		case message.TypeEvent:
			select {
			case c.events <- msg:
			case <-c.done:
				return
			}

		default:
			slog.Debug("unexpected frame from backend", "type", msg.Type)
		}
	}
}

func (c *Client) dispatch(id uint64, r response) {
	c.mu.Lock()
	ch, ok := c.pending[id]
	delete(c.pending, id)
	c.mu.Unlock()
	if !ok {
		// Abandoned invocation; the caller moved on.
		slog.Debug("discarding response for abandoned invocation", "id", id)
		return
	}
	ch <- r
}

func (c *Client) forget(id uint64) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

func (c *Client) terminalErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	return ErrClosed
}

func (c *Client) shutdown(err error) {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.err = err
		c.pending = make(map[uint64]chan response)
		c.mu.Unlock()

		// Pending invocations observe done and report the terminal error.
		close(c.done)
		_ = c.wc.Close()
	})
}
