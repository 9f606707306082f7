package hub

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/eleven-am/classroom-relay/internal/upstream"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeConn struct {
	id   string
	in   chan Frame
	sent chan any

	failSend atomic.Bool
	closed   atomic.Bool
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{
		id:   id,
		in:   make(chan Frame, 16),
		sent: make(chan any, 64),
	}
}

func (c *fakeConn) ID() string { return c.id }

func (c *fakeConn) Read() (Frame, error) {
	f, ok := <-c.in
	if !ok {
		return Frame{}, io.EOF
	}
	return f, nil
}

func (c *fakeConn) Send(v any) error {
	if c.failSend.Load() {
		return fmt.Errorf("send failed")
	}
	c.sent <- v
	return nil
}

func (c *fakeConn) Close() error {
	c.closed.Store(true)
	return nil
}

func (c *fakeConn) pushText(payload string) {
	c.in <- Frame{Data: []byte(payload)}
}

func (c *fakeConn) pushBinary(data []byte) {
	c.in <- Frame{Binary: true, Data: data}
}

func (c *fakeConn) disconnect() {
	close(c.in)
}

type fakeHandle struct {
	mu       sync.Mutex
	frames   [][]byte
	closed   bool
	sendFail bool
}

func (h *fakeHandle) SendFrame(frame []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sendFail {
		return &upstream.SendError{Err: fmt.Errorf("pipe broken")}
	}
	cp := make([]byte, len(frame))
	copy(cp, frame)
	h.frames = append(h.frames, cp)
	return nil
}

func (h *fakeHandle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	return nil
}

func (h *fakeHandle) isClosed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

func (h *fakeHandle) frameCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.frames)
}

type fakeDialer struct {
	mu       sync.Mutex
	err      error
	sendFail bool
	handles  []*fakeHandle
	cbs      []upstream.Callbacks
	opened   chan *fakeHandle
}

func newFakeDialer() *fakeDialer {
	return &fakeDialer{opened: make(chan *fakeHandle, 16)}
}

func (d *fakeDialer) Open(_ context.Context, _ string, cb upstream.Callbacks) (upstream.Handle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return nil, d.err
	}
	h := &fakeHandle{sendFail: d.sendFail}
	d.handles = append(d.handles, h)
	d.cbs = append(d.cbs, cb)
	d.opened <- h
	return h, nil
}

func (r *Registry) studentByID(id string) *StudentSession {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byID[id]
}

func (d *fakeDialer) lastCallbacks() upstream.Callbacks {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cbs[len(d.cbs)-1]
}
