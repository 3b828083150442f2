package live

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/retain/internal/errors"
	"github.com/vango-dev/retain/pkg/canvas"
	"github.com/vango-dev/retain/pkg/render"
	"github.com/vango-dev/retain/pkg/vdom"
)

// Session is one websocket connection with its own render tree. The tree
// lives on a server-side Document; every mutation is recorded and shipped
// to the client as patches. Clicks from the client are dispatched to the
// Document's listeners.
type Session struct {
	id     uint64
	conn   *websocket.Conn
	codec  Codec
	config SessionConfig
	logger *slog.Logger

	// mu serializes rendering and writes.
	mu       sync.Mutex
	doc      *canvas.Document
	rec      *canvas.Recorder
	renderer *render.Renderer
	seq      uint64

	// onFrame, if set, is called with the type of every decoded frame.
	onFrame func(typ string)

	closed atomic.Bool
	done   chan struct{}
}

func newSession(id uint64, conn *websocket.Conn, codec Codec, cfg SessionConfig, logger *slog.Logger, opts []render.Option) *Session {
	doc := canvas.NewDocument()
	rec := canvas.NewRecorder(doc)
	logger = logger.With("session", id)
	opts = append([]render.Option{render.WithLogger(logger)}, opts...)

	return &Session{
		id:       id,
		conn:     conn,
		codec:    codec,
		config:   cfg,
		logger:   logger,
		doc:      doc,
		rec:      rec,
		renderer: render.New(rec, opts...),
		done:     make(chan struct{}),
	}
}

// ID returns the session identifier.
func (s *Session) ID() uint64 {
	return s.id
}

// Mount renders root and sends the init frame.
func (s *Session) Mount(ctx context.Context, root *vdom.Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.renderer.Render(ctx, root, canvas.NoHandle)
	return s.writeLocked(Frame{
		Type:    FrameInit,
		Root:    s.doc.Root(),
		Patches: s.rec.Drain(),
	})
}

// ReadLoop continuously reads frames from the WebSocket connection and
// dispatches them. It blocks until the connection is closed or an error
// occurs.
func (s *Session) ReadLoop() {
	defer s.Close()

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}

		frame, err := s.codec.Decode(msg)
		if err != nil {
			s.logger.Warn("frame decode error", "error", err)
			s.sendError(errors.FromError(err, "E301"))
			continue
		}
		if s.onFrame != nil {
			s.onFrame(frame.Type)
		}

		switch frame.Type {
		case FrameClick:
			s.handleClick(frame.Handle)

		case FramePing:
			s.send(Frame{Type: FramePong})

		default:
			s.logger.Warn("unknown frame type", "type", frame.Type)
			s.sendError(errors.New("E302").WithDetailf("frame type %q", frame.Type))
		}
	}
}

// handleClick runs the click listeners of h and ships the resulting patches.
// A panicking component is logged and the session closed, since the tree
// may be half-rendered.
func (s *Session) handleClick(h canvas.Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("render panic", "panic", r, "stack", string(debug.Stack()))
			s.Close()
		}
	}()

	if err := s.doc.Click(h); err != nil {
		s.sendErrorLocked(errors.FromError(err, "E104"))
		return
	}

	patches := s.rec.Drain()
	if len(patches) == 0 {
		return
	}
	if err := s.writeLocked(Frame{Type: FramePatch, Patches: patches}); err != nil {
		s.logger.Error("patch write error", "error", err)
	}
}

// WriteLoop sends heartbeat pings until the session is closed.
func (s *Session) WriteLoop() {
	ticker := time.NewTicker(s.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(s.config.WriteTimeout))
			s.mu.Unlock()
			if err != nil {
				s.logger.Debug("heartbeat failed", "error", err)
				s.Close()
				return
			}
		}
	}
}

func (s *Session) send(f Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writeLocked(f); err != nil {
		s.logger.Error("write error", "type", f.Type, "error", err)
	}
}

func (s *Session) sendError(e *errors.RetainError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sendErrorLocked(e)
}

func (s *Session) sendErrorLocked(e *errors.RetainError) {
	msg := e.Message
	if e.Detail != "" {
		msg = e.Detail
	}
	if err := s.writeLocked(Frame{Type: FrameError, Code: e.Code, Message: msg}); err != nil {
		s.logger.Error("error write failed", "error", err)
	}
}

// writeLocked encodes and writes f. The caller holds mu.
func (s *Session) writeLocked(f Frame) error {
	if s.closed.Load() {
		return fmt.Errorf("session %d closed", s.id)
	}
	s.seq++
	f.Seq = s.seq

	data, err := s.codec.Encode(f)
	if err != nil {
		return err
	}
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	return s.conn.WriteMessage(s.codec.MessageType(), data)
}

// Close closes the connection. It is safe to call more than once.
func (s *Session) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	close(s.done)
	s.conn.Close()
	s.logger.Debug("session closed")
}

// release frees the session's tree so its registry entries leave the
// shared metrics.
func (s *Session) release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renderer.Release(context.Background())
}

// Done is closed when the session closes.
func (s *Session) Done() <-chan struct{} {
	return s.done
}
