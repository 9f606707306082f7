package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// Dialer opens one streaming transcription session per student. The hub
// depends on this interface so tests can substitute a fake provider.
type Dialer interface {
	Open(ctx context.Context, studentID string, cb Callbacks) (Handle, error)
}

// Handle is one live upstream session. SendFrame forwards a fixed-size
// PCM16 frame; Close is best-effort and always succeeds from the
// caller's point of view.
type Handle interface {
	SendFrame(frame []byte) error
	Close() error
}

type Client struct {
	cfg    Config
	tokens *TokenProvider
	log    *slog.Logger
}

func NewClient(cfg Config, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	cfg = cfg.withDefaults()
	return &Client{
		cfg:    cfg,
		tokens: NewTokenProvider(cfg),
		log:    log.With("component", "upstream"),
	}
}

// Open acquires a streaming token, dials the realtime endpoint and
// starts the read loop. Failures are typed per the error taxonomy and
// are non-fatal to the caller.
func (c *Client) Open(ctx context.Context, studentID string, cb Callbacks) (Handle, error) {
	if c.cfg.APIKey == "" {
		return nil, &AuthError{Err: fmt.Errorf("no api key configured")}
	}

	token, err := c.tokens.Fetch(ctx)
	if err != nil {
		return nil, &AuthError{Err: err}
	}

	endpoint, err := realtimeEndpoint(c.cfg, token)
	if err != nil {
		return nil, &ConnectError{Err: err}
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return nil, &ConnectError{Err: err}
	}

	s := &Session{
		conn:      conn,
		studentID: studentID,
		cb:        cb,
		log:       c.log.With("student_id", studentID),
		done:      make(chan struct{}),
	}

	go s.readLoop()

	s.log.Info("upstream session opened")
	return s, nil
}

func realtimeEndpoint(cfg Config, token string) (string, error) {
	u, err := url.Parse(cfg.RealtimeURL)
	if err != nil {
		return "", fmt.Errorf("parse realtime url: %w", err)
	}
	q := u.Query()
	q.Set("sample_rate", fmt.Sprintf("%d", cfg.SampleRate))
	q.Set("encoding", "pcm_s16le")
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Session is one outbound streaming connection. The read loop runs
// until the connection closes; teardown is driven by Close, never by
// the read loop itself.
type Session struct {
	conn      *websocket.Conn
	studentID string
	cb        Callbacks
	log       *slog.Logger

	writeMu sync.Mutex
	once    sync.Once
	done    chan struct{}
}

func (s *Session) SendFrame(frame []byte) error {
	select {
	case <-s.done:
		return &SendError{Err: fmt.Errorf("session closed")}
	default:
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		return &SendError{Err: err}
	}
	return nil
}

func (s *Session) readLoop() {
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			select {
			case <-s.done:
			default:
				s.log.Debug("upstream read loop ended", "error", err)
			}
			return
		}

		var msg serverMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		s.dispatch(msg)
	}
}

func (s *Session) dispatch(msg serverMessage) {
	if msg.Error != "" {
		if s.cb.OnError != nil {
			s.cb.OnError(fmt.Errorf("provider error: %s", msg.Error))
		}
		return
	}

	switch msg.Type {
	case "Begin":
		s.log.Info("upstream session began", "session_id", msg.ID, "expires_at", msg.ExpiresAt)
		if s.cb.OnBegin != nil {
			s.cb.OnBegin(msg.ID)
		}
	case "Turn":
		text := strings.TrimSpace(msg.Transcript)
		if text == "" {
			return
		}
		if s.cb.OnTranscript != nil {
			s.cb.OnTranscript(TranscriptEvent{
				Text:  text,
				Final: msg.EndOfTurn,
				Start: msg.Start,
				End:   msg.End,
			})
		}
	case "Termination":
		s.log.Info("upstream session terminated",
			"audio_seconds", msg.AudioDurationSeconds,
			"session_seconds", msg.SessionDurationSeconds)
		if s.cb.OnTermination != nil {
			s.cb.OnTermination(msg.AudioDurationSeconds, msg.SessionDurationSeconds)
		}
	}
}

// Close sends a best-effort termination notice, then closes the
// connection. Errors during close are swallowed.
func (s *Session) Close() error {
	s.once.Do(func() {
		close(s.done)

		s.writeMu.Lock()
		_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if data, err := json.Marshal(terminateMessage{Type: "Terminate"}); err == nil {
			_ = s.conn.WriteMessage(websocket.TextMessage, data)
		}
		s.writeMu.Unlock()

		_ = s.conn.Close()
		s.log.Info("upstream session closed")
	})
	return nil
}
