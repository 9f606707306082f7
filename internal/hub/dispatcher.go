package hub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/eleven-am/classroom-relay/internal/history"
	"github.com/eleven-am/classroom-relay/internal/metrics"
	"github.com/eleven-am/classroom-relay/internal/upstream"
)

// Hub drives the per-connection protocol state machine and wires the
// registry, transcript history and upstream bridge together.
type Hub struct {
	registry *Registry
	history  *history.Log
	dialer   upstream.Dialer
	log      *slog.Logger
	metrics  *metrics.Metrics
}

type HubConfig struct {
	Registry *Registry
	History  *history.Log
	Dialer   upstream.Dialer
	Log      *slog.Logger
	Metrics  *metrics.Metrics
}

func New(cfg HubConfig) *Hub {
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}
	if cfg.Registry == nil {
		cfg.Registry = NewRegistry(cfg.Log, cfg.Metrics)
	}
	if cfg.History == nil {
		cfg.History = history.NewLog(history.DefaultCapacity)
	}
	return &Hub{
		registry: cfg.Registry,
		history:  cfg.History,
		dialer:   cfg.Dialer,
		log:      cfg.Log.With("component", "hub"),
		metrics:  cfg.Metrics,
	}
}

func (h *Hub) Registry() *Registry { return h.registry }

// HandleConn runs the connection's dispatch loop until the connection
// is lost, then tears the session down. A connection that never
// declares a role stays inert until it disconnects.
func (h *Hub) HandleConn(ctx context.Context, conn Conn) {
	log := h.log.With("conn_id", conn.ID())

	var role string
	var sess *StudentSession

	defer func() {
		switch role {
		case RoleAdmin:
			h.registry.RemoveAdmin(conn)
		case RoleStudent:
			if removed := h.registry.RemoveStudent(conn); removed != nil {
				h.registry.Broadcast(NewRanking(Rank(h.registry.SnapshotStudents())))
			}
		}
		log.Info("connection closed", "role", role)
	}()

	for {
		frame, err := conn.Read()
		if err != nil {
			return
		}

		if frame.Binary {
			if role != RoleStudent || sess == nil {
				continue
			}
			h.handleAudio(sess, frame.Data)
			continue
		}

		var msg ControlMessage
		if err := json.Unmarshal(frame.Data, &msg); err != nil {
			// Malformed control payloads are ignored, not fatal.
			continue
		}

		switch msg.Type {
		case TypeHello:
			if role != "" {
				continue
			}
			switch msg.Role {
			case RoleAdmin:
				role = RoleAdmin
				h.handleAdminJoin(conn)
			case RoleStudent:
				role = RoleStudent
				sess = h.handleStudentJoin(ctx, conn, msg)
			}
		case TypeMetrics:
			if role != RoleStudent || sess == nil {
				continue
			}
			h.handleMetrics(conn, msg)
		}
	}
}

// handleAdminJoin registers the admin and replays the current state:
// reset, one hello per known student, then a ranking snapshot.
func (h *Hub) handleAdminJoin(conn Conn) {
	h.registry.AddAdmin(conn)

	_ = conn.Send(NewReset())
	students := h.registry.SnapshotStudents()
	for _, s := range students {
		_ = conn.Send(NewStudentHello(s.StudentID, s.DeviceLabel))
	}
	_ = conn.Send(NewRanking(Rank(students)))
}

func (h *Hub) handleStudentJoin(ctx context.Context, conn Conn, msg ControlMessage) *StudentSession {
	studentID := msg.StudentID
	if studentID == "" {
		studentID = DefaultStudentID
	}

	sess := h.registry.CreateOrReplaceStudent(conn, studentID, msg.DeviceLabel)

	h.registry.Broadcast(NewStudentHello(studentID, msg.DeviceLabel))
	h.registry.Broadcast(NewRanking(Rank(h.registry.SnapshotStudents())))

	if h.dialer == nil {
		h.diagnostic(studentID, "[no transcription provider configured]")
		return sess
	}

	// Opening the upstream session must not block the student's
	// connection from proceeding.
	go h.openUpstream(ctx, sess)

	return sess
}

func (h *Hub) openUpstream(ctx context.Context, sess *StudentSession) {
	studentID := sess.StudentID()

	handle, err := h.dialer.Open(ctx, studentID, upstream.Callbacks{
		OnTranscript: func(e upstream.TranscriptEvent) {
			h.onTranscript(studentID, e)
		},
		OnError: func(err error) {
			h.countUpstreamError(err)
			h.diagnostic(studentID, fmt.Sprintf("[upstream error: %v]", err))
		},
	})
	if err != nil {
		h.countUpstreamError(err)
		h.log.Warn("upstream open failed", "student_id", studentID, "error", err)
		h.diagnostic(studentID, fmt.Sprintf("[upstream open error: %v]", err))
		return
	}

	if h.metrics != nil {
		h.metrics.UpstreamOpens.Inc()
	}

	if !sess.adoptHandle(handle) {
		// Session was superseded or closed while we were dialing.
		_ = handle.Close()
	}
}

func (h *Hub) onTranscript(studentID string, e upstream.TranscriptEvent) {
	h.history.Append(history.Event{
		StudentID: studentID,
		Text:      e.Text,
		Final:     e.Final,
	})
	h.registry.Broadcast(NewTranscript(studentID, e.Text, e.Final))

	if h.metrics != nil {
		h.metrics.TranscriptsReceived.WithLabelValues(strconv.FormatBool(e.Final)).Inc()
	}
}

// diagnostic surfaces an upstream problem to admins as a
// transcript-shaped message and records it in history.
func (h *Hub) diagnostic(studentID, text string) {
	h.history.Append(history.Event{
		StudentID: studentID,
		Text:      text,
		Final:     true,
	})
	h.registry.Broadcast(NewTranscript(studentID, text, true))
}

func (h *Hub) handleMetrics(conn Conn, msg ControlMessage) {
	info, ok := h.registry.UpdateMetrics(conn, msg.LevelDB(), msg.Speaking)
	if !ok {
		return
	}

	// Metrics broadcast strictly precedes the ranking it triggers.
	h.registry.Broadcast(NewMetrics(info.StudentID, roundDB(info.LevelDB), info.Speaking))
	h.registry.Broadcast(NewRanking(Rank(h.registry.SnapshotStudents())))
}

func (h *Hub) handleAudio(sess *StudentSession, data []byte) {
	frames := sess.chunker.Push(data)
	if len(frames) == 0 {
		return
	}

	handle := sess.currentHandle()
	if handle == nil {
		// No upstream session: audio is silently dropped.
		return
	}

	for _, frame := range frames {
		if err := handle.SendFrame(frame); err != nil {
			if h.metrics != nil {
				h.metrics.FrameSendErrors.Inc()
			}
			h.countUpstreamError(err)
			if !sess.sendErrReported {
				sess.sendErrReported = true
				h.diagnostic(sess.StudentID(), fmt.Sprintf("[upstream send error: %v]", err))
			}
			sess.dropHandle()
			return
		}
		if h.metrics != nil {
			h.metrics.FramesForwarded.Inc()
		}
	}
}

func (h *Hub) countUpstreamError(err error) {
	if h.metrics == nil {
		return
	}

	kind := "provider"
	var authErr *upstream.AuthError
	var connErr *upstream.ConnectError
	var sendErr *upstream.SendError
	switch {
	case errors.As(err, &authErr):
		kind = "auth"
	case errors.As(err, &connErr):
		kind = "connect"
	case errors.As(err, &sendErr):
		kind = "send"
	}
	h.metrics.UpstreamErrors.WithLabelValues(kind).Inc()
}
