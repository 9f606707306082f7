package hub

import (
	"sync"

	"github.com/eleven-am/classroom-relay/internal/audio"
	"github.com/eleven-am/classroom-relay/internal/upstream"
)

// StudentSession is the live state for one connected audio source.
// levelDB and speaking are guarded by the registry lock; the chunker
// and sendErrReported are touched only by the session's own dispatcher
// goroutine.
type StudentSession struct {
	conn        Conn
	studentID   string
	deviceLabel string

	levelDB  float64
	speaking bool

	chunker         *audio.Chunker
	sendErrReported bool

	mu     sync.Mutex
	handle upstream.Handle
	closed bool
}

func newStudentSession(conn Conn, studentID, deviceLabel string) *StudentSession {
	return &StudentSession{
		conn:        conn,
		studentID:   studentID,
		deviceLabel: deviceLabel,
		levelDB:     audio.SilenceDB,
		chunker:     audio.NewChunker(),
	}
}

func (s *StudentSession) StudentID() string { return s.studentID }

// adoptHandle installs an asynchronously opened upstream handle. It
// reports false when the session was already torn down, in which case
// the caller must close the handle itself.
func (s *StudentSession) adoptHandle(h upstream.Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.handle = h
	return true
}

func (s *StudentSession) currentHandle() upstream.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle
}

// dropHandle discards the upstream handle after a send failure so
// later frames are dropped instead of retried.
func (s *StudentSession) dropHandle() {
	s.mu.Lock()
	h := s.handle
	s.handle = nil
	s.mu.Unlock()

	if h != nil {
		_ = h.Close()
	}
}

// release tears down the upstream side exactly once. Closing the
// handle also stops its reader task.
func (s *StudentSession) release() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	h := s.handle
	s.handle = nil
	s.mu.Unlock()

	if h != nil {
		_ = h.Close()
	}
}

// StudentInfo is a point-in-time copy of a session's observable state.
type StudentInfo struct {
	StudentID   string
	DeviceLabel string
	LevelDB     float64
	Speaking    bool
}

func (s *StudentSession) info() StudentInfo {
	return StudentInfo{
		StudentID:   s.studentID,
		DeviceLabel: s.deviceLabel,
		LevelDB:     s.levelDB,
		Speaking:    s.speaking,
	}
}
