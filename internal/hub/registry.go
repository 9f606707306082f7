package hub

import (
	"log/slog"
	"sync"

	"github.com/eleven-am/classroom-relay/internal/metrics"
)

// Registry owns the admin set and the student maps. All mutation goes
// through its lock; everything else reads snapshots.
type Registry struct {
	mu     sync.RWMutex
	admins map[Conn]struct{}
	byConn map[Conn]*StudentSession
	byID   map[string]*StudentSession

	log     *slog.Logger
	metrics *metrics.Metrics
}

func NewRegistry(log *slog.Logger, m *metrics.Metrics) *Registry {
	if log == nil {
		log = slog.Default()
	}
	return &Registry{
		admins:  make(map[Conn]struct{}),
		byConn:  make(map[Conn]*StudentSession),
		byID:    make(map[string]*StudentSession),
		log:     log.With("component", "registry"),
		metrics: m,
	}
}

func (r *Registry) AddAdmin(conn Conn) {
	r.mu.Lock()
	r.admins[conn] = struct{}{}
	n := len(r.admins)
	r.mu.Unlock()

	if r.metrics != nil {
		r.metrics.AdminsActive.Set(float64(n))
	}
	r.log.Info("admin registered", "conn_id", conn.ID(), "admins", n)
}

func (r *Registry) RemoveAdmin(conn Conn) {
	r.mu.Lock()
	_, present := r.admins[conn]
	delete(r.admins, conn)
	n := len(r.admins)
	r.mu.Unlock()

	if !present {
		return
	}
	if r.metrics != nil {
		r.metrics.AdminsActive.Set(float64(n))
	}
	r.log.Info("admin removed", "conn_id", conn.ID(), "admins", n)
}

// CreateOrReplaceStudent installs a session for the id, superseding and
// releasing any prior session under the same id.
func (r *Registry) CreateOrReplaceStudent(conn Conn, studentID, deviceLabel string) *StudentSession {
	s := newStudentSession(conn, studentID, deviceLabel)

	r.mu.Lock()
	old := r.byID[studentID]
	if old != nil {
		delete(r.byConn, old.conn)
	}
	r.byID[studentID] = s
	r.byConn[conn] = s
	n := len(r.byID)
	r.mu.Unlock()

	if old != nil {
		old.release()
		r.log.Info("student session superseded", "student_id", studentID)
	}
	if r.metrics != nil {
		r.metrics.StudentsActive.Set(float64(n))
	}
	r.log.Info("student registered", "student_id", studentID, "device_label", deviceLabel, "conn_id", conn.ID())
	return s
}

// RemoveStudent removes by connection identity and releases the
// session's upstream resources. A connection that is no longer the
// current holder of its student id removes nothing, so a stale
// teardown cannot evict a newer session.
func (r *Registry) RemoveStudent(conn Conn) *StudentSession {
	r.mu.Lock()
	s := r.byConn[conn]
	if s != nil {
		delete(r.byConn, conn)
		if r.byID[s.studentID] == s {
			delete(r.byID, s.studentID)
		}
	}
	n := len(r.byID)
	r.mu.Unlock()

	if s == nil {
		return nil
	}
	s.release()

	if r.metrics != nil {
		r.metrics.StudentsActive.Set(float64(n))
	}
	r.log.Info("student removed", "student_id", s.studentID, "conn_id", conn.ID())
	return s
}

// UpdateMetrics sets the session's level and speaking flag and returns
// a snapshot of it. It reports false for unknown connections.
func (r *Registry) UpdateMetrics(conn Conn, levelDB float64, speaking bool) (StudentInfo, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.byConn[conn]
	if s == nil {
		return StudentInfo{}, false
	}
	s.levelDB = levelDB
	s.speaking = speaking
	return s.info(), true
}

func (r *Registry) SnapshotStudents() []StudentInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	students := make([]StudentInfo, 0, len(r.byID))
	for _, s := range r.byID {
		students = append(students, s.info())
	}
	return students
}

func (r *Registry) SnapshotAdmins() []Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	admins := make([]Conn, 0, len(r.admins))
	for a := range r.admins {
		admins = append(admins, a)
	}
	return admins
}

func (r *Registry) StudentCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

func (r *Registry) AdminCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.admins)
}
