package history

import (
	"sync"
	"time"
)

const DefaultCapacity = 5000

// Event is one normalized transcript update, immutable once appended.
type Event struct {
	StudentID string    `json:"studentId"`
	Text      string    `json:"text"`
	Final     bool      `json:"final"`
	CreatedAt time.Time `json:"createdAt"`
}

// Log is a bounded append-only buffer of transcript events. Insertion
// beyond capacity evicts the oldest entries in one batch.
type Log struct {
	mu       sync.RWMutex
	events   []Event
	capacity int
}

func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{capacity: capacity}
}

func (l *Log) Append(event Event) {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.events = append(l.events, event)
	if excess := len(l.events) - l.capacity; excess > 0 {
		n := copy(l.events, l.events[excess:])
		l.events = l.events[:n]
	}
}

// Query returns up to limit matching events in insertion order, newest
// portion of the buffer last. An empty studentID matches everything.
func (l *Log) Query(studentID string, limit int) []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	matched := make([]Event, 0, limit)
	for _, e := range l.events {
		if studentID != "" && e.StudentID != studentID {
			continue
		}
		matched = append(matched, e)
	}

	if limit > 0 && len(matched) > limit {
		matched = matched[len(matched)-limit:]
	}
	return matched
}

func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}
