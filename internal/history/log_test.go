package history

import (
	"fmt"
	"testing"
)

func TestLog_AppendAndQuery(t *testing.T) {
	l := NewLog(10)
	l.Append(Event{StudentID: "s1", Text: "one", Final: true})
	l.Append(Event{StudentID: "s2", Text: "two"})
	l.Append(Event{StudentID: "s1", Text: "three", Final: true})

	all := l.Query("", 10)
	if len(all) != 3 {
		t.Fatalf("expected 3 events, got %d", len(all))
	}
	if all[0].CreatedAt.IsZero() {
		t.Error("append should stamp CreatedAt")
	}

	s1 := l.Query("s1", 10)
	if len(s1) != 2 {
		t.Fatalf("expected 2 events for s1, got %d", len(s1))
	}
	if s1[0].Text != "one" || s1[1].Text != "three" {
		t.Errorf("filter should preserve insertion order, got %q then %q", s1[0].Text, s1[1].Text)
	}
}

func TestLog_Limit(t *testing.T) {
	l := NewLog(10)
	for i := 0; i < 5; i++ {
		l.Append(Event{StudentID: "s1", Text: fmt.Sprintf("t%d", i)})
	}

	got := l.Query("s1", 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].Text != "t3" || got[1].Text != "t4" {
		t.Errorf("limit should keep the most recent matches, got %q, %q", got[0].Text, got[1].Text)
	}
}

func TestLog_EvictsOldestInBatch(t *testing.T) {
	l := NewLog(3)
	for i := 0; i < 5; i++ {
		l.Append(Event{StudentID: "s1", Text: fmt.Sprintf("t%d", i)})
	}

	if l.Len() != 3 {
		t.Fatalf("expected buffer at capacity 3, got %d", l.Len())
	}

	got := l.Query("", 10)
	want := []string{"t2", "t3", "t4"}
	for i, w := range want {
		if got[i].Text != w {
			t.Errorf("event %d: expected %q, got %q", i, w, got[i].Text)
		}
	}
}

func TestLog_DefaultCapacity(t *testing.T) {
	l := NewLog(0)
	if l.capacity != DefaultCapacity {
		t.Errorf("expected default capacity %d, got %d", DefaultCapacity, l.capacity)
	}
}
