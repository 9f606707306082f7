package hub

import "github.com/eleven-am/classroom-relay/internal/audio"

const (
	TypeHello      = "hello"
	TypeMetrics    = "metrics"
	TypeReset      = "reset"
	TypeRanking    = "ranking"
	TypeTranscript = "transcript"

	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// DefaultStudentID is assigned when a student hello omits an id.
// Anonymous students therefore supersede each other instead of piling up.
const DefaultStudentID = "student"

// ControlMessage is the inbound text envelope. DB is declared as any so
// a malformed level degrades to the silence sentinel instead of
// rejecting the whole message.
type ControlMessage struct {
	Type        string `json:"type"`
	Role        string `json:"role,omitempty"`
	StudentID   string `json:"studentId,omitempty"`
	DeviceLabel string `json:"deviceLabel,omitempty"`
	DB          any    `json:"db,omitempty"`
	Speaking    bool   `json:"speaking,omitempty"`
}

func (m *ControlMessage) LevelDB() float64 {
	if f, ok := m.DB.(float64); ok {
		return f
	}
	return audio.SilenceDB
}

type ResetMessage struct {
	Type string `json:"type"`
}

func NewReset() ResetMessage {
	return ResetMessage{Type: TypeReset}
}

type HelloMessage struct {
	Type        string `json:"type"`
	Role        string `json:"role"`
	StudentID   string `json:"studentId"`
	DeviceLabel string `json:"deviceLabel"`
}

func NewStudentHello(studentID, deviceLabel string) HelloMessage {
	return HelloMessage{
		Type:        TypeHello,
		Role:        RoleStudent,
		StudentID:   studentID,
		DeviceLabel: deviceLabel,
	}
}

type MetricsMessage struct {
	Type      string  `json:"type"`
	StudentID string  `json:"studentId"`
	DB        float64 `json:"db"`
	Speaking  bool    `json:"speaking"`
}

func NewMetrics(studentID string, db float64, speaking bool) MetricsMessage {
	return MetricsMessage{
		Type:      TypeMetrics,
		StudentID: studentID,
		DB:        db,
		Speaking:  speaking,
	}
}

type RankEntry struct {
	StudentID string  `json:"studentId"`
	DB        float64 `json:"db"`
}

type RankingMessage struct {
	Type  string      `json:"type"`
	Order []RankEntry `json:"order"`
}

func NewRanking(order []RankEntry) RankingMessage {
	return RankingMessage{Type: TypeRanking, Order: order}
}

type TranscriptMessage struct {
	Type      string `json:"type"`
	StudentID string `json:"studentId"`
	Text      string `json:"text"`
	Final     bool   `json:"final"`
}

func NewTranscript(studentID, text string, final bool) TranscriptMessage {
	return TranscriptMessage{
		Type:      TypeTranscript,
		StudentID: studentID,
		Text:      text,
		Final:     final,
	}
}
