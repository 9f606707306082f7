package upstream

import (
	"net/http"
	"time"
)

type Config struct {
	APIKey      string
	APIBaseURL  string
	RealtimeURL string
	SampleRate  int
	TokenTTL    time.Duration
	HTTPClient  *http.Client
}

func (c Config) withDefaults() Config {
	if c.APIBaseURL == "" {
		c.APIBaseURL = "https://streaming.assemblyai.com"
	}
	if c.RealtimeURL == "" {
		c.RealtimeURL = "wss://streaming.assemblyai.com/v3/ws"
	}
	if c.SampleRate <= 0 {
		c.SampleRate = 16000
	}
	if c.TokenTTL <= 0 {
		c.TokenTTL = 10 * time.Minute
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	return c
}

// TranscriptEvent is one interim or final transcript update from the
// provider. Start and End are audio offsets in milliseconds when the
// provider supplies them.
type TranscriptEvent struct {
	Text  string
	Final bool
	Start float64
	End   float64
}

type Callbacks struct {
	OnBegin       func(sessionID string)
	OnTranscript  func(event TranscriptEvent)
	OnTermination func(audioSeconds, sessionSeconds float64)
	OnError       func(err error)
}

// serverMessage is the superset of realtime message shapes the provider
// emits. Unrecognized types are ignored by the read loop.
type serverMessage struct {
	Type string `json:"type"`

	// Begin
	ID        string  `json:"id,omitempty"`
	ExpiresAt float64 `json:"expires_at,omitempty"`

	// Turn
	Transcript      string  `json:"transcript,omitempty"`
	TurnIsFormatted bool    `json:"turn_is_formatted,omitempty"`
	EndOfTurn       bool    `json:"end_of_turn,omitempty"`
	Start           float64 `json:"start,omitempty"`
	End             float64 `json:"end,omitempty"`

	// Termination
	AudioDurationSeconds   float64 `json:"audio_duration_seconds,omitempty"`
	SessionDurationSeconds float64 `json:"session_duration_seconds,omitempty"`

	// Error
	Error string `json:"error,omitempty"`
}

type terminateMessage struct {
	Type string `json:"type"`
}
