package health

import (
	"net/http"
	"runtime"
	"time"

	"github.com/eleven-am/classroom-relay/internal/history"
	"github.com/eleven-am/classroom-relay/internal/hub"
	"github.com/labstack/echo/v4"
)

type Status string

const (
	StatusHealthy Status = "healthy"
)

type RuntimeStats struct {
	Goroutines    int    `json:"goroutines"`
	MemoryAllocMB uint64 `json:"memory_alloc_mb"`
	MemorySysMB   uint64 `json:"memory_sys_mb"`
	NumGC         uint32 `json:"num_gc"`
}

type SessionStats struct {
	Admins           int `json:"admins"`
	Students         int `json:"students"`
	TranscriptEvents int `json:"transcript_events"`
}

type HealthResponse struct {
	Status        Status       `json:"status"`
	Timestamp     time.Time    `json:"timestamp"`
	Version       string       `json:"version"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	Sessions      SessionStats `json:"sessions"`
	Runtime       RuntimeStats `json:"runtime"`
}

type StudentDetail struct {
	StudentID   string  `json:"studentId"`
	DeviceLabel string  `json:"deviceLabel"`
	DB          float64 `json:"db"`
	Speaking    bool    `json:"speaking"`
}

type SessionsResponse struct {
	Admins   int             `json:"admins"`
	Students []StudentDetail `json:"students"`
}

type Handler struct {
	registry  *hub.Registry
	history   *history.Log
	version   string
	startTime time.Time
}

func NewHandler(registry *hub.Registry, historyLog *history.Log, version string) *Handler {
	return &Handler{
		registry:  registry,
		history:   historyLog,
		version:   version,
		startTime: time.Now(),
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Liveness)
	e.GET("/health/sessions", h.Sessions)
}

func (h *Handler) Liveness(c echo.Context) error {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return c.JSON(http.StatusOK, HealthResponse{
		Status:        StatusHealthy,
		Timestamp:     time.Now(),
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Sessions: SessionStats{
			Admins:           h.registry.AdminCount(),
			Students:         h.registry.StudentCount(),
			TranscriptEvents: h.history.Len(),
		},
		Runtime: RuntimeStats{
			Goroutines:    runtime.NumGoroutine(),
			MemoryAllocMB: mem.Alloc / 1024 / 1024,
			MemorySysMB:   mem.Sys / 1024 / 1024,
			NumGC:         mem.NumGC,
		},
	})
}

func (h *Handler) Sessions(c echo.Context) error {
	students := h.registry.SnapshotStudents()

	details := make([]StudentDetail, 0, len(students))
	for _, s := range students {
		details = append(details, StudentDetail{
			StudentID:   s.StudentID,
			DeviceLabel: s.DeviceLabel,
			DB:          s.LevelDB,
			Speaking:    s.Speaking,
		})
	}

	return c.JSON(http.StatusOK, SessionsResponse{
		Admins:   h.registry.AdminCount(),
		Students: details,
	})
}
