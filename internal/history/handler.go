package history

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/eleven-am/classroom-relay/internal/shared"
	"github.com/labstack/echo/v4"
)

const (
	defaultQueryLimit = 100
	maxQueryLimit     = 1000
)

type Handler struct {
	log    *Log
	logger *slog.Logger
}

func NewHandler(log *Log, logger *slog.Logger) *Handler {
	return &Handler{
		log:    log,
		logger: logger.With("handler", "history"),
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/transcripts", h.List)
}

type ListResponse struct {
	Total  int     `json:"total"`
	Events []Event `json:"events"`
}

func (h *Handler) List(c echo.Context) error {
	studentID := c.QueryParam("studentId")

	limit := defaultQueryLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return shared.BadRequest("invalid_limit", "limit must be a positive integer")
		}
		limit = n
	}
	if limit > maxQueryLimit {
		limit = maxQueryLimit
	}

	events := h.log.Query(studentID, limit)
	return c.JSON(http.StatusOK, ListResponse{
		Total:  len(events),
		Events: events,
	})
}
