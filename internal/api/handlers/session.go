package handlers

import (
	"errors"
	"net/http"
	"time"

	"wealth-projections/internal/api/models"
	"wealth-projections/internal/config"
	"wealth-projections/internal/input"
	"wealth-projections/internal/metrics"
	"wealth-projections/internal/model"
	"wealth-projections/internal/session"

	"github.com/gin-gonic/gin"
)

// SessionHandler serves live calculator forms: every input change is posted
// and the response is the view to show.
type SessionHandler struct {
	board *session.Board
	cfg   *config.Config
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(board *session.Board, cfg *config.Config) *SessionHandler {
	if cfg == nil {
		cfg = config.Default()
	}
	return &SessionHandler{board: board, cfg: cfg}
}

// Apply handles POST /api/v1/sessions/:session/:calculator
func (h *SessionHandler) Apply(c *gin.Context) {
	id := c.Param("session")
	kind, err := model.ParseKind(c.Param("calculator"))
	if err != nil {
		respondError(c, http.StatusNotFound, "UNKNOWN_CALCULATOR", err.Error(), nil)
		return
	}
	var req models.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	fields := req.Fields
	if req.Clamp {
		fields = input.Clamp(fields, h.cfg.Calculators[kind].Bounds)
	}
	// Horizons past the slider maximum are declined like any other bad value.
	if years, ok := input.ParseWhole(fields[input.FieldYears]); ok && h.cfg.CheckYears(kind, years) != nil {
		fields = copyFields(fields)
		fields[input.FieldYears] = ""
	}

	start := time.Now()
	view, err := h.board.Apply(id, kind, fields)
	elapsed := time.Since(start)
	switch {
	case errors.Is(err, session.ErrNoView):
		metrics.ObserveProjection(string(kind), metrics.ResultDeclined, elapsed)
		respondError(c, http.StatusUnprocessableEntity, "NOT_COMPUTABLE", err.Error(), map[string]interface{}{
			"calculator": kind,
		})
		return
	case err != nil:
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	result := metrics.ResultComputed
	if view.Stale {
		result = metrics.ResultDeclined
	}
	metrics.ObserveProjection(string(kind), result, elapsed)
	c.JSON(http.StatusOK, models.SessionResponse{Session: id, View: view})
}

// Forget handles DELETE /api/v1/sessions/:session
func (h *SessionHandler) Forget(c *gin.Context) {
	h.board.Forget(c.Param("session"))
	c.Status(http.StatusNoContent)
}

func copyFields(f input.Fields) input.Fields {
	out := make(input.Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}
