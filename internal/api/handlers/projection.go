package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"wealth-projections/internal/api/models"
	"wealth-projections/internal/config"
	"wealth-projections/internal/input"
	"wealth-projections/internal/metrics"
	"wealth-projections/internal/model"
	"wealth-projections/internal/present"
	"wealth-projections/internal/projection"

	"github.com/gin-gonic/gin"
)

// ProjectionHandler handles projection, comparison and export requests
type ProjectionHandler struct {
	engine *projection.Engine
	cfg    *config.Config
	now    func() time.Time
}

// NewProjectionHandler creates a new projection handler
func NewProjectionHandler(engine *projection.Engine, cfg *config.Config) *ProjectionHandler {
	if engine == nil {
		engine = projection.New()
	}
	if cfg == nil {
		cfg = config.Default()
	}
	return &ProjectionHandler{engine: engine, cfg: cfg, now: time.Now}
}

// RunProjection handles POST /api/v1/projections/:calculator
func (h *ProjectionHandler) RunProjection(c *gin.Context) {
	kind, req, baseYear, ok := h.bindProjection(c)
	if !ok {
		return
	}
	res, ok := h.run(c, kind, req)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.ProjectionResponse{
		View:   present.Render(res, baseYear),
		Result: res,
		Fields: input.FromRequest(req),
	})
}

// Export handles POST /api/v1/projections/:calculator/export?format=csv|xlsx|pdf
func (h *ProjectionHandler) Export(c *gin.Context) {
	format, err := present.ParseFormat(c.DefaultQuery("format", string(present.FormatCSV)))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}
	kind, req, baseYear, ok := h.bindProjection(c)
	if !ok {
		return
	}
	res, ok := h.run(c, kind, req)
	if !ok {
		return
	}

	body, err := present.Export(present.Render(res, baseYear), format)
	if err != nil {
		log.Printf("ProjectionHandler: export %s/%s failed: %v", kind, format, err)
		metrics.ObserveExport(string(format), metrics.ResultError)
		respondError(c, http.StatusInternalServerError, "EXPORT_ERROR", err.Error(), nil)
		return
	}
	metrics.ObserveExport(string(format), metrics.ResultSuccess)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-projection.%s"`, kind, format))
	c.Data(http.StatusOK, format.ContentType(), body)
}

// Compare handles POST /api/v1/compare/:calculator
func (h *ProjectionHandler) Compare(c *gin.Context) {
	kind, ok := h.bindKind(c)
	if !ok {
		return
	}
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	base := req.Base.ToRequest(kind)
	if err := h.checkYears(kind, base); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}
	baseRes, ok := h.run(c, kind, base)
	if !ok {
		return
	}

	resp := models.CompareResponse{
		Calculator: kind,
		Comparison: []models.ComparisonResult{h.comparison("base", baseRes, req.BaseYear)},
	}
	for _, variation := range req.Variations {
		merged := req.Base.Overlay(variation.Input).ToRequest(kind)
		if err := h.checkYears(kind, merged); err != nil {
			resp.Skipped = append(resp.Skipped, variation.Name)
			continue
		}
		res, err := h.compute(kind, merged)
		if err != nil {
			resp.Skipped = append(resp.Skipped, variation.Name) // declined variations are skipped
			continue
		}
		resp.Comparison = append(resp.Comparison, h.comparison(variation.Name, res, req.BaseYear))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProjectionHandler) comparison(name string, res *model.Result, baseYear int) models.ComparisonResult {
	v := present.Render(res, h.baseYear(baseYear))
	return models.ComparisonResult{
		Name:       name,
		FinalValue: res.Totals.FinalValue,
		Totals:     v.Totals,
	}
}

// Helper methods

func (h *ProjectionHandler) bindKind(c *gin.Context) (model.Kind, bool) {
	kind, err := model.ParseKind(c.Param("calculator"))
	if err != nil {
		respondError(c, http.StatusNotFound, "UNKNOWN_CALCULATOR", err.Error(), nil)
		return "", false
	}
	return kind, true
}

func (h *ProjectionHandler) bindProjection(c *gin.Context) (model.Kind, model.Request, int, bool) {
	kind, ok := h.bindKind(c)
	if !ok {
		return "", nil, 0, false
	}
	var body models.ProjectionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return "", nil, 0, false
	}

	var req model.Request
	switch {
	case body.Input != nil && body.Fields != nil:
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "set either input or fields, not both", nil)
		return "", nil, 0, false
	case body.Input != nil:
		req = body.Input.ToRequest(kind)
	case body.Fields != nil:
		fields := body.Fields
		if body.Clamp {
			fields = input.Clamp(fields, h.cfg.Calculators[kind].Bounds)
		}
		built, err := input.Build(kind, fields)
		if err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
			return "", nil, 0, false
		}
		req = built
	default:
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "input or fields is required", nil)
		return "", nil, 0, false
	}

	if err := h.checkYears(kind, req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return "", nil, 0, false
	}
	return kind, req, h.baseYear(body.BaseYear), true
}

// checkYears caps the horizon at the configured slider maximum.
func (h *ProjectionHandler) checkYears(kind model.Kind, req model.Request) error {
	return h.cfg.CheckYears(kind, yearsOf(req))
}

func yearsOf(req model.Request) int {
	switch in := req.(type) {
	case model.GrowthInput:
		return in.Years
	case model.StepUpInput:
		return in.Years
	case model.InflationInput:
		return in.Years
	case model.WithdrawalInput:
		return in.Years
	}
	return 0
}

func (h *ProjectionHandler) baseYear(requested int) int {
	if requested > 0 {
		return requested
	}
	return h.cfg.BaseYear(h.now())
}

// compute runs the engine and records the outcome.
func (h *ProjectionHandler) compute(kind model.Kind, req model.Request) (*model.Result, error) {
	start := time.Now()
	res, err := h.engine.Run(req)
	result := metrics.ResultComputed
	switch {
	case errors.Is(err, projection.ErrNotComputable):
		result = metrics.ResultDeclined
	case err != nil:
		result = metrics.ResultError
	}
	metrics.ObserveProjection(string(kind), result, time.Since(start))
	return res, err
}

// run is compute plus the error response; ok is false when a response was written.
func (h *ProjectionHandler) run(c *gin.Context, kind model.Kind, req model.Request) (*model.Result, bool) {
	res, err := h.compute(kind, req)
	if errors.Is(err, projection.ErrNotComputable) {
		respondError(c, http.StatusUnprocessableEntity, "NOT_COMPUTABLE", err.Error(), map[string]interface{}{
			"calculator": kind,
		})
		return nil, false
	}
	if err != nil {
		log.Printf("ProjectionHandler: %s run failed: %v", kind, err)
		respondError(c, http.StatusInternalServerError, "PROJECTION_ERROR", err.Error(), nil)
		return nil, false
	}
	return res, true
}

func respondError(c *gin.Context, status int, code, message string, details map[string]interface{}) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}
