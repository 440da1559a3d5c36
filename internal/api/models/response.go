package models

import (
	"wealth-projections/internal/input"
	"wealth-projections/internal/model"
	"wealth-projections/internal/present"
)

// ProjectionResponse is a rendered projection plus the raw engine result.
// Fields echoes the input as form values, after any clamping, so a page can
// keep its sliders and text boxes in step.
type ProjectionResponse struct {
	View   present.View  `json:"view"`
	Result *model.Result `json:"result"`
	Fields input.Fields  `json:"fields"`
}

// CompareResponse lists the base run first, then every variation that computed.
type CompareResponse struct {
	Calculator model.Kind         `json:"calculator"`
	Comparison []ComparisonResult `json:"comparison"`
	Skipped    []string           `json:"skipped,omitempty"`
}

// ComparisonResult contains results for one variation
type ComparisonResult struct {
	Name       string          `json:"name"`
	FinalValue float64         `json:"final_value"`
	Totals     []present.Total `json:"totals"`
}

// SessionResponse is the view a session should display.
type SessionResponse struct {
	Session string       `json:"session"`
	View    present.View `json:"view"`
}

// CalculatorInfo describes one calculator and its form.
type CalculatorInfo struct {
	Name        model.Kind      `json:"name"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a form field
type ParameterInfo struct {
	Name        string       `json:"name"`
	Type        string       `json:"type"` // "amount", "percent", "years"
	Description string       `json:"description"`
	Default     string       `json:"default,omitempty"`
	Bounds      *input.Bound `json:"bounds,omitempty"`
}

// ContactResponse mirrors the relay's success payload.
type ContactResponse struct {
	Result string `json:"result"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
