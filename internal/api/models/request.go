package models

import (
	"wealth-projections/internal/input"
	"wealth-projections/internal/model"
)

// ProjectionRequest is the body of a projection or export call. Exactly one of
// Input (typed, rates as fractions) or Fields (raw form strings, rates as
// percentages) must be set.
type ProjectionRequest struct {
	BaseYear int          `json:"base_year,omitempty"` // default: config / current year
	Input    *InputParams `json:"input,omitempty"`
	Fields   input.Fields `json:"fields,omitempty"`
	Clamp    bool         `json:"clamp,omitempty"` // snap fields into slider bounds first
}

// InputParams is the union of every calculator's parameters.
type InputParams struct {
	// Amount is the monthly contribution (sip, stepup), the present cost
	// (inflation) or the starting corpus (swp).
	Amount            float64 `json:"amount"`
	AnnualRate        float64 `json:"annual_rate"` // fraction, e.g. 0.12
	Years             int     `json:"years"`
	StepFraction      float64 `json:"step_fraction,omitempty"`      // stepup only
	MonthlyWithdrawal float64 `json:"monthly_withdrawal,omitempty"` // swp only
}

// ToRequest maps the params onto the calculator's input type.
func (p InputParams) ToRequest(kind model.Kind) model.Request {
	switch kind {
	case model.KindStepUp:
		return model.StepUpInput{MonthlyAmount: p.Amount, AnnualRate: p.AnnualRate, Years: p.Years, StepFraction: p.StepFraction}
	case model.KindInflation:
		return model.InflationInput{PresentValue: p.Amount, AnnualRate: p.AnnualRate, Years: p.Years}
	case model.KindSWP:
		return model.WithdrawalInput{InitialAmount: p.Amount, MonthlyWithdrawal: p.MonthlyWithdrawal, AnnualRate: p.AnnualRate, Years: p.Years}
	default:
		return model.GrowthInput{MonthlyAmount: p.Amount, AnnualRate: p.AnnualRate, Years: p.Years}
	}
}

// Overlay returns p with every field set in o applied. An explicit zero counts,
// so a variation can ask for a 0% rate or no step-up.
func (p InputParams) Overlay(o InputOverrides) InputParams {
	if o.Amount != nil {
		p.Amount = *o.Amount
	}
	if o.AnnualRate != nil {
		p.AnnualRate = *o.AnnualRate
	}
	if o.Years != nil {
		p.Years = *o.Years
	}
	if o.StepFraction != nil {
		p.StepFraction = *o.StepFraction
	}
	if o.MonthlyWithdrawal != nil {
		p.MonthlyWithdrawal = *o.MonthlyWithdrawal
	}
	return p
}

// InputOverrides mirrors InputParams; nil fields keep the base value.
type InputOverrides struct {
	Amount            *float64 `json:"amount,omitempty"`
	AnnualRate        *float64 `json:"annual_rate,omitempty"`
	Years             *int     `json:"years,omitempty"`
	StepFraction      *float64 `json:"step_fraction,omitempty"`
	MonthlyWithdrawal *float64 `json:"monthly_withdrawal,omitempty"`
}

// CompareRequest runs a base projection and variations of it.
type CompareRequest struct {
	BaseYear   int         `json:"base_year,omitempty"`
	Base       InputParams `json:"base"`
	Variations []Variation `json:"variations" binding:"required"`
}

// Variation overrides the fields it sets on the base input.
type Variation struct {
	Name  string         `json:"name" binding:"required"`
	Input InputOverrides `json:"input"`
}

// SessionRequest carries the current raw form values of one calculator.
type SessionRequest struct {
	Fields input.Fields `json:"fields"`
	Clamp  bool         `json:"clamp,omitempty"`
}
