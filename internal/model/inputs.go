package model

import (
	"errors"
	"math"
)

// Request is a validated-on-demand set of calculator parameters.
// Rates and step fractions are fractions (0.12 == 12%), amounts are whole currency units.
type Request interface {
	Kind() Kind
	Validate() error
}

// GrowthInput drives the SIP projection: a fixed monthly contribution.
type GrowthInput struct {
	MonthlyAmount float64 `json:"monthly_amount" yaml:"monthly_amount"`
	AnnualRate    float64 `json:"annual_rate" yaml:"annual_rate"`
	Years         int     `json:"years" yaml:"years"`
}

// StepUpInput is a SIP whose monthly contribution grows by StepFraction every year.
type StepUpInput struct {
	MonthlyAmount float64 `json:"monthly_amount" yaml:"monthly_amount"`
	AnnualRate    float64 `json:"annual_rate" yaml:"annual_rate"`
	Years         int     `json:"years" yaml:"years"`
	StepFraction  float64 `json:"step_fraction" yaml:"step_fraction"`
}

// InflationInput compounds a present cost forward.
type InflationInput struct {
	PresentValue float64 `json:"present_value" yaml:"present_value"`
	AnnualRate   float64 `json:"annual_rate" yaml:"annual_rate"`
	Years        int     `json:"years" yaml:"years"`
}

// WithdrawalInput drives the SWP depletion simulation.
type WithdrawalInput struct {
	InitialAmount     float64 `json:"initial_amount" yaml:"initial_amount"`
	MonthlyWithdrawal float64 `json:"monthly_withdrawal" yaml:"monthly_withdrawal"`
	AnnualRate        float64 `json:"annual_rate" yaml:"annual_rate"`
	Years             int     `json:"years" yaml:"years"`
}

func (GrowthInput) Kind() Kind     { return KindSIP }
func (StepUpInput) Kind() Kind     { return KindStepUp }
func (InflationInput) Kind() Kind  { return KindInflation }
func (WithdrawalInput) Kind() Kind { return KindSWP }

func (in GrowthInput) Validate() error {
	if !positive(in.MonthlyAmount) {
		return errors.New("monthly amount must be > 0")
	}
	return validateRateYears(in.AnnualRate, in.Years)
}

func (in StepUpInput) Validate() error {
	if !positive(in.MonthlyAmount) {
		return errors.New("monthly amount must be > 0")
	}
	if err := validateRateYears(in.AnnualRate, in.Years); err != nil {
		return err
	}
	if !nonNegative(in.StepFraction) {
		return errors.New("step fraction must be >= 0")
	}
	return nil
}

func (in InflationInput) Validate() error {
	if !positive(in.PresentValue) {
		return errors.New("present value must be > 0")
	}
	return validateRateYears(in.AnnualRate, in.Years)
}

func (in WithdrawalInput) Validate() error {
	if !positive(in.InitialAmount) {
		return errors.New("initial amount must be > 0")
	}
	if !positive(in.MonthlyWithdrawal) {
		return errors.New("monthly withdrawal must be > 0")
	}
	return validateRateYears(in.AnnualRate, in.Years)
}

func validateRateYears(rate float64, years int) error {
	if !nonNegative(rate) {
		return errors.New("annual rate must be >= 0")
	}
	if years <= 0 {
		return errors.New("years must be > 0")
	}
	return nil
}

// positive rejects NaN and Inf along with x <= 0.
func positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}

func nonNegative(x float64) bool {
	return x >= 0 && !math.IsInf(x, 1)
}
