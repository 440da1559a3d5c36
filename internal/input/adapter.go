package input

import (
	"math"
	"strconv"

	"wealth-projections/internal/model"
)

// Fields holds raw form values keyed by field name.
type Fields map[string]string

// Field names accepted per calculator.
const (
	FieldAmount     = "amount"
	FieldRate       = "rate"
	FieldYears      = "years"
	FieldStep       = "step"
	FieldCost       = "cost"
	FieldInvestment = "investment"
	FieldWithdrawal = "withdrawal"
)

// FieldNames lists the fields a calculator reads, in form order.
func FieldNames(kind model.Kind) []string {
	switch kind {
	case model.KindSIP:
		return []string{FieldAmount, FieldRate, FieldYears}
	case model.KindStepUp:
		return []string{FieldAmount, FieldRate, FieldYears, FieldStep}
	case model.KindInflation:
		return []string{FieldCost, FieldRate, FieldYears}
	case model.KindSWP:
		return []string{FieldInvestment, FieldWithdrawal, FieldRate, FieldYears}
	default:
		return nil
	}
}

// Build turns raw fields into a typed request. It never rejects values; blank or
// malformed amounts and years become 0 and a malformed rate becomes NaN, which
// the engine then declines. Rates and steps are percentages in the form and
// fractions in the request.
func Build(kind model.Kind, f Fields) (model.Request, error) {
	rate := ParseNumber(f[FieldRate]) / 100
	years := f.years()

	switch kind {
	case model.KindSIP:
		return model.GrowthInput{
			MonthlyAmount: orZero(ParseNumber(f[FieldAmount])),
			AnnualRate:    rate,
			Years:         years,
		}, nil
	case model.KindStepUp:
		return model.StepUpInput{
			MonthlyAmount: orZero(ParseNumber(f[FieldAmount])),
			AnnualRate:    rate,
			Years:         years,
			StepFraction:  orZero(ParseNumber(f[FieldStep]) / 100),
		}, nil
	case model.KindInflation:
		return model.InflationInput{
			PresentValue: orZero(ParseNumber(f[FieldCost])),
			AnnualRate:   rate,
			Years:        years,
		}, nil
	case model.KindSWP:
		return model.WithdrawalInput{
			InitialAmount:     orZero(ParseNumber(f[FieldInvestment])),
			MonthlyWithdrawal: orZero(ParseNumber(f[FieldWithdrawal])),
			AnnualRate:        rate,
			Years:             years,
		}, nil
	}
	_, err := model.ParseKind(string(kind))
	return nil, err
}

func (f Fields) years() int {
	n, ok := ParseWhole(f[FieldYears])
	if !ok {
		return 0
	}
	return n
}

// Bound is the slider range of one field.
type Bound struct {
	Min  float64 `yaml:"min" json:"min"`
	Max  float64 `yaml:"max" json:"max"`
	Step float64 `yaml:"step,omitempty" json:"step,omitempty"`
}

// Clamp returns a copy of f with every numeric field pulled into its bound, the
// way a range slider snaps a typed value. Non-numeric values are left alone so
// that Build can still treat them as blank.
func Clamp(f Fields, bounds map[string]Bound) Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
		b, ok := bounds[k]
		if !ok || b.Max < b.Min {
			continue
		}
		x := ParseNumber(v)
		if math.IsNaN(x) {
			continue
		}
		if c := math.Min(math.Max(x, b.Min), b.Max); c != x {
			out[k] = strconv.FormatFloat(c, 'f', -1, 64)
		}
	}
	return out
}

// FromRequest renders a typed request back into form fields. It is the inverse
// of Build for well-formed input.
func FromRequest(req model.Request) Fields {
	pct := func(x float64) string { return strconv.FormatFloat(x*100, 'f', -1, 64) }
	num := func(x float64) string { return strconv.FormatFloat(x, 'f', -1, 64) }
	switch in := req.(type) {
	case model.GrowthInput:
		return Fields{FieldAmount: num(in.MonthlyAmount), FieldRate: pct(in.AnnualRate), FieldYears: strconv.Itoa(in.Years)}
	case model.StepUpInput:
		return Fields{FieldAmount: num(in.MonthlyAmount), FieldRate: pct(in.AnnualRate), FieldYears: strconv.Itoa(in.Years), FieldStep: pct(in.StepFraction)}
	case model.InflationInput:
		return Fields{FieldCost: num(in.PresentValue), FieldRate: pct(in.AnnualRate), FieldYears: strconv.Itoa(in.Years)}
	case model.WithdrawalInput:
		return Fields{FieldInvestment: num(in.InitialAmount), FieldWithdrawal: num(in.MonthlyWithdrawal), FieldRate: pct(in.AnnualRate), FieldYears: strconv.Itoa(in.Years)}
	}
	return Fields{}
}
