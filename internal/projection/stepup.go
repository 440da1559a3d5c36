package projection

import (
	"math"

	"wealth-projections/internal/model"
)

// StepUp projects a monthly contribution that grows by StepFraction each year.
// Every year's twelve contributions are valued at the end of that year and then
// compounded to the end of the horizon; yearly values add up.
//
// The point for year y is the running sum after y years, i.e. the horizon-end
// value of the contributions made so far.
func (e *Engine) StepUp(in model.StepUpInput) (*model.Result, error) {
	if err := in.Validate(); err != nil {
		return nil, decline(err)
	}

	i := in.AnnualRate / monthsPerYear
	yearFactor := annuityFactor(i, monthsPerYear)

	points := make([]model.Point, 0, in.Years)
	contribution := in.MonthlyAmount
	invested, future := 0.0, 0.0
	for year := 1; year <= in.Years; year++ {
		invested += contribution * monthsPerYear
		remaining := float64((in.Years - year) * monthsPerYear)
		future += contribution * yearFactor * math.Pow(1+i, remaining)
		points = append(points, model.Point{Year: year, Value: future})
		contribution *= 1 + in.StepFraction
	}

	return finished(&model.Result{
		Kind:   model.KindStepUp,
		Points: points,
		Totals: model.Totals{
			Invested:   invested,
			Returns:    future - invested,
			FinalValue: future,
		},
	})
}
