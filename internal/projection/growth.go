package projection

import "wealth-projections/internal/model"

// Growth projects a fixed monthly contribution compounded monthly.
//
//	value(y) = P * ((1+i)^(12y) - 1) / i,  i = rate/12
//
// At rate 0 each year's value is plain accumulation, P * 12y.
func (e *Engine) Growth(in model.GrowthInput) (*model.Result, error) {
	if err := in.Validate(); err != nil {
		return nil, decline(err)
	}

	i := in.AnnualRate / monthsPerYear
	points := make([]model.Point, 0, in.Years)
	value := 0.0
	for year := 1; year <= in.Years; year++ {
		value = in.MonthlyAmount * annuityFactor(i, year*monthsPerYear)
		points = append(points, model.Point{Year: year, Value: value})
	}

	invested := in.MonthlyAmount * float64(in.Years*monthsPerYear)
	return finished(&model.Result{
		Kind:   model.KindSIP,
		Points: points,
		Totals: model.Totals{
			Invested:   invested,
			Returns:    value - invested,
			FinalValue: value,
		},
	})
}
