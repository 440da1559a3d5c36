package projection

import (
	"math"

	"wealth-projections/internal/model"
)

// Inflation compounds a present cost forward yearly: value(y) = PV * (1+r)^y.
func (e *Engine) Inflation(in model.InflationInput) (*model.Result, error) {
	if err := in.Validate(); err != nil {
		return nil, decline(err)
	}

	points := make([]model.Point, 0, in.Years)
	for year := 1; year <= in.Years; year++ {
		points = append(points, model.Point{
			Year:  year,
			Value: in.PresentValue * math.Pow(1+in.AnnualRate, float64(year)),
		})
	}

	return finished(&model.Result{
		Kind:   model.KindInflation,
		Points: points,
		Totals: model.Totals{
			StartValue: in.PresentValue,
			FinalValue: points[len(points)-1].Value,
		},
	})
}
