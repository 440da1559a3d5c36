package projection

import "wealth-projections/internal/model"

// Withdrawal simulates a systematic withdrawal plan month by month. Each month
// the balance grows at rate/12, the withdrawal is taken, and the balance is
// floored at zero. Once it hits zero it stays there: growth on zero is zero and
// every later withdrawal is clamped away.
//
// Only year-end balances are reported. Clamping is path dependent, so there is
// no closed form.
func (e *Engine) Withdrawal(in model.WithdrawalInput) (*model.Result, error) {
	if err := in.Validate(); err != nil {
		return nil, decline(err)
	}

	i := in.AnnualRate / monthsPerYear
	points := make([]model.Point, 0, in.Years)
	remaining := in.InitialAmount
	for year := 1; year <= in.Years; year++ {
		for month := 1; month <= monthsPerYear; month++ {
			remaining = remaining*(1+i) - in.MonthlyWithdrawal
			if remaining < 0 {
				remaining = 0
			}
		}
		points = append(points, model.Point{Year: year, Value: remaining})
	}

	return finished(&model.Result{
		Kind:   model.KindSWP,
		Points: points,
		Totals: model.Totals{
			Withdrawn:  in.MonthlyWithdrawal * float64(in.Years*monthsPerYear),
			FinalValue: remaining,
		},
	})
}
