package projection

import (
	"errors"
	"fmt"
	"math"

	"wealth-projections/internal/model"
)

// ErrNotComputable marks a declined computation: the input is incomplete or out of range.
// It is not a failure; callers keep whatever they showed before.
var ErrNotComputable = errors.New("projection not computable")

const monthsPerYear = 12

// Engine is stateless; the zero value is ready to use.
type Engine struct{}

func New() *Engine { return &Engine{} }

// Run dispatches req to the projection for its calculator.
func (e *Engine) Run(req model.Request) (*model.Result, error) {
	switch in := req.(type) {
	case model.GrowthInput:
		return e.Growth(in)
	case model.StepUpInput:
		return e.StepUp(in)
	case model.InflationInput:
		return e.Inflation(in)
	case model.WithdrawalInput:
		return e.Withdrawal(in)
	case nil:
		return nil, fmt.Errorf("%w: request is nil", ErrNotComputable)
	default:
		return nil, fmt.Errorf("unsupported request type %T", req)
	}
}

func decline(err error) error {
	return fmt.Errorf("%w: %v", ErrNotComputable, err)
}

// finished declines a result that overflowed. Inputs can each be in range and
// still compound past float64 (a huge rate over a long horizon).
func finished(res *model.Result) (*model.Result, error) {
	t := res.Totals
	for _, x := range []float64{t.Invested, t.Returns, t.StartValue, t.Withdrawn, t.FinalValue} {
		if !isFinite(x) {
			return nil, decline(errors.New("projection overflows"))
		}
	}
	for _, p := range res.Points {
		if !isFinite(p.Value) {
			return nil, decline(fmt.Errorf("projection overflows in year %d", p.Year))
		}
	}
	return res, nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// annuityFactor is the future value of 1 paid at the end of each of n months at
// monthly rate i. At i == 0 the closed form divides by zero; the limit is n.
func annuityFactor(i float64, n int) float64 {
	if i == 0 {
		return float64(n)
	}
	return (math.Pow(1+i, float64(n)) - 1) / i
}
