package projection

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"wealth-projections/internal/model"
)

func assertClose(t *testing.T, expected, actual, relTol float64, description string) {
	t.Helper()
	scale := math.Max(1, math.Abs(expected))
	if math.Abs(expected-actual) > relTol*scale {
		t.Errorf("%s: expected %.6f, got %.6f (diff %.6g)", description, expected, actual, actual-expected)
	}
}

func validRequests() []model.Request {
	return []model.Request{
		model.GrowthInput{MonthlyAmount: 5000, AnnualRate: 0.12, Years: 10},
		model.StepUpInput{MonthlyAmount: 5000, AnnualRate: 0.12, Years: 10, StepFraction: 0.10},
		model.InflationInput{PresentValue: 100000, AnnualRate: 0.06, Years: 10},
		model.WithdrawalInput{InitialAmount: 1000000, MonthlyWithdrawal: 10000, AnnualRate: 0.08, Years: 10},
	}
}

func TestRun_SeriesShape(t *testing.T) {
	e := New()
	for _, years := range []int{1, 2, 7, 14, 40} {
		for _, req := range validRequests() {
			req = withYears(req, years)
			res, err := e.Run(req)
			if err != nil {
				t.Fatalf("%s/%dy: unexpected error: %v", req.Kind(), years, err)
			}
			if res.Kind != req.Kind() {
				t.Errorf("%s: kind = %s", req.Kind(), res.Kind)
			}
			if len(res.Points) != years {
				t.Fatalf("%s/%dy: got %d points", req.Kind(), years, len(res.Points))
			}
			for i, p := range res.Points {
				if p.Year != i+1 {
					t.Errorf("%s/%dy: point %d has year %d", req.Kind(), years, i, p.Year)
				}
				if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
					t.Errorf("%s/%dy: point %d is %v", req.Kind(), years, i, p.Value)
				}
			}
		}
	}
}

func withYears(req model.Request, years int) model.Request {
	switch in := req.(type) {
	case model.GrowthInput:
		in.Years = years
		return in
	case model.StepUpInput:
		in.Years = years
		return in
	case model.InflationInput:
		in.Years = years
		return in
	case model.WithdrawalInput:
		in.Years = years
		return in
	}
	return req
}

// =============================================================================
// Growth (SIP)
// =============================================================================

func TestGrowth_ReferenceAnnuity(t *testing.T) {
	res, err := New().Growth(model.GrowthInput{MonthlyAmount: 10000, AnnualRate: 0.12, Years: 10})
	if err != nil {
		t.Fatal(err)
	}
	i := 0.12 / 12
	expected := 10000 * ((math.Pow(1+i, 120) - 1) / i)
	assertClose(t, expected, res.Totals.FinalValue, 1e-6, "final value")
	assertClose(t, expected, res.Final(), 1e-6, "last point")
	if math.Abs(res.Totals.FinalValue-2300387) > 1 {
		t.Errorf("final value %.2f not near 23,00,387", res.Totals.FinalValue)
	}
	assertClose(t, 1200000, res.Totals.Invested, 1e-12, "invested")
	assertClose(t, expected-1200000, res.Totals.Returns, 1e-6, "returns")
}

func TestGrowth_ZeroRate(t *testing.T) {
	tests := []struct {
		amount      float64
		years       int
		description string
	}{
		{5000, 10, "5k for 10y"},
		{1234.5, 3, "fractional amount"},
		{100, 1, "single year"},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			res, err := New().Growth(model.GrowthInput{MonthlyAmount: tc.amount, AnnualRate: 0, Years: tc.years})
			if err != nil {
				t.Fatal(err)
			}
			for _, p := range res.Points {
				assertClose(t, tc.amount*float64(p.Year)*12, p.Value, 1e-12, "accumulated value")
			}
			if res.Totals.Returns != 0 {
				t.Errorf("returns = %v, want 0", res.Totals.Returns)
			}
		})
	}
}

func TestGrowth_Increasing(t *testing.T) {
	res, err := New().Growth(model.GrowthInput{MonthlyAmount: 1000, AnnualRate: 0.08, Years: 25})
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(res.Points); i++ {
		if res.Points[i].Value <= res.Points[i-1].Value {
			t.Fatalf("year %d value %.2f not above year %d value %.2f",
				res.Points[i].Year, res.Points[i].Value, res.Points[i-1].Year, res.Points[i-1].Value)
		}
	}
}

// =============================================================================
// Step-up SIP
// =============================================================================

func TestStepUp_InvestsMoreThanFlat(t *testing.T) {
	e := New()
	for _, years := range []int{2, 5, 10, 30} {
		flat, err := e.Growth(model.GrowthInput{MonthlyAmount: 5000, AnnualRate: 0.12, Years: years})
		if err != nil {
			t.Fatal(err)
		}
		stepped, err := e.StepUp(model.StepUpInput{MonthlyAmount: 5000, AnnualRate: 0.12, Years: years, StepFraction: 0.05})
		if err != nil {
			t.Fatal(err)
		}
		if stepped.Totals.Invested <= flat.Totals.Invested {
			t.Errorf("%dy: stepped invested %.2f <= flat invested %.2f", years, stepped.Totals.Invested, flat.Totals.Invested)
		}
		if stepped.Totals.FinalValue <= flat.Totals.FinalValue {
			t.Errorf("%dy: stepped final %.2f <= flat final %.2f", years, stepped.Totals.FinalValue, flat.Totals.FinalValue)
		}
	}
}

func TestStepUp_ZeroStepMatchesGrowth(t *testing.T) {
	e := New()
	for _, rate := range []float64{0, 0.06, 0.12} {
		flat, err := e.Growth(model.GrowthInput{MonthlyAmount: 2500, AnnualRate: rate, Years: 15})
		if err != nil {
			t.Fatal(err)
		}
		stepped, err := e.StepUp(model.StepUpInput{MonthlyAmount: 2500, AnnualRate: rate, Years: 15})
		if err != nil {
			t.Fatal(err)
		}
		assertClose(t, flat.Totals.FinalValue, stepped.Totals.FinalValue, 1e-9, "final value")
		assertClose(t, flat.Totals.Invested, stepped.Totals.Invested, 1e-12, "invested")
	}
}

func TestStepUp_Hand(t *testing.T) {
	// 1000/month, 10% step, no growth: 12000 + 13200 + 14520.
	res, err := New().StepUp(model.StepUpInput{MonthlyAmount: 1000, AnnualRate: 0, Years: 3, StepFraction: 0.10})
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{12000, 25200, 39720}
	for i, p := range res.Points {
		assertClose(t, want[i], p.Value, 1e-12, "running value")
	}
	assertClose(t, 39720, res.Totals.Invested, 1e-12, "invested")
	assertClose(t, 0, res.Totals.Returns, 1e-9, "returns")
}

// =============================================================================
// Inflation
// =============================================================================

func TestInflation_Monotonic(t *testing.T) {
	e := New()
	for _, years := range []int{1, 3, 10, 50} {
		res, err := e.Inflation(model.InflationInput{PresentValue: 100000, AnnualRate: 0.06, Years: years})
		if err != nil {
			t.Fatal(err)
		}
		prev := 100000.0
		for _, p := range res.Points {
			if p.Value <= prev {
				t.Fatalf("%dy: year %d value %.4f not above %.4f", years, p.Year, p.Value, prev)
			}
			prev = p.Value
		}

		flat, err := e.Inflation(model.InflationInput{PresentValue: 100000, AnnualRate: 0, Years: years})
		if err != nil {
			t.Fatal(err)
		}
		for _, p := range flat.Points {
			if p.Value != 100000 {
				t.Fatalf("%dy: zero-rate year %d value %.4f", years, p.Year, p.Value)
			}
		}
	}
}

func TestInflation_Totals(t *testing.T) {
	res, err := New().Inflation(model.InflationInput{PresentValue: 50000, AnnualRate: 0.05, Years: 10})
	if err != nil {
		t.Fatal(err)
	}
	assertClose(t, 50000, res.Totals.StartValue, 0, "start value")
	assertClose(t, 50000*math.Pow(1.05, 10), res.Totals.FinalValue, 1e-12, "final value")
}

// =============================================================================
// Withdrawal (SWP)
// =============================================================================

func TestWithdrawal_DepletesAndStaysZero(t *testing.T) {
	res, err := New().Withdrawal(model.WithdrawalInput{
		InitialAmount: 100000, MonthlyWithdrawal: 50000, AnnualRate: 0, Years: 5,
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range res.Points {
		if p.Value != 0 {
			t.Errorf("year %d value %.2f, want 0", p.Year, p.Value)
		}
	}
	assertClose(t, 50000*60, res.Totals.Withdrawn, 0, "withdrawn")
	if res.Totals.FinalValue != 0 {
		t.Errorf("final = %.2f, want 0", res.Totals.FinalValue)
	}
}

func TestWithdrawal_AbsorbingFloor(t *testing.T) {
	tests := []struct {
		in          model.WithdrawalInput
		description string
	}{
		{model.WithdrawalInput{InitialAmount: 1000000, MonthlyWithdrawal: 15000, AnnualRate: 0.08, Years: 14}, "depletes mid-horizon with growth"},
		{model.WithdrawalInput{InitialAmount: 500000, MonthlyWithdrawal: 9000, AnnualRate: 0.12, Years: 30}, "slow depletion"},
		{model.WithdrawalInput{InitialAmount: 120000, MonthlyWithdrawal: 1000, AnnualRate: 0, Years: 12}, "exact zero at year 10"},
		{model.WithdrawalInput{InitialAmount: 10, MonthlyWithdrawal: 1000000, AnnualRate: 0.5, Years: 3}, "depletes in first month"},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			res, err := New().Withdrawal(tc.in)
			if err != nil {
				t.Fatal(err)
			}
			depleted := false
			for _, p := range res.Points {
				if p.Value < 0 {
					t.Fatalf("year %d negative value %.2f", p.Year, p.Value)
				}
				if depleted && p.Value != 0 {
					t.Fatalf("year %d recovered to %.2f after depletion", p.Year, p.Value)
				}
				if p.Value == 0 {
					depleted = true
				}
			}
			if !depleted {
				t.Fatalf("expected depletion within %d years", tc.in.Years)
			}
		})
	}
}

func TestWithdrawal_ZeroRateLinear(t *testing.T) {
	res, err := New().Withdrawal(model.WithdrawalInput{InitialAmount: 120000, MonthlyWithdrawal: 1000, AnnualRate: 0, Years: 12})
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range res.Points {
		want := math.Max(0, 120000-12000*float64(p.Year))
		if p.Value != want {
			t.Errorf("year %d value %.2f, want %.2f", p.Year, p.Value, want)
		}
	}
}

func TestWithdrawal_Sustainable(t *testing.T) {
	// 8%/12 of 10L is ~6667 a month, above the 1000 withdrawal.
	res, err := New().Withdrawal(model.WithdrawalInput{InitialAmount: 1000000, MonthlyWithdrawal: 1000, AnnualRate: 0.08, Years: 10})
	if err != nil {
		t.Fatal(err)
	}
	if res.Totals.FinalValue <= 1000000 {
		t.Errorf("final %.2f should exceed the initial amount", res.Totals.FinalValue)
	}
	if res.Totals.FinalValue != res.Final() {
		t.Errorf("final total %.2f != last point %.2f", res.Totals.FinalValue, res.Final())
	}
}

// =============================================================================
// Shared contract
// =============================================================================

func TestRun_Idempotent(t *testing.T) {
	e := New()
	for _, req := range validRequests() {
		a, err := e.Run(req)
		if err != nil {
			t.Fatal(err)
		}
		b, err := e.Run(req)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(a, b) {
			t.Errorf("%s: repeated runs differ", req.Kind())
		}
	}
}

func TestRun_Declines(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		req         model.Request
		description string
	}{
		{model.GrowthInput{MonthlyAmount: 5000, AnnualRate: 0.12, Years: 0}, "sip zero horizon"},
		{model.GrowthInput{MonthlyAmount: 0, AnnualRate: 0.12, Years: 10}, "sip zero principal"},
		{model.GrowthInput{MonthlyAmount: 5000, AnnualRate: -0.01, Years: 10}, "sip negative rate"},
		{model.GrowthInput{MonthlyAmount: 5000, AnnualRate: nan, Years: 10}, "sip NaN rate"},
		{model.StepUpInput{MonthlyAmount: 5000, AnnualRate: 0.12, Years: 0, StepFraction: 0.1}, "stepup zero horizon"},
		{model.StepUpInput{MonthlyAmount: 0, AnnualRate: 0.12, Years: 10, StepFraction: 0.1}, "stepup zero principal"},
		{model.StepUpInput{MonthlyAmount: 5000, AnnualRate: -0.01, Years: 10, StepFraction: 0.1}, "stepup negative rate"},
		{model.StepUpInput{MonthlyAmount: 5000, AnnualRate: 0.12, Years: 10, StepFraction: -0.1}, "stepup negative step"},
		{model.InflationInput{PresentValue: 100000, AnnualRate: 0.06, Years: 0}, "inflation zero horizon"},
		{model.InflationInput{PresentValue: 0, AnnualRate: 0.06, Years: 10}, "inflation zero principal"},
		{model.InflationInput{PresentValue: 100000, AnnualRate: -0.01, Years: 10}, "inflation negative rate"},
		{model.InflationInput{PresentValue: nan, AnnualRate: 0.06, Years: 10}, "inflation NaN principal"},
		{model.WithdrawalInput{InitialAmount: 100000, MonthlyWithdrawal: 1000, AnnualRate: 0.08, Years: 0}, "swp zero horizon"},
		{model.WithdrawalInput{InitialAmount: 0, MonthlyWithdrawal: 1000, AnnualRate: 0.08, Years: 10}, "swp zero principal"},
		{model.WithdrawalInput{InitialAmount: 100000, MonthlyWithdrawal: 1000, AnnualRate: -0.01, Years: 10}, "swp negative rate"},
		{model.WithdrawalInput{InitialAmount: 100000, MonthlyWithdrawal: 0, AnnualRate: 0.08, Years: 10}, "swp zero withdrawal"},
		{model.WithdrawalInput{InitialAmount: math.Inf(1), MonthlyWithdrawal: 1000, AnnualRate: 0.08, Years: 10}, "swp infinite principal"},
		{nil, "nil request"},
	}
	e := New()
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			res, err := e.Run(tc.req)
			if !errors.Is(err, ErrNotComputable) {
				t.Fatalf("err = %v, want ErrNotComputable", err)
			}
			if res != nil {
				t.Fatalf("expected no result, got %+v", res)
			}
		})
	}
}

func TestRun_DeclinesOverflow(t *testing.T) {
	tests := []struct {
		req         model.Request
		description string
	}{
		{model.GrowthInput{MonthlyAmount: 5000, AnnualRate: 1e6, Years: 10}, "sip huge rate"},
		{model.StepUpInput{MonthlyAmount: 5000, AnnualRate: 1e6, Years: 10, StepFraction: 0.1}, "stepup huge rate"},
		{model.StepUpInput{MonthlyAmount: 5000, AnnualRate: 0.12, Years: 40, StepFraction: 1e12}, "stepup huge step"},
		{model.InflationInput{PresentValue: 100000, AnnualRate: 1e6, Years: 60}, "inflation huge rate"},
		{model.WithdrawalInput{InitialAmount: 1000000, MonthlyWithdrawal: 1000, AnnualRate: 1e6, Years: 10}, "swp huge rate"},
	}
	e := New()
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			res, err := e.Run(tc.req)
			if !errors.Is(err, ErrNotComputable) {
				t.Fatalf("err = %v, want ErrNotComputable", err)
			}
			if res != nil {
				t.Fatalf("expected no result, got %d points", len(res.Points))
			}
		})
	}
}

func TestRun_LargeButFinite(t *testing.T) {
	res, err := New().Growth(model.GrowthInput{MonthlyAmount: 5000, AnnualRate: 3, Years: 40})
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if math.IsInf(res.Totals.FinalValue, 0) || res.Totals.FinalValue < 1e18 {
		t.Errorf("final value = %g, want a large finite value", res.Totals.FinalValue)
	}
}
