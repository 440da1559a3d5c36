package model

// Point is the projected value at the end of a year. Year starts at 1.
type Point struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// Totals holds the summary amounts of a run.
// Only the fields meaningful for the calculator are set:
//   - sip, stepup: Invested, Returns, FinalValue
//   - inflation:   StartValue, FinalValue
//   - swp:         Withdrawn, FinalValue
type Totals struct {
	Invested   float64 `json:"invested"`
	Returns    float64 `json:"returns"`
	StartValue float64 `json:"start_value"`
	Withdrawn  float64 `json:"withdrawn"`
	FinalValue float64 `json:"final_value"`
}

// Result is one projection run: one point per year, in order, plus totals.
type Result struct {
	Kind   Kind    `json:"calculator"`
	Points []Point `json:"points"`
	Totals Totals  `json:"totals"`
}

// Final returns the last point's value, or 0 for an empty series.
func (r *Result) Final() float64 {
	if r == nil || len(r.Points) == 0 {
		return 0
	}
	return r.Points[len(r.Points)-1].Value
}
