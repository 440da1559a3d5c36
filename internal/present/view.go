package present

import (
	"math"
	"strconv"

	"wealth-projections/internal/model"
)

// Total is one named summary figure.
type Total struct {
	Name    string  `json:"name"`
	Amount  float64 `json:"amount"`
	Display string  `json:"display"`
}

// View is what a chart and its summary panel need: labels, whole-unit values and
// formatted totals. Stale is set when the view is a previous render kept on
// screen because the latest input was declined.
type View struct {
	Calculator  model.Kind `json:"calculator"`
	Title       string     `json:"title"`
	SeriesLabel string     `json:"series_label"`
	Labels      []string   `json:"labels"`
	Values      []float64  `json:"values"`
	Totals      []Total    `json:"totals"`
	Stale       bool       `json:"stale"`
}

// Render builds the view of res. Year y is labelled baseYear+y.
func Render(res *model.Result, baseYear int) View {
	v := View{
		Calculator:  res.Kind,
		Title:       res.Kind.Title(),
		SeriesLabel: seriesLabel(res.Kind),
		Labels:      make([]string, 0, len(res.Points)),
		Values:      make([]float64, 0, len(res.Points)),
	}
	for _, p := range res.Points {
		v.Labels = append(v.Labels, strconv.Itoa(baseYear+p.Year))
		v.Values = append(v.Values, chartValue(res.Kind, p.Value))
	}

	t := res.Totals
	switch res.Kind {
	case model.KindSIP, model.KindStepUp:
		v.Totals = []Total{
			total("Invested Amount", t.Invested),
			total("Est. Returns", t.Returns),
			total("Total Value", t.FinalValue),
		}
	case model.KindInflation:
		v.Totals = []Total{
			total("Current Cost", t.StartValue),
			total("Future Cost", t.FinalValue),
		}
	case model.KindSWP:
		v.Totals = []Total{
			total("Total Withdrawn", t.Withdrawn),
			total("Final Value", t.FinalValue),
		}
	}
	return v
}

func total(name string, amount float64) Total {
	return Total{Name: name, Amount: amount, Display: FormatCurrency(amount)}
}

func chartValue(kind model.Kind, x float64) float64 {
	x = math.Round(x)
	if kind == model.KindSWP && x < 0 {
		return 0
	}
	return x
}

func seriesLabel(kind model.Kind) string {
	switch kind {
	case model.KindInflation:
		return "Future Cost"
	case model.KindSWP:
		return "Remaining Value"
	default:
		return "Investment Value"
	}
}

// Total returns the named total and whether it exists.
func (v View) Total(name string) (Total, bool) {
	for _, t := range v.Totals {
		if t.Name == name {
			return t, true
		}
	}
	return Total{}, false
}
