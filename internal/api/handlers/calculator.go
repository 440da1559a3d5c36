package handlers

import (
	"net/http"

	"wealth-projections/internal/api/models"
	"wealth-projections/internal/config"
	"wealth-projections/internal/input"
	"wealth-projections/internal/model"

	"github.com/gin-gonic/gin"
)

// CalculatorHandler handles calculator metadata requests
type CalculatorHandler struct {
	cfg *config.Config
}

// NewCalculatorHandler creates a new calculator handler
func NewCalculatorHandler(cfg *config.Config) *CalculatorHandler {
	if cfg == nil {
		cfg = config.Default()
	}
	return &CalculatorHandler{cfg: cfg}
}

// ListCalculators handles GET /api/v1/calculators
func (h *CalculatorHandler) ListCalculators(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"calculators": Describe(h.cfg)})
}

var calculatorDescriptions = map[model.Kind]string{
	model.KindSIP:       "Fixed monthly investment compounded monthly.",
	model.KindStepUp:    "Monthly investment that increases by a fixed percentage every year.",
	model.KindInflation: "Future cost of something that costs a given amount today.",
	model.KindSWP:       "Fixed monthly withdrawal from an invested corpus until it runs out.",
}

var fieldInfo = map[string]models.ParameterInfo{
	input.FieldAmount:     {Type: "amount", Description: "Monthly investment"},
	input.FieldRate:       {Type: "percent", Description: "Expected annual return (inflation rate for the inflation calculator)"},
	input.FieldYears:      {Type: "years", Description: "Time period in years"},
	input.FieldStep:       {Type: "percent", Description: "Annual step-up of the monthly investment"},
	input.FieldCost:       {Type: "amount", Description: "Current cost"},
	input.FieldInvestment: {Type: "amount", Description: "Total investment"},
	input.FieldWithdrawal: {Type: "amount", Description: "Withdrawal per month"},
}

// Describe lists every calculator with its form fields, defaults and bounds.
func Describe(cfg *config.Config) []models.CalculatorInfo {
	out := make([]models.CalculatorInfo, 0, len(model.Kinds()))
	for _, kind := range model.Kinds() {
		calc := cfg.Calculators[kind]
		info := models.CalculatorInfo{
			Name:        kind,
			Title:       kind.Title(),
			Description: calculatorDescriptions[kind],
		}
		for _, name := range input.FieldNames(kind) {
			p := fieldInfo[name]
			p.Name = name
			p.Default = calc.Defaults[name]
			if b, ok := calc.Bounds[name]; ok {
				b := b
				p.Bounds = &b
			}
			info.Parameters = append(info.Parameters, p)
		}
		out = append(out, info)
	}
	return out
}
