package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"wealth-projections/internal/config"
	"wealth-projections/internal/input"
	"wealth-projections/internal/model"
	"wealth-projections/internal/present"
	"wealth-projections/internal/projection"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "project":
		cmdProject(os.Args[2:])
	case "calculators":
		cmdCalculators(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli project --calculator sip --amount 10000 --rate 12 --years 10 [--out results/sip.xlsx]")
	fmt.Println("  cli project --calculator stepup --amount 5000 --rate 12 --years 10 --step 10")
	fmt.Println("  cli project --calculator swp --amount 1000000 --withdrawal 10000 --rate 8 --years 10")
	fmt.Println("  cli calculators [--config examples/config.yaml]")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - rates and steps are percentages; unset values come from the calculator defaults")
	fmt.Println("  - --amount is the monthly investment (sip, stepup), current cost (inflation) or corpus (swp)")
	fmt.Println("  - --out picks the export format from its extension: .csv, .xlsx or .pdf")
}

func cmdProject(args []string) {
	fs := flag.NewFlagSet("project", flag.ExitOnError)
	calc := fs.String("calculator", "sip", "Calculator: sip, stepup, inflation, swp")
	amount := fs.String("amount", "", "Monthly investment, current cost or starting corpus")
	rate := fs.String("rate", "", "Annual rate in percent")
	years := fs.String("years", "", "Time period in years")
	step := fs.String("step", "", "Annual step-up in percent (stepup)")
	withdrawal := fs.String("withdrawal", "", "Monthly withdrawal (swp)")
	baseYear := fs.Int("base-year", 0, "Year the series counts from (0=config or current year)")
	cfgPath := fs.String("config", "", "Path to YAML config")
	outPath := fs.String("out", "", "Optional export path (.csv, .xlsx, .pdf)")
	_ = fs.Parse(args)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fail(err)
	}
	kind, err := model.ParseKind(*calc)
	if err != nil {
		fail(err)
	}

	overrides := map[string]string{}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "amount":
			overrides[amountField(kind)] = *amount
		case "rate":
			overrides[input.FieldRate] = *rate
		case "years":
			overrides[input.FieldYears] = *years
		case "step":
			overrides[input.FieldStep] = *step
		case "withdrawal":
			overrides[input.FieldWithdrawal] = *withdrawal
		}
	})

	req, err := projectRequest(cfg, kind, overrides)
	if err != nil {
		fail(err)
	}
	res, err := projection.New().Run(req)
	if errors.Is(err, projection.ErrNotComputable) {
		fmt.Fprintf(os.Stderr, "nothing to project: %v\n", err)
		os.Exit(1)
	}
	if err != nil {
		fail(err)
	}

	by := *baseYear
	if by <= 0 {
		by = cfg.BaseYear(time.Now())
	}
	view := present.Render(res, by)
	printView(view)

	if *outPath == "" {
		return
	}
	format, err := present.ParseFormat(filepath.Ext(*outPath))
	if err != nil {
		fail(err)
	}
	body, err := present.Export(view, format)
	if err != nil {
		fail(err)
	}
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		fail(err)
	}
	if err := os.WriteFile(*outPath, body, 0o644); err != nil {
		fail(err)
	}
	fmt.Printf("Wrote %s export to %s\n", format, *outPath)
}

func cmdCalculators(args []string) {
	fs := flag.NewFlagSet("calculators", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	_ = fs.Parse(args)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fail(err)
	}
	for _, kind := range model.Kinds() {
		calc := cfg.Calculators[kind]
		parts := make([]string, 0, len(calc.Defaults))
		for _, name := range input.FieldNames(kind) {
			part := fmt.Sprintf("%s=%s", name, calc.Defaults[name])
			if b, ok := calc.Bounds[name]; ok {
				part += fmt.Sprintf(" [%g..%g]", b.Min, b.Max)
			}
			parts = append(parts, part)
		}
		fmt.Printf("%-10s %-24s %s\n", kind, kind.Title(), strings.Join(parts, ", "))
	}
}

func printView(v present.View) {
	fmt.Println(v.Title)
	fmt.Printf("%-6s %18s %10s\n", "year", v.SeriesLabel, "lakhs")
	for i, label := range v.Labels {
		fmt.Printf("%-6s %18s %10s\n", label, present.FormatCurrency(v.Values[i]), present.AxisLabel(v.Values[i]))
	}
	fmt.Println("")
	for _, t := range v.Totals {
		fmt.Printf("%-16s %s\n", t.Name, t.Display)
	}
}

// projectRequest fills the calculator defaults, applies the flags that were set
// and enforces the configured horizon cap.
func projectRequest(cfg *config.Config, kind model.Kind, overrides map[string]string) (model.Request, error) {
	fields := input.Fields{}
	for k, v := range cfg.Calculators[kind].Defaults {
		fields[k] = v
	}
	for k, v := range overrides {
		fields[k] = v
	}
	if years, ok := input.ParseWhole(fields[input.FieldYears]); ok {
		if err := cfg.CheckYears(kind, years); err != nil {
			return nil, err
		}
	}
	return input.Build(kind, fields)
}

func amountField(kind model.Kind) string {
	switch kind {
	case model.KindInflation:
		return input.FieldCost
	case model.KindSWP:
		return input.FieldInvestment
	default:
		return input.FieldAmount
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
