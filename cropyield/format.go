package cropyield

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// AppTitle heads the desktop window and the HTML report.
const AppTitle = "🌾 Farmer-Friendly Crop Yield Predictor"

// Formatter renders results the way the form displays them.
type Formatter struct {
	printer  *message.Printer
	symbol   string
	decimals int
}

// NewFormatter builds a formatter for the configured locale and currency.
// Amount grouping follows the locale; decimals follow the currency.
func NewFormatter(cfg DisplayConfig) (*Formatter, error) {
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", cfg.Locale, err)
	}
	unit, err := currency.ParseISO(cfg.Currency)
	if err != nil {
		return nil, fmt.Errorf("parse currency %q: %w", cfg.Currency, err)
	}
	scale, _ := currency.Standard.Rounding(unit)
	symbol := cfg.CurrencySymbol
	if symbol == "" {
		symbol = unit.String() + " "
	}
	return &Formatter{printer: message.NewPrinter(tag), symbol: symbol, decimals: scale}, nil
}

// Acres renders an area in acres.
func (f *Formatter) Acres(acres float64) string {
	return fmt.Sprintf("%.2f acres", acres)
}

// YieldKg renders a total yield.
func (f *Formatter) YieldKg(kg float64) string {
	return fmt.Sprintf("%.2f kg", kg)
}

// Sacks renders a sack count rounded to whole sacks.
func (f *Formatter) Sacks(sacks float64) string {
	return fmt.Sprintf("%.0f sacks", sacks)
}

// Amount renders a grouped number with the currency's decimals, without symbol.
func (f *Formatter) Amount(v float64) string {
	return f.printer.Sprint(number.Decimal(v, number.Scale(f.decimals)))
}

// Revenue renders a currency amount, e.g. ₹1,000,000.00.
func (f *Formatter) Revenue(v float64) string {
	return f.symbol + f.Amount(v)
}

// Summary is the rendered output of one prediction.
type Summary struct {
	Yield   string
	Sacks   string
	Revenue string
}

// Summarize renders the three result lines.
func (f *Formatter) Summarize(res Result) Summary {
	return Summary{
		Yield:   "Predicted Yield: " + f.YieldKg(res.Metrics.TotalYieldKg),
		Sacks:   "Equivalent Sacks: " + f.Sacks(res.Metrics.TotalSacks),
		Revenue: "Estimated Revenue: " + f.Revenue(res.Metrics.TotalRevenue),
	}
}

// AreaLine renders the live conversion under the area field.
func (f *Formatter) AreaLine(hectares float64) string {
	return "Irrigated Area: " + f.Acres(HectaresToAcres(hectares))
}
