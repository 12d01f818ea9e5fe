package services

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/custodia-labs/yieldcast/internal/core/domain"
)

var printer = message.NewPrinter(language.English)

// FormatYield renders a yield with two decimals, thousands separators
// and the unit, e.g. "1,234.56 kg/ha".
func FormatYield(yield float64) string {
	return printer.Sprintf("%.2f %s", yield, domain.YieldUnit)
}

// FormatScore renders an importance score with thousands separators.
func FormatScore(score float64) string {
	if score == float64(int64(score)) {
		return printer.Sprintf("%d", int64(score))
	}
	return printer.Sprintf("%.4f", score)
}
