// Package scale rescales free-form ingredient quantities like "2 dl"
// or "1/2 tl" when the reader asks for a different serving count.
package scale

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/Knetic/govaluate"
)

// A quantity starts with an optional numeric amount (integer, decimal
// with comma or dot, or a simple fraction) followed by the unit text.
var amountPattern = regexp.MustCompile(`^\s*([0-9]+(?:[.,][0-9]+)?(?:\s*/\s*[0-9]+(?:[.,][0-9]+)?)?)\s*(.*)$`)

// Factor computes the multiplier from the stored serving count to the
// requested one. Zero servings on either side means scaling is not
// possible and the factor collapses to 1.
func Factor(fromServings, toServings uint) float64 {
	if fromServings == 0 || toServings == 0 {
		return 1
	}
	return float64(toServings) / float64(fromServings)
}

// Quantity multiplies the leading numeric amount of a quantity string
// by factor and keeps the unit text as-is. Quantities without a
// leading amount ("ripaus suolaa") are returned unchanged: there is
// nothing meaningful to multiply.
func Quantity(quantity string, factor float64) (string, error) {
	m := amountPattern.FindStringSubmatch(quantity)
	if m == nil || strings.TrimSpace(m[1]) == "" {
		return quantity, nil
	}

	// The amount is a plain arithmetic expression ("1/2", "2,5"), so
	// it can be handed to the evaluator with the factor as parameter.
	expr := strings.ReplaceAll(strings.TrimSpace(m[1]), ",", ".")
	expression, err := govaluate.NewEvaluableExpression("(" + expr + ") * factor")
	if err != nil {
		return "", fmt.Errorf("invalid amount in quantity %q: %w", quantity, err)
	}
	result, err := expression.Evaluate(map[string]interface{}{"factor": factor})
	if err != nil {
		return "", fmt.Errorf("failed to scale quantity %q: %w", quantity, err)
	}
	amount, ok := result.(float64)
	if !ok {
		return "", fmt.Errorf("amount of quantity %q did not evaluate to a number", quantity)
	}

	unit := strings.TrimSpace(m[2])
	if unit == "" {
		return formatAmount(amount), nil
	}
	return formatAmount(amount) + " " + unit, nil
}

// formatAmount renders the scaled amount the way Finnish recipes write
// numbers: integers bare, everything else with at most two decimals
// and a comma separator.
func formatAmount(v float64) string {
	rounded := math.Round(v*100) / 100
	if rounded == math.Trunc(rounded) {
		return fmt.Sprintf("%d", int64(rounded))
	}
	s := strings.TrimRight(fmt.Sprintf("%.2f", rounded), "0")
	s = strings.TrimRight(s, ".")
	return strings.ReplaceAll(s, ".", ",")
}
