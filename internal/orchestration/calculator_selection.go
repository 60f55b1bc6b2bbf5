package orchestration

import (
	"strings"

	"github.com/agbru/fibmemo/internal/fibonacci"
)

// GetCalculatorsToRun resolves an -algo value: one name, "all", or a comma
// separated list mixing both. Calculators appear once each, in the order
// first named ("all" expands in sorted registry order). Any unknown name
// makes the whole selection nil.
func GetCalculatorsToRun(algo string, factory fibonacci.CalculatorFactory) []fibonacci.Calculator {
	var names []string
	for _, part := range strings.Split(algo, ",") {
		part = strings.TrimSpace(part)
		if part == "all" {
			names = append(names, factory.List()...)
			continue
		}
		names = append(names, part)
	}

	seen := make(map[string]bool, len(names))
	var calculators []fibonacci.Calculator
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		calc, err := factory.Get(name)
		if err != nil {
			return nil
		}
		calculators = append(calculators, calc)
	}
	return calculators
}
