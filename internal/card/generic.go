package card

import (
	"regexp"

	"docscan/internal/patterns"
)

// genericStrategy is the issuer-agnostic fallback: the longest plausible
// digit run (9 to 20 digits after removing issuer-typical grouping), skipping
// runs that read as dates and any explicitly excluded codes such as the
// detected ANS registration.
type genericStrategy struct {
	exclude []string
}

// groupedRun matches digit sequences whose groups are joined by single
// spaces, dots or hyphens, so "12345 6789 0123" collapses to one candidate.
var groupedRun = regexp.MustCompile(`\d(?:[ .-]?\d)+`)

func (genericStrategy) ID() string { return "card-generic" }

func (g genericStrategy) Extract(text string) Extraction {
	best := ""
	for _, run := range groupedRun.FindAllString(text, -1) {
		digits := patterns.StripGrouping(run)
		if len(digits) < 9 || len(digits) > 20 {
			continue
		}
		if patterns.Degenerate(digits) {
			continue
		}
		if len(digits) == 16 && patterns.IsDate(digits[:8]) && patterns.IsDate(digits[8:]) {
			continue
		}
		if g.excluded(digits) {
			continue
		}
		if len(digits) > len(best) {
			best = digits
		}
	}
	return Extraction{CardNumber: best}
}

func (g genericStrategy) excluded(digits string) bool {
	for _, code := range g.exclude {
		if digits == code {
			return true
		}
	}
	return false
}
