package card

import (
	"regexp"
	"strings"

	"docscan/internal/patterns"
)

// sulamericaStrategy extracts SulAmérica cards: 17 digits printed as
// 5-4-4-4 groups. The groups are concatenated in literal order.
type sulamericaStrategy struct{}

var sulamericaCard = regexp.MustCompile(`\b(\d{5})[ .]?(\d{4})[ .]?(\d{4})[ .]?(\d{4})\b`)

func (sulamericaStrategy) ID() string { return "card-sulamerica" }

func (sulamericaStrategy) Extract(text string) Extraction {
	m := sulamericaCard.FindStringSubmatch(text)
	if m == nil {
		return Extraction{}
	}
	number := strings.Join(m[1:], "")
	if patterns.Degenerate(number) {
		return Extraction{}
	}
	return Extraction{CardNumber: number}
}
