package card

import (
	"regexp"

	"docscan/internal/patterns"
)

// hapvidaStrategy extracts Hapvida cards: 16 digits, optionally grouped
// 4-4-4-4. A 16-digit run that reads as two concatenated DDMMYYYY dates is
// rejected (issue date next to validity date survives OCR as one run).
type hapvidaStrategy struct{}

var hapvidaCard = regexp.MustCompile(`\b(\d{4})[ .]?(\d{4})[ .]?(\d{4})[ .]?(\d{4})\b`)

func (hapvidaStrategy) ID() string { return "card-hapvida" }

func (hapvidaStrategy) Extract(text string) Extraction {
	for _, m := range hapvidaCard.FindAllStringSubmatch(text, -1) {
		number := m[1] + m[2] + m[3] + m[4]
		if patterns.Degenerate(number) {
			continue
		}
		if patterns.IsDate(number[:8]) && patterns.IsDate(number[8:]) {
			continue
		}
		return Extraction{CardNumber: number}
	}
	return Extraction{}
}
