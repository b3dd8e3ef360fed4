package card

import (
	"regexp"

	"docscan/internal/patterns"
)

// amilStrategy extracts Amil cards. The membership number is 9 digits with no
// grouping. Nine-digit runs also show up inside dates mangled by OCR, so a
// match immediately preceded by a legible birth-date label is skipped.
type amilStrategy struct{}

var (
	amilNumber     = regexp.MustCompile(`\b\d{9}\b`)
	amilDateLabels = []string{"NASCIMENTO", "DATA NASC", "NASC", "DT NASC"}
)

func (amilStrategy) ID() string { return "card-amil" }

func (amilStrategy) Extract(text string) Extraction {
	for _, loc := range amilNumber.FindAllStringIndex(text, -1) {
		candidate := text[loc[0]:loc[1]]
		if patterns.Degenerate(candidate) {
			continue
		}
		if precededByDateLabel(text, loc[0]) {
			continue
		}
		return Extraction{CardNumber: candidate}
	}
	return Extraction{}
}

// precededByDateLabel checks the 24 characters before the match for a
// birth-date label.
func precededByDateLabel(text string, start int) bool {
	from := start - 24
	if from < 0 {
		from = 0
	}
	return patterns.HasAnyToken(text[from:start], amilDateLabels)
}
