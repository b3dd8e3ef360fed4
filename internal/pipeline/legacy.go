package pipeline

import (
	"docscan/internal/identity"
	"docscan/internal/patterns"
	"docscan/pkg/models"
)

// legacyExtract is the pre-strategy heuristic path: broad generic pattern
// matching with no issuer awareness. It exists as a fallback for documents
// the modern path scores too low on, and its results are tagged so callers
// can see which path answered.
func legacyExtract(docType models.DocumentTypeResult, lines []string, linesText string) (models.Fields, map[string]string) {
	fields := models.Fields{}
	strategies := map[string]string{}

	if docType.Type == models.DocumentTypeInsuranceCard {
		if run, ok := patterns.LongestDigitRun(linesText, 9, 20); ok && !patterns.Degenerate(run) {
			fields[models.FieldCardNumber] = run
			strategies[models.FieldCardNumber] = "legacy-longest-run"
		}
	}

	if name, ok := legacyName(lines); ok {
		fields[models.FieldHolderName] = name
		strategies[models.FieldHolderName] = "legacy-structural-name"
	}

	for _, line := range lines {
		if d, ok := patterns.MatchDate(line); ok {
			fields[models.FieldBirthDate] = d
			strategies[models.FieldBirthDate] = "legacy-first-date"
			break
		}
	}

	return fields, strategies
}

// legacyName scans for any line passing the shared name validity predicate.
func legacyName(lines []string) (string, bool) {
	for _, line := range lines {
		if !identity.ValidName(line) {
			continue
		}
		return line, true
	}
	return "", false
}
