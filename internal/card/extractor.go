// Package card holds the per-issuer card extraction strategies.
//
// Each issuer knows its own card-number layout (digit count, grouping) and
// carries whatever disambiguation rule is needed to avoid capturing an
// unrelated number with the same digit count. Strategies receive the
// line-preserving normalized text so anchor phrases and label adjacency can
// be checked. A strategy that finds nothing returns a zero Extraction; the
// orchestrator treats that as "issuer recognized, number not extracted", not
// as failure.
//
// Adding an issuer means adding one Strategy and one registry entry; the
// orchestrator never changes.
package card

import (
	"strings"

	"docscan/internal/issuer"
	"docscan/internal/patterns"
	"docscan/internal/textnorm"
	"docscan/pkg/models"
)

// Extraction is the outcome of one strategy run. CardNumber is empty when the
// layout did not match. Supporting holds secondary fields the issuer's layout
// happens to print (plan name, accommodation, CNS, validity).
type Extraction struct {
	CardNumber string
	Supporting models.Fields
}

// Found reports whether the strategy extracted a card number.
func (e Extraction) Found() bool { return e.CardNumber != "" }

// Strategy is the shared contract every issuer extractor implements.
type Strategy interface {
	// ID names the strategy for the method trace.
	ID() string

	// Extract runs the issuer's layout patterns against line-preserving
	// normalized text.
	Extract(text string) Extraction
}

// registry maps issuer ids to their strategies. The zero-value strategies are
// stateless and shared across invocations.
var registry = map[string]Strategy{
	issuer.Unimed:      unimedStrategy{},
	issuer.Bradesco:    bradescoStrategy{},
	issuer.Amil:        amilStrategy{},
	issuer.SulAmerica:  sulamericaStrategy{},
	issuer.Hapvida:     hapvidaStrategy{},
	issuer.Intermedica: genericStrategy{},
}

// ForIssuer returns the registered strategy for an issuer id.
func ForIssuer(id string) (Strategy, bool) {
	s, ok := registry[id]
	return s, ok
}

// Generic returns the issuer-agnostic fallback strategy. excludeCodes lists
// digit strings (such as the detected ANS code) that must not be mistaken for
// a card number.
func Generic(excludeCodes ...string) Strategy {
	return genericStrategy{exclude: excludeCodes}
}

// extractValidity finds the expiry date on a line carrying the VALIDADE label.
func extractValidity(text string) (string, bool) {
	for line := range textnorm.ExtractLines(text) {
		if !strings.Contains(line, "VALIDADE") {
			continue
		}
		if d, ok := patterns.MatchDate(line); ok {
			return d, true
		}
	}
	return "", false
}
