// Package issuer maps card text and regulatory codes to known insurance
// operators.
//
// Two independent signals feed identification: the ANS code looked up against
// the operator table, and brand tokens found directly in the text. Either may
// succeed alone. When both resolve and disagree, the code wins: it is the
// regulator-assigned identifier, while brand tokens can appear in unrelated
// text (a Unimed logo on a partner clinic's card, for instance).
package issuer

import (
	"strings"

	"github.com/rs/zerolog"

	"docscan/internal/logger"
	"docscan/pkg/models"
)

// Detection is the detector's verdict: the strategy id used to pick a card
// extractor plus the identity reported to callers. ID is empty when neither
// signal resolved.
type Detection struct {
	ID       string
	Identity models.IssuerIdentity
}

// Detector identifies issuers from normalized text.
type Detector struct {
	log zerolog.Logger
}

// NewDetector creates an issuer detector.
func NewDetector() *Detector {
	return &Detector{log: logger.WithComponent("issuer-detector")}
}

// Identify resolves the issuer from the text and an optional regulatory code
// (pass "" when the code detector found nothing).
func (d *Detector) Identify(text, code string) Detection {
	var det Detection
	det.Identity.Code = code

	codeID, codeName, codeOK := "", "", false
	if code != "" {
		codeID, codeName, codeOK = LookupCode(code)
	}

	brandID, brandName, brandOK := matchBrand(text)

	switch {
	case codeOK:
		det.ID = codeID
		det.Identity.Name = codeName
		if brandOK && brandID != codeID {
			d.log.Warn().
				Str("code_issuer", codeID).
				Str("brand_issuer", brandID).
				Msg("Issuer signals disagree, trusting regulatory code")
		}
	case brandOK:
		det.ID = brandID
		det.Identity.Name = brandName
	}

	d.log.Debug().
		Str("issuer", det.ID).
		Str("code", code).
		Bool("code_resolved", codeOK).
		Bool("brand_resolved", brandOK).
		Msg("Issuer identification completed")

	return det
}

func matchBrand(text string) (id, name string, ok bool) {
	for _, b := range brandTokens {
		if !containsToken(text, b.token) {
			continue
		}
		for _, op := range operators {
			if op.id == b.id {
				return b.id, op.name, true
			}
		}
		return b.id, "", true
	}
	return "", "", false
}

// containsToken matches a brand token only on word boundaries, so "AMIL" does
// not fire inside "FAMILIAR".
func containsToken(text, token string) bool {
	for from := 0; ; {
		i := strings.Index(text[from:], token)
		if i < 0 {
			return false
		}
		i += from
		before := i == 0 || !isAlnum(text[i-1])
		end := i + len(token)
		after := end == len(text) || !isAlnum(text[end])
		if before && after {
			return true
		}
		from = i + 1
	}
}

func isAlnum(b byte) bool {
	return b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
