// Package classify scores normalized OCR text against per-type keyword sets
// to decide what kind of document was photographed.
//
// Each candidate type carries an ordered keyword list, a minimum match count
// and confidence parameters. A type is accepted once its match count reaches
// the threshold; when several types clear their thresholds the fixed priority
// order decides (insurance card, then identity, then license). Confidence
// grows with the match count but is capped per type, so the classifier never
// claims certainty.
package classify

import (
	"strings"

	"github.com/rs/zerolog"

	"docscan/internal/logger"
	"docscan/pkg/models"
)

// UnknownConfidence is reported when no type clears its threshold.
const UnknownConfidence = 0.10

// typeProfile holds the keyword set and scoring parameters for one candidate
// document type.
type typeProfile struct {
	docType   models.DocumentType
	keywords  []string
	threshold int
	base      float64
	perMatch  float64
	cap       float64
}

// profiles is evaluated in priority order: first type to clear its threshold
// wins. Ties are not re-scored by match count.
var profiles = []typeProfile{
	{
		docType: models.DocumentTypeInsuranceCard,
		keywords: []string{
			"PLANO DE SAUDE",
			"ANS",
			"OPERADORA",
			"BENEFICIARIO",
			"CARTEIRINHA",
			"COBERTURA",
			"SEGURO SAUDE",
			"REGISTRO ANS",
			"ABRANGENCIA",
			"ACOMODACAO",
			"CARENCIA",
			"VIGENCIA",
		},
		threshold: 2,
		base:      0.50,
		perMatch:  0.15,
		cap:       0.95,
	},
	{
		docType: models.DocumentTypeIdentityCard,
		keywords: []string{
			"REPUBLICA FEDERATIVA DO BRASIL",
			"CARTEIRA DE IDENTIDADE",
			"REGISTRO GERAL",
			"FILIACAO",
			"NATURALIDADE",
			"DATA DE NASCIMENTO",
			"SECRETARIA",
			"INSTITUTO DE IDENTIFICACAO",
			"IDENTIDADE NACIONAL",
			"DOC IDENTIDADE",
			"CPF",
			"ORGAO EXPEDIDOR",
		},
		threshold: 2,
		base:      0.45,
		perMatch:  0.12,
		cap:       0.90,
	},
	{
		docType: models.DocumentTypeDriverLicense,
		keywords: []string{
			"CARTEIRA NACIONAL DE HABILITACAO",
			"HABILITACAO",
			"CNH",
			"PERMISSAO PARA DIRIGIR",
			"CATEGORIA",
			"DETRAN",
			"PRIMEIRA HABILITACAO",
			"ACC",
			"RENACH",
		},
		threshold: 2,
		base:      0.50,
		perMatch:  0.15,
		cap:       0.90,
	},
}

// Classifier decides the document type of normalized text.
type Classifier struct {
	log zerolog.Logger
}

// New creates a document type classifier.
func New() *Classifier {
	return &Classifier{log: logger.WithComponent("classifier")}
}

// Classify scores the normalized text against every candidate type and
// returns the verdict plus the per-type match counts for the method trace.
func (c *Classifier) Classify(text string) (models.DocumentTypeResult, map[string]int) {
	counts := make(map[string]int, len(profiles))

	var winner *typeProfile
	var winnerMatches int
	for i := range profiles {
		p := &profiles[i]
		matches := countMatches(text, p.keywords)
		counts[string(p.docType)] = matches
		if winner == nil && matches >= p.threshold {
			winner = p
			winnerMatches = matches
		}
	}

	if winner == nil {
		c.log.Debug().
			Interface("match_counts", counts).
			Msg("No document type cleared its threshold")
		return models.DocumentTypeResult{
			Type:       models.DocumentTypeUnknown,
			Confidence: UnknownConfidence,
		}, counts
	}

	confidence := winner.base + float64(winnerMatches)*winner.perMatch
	if confidence > winner.cap {
		confidence = winner.cap
	}

	result := models.DocumentTypeResult{
		Type:       winner.docType,
		Confidence: confidence,
	}
	if winner.docType == models.DocumentTypeIdentityCard {
		result.Subtype = detectIdentitySubtype(text)
	}

	c.log.Debug().
		Str("type", string(result.Type)).
		Str("subtype", result.Subtype).
		Float64("confidence", result.Confidence).
		Interface("match_counts", counts).
		Msg("Document type classified")

	return result, counts
}

func countMatches(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if matchKeyword(text, kw) {
			n++
		}
	}
	return n
}

// matchKeyword matches phrases as substrings but requires word boundaries for
// short single tokens, so "ANS" does not fire inside "TRANSITO".
func matchKeyword(text, kw string) bool {
	if len(kw) > 4 || strings.ContainsRune(kw, ' ') {
		return strings.Contains(text, kw)
	}
	for from := 0; ; {
		i := strings.Index(text[from:], kw)
		if i < 0 {
			return false
		}
		i += from
		before := i == 0 || !isAlnum(text[i-1])
		end := i + len(kw)
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

// detectIdentitySubtype distinguishes the new national ID (CIN) from the
// old-style RG. It runs only after the primary type is already identity, so a
// single phrase is enough evidence.
func detectIdentitySubtype(text string) string {
	switch {
	case strings.Contains(text, "CARTEIRA DE IDENTIDADE NACIONAL") ||
		strings.Contains(text, "IDENTIDADE NACIONAL"):
		return models.SubtypeCIN
	case strings.Contains(text, "REGISTRO GERAL") ||
		strings.Contains(text, "CARTEIRA DE IDENTIDADE"):
		return models.SubtypeRG
	default:
		return models.SubtypeIdentityGeneric
	}
}
