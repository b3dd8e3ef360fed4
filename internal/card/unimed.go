package card

import (
	"regexp"
	"strings"

	"docscan/internal/patterns"
	"docscan/internal/textnorm"
	"docscan/pkg/models"
)

// unimedStrategy extracts Unimed beneficiary cards. The card number is 17
// digits printed in four groups (1-3-12-1); the groups are concatenated in
// literal order, never reordered. The plan line ("CORPORATIVO COMPACTO ENF
// CP") also yields the plan descriptor and accommodation.
type unimedStrategy struct{}

var (
	unimedCard = regexp.MustCompile(`\b(\d)[ .]?(\d{3})[ .]?(\d{12})[ .]?(\d)\b`)

	unimedContractTypes = map[string]bool{
		"CORPORATIVO": true, "EMPRESARIAL": true, "INDIVIDUAL": true,
		"FAMILIAR": true, "COLETIVO": true, "ADESAO": true,
	}
	unimedAccommodations = map[string]string{
		"ENF": "ENFERMARIA", "ENFERMARIA": "ENFERMARIA",
		"APT": "APARTAMENTO", "APARTAMENTO": "APARTAMENTO",
	}
	// Trailing product-code tokens that are not part of the plan name.
	unimedSuffixTokens = map[string]bool{"CP": true, "CO": true, "PF": true, "PJ": true}
)

func (unimedStrategy) ID() string { return "card-unimed" }

func (unimedStrategy) Extract(text string) Extraction {
	var ext Extraction

	for _, m := range unimedCard.FindAllStringSubmatch(text, -1) {
		number := strings.Join(m[1:], "")
		if patterns.Degenerate(number) {
			continue
		}
		ext.CardNumber = number
		break
	}

	fields := extractUnimedPlan(text)
	if v, ok := extractValidity(text); ok {
		if fields == nil {
			fields = models.Fields{}
		}
		fields[models.FieldValidity] = v
	}
	if len(fields) > 0 {
		ext.Supporting = fields
	}

	return ext
}

// extractUnimedPlan looks for the plan line, which starts with a contract
// type token. The plan descriptor is the first following token that is
// neither an accommodation nor a product-code suffix.
func extractUnimedPlan(text string) models.Fields {
	for line := range textnorm.ExtractLines(text) {
		tokens := strings.Fields(line)
		if len(tokens) < 2 || !unimedContractTypes[tokens[0]] {
			continue
		}

		fields := models.Fields{models.FieldContractType: tokens[0]}
		for _, tok := range tokens[1:] {
			if acc, ok := unimedAccommodations[tok]; ok {
				fields[models.FieldAccommodation] = acc
				continue
			}
			if unimedSuffixTokens[tok] {
				continue
			}
			if _, taken := fields[models.FieldPlanName]; !taken {
				fields[models.FieldPlanName] = tok
			}
		}
		return fields
	}
	return nil
}
