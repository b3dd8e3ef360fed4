package card

import (
	"regexp"

	"docscan/internal/patterns"
	"docscan/pkg/models"
)

// bradescoStrategy extracts Bradesco Saúde cards. The 15-digit beneficiary
// number must follow the "NUMERO DO BENEFICIARIO" anchor; a bare 15-digit run
// elsewhere in the text is not trusted because Bradesco cards also print a
// 15-digit CNS. A 3-4-4-4 grouped run that is not the beneficiary number is
// reported as the CNS supporting field.
type bradescoStrategy struct{}

var bradescoAnchored = regexp.MustCompile(`NUMERO DO BENEFICIARIO\s*:?\s*(\d(?:[ .]?\d){14})\b`)

func (bradescoStrategy) ID() string { return "card-bradesco" }

func (bradescoStrategy) Extract(text string) Extraction {
	var ext Extraction

	if m := bradescoAnchored.FindStringSubmatch(text); m != nil {
		number := patterns.StripGrouping(m[1])
		if len(number) == 15 && !patterns.Degenerate(number) {
			ext.CardNumber = number
		}
	}

	for _, m := range patterns.CNS.FindAllStringSubmatch(text, -1) {
		digits := m[1] + m[2] + m[3] + m[4]
		if digits == ext.CardNumber || patterns.Degenerate(digits) {
			continue
		}
		ext.Supporting = models.Fields{models.FieldCNS: digits}
		break
	}

	return ext
}
