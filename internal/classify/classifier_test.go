package classify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"docscan/pkg/models"
)

func TestClassify(t *testing.T) {
	c := New()

	tests := []struct {
		name        string
		text        string
		wantType    models.DocumentType
		wantSubtype string
	}{
		{
			name:     "insurance card",
			text:     "PLANO DE SAUDE ANS 000701 BENEFICIARIO DANIEL",
			wantType: models.DocumentTypeInsuranceCard,
		},
		{
			name:        "identity card rg",
			text:        "REPUBLICA FEDERATIVA DO BRASIL CARTEIRA DE IDENTIDADE REGISTRO GERAL",
			wantType:    models.DocumentTypeIdentityCard,
			wantSubtype: models.SubtypeRG,
		},
		{
			name:        "identity card cin",
			text:        "CARTEIRA DE IDENTIDADE NACIONAL REPUBLICA FEDERATIVA DO BRASIL CPF",
			wantType:    models.DocumentTypeIdentityCard,
			wantSubtype: models.SubtypeCIN,
		},
		{
			name:     "driver license",
			text:     "CARTEIRA NACIONAL DE HABILITACAO CATEGORIA B DETRAN",
			wantType: models.DocumentTypeDriverLicense,
		},
		{
			name:     "empty text",
			text:     "",
			wantType: models.DocumentTypeUnknown,
		},
		{
			name:     "single keyword stays below threshold",
			text:     "BENEFICIARIO DANIEL COELHO",
			wantType: models.DocumentTypeUnknown,
		},
		{
			name:     "unrelated text",
			text:     "NOTA FISCAL ELETRONICA VALOR TOTAL",
			wantType: models.DocumentTypeUnknown,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, _ := c.Classify(tc.text)
			assert.Equal(t, tc.wantType, got.Type)
			assert.Equal(t, tc.wantSubtype, got.Subtype)
			if tc.wantType == models.DocumentTypeUnknown {
				assert.InDelta(t, UnknownConfidence, got.Confidence, 1e-9)
			} else {
				assert.Greater(t, got.Confidence, UnknownConfidence)
			}
		})
	}
}

func TestClassifyPriorityOrder(t *testing.T) {
	c := New()

	// Insurance cards often carry identity vocabulary (CPF, birth date). When
	// both types clear their thresholds the insurance card wins.
	text := "PLANO DE SAUDE ANS 000701 BENEFICIARIO CPF 123.456.789-09 DATA DE NASCIMENTO 15/03/1985"
	got, counts := c.Classify(text)

	assert.Equal(t, models.DocumentTypeInsuranceCard, got.Type)
	assert.GreaterOrEqual(t, counts[string(models.DocumentTypeInsuranceCard)], 2)
	assert.GreaterOrEqual(t, counts[string(models.DocumentTypeIdentityCard)], 2)
}

func TestClassifyConfidenceMonotonicAndCapped(t *testing.T) {
	c := New()

	keywords := []string{
		"PLANO DE SAUDE", "ANS", "OPERADORA", "BENEFICIARIO", "CARTEIRINHA",
		"COBERTURA", "SEGURO SAUDE", "ABRANGENCIA", "ACOMODACAO", "CARENCIA",
	}

	prev := 0.0
	for n := 2; n <= len(keywords); n++ {
		got, _ := c.Classify(strings.Join(keywords[:n], " "))
		assert.Equal(t, models.DocumentTypeInsuranceCard, got.Type)
		assert.GreaterOrEqual(t, got.Confidence, prev, "confidence must not drop as matches grow")
		assert.LessOrEqual(t, got.Confidence, 0.95, "confidence must stay below the type cap")
		prev = got.Confidence
	}
	assert.InDelta(t, 0.95, prev, 1e-9, "a saturated keyword set hits the cap exactly")
}

func TestClassifyShortTokenNeedsWordBoundary(t *testing.T) {
	c := New()

	// "ANS" appears inside "TRANSITO" but must not count as a keyword match.
	_, counts := c.Classify("DEPARTAMENTO DE TRANSITO")
	assert.Equal(t, 0, counts[string(models.DocumentTypeInsuranceCard)])

	_, counts = c.Classify("ANS 000701")
	assert.Equal(t, 1, counts[string(models.DocumentTypeInsuranceCard)])
}

func TestClassifyMatchCountsCoverAllTypes(t *testing.T) {
	c := New()

	_, counts := c.Classify("")
	assert.Len(t, counts, 3)
	for docType, n := range counts {
		assert.Equal(t, 0, n, "empty text must match nothing for %s", docType)
	}
}
