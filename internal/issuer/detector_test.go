package issuer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupCode(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		wantID   string
		wantName string
		wantOK   bool
	}{
		{"raw zero-padded code", "000701", Unimed, "UNIMED DO BRASIL", true},
		{"normalized code", "0701", Unimed, "UNIMED DO BRASIL", true},
		{"bradesco", "005711", Bradesco, "BRADESCO SAUDE", true},
		{"amil", "326305", Amil, "AMIL ASSISTENCIA MEDICA", true},
		{"sulamerica", "006246", SulAmerica, "SULAMERICA SEGURO SAUDE", true},
		{"hapvida", "368253", Hapvida, "HAPVIDA ASSISTENCIA MEDICA", true},
		{"intermedica", "359017", Intermedica, "NOTRE DAME INTERMEDICA", true},
		{"central nacional unimed", "339679", Unimed, "CENTRAL NACIONAL UNIMED", true},
		{"unknown code", "999999", "", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			id, name, ok := LookupCode(tc.code)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantID, id)
			assert.Equal(t, tc.wantName, name)
		})
	}
}

func TestIdentify(t *testing.T) {
	d := NewDetector()

	t.Run("code alone resolves", func(t *testing.T) {
		det := d.Identify("CARTAO DE SAUDE", "005711")
		assert.Equal(t, Bradesco, det.ID)
		assert.Equal(t, "005711", det.Identity.Code)
		assert.Equal(t, "BRADESCO SAUDE", det.Identity.Name)
	})

	t.Run("brand alone resolves", func(t *testing.T) {
		det := d.Identify("UNIMED SAO PAULO PLANO DE SAUDE", "")
		assert.Equal(t, Unimed, det.ID)
		assert.Empty(t, det.Identity.Code)
		assert.Equal(t, "UNIMED DO BRASIL", det.Identity.Name)
	})

	t.Run("code wins disagreement", func(t *testing.T) {
		// A Unimed logo on a partner card must not override the printed code.
		det := d.Identify("UNIMED CLINICA PARCEIRA", "005711")
		assert.Equal(t, Bradesco, det.ID)
		assert.Equal(t, "BRADESCO SAUDE", det.Identity.Name)
	})

	t.Run("unknown code falls back to brand", func(t *testing.T) {
		det := d.Identify("HAPVIDA SAUDE", "999999")
		assert.Equal(t, Hapvida, det.ID)
		assert.Equal(t, "999999", det.Identity.Code, "the raw code is still reported")
	})

	t.Run("sulamerica spaced brand not shadowed", func(t *testing.T) {
		det := d.Identify("SUL AMERICA SAUDE", "")
		assert.Equal(t, SulAmerica, det.ID)
	})

	t.Run("brand token needs word boundary", func(t *testing.T) {
		// "AMIL" sits inside "FAMILIAR", a contract-type word cards print.
		det := d.Identify("PLANO DE SAUDE COLETIVO FAMILIAR ENF", "")
		assert.Empty(t, det.ID)
		assert.Empty(t, det.Identity.Name)
	})

	t.Run("standalone brand token still resolves", func(t *testing.T) {
		det := d.Identify("AMIL SAUDE PLANO FAMILIAR", "")
		assert.Equal(t, Amil, det.ID)
	})

	t.Run("nothing resolves", func(t *testing.T) {
		det := d.Identify("OPERADORA REGIONAL DE SAUDE", "")
		assert.Empty(t, det.ID)
		assert.Empty(t, det.Identity.Name)
	})
}
