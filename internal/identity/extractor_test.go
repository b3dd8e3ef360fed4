package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docscan/pkg/models"
)

func TestValidName(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		valid     bool
	}{
		{"regular name", "DANIEL COELHO DA COSTA", true},
		{"apostrophe and hyphen", "MARIA D'AVILA SOUZA-LIMA", true},
		{"empty", "", false},
		{"single token", "DANIEL", false},
		{"digits", "DANIEL COSTA 123", false},
		{"lowercase", "Daniel Costa", false},
		{"boilerplate token", "REPUBLICA FEDERATIVA", false},
		{"boilerplate mixed with name", "DANIEL NASCIMENTO CARTEIRA", false},
		{"surname LEITE accepted despite LEI token", "JOANA LEITE SILVA", true},
		{"exact boilerplate token rejected", "MARIA DATA SILVA", false},
		{"one letter token", "DANIEL C COSTA", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, ValidName(tc.candidate))
		})
	}
}

func TestNameStrategies(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		name         string
		lines        []string
		wantName     string
		wantStrategy string
	}{
		{
			name:         "labeled same line",
			lines:        []string{"NOME: DANIEL COELHO DA COSTA", "FILIACAO"},
			wantName:     "DANIEL COELHO DA COSTA",
			wantStrategy: "name-labeled",
		},
		{
			name:         "labeled next line",
			lines:        []string{"NOME", "DANIEL COELHO DA COSTA"},
			wantName:     "DANIEL COELHO DA COSTA",
			wantStrategy: "name-labeled",
		},
		{
			name:         "name above filiacao",
			lines:        []string{"DANIEL COELHO DA COSTA", "FILIACAO", "MARIA DA COSTA"},
			wantName:     "DANIEL COELHO DA COSTA",
			wantStrategy: "name-before-filiacao",
		},
		{
			name:         "name below filiacao",
			lines:        []string{"REGISTRO GERAL 12.345.678-9", "FILIACAO", "DANIEL COELHO DA COSTA"},
			wantName:     "DANIEL COELHO DA COSTA",
			wantStrategy: "name-after-filiacao",
		},
		{
			name:         "structural fallback",
			lines:        []string{"CARTEIRA DE IDENTIDADE", "12.345.678-9", "DANIEL COELHO DA COSTA"},
			wantName:     "DANIEL COELHO DA COSTA",
			wantStrategy: "name-structural",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fields, strategies := e.Extract(tc.lines)
			assert.Equal(t, tc.wantName, fields[models.FieldHolderName])
			assert.Equal(t, tc.wantStrategy, strategies[models.FieldHolderName])
		})
	}
}

func TestExtractFullDocument(t *testing.T) {
	e := NewExtractor()

	lines := []string{
		"REPUBLICA FEDERATIVA DO BRASIL",
		"SECRETARIA DE SEGURANCA PUBLICA",
		"CARTEIRA DE IDENTIDADE",
		"REGISTRO GERAL 12.345.678-9",
		"NOME",
		"DANIEL COELHO DA COSTA",
		"FILIACAO",
		"MARIA DA COSTA",
		"JOSE COELHO DA COSTA",
		"DATA DE NASCIMENTO 15/03/1985",
		"NATURALIDADE",
		"SAO PAULO - SP",
		"CPF 123.456.789-09",
	}

	fields, strategies := e.Extract(lines)

	assert.Equal(t, "DANIEL COELHO DA COSTA", fields[models.FieldHolderName])
	assert.Equal(t, "123456789", fields[models.FieldRegistryNumber])
	assert.Equal(t, "12345678909", fields[models.FieldCPF])
	assert.Equal(t, "15/03/1985", fields[models.FieldBirthDate])
	assert.Equal(t, "MARIA DA COSTA E JOSE COELHO DA COSTA", fields[models.FieldFiliation])
	assert.Equal(t, "SAO PAULO - SP", fields[models.FieldBirthplace])

	assert.Equal(t, "name-labeled", strategies[models.FieldHolderName])
	assert.Equal(t, "registry-labeled", strategies[models.FieldRegistryNumber])
	assert.Equal(t, "birthdate-labeled", strategies[models.FieldBirthDate])
}

func TestExtractMissingFieldsAreAbsent(t *testing.T) {
	e := NewExtractor()

	fields, strategies := e.Extract([]string{"CARTEIRA DE IDENTIDADE"})

	assert.Empty(t, fields)
	assert.Empty(t, strategies)
}

func TestRegistryStrategies(t *testing.T) {
	e := NewExtractor()

	t.Run("labeled value on next line", func(t *testing.T) {
		fields, strategies := e.Extract([]string{"REGISTRO GERAL", "12.345.678-9"})
		assert.Equal(t, "123456789", fields[models.FieldRegistryNumber])
		assert.Equal(t, "registry-labeled", strategies[models.FieldRegistryNumber])
	})

	t.Run("RG label", func(t *testing.T) {
		fields, _ := e.Extract([]string{"RG: 12.345.678-9"})
		assert.Equal(t, "123456789", fields[models.FieldRegistryNumber])
	})

	t.Run("check digit X dropped", func(t *testing.T) {
		fields, _ := e.Extract([]string{"REGISTRO GERAL 12.345.678-X"})
		assert.Equal(t, "12345678", fields[models.FieldRegistryNumber])
	})

	t.Run("structural dotted layout", func(t *testing.T) {
		fields, strategies := e.Extract([]string{"DOC 12.345.678-9"})
		assert.Equal(t, "123456789", fields[models.FieldRegistryNumber])
		assert.Equal(t, "registry-structural", strategies[models.FieldRegistryNumber])
	})

	t.Run("degenerate run rejected", func(t *testing.T) {
		fields, _ := e.Extract([]string{"REGISTRO GERAL 11.111.111-1"})
		assert.NotContains(t, fields, models.FieldRegistryNumber)
	})
}

func TestBirthDateStrategies(t *testing.T) {
	e := NewExtractor()

	t.Run("labeled date wins over earlier bare date", func(t *testing.T) {
		fields, strategies := e.Extract([]string{
			"VALIDADE 20/03/2035",
			"DATA DE NASCIMENTO 15/03/1985",
		})
		assert.Equal(t, "15/03/1985", fields[models.FieldBirthDate])
		assert.Equal(t, "birthdate-labeled", strategies[models.FieldBirthDate])
	})

	t.Run("bare fallback", func(t *testing.T) {
		fields, strategies := e.Extract([]string{"EMITIDO EM 15/03/1985"})
		assert.Equal(t, "15/03/1985", fields[models.FieldBirthDate])
		assert.Equal(t, "birthdate-bare", strategies[models.FieldBirthDate])
	})
}

func TestFiliationSingleParent(t *testing.T) {
	e := NewExtractor()

	fields, _ := e.Extract([]string{"FILIACAO: MARIA DA COSTA", "15/03/1985"})
	assert.Equal(t, "MARIA DA COSTA", fields[models.FieldFiliation])
}

func TestBirthplaceStripsTrailingDate(t *testing.T) {
	e := NewExtractor()

	fields, _ := e.Extract([]string{"NATURALIDADE SAO PAULO - SP 15/03/1985"})
	assert.Equal(t, "SAO PAULO - SP", fields[models.FieldBirthplace])
}
