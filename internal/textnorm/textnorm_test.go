package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"uppercases", "plano de saúde", "PLANO DE SAUDE"},
		{"strips diacritics", "SAÚDE FILIAÇÃO NÚMERO", "SAUDE FILIACAO NUMERO"},
		{"collapses whitespace", "A  \t B\n\nC", "A B C"},
		{"trims", "  ANS 000701  ", "ANS 000701"},
		{"cedilla", "Fundação", "FUNDACAO"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Normalize(tc.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"CARTEIRA DE IDENTIDADE",
		"  Saúde \n suplementar ",
		"ANS - Nº 00.070-1\nUNIMED",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", in)
	}
}

func TestNormalizePreservingLines(t *testing.T) {
	t.Run("trims each line", func(t *testing.T) {
		got := NormalizePreservingLines("  nome \n  daniel  costa ")
		assert.Equal(t, "NOME\nDANIEL COSTA", got)
	})

	t.Run("collapses blank runs", func(t *testing.T) {
		got := NormalizePreservingLines("A\n\n\n\n\nB")
		assert.Equal(t, "A\n\nB", got)
	})

	t.Run("handles windows line endings", func(t *testing.T) {
		got := NormalizePreservingLines("A\r\nB")
		assert.Equal(t, "A\nB", got)
	})
}

func TestExtractLines(t *testing.T) {
	text := " NOME \n\n DANIEL \nCOSTA"

	var first []string
	for line := range ExtractLines(text) {
		first = append(first, line)
	}
	assert.Equal(t, []string{"NOME", "DANIEL", "COSTA"}, first)

	// The sequence is restartable.
	var second []string
	for line := range ExtractLines(text) {
		second = append(second, line)
	}
	assert.Equal(t, first, second)
}

func TestExtractAllNumbers(t *testing.T) {
	assert.Equal(t, []string{"00", "070", "1"}, ExtractAllNumbers("ANS - Nº 00.070-1"))
	assert.Empty(t, ExtractAllNumbers("SEM NUMEROS"))
}

func TestRemoveSpecialCharacters(t *testing.T) {
	assert.Equal(t, "ANS N 00 070 1", RemoveSpecialCharacters("ANS - Nº: 00.070-1"))
}
