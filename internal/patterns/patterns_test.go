package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidDate(t *testing.T) {
	tests := []struct {
		name             string
		day, month, year int
		valid            bool
	}{
		{"regular date", 15, 3, 1985, true},
		{"leap day", 29, 2, 2000, true},
		{"non-leap feb 29", 29, 2, 1999, false},
		{"month overflow", 12, 13, 1990, false},
		{"day overflow", 31, 4, 1990, false},
		{"year below range", 1, 1, 1850, false},
		{"year above range", 1, 1, 2150, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, ValidDate(tc.day, tc.month, tc.year))
		})
	}
}

func TestMatchDate(t *testing.T) {
	t.Run("finds first plausible date", func(t *testing.T) {
		got, ok := MatchDate("DATA DE NASCIMENTO 15/03/1985 VALIDADE 20/03/2035")
		assert.True(t, ok)
		assert.Equal(t, "15/03/1985", got)
	})

	t.Run("skips impossible date for a later valid one", func(t *testing.T) {
		got, ok := MatchDate("99/99/1990 E DEPOIS 01.02.1991")
		assert.True(t, ok)
		assert.Equal(t, "01/02/1991", got)
	})

	t.Run("no date", func(t *testing.T) {
		_, ok := MatchDate("CARTEIRA DE IDENTIDADE")
		assert.False(t, ok)
	})
}

func TestIsDate(t *testing.T) {
	assert.True(t, IsDate("15031985"))
	assert.False(t, IsDate("99991985"), "impossible day/month")
	assert.False(t, IsDate("1503198"), "wrong length")
	assert.False(t, IsDate("150319850"), "wrong length")
}

func TestDegenerate(t *testing.T) {
	tests := []struct {
		digits     string
		degenerate bool
	}{
		{"111110", true},
		{"000000000", true},
		{"121212121", true},
		{"000701", false},
		{"1111", false}, // short runs are never degenerate
		{"123456789", false},
	}

	for _, tc := range tests {
		t.Run(tc.digits, func(t *testing.T) {
			assert.Equal(t, tc.degenerate, Degenerate(tc.digits))
		})
	}
}

func TestStripGrouping(t *testing.T) {
	assert.Equal(t, "123456789", StripGrouping("12.345.678-9"))
	assert.Equal(t, "09941234567890123", StripGrouping("0 994 123456789012 3"))
}

func TestLongestDigitRun(t *testing.T) {
	t.Run("longest within bounds wins", func(t *testing.T) {
		run, ok := LongestDigitRun("ANS 000701 CARTAO 123456789012345", 9, 20)
		assert.True(t, ok)
		assert.Equal(t, "123456789012345", run)
	})

	t.Run("earlier run wins ties", func(t *testing.T) {
		run, ok := LongestDigitRun("111222333 444555666", 9, 20)
		assert.True(t, ok)
		assert.Equal(t, "111222333", run)
	})

	t.Run("nothing within bounds", func(t *testing.T) {
		_, ok := LongestDigitRun("ANS 000701", 9, 20)
		assert.False(t, ok)
	})
}

func TestHasAnyToken(t *testing.T) {
	assert.True(t, HasAnyToken("PLANO DE SAUDE UNIMED", []string{"BRADESCO", "UNIMED"}))
	assert.False(t, HasAnyToken("PLANO DE SAUDE", []string{"BRADESCO", "UNIMED"}))
}
