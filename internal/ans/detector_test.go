package ans

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantCode    string
		wantPattern string
	}{
		{
			name:        "grouped form with check digit",
			text:        "ANS - N° 00.070-1",
			wantCode:    "000701",
			wantPattern: "ans-grouped",
		},
		{
			name:        "grouped form with ordinal marker",
			text:        "ANS Nº 00.570-2",
			wantCode:    "005702",
			wantPattern: "ans-grouped",
		},
		{
			name:        "colon form",
			text:        "REGISTRO NA ANS: 326305",
			wantCode:    "326305",
			wantPattern: "ans-colon",
		},
		{
			name:        "bare spaced form",
			text:        "ANS 368253 HAPVIDA",
			wantCode:    "368253",
			wantPattern: "ans-spaced",
		},
		{
			name:        "labeled form",
			text:        "REGISTRO ANS 005711",
			wantCode:    "005711",
			wantPattern: "ans-labeled",
		},
		{
			name:        "labeled form without separator",
			text:        "CODIGO DA ANS 006246",
			wantCode:    "006246",
			wantPattern: "ans-labeled",
		},
		{
			name: "no ANS marker",
			text: "CARTAO NACIONAL DE SAUDE 123456789012345",
		},
		{
			name: "degenerate candidate rejected",
			text: "ANS: 111110",
		},
		{
			name: "candidate too short",
			text: "ANS: 1234",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, pattern := Extract(tc.text)
			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantPattern, pattern)
		})
	}
}

func TestExtractPrefersStructuredPattern(t *testing.T) {
	// Both forms present: the grouped form is earlier in the ordered list and
	// must win even though the colon form also matches.
	code, pattern := Extract("ANS: 326305 ANS - Nº 00.070-1")
	assert.Equal(t, "000701", code)
	assert.Equal(t, "ans-grouped", pattern)
}

func TestExtractLabeledOutranksBareForms(t *testing.T) {
	code, pattern := Extract("ANS 412345 REGISTRO ANS 005711")
	assert.Equal(t, "005711", code)
	assert.Equal(t, "ans-labeled", pattern)
}

func TestValid(t *testing.T) {
	tests := []struct {
		code  string
		valid bool
	}{
		{"000701", true},
		{"12345", true},
		{"1234567", true},
		{"1234", false},     // too short
		{"12345678", false}, // too long
		{"111110", false},   // degenerate
		{"000000", false},   // degenerate
	}

	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			assert.Equal(t, tc.valid, Valid(tc.code))
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "0701", Normalize("000701"))
	assert.Equal(t, "5711", Normalize("005711"))
	assert.Equal(t, "326305", Normalize("326305"))
	assert.Equal(t, "0000", Normalize("0000000"), "stops at the 4-digit floor")
}
