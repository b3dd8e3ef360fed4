// Package ans extracts the insurer's ANS regulatory registration code from
// normalized card text.
//
// The detector does not need to know the issuer: it tries an ordered list of
// structural patterns covering the forms seen on real cards ("ANS - Nº
// 00.070-1", "ANS: 000701", "REGISTRO ANS 000701", ...) and the first pattern
// producing a valid candidate wins. The pattern order is a first-class,
// testable artifact.
package ans

import (
	"regexp"
	"strings"

	"docscan/internal/patterns"
)

// Code length bounds for a valid ANS registration.
const (
	minCodeLen = 5
	maxCodeLen = 7
)

// CodePattern pairs a named structural pattern with the extraction rule that
// turns its submatches into a candidate code.
type CodePattern struct {
	Name string
	re   *regexp.Regexp
}

// Patterns is the ordered list tried by Extract. Earlier entries are more
// structured and therefore more trustworthy.
var Patterns = []CodePattern{
	// Grouped form with check digit: "ANS - Nº 00.070-1". The three digit
	// groups are concatenated in literal order.
	{Name: "ans-grouped", re: regexp.MustCompile(`ANS\s*[-–]?\s*N[ºO°]?\.?\s*(\d{2})\.(\d{3})[-.](\d)\b`)},
	// Label variants: "NUMERO ANS 000701", "REGISTRO ANS: 000701",
	// "CODIGO ANS 000701". An explicit label outranks the bare forms below.
	{Name: "ans-labeled", re: regexp.MustCompile(`(?:NUMERO|REGISTRO|CODIGO)\s+(?:DA\s+)?ANS\s*:?\s*(\d{4,8})\b`)},
	// Colon form: "ANS: 000701".
	{Name: "ans-colon", re: regexp.MustCompile(`\bANS\s*:\s*(\d{4,8})\b`)},
	// Bare spaced form: "ANS 000701".
	{Name: "ans-spaced", re: regexp.MustCompile(`\bANS\s+N?[ºO°]?\.?\s*(\d{4,8})\b`)},
}

// Extract applies the ordered pattern list to normalized text and returns the
// raw code (leading zeros preserved) of the first valid match. The second
// return is the name of the winning pattern, empty when nothing matched.
func Extract(text string) (string, string) {
	for _, p := range Patterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		candidate := strings.Join(m[1:], "")
		if !Valid(candidate) {
			continue
		}
		return candidate, p.Name
	}
	return "", ""
}

// Valid reports whether a candidate code has a plausible length and is not a
// degenerate repeated-digit run produced by OCR noise.
func Valid(code string) bool {
	if len(code) < minCodeLen || len(code) > maxCodeLen {
		return false
	}
	return !patterns.Degenerate(code)
}

// Normalize strips leading zeros from a code down to a 4-digit floor. The raw
// code is the default form everywhere; this normal form exists for lookups
// against tables that store codes without zero padding.
func Normalize(code string) string {
	for len(code) > 4 && code[0] == '0' {
		code = code[1:]
	}
	return code
}
