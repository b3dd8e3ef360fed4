// Package patterns is the shared library of structural matchers used by the
// extraction stages: calendar dates, national ID numbers and digit-run
// helpers. Detectors keep their own ordered pattern lists; this package holds
// the matchers that more than one stage needs.
package patterns

import (
	"regexp"
	"strings"
	"time"
)

var (
	// DateDDMMYYYY matches Brazilian day-first dates with /, . or - separators.
	DateDDMMYYYY = regexp.MustCompile(`\b(\d{2})[/.-](\d{2})[/.-](\d{4})\b`)

	// CPF matches the national tax ID, dotted (000.000.000-00) or bare (11 digits).
	CPF = regexp.MustCompile(`\b(\d{3})\.?(\d{3})\.?(\d{3})-?(\d{2})\b`)

	// CNS matches the 15-digit national health card number, optionally grouped
	// as 3-4-4-4.
	CNS = regexp.MustCompile(`\b(\d{3})\s?(\d{4})\s?(\d{4})\s?(\d{4})\b`)

	// RGNumber matches the general registry number: 7 to 10 digits with
	// optional dot grouping and an optional check digit (which may be X).
	RGNumber = regexp.MustCompile(`\b(\d{1,2})\.?(\d{3})\.?(\d{3})-?([\dX])?\b`)

	groupSeparators = regexp.MustCompile(`[ ./-]`)
	digitRun        = regexp.MustCompile(`\d+`)
)

// ValidDate reports whether day/month/year form a plausible calendar date.
// time.Date normalizes overflow (Feb 30 becomes Mar 2), so a round-trip
// comparison catches impossible dates.
func ValidDate(day, month, year int) bool {
	if month < 1 || month > 12 || day < 1 || year < 1900 || year > 2100 {
		return false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return d.Day() == day && int(d.Month()) == month && d.Year() == year
}

// MatchDate extracts the first plausible DD/MM/YYYY date from the text,
// returned in canonical DD/MM/YYYY form.
func MatchDate(text string) (string, bool) {
	for _, m := range DateDDMMYYYY.FindAllStringSubmatch(text, -1) {
		day := atoi2(m[1])
		month := atoi2(m[2])
		year := atoi4(m[3])
		if ValidDate(day, month, year) {
			return m[1] + "/" + m[2] + "/" + m[3], true
		}
	}
	return "", false
}

// IsDate reports whether the bare digit string reads as a plausible DDMMYYYY
// date. Card-number extractors use this to skip birth dates that share the
// expected digit count.
func IsDate(digits string) bool {
	if len(digits) != 8 {
		return false
	}
	return ValidDate(atoi2(digits[0:2]), atoi2(digits[2:4]), atoi4(digits[4:8]))
}

// Degenerate reports whether a digit string longer than 4 characters is made
// of at most 2 distinct digits. OCR noise on ruled card backgrounds produces
// runs like "111110" that would otherwise pass length checks.
func Degenerate(digits string) bool {
	if len(digits) <= 4 {
		return false
	}
	distinct := map[rune]struct{}{}
	for _, r := range digits {
		distinct[r] = struct{}{}
	}
	return len(distinct) <= 2
}

// StripGrouping removes spaces, dots, slashes and hyphens from a matched
// number so grouped layouts compare as bare digit strings.
func StripGrouping(s string) string {
	return groupSeparators.ReplaceAllString(s, "")
}

// LongestDigitRun returns the longest maximal digit run in text whose length
// falls within [minLen, maxLen], preferring earlier runs on ties.
func LongestDigitRun(text string, minLen, maxLen int) (string, bool) {
	best := ""
	for _, run := range digitRun.FindAllString(text, -1) {
		if len(run) < minLen || len(run) > maxLen {
			continue
		}
		if len(run) > len(best) {
			best = run
		}
	}
	return best, best != ""
}

func atoi2(s string) int {
	if len(s) < 2 {
		return -1
	}
	return int(s[0]-'0')*10 + int(s[1]-'0')
}

func atoi4(s string) int {
	if len(s) < 4 {
		return -1
	}
	n := 0
	for i := 0; i < 4; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return -1
		}
		n = n*10 + int(c-'0')
	}
	return n
}

// HasAnyToken reports whether the text contains any of the given tokens as a
// substring. Tokens are expected in normalized (uppercase, unaccented) form.
func HasAnyToken(text string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}
