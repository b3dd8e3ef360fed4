// Package textnorm provides deterministic cleanup of raw OCR text.
//
// Every downstream stage (classification, issuer detection, field extraction)
// consumes text produced here, so all comparisons in the pipeline are
// case-insensitive and diacritic-insensitive: "SAÚDE" and "SAUDE" normalize to
// the same string. Two variants exist: Normalize collapses all whitespace
// including newlines, NormalizePreservingLines keeps line structure for
// layout-sensitive extractors.
package textnorm

import (
	"iter"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	horizontalSpace = regexp.MustCompile(`[ \t]+`)
	anyWhitespace   = regexp.MustCompile(`\s+`)
	digitRun        = regexp.MustCompile(`\d+`)
	specialChars    = regexp.MustCompile(`[^A-Z0-9 ]+`)

	// stripMarks removes combining marks after canonical decomposition,
	// turning "Ç" into "C" and "Ú" into "U".
	stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Normalize upper-cases the text, strips diacritics and collapses every run of
// whitespace (including newlines) to a single space. Empty input yields empty
// output; the function never fails.
func Normalize(raw string) string {
	s := foldText(raw)
	s = anyWhitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NormalizePreservingLines applies the same folding as Normalize but keeps
// line breaks: each line is trimmed independently and runs of blank lines are
// collapsed to at most one.
func NormalizePreservingLines(raw string) string {
	s := foldText(raw)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	var b strings.Builder
	blankRun := 0
	for i, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(horizontalSpace.ReplaceAllString(line, " "))
		if line == "" {
			blankRun++
			continue
		}
		if i > 0 && b.Len() > 0 {
			b.WriteByte('\n')
			if blankRun > 0 {
				b.WriteByte('\n')
			}
		}
		blankRun = 0
		b.WriteString(line)
	}
	return strings.TrimSpace(b.String())
}

// ExtractLines yields the non-empty trimmed lines of text, in order. The
// sequence is finite and can be ranged over more than once.
func ExtractLines(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, line := range strings.Split(strings.ReplaceAll(text, "\r", "\n"), "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if !yield(line) {
				return
			}
		}
	}
}

// Lines collects ExtractLines into a slice for extractors that need indexed
// access to the document layout.
func Lines(text string) []string {
	var out []string
	for line := range ExtractLines(text) {
		out = append(out, line)
	}
	return out
}

// ExtractAllNumbers returns every maximal digit run in the text, in order of
// appearance.
func ExtractAllNumbers(text string) []string {
	return digitRun.FindAllString(text, -1)
}

// RemoveSpecialCharacters normalizes the text and drops everything that is not
// a letter, digit or space.
func RemoveSpecialCharacters(raw string) string {
	s := Normalize(raw)
	s = specialChars.ReplaceAllString(s, " ")
	return strings.TrimSpace(anyWhitespace.ReplaceAllString(s, " "))
}

// foldText upper-cases and strips diacritics. Transform errors are impossible
// for this chain on valid UTF-8; on malformed input the raw string is kept.
func foldText(raw string) string {
	s, _, err := transform.String(stripMarks, raw)
	if err != nil {
		s = raw
	}
	return strings.ToUpper(s)
}
