package identity

import (
	"strings"

	"docscan/internal/patterns"
)

// registryLabeled extracts the general registry number from a line carrying
// an RG label.
func registryLabeled(lines []string) (string, bool) {
	for i, line := range lines {
		if !hasRegistryLabel(line) {
			continue
		}
		if n, ok := registryFromLine(line); ok {
			return n, true
		}
		if i+1 < len(lines) {
			if n, ok := registryFromLine(lines[i+1]); ok {
				return n, true
			}
		}
	}
	return "", false
}

// registryStructural matches the dotted RG layout anywhere in the text.
func registryStructural(lines []string) (string, bool) {
	for _, line := range lines {
		if m := patterns.RGNumber.FindString(line); m != "" {
			if n, ok := validRegistry(m); ok {
				return n, true
			}
		}
	}
	return "", false
}

func hasRegistryLabel(line string) bool {
	if strings.Contains(line, "REGISTRO GERAL") {
		return true
	}
	_, ok := afterLabel(line, "RG")
	return ok
}

func registryFromLine(line string) (string, bool) {
	for _, m := range patterns.RGNumber.FindAllString(line, -1) {
		if n, ok := validRegistry(m); ok {
			return n, true
		}
	}
	return "", false
}

func validRegistry(match string) (string, bool) {
	digits := patterns.StripGrouping(match)
	digits = strings.TrimSuffix(digits, "X")
	if len(digits) < 7 || len(digits) > 10 {
		return "", false
	}
	if patterns.Degenerate(digits) || patterns.IsDate(digits) {
		return "", false
	}
	return digits, true
}

// cpfStructural extracts the national tax ID: 11 digits, dotted or bare.
func cpfStructural(lines []string) (string, bool) {
	for _, line := range lines {
		for _, m := range patterns.CPF.FindAllStringSubmatch(line, -1) {
			digits := m[1] + m[2] + m[3] + m[4]
			if len(digits) == 11 && !patterns.Degenerate(digits) {
				return digits, true
			}
		}
	}
	return "", false
}

// birthDateLabeled extracts the date on or directly below a birth-date label.
func birthDateLabeled(lines []string) (string, bool) {
	for i, line := range lines {
		if !strings.Contains(line, "NASCIMENTO") && !strings.Contains(line, "DATA NASC") {
			continue
		}
		if d, ok := patterns.MatchDate(line); ok {
			return d, true
		}
		if i+1 < len(lines) {
			if d, ok := patterns.MatchDate(lines[i+1]); ok {
				return d, true
			}
		}
	}
	return "", false
}

// birthDateBare falls back to the first plausible date anywhere. Issue and
// expiry dates can win here, which is why the labeled strategy runs first.
func birthDateBare(lines []string) (string, bool) {
	for _, line := range lines {
		if d, ok := patterns.MatchDate(line); ok {
			return d, true
		}
	}
	return "", false
}

// filiationAfterLabel collects up to two valid-name lines following the
// FILIAÇÃO label, joined with " E " the way the card prints parents.
func filiationAfterLabel(lines []string) (string, bool) {
	idx := findLabelLine(lines, "FILIACAO")
	if idx < 0 {
		return "", false
	}
	if rest, _ := afterLabel(lines[idx], "FILIACAO"); ValidName(rest) {
		return rest, true
	}

	var parents []string
	for i := idx + 1; i < len(lines) && len(parents) < 2; i++ {
		if !ValidName(lines[i]) {
			break
		}
		parents = append(parents, lines[i])
	}
	if len(parents) == 0 {
		return "", false
	}
	return strings.Join(parents, " E "), true
}

// birthplaceLabeled extracts the text after the NATURALIDADE label, dropping
// any trailing date the layout prints on the same line.
func birthplaceLabeled(lines []string) (string, bool) {
	idx := findLabelLine(lines, "NATURALIDADE")
	if idx < 0 {
		return "", false
	}
	rest, _ := afterLabel(lines[idx], "NATURALIDADE")
	if rest == "" && idx+1 < len(lines) {
		rest = lines[idx+1]
	}
	rest = strings.TrimSpace(patterns.DateDDMMYYYY.ReplaceAllString(rest, ""))
	rest = strings.Trim(rest, " -")
	if rest == "" || !strings.ContainsFunc(rest, func(r rune) bool { return r >= 'A' && r <= 'Z' }) {
		return "", false
	}
	return rest, true
}
