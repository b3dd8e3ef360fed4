package identity

import (
	"strings"
)

// boilerplateTokens are document boilerplate words that never appear in a
// holder's name. Matching is by exact token so real surnames ("LEITE",
// "NACIONAL" would be substring traps) are not rejected.
var boilerplateTokens = map[string]bool{
	"REPUBLICA": true, "FEDERATIVA": true, "BRASIL": true,
	"SECRETARIA": true, "SEGURANCA": true, "INSTITUTO": true,
	"IDENTIFICACAO": true, "CARTEIRA": true, "IDENTIDADE": true,
	"NACIONAL": true, "FILIACAO": true, "NATURALIDADE": true,
	"NASCIMENTO": true, "ASSINATURA": true, "DIRETOR": true,
	"VALIDA": true, "TERRITORIO": true, "DATA": true,
	"REGISTRO": true, "GERAL": true, "EXPEDIDOR": true, "LEI": true,
}

// ValidName reports whether a candidate holder name is plausible: only
// letters, spaces, apostrophes, hyphens and periods; at least two tokens; no
// token shorter than two characters; no boilerplate token.
func ValidName(candidate string) bool {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return false
	}
	for _, r := range candidate {
		switch {
		case r >= 'A' && r <= 'Z':
		case r == ' ' || r == '\'' || r == '-' || r == '.':
		default:
			return false
		}
	}
	tokens := strings.Fields(candidate)
	if len(tokens) < 2 {
		return false
	}
	for _, tok := range tokens {
		if len(tok) < 2 {
			return false
		}
		if boilerplateTokens[strings.Trim(tok, ".")] {
			return false
		}
	}
	return true
}

// nameFromLabeledLine extracts the value after an explicit "NOME" label,
// either on the same line or on the line below.
func nameFromLabeledLine(lines []string) (string, bool) {
	for i, line := range lines {
		rest, ok := afterLabel(line, "NOME")
		if !ok {
			continue
		}
		if rest != "" && ValidName(rest) {
			return rest, true
		}
		if rest == "" && i+1 < len(lines) && ValidName(lines[i+1]) {
			return lines[i+1], true
		}
	}
	return "", false
}

// nameBeforeFiliacao handles older layouts where the holder's name is printed
// just above the FILIAÇÃO label. Up to two lines above are tried, nearest
// first.
func nameBeforeFiliacao(lines []string) (string, bool) {
	idx := findLabelLine(lines, "FILIACAO")
	if idx < 0 {
		return "", false
	}
	for back := 1; back <= 2; back++ {
		i := idx - back
		if i < 0 {
			break
		}
		if ValidName(lines[i]) {
			return lines[i], true
		}
	}
	return "", false
}

// nameAfterFiliacao handles newer regional layouts where the holder's name is
// printed just below the FILIAÇÃO label. This is easily confused with the
// parents' names block, so the shared validity predicate is the only filter;
// low-confidence winners should be routed to human confirmation.
func nameAfterFiliacao(lines []string) (string, bool) {
	idx := findLabelLine(lines, "FILIACAO")
	if idx < 0 || idx+1 >= len(lines) {
		return "", false
	}
	if ValidName(lines[idx+1]) {
		return lines[idx+1], true
	}
	return "", false
}

// nameStructural is the purely structural fallback: the first all-uppercase
// line of at least two tokens, each at least two characters, containing no
// digits and no boilerplate.
func nameStructural(lines []string) (string, bool) {
	for _, line := range lines {
		if strings.ContainsAny(line, "0123456789") {
			continue
		}
		if ValidName(line) {
			return line, true
		}
	}
	return "", false
}

// afterLabel returns the text following a label token on the line, and
// whether the line carries that label at all. "NOME: FULANO" yields
// ("FULANO", true); a bare "NOME" line yields ("", true).
func afterLabel(line, label string) (string, bool) {
	idx := strings.Index(line, label)
	if idx < 0 {
		return "", false
	}
	// The label must be its own token, not a fragment of a longer word.
	if idx > 0 && line[idx-1] != ' ' {
		return "", false
	}
	end := idx + len(label)
	if end < len(line) && line[end] != ' ' && line[end] != ':' && line[end] != '/' {
		return "", false
	}
	rest := strings.TrimLeft(line[end:], " :/-")
	return strings.TrimSpace(rest), true
}

// findLabelLine returns the index of the first line carrying the label, or -1.
func findLabelLine(lines []string, label string) int {
	for i, line := range lines {
		if _, ok := afterLabel(line, label); ok {
			return i
		}
	}
	return -1
}
