package issuer

import "docscan/internal/ans"

// Issuer ids used to select card extraction strategies.
const (
	Unimed      = "unimed"
	Bradesco    = "bradesco"
	Amil        = "amil"
	SulAmerica  = "sulamerica"
	Hapvida     = "hapvida"
	Intermedica = "intermedica"
)

// operator maps a known operator to its regulator-assigned identity.
type operator struct {
	id   string
	code string
	name string
}

// operators is the known issuer-code table. The ANS code is authoritative;
// brand tokens are the secondary signal used when no code is printed.
var operators = []operator{
	{id: Unimed, code: "000701", name: "UNIMED DO BRASIL"},
	{id: Unimed, code: "339679", name: "CENTRAL NACIONAL UNIMED"},
	{id: Bradesco, code: "005711", name: "BRADESCO SAUDE"},
	{id: Amil, code: "326305", name: "AMIL ASSISTENCIA MEDICA"},
	{id: SulAmerica, code: "006246", name: "SULAMERICA SEGURO SAUDE"},
	{id: Hapvida, code: "368253", name: "HAPVIDA ASSISTENCIA MEDICA"},
	{id: Intermedica, code: "359017", name: "NOTRE DAME INTERMEDICA"},
}

// brandTokens maps trade-name tokens (normalized form) to issuer ids. Order
// matters: more specific tokens come first so "SUL AMERICA" is not shadowed.
var brandTokens = []struct {
	token string
	id    string
}{
	{"SULAMERICA", SulAmerica},
	{"SUL AMERICA", SulAmerica},
	{"UNIMED", Unimed},
	{"BRADESCO", Bradesco},
	{"AMIL", Amil},
	{"HAPVIDA", Hapvida},
	{"INTERMEDICA", Intermedica},
	{"NOTRE DAME", Intermedica},
}

// byCode indexes operators by both the raw and the zero-stripped code form.
var byCode = func() map[string]operator {
	m := make(map[string]operator, len(operators)*2)
	for _, op := range operators {
		m[op.code] = op
		m[ans.Normalize(op.code)] = op
	}
	return m
}()

// LookupCode resolves a regulatory code (raw or normalized form) to a known
// operator. Absence of a match is not an error.
func LookupCode(code string) (id, name string, ok bool) {
	if op, found := byCode[code]; found {
		return op.id, op.name, true
	}
	if op, found := byCode[ans.Normalize(code)]; found {
		return op.id, op.name, true
	}
	return "", "", false
}
