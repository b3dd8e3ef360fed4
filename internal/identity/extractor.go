// Package identity extracts holder fields from Brazilian identity documents
// (RG, CIN) and driver's licenses.
//
// Source layouts vary by issuing state and by document generation, so every
// semantic field carries its own ordered list of strategies, tried in order
// against the document's lines; the first strategy whose value passes the
// field's validity predicate wins. The strategy lists are first-class
// variables so their order is testable.
package identity

import (
	"github.com/rs/zerolog"

	"docscan/internal/logger"
	"docscan/pkg/models"
)

// FieldStrategy is one (id, extractor) pair in a per-field ordered list.
type FieldStrategy struct {
	ID      string
	Extract func(lines []string) (string, bool)
}

// Ordered strategy lists, one per semantic field. Order encodes precedence:
// labeled layouts are tried before structural fallbacks.
var (
	NameStrategies = []FieldStrategy{
		{ID: "name-labeled", Extract: nameFromLabeledLine},
		{ID: "name-before-filiacao", Extract: nameBeforeFiliacao},
		{ID: "name-after-filiacao", Extract: nameAfterFiliacao},
		{ID: "name-structural", Extract: nameStructural},
	}

	RegistryStrategies = []FieldStrategy{
		{ID: "registry-labeled", Extract: registryLabeled},
		{ID: "registry-structural", Extract: registryStructural},
	}

	CPFStrategies = []FieldStrategy{
		{ID: "cpf-structural", Extract: cpfStructural},
	}

	BirthDateStrategies = []FieldStrategy{
		{ID: "birthdate-labeled", Extract: birthDateLabeled},
		{ID: "birthdate-bare", Extract: birthDateBare},
	}

	FiliationStrategies = []FieldStrategy{
		{ID: "filiation-after-label", Extract: filiationAfterLabel},
	}

	BirthplaceStrategies = []FieldStrategy{
		{ID: "birthplace-labeled", Extract: birthplaceLabeled},
	}
)

// fieldSpec binds a semantic field name to its strategy list.
var fieldSpecs = []struct {
	field      string
	strategies []FieldStrategy
}{
	{models.FieldHolderName, NameStrategies},
	{models.FieldRegistryNumber, RegistryStrategies},
	{models.FieldCPF, CPFStrategies},
	{models.FieldBirthDate, BirthDateStrategies},
	{models.FieldFiliation, FiliationStrategies},
	{models.FieldBirthplace, BirthplaceStrategies},
}

// Extractor runs the per-field strategies over a document's lines.
type Extractor struct {
	log zerolog.Logger
}

// NewExtractor creates an identity field extractor.
func NewExtractor() *Extractor {
	return &Extractor{log: logger.WithComponent("identity-extractor")}
}

// Extract tries every field independently and returns the validated fields
// plus the strategy id that satisfied each one. A field no strategy could
// extract is simply absent.
func (e *Extractor) Extract(lines []string) (models.Fields, map[string]string) {
	fields := models.Fields{}
	strategies := map[string]string{}

	for _, spec := range fieldSpecs {
		for _, s := range spec.strategies {
			value, ok := s.Extract(lines)
			if !ok {
				continue
			}
			fields[spec.field] = value
			strategies[spec.field] = s.ID
			e.log.Debug().
				Str("field", spec.field).
				Str("strategy", s.ID).
				Msg("Identity field extracted")
			break
		}
	}

	return fields, strategies
}
