package models

// DocumentType identifies the kind of document the classifier recognized.
type DocumentType string

const (
	// DocumentTypeInsuranceCard is a Brazilian health-insurance (plano de saúde) card.
	DocumentTypeInsuranceCard DocumentType = "insurance_card"

	// DocumentTypeIdentityCard is a Brazilian identity document (RG or CIN).
	DocumentTypeIdentityCard DocumentType = "identity_card"

	// DocumentTypeDriverLicense is a Brazilian driver's license (CNH).
	DocumentTypeDriverLicense DocumentType = "driver_license"

	// DocumentTypeUnknown means no candidate type cleared its match threshold.
	DocumentTypeUnknown DocumentType = "unknown"
)

// Identity document subtypes.
const (
	SubtypeCIN             = "cin"
	SubtypeRG              = "rg"
	SubtypeIdentityGeneric = "identity_generic"
)

// Semantic field names used as keys in Fields and ConfidenceReport.PerField.
const (
	FieldCardNumber     = "card_number"
	FieldHolderName     = "holder_name"
	FieldBirthDate      = "birth_date"
	FieldFiliation      = "filiation"
	FieldCPF            = "cpf"
	FieldRegistryNumber = "registry_number"
	FieldBirthplace     = "birthplace"
	FieldPlanName       = "plan_name"
	FieldAccommodation  = "accommodation"
	FieldContractType   = "contract_type"
	FieldCNS            = "cns"
	FieldValidity       = "validity"
)

// DocumentTypeResult is the classifier's verdict for one document.
type DocumentTypeResult struct {
	Type       DocumentType `json:"type"`
	Subtype    string       `json:"subtype,omitempty"`
	Confidence float64      `json:"confidence"`
}

// IssuerIdentity identifies the insurance operator that issued a card.
// Either field may be empty; a regulatory code can resolve without a known
// name and a brand name can be recognized without a printed ANS code.
type IssuerIdentity struct {
	// Code is the ANS regulatory registration code as printed (leading zeros kept).
	Code string `json:"code,omitempty"`

	// Name is the canonical operator name.
	Name string `json:"name,omitempty"`
}

// Fields maps semantic field names to extracted values. A key is present only
// when its value passed that field's own validation rule.
type Fields map[string]string

// MethodTrace records how a result was produced, so extraction can be
// debugged without re-running the pipeline.
type MethodTrace struct {
	// InvocationID is a unique id for this pipeline run.
	InvocationID string `json:"invocation_id"`

	// Pipeline is "modern" or "legacy" depending on which path won.
	Pipeline string `json:"pipeline"`

	// FinalState is the orchestrator state the run ended in.
	FinalState string `json:"final_state"`

	// States is the full state progression of the run, in order.
	States []string `json:"states,omitempty"`

	// Strategies maps each extracted field to the strategy id that produced it.
	Strategies map[string]string `json:"strategies,omitempty"`

	// MatchCounts holds the classifier's per-type keyword match counts.
	MatchCounts map[string]int `json:"match_counts,omitempty"`
}

// ConfidenceReport aggregates per-field extraction success and classifier
// certainty. It is always produced, even on total failure.
type ConfidenceReport struct {
	// Overall is the combined confidence (0.0-1.0). Never reaches 1.0.
	Overall float64 `json:"overall"`

	// PerField maps extracted field names to their individual scores.
	PerField map[string]float64 `json:"per_field,omitempty"`

	// Method records which strategies produced the result.
	Method MethodTrace `json:"method"`
}

// ExtractionResult is the sole contract returned to callers of the pipeline.
type ExtractionResult struct {
	// Success is true when the document type was recognized and the primary
	// field (card number or holder name) was extracted.
	Success bool `json:"success"`

	// Data holds the validated extracted fields.
	Data Fields `json:"data"`

	// DocumentType is the classifier verdict.
	DocumentType DocumentTypeResult `json:"document_type"`

	// Issuer identifies the insurance operator, when resolved.
	Issuer IssuerIdentity `json:"issuer,omitempty"`

	// Confidence scores the extraction and carries the method trace.
	Confidence ConfidenceReport `json:"confidence"`

	// Errors lists fatal conditions ("ocr-failure"). Misses are not errors.
	Errors []string `json:"errors,omitempty"`
}

// PrimaryField returns the extracted card number or holder name, whichever is
// present, preferring the card number.
func (r *ExtractionResult) PrimaryField() (string, bool) {
	if v, ok := r.Data[FieldCardNumber]; ok {
		return v, true
	}
	if v, ok := r.Data[FieldHolderName]; ok {
		return v, true
	}
	return "", false
}
