// Package pipeline orchestrates the extraction stages: OCR, normalization,
// document type classification, issuer resolution, field extraction and
// confidence scoring.
//
// One Process call is one self-contained synchronous run. The only suspension
// point is the OCR call; everything after it is pure computation over freshly
// allocated values, so concurrent invocations share no mutable state and need
// no locks. Only OCR transport failure is fatal; every other miss degrades
// confidence and the caller always receives a uniform ExtractionResult.
package pipeline

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"docscan/internal/ans"
	"docscan/internal/card"
	"docscan/internal/classify"
	"docscan/internal/confidence"
	"docscan/internal/identity"
	"docscan/internal/issuer"
	"docscan/internal/logger"
	"docscan/internal/ocr"
	"docscan/internal/textnorm"
	"docscan/pkg/models"
)

// ErrOCRFailure is the error string reported on OCR transport failure.
const ErrOCRFailure = "ocr-failure"

// minUsableConfidence triggers the legacy fallback path: when the modern
// strategy-based path scores below this, the legacy heuristics also run and
// the higher-scoring result wins.
const minUsableConfidence = 0.40

// Pipeline tags recorded in the method trace.
const (
	PipelineModern = "modern"
	PipelineLegacy = "legacy"
)

// Processor is the extraction orchestrator. Create one with New and reuse it
// across invocations; it is safe for concurrent use.
type Processor struct {
	extractor  ocr.TextExtractor
	classifier *classify.Classifier
	issuers    *issuer.Detector
	identities *identity.Extractor
	log        zerolog.Logger
}

// New creates a Processor backed by the given OCR text extractor. The
// extractor may be nil when only ProcessText is used.
func New(extractor ocr.TextExtractor) *Processor {
	return &Processor{
		extractor:  extractor,
		classifier: classify.New(),
		issuers:    issuer.NewDetector(),
		identities: identity.NewExtractor(),
		log:        logger.WithComponent("pipeline"),
	}
}

// Process runs the full pipeline on an image. OCR transport failure yields a
// result with Success=false and an "ocr-failure" error entry; no other
// condition is reported as an error.
func (p *Processor) Process(ctx context.Context, image io.Reader) *models.ExtractionResult {
	text, err := p.extractor.ExtractText(ctx, image)
	if err != nil {
		p.log.Error().Err(err).Msg("OCR transport failure")
		return p.failedOCRResult(err)
	}

	return p.processText(text, true)
}

// ProcessText runs every stage after OCR on already-extracted text. An empty
// or garbage text is not an error: it classifies as unknown with low
// confidence.
func (p *Processor) ProcessText(raw string) *models.ExtractionResult {
	return p.processText(raw, false)
}

func (p *Processor) processText(raw string, viaOCR bool) *models.ExtractionResult {
	modern := p.runModern(raw, viaOCR)
	if modern.Confidence.Overall >= minUsableConfidence {
		return modern
	}

	legacy := p.runLegacy(raw, viaOCR)
	if legacy.Confidence.Overall > modern.Confidence.Overall {
		p.log.Info().
			Float64("modern", modern.Confidence.Overall).
			Float64("legacy", legacy.Confidence.Overall).
			Msg("Legacy fallback path outscored modern path")
		return legacy
	}
	return modern
}

// runModern is the strategy-based path.
func (p *Processor) runModern(raw string, viaOCR bool) *models.ExtractionResult {
	states := stateWalk(viaOCR)

	normalized := textnorm.Normalize(raw)
	linesText := textnorm.NormalizePreservingLines(raw)
	lines := textnorm.Lines(linesText)
	states = append(states, StateTextNormalized)

	docType, matchCounts := p.classifier.Classify(normalized)
	states = append(states, StateTypeClassified)

	fields := models.Fields{}
	strategies := map[string]string{}
	var issuerIdentity models.IssuerIdentity

	switch docType.Type {
	case models.DocumentTypeInsuranceCard:
		issuerIdentity, fields, strategies = p.extractInsurance(normalized, linesText)
		states = append(states, StateIssuerResolved, StateFieldsExtracted)
	case models.DocumentTypeIdentityCard, models.DocumentTypeDriverLicense:
		fields, strategies = p.identities.Extract(lines)
		states = append(states, StateFieldsExtracted)
	default:
		// Classification miss: no fields are attempted.
	}

	report := confidence.Score(docType, fields, strategies, PipelineModern, matchCounts)
	states = append(states, StateScored)

	return p.finish(docType, issuerIdentity, fields, report, states)
}

// runLegacy is the issuer-unaware fallback path. It reuses the classifier
// verdict but extracts with broad generic patterns only.
func (p *Processor) runLegacy(raw string, viaOCR bool) *models.ExtractionResult {
	states := stateWalk(viaOCR)

	normalized := textnorm.Normalize(raw)
	linesText := textnorm.NormalizePreservingLines(raw)
	lines := textnorm.Lines(linesText)
	states = append(states, StateTextNormalized)

	docType, matchCounts := p.classifier.Classify(normalized)
	states = append(states, StateTypeClassified)

	fields, strategies := legacyExtract(docType, lines, linesText)
	states = append(states, StateFieldsExtracted)

	report := confidence.Score(docType, fields, strategies, PipelineLegacy, matchCounts)
	states = append(states, StateScored)

	return p.finish(docType, models.IssuerIdentity{}, fields, report, states)
}

// extractInsurance resolves the issuer and runs its card strategy, falling
// back to the generic heuristic when no issuer-specific strategy exists.
func (p *Processor) extractInsurance(normalized, linesText string) (models.IssuerIdentity, models.Fields, map[string]string) {
	code, codePattern := ans.Extract(normalized)
	detection := p.issuers.Identify(normalized, code)

	strategy, ok := card.ForIssuer(detection.ID)
	if !ok {
		strategy = card.Generic(code)
	}

	ext := strategy.Extract(linesText)

	fields := models.Fields{}
	strategies := map[string]string{}
	if ext.Found() {
		fields[models.FieldCardNumber] = ext.CardNumber
		strategies[models.FieldCardNumber] = strategy.ID()
	}
	for field, value := range ext.Supporting {
		fields[field] = value
		strategies[field] = strategy.ID()
	}
	if codePattern != "" {
		strategies["regulatory_code"] = codePattern
	}

	return detection.Identity, fields, strategies
}

// finish assembles the uniform result shape. Done always carries a result.
func (p *Processor) finish(docType models.DocumentTypeResult, iss models.IssuerIdentity, fields models.Fields, report models.ConfidenceReport, states []State) *models.ExtractionResult {
	states = append(states, StateDone)
	report.Method.FinalState = string(StateDone)
	report.Method.States = stateStrings(states)

	result := &models.ExtractionResult{
		Data:         fields,
		DocumentType: docType,
		Issuer:       iss,
		Confidence:   report,
	}
	_, hasPrimary := result.PrimaryField()
	result.Success = docType.Type != models.DocumentTypeUnknown && hasPrimary

	p.log.Info().
		Str("type", string(docType.Type)).
		Str("pipeline", report.Method.Pipeline).
		Float64("confidence", report.Overall).
		Bool("success", result.Success).
		Int("fields", len(fields)).
		Msg("Extraction completed")

	return result
}

// failedOCRResult builds the terminal FailedOCR result: no partial data, a
// confidence report near zero, and the transport error surfaced.
func (p *Processor) failedOCRResult(err error) *models.ExtractionResult {
	docType := models.DocumentTypeResult{Type: models.DocumentTypeUnknown, Confidence: 0}
	report := confidence.Score(docType, nil, nil, PipelineModern, nil)
	report.Method.FinalState = string(StateFailedOCR)
	report.Method.States = stateStrings([]State{StateIdle, StateOCRRequested, StateFailedOCR})

	return &models.ExtractionResult{
		Success:      false,
		Data:         models.Fields{},
		DocumentType: docType,
		Confidence:   report,
		Errors:       []string{ErrOCRFailure, err.Error()},
	}
}
