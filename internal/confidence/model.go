// Package confidence combines classifier certainty and per-field extraction
// success into the overall score reported to callers.
//
// The classifier's confidence is the floor; each extracted field adds a fixed
// weight, with the primary fields (card number, holder name) weighing more
// than supporting fields. The result is capped per document type and never
// reaches 1.0: the pipeline reports likelihood, not correctness.
package confidence

import (
	"github.com/google/uuid"

	"docscan/pkg/models"
)

// Field weights added to the classifier floor.
var fieldWeights = map[string]float64{
	models.FieldCardNumber:     0.20,
	models.FieldHolderName:     0.20,
	models.FieldCNS:            0.08,
	models.FieldCPF:            0.08,
	models.FieldRegistryNumber: 0.08,
	models.FieldBirthDate:      0.08,
}

// supportingWeight applies to any field without an explicit weight.
const supportingWeight = 0.05

// Per-type overall caps. No document type ever scores 1.0.
var typeCaps = map[models.DocumentType]float64{
	models.DocumentTypeInsuranceCard: 0.95,
	models.DocumentTypeIdentityCard:  0.92,
	models.DocumentTypeDriverLicense: 0.90,
	models.DocumentTypeUnknown:       0.30,
}

// Score builds the ConfidenceReport for one pipeline run. strategies maps
// each extracted field to the strategy id that produced it; pipeline tags
// which path ("modern" or "legacy") ran.
func Score(docType models.DocumentTypeResult, fields models.Fields, strategies map[string]string, pipeline string, matchCounts map[string]int) models.ConfidenceReport {
	floor := docType.Confidence
	cap := typeCaps[docType.Type]

	overall := floor
	perField := make(map[string]float64, len(fields))
	for field := range fields {
		w, ok := fieldWeights[field]
		if !ok {
			w = supportingWeight
		}
		overall += w
		score := floor + w
		if score > cap {
			score = cap
		}
		perField[field] = score
	}
	if overall > cap {
		overall = cap
	}

	return models.ConfidenceReport{
		Overall:  overall,
		PerField: perField,
		Method: models.MethodTrace{
			InvocationID: uuid.NewString(),
			Pipeline:     pipeline,
			Strategies:   strategies,
			MatchCounts:  matchCounts,
		},
	}
}
