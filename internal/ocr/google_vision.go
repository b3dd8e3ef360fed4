package ocr

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	vision "cloud.google.com/go/vision/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
)

// GoogleVisionExtractor implements TextExtractor using Google Cloud Vision
// document text detection.
type GoogleVisionExtractor struct {
	client *vision.ImageAnnotatorClient
}

// NewGoogleVisionExtractor creates an OCR backend with credentials from environment.
// It expects either GOOGLE_APPLICATION_CREDENTIALS path or GOOGLE_CREDENTIALS JSON in env.
func NewGoogleVisionExtractor(ctx context.Context) (TextExtractor, error) {
	const op = "NewGoogleVisionExtractor"

	var client *vision.ImageAnnotatorClient
	var err error

	// Check for inline credentials first
	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
		if err != nil {
			return nil, WrapOCRError(op, err, "failed to create client with GOOGLE_CREDENTIALS")
		}
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		// Use credentials file
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsFile(credFile))
		if err != nil {
			return nil, WrapOCRError(op, err, "failed to create client with GOOGLE_APPLICATION_CREDENTIALS")
		}
	} else {
		// Try default credentials as fallback
		client, err = vision.NewImageAnnotatorClient(ctx)
		if err != nil {
			return nil, WrapOCRError(op, ErrMissingCredentials, "no credentials found in environment")
		}
	}

	return &GoogleVisionExtractor{
		client: client,
	}, nil
}

// NewGoogleVisionExtractorWithClient creates a backend with an explicit client (for testing).
func NewGoogleVisionExtractorWithClient(client *vision.ImageAnnotatorClient) TextExtractor {
	return &GoogleVisionExtractor{
		client: client,
	}
}

// ExtractText extracts raw text from a document image.
func (g *GoogleVisionExtractor) ExtractText(ctx context.Context, image io.Reader) (string, error) {
	result, err := g.ExtractTextWithMetadata(ctx, image)
	if err != nil {
		return "", err
	}
	return result.Text, nil
}

// ExtractTextWithMetadata extracts text from a document image with metadata.
func (g *GoogleVisionExtractor) ExtractTextWithMetadata(ctx context.Context, image io.Reader) (*TextResult, error) {
	const op = "ExtractTextWithMetadata"
	startTime := time.Now()

	imageBytes, err := readImage(op, image)
	if err != nil {
		return nil, err
	}

	annotation, err := g.client.DetectDocumentText(ctx, &visionpb.Image{Content: imageBytes}, nil)
	if err != nil {
		return nil, WrapOCRError(op, ErrOCRFailed, fmt.Sprintf("Vision API call failed: %v", err))
	}
	if annotation == nil || strings.TrimSpace(annotation.Text) == "" {
		return nil, WrapOCRError(op, ErrEmptyDocument, "no text detected in image")
	}

	result := g.processAnnotation(annotation)
	result.ProcessedAt = time.Now()
	result.ProcessingDuration = result.ProcessedAt.Sub(startTime)

	return result, nil
}

// processAnnotation aggregates confidence and language metadata from the
// full text annotation.
func (g *GoogleVisionExtractor) processAnnotation(annotation *visionpb.TextAnnotation) *TextResult {
	var confidenceSum float32
	var confidenceCount int
	languageSet := make(map[string]bool)

	for _, page := range annotation.Pages {
		if page.Confidence > 0 {
			confidenceSum += page.Confidence
			confidenceCount++
		}
		if page.Property != nil {
			for _, lang := range page.Property.DetectedLanguages {
				if lang.LanguageCode != "" {
					languageSet[lang.LanguageCode] = true
				}
			}
		}
	}

	var avgConfidence float32
	if confidenceCount > 0 {
		avgConfidence = confidenceSum / float32(confidenceCount)
	}

	var languages []string
	for lang := range languageSet {
		languages = append(languages, lang)
	}

	return &TextResult{
		Text:          annotation.Text,
		Confidence:    avgConfidence,
		LanguageCodes: languages,
	}
}

// Close closes the underlying Vision client.
func (g *GoogleVisionExtractor) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
