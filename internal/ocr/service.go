// Package ocr is the boundary to the external OCR collaborators that turn
// document photos into raw text.
//
// Two backends exist: Google Cloud Vision document text detection (default)
// and a Google Document AI OCR processor, selected via configuration. The
// rest of the pipeline only sees the TextExtractor interface: image bytes in,
// raw text out, or a transport failure. Retry policy and image preprocessing
// belong to callers.
//
// Required Environment Variables:
//   - GOOGLE_APPLICATION_CREDENTIALS: Path to service account JSON file, OR
//   - GOOGLE_CREDENTIALS: Inline JSON credentials string
//   - GOOGLE_CLOUD_PROJECT: Google Cloud project ID (Document AI backend)
//
// Limitations:
//   - Maximum image size: 20MB per request
//   - Supported formats: JPEG, PNG
package ocr

import (
	"context"
	"io"
	"time"
)

// TextExtractor defines the interface for OCR text extraction backends.
type TextExtractor interface {
	// ExtractText extracts raw text from a document image.
	ExtractText(ctx context.Context, image io.Reader) (string, error)

	// ExtractTextWithMetadata extracts text with backend confidence and
	// processing information.
	ExtractTextWithMetadata(ctx context.Context, image io.Reader) (*TextResult, error)
}

// TextResult contains the raw OCR output with metadata.
type TextResult struct {
	// Text is the extracted text content in reading order.
	Text string `json:"text"`

	// Confidence is the backend's average confidence over detected text (0.0 to 1.0).
	// This is OCR quality, not extraction quality.
	Confidence float32 `json:"confidence"`

	// LanguageCodes contains the detected languages in the document.
	LanguageCodes []string `json:"language_codes,omitempty"`

	// ProcessedAt is the timestamp when OCR processing completed.
	ProcessedAt time.Time `json:"processed_at"`

	// ProcessingDuration is how long the OCR call took.
	ProcessingDuration time.Duration `json:"processing_duration"`
}

const (
	// MaxImageSizeBytes is the maximum image size accepted by both backends (20MB).
	MaxImageSizeBytes = 20 * 1024 * 1024
)

// Backend names accepted by NewExtractor.
const (
	BackendVision     = "vision"
	BackendDocumentAI = "documentai"
)

// NewExtractor creates the configured OCR backend. An empty backend name
// selects Vision.
func NewExtractor(ctx context.Context, backend string) (TextExtractor, error) {
	switch backend {
	case "", BackendVision:
		return NewGoogleVisionExtractor(ctx)
	case BackendDocumentAI:
		return NewDocumentAIExtractor(ctx)
	default:
		return nil, WrapOCRError("NewExtractor", ErrInvalidConfiguration, "unknown OCR backend: "+backend)
	}
}

// readImage reads and validates image bytes: size cap plus a JPEG/PNG magic
// byte check, mirroring what the backends would reject anyway but failing
// before the network call.
func readImage(op string, image io.Reader) ([]byte, error) {
	data, err := io.ReadAll(image)
	if err != nil {
		return nil, WrapOCRError(op, err, "failed to read image data")
	}
	if len(data) > MaxImageSizeBytes {
		return nil, WrapOCRError(op, ErrImageTooLarge, "image exceeds 20MB")
	}
	if !isJPEG(data) && !isPNG(data) {
		return nil, WrapOCRError(op, ErrInvalidImage, "expected JPEG or PNG data")
	}
	return data, nil
}

func isJPEG(data []byte) bool {
	return len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF
}

func isPNG(data []byte) bool {
	return len(data) >= 8 && string(data[:8]) == "\x89PNG\r\n\x1a\n"
}

func mimeType(data []byte) string {
	if isPNG(data) {
		return "image/png"
	}
	return "image/jpeg"
}
