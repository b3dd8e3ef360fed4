package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DOCSCAN_OCR_BACKEND", "")
	t.Setenv("GOOGLE_CLOUD_LOCATION", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "vision", cfg.OCRBackend)
	assert.Equal(t, "us", cfg.GoogleCloudLocation)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("DOCSCAN_OCR_BACKEND", "tesseract")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DOCSCAN_OCR_BACKEND")
}

func TestLoadDocumentAIRequirements(t *testing.T) {
	t.Run("missing project", func(t *testing.T) {
		t.Setenv("DOCSCAN_OCR_BACKEND", "documentai")
		t.Setenv("DOCUMENT_AI_PROCESSOR_ID", "abc123")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GOOGLE_CLOUD_PROJECT")
	})

	t.Run("missing processor", func(t *testing.T) {
		t.Setenv("DOCSCAN_OCR_BACKEND", "documentai")
		t.Setenv("GOOGLE_CLOUD_PROJECT", "my-project")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DOCUMENT_AI_PROCESSOR_ID")
	})

	t.Run("fully configured", func(t *testing.T) {
		t.Setenv("DOCSCAN_OCR_BACKEND", "documentai")
		t.Setenv("GOOGLE_CLOUD_PROJECT", "my-project")
		t.Setenv("DOCUMENT_AI_PROCESSOR_ID", "abc123")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "documentai", cfg.OCRBackend)
	})
}

func TestGetLoggerConfig(t *testing.T) {
	cfg := &Config{
		LogLevel:  "debug",
		LogFormat: "json",
		LogOutput: "stderr",
	}

	lc := cfg.GetLoggerConfig()
	assert.Equal(t, "debug", lc.Level)
	assert.Equal(t, "json", lc.Format)
	assert.Equal(t, "stderr", lc.Output)
}
