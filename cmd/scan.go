package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"docscan/internal/logger"
	"docscan/internal/pipeline"
	"docscan/pkg/models"
)

var scanCmd = &cobra.Command{
	Use:   "scan [image-file]",
	Short: "Run the full extraction pipeline on a document photo",
	Long: `Process a document photo through OCR, document type classification, issuer
detection and field extraction, and print the structured result as JSON.

The result always has the same shape: document type, extracted fields, an
overall confidence score with per-field scores, and a method trace naming the
strategy that produced each field. Extraction misses lower confidence instead
of failing; only OCR transport failure yields success=false with an
"ocr-failure" error entry.

With --text the OCR stage is skipped and the given file is read as raw OCR
text, which needs no Google Cloud credentials.`,
	Example: `  # Scan an insurance card photo
  docscan scan carteirinha.jpg

  # Scan a photo with the Document AI backend
  DOCSCAN_OCR_BACKEND=documentai docscan scan rg.jpg

  # Re-run extraction on saved OCR text
  docscan scan --text extracted.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().Bool("text", false, "Treat the input file as raw OCR text instead of an image")
	scanCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	scanCmd.Flags().Int("timeout", 300, "Processing timeout in seconds")
}

func runScan(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("scan")

	textInput, _ := cmd.Flags().GetBool("text")
	outputPath, _ := cmd.Flags().GetString("output")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	inputPath := args[0]

	log.Info().
		Str("file", inputPath).
		Bool("text_input", textInput).
		Msg("Starting document scan")

	result, err := scanInput(inputPath, textInput, timeoutSecs, log)
	if err != nil {
		return err
	}

	log.Info().
		Bool("success", result.Success).
		Str("type", string(result.DocumentType.Type)).
		Float64("confidence", result.Confidence.Overall).
		Msg("Document scan completed")

	outputData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal scan result")
		return fmt.Errorf("failed to create JSON output: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, outputData, 0644); err != nil {
			log.Error().
				Err(err).
				Str("output_file", outputPath).
				Msg("Failed to write output file")
			return fmt.Errorf("failed to write output file: %w", err)
		}
		log.Info().
			Str("output_file", outputPath).
			Msg("Scan result written to file")
		return nil
	}

	fmt.Println(string(outputData))
	return nil
}

// scanInput runs the pipeline on either a raw text file or a document image.
func scanInput(inputPath string, textInput bool, timeoutSecs int, log zerolog.Logger) (*models.ExtractionResult, error) {
	if textInput {
		raw, err := os.ReadFile(inputPath)
		if err != nil {
			log.Error().Err(err).Str("file", inputPath).Msg("Failed to read text file")
			return nil, fmt.Errorf("failed to read text file: %w", err)
		}
		return pipeline.New(nil).ProcessText(string(raw)), nil
	}

	if _, err := validateImageFile(inputPath, log); err != nil {
		return nil, err
	}

	ctx, cancel := createContextWithTimeout(timeoutSecs, log)
	defer cancel()

	extractor, err := createTextExtractor(ctx, log)
	if err != nil {
		return nil, err
	}

	imageFile, err := os.Open(inputPath)
	if err != nil {
		log.Error().Err(err).Str("file", inputPath).Msg("Failed to open image file")
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer func() {
		if closeErr := imageFile.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close image file")
		}
	}()

	return pipeline.New(extractor).Process(ctx, imageFile), nil
}
