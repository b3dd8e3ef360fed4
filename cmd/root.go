package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docscan/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "docscan",
	Short: "docscan - extract structured data from Brazilian document photos",
	Long: `docscan ingests a photographed or scanned Brazilian identity document or
health-insurance card, runs it through Google Cloud OCR and converts the raw
text into a structured record with a confidence score.

Extraction is probabilistic: results carry per-field confidence and a method
trace so low-confidence values can be routed to human confirmation.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Msg("docscan executed")

		fmt.Println("Welcome to docscan!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
