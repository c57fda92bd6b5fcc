package main

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ethioagri/gebeya/app/models"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <image-file>",
	Short: "Run crop disease analysis on a photo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		result, err := analyzer.Analyze(cmd.Context(), filepath.Base(path), detectContentType(path, content), content)
		if err != nil {
			return err
		}

		fmt.Printf("Crop:      %s\n", result.CropType)
		fmt.Printf("Disease:   %s\n", result.DiseaseType)
		fmt.Printf("Severity:  %s (%d/10)\n", models.FormatSeverity(result.SeverityLevel), result.SeverityLevel)
		fmt.Printf("Affected:  %.1f%% of the plant\n", result.AffectedAreaPercentage)
		fmt.Printf("Took:      %.0f ms\n", result.ResponseTimeMs)
		return nil
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the crop analyzer service",
	RunE: func(cmd *cobra.Command, args []string) error {
		health, err := analyzer.Health(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Status:     %s — %s\n", health.Status, health.Message)
		fmt.Printf("Model:      configured=%v\n", health.Configured)
		fmt.Printf("Max upload: %d MB\n", health.MaxFileSizeMB)
		return nil
	},
}

// detectContentType prefers the file extension and falls back to content
// sniffing for extensionless files.
func detectContentType(path string, content []byte) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return http.DetectContentType(content)
}
