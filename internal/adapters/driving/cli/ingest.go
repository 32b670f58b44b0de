package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/foxest/faqdex/internal/core/domain"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]...",
	Short: "Ingest PDF files into the index",
	Long: `Extracts text from each PDF, embeds it and adds it to the similarity
index. Files whose content is already stored are skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	ctx := context.Background()
	failed := 0
	for _, path := range args {
		result, err := ingestService.Ingest(ctx, path, filepath.Base(path))
		switch {
		case err != nil:
			failed++
			reason := result.Reason
			if reason == "" {
				reason = err.Error()
			}
			cmd.Printf("  failed     %s: %s\n", path, reason)
		case result.Status == domain.IngestSkipped:
			cmd.Printf("  skipped    %s (%s)\n", path, result.Reason)
		default:
			cmd.Printf("  stored     %s -> %s\n", path, result.DocumentID)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}
