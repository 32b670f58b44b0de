package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foxest/faqdex/internal/core/domain"
)

var (
	faqChunks int
	faqJSON   bool
)

var faqCmd = &cobra.Command{
	Use:   "faq [doc-id]",
	Short: "Generate FAQ pairs from a stored document",
	Args:  cobra.ExactArgs(1),
	RunE:  runFAQ,
}

func init() {
	faqCmd.Flags().IntVar(&faqChunks, "chunks", 0, "how many leading chunks to use (0 = default)")
	faqCmd.Flags().BoolVar(&faqJSON, "json", false, "output pairs as JSON")
	rootCmd.AddCommand(faqCmd)
}

func runFAQ(cmd *cobra.Command, args []string) error {
	if faqService == nil {
		return errors.New("faq service not configured")
	}

	pairs, err := faqService.GenerateFromDocument(context.Background(), args[0], faqChunks)
	if err != nil {
		return fmt.Errorf("faq generation failed: %w", err)
	}

	if faqJSON {
		return outputFAQJSON(cmd, pairs)
	}
	for i, pair := range pairs {
		cmd.Printf("Q%d: %s\n", i+1, pair.Question)
		cmd.Printf("A%d: %s\n", i+1, pair.Answer)
		cmd.Println()
	}
	return nil
}

func outputFAQJSON(cmd *cobra.Command, pairs []domain.FAQPair) error {
	data, err := json.MarshalIndent(pairs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal pairs: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
