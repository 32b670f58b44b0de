package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var askK int

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about your documents",
	Long: `Retrieves the most similar documents and asks the language model to
answer from their content. The answer cites its source documents.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askK, "top", "k", 0, "how many documents to retrieve (0 = default)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	ctx := context.Background()
	answer, err := answerService.Ask(ctx, args[0], askK)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	cmd.Println(answer.Text)
	if len(answer.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for i, src := range answer.Sources {
			name := src.DocumentID
			if documentService != nil {
				if doc, err := documentService.Get(ctx, src.DocumentID); err == nil {
					name = doc.FileName
				}
			}
			cmd.Printf("  [%d] %s (%.2f)\n", i+1, name, src.Score)
		}
	}
	return nil
}
