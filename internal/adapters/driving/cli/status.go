package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show index size and backend health",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if statusService == nil {
		return errors.New("status service not configured")
	}

	st, err := statusService.Status(context.Background())
	if err != nil {
		return err
	}

	cmd.Printf("Documents:  %d\n", st.Documents)
	cmd.Printf("Vectors:    %d (%d dimensions)\n", st.Vectors, st.Dimensions)
	cmd.Printf("Embedding:  %s %s\n", st.EmbeddingModel, health(st.EmbeddingOK))
	cmd.Printf("Generation: %s %s\n", st.LLMModel, health(st.LLMOK))
	return nil
}

func health(ok bool) string {
	if ok {
		return "[ok]"
	}
	return "[unreachable]"
}
