package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Inspect stored documents",
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show document metadata",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

func init() {
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docs, err := documentService.List(context.Background())
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		cmd.Println("No documents stored.")
		return nil
	}

	for _, doc := range docs {
		cmd.Printf("  %s  %s  (queries: %d)\n", doc.ID, doc.FileName, doc.UsageCount)
	}
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	doc, err := documentService.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	cmd.Printf("ID:        %s\n", doc.ID)
	cmd.Printf("File:      %s\n", doc.FileName)
	cmd.Printf("Hash:      %s\n", doc.ContentHash)
	cmd.Printf("Model:     %s\n", doc.EmbeddingModel)
	cmd.Printf("Queries:   %d\n", doc.UsageCount)
	cmd.Printf("Stored:    %s\n", doc.CreatedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("Content:   %d characters\n", len(doc.Content))
	return nil
}
