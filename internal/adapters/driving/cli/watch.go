package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/foxest/faqdex/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the uploads directory and ingest new PDFs",
	Long: `Monitors the uploads directory and ingests every new or rewritten PDF
in the background. Runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if ingestQueue == nil || uploadsDir == "" {
		return errors.New("ingest queue not configured")
	}
	if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ingestQueue.Start(ctx)
	defer ingestQueue.Close()

	cmd.Printf("Watching %s (ctrl-c to stop)\n", uploadsDir)
	w := watcher.New(uploadsDir, ingestQueue)
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
