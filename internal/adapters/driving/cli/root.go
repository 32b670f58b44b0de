// Package cli is the cobra command surface. Services are injected by the
// composition root before Execute runs.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/foxest/faqdex/internal/core/ports/driving"
	"github.com/foxest/faqdex/internal/logger"
	"github.com/foxest/faqdex/internal/queue"
)

// version is stamped by the composition root.
var version = "dev"

// Injected services. Commands fail with a clear error when a service they
// need was not wired.
var (
	ingestService   driving.IngestService
	searchService   driving.SearchService
	answerService   driving.AnswerService
	faqService      driving.FAQService
	documentService driving.DocumentService
	statusService   driving.StatusService
	ingestQueue     *queue.Queue
	uploadsDir      string
)

var (
	verboseFlag bool
	configFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "faqdex",
	Short: "Local FAQ retrieval over your PDF documents",
	Long: `faqdex ingests PDF documents into a local similarity index and answers
questions about them using a local language model.

Run without arguments to start the interactive terminal UI.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseFlag)

		// The version command must work on a broken installation.
		if bootstrap == nil || cmd == versionCmd {
			return nil
		}
		services, err := bootstrap(configFlag)
		if err != nil {
			return err
		}
		SetServices(services)
		return nil
	},
	RunE: runTUI,
}

// bootstrap builds the services once flags are parsed, so --config takes
// effect before anything opens the store.
var bootstrap func(configPath string) (Services, error)

// SetBootstrap registers the service constructor run before each command.
func SetBootstrap(fn func(configPath string) (Services, error)) {
	bootstrap = fn
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config directory (default ~/.faqdex)")
}

// Services bundles everything the commands need.
type Services struct {
	Ingest    driving.IngestService
	Search    driving.SearchService
	Answer    driving.AnswerService
	FAQ       driving.FAQService
	Documents driving.DocumentService
	Status    driving.StatusService
	Queue     *queue.Queue
	Uploads   string
}

// SetServices wires the application services into the command tree.
func SetServices(s Services) {
	ingestService = s.Ingest
	searchService = s.Search
	answerService = s.Answer
	faqService = s.FAQ
	documentService = s.Documents
	statusService = s.Status
	ingestQueue = s.Queue
	uploadsDir = s.Uploads
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
