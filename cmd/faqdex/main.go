// Command faqdex is a local FAQ retrieval tool: it ingests PDF documents
// into a similarity index and answers questions about them with a local
// language model.
package main

import (
	"fmt"
	"os"

	"github.com/foxest/faqdex/internal/adapters/driven/config/file"
	"github.com/foxest/faqdex/internal/adapters/driven/embedding/ollama"
	llmollama "github.com/foxest/faqdex/internal/adapters/driven/llm/ollama"
	"github.com/foxest/faqdex/internal/adapters/driven/storage/sqlite"
	"github.com/foxest/faqdex/internal/adapters/driving/cli"
	"github.com/foxest/faqdex/internal/chunker"
	"github.com/foxest/faqdex/internal/core/services"
	"github.com/foxest/faqdex/internal/extractor"
	"github.com/foxest/faqdex/internal/index"
	"github.com/foxest/faqdex/internal/queue"
)

// version is overridden at build time with -ldflags.
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(buildServices)

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// buildServices assembles the application from configuration. Called once
// after flags are parsed.
func buildServices(configDir string) (cli.Services, error) {
	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return cli.Services{}, fmt.Errorf("open config: %w", err)
	}
	cfg := file.Resolve(store)
	if err := cfg.Validate(); err != nil {
		return cli.Services{}, fmt.Errorf("invalid config: %w", err)
	}

	docStore, err := sqlite.NewStore(cfg.DataDir)
	if err != nil {
		return cli.Services{}, fmt.Errorf("open document store: %w", err)
	}

	vectorIndex, err := index.Open(cfg.IndexPath, cfg.EmbeddingDims)
	if err != nil {
		return cli.Services{}, fmt.Errorf("open vector index: %w", err)
	}

	embedder := ollama.NewEmbeddingService(ollama.Config{
		BaseURL:    cfg.EmbeddingBaseURL,
		Model:      cfg.EmbeddingModel,
		Dimensions: cfg.EmbeddingDims,
		Timeout:    cfg.EmbeddingTimeout,
	})
	model := llmollama.NewAnswerModel(llmollama.Config{
		BaseURL: cfg.LLMBaseURL,
		Model:   cfg.LLMModel,
		Timeout: cfg.LLMTimeout,
	})

	ch := chunker.New(
		chunker.WithChunkSize(cfg.ChunkSize),
		chunker.WithOverlap(cfg.ChunkOverlap),
	)

	ingest := services.NewIngestService(docStore, extractor.NewPDF(), embedder, vectorIndex, ch)
	search := services.NewSearchService(docStore, embedder, vectorIndex)
	search.SetDefaultK(cfg.SearchK)
	answer := services.NewAnswerService(search, docStore, model)
	faq := services.NewFAQService(docStore, model, ch)
	documents := services.NewDocumentService(docStore)
	status := services.NewStatusService(docStore, vectorIndex, embedder, model)

	return cli.Services{
		Ingest:    ingest,
		Search:    search,
		Answer:    answer,
		FAQ:       faq,
		Documents: documents,
		Status:    status,
		Queue:     queue.New(ingest),
		Uploads:   cfg.UploadsDir,
	}, nil
}
