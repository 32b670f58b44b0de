package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/foxest/faqdex/internal/chunker"
	"github.com/foxest/faqdex/internal/core/domain"
	"github.com/foxest/faqdex/internal/core/ports/driven"
	"github.com/foxest/faqdex/internal/core/ports/driving"
	"github.com/foxest/faqdex/internal/logger"
)

// Ensure FAQService implements the interface.
var _ driving.FAQService = (*FAQService)(nil)

const faqPromptTemplate = `Generate frequently asked questions from the document below.

Return ONLY a JSON array of objects with "question" and "answer" fields.
Each answer must be grounded in the document text. Generate at most 10 pairs.

Document:
%s

JSON:`

// defaultFAQChunks bounds how much of a document feeds FAQ generation
// when the caller does not say.
const defaultFAQChunks = 4

// FAQService generates question/answer pairs from stored documents.
type FAQService struct {
	docStore driven.DocumentStore
	model    driven.AnswerModel
	chunker  *chunker.Chunker
}

// NewFAQService creates a new FAQ generation service.
func NewFAQService(docStore driven.DocumentStore, model driven.AnswerModel, ch *chunker.Chunker) *FAQService {
	return &FAQService{
		docStore: docStore,
		model:    model,
		chunker:  ch,
	}
}

// GenerateFromDocument produces FAQ pairs from the first maxChunks chunks of
// the document. Malformed model output is reported, never silently dropped.
func (s *FAQService) GenerateFromDocument(ctx context.Context, documentID string, maxChunks int) ([]domain.FAQPair, error) {
	logger.Section("FAQ Generation")

	doc, err := s.docStore.Get(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("load document %s: %w", documentID, err)
	}

	if maxChunks <= 0 {
		maxChunks = defaultFAQChunks
	}
	chunks := s.chunker.Split(doc.Content)
	if len(chunks) > maxChunks {
		chunks = chunks[:maxChunks]
	}
	excerpt := strings.Join(chunks, "\n\n")
	logger.Debug("Generating FAQs from %d chunks of %s", len(chunks), doc.FileName)

	raw, err := s.model.Generate(ctx, fmt.Sprintf(faqPromptTemplate, excerpt), driven.GenerateOptions{
		MaxTokens:   1024,
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("generate FAQs: %w", err)
	}

	pairs, err := ParseFAQPairs(raw)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", documentID, err)
	}
	return pairs, nil
}

// ParseFAQPairs decodes a model completion into FAQ pairs. Models often wrap
// JSON in markdown code fences or prose, so the parser extracts the first
// JSON array before decoding. Output that holds no well-formed array is a
// model fault, reported as ErrMalformedModelOutput.
func ParseFAQPairs(raw string) ([]domain.FAQPair, error) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("%w: no JSON array in completion", domain.ErrMalformedModelOutput)
	}

	var pairs []domain.FAQPair
	if err := json.Unmarshal([]byte(text[start:end+1]), &pairs); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedModelOutput, err)
	}

	out := pairs[:0]
	for _, p := range pairs {
		if strings.TrimSpace(p.Question) == "" || strings.TrimSpace(p.Answer) == "" {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: completion held no usable pairs", domain.ErrMalformedModelOutput)
	}
	return out, nil
}
