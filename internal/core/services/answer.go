package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/foxest/faqdex/internal/core/domain"
	"github.com/foxest/faqdex/internal/core/ports/driven"
	"github.com/foxest/faqdex/internal/core/ports/driving"
	"github.com/foxest/faqdex/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.AnswerService = (*AnswerService)(nil)

// answerPromptTemplate grounds the model on retrieved document content and
// instructs it to refuse rather than invent when the context is insufficient.
const answerPromptTemplate = `You are a helpful assistant answering questions from a document knowledge base.

Use ONLY the context below to answer. If the context does not contain the
answer, say you do not know.

Context:
%s

Question: %s

Answer:`

// maxContextChars caps how much document content goes into a single prompt.
const maxContextChars = 8000

// AnswerService answers free-form questions grounded on retrieved documents.
type AnswerService struct {
	search   driving.SearchService
	docStore driven.DocumentStore
	model    driven.AnswerModel
}

// NewAnswerService creates a new answer service.
func NewAnswerService(
	search driving.SearchService,
	docStore driven.DocumentStore,
	model driven.AnswerModel,
) *AnswerService {
	return &AnswerService{
		search:   search,
		docStore: docStore,
		model:    model,
	}
}

// Ask retrieves the top-k documents for the question, assembles their
// content into a grounding prompt and asks the language model.
func (s *AnswerService) Ask(ctx context.Context, question string, k int) (*domain.Answer, error) {
	logger.Section("Ask")

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}

	hits, err := s.search.Search(ctx, question, k)
	if err != nil {
		return nil, fmt.Errorf("retrieve context: %w", err)
	}
	if len(hits) == 0 {
		return &domain.Answer{
			Question: question,
			Text:     "I could not find any relevant documents for this question.",
			Sources:  []domain.SearchHit{},
		}, nil
	}

	contextText, err := s.buildContext(ctx, hits)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(answerPromptTemplate, contextText, question)
	logger.Debug("Prompt is %d characters over %d sources", len(prompt), len(hits))

	text, err := s.model.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   512,
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	return &domain.Answer{
		Question: question,
		Text:     strings.TrimSpace(text),
		Sources:  hits,
	}, nil
}

// buildContext hydrates hit documents and concatenates their content,
// best match first, up to the prompt budget.
func (s *AnswerService) buildContext(ctx context.Context, hits []domain.SearchHit) (string, error) {
	var b strings.Builder
	for i, hit := range hits {
		doc, err := s.docStore.Get(ctx, hit.DocumentID)
		if err != nil {
			return "", fmt.Errorf("load document %s: %w", hit.DocumentID, err)
		}

		remaining := maxContextChars - b.Len()
		if remaining <= 0 {
			break
		}
		content := doc.Content
		if len(content) > remaining {
			content = content[:remaining]
		}
		fmt.Fprintf(&b, "[%d] %s\n%s\n\n", i+1, doc.FileName, content)
	}
	return strings.TrimSpace(b.String()), nil
}
