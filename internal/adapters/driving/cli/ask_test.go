package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/foxest/faqdex/internal/core/domain"
)

// mockAnswerService implements driving.AnswerService.
type mockAnswerService struct {
	answer *domain.Answer
	err    error
}

func (m *mockAnswerService) Ask(_ context.Context, _ string, _ int) (*domain.Answer, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.answer, nil
}

func TestAskCmd(t *testing.T) {
	oldAnswer := answerService
	oldDocs := documentService
	answerService = &mockAnswerService{answer: &domain.Answer{
		Question: "how many vacation days?",
		Text:     "You get 25 days.",
		Sources:  []domain.SearchHit{{DocumentID: "doc-1", Score: 0.9}},
	}}
	documentService = &mockDocumentService{docs: map[string]*domain.Document{
		"doc-1": {ID: "doc-1", FileName: "handbook.pdf"},
	}}
	defer func() {
		answerService = oldAnswer
		documentService = oldDocs
	}()

	out, err := execute(t, "ask", "how many vacation days?")

	assert.NoError(t, err)
	assert.Contains(t, out, "You get 25 days.")
	assert.Contains(t, out, "handbook.pdf")
}

func TestAskCmd_ServiceNotConfigured(t *testing.T) {
	oldAnswer := answerService
	answerService = nil
	defer func() { answerService = oldAnswer }()

	_, err := execute(t, "ask", "question")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "answer service not configured")
}

func TestAskCmd_ServiceError(t *testing.T) {
	oldAnswer := answerService
	answerService = &mockAnswerService{err: domain.ErrModelUnavailable}
	defer func() { answerService = oldAnswer }()

	_, err := execute(t, "ask", "question")

	assert.ErrorIs(t, err, domain.ErrModelUnavailable)
}
