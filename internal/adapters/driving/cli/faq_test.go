package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/foxest/faqdex/internal/core/domain"
)

// mockFAQService implements driving.FAQService.
type mockFAQService struct {
	pairs []domain.FAQPair
	err   error
}

func (m *mockFAQService) GenerateFromDocument(_ context.Context, _ string, _ int) ([]domain.FAQPair, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.pairs, nil
}

func TestFAQCmd(t *testing.T) {
	oldFAQ := faqService
	faqService = &mockFAQService{pairs: []domain.FAQPair{
		{Question: "How many days?", Answer: "25 per year."},
	}}
	defer func() { faqService = oldFAQ }()

	out, err := execute(t, "faq", "doc-1")

	assert.NoError(t, err)
	assert.Contains(t, out, "Q1: How many days?")
	assert.Contains(t, out, "A1: 25 per year.")
}

func TestFAQCmd_JSONOutput(t *testing.T) {
	oldFAQ := faqService
	faqService = &mockFAQService{pairs: []domain.FAQPair{
		{Question: "How many days?", Answer: "25 per year."},
	}}
	defer func() {
		faqService = oldFAQ
		faqJSON = false
	}()

	out, err := execute(t, "faq", "--json", "doc-1")

	assert.NoError(t, err)
	assert.Contains(t, out, `"question"`)
	assert.Contains(t, out, `"answer"`)
}

func TestFAQCmd_MalformedOutput(t *testing.T) {
	oldFAQ := faqService
	faqService = &mockFAQService{err: domain.ErrMalformedModelOutput}
	defer func() { faqService = oldFAQ }()

	_, err := execute(t, "faq", "doc-1")

	assert.ErrorIs(t, err, domain.ErrMalformedModelOutput)
}

func TestFAQCmd_ServiceNotConfigured(t *testing.T) {
	oldFAQ := faqService
	faqService = nil
	defer func() { faqService = oldFAQ }()

	_, err := execute(t, "faq", "doc-1")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "faq service not configured")
}
