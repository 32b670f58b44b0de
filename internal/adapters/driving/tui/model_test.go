package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxest/faqdex/internal/core/domain"
)

type fakeAnswers struct {
	answer *domain.Answer
	err    error
	asked  []string
}

func (f *fakeAnswers) Ask(_ context.Context, question string, _ int) (*domain.Answer, error) {
	f.asked = append(f.asked, question)
	if f.err != nil {
		return nil, f.err
	}
	return f.answer, nil
}

type fakeDocuments struct {
	docs map[string]*domain.Document
}

func (f *fakeDocuments) List(_ context.Context) ([]domain.Document, error) { return nil, nil }

func (f *fakeDocuments) Get(_ context.Context, id string) (*domain.Document, error) {
	if doc, ok := f.docs[id]; ok {
		return doc, nil
	}
	return nil, domain.ErrNotFound
}

func sized(m Model) Model {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

func typed(m Model, text string) Model {
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return updated.(Model)
}

func TestModel_AskFlow(t *testing.T) {
	answer := &domain.Answer{
		Question: "how many days?",
		Text:     "25 days per year.",
		Sources: []domain.SearchHit{
			{DocumentID: "doc-1", Score: 0.91},
			{DocumentID: "doc-2", Score: 0.72},
		},
	}
	svc := &fakeAnswers{answer: answer}
	docs := &fakeDocuments{docs: map[string]*domain.Document{
		"doc-1": {ID: "doc-1", FileName: "vacation.pdf"},
	}}

	m := sized(New(svc, docs, 5))
	m = typed(m, "how many days?")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Thinking")

	msg := cmd()
	updated, _ = m.Update(msg)
	m = updated.(Model)

	assert.Equal(t, []string{"how many days?"}, svc.asked)
	view := m.View()
	assert.Contains(t, view, "25 days per year.")
	assert.Contains(t, view, "vacation.pdf")
	assert.Contains(t, view, "doc-2")
}

func TestModel_SourceCycling(t *testing.T) {
	answer := &domain.Answer{
		Text: "answer",
		Sources: []domain.SearchHit{
			{DocumentID: "doc-1", Score: 0.9},
			{DocumentID: "doc-2", Score: 0.8},
		},
	}
	m := sized(New(&fakeAnswers{answer: answer}, &fakeDocuments{}, 5))
	updated, _ := m.Update(answerMsg{answer: answer})
	m = updated.(Model)
	require.Equal(t, 0, m.cursor)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	assert.Equal(t, 1, m.cursor)

	// Wraps around.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	assert.Equal(t, 0, m.cursor)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = updated.(Model)
	assert.Equal(t, 1, m.cursor)
}

func TestModel_AskError(t *testing.T) {
	svc := &fakeAnswers{err: errors.New("backend down")}
	m := sized(New(svc, &fakeDocuments{}, 5))
	m = typed(m, "question")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	require.NotNil(t, cmd)

	updated, _ = m.Update(cmd())
	m = updated.(Model)

	assert.Contains(t, m.View(), "backend down")
	assert.Contains(t, m.View(), "No answer yet.")
}

func TestModel_EmptyQuestionDoesNotAsk(t *testing.T) {
	svc := &fakeAnswers{}
	m := sized(New(svc, &fakeDocuments{}, 5))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	// Only the input's own command may come back, never an ask.
	if cmd != nil {
		msg := cmd()
		_, isAnswer := msg.(answerMsg)
		assert.False(t, isAnswer)
	}
	assert.Empty(t, svc.asked)
}

func TestModel_QuitKeys(t *testing.T) {
	m := sized(New(&fakeAnswers{}, &fakeDocuments{}, 5))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_ViewBeforeSize(t *testing.T) {
	m := New(&fakeAnswers{}, &fakeDocuments{}, 5)
	assert.True(t, strings.Contains(m.View(), "Loading"))
}
