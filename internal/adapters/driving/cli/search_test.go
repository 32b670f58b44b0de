package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/foxest/faqdex/internal/core/domain"
)

// mockSearchService implements driving.SearchService.
type mockSearchService struct {
	hits []domain.SearchHit
	err  error
}

func (m *mockSearchService) Search(_ context.Context, _ string, _ int) ([]domain.SearchHit, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hits, nil
}

// mockDocumentService implements driving.DocumentService.
type mockDocumentService struct {
	docs map[string]*domain.Document
	err  error
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	docs := make([]domain.Document, 0, len(m.docs))
	for _, doc := range m.docs {
		docs = append(docs, *doc)
	}
	return docs, nil
}

func (m *mockDocumentService) Get(_ context.Context, id string) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	if doc, ok := m.docs[id]; ok {
		return doc, nil
	}
	return nil, domain.ErrNotFound
}

func setupSearchServices() func() {
	oldSearch := searchService
	oldDocs := documentService
	searchService = &mockSearchService{hits: []domain.SearchHit{
		{DocumentID: "doc-1", Score: 0.93},
	}}
	documentService = &mockDocumentService{docs: map[string]*domain.Document{
		"doc-1": {ID: "doc-1", FileName: "handbook.pdf"},
	}}
	return func() {
		searchService = oldSearch
		documentService = oldDocs
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestSearchCmd_TableOutput(t *testing.T) {
	cleanup := setupSearchServices()
	defer cleanup()

	out, err := execute(t, "search", "vacation policy")

	assert.NoError(t, err)
	assert.Contains(t, out, "handbook.pdf")
	assert.Contains(t, out, "0.93")
	assert.Contains(t, out, "doc-1")
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	cleanup := setupSearchServices()
	defer cleanup()
	defer func() { searchJSON = false }()

	out, err := execute(t, "search", "--json", "vacation policy")

	assert.NoError(t, err)
	assert.Contains(t, out, `"document_id"`)
	assert.Contains(t, out, `"score"`)
}

func TestSearchCmd_NoResults(t *testing.T) {
	oldSearch := searchService
	searchService = &mockSearchService{}
	defer func() { searchService = oldSearch }()

	out, err := execute(t, "search", "nothing like this")

	assert.NoError(t, err)
	assert.Contains(t, out, "No results found")
}

func TestSearchCmd_ServiceNotConfigured(t *testing.T) {
	oldSearch := searchService
	searchService = nil
	defer func() { searchService = oldSearch }()

	_, err := execute(t, "search", "query")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "search service not configured")
}

func TestSearchCmd_ServiceError(t *testing.T) {
	oldSearch := searchService
	searchService = &mockSearchService{err: errors.New("index unreadable")}
	defer func() { searchService = oldSearch }()

	_, err := execute(t, "search", "query")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "search failed")
}
