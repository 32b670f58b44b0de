package services

import (
	"context"
	"sync"

	"github.com/foxest/faqdex/internal/core/domain"
	"github.com/foxest/faqdex/internal/core/ports/driven"
)

// --- Mock implementations shared by the service tests ---

// mockDocStore implements driven.DocumentStore for testing.
type mockDocStore struct {
	mu sync.Mutex

	docs        map[string]*domain.Document
	byHash      map[string]*domain.Document
	saveHook    func(doc *domain.Document) error
	saveErr     error
	getErr      error
	deleteErr   error
	findErr     error
	incErr      error
	countErr    error
	deleted     []string
	incremented []string
}

func newMockDocStore() *mockDocStore {
	return &mockDocStore{
		docs:   make(map[string]*domain.Document),
		byHash: make(map[string]*domain.Document),
	}
}

func (m *mockDocStore) Save(_ context.Context, doc *domain.Document) error {
	if m.saveHook != nil {
		if err := m.saveHook(doc); err != nil {
			return err
		}
	}
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[doc.ID] = doc
	m.byHash[doc.ContentHash] = doc
	return nil
}

func (m *mockDocStore) FindByHash(_ context.Context, hash string) (*domain.Document, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if doc, ok := m.byHash[hash]; ok {
		return doc, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockDocStore) Get(_ context.Context, id string) (*domain.Document, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if doc, ok := m.docs[id]; ok {
		return doc, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockDocStore) Delete(_ context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, id)
	delete(m.docs, id)
	return nil
}

func (m *mockDocStore) List(_ context.Context) ([]domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	docs := make([]domain.Document, 0, len(m.docs))
	for _, doc := range m.docs {
		docs = append(docs, *doc)
	}
	return docs, nil
}

func (m *mockDocStore) DistinctModels(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := make(map[string]struct{})
	var models []string
	for _, doc := range m.docs {
		if _, ok := seen[doc.EmbeddingModel]; ok {
			continue
		}
		seen[doc.EmbeddingModel] = struct{}{}
		models = append(models, doc.EmbeddingModel)
	}
	return models, nil
}

func (m *mockDocStore) IncrementUsage(_ context.Context, id string) error {
	if m.incErr != nil {
		return m.incErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.incremented = append(m.incremented, id)
	return nil
}

func (m *mockDocStore) Count(_ context.Context) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs), nil
}

func (m *mockDocStore) Close() error { return nil }

func (m *mockDocStore) usageCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.incremented...)
}

// mockExtractor implements driven.Extractor for testing.
type mockExtractor struct {
	pages []string
	err   error
}

func (m *mockExtractor) Extract(_ context.Context, _ string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.pages, nil
}

// mockEmbedding implements driven.EmbeddingService for testing. Each text
// embeds to a fixed-dimension vector whose first component is the text length
// so tests can tell vectors apart.
type mockEmbedding struct {
	dims     int
	model    string
	embedErr error
	batchErr error
	pingErr  error
}

func (m *mockEmbedding) vector(text string) []float32 {
	v := make([]float32, m.dims)
	v[0] = float32(len(text))
	return v
}

func (m *mockEmbedding) Embed(_ context.Context, text string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.vector(text), nil
}

func (m *mockEmbedding) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	vectors := make([][]float32, len(texts))
	for i, t := range texts {
		vectors[i] = m.vector(t)
	}
	return vectors, nil
}

func (m *mockEmbedding) Dimensions() int            { return m.dims }
func (m *mockEmbedding) ModelName() string          { return m.model }
func (m *mockEmbedding) Ping(_ context.Context) error { return m.pingErr }
func (m *mockEmbedding) Close() error               { return nil }

// mockIndex implements driven.VectorIndex for testing.
type mockIndex struct {
	hits      []domain.SearchHit
	searchErr error
	addErr    error
	length    int
	dims      int

	addedVectors [][]float32
	addedIDs     []string
}

func (m *mockIndex) Add(_ context.Context, vectors [][]float32, docIDs []string) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.addedVectors = append(m.addedVectors, vectors...)
	m.addedIDs = append(m.addedIDs, docIDs...)
	return nil
}

func (m *mockIndex) Search(_ context.Context, _ []float32, k int) ([]domain.SearchHit, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if k > len(m.hits) {
		return m.hits, nil
	}
	return m.hits[:k], nil
}

func (m *mockIndex) Len() int        { return m.length }
func (m *mockIndex) Dimensions() int { return m.dims }
func (m *mockIndex) Close() error    { return nil }

// mockModel implements driven.AnswerModel for testing.
type mockModel struct {
	response string
	genErr   error
	pingErr  error
	model    string

	prompts []string
}

func (m *mockModel) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.genErr != nil {
		return "", m.genErr
	}
	return m.response, nil
}

func (m *mockModel) ModelName() string            { return m.model }
func (m *mockModel) Ping(_ context.Context) error { return m.pingErr }
func (m *mockModel) Close() error                 { return nil }
