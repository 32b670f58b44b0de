package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/foxest/faqdex/internal/core/ports/driving"
)

// mockStatusService implements driving.StatusService.
type mockStatusService struct {
	status *driving.Status
	err    error
}

func (m *mockStatusService) Status(_ context.Context) (*driving.Status, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.status, nil
}

func TestStatusCmd(t *testing.T) {
	oldStatus := statusService
	statusService = &mockStatusService{status: &driving.Status{
		Documents:      3,
		Vectors:        12,
		Dimensions:     768,
		EmbeddingModel: "nomic-embed-text",
		EmbeddingOK:    true,
		LLMModel:       "llama3.2",
		LLMOK:          false,
	}}
	defer func() { statusService = oldStatus }()

	out, err := execute(t, "status")

	assert.NoError(t, err)
	assert.Contains(t, out, "Documents:  3")
	assert.Contains(t, out, "12 (768 dimensions)")
	assert.Contains(t, out, "nomic-embed-text [ok]")
	assert.Contains(t, out, "llama3.2 [unreachable]")
}

func TestStatusCmd_ServiceNotConfigured(t *testing.T) {
	oldStatus := statusService
	statusService = nil
	defer func() { statusService = oldStatus }()

	_, err := execute(t, "status")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status service not configured")
}
