package service

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitasports/backend/internal/model"
)

func TestTestService_Catalog(t *testing.T) {
	svc, err := NewTestService()
	require.NoError(t, err)

	tests := svc.List()
	require.Len(t, tests, 6)

	ids := make([]string, 0, len(tests))
	for _, tt := range tests {
		ids = append(ids, tt.ID)
		assert.NotEmpty(t, tt.Name)
		assert.NotEmpty(t, tt.Instructions, tt.ID)
	}
	assert.ElementsMatch(t, []string{"sit-ups", "push-ups", "vertical-jump", "shuttle-run", "squats", "plank"}, ids)

	got, err := svc.GetByID(&model.TestIDPayload{TestID: "plank"})
	require.NoError(t, err)
	assert.Equal(t, "plank", got.ID)

	_, err = svc.GetByID(&model.TestIDPayload{TestID: "burpees"})
	httpErr := requireStatus(t, err, http.StatusNotFound)
	assert.Equal(t, "Test not found with ID: burpees", httpErr.Message)
}

func TestNewTestService_RejectsBadCatalog(t *testing.T) {
	_, err := newTestService([]byte("- id: a\n  name: A\n- id: a\n  name: B\n"))
	assert.ErrorContains(t, err, "duplicate test id")

	_, err = newTestService([]byte("- name: Nameless\n"))
	assert.ErrorContains(t, err, "has no id")
}
