// pkg/registry/registry_test.go
package registry

import (
	"errors"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shippedRegistryPath(t *testing.T) string {
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), "..", "..", "configs", "task-registry.json")
}

func TestLoadRegistry_ShippedFile(t *testing.T) {
	reg, err := LoadRegistry(shippedRegistryPath(t))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"create-loan-application",
		"evaluate-loan-eligibility",
		"extract-document-data",
		"query-loan-data",
		"verify-video-face",
	}, reg.TaskTypes())

	task, ok := reg.Task("evaluate-loan-eligibility")
	require.True(t, ok)
	assert.Contains(t, task.ErrorCodes, "EVALUATION_IN_PROGRESS")
}

func TestValidateInput(t *testing.T) {
	reg, err := LoadRegistry(shippedRegistryPath(t))
	require.NoError(t, err)

	tests := []struct {
		name      string
		taskType  string
		variables string
		wantErr   error
	}{
		{"valid extract", "extract-document-data", `{"userId":1,"documentType":"pan","filePath":"u/pan.png"}`, nil},
		{"null application id", "extract-document-data", `{"userId":1,"loanApplicationId":null,"documentType":"pan","filePath":"a"}`, nil},
		{"unknown document type", "extract-document-data", `{"userId":1,"documentType":"passport","filePath":"a"}`, ErrInvalidPayload},
		{"missing application id", "evaluate-loan-eligibility", `{}`, ErrInvalidPayload},
		{"string application id", "evaluate-loan-eligibility", `{"loanApplicationId":"7"}`, ErrInvalidPayload},
		{"not json", "evaluate-loan-eligibility", `{`, ErrInvalidPayload},
		{"unknown task", "send-email", `{}`, ErrUnknownTask},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := reg.ValidateInput(tt.taskType, tt.variables)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	_, err := Parse([]byte(`{"tasks":[{"taskType":"a"},{"taskType":"a"}]}`))
	assert.ErrorContains(t, err, "registered twice")

	_, err = Parse([]byte(`{"tasks":[{"displayName":"nameless"}]}`))
	assert.ErrorContains(t, err, "no taskType")

	_, err = Parse([]byte(`{"tasks":[{"taskType":"a","inputSchema":{"type":"nonsense"}}]}`))
	assert.ErrorContains(t, err, "compile input schema")
}

func TestParse_TaskWithoutSchemaAcceptsAnything(t *testing.T) {
	reg, err := Parse([]byte(`{"version":"2","tasks":[{"taskType":"free"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "2", reg.Version())
	assert.NoError(t, reg.ValidateInput("free", `{"anything":true}`))
}
