// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
camunda:
  broker_address: ${TEST_ZEEBE_ADDRESS}
database:
  postgres:
    host: localhost
    database: loan_app
    user: loan
  redis:
    address: localhost:6379
workers:
  evaluate-loan-eligibility:
    enabled: false
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_DefaultsAndExpansion(t *testing.T) {
	t.Setenv("TEST_ZEEBE_ADDRESS", "zeebe:26500")

	cfg, err := LoadFromFile(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "zeebe:26500", cfg.Camunda.BrokerAddress)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
	assert.Equal(t, 25000.0, cfg.Eligibility.MinMonthlyIncome)
	assert.Equal(t, 24.0, cfg.Eligibility.MaxLoanMultiplier)
	assert.Equal(t, []string{"aadhaar", "pan", "income_proof"}, cfg.Eligibility.RequiredDocuments)
	assert.Equal(t, []string{"mp4", "webm", "mov"}, cfg.Video.AllowedFormats)
	assert.Equal(t, "tesseract", cfg.OCR.Binary)
	assert.Equal(t, ":8080", cfg.Observability.HTTPAddress)
	assert.Equal(t, 1.0, cfg.Observability.Tracing.SampleRatio)

	w := cfg.Workers["evaluate-loan-eligibility"]
	assert.False(t, w.Enabled)
	assert.Equal(t, 5, w.MaxJobsActive)
	assert.Equal(t, 3, w.MaxRetries)
}

func TestLoadFromFile_ExplicitZeroKept(t *testing.T) {
	t.Setenv("TEST_ZEEBE_ADDRESS", "zeebe:26500")

	body := minimalYAML + `eligibility:
  min_monthly_income: 0
  required_documents: []
observability:
  tracing:
    sample_ratio: 0
`
	cfg, err := LoadFromFile(writeConfig(t, body))
	require.NoError(t, err)

	assert.Equal(t, 0.0, cfg.Eligibility.MinMonthlyIncome)
	assert.Equal(t, 24.0, cfg.Eligibility.MaxLoanMultiplier)
	assert.Empty(t, cfg.Eligibility.RequiredDocuments)
	assert.Equal(t, 0.0, cfg.Observability.Tracing.SampleRatio)
}

func TestLoadFromFile_EnvOverride(t *testing.T) {
	t.Setenv("TEST_ZEEBE_ADDRESS", "zeebe:26500")
	t.Setenv("DATABASE_POSTGRES_HOST", "db.internal")

	cfg, err := LoadFromFile(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Postgres.Host)
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "missing broker",
			body:    "database:\n  postgres:\n    host: h\n    database: d\n    user: u\n  redis:\n    address: r\n",
			wantErr: "camunda.broker_address",
		},
		{
			name:    "missing redis",
			body:    "camunda:\n  broker_address: z\ndatabase:\n  postgres:\n    host: h\n    database: d\n    user: u\n",
			wantErr: "database.redis.address",
		},
		{
			name:    "negative multiplier",
			body:    minimalYAML + "eligibility:\n  max_loan_multiplier: -2\n",
			wantErr: "max_loan_multiplier",
		},
		{
			name:    "zero multiplier",
			body:    minimalYAML + "eligibility:\n  max_loan_multiplier: 0\n",
			wantErr: "max_loan_multiplier",
		},
		{
			name:    "tracing without endpoint",
			body:    minimalYAML + "observability:\n  tracing:\n    enabled: true\n",
			wantErr: "jaeger_endpoint",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_ZEEBE_ADDRESS", "zeebe:26500")
			t.Setenv("ZEEBE_ADDRESS", "")

			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetWorkerConfig(t *testing.T) {
	cfg := &Config{Workers: map[string]WorkerConfig{
		"query-loan-data": {Enabled: false, MaxJobsActive: 2},
	}}

	assert.Equal(t, 2, GetWorkerConfig(cfg, "query-loan-data").MaxJobsActive)
	assert.False(t, IsWorkerEnabled(cfg, "query-loan-data"))

	def := GetWorkerConfig(cfg, "unknown")
	assert.True(t, def.Enabled)
	assert.Equal(t, 30000, def.Timeout)
	assert.True(t, IsWorkerEnabled(cfg, "unknown"))
}
