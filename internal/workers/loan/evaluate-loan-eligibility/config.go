// internal/workers/loan/evaluate-loan-eligibility/config.go
package evaluateloaneligibility

import (
	"time"

	"loan-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration
}

func LoadConfig(appCfg *config.Config) *Config {
	return &Config{
		Timeout: config.GetDuration(config.GetWorkerConfig(appCfg, TaskType).Timeout),
	}
}
