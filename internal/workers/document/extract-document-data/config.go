// internal/workers/document/extract-document-data/config.go
package extractdocumentdata

import (
	"time"

	"loan-workers/internal/common/config"
)

type Config struct {
	Timeout    time.Duration
	OCRTimeout time.Duration
	UploadDir  string
}

func LoadConfig(appCfg *config.Config) *Config {
	wc := config.GetWorkerConfig(appCfg, TaskType)
	return &Config{
		Timeout:    config.GetDuration(wc.Timeout),
		OCRTimeout: config.GetDuration(appCfg.OCR.Timeout),
		UploadDir:  appCfg.Storage.UploadDir,
	}
}
