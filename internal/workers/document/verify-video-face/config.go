// internal/workers/document/verify-video-face/config.go
package verifyvideoface

import (
	"time"

	"loan-workers/internal/common/config"
)

type Config struct {
	Timeout      time.Duration
	VideoTimeout time.Duration
	UploadDir    string
}

func LoadConfig(appCfg *config.Config) *Config {
	wc := config.GetWorkerConfig(appCfg, TaskType)
	return &Config{
		Timeout:      config.GetDuration(wc.Timeout),
		VideoTimeout: config.GetDuration(appCfg.Video.Timeout),
		UploadDir:    appCfg.Storage.UploadDir,
	}
}
