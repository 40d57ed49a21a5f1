// internal/common/config/config.go
package config

import "fmt"

type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Database      DatabaseConfig          `mapstructure:"database"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	Logging       LoggingConfig           `mapstructure:"logging"`
	Eligibility   EligibilityConfig       `mapstructure:"eligibility"`
	OCR           OCRConfig               `mapstructure:"ocr"`
	Video         VideoConfig             `mapstructure:"video"`
	Storage       StorageConfig           `mapstructure:"storage"`
	Registry      RegistryConfig          `mapstructure:"registry"`
	Observability ObservabilityConfig     `mapstructure:"observability"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// EligibilityConfig feeds eligibility.NewRules and the per-application lock.
type EligibilityConfig struct {
	MinMonthlyIncome  float64  `mapstructure:"min_monthly_income"`
	MaxLoanMultiplier float64  `mapstructure:"max_loan_multiplier"`
	RequiredDocuments []string `mapstructure:"required_documents"`
	LockTTL           int      `mapstructure:"lock_ttl"` // milliseconds
	LockPrefix        string   `mapstructure:"lock_prefix"`
}

type OCRConfig struct {
	Binary     string `mapstructure:"binary"`
	Language   string `mapstructure:"language"`
	PSM        int    `mapstructure:"psm"`
	Preprocess bool   `mapstructure:"preprocess"`
	TempDir    string `mapstructure:"temp_dir"`
	Timeout    int    `mapstructure:"timeout"` // milliseconds
}

type VideoConfig struct {
	FFmpegBinary   string   `mapstructure:"ffmpeg_binary"`
	DetectorBinary string   `mapstructure:"detector_binary"`
	DetectorArgs   []string `mapstructure:"detector_args"`
	AllowedFormats []string `mapstructure:"allowed_formats"`
	TempDir        string   `mapstructure:"temp_dir"`
	Timeout        int      `mapstructure:"timeout"` // milliseconds
}

// StorageConfig locates uploaded files. Relative paths in job variables are
// resolved against UploadDir.
type StorageConfig struct {
	UploadDir string `mapstructure:"upload_dir"`
}

type RegistryConfig struct {
	Path string `mapstructure:"path"`
}

type ObservabilityConfig struct {
	HTTPAddress string        `mapstructure:"http_address"`
	Tracing     TracingConfig `mapstructure:"tracing"`
}

type TracingConfig struct {
	Enabled        bool    `mapstructure:"enabled"`
	JaegerEndpoint string  `mapstructure:"jaeger_endpoint"`
	SampleRatio    float64 `mapstructure:"sample_ratio"`
}
