// Package mlserver is a stand-in for the video inference service. It accepts
// uploads and answers with simulated exercise metrics.
package mlserver

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port           string        `env:"PORT" envDefault:"5001"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	Production     bool          `env:"PRODUCTION" envDefault:"false"`
	AnalysisDelay  time.Duration `env:"ANALYSIS_DELAY" envDefault:"1s"`
	MaxUploadBytes int64         `env:"MAX_UPLOAD_BYTES" envDefault:"104857600"`
	Storage        StorageConfig `envPrefix:"MINIO_"`
}

// StorageConfig is optional. Uploads are kept only when Endpoint and Bucket
// are set.
type StorageConfig struct {
	Endpoint  string `env:"ENDPOINT"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET_NAME"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
}

func (c StorageConfig) Enabled() bool {
	return c.Endpoint != "" && c.Bucket != ""
}

// LoadConfig reads ML_* environment variables.
func LoadConfig() (*Config, error) {
	cfg := Config{}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "ML_"}); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
