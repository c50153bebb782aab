package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	HTTPClient HTTPClientConfig `yaml:"http_client"`
	Limiter    LimiterConfig    `yaml:"limiter"`
	AI         AIConfig         `yaml:"ai"`
	Storage    StorageConfig    `yaml:"storage"`
	Pipeline   PipelineConfig   `yaml:"pipeline"`
	Stream     StreamConfig     `yaml:"stream"`
	Upload     UploadConfig     `yaml:"upload"`
}

type ServerConfig struct {
	Addr                string `yaml:"addr"`
	ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type HTTPClientConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
	MaxRetries     int `yaml:"max_retries"`
}

// LimiterConfig bounds how many pipeline jobs run at once.
type LimiterConfig struct {
	MaxConcurrent int     `yaml:"max_concurrent"`
	RatePerSecond float64 `yaml:"rate_per_second"`
}

// AIConfig selects the generative text provider. An empty APIKey (for the
// hosted providers) disables AI and every stage runs its fallback path.
type AIConfig struct {
	Provider           string  `yaml:"provider"`
	APIKey             string  `yaml:"api_key"`
	Model              string  `yaml:"model"`
	BaseURL            string  `yaml:"base_url"`
	Temperature        float64 `yaml:"temperature"`
	AnalysisMaxTokens  int     `yaml:"analysis_max_tokens"`
	StructureMaxTokens int     `yaml:"structure_max_tokens"`
	MaxConcurrent      int     `yaml:"max_concurrent"`
	RatePerSecond      float64 `yaml:"rate_per_second"`
}

type StorageConfig struct {
	Type             string `yaml:"type"`
	BasePath         string `yaml:"base_path"`
	RetentionMinutes int    `yaml:"retention_minutes"`
	SweepSeconds     int    `yaml:"sweep_seconds"`
	RedisAddr        string `yaml:"redis_addr"`
	RedisPassword    string `yaml:"redis_password"`
	RedisDB          int    `yaml:"redis_db"`
	S3Bucket         string `yaml:"s3_bucket"`
	S3Prefix         string `yaml:"s3_prefix"`
	S3Region         string `yaml:"s3_region"`
	S3PathStyle      bool   `yaml:"s3_path_style"`
}

type PipelineConfig struct {
	JobRetentionMinutes int `yaml:"job_retention_minutes"`
}

type StreamConfig struct {
	PollIntervalMillis int `yaml:"poll_interval_millis"`
	MaxPolls           int `yaml:"max_polls"`
}

type UploadConfig struct {
	MaxBytes int64 `yaml:"max_bytes"`
}

func (s StorageConfig) Retention() time.Duration {
	return time.Duration(s.RetentionMinutes) * time.Minute
}

func (s StorageConfig) SweepInterval() time.Duration {
	return time.Duration(s.SweepSeconds) * time.Second
}

func (p PipelineConfig) JobRetention() time.Duration {
	return time.Duration(p.JobRetentionMinutes) * time.Minute
}

func (s StreamConfig) PollInterval() time.Duration {
	return time.Duration(s.PollIntervalMillis) * time.Millisecond
}

func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := defaultConfig()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return applyEnvOverrides(cfg), nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return applyEnvOverrides(cfg), nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:                ":8080",
			ReadTimeoutSeconds:  30,
			WriteTimeoutSeconds: 0,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		HTTPClient: HTTPClientConfig{
			TimeoutSeconds: 120,
			MaxRetries:     2,
		},
		Limiter: LimiterConfig{
			MaxConcurrent: 10,
			RatePerSecond: 5,
		},
		AI: AIConfig{
			Provider:           "gemini",
			Model:              "gemini-2.5-flash",
			Temperature:        0.7,
			AnalysisMaxTokens:  4096,
			StructureMaxTokens: 8192,
			MaxConcurrent:      4,
			RatePerSecond:      2,
		},
		Storage: StorageConfig{
			Type:             "local",
			BasePath:         os.TempDir() + "/ppt-creator",
			RetentionMinutes: 30,
			SweepSeconds:     60,
			RedisAddr:        "localhost:6379",
			S3Prefix:         "ppt-creator/",
		},
		Pipeline: PipelineConfig{
			JobRetentionMinutes: 30,
		},
		Stream: StreamConfig{
			PollIntervalMillis: 1000,
			MaxPolls:           120,
		},
		Upload: UploadConfig{
			MaxBytes: 5 * 1024 * 1024,
		},
	}
}

func applyEnvOverrides(cfg *Config) *Config {
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("AI_PROVIDER"); v != "" {
		cfg.AI.Provider = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" && cfg.AI.Provider == "gemini" {
		cfg.AI.APIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" && cfg.AI.Provider == "openai" {
		cfg.AI.APIKey = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" && cfg.AI.Provider == "anthropic" {
		cfg.AI.APIKey = v
	}
	if v := os.Getenv("AI_API_KEY"); v != "" {
		cfg.AI.APIKey = v
	}
	if v := os.Getenv("AI_MODEL"); v != "" {
		cfg.AI.Model = v
	}
	if v := os.Getenv("AI_BASE_URL"); v != "" {
		cfg.AI.BaseURL = v
	}
	if v := os.Getenv("STORAGE_TYPE"); v != "" {
		cfg.Storage.Type = v
	}
	if v := os.Getenv("STORAGE_BASE_PATH"); v != "" {
		cfg.Storage.BasePath = v
	}
	if v := os.Getenv("STORAGE_RETENTION_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Storage.RetentionMinutes = n
		}
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Storage.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Storage.RedisPassword = v
	}
	if v := os.Getenv("S3_BUCKET"); v != "" {
		cfg.Storage.S3Bucket = v
	}
	if v := os.Getenv("S3_PREFIX"); v != "" {
		cfg.Storage.S3Prefix = v
	}
	if v := os.Getenv("S3_REGION"); v != "" {
		cfg.Storage.S3Region = v
	}
	return cfg
}
