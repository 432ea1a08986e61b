package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Provider      ProviderConfig      `yaml:"provider"`
	Processing    ProcessingConfig    `yaml:"processing"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	Download      DownloadConfig      `yaml:"download"`
	Prompts       PromptsConfig       `yaml:"prompts"`
	Paths         PathsConfig         `yaml:"paths"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ProviderConfig names the completion endpoint. It is resolved once at
// startup and handed to the completion client; nothing looks keys up per call.
type ProviderConfig struct {
	Backend   string   `yaml:"backend"`  // "openai" (any compatible endpoint) or "gemini"
	BaseURL   string   `yaml:"base_url"` // openai backend only
	Model     string   `yaml:"model"`
	APIKeyEnv string   `yaml:"api_key_env"`
	APIKey    string   `yaml:"api_key"`  // plain value, mainly for tests
	APIKeys   []string `yaml:"api_keys"` // gemini backend: rotated on quota errors
}

type ProcessingConfig struct {
	ChunkSizeChars        int `yaml:"chunk_size_chars"`
	MaxParallelCalls      int `yaml:"max_parallel_calls"`
	MaxOutputTokens       int `yaml:"max_output_tokens"`
	MaxAttempts           int `yaml:"max_attempts"`
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`
	RequestsPerMinute     int `yaml:"requests_per_minute"` // 0 disables the rate gate
}

type TranscriptionConfig struct {
	Mode          string `yaml:"mode"` // "cloud" or "local"
	Language      string `yaml:"language"`
	GroqAPIKeyEnv string `yaml:"groq_api_key_env"`
	WhisperBinary string `yaml:"whisper_binary"`
	WhisperModel  string `yaml:"whisper_model"`
}

type DownloadConfig struct {
	CobaltBaseURL string `yaml:"cobalt_base_url"`
	FFmpegBinary  string `yaml:"ffmpeg_binary"`
	TempDir       string `yaml:"temp_dir"`
}

type PromptsConfig struct {
	File         string `yaml:"file"` // optional style overrides
	DefaultStyle string `yaml:"default_style"`
}

type PathsConfig struct {
	Input  string `yaml:"input"` // watch mode only
	Output string `yaml:"output"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads and validates a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Default returns a config with every default applied, for running without
// a config file.
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

func (c *Config) Validate() error {
	if c.Provider.Backend == "" {
		c.Provider.Backend = "openai"
	}
	switch c.Provider.Backend {
	case "openai", "gemini":
	default:
		return fmt.Errorf("provider.backend must be \"openai\" or \"gemini\", got %q", c.Provider.Backend)
	}
	if c.Provider.BaseURL == "" {
		c.Provider.BaseURL = "https://api.openai.com/v1"
	}
	if c.Provider.Model == "" {
		if c.Provider.Backend == "gemini" {
			c.Provider.Model = "gemini-2.5-flash"
		} else {
			c.Provider.Model = "gpt-4.1-mini"
		}
	}
	if c.Provider.APIKeyEnv == "" {
		if c.Provider.Backend == "gemini" {
			c.Provider.APIKeyEnv = "GEMINI_API_KEY"
		} else {
			c.Provider.APIKeyEnv = "OPENAI_API_KEY"
		}
	}

	if c.Processing.ChunkSizeChars == 0 {
		c.Processing.ChunkSizeChars = 10000
	}
	if c.Processing.MaxParallelCalls == 0 {
		c.Processing.MaxParallelCalls = 5
	}
	if c.Processing.MaxOutputTokens == 0 {
		c.Processing.MaxOutputTokens = 4096
	}
	if c.Processing.MaxAttempts == 0 {
		c.Processing.MaxAttempts = 3
	}
	if c.Processing.RequestTimeoutSeconds == 0 {
		c.Processing.RequestTimeoutSeconds = 60
	}
	if c.Processing.ChunkSizeChars < 0 {
		return fmt.Errorf("processing.chunk_size_chars: %w", ErrInvalidChunkSize)
	}
	if c.Processing.MaxParallelCalls < 0 {
		return fmt.Errorf("processing.max_parallel_calls: %w", ErrInvalidParallelism)
	}

	if c.Transcription.Mode == "" {
		c.Transcription.Mode = string(ModeCloudRemote)
	}
	switch TranscriptionMode(c.Transcription.Mode) {
	case ModeCloudRemote, ModeLocalOnDevice:
	default:
		return fmt.Errorf("transcription.mode must be \"cloud\" or \"local\", got %q", c.Transcription.Mode)
	}
	if c.Transcription.Language == "" {
		c.Transcription.Language = "auto"
	}
	if c.Transcription.GroqAPIKeyEnv == "" {
		c.Transcription.GroqAPIKeyEnv = "GROQ_API_KEY"
	}
	if TranscriptionMode(c.Transcription.Mode) == ModeLocalOnDevice {
		if c.Transcription.WhisperBinary == "" {
			return fmt.Errorf("transcription.whisper_binary is required for local mode")
		}
		if c.Transcription.WhisperModel == "" {
			return fmt.Errorf("transcription.whisper_model is required for local mode")
		}
	}

	if c.Download.CobaltBaseURL == "" {
		c.Download.CobaltBaseURL = "http://localhost:9000"
	}
	if c.Download.FFmpegBinary == "" {
		c.Download.FFmpegBinary = "ffmpeg"
	}
	if c.Download.TempDir == "" {
		c.Download.TempDir = os.TempDir()
	}

	if c.Prompts.DefaultStyle == "" {
		c.Prompts.DefaultStyle = "summary"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "output"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}

// ResolveAPIKey returns the completion API key: the literal value if set,
// otherwise the environment variable named by api_key_env.
func (p ProviderConfig) ResolveAPIKey() (string, error) {
	if p.APIKey != "" {
		return p.APIKey, nil
	}
	if key := os.Getenv(p.APIKeyEnv); key != "" {
		return key, nil
	}
	return "", fmt.Errorf("no API key: set provider.api_key or the %s environment variable", p.APIKeyEnv)
}

// ResolveAPIKeys returns the gemini key rotation set. A comma-separated list
// in the environment variable is accepted alongside the config list.
func (p ProviderConfig) ResolveAPIKeys() ([]string, error) {
	keys := append([]string(nil), p.APIKeys...)
	if len(keys) == 0 {
		if v := os.Getenv(p.APIKeyEnv); v != "" {
			for _, k := range strings.Split(v, ",") {
				if k = strings.TrimSpace(k); k != "" {
					keys = append(keys, k)
				}
			}
		}
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("no API keys: set provider.api_keys or the %s environment variable", p.APIKeyEnv)
	}
	return keys, nil
}
