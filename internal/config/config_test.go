package config

import (
	"errors"
	"os"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "empty config gets defaults",
			config:  Config{},
			wantErr: false,
		},
		{
			name: "unknown backend",
			config: Config{
				Provider: ProviderConfig{Backend: "cohere"},
			},
			wantErr: true,
		},
		{
			name: "unknown transcription mode",
			config: Config{
				Transcription: TranscriptionConfig{Mode: "telepathy"},
			},
			wantErr: true,
		},
		{
			name: "local mode requires whisper binary",
			config: Config{
				Transcription: TranscriptionConfig{Mode: "local", WhisperModel: "models/ggml-base.bin"},
			},
			wantErr: true,
		},
		{
			name: "local mode fully specified",
			config: Config{
				Transcription: TranscriptionConfig{
					Mode:          "local",
					WhisperBinary: "./whisper-cli",
					WhisperModel:  "models/ggml-base.bin",
				},
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.Processing.ChunkSizeChars != 10000 {
		t.Errorf("ChunkSizeChars = %d, want 10000", cfg.Processing.ChunkSizeChars)
	}
	if cfg.Processing.MaxParallelCalls != 5 {
		t.Errorf("MaxParallelCalls = %d, want 5", cfg.Processing.MaxParallelCalls)
	}
	if cfg.Processing.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", cfg.Processing.MaxAttempts)
	}
	if cfg.Provider.Backend != "openai" {
		t.Errorf("Backend = %q, want openai", cfg.Provider.Backend)
	}
	if cfg.Transcription.Mode != string(ModeCloudRemote) {
		t.Errorf("Mode = %q, want cloud", cfg.Transcription.Mode)
	}
}

func TestLoad(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
provider:
  backend: "gemini"
  model: "gemini-2.5-flash"
  api_keys: ["k1", "k2"]

processing:
  chunk_size_chars: 8000
  max_parallel_calls: 3
  requests_per_minute: 20

transcription:
  mode: "cloud"
  language: "en"

paths:
  output: "digests"

logging:
  level: "debug"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Provider.Backend != "gemini" {
		t.Errorf("Backend = %q, want gemini", cfg.Provider.Backend)
	}
	if cfg.Processing.ChunkSizeChars != 8000 {
		t.Errorf("ChunkSizeChars = %d, want 8000", cfg.Processing.ChunkSizeChars)
	}
	if cfg.Paths.Output != "digests" {
		t.Errorf("Output = %q, want digests", cfg.Paths.Output)
	}
	// Untouched fields still get defaults.
	if cfg.Processing.MaxOutputTokens != 4096 {
		t.Errorf("MaxOutputTokens = %d, want 4096", cfg.Processing.MaxOutputTokens)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	if _, err := Load("nonexistent.yaml"); err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestJobValidate(t *testing.T) {
	base := Default().Job("summary", false)
	if base.RequestTimeout != 60*time.Second {
		t.Errorf("RequestTimeout = %v, want 60s", base.RequestTimeout)
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid job rejected: %v", err)
	}

	bad := base
	bad.ChunkSizeChars = 0
	if err := bad.Validate(); !errors.Is(err, ErrInvalidChunkSize) {
		t.Errorf("Validate() = %v, want ErrInvalidChunkSize", err)
	}

	bad = base
	bad.MaxParallelCalls = -1
	if err := bad.Validate(); !errors.Is(err, ErrInvalidParallelism) {
		t.Errorf("Validate() = %v, want ErrInvalidParallelism", err)
	}

	bad = base
	bad.TranscriptionMode = "telepathy"
	if err := bad.Validate(); err == nil {
		t.Error("Validate() accepted unknown transcription mode")
	}
}
