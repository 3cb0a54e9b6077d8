package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name: "valid openai config",
			config: Config{
				OpenAI: OpenAIConfig{APIKey: "sk-test"},
			},
		},
		{
			name: "valid gemini and whisper-cli config",
			config: Config{
				Captioning: CaptioningConfig{Provider: ProviderGemini},
				Summary:    SummaryConfig{Provider: ProviderGemini},
				Transcription: TranscriptionConfig{
					Provider:   ProviderWhisperCLI,
					BinaryPath: "./whisper-cli",
					ModelPath:  "models/ggml-base.bin",
				},
				Gemini: GeminiConfig{APIKeys: []string{"k1"}},
			},
		},
		{
			name:    "missing openai key",
			config:  Config{},
			wantErr: "openai.api_key is required",
		},
		{
			name: "missing whisper model path",
			config: Config{
				OpenAI: OpenAIConfig{APIKey: "sk-test"},
				Transcription: TranscriptionConfig{
					Provider:   ProviderWhisperCLI,
					BinaryPath: "./whisper-cli",
				},
			},
			wantErr: "transcription.model_path is required",
		},
		{
			name: "unknown captioning provider",
			config: Config{
				OpenAI:     OpenAIConfig{APIKey: "sk-test"},
				Captioning: CaptioningConfig{Provider: "blip"},
			},
			wantErr: `captioning.provider "blip" is not supported`,
		},
		{
			name: "default count outside bounds",
			config: Config{
				OpenAI: OpenAIConfig{APIKey: "sk-test"},
				Frames: FramesConfig{DefaultCount: 12},
			},
			wantErr: "frames.default_count 12 is outside [3, 10]",
		},
		{
			name: "max below min",
			config: Config{
				OpenAI: OpenAIConfig{APIKey: "sk-test"},
				Frames: FramesConfig{MinCount: 6, MaxCount: 4, DefaultCount: 5},
			},
			wantErr: "frames.max_count (4) is below frames.min_count (6)",
		},
		{
			name: "gemini without keys",
			config: Config{
				OpenAI:  OpenAIConfig{APIKey: "sk-test"},
				Summary: SummaryConfig{Provider: ProviderGemini},
			},
			wantErr: "gemini.api_keys is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{OpenAI: OpenAIConfig{APIKey: "sk-test"}}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 5, cfg.Frames.DefaultCount)
	assert.Equal(t, 3, cfg.Frames.MinCount)
	assert.Equal(t, 10, cfg.Frames.MaxCount)
	assert.False(t, cfg.Frames.StrictCount)
	assert.Equal(t, "ffmpeg", cfg.FFmpeg.BinaryPath)
	assert.Equal(t, "ffprobe", cfg.FFmpeg.ProbePath)
	assert.Equal(t, "whisper-1", cfg.Transcription.Model)
	assert.Equal(t, "gpt-3.5-turbo", cfg.Summary.Model)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, 2, cfg.Performance.MaxConcurrent)
	assert.Equal(t, 10*time.Minute, cfg.Server.RequestTimeout)
}

func TestLoad(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEYS", "")
	t.Setenv("FFMPEG_PATH", "")

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  addr: ":9090"
  request_timeout: 2m

ffmpeg:
  binary_path: "/usr/local/bin/ffmpeg"

frames:
  default_count: 4
  strict_count: true

captioning:
  provider: gemini

transcription:
  provider: whisper-cli
  binary_path: "./whisper-cli"
  model_path: "models/ggml-base.bin"
  language: "en"

summary:
  provider: gemini

gemini:
  api_keys: ["k1", "k2"]

logging:
  level: "debug"
  format: "json"
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 2*time.Minute, cfg.Server.RequestTimeout)
	assert.Equal(t, "/usr/local/bin/ffmpeg", cfg.FFmpeg.BinaryPath)
	assert.Equal(t, 4, cfg.Frames.DefaultCount)
	assert.True(t, cfg.Frames.StrictCount)
	assert.Equal(t, []string{"k1", "k2"}, cfg.Gemini.APIKeys)
	assert.Equal(t, "gemini-2.5-flash", cfg.Captioning.Model)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("GEMINI_API_KEYS", " a , b ,,")
	t.Setenv("FFMPEG_PATH", "/opt/ffmpeg/bin/ffmpeg")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sk-env", cfg.OpenAI.APIKey)
	assert.Equal(t, []string{"a", "b"}, cfg.Gemini.APIKeys)
	assert.Equal(t, "/opt/ffmpeg/bin/ffmpeg", cfg.FFmpeg.BinaryPath)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("server: [unclosed"), 0o600))

	_, err := Load(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
