package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML file at path, applies environment overrides and
// validates the result. An empty path skips the file and uses defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// applyEnv overrides secrets and deployment-specific tool paths. Environment
// wins over the file so that the same config.yaml works locally and in a
// container.
func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("OPENAI_API_KEY"); v != "" {
		c.OpenAI.APIKey = v
	}
	if v := getenv("OPENAI_BASE_URL"); v != "" {
		c.OpenAI.BaseURL = v
	}
	if v := getenv("GEMINI_API_KEYS"); v != "" {
		c.Gemini.APIKeys = splitList(v)
	}
	if v := getenv("FFMPEG_PATH"); v != "" {
		c.FFmpeg.BinaryPath = v
	}
	if v := getenv("FFPROBE_PATH"); v != "" {
		c.FFmpeg.ProbePath = v
	}
	if v := getenv("WHISPER_BINARY_PATH"); v != "" {
		c.Transcription.BinaryPath = v
	}
	if v := getenv("WHISPER_MODEL_PATH"); v != "" {
		c.Transcription.ModelPath = v
	}
	if v := getenv("CLIPDIGEST_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := getenv("CLIPDIGEST_TEMP_DIR"); v != "" {
		c.Paths.Temp = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
