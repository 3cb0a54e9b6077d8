package config

import (
	"fmt"
	"time"
)

// Provider names accepted by the model sections.
const (
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderWhisperCLI = "whisper-cli"
)

type Config struct {
	Server        ServerConfig        `yaml:"server"`
	FFmpeg        FFmpegConfig        `yaml:"ffmpeg"`
	Frames        FramesConfig        `yaml:"frames"`
	Captioning    CaptioningConfig    `yaml:"captioning"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	Summary       SummaryConfig       `yaml:"summary"`
	OpenAI        OpenAIConfig        `yaml:"openai"`
	Gemini        GeminiConfig        `yaml:"gemini"`
	Paths         PathsConfig         `yaml:"paths"`
	Logging       LoggingConfig       `yaml:"logging"`
	Performance   PerformanceConfig   `yaml:"performance"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ProbePath  string `yaml:"probe_path"`
}

type FramesConfig struct {
	DefaultCount int `yaml:"default_count"`
	MinCount     int `yaml:"min_count"`
	MaxCount     int `yaml:"max_count"`
	// StrictCount turns a sample shorter than requested into a hard error.
	StrictCount bool `yaml:"strict_count"`
	// MaxWidth downsizes decoded frames before captioning; 0 keeps full size.
	MaxWidth int `yaml:"max_width"`
}

type CaptioningConfig struct {
	Provider         string `yaml:"provider"`
	Model            string `yaml:"model"`
	Prompt           string `yaml:"prompt"`
	MaxParallel      int    `yaml:"max_parallel"`
	ModelConcurrency int    `yaml:"model_concurrency"`
}

type TranscriptionConfig struct {
	Provider         string `yaml:"provider"`
	Model            string `yaml:"model"`
	BinaryPath       string `yaml:"binary_path"`
	ModelPath        string `yaml:"model_path"`
	Language         string `yaml:"language"`
	Prompt           string `yaml:"prompt"`
	Threads          int    `yaml:"threads"`
	ModelConcurrency int    `yaml:"model_concurrency"`
}

type SummaryConfig struct {
	Provider    string        `yaml:"provider"`
	Model       string        `yaml:"model"`
	MaxTokens   int           `yaml:"max_tokens"`
	Temperature float32       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

type GeminiConfig struct {
	APIKeys []string `yaml:"api_keys"`
	Model   string   `yaml:"model"`
}

type PathsConfig struct {
	Input      string `yaml:"input"`
	Processing string `yaml:"processing"`
	Output     string `yaml:"output"`
	Archived   string `yaml:"archived"`
	Temp       string `yaml:"temp"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// Validate fills defaults and rejects inconsistent settings.
func (c *Config) Validate() error {
	c.applyDefaults()

	if c.Frames.MinCount < 1 {
		return fmt.Errorf("frames.min_count must be at least 1")
	}
	if c.Frames.MaxCount < c.Frames.MinCount {
		return fmt.Errorf("frames.max_count (%d) is below frames.min_count (%d)", c.Frames.MaxCount, c.Frames.MinCount)
	}
	if c.Frames.DefaultCount < c.Frames.MinCount || c.Frames.DefaultCount > c.Frames.MaxCount {
		return fmt.Errorf("frames.default_count %d is outside [%d, %d]", c.Frames.DefaultCount, c.Frames.MinCount, c.Frames.MaxCount)
	}
	if c.Frames.MaxWidth < 0 {
		return fmt.Errorf("frames.max_width must not be negative")
	}
	if c.Server.MaxUploadBytes < 0 {
		return fmt.Errorf("server.max_upload_bytes must not be negative")
	}

	switch c.Captioning.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("captioning.provider %q is not supported", c.Captioning.Provider)
	}

	switch c.Transcription.Provider {
	case ProviderOpenAI:
	case ProviderWhisperCLI:
		if c.Transcription.BinaryPath == "" {
			return fmt.Errorf("transcription.binary_path is required for %s", ProviderWhisperCLI)
		}
		if c.Transcription.ModelPath == "" {
			return fmt.Errorf("transcription.model_path is required for %s", ProviderWhisperCLI)
		}
	default:
		return fmt.Errorf("transcription.provider %q is not supported", c.Transcription.Provider)
	}

	switch c.Summary.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("summary.provider %q is not supported", c.Summary.Provider)
	}

	if c.uses(ProviderOpenAI) && c.OpenAI.APIKey == "" {
		return fmt.Errorf("openai.api_key is required (set OPENAI_API_KEY)")
	}
	if c.uses(ProviderGemini) && len(c.Gemini.APIKeys) == 0 {
		return fmt.Errorf("gemini.api_keys is required (set GEMINI_API_KEYS)")
	}

	return nil
}

func (c *Config) uses(provider string) bool {
	return c.Captioning.Provider == provider ||
		c.Transcription.Provider == provider ||
		c.Summary.Provider == provider
}

func (c *Config) applyDefaults() {
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.MaxUploadBytes == 0 {
		c.Server.MaxUploadBytes = 512 << 20
	}
	if c.Server.RequestTimeout == 0 {
		c.Server.RequestTimeout = 10 * time.Minute
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 30 * time.Second
	}

	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.ProbePath == "" {
		c.FFmpeg.ProbePath = "ffprobe"
	}

	if c.Frames.MinCount == 0 {
		c.Frames.MinCount = 3
	}
	if c.Frames.MaxCount == 0 {
		c.Frames.MaxCount = 10
	}
	if c.Frames.DefaultCount == 0 {
		c.Frames.DefaultCount = 5
	}
	if c.Frames.MaxWidth == 0 {
		c.Frames.MaxWidth = 768
	}

	if c.Captioning.Provider == "" {
		c.Captioning.Provider = ProviderOpenAI
	}
	if c.Captioning.Model == "" {
		if c.Captioning.Provider == ProviderGemini {
			c.Captioning.Model = c.Gemini.Model
		} else {
			c.Captioning.Model = "gpt-4o-mini"
		}
	}
	if c.Captioning.Prompt == "" {
		c.Captioning.Prompt = "Describe this video frame in one short sentence."
	}
	if c.Captioning.MaxParallel == 0 {
		c.Captioning.MaxParallel = 4
	}
	if c.Captioning.ModelConcurrency == 0 {
		c.Captioning.ModelConcurrency = 8
	}

	if c.Transcription.Provider == "" {
		c.Transcription.Provider = ProviderOpenAI
	}
	if c.Transcription.Model == "" {
		c.Transcription.Model = "whisper-1"
	}
	if c.Transcription.Threads == 0 {
		c.Transcription.Threads = 8
	}
	if c.Transcription.ModelConcurrency == 0 {
		c.Transcription.ModelConcurrency = 2
	}

	if c.Summary.Provider == "" {
		c.Summary.Provider = ProviderOpenAI
	}
	if c.Summary.Model == "" {
		if c.Summary.Provider == ProviderGemini {
			c.Summary.Model = c.Gemini.Model
		} else {
			c.Summary.Model = "gpt-3.5-turbo"
		}
	}
	if c.Summary.MaxTokens == 0 {
		c.Summary.MaxTokens = 800
	}
	if c.Summary.Timeout == 0 {
		c.Summary.Timeout = 90 * time.Second
	}

	if c.Paths.Input == "" {
		c.Paths.Input = "data/input"
	}
	if c.Paths.Processing == "" {
		c.Paths.Processing = "data/processing"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}

	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
}
