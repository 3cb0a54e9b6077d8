// Package bootstrap builds the process-wide model clients and the pipeline
// from configuration. Each component is created at most once per process.
package bootstrap

import (
	"context"
	"fmt"
	"os/exec"
	"sync"

	"github.com/nguyentantai21042004/clipdigest/internal/caption"
	"github.com/nguyentantai21042004/clipdigest/internal/config"
	"github.com/nguyentantai21042004/clipdigest/internal/frames"
	"github.com/nguyentantai21042004/clipdigest/internal/gemini"
	"github.com/nguyentantai21042004/clipdigest/internal/logger"
	"github.com/nguyentantai21042004/clipdigest/internal/pipeline"
	"github.com/nguyentantai21042004/clipdigest/internal/remux"
	"github.com/nguyentantai21042004/clipdigest/internal/staging"
	"github.com/nguyentantai21042004/clipdigest/internal/summarizer"
	"github.com/nguyentantai21042004/clipdigest/internal/transcribe"
	"github.com/nguyentantai21042004/clipdigest/pkg/executor"
	"github.com/sashabaranov/go-openai"
)

// Registry hands out shared, read-only components.
type Registry struct {
	cfg  *config.Config
	l    logger.Logger
	exec executor.Executor

	toolsOnce sync.Once
	tools     Tools
	toolsErr  error

	openaiOnce sync.Once
	openai     *openai.Client

	geminiOnce sync.Once
	gemini     *gemini.Client
	geminiErr  error

	captionOnce sync.Once
	caption     caption.Model
	captionErr  error

	engineOnce sync.Once
	engine     transcribe.Engine
	engineErr  error

	backendOnce sync.Once
	backend     summarizer.Backend
	backendErr  error

	detectorOnce sync.Once
	detector     summarizer.LanguageDetector

	pipelineOnce sync.Once
	pipeline     pipeline.Pipeline
	pipelineErr  error
}

// Tools holds absolute paths of the external binaries.
type Tools struct {
	FFmpeg  string
	FFprobe string
	Whisper string
}

// New creates a Registry. cfg must already be validated.
func New(cfg *config.Config, l logger.Logger) *Registry {
	return &Registry{
		cfg:  cfg,
		l:    l,
		exec: executor.New(),
	}
}

// Tools resolves binary paths once.
func (r *Registry) Tools() (Tools, error) {
	r.toolsOnce.Do(func() {
		r.tools, r.toolsErr = resolveTools(r.cfg)
	})
	return r.tools, r.toolsErr
}

func resolveTools(cfg *config.Config) (Tools, error) {
	var t Tools
	var err error

	if t.FFmpeg, err = exec.LookPath(cfg.FFmpeg.BinaryPath); err != nil {
		return Tools{}, fmt.Errorf("find ffmpeg %q: %w", cfg.FFmpeg.BinaryPath, err)
	}
	if t.FFprobe, err = exec.LookPath(cfg.FFmpeg.ProbePath); err != nil {
		return Tools{}, fmt.Errorf("find ffprobe %q: %w", cfg.FFmpeg.ProbePath, err)
	}
	if cfg.Transcription.Provider == config.ProviderWhisperCLI {
		if t.Whisper, err = exec.LookPath(cfg.Transcription.BinaryPath); err != nil {
			return Tools{}, fmt.Errorf("find whisper-cli %q: %w", cfg.Transcription.BinaryPath, err)
		}
	}
	return t, nil
}

func (r *Registry) openAIClient() *openai.Client {
	r.openaiOnce.Do(func() {
		clientConfig := openai.DefaultConfig(r.cfg.OpenAI.APIKey)
		if r.cfg.OpenAI.BaseURL != "" {
			clientConfig.BaseURL = r.cfg.OpenAI.BaseURL
		}
		r.openai = openai.NewClientWithConfig(clientConfig)
	})
	return r.openai
}

func (r *Registry) geminiClient() (*gemini.Client, error) {
	r.geminiOnce.Do(func() {
		r.gemini, r.geminiErr = gemini.New(r.cfg.Gemini.APIKeys, r.l)
	})
	return r.gemini, r.geminiErr
}

// CaptionModel returns the shared, concurrency-limited captioning model.
func (r *Registry) CaptionModel() (caption.Model, error) {
	r.captionOnce.Do(func() {
		c := r.cfg.Captioning
		var m caption.Model
		switch c.Provider {
		case config.ProviderOpenAI:
			m = caption.NewOpenAI(r.openAIClient(), c.Model, c.Prompt)
		case config.ProviderGemini:
			g, err := r.geminiClient()
			if err != nil {
				r.captionErr = err
				return
			}
			m = caption.NewGemini(g, c.Model, c.Prompt)
		default:
			r.captionErr = fmt.Errorf("unsupported captioning provider %q", c.Provider)
			return
		}
		r.caption = caption.Limit(m, c.ModelConcurrency)
		r.l.Info(context.Background(), "Captioning model ready: %s/%s", c.Provider, c.Model)
	})
	return r.caption, r.captionErr
}

// TranscriptionEngine returns the shared, concurrency-limited speech engine.
func (r *Registry) TranscriptionEngine() (transcribe.Engine, error) {
	r.engineOnce.Do(func() {
		c := r.cfg.Transcription
		var e transcribe.Engine
		switch c.Provider {
		case config.ProviderOpenAI:
			e = transcribe.NewOpenAI(r.openAIClient(), c.Model, c.Language, c.Prompt)
		case config.ProviderWhisperCLI:
			tools, err := r.Tools()
			if err != nil {
				r.engineErr = err
				return
			}
			e = transcribe.NewWhisperCLI(r.exec, transcribe.WhisperOptions{
				BinaryPath: tools.Whisper,
				ModelPath:  c.ModelPath,
				Language:   c.Language,
				Prompt:     c.Prompt,
				Threads:    c.Threads,
			})
		default:
			r.engineErr = fmt.Errorf("unsupported transcription provider %q", c.Provider)
			return
		}
		r.engine = transcribe.Limit(e, c.ModelConcurrency)
		r.l.Info(context.Background(), "Transcription engine ready: %s", c.Provider)
	})
	return r.engine, r.engineErr
}

// SummaryBackend returns the shared summary service client.
func (r *Registry) SummaryBackend() (summarizer.Backend, error) {
	r.backendOnce.Do(func() {
		c := r.cfg.Summary
		switch c.Provider {
		case config.ProviderOpenAI:
			r.backend = summarizer.NewOpenAI(r.openAIClient(), c.Model, c.MaxTokens, c.Temperature)
		case config.ProviderGemini:
			g, err := r.geminiClient()
			if err != nil {
				r.backendErr = err
				return
			}
			r.backend = summarizer.NewGemini(g, c.Model, c.MaxTokens, c.Temperature)
		default:
			r.backendErr = fmt.Errorf("unsupported summary provider %q", c.Provider)
		}
	})
	return r.backend, r.backendErr
}

// LanguageDetector returns the shared language detector.
func (r *Registry) LanguageDetector() summarizer.LanguageDetector {
	r.detectorOnce.Do(func() {
		r.detector = summarizer.NewLinguaDetector()
	})
	return r.detector
}

// Pipeline wires every stage together.
func (r *Registry) Pipeline() (pipeline.Pipeline, error) {
	r.pipelineOnce.Do(func() {
		r.pipeline, r.pipelineErr = r.buildPipeline()
	})
	return r.pipeline, r.pipelineErr
}

func (r *Registry) buildPipeline() (pipeline.Pipeline, error) {
	tools, err := r.Tools()
	if err != nil {
		return nil, err
	}
	model, err := r.CaptionModel()
	if err != nil {
		return nil, fmt.Errorf("build caption model: %w", err)
	}
	engine, err := r.TranscriptionEngine()
	if err != nil {
		return nil, fmt.Errorf("build transcription engine: %w", err)
	}
	backend, err := r.SummaryBackend()
	if err != nil {
		return nil, fmt.Errorf("build summary backend: %w", err)
	}

	cfg := r.cfg
	stages := pipeline.Stages{
		Stager:   staging.New(r.l, cfg.Server.MaxUploadBytes),
		Repairer: remux.New(r.l, r.exec, tools.FFmpeg),
		Sampler: frames.New(r.l, r.exec, frames.Options{
			FFmpegPath:  tools.FFmpeg,
			FFprobePath: tools.FFprobe,
			MaxWidth:    cfg.Frames.MaxWidth,
			StrictCount: cfg.Frames.StrictCount,
		}),
		Captioner:   caption.NewStage(r.l, model, cfg.Captioning.MaxParallel),
		Transcriber: transcribe.New(r.l, r.exec, tools.FFmpeg, engine),
		Summarizer:  summarizer.New(backend, r.LanguageDetector(), cfg.Summary.Timeout, r.l),
	}

	return pipeline.New(r.l, stages, pipeline.Options{
		TempDir:       cfg.Paths.Temp,
		MaxConcurrent: cfg.Performance.MaxConcurrent,
		DefaultFrames: cfg.Frames.DefaultCount,
		MinFrames:     cfg.Frames.MinCount,
		MaxFrames:     cfg.Frames.MaxCount,
	}), nil
}
