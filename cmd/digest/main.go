package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/nguyentantai21042004/clipdigest/internal/bootstrap"
	"github.com/nguyentantai21042004/clipdigest/internal/config"
	"github.com/nguyentantai21042004/clipdigest/internal/logger"
	"github.com/nguyentantai21042004/clipdigest/internal/media"
	"github.com/nguyentantai21042004/clipdigest/internal/pipeline"
	"golang.org/x/term"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML configuration file")
	numFrames := flag.Int("frames", 0, "number of frames to caption (0 uses the configured default)")
	full := flag.Bool("full", false, "print the whole transcript instead of a preview")
	verbose := flag.Bool("v", false, "log pipeline progress to stderr")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: digest [-frames N] [-full] [-config file] <video>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	color.NoColor = !term.IsTerminal(int(os.Stdout.Fd()))

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	level := "warn"
	if *verbose {
		level = cfg.Logging.Level
	}
	log := logger.NewWithFormat(level, "text", os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, flag.Arg(0), *numFrames, *full); err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "error [%s]: ", media.KindOf(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger, path string, numFrames int, full bool) error {
	def, lo, hi := cfg.Frames.DefaultCount, cfg.Frames.MinCount, cfg.Frames.MaxCount
	if numFrames == 0 {
		numFrames = def
	}
	if numFrames < lo || numFrames > hi {
		return media.NewError(media.KindInvalidArgument, media.StageUpload, fmt.Sprintf("-frames must be between %d and %d", lo, hi), nil)
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return media.NewError(media.KindInvalidArgument, media.StageUpload, "video not found: "+path, err)
		}
		return fmt.Errorf("open video: %w", err)
	}
	defer f.Close()

	p, err := bootstrap.New(cfg, log).Pipeline()
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	res, err := p.Run(ctx, pipeline.Request{
		Upload: media.UploadedMedia{
			Body:     f,
			Filename: filepath.Base(path),
		},
		NumFrames: numFrames,
	})
	if err != nil {
		return err
	}

	newReport(os.Stdout, full).render(filepath.Base(path), res)
	return nil
}
