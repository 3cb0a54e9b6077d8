package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/clipdigest/internal/logger"
	"github.com/nguyentantai21042004/clipdigest/internal/media"
	"github.com/nguyentantai21042004/clipdigest/internal/pipeline"
)

// Process runs one dropped file through the pipeline. The source always ends
// up in the archived folder so it is never picked up twice.
func (p *implProcessor) Process(ctx context.Context, videoPath string) error {
	startTime := time.Now()
	requestID := uuid.NewString()
	ctx = logger.WithRequestID(ctx, requestID)

	filename := filepath.Base(videoPath)
	name := strings.TrimSuffix(filename, filepath.Ext(filename))

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting video processing: %s", videoPath)
	p.logger.Info(ctx, "========================================")

	// Step 1: claim the file
	processingPath, err := p.moveToProcessing(ctx, videoPath)
	if err != nil {
		return err
	}

	// Step 2: run the pipeline
	res, runErr := p.run(ctx, requestID, processingPath)

	// Step 3: write reports
	if runErr != nil {
		errPath := filepath.Join(p.cfg.Paths.Output, name+".error.json")
		if err := writeJSONFile(errPath, pipeline.NewErrorBody(runErr, requestID)); err != nil {
			p.logger.Error(ctx, "Failed to write error report: %v", err)
		}
	} else {
		if err := p.writeReports(ctx, name, res); err != nil {
			runErr = err
		}
	}

	// Step 4: archive the source
	if err := p.moveToArchived(ctx, processingPath); err != nil {
		p.logger.Warn(ctx, "Failed to move original to archived folder: %v", err)
	}

	if runErr != nil {
		return fmt.Errorf("process %s: %w", filename, runErr)
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed successfully!")
	p.logger.Info(ctx, "Reports: %s.json, %s.docx in %s", name, name, p.cfg.Paths.Output)
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime).Round(time.Millisecond))
	p.logger.Info(ctx, "========================================")
	return nil
}

func (p *implProcessor) run(ctx context.Context, requestID, path string) (pipeline.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return pipeline.Result{}, media.NewError(media.KindInternal, media.StageUpload, "could not open dropped file", err)
	}
	defer f.Close()

	return p.pipeline.Run(ctx, pipeline.Request{
		ID: requestID,
		Upload: media.UploadedMedia{
			Body:     f,
			Filename: filepath.Base(path),
		},
		NumFrames: p.cfg.Frames.DefaultCount,
	})
}

func (p *implProcessor) writeReports(ctx context.Context, name string, res pipeline.Result) error {
	jsonPath := filepath.Join(p.cfg.Paths.Output, name+".json")
	if err := writeJSONFile(jsonPath, res); err != nil {
		return fmt.Errorf("write json report: %w", err)
	}

	docxPath := filepath.Join(p.cfg.Paths.Output, name+".docx")
	if err := resultToDocx(name, res, docxPath); err != nil {
		// the JSON report is already complete
		p.logger.Warn(ctx, "Failed to write docx report %s: %v", docxPath, err)
	}
	return nil
}
