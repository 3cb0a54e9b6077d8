package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/clipdigest/internal/logger"
	"github.com/nguyentantai21042004/clipdigest/internal/media"
	"github.com/nguyentantai21042004/clipdigest/internal/staging"
	"golang.org/x/sync/errgroup"
)

const degradedPrefix = "summary unavailable: "

// Run executes one request. The workspace is removed on every path.
func (p *implPipeline) Run(ctx context.Context, req Request) (Result, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	ctx = logger.WithRequestID(ctx, req.ID)
	startTime := time.Now()

	numFrames, err := p.frameCount(req.NumFrames)
	if err != nil {
		return Result{}, err
	}

	if err := p.sem.Acquire(ctx); err != nil {
		return Result{}, p.fail(ctx, media.AsError(err, media.StageAdmission))
	}
	defer p.sem.Release()

	p.l.Info(ctx, "Starting request: file=%q frames=%d", req.Upload.Filename, numFrames)

	ws, err := staging.NewWorkspace(p.opts.TempDir, req.ID)
	if err != nil {
		return Result{}, p.fail(ctx, media.NewError(media.KindInternal, media.StageStaging, "could not allocate a workspace", err))
	}
	defer func() {
		if err := ws.Close(); err != nil {
			p.l.Warn(ctx, "Failed to remove workspace %s: %v", ws.Dir(), err)
		}
	}()

	res, err := p.run(ctx, ws, req, numFrames)
	if err != nil {
		return Result{}, p.fail(ctx, err)
	}

	p.l.Info(ctx, "Request completed in %s: %d captions, %d transcript chars, %d warnings",
		time.Since(startTime).Round(time.Millisecond), len(res.Captions), len(res.Transcript), len(res.Warnings))
	return res, nil
}

func (p *implPipeline) run(ctx context.Context, ws *staging.Workspace, req Request, numFrames int) (Result, error) {
	staged, err := p.stages.Stager.Stage(ctx, ws, req.Upload)
	if err != nil {
		return Result{}, err
	}

	repaired, err := p.stages.Repairer.Repair(ctx, staged)
	if err != nil {
		return Result{}, err
	}

	info, err := p.stages.Sampler.Probe(ctx, repaired)
	if err != nil {
		return Result{}, err
	}

	var (
		sample     media.FrameSample
		captions   media.CaptionSet
		transcript media.Transcript
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sample, err = p.stages.Sampler.Sample(gctx, repaired, info, numFrames)
		if err != nil {
			return err
		}
		captions, err = p.stages.Captioner.CaptionAll(gctx, sample)
		return err
	})
	g.Go(func() error {
		var err error
		transcript, err = p.stages.Transcriber.Transcribe(gctx, repaired, info)
		return err
	})
	if err := g.Wait(); err != nil {
		// a stage failing after the request was cancelled reports the
		// cancellation, tagged with that stage
		if ctx.Err() != nil && media.KindOf(err) != media.KindCancelled {
			return Result{}, media.AsError(ctx.Err(), media.AsError(err, "").Stage)
		}
		return Result{}, err
	}

	if len(captions) != len(sample) {
		return Result{}, media.NewError(media.KindInternal, media.StageCaption,
			"caption count does not match frame count",
			fmt.Errorf("%d captions for %d frames", len(captions), len(sample)))
	}

	res := Result{
		RequestID:  req.ID,
		Transcript: transcript.Text,
		Language:   transcript.Language,
		Captions:   []string(captions),
		Video:      videoMeta(info),
		Frames:     frameRefs(sample),
		Warnings:   []string{},
	}
	if len(sample) < numFrames {
		res.Warnings = append(res.Warnings, fmt.Sprintf("only %d of %d requested frames could be decoded", len(sample), numFrames))
	}
	if !info.HasAudio {
		res.Warnings = append(res.Warnings, "video has no audio track; transcript is empty")
	}

	summary, err := p.stages.Summarizer.Summarize(ctx, transcript, captions)
	if err != nil {
		if media.KindOf(err) == media.KindCancelled {
			return Result{}, err
		}
		// summary failures degrade instead of failing the request
		p.l.Warn(ctx, "Summary degraded: %v", err)
		summary = media.SummaryResult{Text: degradedPrefix + err.Error(), Degraded: true}
		res.Warnings = append(res.Warnings, "summary service failed; summary field contains the error")
	}

	res.Summary = summary.Text
	res.SummaryDegraded = summary.Degraded
	if summary.Language != "" {
		res.Language = summary.Language
	}
	return res, nil
}

func (p *implPipeline) frameCount(n int) (int, error) {
	if n == 0 {
		return p.opts.DefaultFrames, nil
	}
	if n < p.opts.MinFrames || n > p.opts.MaxFrames {
		return 0, media.NewError(media.KindInvalidArgument, media.StageUpload,
			fmt.Sprintf("num_frames must be between %d and %d", p.opts.MinFrames, p.opts.MaxFrames), nil)
	}
	return n, nil
}

func (p *implPipeline) fail(ctx context.Context, err error) error {
	e := media.AsError(err, "")
	if e.Diagnostics != "" {
		p.l.Error(ctx, "Request failed at %s: %v\n%s", e.Stage, e, e.Diagnostics)
	} else {
		p.l.Error(ctx, "Request failed at %s: %v", e.Stage, e)
	}
	return e
}
