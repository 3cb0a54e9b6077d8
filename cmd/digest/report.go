package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/nguyentantai21042004/clipdigest/internal/pipeline"
)

const previewChars = 1000

type report struct {
	w      io.Writer
	full   bool
	colors map[string]*color.Color
}

func newReport(w io.Writer, full bool) *report {
	return &report{
		w:    w,
		full: full,
		colors: map[string]*color.Color{
			"title":   color.New(color.FgWhite, color.Bold),
			"header":  color.New(color.FgBlue, color.Bold),
			"label":   color.New(color.FgCyan),
			"warning": color.New(color.FgYellow),
			"summary": color.New(color.FgGreen),
		},
	}
}

func (r *report) render(name string, res pipeline.Result) {
	r.colors["title"].Fprintf(r.w, "%s\n", name)
	fmt.Fprintf(r.w, "request %s\n\n", res.RequestID)

	r.header("Video")
	v := res.Video
	r.field("duration", fmt.Sprintf("%.1fs", v.DurationSeconds))
	r.field("size", fmt.Sprintf("%dx%d", v.Width, v.Height))
	frames := fmt.Sprintf("%d @ %.2f fps", v.TotalFrames, v.FPS)
	if v.FrameCountEstimated {
		frames += " (estimated)"
	}
	r.field("frames", frames)
	r.field("audio", fmt.Sprintf("%t", v.HasAudio))
	if res.Language != "" {
		r.field("language", res.Language)
	}
	fmt.Fprintln(r.w)

	r.header("Captions")
	for i, c := range res.Captions {
		ts := ""
		if i < len(res.Frames) {
			ts = fmt.Sprintf("%7.2fs", res.Frames[i].TimestampSeconds)
		}
		r.colors["label"].Fprintf(r.w, "  %s ", ts)
		fmt.Fprintln(r.w, c)
	}
	fmt.Fprintln(r.w)

	r.header("Transcript")
	fmt.Fprintln(r.w, r.transcript(res.Transcript))
	fmt.Fprintln(r.w)

	r.header("Summary")
	if res.SummaryDegraded {
		r.colors["warning"].Fprintln(r.w, res.Summary)
	} else {
		r.colors["summary"].Fprintln(r.w, res.Summary)
	}

	if len(res.Warnings) > 0 {
		fmt.Fprintln(r.w)
		r.header("Warnings")
		for _, w := range res.Warnings {
			r.colors["warning"].Fprintf(r.w, "  ! %s\n", w)
		}
	}
}

func (r *report) header(s string) {
	r.colors["header"].Fprintln(r.w, strings.ToUpper(s))
}

func (r *report) field(label, value string) {
	r.colors["label"].Fprintf(r.w, "  %-9s", label)
	fmt.Fprintln(r.w, value)
}

func (r *report) transcript(t string) string {
	if t == "" {
		return "(no speech)"
	}
	if r.full {
		return t
	}
	runes := []rune(t)
	if len(runes) <= previewChars {
		return t
	}
	return string(runes[:previewChars]) + "..."
}
