package frames

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/nguyentantai21042004/clipdigest/internal/media"
	"github.com/nguyentantai21042004/clipdigest/pkg/executor"
)

type probeOutput struct {
	Streams []probeStream `json:"streams"`
	Format  struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

type probeStream struct {
	CodecType    string `json:"codec_type"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	NbFrames     string `json:"nb_frames"`
	RFrameRate   string `json:"r_frame_rate"`
	AvgFrameRate string `json:"avg_frame_rate"`
	Duration     string `json:"duration"`
}

func probeArgs(path string) []string {
	return []string{
		"-v", "error",
		"-show_entries", "stream=codec_type,nb_frames,r_frame_rate,avg_frame_rate,width,height,duration:format=duration",
		"-of", "json",
		path,
	}
}

func (s *implSampler) Probe(ctx context.Context, repaired media.RepairedFile) (media.VideoInfo, error) {
	out, err := s.exec.Execute(ctx, s.opts.FFprobePath, probeArgs(repaired.Path)...)
	if err != nil {
		if ctx.Err() != nil {
			return media.VideoInfo{}, media.AsError(ctx.Err(), media.StageSampling)
		}
		return media.VideoInfo{}, media.NewError(media.KindUnopenableMedia, media.StageSampling,
			"video could not be opened", err).WithDiagnostics(executor.Diagnostics(err))
	}

	info, err := parseProbe(out)
	if err != nil {
		return media.VideoInfo{}, err
	}

	s.l.Debug(ctx, "probed %s: %d frames @ %.3f fps, %dx%d, %s, audio=%t",
		repaired.Path, info.TotalFrames, info.FPS, info.Width, info.Height, info.Duration, info.HasAudio)
	return info, nil
}

func parseProbe(out []byte) (media.VideoInfo, error) {
	var parsed probeOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		return media.VideoInfo{}, media.NewError(media.KindUnopenableMedia, media.StageSampling,
			"video metadata is unreadable", err)
	}

	var (
		info  media.VideoInfo
		video *probeStream
	)
	for i := range parsed.Streams {
		st := &parsed.Streams[i]
		switch strings.TrimSpace(st.CodecType) {
		case "video":
			if video == nil {
				video = st
			}
		case "audio":
			info.HasAudio = true
		}
	}
	if video == nil {
		return media.VideoInfo{}, media.NewError(media.KindUnopenableMedia, media.StageSampling,
			"file has no video stream", nil)
	}

	info.Width = video.Width
	info.Height = video.Height
	info.FPS = selectFrameRate(video.AvgFrameRate, video.RFrameRate)

	seconds := parseFloat(video.Duration)
	if seconds <= 0 {
		seconds = parseFloat(parsed.Format.Duration)
	}
	if seconds > 0 {
		info.Duration = time.Duration(seconds * float64(time.Second))
	}

	if n, err := strconv.Atoi(strings.TrimSpace(video.NbFrames)); err == nil && n > 0 {
		info.TotalFrames = n
	} else if seconds > 0 && info.FPS > 0 {
		info.TotalFrames = int(math.Round(seconds * info.FPS))
		info.FrameCountEstimated = true
	}

	if info.FPS <= 0 && info.TotalFrames > 0 && seconds > 0 {
		info.FPS = float64(info.TotalFrames) / seconds
	}

	if info.TotalFrames <= 0 {
		return media.VideoInfo{}, media.NewError(media.KindNoFrames, media.StageSampling,
			"video reports no frames", nil)
	}
	return info, nil
}

// selectFrameRate prefers the average rate and falls back to the base rate.
func selectFrameRate(avg, raw string) float64 {
	if v := parseRate(avg); v > 0 {
		return v
	}
	return parseRate(raw)
}

// parseRate reads ffprobe's "num/den" notation.
func parseRate(v string) float64 {
	v = strings.TrimSpace(v)
	if v == "" || v == "0/0" {
		return 0
	}
	num, den, ok := strings.Cut(v, "/")
	if !ok {
		return parseFloat(v)
	}
	n := parseFloat(num)
	d := parseFloat(den)
	if d <= 0 {
		return 0
	}
	return n / d
}

func parseFloat(v string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
