package frames

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"slices"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/clipdigest/internal/logger"
	"github.com/nguyentantai21042004/clipdigest/internal/media"
	"github.com/nguyentantai21042004/clipdigest/pkg/executor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const probeJSON = `{
  "streams": [
    {"codec_type": "video", "width": 1280, "height": 720, "nb_frames": "300",
     "r_frame_rate": "30/1", "avg_frame_rate": "30/1", "duration": "10.000000"},
    {"codec_type": "audio"}
  ],
  "format": {"duration": "10.010000"}
}`

type fakeExecutor struct {
	mu      sync.Mutex
	calls   [][]string
	execute func(name string, args []string) ([]byte, error)
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]string{name}, args...))
	f.mu.Unlock()
	return f.execute(name, args)
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.NRGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func seekOf(args []string) string {
	if i := slices.Index(args, "-ss"); i >= 0 {
		return args[i+1]
	}
	return ""
}

func TestProbe(t *testing.T) {
	tests := []struct {
		name     string
		out      string
		err      error
		want     media.VideoInfo
		wantKind media.Kind
	}{
		{
			name: "declared frame count",
			out:  probeJSON,
			want: media.VideoInfo{TotalFrames: 300, FPS: 30, Duration: 10 * time.Second, Width: 1280, Height: 720, HasAudio: true},
		},
		{
			name: "estimated from duration",
			out: `{"streams":[{"codec_type":"video","width":640,"height":360,"r_frame_rate":"25/1","avg_frame_rate":"0/0"}],
			       "format":{"duration":"4.0"}}`,
			want: media.VideoInfo{TotalFrames: 100, FPS: 25, Duration: 4 * time.Second, Width: 640, Height: 360, FrameCountEstimated: true},
		},
		{
			name:     "no frames",
			out:      `{"streams":[{"codec_type":"video","width":640,"height":360,"r_frame_rate":"0/0"}],"format":{}}`,
			wantKind: media.KindNoFrames,
		},
		{
			name:     "audio only",
			out:      `{"streams":[{"codec_type":"audio"}],"format":{"duration":"3.0"}}`,
			wantKind: media.KindUnopenableMedia,
		},
		{
			name:     "garbage output",
			out:      `not json`,
			wantKind: media.KindUnopenableMedia,
		},
		{
			name:     "ffprobe fails",
			err:      &executor.CommandError{Name: "ffprobe", ExitCode: 1, Stderr: "Invalid data found when processing input", Err: errors.New("exit status 1")},
			wantKind: media.KindUnopenableMedia,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &fakeExecutor{execute: func(name string, args []string) ([]byte, error) {
				return []byte(tt.out), tt.err
			}}
			s := New(logger.Nop(), exec, Options{FFprobePath: "ffprobe"})

			info, err := s.Probe(context.Background(), media.RepairedFile{Path: "/ws/fixed.mp4"})
			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, media.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, info)
			assert.Equal(t, "/ws/fixed.mp4", exec.calls[0][len(exec.calls[0])-1])
		})
	}
}

func TestSample(t *testing.T) {
	frame := pngBytes(t, 64, 32)
	info := media.VideoInfo{TotalFrames: 300, FPS: 30, Width: 64, Height: 32}

	tests := []struct {
		name        string
		count       int
		strict      bool
		failIndices []int
		wantIndices []int
		wantKind    media.Kind
	}{
		{
			name:        "three frames",
			count:       3,
			wantIndices: []int{0, 150, 299},
		},
		{
			name:        "failed frame is dropped",
			count:       3,
			failIndices: []int{150},
			wantIndices: []int{0, 299},
		},
		{
			name:      "failed frame with strict count",
			count:     3,
			strict:    true,
			failIndices: []int{150},
			wantKind:  media.KindIncompleteSample,
		},
		{
			name:      "every frame fails",
			count:     3,
			failIndices: []int{0, 150, 299},
			wantKind:  media.KindNoFrames,
		},
		{
			name:     "non positive count",
			count:    0,
			wantKind: media.KindInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &fakeExecutor{execute: func(name string, args []string) ([]byte, error) {
				if slices.ContainsFunc(tt.failIndices, func(idx int) bool { return seekOf(args) == seekArg(idx, 30) }) {
					return nil, &executor.CommandError{Name: name, ExitCode: 1, Stderr: "decode error", Err: errors.New("exit status 1")}
				}
				return frame, nil
			}}
			s := New(logger.Nop(), exec, Options{StrictCount: tt.strict})

			sample, err := s.Sample(context.Background(), media.RepairedFile{Path: "/ws/fixed.mp4"}, info, tt.count)
			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, media.KindOf(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantIndices, sample.Indices())
			for _, f := range sample {
				rgba, ok := f.Image.(*image.RGBA)
				require.True(t, ok, "frame %d is %T", f.Index, f.Image)
				assert.Equal(t, image.Rect(0, 0, 64, 32), rgba.Bounds())
				assert.Equal(t, timestampOf(f.Index, 30), f.Timestamp)
			}
		})
	}
}

func TestSampleDownscales(t *testing.T) {
	exec := &fakeExecutor{execute: func(name string, args []string) ([]byte, error) {
		return pngBytes(t, 200, 100), nil
	}}
	s := New(logger.Nop(), exec, Options{MaxWidth: 50})

	sample, err := s.Sample(context.Background(), media.RepairedFile{Path: "v.mp4"},
		media.VideoInfo{TotalFrames: 10, FPS: 10}, 1)
	require.NoError(t, err)
	require.Len(t, sample, 1)
	assert.Equal(t, image.Rect(0, 0, 50, 25), sample[0].Image.Bounds())
}

func TestSampleCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	exec := &fakeExecutor{execute: func(name string, args []string) ([]byte, error) {
		cancel()
		return nil, context.Canceled
	}}
	s := New(logger.Nop(), exec, Options{})

	_, err := s.Sample(ctx, media.RepairedFile{Path: "v.mp4"}, media.VideoInfo{TotalFrames: 10, FPS: 10}, 3)
	require.Error(t, err)
	assert.Equal(t, media.KindCancelled, media.KindOf(err))
	assert.Len(t, exec.calls, 1)
}

func TestSeekNeverPassesFrame(t *testing.T) {
	for _, tc := range []struct {
		total int
		fps   float64
	}{
		{total: 300, fps: 30},
		{total: 250, fps: 25},
		{total: 17982, fps: 30000.0 / 1001},
		{total: 1441, fps: 24},
	} {
		for count := 1; count <= 10; count++ {
			for _, idx := range Linspace(tc.total, count) {
				seek, err := strconv.ParseFloat(seekOf(grabArgs("v.mp4", idx, tc.fps)), 64)
				require.NoError(t, err)
				assert.LessOrEqual(t, seek, float64(idx)/tc.fps, "frame %d of %d at %.3f fps", idx, tc.total, tc.fps)
				if idx > 0 {
					assert.Greater(t, seek, float64(idx-1)/tc.fps, "frame %d of %d at %.3f fps", idx, tc.total, tc.fps)
				}
			}
		}
	}
}

func TestSampleFallsBackToFrameNumber(t *testing.T) {
	frame := pngBytes(t, 8, 8)
	exec := &fakeExecutor{execute: func(name string, args []string) ([]byte, error) {
		// nothing left after the seek point for the last frame
		if seekOf(args) == seekArg(299, 30) {
			return nil, nil
		}
		return frame, nil
	}}
	s := New(logger.Nop(), exec, Options{})

	sample, err := s.Sample(context.Background(), media.RepairedFile{Path: "v.mp4"}, media.VideoInfo{TotalFrames: 300, FPS: 30}, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 150, 299}, sample.Indices())
	require.Len(t, exec.calls, 4)
	assert.Contains(t, exec.calls[3], `select=eq(n\,299)`)
	assert.NotContains(t, exec.calls[3], "-ss")
}

func TestGrabArgsWithoutFrameRate(t *testing.T) {
	args := grabArgs("v.mp4", 42, 0)
	assert.Contains(t, args, `select=eq(n\,42)`)
	assert.NotContains(t, args, "-ss")
}
