package frames

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"math"
	"strconv"
	"time"

	"golang.org/x/image/draw"
)

// seekArg places the seek half a frame before index. Accurate seeking drops
// every frame that starts before the seek point, so the seek must not land
// past the frame's own timestamp, and must land after the previous frame's.
func seekArg(index int, fps float64) string {
	return strconv.FormatFloat(math.Max(0, (float64(index)-0.5)/fps), 'f', 6, 64)
}

// grabArgs seeks near the frame's timestamp and writes a single PNG to stdout.
// Without a usable frame rate the frame is selected by number instead.
func grabArgs(path string, index int, fps float64) []string {
	if fps > 0 {
		return []string{
			"-hide_banner", "-loglevel", "error",
			"-ss", seekArg(index, fps),
			"-i", path,
			"-frames:v", "1",
			"-pix_fmt", "rgb24",
			"-f", "image2pipe",
			"-vcodec", "png",
			"-",
		}
	}
	return []string{
		"-hide_banner", "-loglevel", "error",
		"-i", path,
		"-vf", fmt.Sprintf("select=eq(n\\,%d)", index),
		"-vsync", "0",
		"-frames:v", "1",
		"-pix_fmt", "rgb24",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-",
	}
}

func (s *implSampler) grabFrame(ctx context.Context, path string, index int, fps float64) (image.Image, error) {
	out, err := s.exec.Execute(ctx, s.opts.FFmpegPath, grabArgs(path, index, fps)...)
	if err != nil {
		return nil, fmt.Errorf("extract frame %d: %w", index, err)
	}
	if len(out) == 0 && fps > 0 {
		// timestamps that disagree with the declared rate can leave nothing
		// after the seek point, typically on the last frame
		s.l.Debug(ctx, "seek for frame %d produced no image, selecting by number", index)
		if out, err = s.exec.Execute(ctx, s.opts.FFmpegPath, grabArgs(path, index, 0)...); err != nil {
			return nil, fmt.Errorf("extract frame %d: %w", index, err)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("extract frame %d: ffmpeg produced no image", index)
	}

	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		return nil, fmt.Errorf("decode frame %d: %w", index, err)
	}
	return resize(toRGBA(img), s.opts.MaxWidth), nil
}

// toRGBA converts any decoded image into 8-bit RGBA.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// resize shrinks img to maxWidth keeping the aspect ratio.
func resize(img *image.RGBA, maxWidth int) *image.RGBA {
	b := img.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return img
	}
	h := b.Dy() * maxWidth / b.Dx()
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func timestampOf(index int, fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(index) / fps * float64(time.Second))
}
