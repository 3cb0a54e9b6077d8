package transcribe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/nguyentantai21042004/clipdigest/internal/logger"
	"github.com/nguyentantai21042004/clipdigest/internal/media"
	"github.com/nguyentantai21042004/clipdigest/pkg/executor"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockExecutor struct {
	ExecuteFunc func(ctx context.Context, name string, args ...string) ([]byte, error)
	calls       [][]string
}

func (m *MockExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, error) {
	m.calls = append(m.calls, append([]string{name}, args...))
	return m.ExecuteFunc(ctx, name, args...)
}

type MockEngine struct {
	TranscribeFunc func(ctx context.Context, audioPath string) (media.Transcript, error)
	Format         AudioFormat
	calls          int
}

func (m *MockEngine) AudioFormat() AudioFormat {
	return m.Format
}

func (m *MockEngine) Transcribe(ctx context.Context, audioPath string) (media.Transcript, error) {
	m.calls++
	return m.TranscribeFunc(ctx, audioPath)
}

func okExecutor() *MockExecutor {
	return &MockExecutor{ExecuteFunc: func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return nil, nil
	}}
}

func TestTranscribe(t *testing.T) {
	ffmpegErr := &executor.CommandError{Name: "ffmpeg", ExitCode: 1, Stderr: "Output file does not contain any stream", Err: errors.New("exit status 1")}

	tests := []struct {
		name        string
		info        media.VideoInfo
		exec        *MockExecutor
		engine      *MockEngine
		want        media.Transcript
		wantKind    media.Kind
		wantEngine  int
		wantFFmpegs int
	}{
		{
			name: "normalizes text",
			info: media.VideoInfo{HasAudio: true},
			exec: okExecutor(),
			engine: &MockEngine{TranscribeFunc: func(ctx context.Context, audioPath string) (media.Transcript, error) {
				assert.Equal(t, "audio.wav", filepath.Base(audioPath))
				return media.Transcript{Text: "  hello\n\n  world  ", Language: "en"}, nil
			}},
			want:        media.Transcript{Text: "hello world", Language: "en"},
			wantEngine:  1,
			wantFFmpegs: 1,
		},
		{
			name: "no audio stream",
			info: media.VideoInfo{HasAudio: false},
			exec: okExecutor(),
			engine: &MockEngine{TranscribeFunc: func(ctx context.Context, audioPath string) (media.Transcript, error) {
				return media.Transcript{Text: "never"}, nil
			}},
			want: media.Transcript{},
		},
		{
			name: "audio extraction fails",
			info: media.VideoInfo{HasAudio: true},
			exec: &MockExecutor{ExecuteFunc: func(ctx context.Context, name string, args ...string) ([]byte, error) {
				return nil, ffmpegErr
			}},
			engine:      &MockEngine{},
			wantKind:    media.KindTranscription,
			wantFFmpegs: 1,
		},
		{
			name: "engine fails",
			info: media.VideoInfo{HasAudio: true},
			exec: okExecutor(),
			engine: &MockEngine{TranscribeFunc: func(ctx context.Context, audioPath string) (media.Transcript, error) {
				return media.Transcript{}, errors.New("model crashed")
			}},
			wantKind:    media.KindTranscription,
			wantEngine:  1,
			wantFFmpegs: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New(logger.Nop(), tt.exec, "ffmpeg", tt.engine)
			got, err := tr.Transcribe(context.Background(), media.RepairedFile{Path: "/ws/fixed.mp4"}, tt.info)

			assert.Equal(t, tt.wantEngine, tt.engine.calls)
			assert.Len(t, tt.exec.calls, tt.wantFFmpegs)
			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, media.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractAudioArgs(t *testing.T) {
	tests := []struct {
		name      string
		engine    Engine
		wantPath  string
		wantCodec []string
	}{
		{
			name:      "whisper-cli gets wav",
			engine:    NewWhisperCLI(okExecutor(), WhisperOptions{BinaryPath: "whisper-cli", ModelPath: "m.bin"}),
			wantPath:  "/ws/audio.wav",
			wantCodec: []string{"-c:a", "pcm_s16le"},
		},
		{
			name:      "openai gets compressed mp3",
			engine:    Limit(NewOpenAI(&MockAudioClient{}, "", "", ""), 1),
			wantPath:  "/ws/audio.mp3",
			wantCodec: []string{"-c:a", "libmp3lame", "-b:a", "32k"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotAudio string
			exec := okExecutor()
			tr := New(logger.Nop(), exec, "/opt/ffmpeg", &MockEngine{
				Format: tt.engine.AudioFormat(),
				TranscribeFunc: func(ctx context.Context, audioPath string) (media.Transcript, error) {
					gotAudio = audioPath
					return media.Transcript{Text: "x"}, nil
				},
			})

			_, err := tr.Transcribe(context.Background(), media.RepairedFile{Path: "/ws/fixed.mp4"}, media.VideoInfo{HasAudio: true})
			require.NoError(t, err)

			call := exec.calls[0]
			assert.Equal(t, "/opt/ffmpeg", call[0])
			assert.Equal(t, tt.wantPath, call[len(call)-1])
			assert.Equal(t, tt.wantPath, gotAudio)
			assert.True(t, slices.Contains(call, "16000"))
			i := slices.Index(call, "-c:a")
			require.GreaterOrEqual(t, i, 0)
			assert.Equal(t, tt.wantCodec, call[i:i+len(tt.wantCodec)])
		})
	}
}

func TestOpenAIEngineRejectsOversizedAudio(t *testing.T) {
	audio := filepath.Join(t.TempDir(), "audio.mp3")
	require.NoError(t, os.WriteFile(audio, make([]byte, 64), 0644))

	client := &MockAudioClient{CreateTranscriptionFunc: func(ctx context.Context, req openai.AudioRequest) (openai.AudioResponse, error) {
		t.Fatal("oversized audio must not be uploaded")
		return openai.AudioResponse{}, nil
	}}
	engine := NewOpenAI(client, "", "", "").(*openAIEngine)
	engine.maxBytes = 32

	_, err := engine.Transcribe(context.Background(), audio)
	assert.ErrorContains(t, err, "transcription upload limit")
}

func TestWhisperCLI(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "audio.wav")

	exec := &MockExecutor{ExecuteFunc: func(ctx context.Context, name string, args ...string) ([]byte, error) {
		i := slices.Index(args, "--output-file")
		require.GreaterOrEqual(t, i, 0)
		return nil, os.WriteFile(args[i+1]+".txt", []byte(" [music]\n hello there \n"), 0644)
	}}
	engine := NewWhisperCLI(exec, WhisperOptions{BinaryPath: "whisper-cli", ModelPath: "/models/ggml-base.bin", Language: "en", Threads: 2})

	tr, err := engine.Transcribe(context.Background(), audio)
	require.NoError(t, err)
	assert.Equal(t, " [music]\n hello there \n", tr.Text)
	assert.Equal(t, "en", tr.Language)

	call := exec.calls[0]
	assert.Equal(t, "whisper-cli", call[0])
	assert.Contains(t, call, "-otxt")
	assert.Contains(t, call, "/models/ggml-base.bin")
	assert.NotContains(t, call, "--prompt")
}

func TestWhisperCLIMissingOutput(t *testing.T) {
	engine := NewWhisperCLI(okExecutor(), WhisperOptions{BinaryPath: "whisper-cli", ModelPath: "m.bin"})
	_, err := engine.Transcribe(context.Background(), filepath.Join(t.TempDir(), "audio.wav"))
	assert.ErrorContains(t, err, "read whisper output")
}

type MockAudioClient struct {
	CreateTranscriptionFunc func(ctx context.Context, req openai.AudioRequest) (openai.AudioResponse, error)
}

func (m *MockAudioClient) CreateTranscription(ctx context.Context, req openai.AudioRequest) (openai.AudioResponse, error) {
	return m.CreateTranscriptionFunc(ctx, req)
}

func TestOpenAIEngine(t *testing.T) {
	client := &MockAudioClient{CreateTranscriptionFunc: func(ctx context.Context, req openai.AudioRequest) (openai.AudioResponse, error) {
		assert.Equal(t, openai.Whisper1, req.Model)
		assert.Equal(t, "/ws/audio.wav", req.FilePath)
		assert.Empty(t, req.Language)
		return openai.AudioResponse{Text: "bonjour", Language: "french"}, nil
	}}

	tr, err := NewOpenAI(client, "", "auto", "").Transcribe(context.Background(), "/ws/audio.wav")
	require.NoError(t, err)
	assert.Equal(t, media.Transcript{Text: "bonjour", Language: "french"}, tr)

	failing := &MockAudioClient{CreateTranscriptionFunc: func(ctx context.Context, req openai.AudioRequest) (openai.AudioResponse, error) {
		return openai.AudioResponse{}, errors.New("401")
	}}
	_, err = NewOpenAI(failing, "whisper-1", "", "").Transcribe(context.Background(), "/ws/audio.wav")
	assert.ErrorContains(t, err, "create transcription")
}

func TestLimitHonoursContext(t *testing.T) {
	block := make(chan struct{})
	engine := Limit(&MockEngine{TranscribeFunc: func(ctx context.Context, audioPath string) (media.Transcript, error) {
		<-block
		return media.Transcript{}, nil
	}}, 1)

	done := make(chan struct{})
	go func() {
		_, _ = engine.Transcribe(context.Background(), "a.wav")
		close(done)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := engine.Transcribe(ctx, "b.wav")
	assert.ErrorIs(t, err, context.Canceled)

	close(block)
	<-done
}
