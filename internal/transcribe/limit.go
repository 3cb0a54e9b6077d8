package transcribe

import (
	"context"

	"github.com/nguyentantai21042004/clipdigest/internal/media"
	"github.com/nguyentantai21042004/clipdigest/pkg/semaphore"
)

type limitedEngine struct {
	next Engine
	sem  *semaphore.Semaphore
}

// Limit bounds concurrent calls into e across every request sharing it.
func Limit(e Engine, n int) Engine {
	return &limitedEngine{next: e, sem: semaphore.New(n)}
}

func (e *limitedEngine) AudioFormat() AudioFormat {
	return e.next.AudioFormat()
}

func (e *limitedEngine) Transcribe(ctx context.Context, audioPath string) (media.Transcript, error) {
	if err := e.sem.Acquire(ctx); err != nil {
		return media.Transcript{}, err
	}
	defer e.sem.Release()
	return e.next.Transcribe(ctx, audioPath)
}
