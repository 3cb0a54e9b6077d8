package caption

import (
	"context"
	"image"

	"github.com/nguyentantai21042004/clipdigest/pkg/semaphore"
)

type limitedModel struct {
	next Model
	sem  *semaphore.Semaphore
}

// Limit bounds concurrent calls into m across every request sharing it.
func Limit(m Model, n int) Model {
	return &limitedModel{next: m, sem: semaphore.New(n)}
}

func (m *limitedModel) Caption(ctx context.Context, img image.Image) (string, error) {
	if err := m.sem.Acquire(ctx); err != nil {
		return "", err
	}
	defer m.sem.Release()
	return m.next.Caption(ctx, img)
}
