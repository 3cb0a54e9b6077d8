package caption

import "github.com/nguyentantai21042004/clipdigest/internal/logger"

// NewStage creates a Stage running at most maxParallel captions of one
// request at a time.
func NewStage(l logger.Logger, model Model, maxParallel int) Stage {
	if maxParallel < 1 {
		maxParallel = 1
	}
	return &implStage{
		l:           l,
		model:       model,
		maxParallel: maxParallel,
	}
}
