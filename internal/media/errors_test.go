package media

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	repair := NewError(KindRepair, StageRepair, "remux failed", errors.New("exit status 1"))

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, ""},
		{"classified", repair, KindRepair},
		{"wrapped classified", fmt.Errorf("repair: %w", repair), KindRepair},
		{"cancelled", context.Canceled, KindCancelled},
		{"deadline wrapped", fmt.Errorf("probe: %w", context.DeadlineExceeded), KindCancelled},
		{"plain error", errors.New("boom"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	err := NewError(KindNoFrames, StageSampling, "video has no frames", nil)
	assert.Equal(t, "sampling (no_frames): video has no frames", err.Error())

	cause := errors.New("exit status 1")
	err = NewError(KindRepair, StageRepair, "remux failed", cause).WithDiagnostics("moov atom not found")
	assert.Equal(t, "repair (repair_failed): remux failed: exit status 1", err.Error())
	assert.Equal(t, "moov atom not found", err.Diagnostics)
	assert.ErrorIs(t, err, cause)
}

func TestAsError(t *testing.T) {
	e := AsError(context.Canceled, StageCaption)
	assert.Equal(t, KindCancelled, e.Kind)
	assert.Equal(t, StageCaption, e.Stage)
	assert.Equal(t, "request cancelled", e.Message)

	orig := NewError(KindCaption, StageCaption, "caption failed", nil)
	assert.Same(t, orig, AsError(fmt.Errorf("wrap: %w", orig), StageSummary))
}

func TestFrameSampleIndices(t *testing.T) {
	s := FrameSample{{Index: 0}, {Index: 149}, {Index: 299}}
	assert.Equal(t, []int{0, 149, 299}, s.Indices())
}
