package progress

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trebuchet-org/txprep/internal/usecase"
)

func TestSpinnerProgressReporter(t *testing.T) {
	ctx := context.Background()

	t.Run("tracks pipeline stages", func(t *testing.T) {
		var out bytes.Buffer
		r := NewSpinnerProgressReporterTo(&out)

		for _, stage := range []usecase.PrepareState{
			usecase.StateFeeDataFetched,
			usecase.StateClassified,
			usecase.StateCoinPath,
			usecase.StateValidated,
			usecase.StateGasEstimated,
			usecase.StatePrepared,
		} {
			r.OnProgress(ctx, usecase.ProgressEvent{Stage: string(stage)})
		}

		summary := r.Summary()
		assert.Contains(t, summary, "✓ Fee data")
		assert.Contains(t, summary, "✓ Gas estimate")
		assert.Contains(t, summary, "✓ Prepared")
		assert.NotContains(t, summary, "Coin")
		assert.Len(t, r.stages, 6)
	})

	t.Run("rejected run is marked failed", func(t *testing.T) {
		r := NewSpinnerProgressReporterTo(&bytes.Buffer{})

		r.OnProgress(ctx, usecase.ProgressEvent{Stage: string(usecase.StateFeeDataFetched)})
		r.OnProgress(ctx, usecase.ProgressEvent{Stage: string(usecase.StateUnchanged), Message: "amount: NotEnoughBalance"})

		summary := r.Summary()
		assert.Contains(t, summary, "✗ Rejected amount: NotEnoughBalance")
	})

	t.Run("info and error write to the output", func(t *testing.T) {
		var out bytes.Buffer
		r := NewSpinnerProgressReporterTo(&out)

		r.Info("hello")
		r.Error("boom")

		assert.Contains(t, out.String(), "hello")
		assert.Contains(t, out.String(), "boom")
	})
}

func TestStageLabel(t *testing.T) {
	assert.Equal(t, "Gas estimate", StageLabel(string(usecase.StateGasEstimated)))
	assert.Equal(t, "Coin Path", StageLabel(string(usecase.StateCoinPath)))
	assert.Equal(t, "Token Path", StageLabel(string(usecase.StateTokenPath)))
}
