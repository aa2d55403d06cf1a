package evaltest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-eval/detection"
	"github.com/nvr-ai/go-eval/engine"
)

func box(x1, y1, x2, y2 float32) detection.BoundingBox {
	return detection.BoundingBox{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

func TestMockEngineDuplicateDetection(t *testing.T) {
	eng := NewMockEngine(engine.Config{
		Classes: []string{"cat"},
		IoUThrs: []float64{0.5},
		IoFThrs: []float64{0.5},
	})

	// Two detections over a single ground truth: the higher-scoring one
	// matches, the duplicate counts as a false positive.
	eng.Add(
		[]detection.Prediction{{
			Bboxes: []detection.BoundingBox{box(0, 0, 10, 10), box(0, 0, 10, 10)},
			Scores: []float32{0.9, 0.8},
			Labels: []int64{0, 0},
		}},
		[]detection.GroundTruth{{
			Instances: []detection.Instance{{Bbox: box(0, 0, 10, 10), Label: 0}},
		}},
	)

	res, err := eng.Compute()
	require.NoError(t, err)

	cr := res.Classwise[0]
	assert.Equal(t, 1, cr.NumGts[0][0])
	assert.Equal(t, 2, cr.NumDets)
	assert.Equal(t, []float64{1, 1}, cr.Recalls[0][0], "recall saturates after the first match")
	assert.Equal(t, 1.0, cr.AP[0][0], "the false positive ranks below the match")
}

func TestMockEngineLowOverlapIsFalsePositive(t *testing.T) {
	eng := NewMockEngine(engine.Config{
		Classes: []string{"cat"},
		IoUThrs: []float64{0.5},
		IoFThrs: []float64{0.5},
	})

	eng.Add(
		[]detection.Prediction{{
			Bboxes: []detection.BoundingBox{box(0, 0, 2, 2)},
			Scores: []float32{0.9},
			Labels: []int64{0},
		}},
		[]detection.GroundTruth{{
			Instances: []detection.Instance{{Bbox: box(0, 0, 10, 10), Label: 0}},
		}},
	)

	res, err := eng.Compute()
	require.NoError(t, err)

	cr := res.Classwise[0]
	assert.Equal(t, []float64{0}, cr.Recalls[0][0])
	assert.Equal(t, 0.0, cr.AP[0][0])
}

func TestMockEngineScaleRangeFiltersGroundTruths(t *testing.T) {
	eng := NewMockEngine(engine.Config{
		Classes:     []string{"cat"},
		IoUThrs:     []float64{0.5},
		IoFThrs:     []float64{0.5},
		ScaleRanges: []engine.ScaleRange{{}, {Min: 32, Max: 64}},
	})

	// A 10x10 ground truth sits below the (32, 64) scale range.
	eng.Add(
		[]detection.Prediction{{}},
		[]detection.GroundTruth{{
			Instances: []detection.Instance{{Bbox: box(0, 0, 10, 10), Label: 0}},
		}},
	)

	res, err := eng.Compute()
	require.NoError(t, err)

	cr := res.Classwise[0]
	assert.Equal(t, 1, cr.NumGts[0][0], "unbounded partition sees the box")
	assert.Equal(t, 0, cr.NumGts[0][1], "scale partition filters it out")
}

func TestMockEngineMatchesWithinImageOnly(t *testing.T) {
	eng := NewMockEngine(engine.Config{
		Classes: []string{"cat"},
		IoUThrs: []float64{0.5},
		IoFThrs: []float64{0.5},
	})

	// The detection lands in image 0 but the only ground truth is in
	// image 1.
	eng.Add(
		[]detection.Prediction{
			{
				Bboxes: []detection.BoundingBox{box(0, 0, 10, 10)},
				Scores: []float32{0.9},
				Labels: []int64{0},
			},
			{},
		},
		[]detection.GroundTruth{
			{},
			{Instances: []detection.Instance{{Bbox: box(0, 0, 10, 10), Label: 0}}},
		},
	)

	res, err := eng.Compute()
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Classwise[0].AP[0][0])
}

func TestMockEngineResetClearsState(t *testing.T) {
	eng := NewMockEngine(engine.Config{Classes: []string{"cat"}})

	eng.Add(
		[]detection.Prediction{{
			Bboxes: []detection.BoundingBox{box(0, 0, 10, 10)},
			Scores: []float32{0.9},
			Labels: []int64{0},
		}},
		[]detection.GroundTruth{{
			Instances: []detection.Instance{{Bbox: box(0, 0, 10, 10), Label: 0}},
		}},
	)
	eng.Reset()

	preds, gts := eng.Accumulated()
	assert.Empty(t, preds)
	assert.Empty(t, gts)
	assert.Equal(t, 1, eng.ResetCount)

	res, err := eng.Compute()
	require.NoError(t, err)
	assert.Equal(t, 0, res.Classwise[0].NumDets)
	assert.Equal(t, 0.0, res.Scalars["mAP"])
}
