package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"

	"github.com/nvr-ai/go-eval/detection"
)

func TestPredictionConversion(t *testing.T) {
	pred := PredInstances{
		Bboxes: tensor.New(
			tensor.WithShape(2, 4),
			tensor.WithBacking([]float32{0, 0, 10, 10, 5, 5, 20, 20}),
		),
		Scores: tensor.New(tensor.WithShape(2), tensor.WithBacking([]float32{0.9, 0.4})),
		Labels: tensor.New(tensor.WithShape(2), tensor.WithBacking([]int64{0, 3})),
	}

	got, err := pred.Prediction()
	require.NoError(t, err)

	assert.Equal(t, 2, got.Len())
	assert.Equal(t, detection.BoundingBox{X1: 0, Y1: 0, X2: 10, Y2: 10}, got.Bboxes[0])
	assert.Equal(t, detection.BoundingBox{X1: 5, Y1: 5, X2: 20, Y2: 20}, got.Bboxes[1])
	assert.Equal(t, []float32{0.9, 0.4}, got.Scores)
	assert.Equal(t, []int64{0, 3}, got.Labels)
}

func TestPredictionConversionInt32Labels(t *testing.T) {
	pred := PredInstances{
		Bboxes: tensor.New(tensor.WithShape(1, 4), tensor.WithBacking([]float32{0, 0, 1, 1})),
		Scores: tensor.New(tensor.WithShape(1), tensor.WithBacking([]float32{0.5})),
		Labels: tensor.New(tensor.WithShape(1), tensor.WithBacking([]int32{7})),
	}

	got, err := pred.Prediction()
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, got.Labels)
}

func TestPredictionConversionMissingField(t *testing.T) {
	pred := PredInstances{
		Scores: tensor.New(tensor.WithShape(1), tensor.WithBacking([]float32{0.5})),
		Labels: tensor.New(tensor.WithShape(1), tensor.WithBacking([]int64{0})),
	}

	_, err := pred.Prediction()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bboxes")
}

func TestPredictionConversionWrongDtype(t *testing.T) {
	pred := PredInstances{
		Bboxes: tensor.New(tensor.WithShape(1, 4), tensor.WithBacking([]float32{0, 0, 1, 1})),
		Scores: tensor.New(tensor.WithShape(1), tensor.WithBacking([]float64{0.5})),
		Labels: tensor.New(tensor.WithShape(1), tensor.WithBacking([]int64{0})),
	}

	_, err := pred.Prediction()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scores")
}

func TestPredictionConversionMisaligned(t *testing.T) {
	pred := PredInstances{
		Bboxes: tensor.New(tensor.WithShape(1, 4), tensor.WithBacking([]float32{0, 0, 1, 1})),
		Scores: tensor.New(tensor.WithShape(2), tensor.WithBacking([]float32{0.5, 0.4})),
		Labels: tensor.New(tensor.WithShape(2), tensor.WithBacking([]int64{0, 1})),
	}

	_, err := pred.Prediction()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "misaligned")
}

func TestGroundTruthWithoutImageLevelLabels(t *testing.T) {
	s := DetSample{
		Instances: []detection.Instance{
			{Bbox: detection.BoundingBox{X1: 0, Y1: 0, X2: 10, Y2: 10}, Label: 2},
		},
	}

	gt, err := s.GroundTruth()
	require.NoError(t, err)
	assert.Len(t, gt.Instances, 1)
	assert.Nil(t, gt.ImageLevelLabels, "absent labels mean no image-level supervision")
}

func TestGroundTruthImageLevelLabels(t *testing.T) {
	s := DetSample{
		ImageLevelLabels: tensor.New(tensor.WithShape(3), tensor.WithBacking([]int64{1, 4, 9})),
	}

	gt, err := s.GroundTruth()
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 4, 9}, gt.ImageLevelLabels)
}
