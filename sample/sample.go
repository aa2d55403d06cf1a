// Package sample - Framework-native per-image evaluation samples.
//
// A DetSample carries the tensor-backed detector output and the annotation
// instances for one image, exactly as the evaluation harness hands them
// over. Conversion to plain-data records copies the tensors to host memory
// and validates dtype and alignment; conversion errors propagate unmodified
// to the caller.
package sample

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"

	"github.com/nvr-ai/go-eval/detection"
)

// PredInstances holds the raw detector output tensors for one image.
// Bboxes is (N, 4) float32 in corner form, Scores is (N,) float32 and
// Labels is (N,) integer, all rank-aligned.
type PredInstances struct {
	Bboxes *tensor.Dense
	Scores *tensor.Dense
	Labels *tensor.Dense
}

// DetSample is one image's worth of predictions and annotations.
type DetSample struct {
	PredInstances PredInstances
	// Instances are the annotated ground-truth objects.
	Instances []detection.Instance
	// ImageLevelLabels is the optional weak image-level supervision. Nil
	// means none, not an error.
	ImageLevelLabels *tensor.Dense
}

// Prediction copies the tensor-backed fields into a host-memory record.
func (p PredInstances) Prediction() (detection.Prediction, error) {
	boxes, err := float32Slice(p.Bboxes, "bboxes")
	if err != nil {
		return detection.Prediction{}, err
	}
	scores, err := float32Slice(p.Scores, "scores")
	if err != nil {
		return detection.Prediction{}, err
	}
	labels, err := int64Slice(p.Labels, "labels")
	if err != nil {
		return detection.Prediction{}, err
	}

	if len(boxes) != 4*len(scores) || len(scores) != len(labels) {
		return detection.Prediction{}, errors.Errorf(
			"misaligned prediction arrays: %d box values, %d scores, %d labels",
			len(boxes), len(scores), len(labels))
	}

	pred := detection.Prediction{
		Bboxes: make([]detection.BoundingBox, len(scores)),
		Scores: scores,
		Labels: labels,
	}
	for i := range pred.Bboxes {
		pred.Bboxes[i] = detection.BoundingBox{
			X1: boxes[4*i],
			Y1: boxes[4*i+1],
			X2: boxes[4*i+2],
			Y2: boxes[4*i+3],
		}
	}
	return pred, nil
}

// GroundTruth assembles the annotation record for the sample.
func (s DetSample) GroundTruth() (detection.GroundTruth, error) {
	gt := detection.GroundTruth{Instances: s.Instances}
	if s.ImageLevelLabels != nil {
		labels, err := int64Slice(s.ImageLevelLabels, "image_level_labels")
		if err != nil {
			return detection.GroundTruth{}, err
		}
		gt.ImageLevelLabels = labels
	}
	return gt, nil
}

// Data() collapses scalar-shaped tensors to a bare value, so both forms
// are accepted here.
func float32Slice(t *tensor.Dense, field string) ([]float32, error) {
	if t == nil {
		return nil, errors.Errorf("missing %s tensor", field)
	}
	if t.Size() == 0 {
		return []float32{}, nil
	}

	switch data := t.Data().(type) {
	case []float32:
		return data, nil
	case float32:
		return []float32{data}, nil
	default:
		return nil, errors.Errorf("%s tensor has dtype %v, want float32", field, t.Dtype())
	}
}

func int64Slice(t *tensor.Dense, field string) ([]int64, error) {
	if t == nil {
		return nil, errors.Errorf("missing %s tensor", field)
	}
	if t.Size() == 0 {
		return []int64{}, nil
	}

	switch data := t.Data().(type) {
	case []int64:
		return data, nil
	case int64:
		return []int64{data}, nil
	case []int32:
		out := make([]int64, len(data))
		for i, v := range data {
			out[i] = int64(v)
		}
		return out, nil
	case int32:
		return []int64{int64(data)}, nil
	case []int:
		out := make([]int64, len(data))
		for i, v := range data {
			out[i] = int64(v)
		}
		return out, nil
	case int:
		return []int64{int64(data)}, nil
	default:
		return nil, errors.Errorf("%s tensor has dtype %v, want an integer type", field, t.Dtype())
	}
}
