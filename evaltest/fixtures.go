package evaltest

import (
	"gorgonia.org/tensor"

	"github.com/nvr-ai/go-eval/detection"
	"github.com/nvr-ai/go-eval/sample"
)

// NewPredInstances builds tensor-backed predicted instances from host
// slices. Empty inputs produce empty tensors, not nil ones.
func NewPredInstances(boxes [][4]float32, scores []float32, labels []int64) sample.PredInstances {
	flat := make([]float32, 0, len(boxes)*4)
	for _, b := range boxes {
		flat = append(flat, b[0], b[1], b[2], b[3])
	}

	return sample.PredInstances{
		Bboxes: dense(tensor.Float32, []int{len(boxes), 4}, flat),
		Scores: dense(tensor.Float32, []int{len(scores)}, scores),
		Labels: dense(tensor.Int64, []int{len(labels)}, labels),
	}
}

// NewDetSample assembles a data sample from host slices. A nil imageLabels
// slice means no image-level supervision.
func NewDetSample(pred sample.PredInstances, instances []detection.Instance, imageLabels []int64) sample.DetSample {
	s := sample.DetSample{
		PredInstances: pred,
		Instances:     instances,
	}
	if imageLabels != nil {
		s.ImageLevelLabels = dense(tensor.Int64, []int{len(imageLabels)}, imageLabels)
	}
	return s
}

func dense(dt tensor.Dtype, shape []int, backing interface{}) *tensor.Dense {
	size := 1
	for _, s := range shape {
		size *= s
	}
	if size == 0 {
		return tensor.New(tensor.Of(dt), tensor.WithShape(shape...))
	}
	return tensor.New(tensor.WithShape(shape...), tensor.WithBacking(backing))
}
