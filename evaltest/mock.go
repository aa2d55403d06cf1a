// Package evaltest provides deterministic collaborator doubles for
// exercising the evaluation adapter without a production metric engine.
package evaltest

import (
	"fmt"
	"sort"
	"sync"

	"github.com/nvr-ai/go-eval/detection"
	"github.com/nvr-ai/go-eval/engine"
)

// MockEngine is a single-process engine.Engine double.
//
// It performs a deliberately simple greedy match per class: detections in
// descending score order claim the best-overlapping unmatched ground truth
// at or above the IoU threshold, and average precision is integrated with
// the all-points rule. Image-level labels and group-of flags are stored
// but not consulted. It exists to exercise the adapter contract in tests;
// it is not a substitute for a production engine.
type MockEngine struct {
	mu  sync.Mutex
	cfg engine.Config

	predictions  []detection.Prediction
	groundtruths []detection.GroundTruth

	// AddCalls records the (predictions, groundtruths) lengths of each Add
	// invocation, in order.
	AddCalls [][2]int
	// ResetCount counts Reset invocations.
	ResetCount int
}

// NewMockEngine creates a mock engine with the given configuration.
func NewMockEngine(cfg engine.Config) *MockEngine {
	return &MockEngine{cfg: cfg}
}

// Config implements engine.Engine.
func (m *MockEngine) Config() engine.Config {
	return m.cfg
}

// Add implements engine.Engine.
func (m *MockEngine) Add(predictions []detection.Prediction, groundtruths []detection.GroundTruth) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.predictions = append(m.predictions, predictions...)
	m.groundtruths = append(m.groundtruths, groundtruths...)
	m.AddCalls = append(m.AddCalls, [2]int{len(predictions), len(groundtruths)})
}

// Reset implements engine.Engine.
func (m *MockEngine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.predictions = nil
	m.groundtruths = nil
	m.ResetCount++
}

// Accumulated returns the accumulation state for inspection.
func (m *MockEngine) Accumulated() ([]detection.Prediction, []detection.GroundTruth) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]detection.Prediction(nil), m.predictions...),
		append([]detection.GroundTruth(nil), m.groundtruths...)
}

// Compute implements engine.Engine. It does not mutate the accumulation
// state.
func (m *MockEngine) Compute() (*engine.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pairs := m.cfg.ThresholdPairs()
	scales := m.cfg.EffectiveScaleRanges()

	classwise := make([]engine.ClasswiseResult, len(m.cfg.Classes))
	for k := range m.cfg.Classes {
		classwise[k] = m.computeClass(int64(k), pairs, scales)
	}

	scalars := make(map[string]float64, len(pairs)+1)
	total := 0.0
	for i, pair := range pairs {
		combined := 0.0
		for j := range scales {
			combined += meanAP(classwise, i, j)
		}
		combined /= float64(len(scales))
		scalars[fmt.Sprintf("mAP@%v", pair[0])] = combined
		total += combined
	}
	scalars["mAP"] = total / float64(len(pairs))

	return &engine.Result{Scalars: scalars, Classwise: classwise}, nil
}

type scoredBox struct {
	box   detection.BoundingBox
	score float32
	image int
}

func (m *MockEngine) computeClass(label int64, pairs [][2]float64, scales []engine.ScaleRange) engine.ClasswiseResult {
	var dets []scoredBox
	for img, pred := range m.predictions {
		for d := 0; d < pred.Len(); d++ {
			if pred.Labels[d] != label {
				continue
			}
			dets = append(dets, scoredBox{box: pred.Bboxes[d], score: pred.Scores[d], image: img})
		}
	}
	sort.SliceStable(dets, func(a, b int) bool {
		return dets[a].score > dets[b].score
	})

	result := engine.ClasswiseResult{
		NumGts:  make([][]int, len(pairs)),
		NumDets: len(dets),
		Recalls: make([][][]float64, len(pairs)),
		AP:      make([][]float64, len(pairs)),
	}

	for i, pair := range pairs {
		result.NumGts[i] = make([]int, len(scales))
		result.Recalls[i] = make([][]float64, len(scales))
		result.AP[i] = make([]float64, len(scales))

		for j, scale := range scales {
			gts := m.classGroundTruths(label, scale)

			numGts := 0
			for _, boxes := range gts {
				numGts += len(boxes)
			}
			result.NumGts[i][j] = numGts

			recalls, ap := matchGreedy(dets, gts, pair[0], numGts)
			result.Recalls[i][j] = recalls
			result.AP[i][j] = ap
		}
	}

	return result
}

// classGroundTruths collects per-image ground-truth boxes of one class
// inside a scale range.
func (m *MockEngine) classGroundTruths(label int64, scale engine.ScaleRange) map[int][]detection.BoundingBox {
	gts := make(map[int][]detection.BoundingBox)
	for img, gt := range m.groundtruths {
		for _, inst := range gt.Instances {
			if inst.Label != label || !scale.Contains(float64(inst.Bbox.Area())) {
				continue
			}
			gts[img] = append(gts[img], inst.Bbox)
		}
	}
	return gts
}

// matchGreedy walks detections in score order, claiming the
// best-overlapping unmatched ground truth at or above iouThr. It returns
// the recall curve along score rank and the all-points average precision.
func matchGreedy(dets []scoredBox, gts map[int][]detection.BoundingBox, iouThr float64, numGts int) ([]float64, float64) {
	matched := make(map[int][]bool, len(gts))
	for img, boxes := range gts {
		matched[img] = make([]bool, len(boxes))
	}

	recalls := make([]float64, 0, len(dets))
	tp := 0
	sumPrecision := 0.0

	for rank, det := range dets {
		best := -1
		bestIoU := float32(iouThr)
		for g, gtBox := range gts[det.image] {
			if matched[det.image][g] {
				continue
			}
			if iou := det.box.IoU(gtBox); iou >= bestIoU {
				best = g
				bestIoU = iou
			}
		}

		if best >= 0 {
			matched[det.image][best] = true
			tp++
			sumPrecision += float64(tp) / float64(rank+1)
		}

		if numGts > 0 {
			recalls = append(recalls, float64(tp)/float64(numGts))
		} else {
			recalls = append(recalls, 0)
		}
	}

	ap := 0.0
	if numGts > 0 {
		ap = sumPrecision / float64(numGts)
	}
	return recalls, ap
}

func meanAP(classwise []engine.ClasswiseResult, i, j int) float64 {
	sum := 0.0
	count := 0
	for _, cr := range classwise {
		if cr.NumGts[i][j] > 0 {
			sum += cr.AP[i][j]
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
