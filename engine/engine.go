// Package engine - Contract consumed from external mean-average-precision
// engines.
//
// The matching, precision-recall integration and cross-process merging all
// live behind the Engine interface; this package only defines the shapes
// the adapter feeds and drains.
package engine

import "github.com/nvr-ai/go-eval/detection"

// DistBackend selects the distributed communication backend an engine uses
// to merge accumulation state across processes. The adapter treats the
// token as opaque and forwards it unchanged.
type DistBackend string

const (
	// DistBackendNone disables cross-process merging.
	DistBackendNone DistBackend = "none"
	// DistBackendAuto lets the engine pick a backend for the environment.
	DistBackendAuto DistBackend = "auto"
)

// Config carries the engine attributes consumed read-only for reporting.
type Config struct {
	// IoUThrs and IoFThrs are consumed pairwise and share one length.
	IoUThrs []float64 `json:"iou_thrs" yaml:"iou_thrs"`
	IoFThrs []float64 `json:"iof_thrs" yaml:"iof_thrs"`
	// ScaleRanges partitions results by ground-truth box scale. Empty means
	// a single unbounded partition.
	ScaleRanges []ScaleRange `json:"scale_ranges" yaml:"scale_ranges"`
	// Classes is index-aligned with classwise results.
	Classes []string `json:"classes" yaml:"classes"`
	// Backend is the distributed communication backend token.
	Backend DistBackend `json:"dist_backend" yaml:"dist_backend"`
}

// DefaultThr is the threshold applied when no IoU or IoF thresholds are
// configured.
const DefaultThr = 0.5

// ThresholdPairs zips the IoU and IoF thresholds consumed pairwise by
// reporting. Either list falls back to a single DefaultThr entry when
// unset.
func (c Config) ThresholdPairs() [][2]float64 {
	ious := c.IoUThrs
	if len(ious) == 0 {
		ious = []float64{DefaultThr}
	}
	iofs := c.IoFThrs
	if len(iofs) == 0 {
		iofs = []float64{DefaultThr}
	}

	n := len(ious)
	if len(iofs) < n {
		n = len(iofs)
	}

	pairs := make([][2]float64, n)
	for i := 0; i < n; i++ {
		pairs[i] = [2]float64{ious[i], iofs[i]}
	}
	return pairs
}

// EffectiveScaleRanges returns ScaleRanges, or the single unbounded default
// when none are configured.
func (c Config) EffectiveScaleRanges() []ScaleRange {
	if len(c.ScaleRanges) == 0 {
		return []ScaleRange{{}}
	}
	return c.ScaleRanges
}

// Engine accumulates per-image prediction/ground-truth pairs and computes
// classwise mean-average-precision statistics.
//
// Accumulation state belongs to one evaluation round: created empty,
// appended to by Add, consumed by Compute and cleared by Reset. Rounds must
// not overlap on one instance.
type Engine interface {
	// Add appends positionally aligned per-image pairs. Both slices share
	// one length and one order.
	Add(predictions []detection.Prediction, groundtruths []detection.GroundTruth)
	// Compute returns aggregate scalar metrics plus the classwise breakdown
	// over everything accumulated so far, merging across processes when a
	// distributed backend is configured.
	Compute() (*Result, error)
	// Reset clears the accumulation state.
	Reset()
	// Config exposes the threshold and class configuration for reporting.
	Config() Config
}
