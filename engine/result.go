package engine

// ClasswiseResult carries the statistics for one class, indexed by
// threshold-pair index then scale-range index.
type ClasswiseResult struct {
	// NumGts counts ground-truth instances, [threshold][scale].
	NumGts [][]int `json:"num_gts"`
	// NumDets counts accumulated detections for the class.
	NumDets int `json:"num_dets"`
	// Recalls holds the recall curve along increasing score rank,
	// [threshold][scale][rank]. Curves are non-decreasing and may be empty.
	Recalls [][][]float64 `json:"recalls"`
	// AP holds the average precision, [threshold][scale].
	AP [][]float64 `json:"ap"`
}

// Recall returns the final recall at a threshold/scale combination, or 0
// when the curve is empty.
func (c ClasswiseResult) Recall(i, j int) float64 {
	curve := c.Recalls[i][j]
	if len(curve) == 0 {
		return 0
	}
	return curve[len(curve)-1]
}

// Result is the output of one Compute call.
type Result struct {
	// Scalars maps aggregate metric names to values, e.g. "mAP".
	Scalars map[string]float64 `json:"scalars"`
	// Classwise is index-aligned with Config.Classes.
	Classwise []ClasswiseResult `json:"classwise"`
}
