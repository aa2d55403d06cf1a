package detection

// Instance is a single annotated object in an image.
type Instance struct {
	Bbox  BoundingBox `json:"bbox"       yaml:"bbox"`
	Label int64       `json:"bbox_label" yaml:"bbox_label"`
	// IsGroupOf marks boxes that enclose a group of objects rather than a
	// single instance. Engines match these by overlap instead of IoU.
	IsGroupOf bool `json:"is_group_of" yaml:"is_group_of"`
}

// Prediction holds the detector output for one image. Bboxes, Scores and
// Labels are rank-aligned and share one length.
type Prediction struct {
	Bboxes []BoundingBox
	Scores []float32
	Labels []int64
}

// Len returns the number of detections in the prediction.
func (p Prediction) Len() int {
	return len(p.Scores)
}

// GroundTruth holds the annotations for one image. ImageLevelLabels is nil
// when the image carries no weak image-level supervision; that is not an
// error.
type GroundTruth struct {
	Instances        []Instance
	ImageLevelLabels []int64
}
