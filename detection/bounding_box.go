// Package detection - Plain-data detection records exchanged with
// mean-average-precision engines.
package detection

import (
	"fmt"

	"github.com/chewxy/math32"
)

// BoundingBox represents an axis-aligned box in (x1, y1, x2, y2) corner form.
type BoundingBox struct {
	X1, Y1, X2, Y2 float32
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("(%f, %f), (%f, %f)", b.X1, b.Y1, b.X2, b.Y2)
}

// Area returns the area of the box. Degenerate boxes have area 0.
func (b BoundingBox) Area() float32 {
	return math32.Max(b.X2-b.X1, 0) * math32.Max(b.Y2-b.Y1, 0)
}

// Intersection calculates the overlap area between two boxes.
func (b BoundingBox) Intersection(other BoundingBox) float32 {
	w := math32.Min(b.X2, other.X2) - math32.Max(b.X1, other.X1)
	h := math32.Min(b.Y2, other.Y2) - math32.Max(b.Y1, other.Y1)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// IoU calculates the intersection over union between two boxes.
func (b BoundingBox) IoU(other BoundingBox) float32 {
	inter := b.Intersection(other)
	union := b.Area() + other.Area() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

// IoF calculates the intersection over the area of b itself. Engines use
// this overlap when matching detections against group-of ground truths.
func (b BoundingBox) IoF(other BoundingBox) float32 {
	area := b.Area()
	if area <= 0 {
		return 0
	}
	return b.Intersection(other) / area
}
