package core

import (
	"errors"
	"fmt"
	"math"
)

// ZoomLevels is the ordered, ascending set of allowed zoom factors.
type ZoomLevels []float64

// DefaultZoomLevels is the sequence used when no configuration overrides it.
var DefaultZoomLevels = ZoomLevels{1, 1.5, 2, 2.5, 3, 3.5, 4}

const levelEps = 1e-9

// Validate checks that the sequence is non-empty, positive and strictly ascending.
func (z ZoomLevels) Validate() error {
	if len(z) == 0 {
		return errors.New("zoom levels: empty")
	}
	for i, l := range z {
		if l <= 0 || math.IsNaN(l) || math.IsInf(l, 0) {
			return fmt.Errorf("zoom levels: level %d is %v, must be positive", i, l)
		}
		if i > 0 && l <= z[i-1] {
			return fmt.Errorf("zoom levels: level %d (%v) not above level %d (%v)", i, l, i-1, z[i-1])
		}
	}
	return nil
}

// Min returns the smallest level.
func (z ZoomLevels) Min() float64 { return z[0] }

// Max returns the largest level.
func (z ZoomLevels) Max() float64 { return z[len(z)-1] }

// Clamp limits level to [Min, Max].
func (z ZoomLevels) Clamp(level float64) float64 {
	return Clamp(level, z.Min(), z.Max())
}

// Contains reports whether level is one of the allowed values.
func (z ZoomLevels) Contains(level float64) bool {
	for _, l := range z {
		if math.Abs(l-level) < levelEps {
			return true
		}
	}
	return false
}

// Next returns the smallest level strictly above cur, or cur at the top.
func (z ZoomLevels) Next(cur float64) float64 {
	for _, l := range z {
		if l > cur+levelEps {
			return l
		}
	}
	return cur
}

// Prev returns the largest level strictly below cur, or cur at the bottom.
func (z ZoomLevels) Prev(cur float64) float64 {
	for i := len(z) - 1; i >= 0; i-- {
		if z[i] < cur-levelEps {
			return z[i]
		}
	}
	return cur
}

// Nearest returns the allowed level closest to v. Ties go to the larger level.
func (z ZoomLevels) Nearest(v float64) float64 {
	best := z[0]
	bestD := math.Abs(v - best)
	for _, l := range z[1:] {
		d := math.Abs(v - l)
		if d <= bestD+levelEps {
			best, bestD = l, d
		}
	}
	return best
}
