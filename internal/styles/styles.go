// Package styles implements the style vector algebra: centroids of voice
// groups and interpolation between two style vectors.
package styles

import "fmt"

// DimensionMismatchError indicates vectors of different lengths were
// combined. Averaging or interpolating incompatible shapes is always an
// error, never a silent broadcast.
type DimensionMismatchError struct {
	Want int
	Got  int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("style vector dimension mismatch: %d vs %d", e.Want, e.Got)
}

// Interpolate computes a new style vector between (or beyond) source and
// target. With midpoint = (source+target)/2 and delta = target-source, the
// result is midpoint + delta*factor/2 elementwise:
//
//	factor  0 -> midpoint
//	factor  1 -> target
//	factor -1 -> source
//
// Factors outside [-1, 1] extrapolate past an endpoint and are an intended
// use case; the factor is never clamped.
func Interpolate(source, target []float32, factor float64) ([]float32, error) {
	if len(source) != len(target) {
		return nil, &DimensionMismatchError{Want: len(source), Got: len(target)}
	}

	// Computed in the equivalent affine form so the endpoints come out
	// exact: source*(1-factor)/2 + target*(1+factor)/2
	ws := (1 - factor) / 2
	wt := (1 + factor) / 2
	result := make([]float32, len(source))
	for i := range source {
		result[i] = float32(float64(source[i])*ws + float64(target[i])*wt)
	}
	return result, nil
}

// Centroid returns the elementwise arithmetic mean of a group of style
// vectors. A group of one returns a copy of that vector unchanged.
func Centroid(vectors [][]float32) ([]float32, error) {
	if len(vectors) == 0 {
		return nil, fmt.Errorf("centroid of empty group is undefined")
	}

	dim := len(vectors[0])
	for _, v := range vectors {
		if len(v) != dim {
			return nil, &DimensionMismatchError{Want: dim, Got: len(v)}
		}
	}

	if len(vectors) == 1 {
		out := make([]float32, dim)
		copy(out, vectors[0])
		return out, nil
	}

	// Sum in float64 to keep the mean stable for larger groups
	sums := make([]float64, dim)
	for _, v := range vectors {
		for i, x := range v {
			sums[i] += float64(x)
		}
	}

	n := float64(len(vectors))
	out := make([]float32, dim)
	for i, s := range sums {
		out[i] = float32(s / n)
	}
	return out, nil
}
