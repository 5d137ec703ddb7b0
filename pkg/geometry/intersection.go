package geometry

import (
	"cmp"
	"slices"
)

// Intersection records where a ray crosses an object's surface
type Intersection struct {
	T      float64
	Object *Object
}

// NewIntersection creates a new intersection
func NewIntersection(t float64, obj *Object) Intersection {
	return Intersection{T: t, Object: obj}
}

// Intersections is a list of intersections, usually sorted by T
type Intersections []Intersection

// Hit returns the intersection with the smallest non-negative T.
// The slice does not need to be sorted.
func (xs Intersections) Hit() (Intersection, bool) {
	var hit Intersection
	found := false
	for _, x := range xs {
		if x.T < 0 {
			continue
		}
		if !found || x.T < hit.T {
			hit = x
			found = true
		}
	}
	return hit, found
}

// SortIntersections sorts xs by ascending T. Equal T values keep their order.
func SortIntersections(xs Intersections) {
	slices.SortStableFunc(xs, func(a, b Intersection) int {
		return cmp.Compare(a.T, b.T)
	})
}
