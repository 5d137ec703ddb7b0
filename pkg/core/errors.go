package core

import "errors"

var (
	// ErrSingularTransform is returned when a transform has no inverse
	ErrSingularTransform = errors.New("transform is not invertible")

	// ErrNoLight is returned when shading is requested for a world without a light source
	ErrNoLight = errors.New("world has no light source")
)
