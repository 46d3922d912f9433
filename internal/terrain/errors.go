package terrain

import "errors"

// Fatal error taxonomy for the core pipeline. These propagate to the caller
// unmodified (wrap with %w only) and are matchable with errors.Is.
//
// Degenerate elevation ranges are deliberately NOT an error: normalization
// and export substitute a defined flat fallback and surface the condition as
// a warning flag instead.
var (
	// ErrUnsupportedFormat indicates input that matches neither a
	// rectangular elevation matrix nor a point-cloud sample list, or a
	// point cloud too thin to define an interpolation surface.
	ErrUnsupportedFormat = errors.New("terrain: unsupported input format")

	// ErrEmptyInput indicates zero rows or zero samples.
	ErrEmptyInput = errors.New("terrain: empty input")

	// ErrNotInitialized indicates Step was called before Initialize.
	ErrNotInitialized = errors.New("terrain: simulator not initialized")
)
