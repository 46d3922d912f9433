// Package terrain owns the core elevation and soil-moisture model.
//
// Responsibilities: input shape resolution, grid construction with
// scattered-data interpolation, percentile-based infrastructure placement,
// and the discrete moisture time-stepper.
// Key types: Grid, Input, Plan, Simulator, Pipeline.
//
// The package is pure computation: no file or network I/O is allowed here.
// Artifact writing lives in internal/export, rendering in internal/preview.
package terrain
