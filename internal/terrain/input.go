package terrain

import (
	"encoding/json"
	"fmt"
)

// InputKind identifies which of the two accepted elevation input shapes a
// decoded Input carries.
type InputKind int

const (
	// MatrixInput is a rectangular matrix of elevation samples already on
	// a uniform grid (a JSON 2D array with equal-length rows).
	MatrixInput InputKind = iota
	// PointCloudInput is an unordered collection of scattered 3D samples
	// (a JSON list of {x, y, z} records; duplicates permitted).
	PointCloudInput
)

func (k InputKind) String() string {
	switch k {
	case MatrixInput:
		return "matrix"
	case PointCloudInput:
		return "point_cloud"
	default:
		return fmt.Sprintf("InputKind(%d)", int(k))
	}
}

// Sample is one scattered elevation measurement in world coordinates.
type Sample struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Input is the tagged variant produced by DecodeInput. The raw payload is
// inspected exactly once at ingestion; downstream code switches on Kind and
// never re-inspects shapes.
type Input struct {
	Kind   InputKind
	Matrix [][]float64 // valid when Kind == MatrixInput
	Points []Sample    // valid when Kind == PointCloudInput
}

// DecodeInput resolves a raw telemetry payload into a tagged Input.
//
// Exactly the two documented shapes are accepted. A point cloud wrapped in an
// extra level of nesting is rejected with ErrUnsupportedFormat rather than
// silently unwrapped. An empty array (which parses as either shape) is
// ErrEmptyInput. A matrix with ragged rows is ErrUnsupportedFormat.
func DecodeInput(raw []byte) (*Input, error) {
	var probe []json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("%w: payload is not a JSON array", ErrUnsupportedFormat)
	}
	if len(probe) == 0 {
		return nil, ErrEmptyInput
	}

	var matrix [][]float64
	if err := json.Unmarshal(raw, &matrix); err == nil {
		cols := len(matrix[0])
		if cols == 0 {
			return nil, ErrEmptyInput
		}
		for i, row := range matrix {
			if len(row) != cols {
				return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrUnsupportedFormat, i, len(row), cols)
			}
		}
		return &Input{Kind: MatrixInput, Matrix: matrix}, nil
	}

	var points []Sample
	if err := json.Unmarshal(raw, &points); err == nil {
		return &Input{Kind: PointCloudInput, Points: points}, nil
	}

	return nil, fmt.Errorf("%w: expected a 2D elevation array or a list of {x,y,z} records", ErrUnsupportedFormat)
}
