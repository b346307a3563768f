package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/unixpickle/model3d/model3d"
)

// A VectorFlag is a flag.Value that parses comma-delimited 3D vectors, e.g. "0.8,0.2,0".
type VectorFlag struct {
	Value model3d.Coord3D
}

func (v *VectorFlag) String() string {
	var parts [3]string
	for i, x := range v.Value.Array() {
		parts[i] = strconv.FormatFloat(x, 'f', -1, 64)
	}
	return strings.Join(parts[:], ",")
}

func (v *VectorFlag) Set(s string) error {
	res, err := parseFloats(s, 3)
	if err != nil {
		return err
	}
	v.Value = model3d.XYZ(res[0], res[1], res[2])
	return nil
}

// A DragFlag is a flag.Value that parses a pointer drag in pixels as "dx,dy".
type DragFlag struct {
	DX, DY float64
	set    bool
}

func (d *DragFlag) String() string {
	if !d.set {
		return ""
	}
	return strconv.FormatFloat(d.DX, 'f', -1, 64) + "," + strconv.FormatFloat(d.DY, 'f', -1, 64)
}

func (d *DragFlag) Set(s string) error {
	res, err := parseFloats(s, 2)
	if err != nil {
		return err
	}
	d.DX, d.DY, d.set = res[0], res[1], true
	return nil
}

// IsSet reports whether the flag was given.
func (d *DragFlag) IsSet() bool {
	return d.set
}

// parseFloats splits s on commas into exactly n numbers.
func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma-separated values: %s", n, s)
	}
	res := make([]float64, n)
	for i, x := range parts {
		x = strings.TrimSpace(x)
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid component '%s' in '%s': %w", x, s, err)
		}
		res[i] = f
	}
	return res, nil
}
