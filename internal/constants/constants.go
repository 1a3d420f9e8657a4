// Package constants holds the target values the ratio search approximates
// and the earth figures used to scale the reference pyramid.
package constants

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Target constants
const (
	Pi  = math.Pi  // 3.14159...
	Phi = math.Phi // 1.61803... golden ratio
	E   = math.E   // 2.71828...
)

// Earth figures in kilometres.
const (
	EquatorialCircumferenceKm = 40075.017
	PolarRadiusKm             = 6356.752
)

// ErrUnknownTarget is returned by Lookup for names it does not know.
var ErrUnknownTarget = errors.New("unknown target constant")

// Target is a named constant to approximate.
type Target struct {
	Name  string  `mapstructure:"name"`
	Value float64 `mapstructure:"value"`
}

// DefaultTargets returns π, φ and e in that order.
func DefaultTargets() []Target {
	return []Target{
		{Name: "pi", Value: Pi},
		{Name: "phi", Value: Phi},
		{Name: "e", Value: E},
	}
}

// Lookup returns the default target with the given name, case-insensitive.
// "π", "φ" and "golden" are accepted as aliases.
func Lookup(name string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pi", "π":
		return Target{Name: "pi", Value: Pi}, nil
	case "phi", "φ", "golden":
		return Target{Name: "phi", Value: Phi}, nil
	case "e":
		return Target{Name: "e", Value: E}, nil
	default:
		return Target{}, fmt.Errorf("%w: %q", ErrUnknownTarget, name)
	}
}

// LookupAll resolves every name, stopping at the first unknown one.
func LookupAll(names []string) ([]Target, error) {
	targets := make([]Target, 0, len(names))
	for _, n := range names {
		t, err := Lookup(n)
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, nil
}

// Scalable is anything with a base perimeter and a height.
type Scalable interface {
	BasePerimeter() float64
	Height() float64
}

// EarthScale returns how many times the earth's equatorial circumference
// exceeds the base perimeter, and the polar radius the height, after
// converting kilometres to metres and dividing the pyramid figures by π/6.
func EarthScale(p Scalable) (circumference, polarRadius float64) {
	circumference = EquatorialCircumferenceKm * 1000.0 / (p.BasePerimeter() * math.Pi / 6.0)
	polarRadius = PolarRadiusKm * 1000.0 / (p.Height() * math.Pi / 6.0)
	return circumference, polarRadius
}
