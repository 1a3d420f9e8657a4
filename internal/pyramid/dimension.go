package pyramid

import "math"

// Kind identifies one measured dimension of a square pyramid.
type Kind int

// Kinds in report order. The zero value is BaseLength.
const (
	// Lengths
	BaseLength Kind = iota
	Height
	BasePerimeter
	BaseDiagonal
	SlantLength
	LateralEdgeLength

	// Angles (radians)
	WestEastCornerAngle
	WestEastVertexAngle
	LateralFaceCornerAngle
	LateralFaceVertexAngle
	SouthwestNortheastCornerAngle
	SouthwestNortheastVertexAngle
	RightAngle
	NinetyDegreesMinusSlantAngle

	// Areas
	BaseArea
	LateralFaceArea
	SurfaceAreaNotIncludingBase
	SurfaceAreaIncludingBase

	// Volume
	Volume

	numKinds
)

// Family classifies a Kind by physical meaning. Ratios are only searched
// within a family, never across.
type Family int

const (
	FamilyLength Family = iota
	FamilyAngle
	FamilyArea
	FamilyVolume
)

// Kinds returns every dimension kind in report order.
func Kinds() []Kind {
	kinds := make([]Kind, numKinds)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// Valid reports whether k is a known dimension kind.
func (k Kind) Valid() bool {
	return k >= BaseLength && k < numKinds
}

// String returns the upper snake case name used in search results.
func (k Kind) String() string {
	switch k {
	case BaseLength:
		return "BASE_LENGTH"
	case Height:
		return "HEIGHT"
	case BasePerimeter:
		return "BASE_PERIMETER"
	case BaseDiagonal:
		return "BASE_DIAGONAL"
	case SlantLength:
		return "SLANT_LENGTH"
	case LateralEdgeLength:
		return "LATERAL_EDGE_LENGTH"
	case WestEastCornerAngle:
		return "WEST_EAST_CROSS_SECTION_CORNER_ANGLE"
	case WestEastVertexAngle:
		return "WEST_EAST_CROSS_SECTION_VERTEX_ANGLE"
	case LateralFaceCornerAngle:
		return "LATERAL_FACE_CORNER_ANGLE"
	case LateralFaceVertexAngle:
		return "LATERAL_FACE_VERTEX_ANGLE"
	case SouthwestNortheastCornerAngle:
		return "SOUTHWEST_NORTHEAST_CROSS_SECTION_CORNER_ANGLE"
	case SouthwestNortheastVertexAngle:
		return "SOUTHWEST_NORTHEAST_CROSS_SECTION_VERTEX_ANGLE"
	case RightAngle:
		return "RIGHT_ANGLE"
	case NinetyDegreesMinusSlantAngle:
		return "NINETY_DEGREES_MINUS_SLANT_ANGLE"
	case BaseArea:
		return "BASE_AREA"
	case LateralFaceArea:
		return "LATERAL_FACE_AREA"
	case SurfaceAreaNotIncludingBase:
		return "SURFACE_AREA_NOT_INCLUDING_BASE"
	case SurfaceAreaIncludingBase:
		return "SURFACE_AREA_INCLUDING_BASE"
	case Volume:
		return "VOLUME"
	default:
		return "UNKNOWN"
	}
}

// Label returns the lower case label used in the text report.
func (k Kind) Label() string {
	switch k {
	case BaseLength:
		return "base length"
	case Height:
		return "height"
	case BasePerimeter:
		return "base perimeter"
	case BaseDiagonal:
		return "base diagonal"
	case SlantLength:
		return "slant length"
	case LateralEdgeLength:
		return "lateral edge length"
	case WestEastCornerAngle:
		return "west-east cross-section corner angle"
	case WestEastVertexAngle:
		return "west-east cross-section vertex angle"
	case LateralFaceCornerAngle:
		return "lateral face corner angle"
	case LateralFaceVertexAngle:
		return "lateral face vertex angle"
	case SouthwestNortheastCornerAngle:
		return "southwest-northeast cross-section corner angle"
	case SouthwestNortheastVertexAngle:
		return "southwest-northeast cross-section vertex angle"
	case RightAngle:
		return "right angle"
	case NinetyDegreesMinusSlantAngle:
		return "90 - slant angle"
	case BaseArea:
		return "base area"
	case LateralFaceArea:
		return "lateral face area"
	case SurfaceAreaNotIncludingBase:
		return "surface area not including base"
	case SurfaceAreaIncludingBase:
		return "surface area including base"
	case Volume:
		return "volume"
	default:
		return "unknown"
	}
}

// Family returns the family k belongs to.
func (k Kind) Family() Family {
	switch {
	case k <= LateralEdgeLength:
		return FamilyLength
	case k <= NinetyDegreesMinusSlantAngle:
		return FamilyAngle
	case k <= SurfaceAreaIncludingBase:
		return FamilyArea
	default:
		return FamilyVolume
	}
}

func (f Family) String() string {
	switch f {
	case FamilyLength:
		return "length"
	case FamilyAngle:
		return "angle"
	case FamilyArea:
		return "area"
	case FamilyVolume:
		return "volume"
	default:
		return "unknown"
	}
}

// Dimension is a labelled measurement.
type Dimension struct {
	Kind  Kind
	Value float64
}

// Degrees converts an angle in radians to degrees.
func Degrees(radians float64) float64 {
	return radians * 180.0 / math.Pi
}

// Display returns the value as shown in reports: angles in degrees, the rest
// unchanged.
func (d Dimension) Display() float64 {
	if d.Kind.Family() == FamilyAngle {
		return Degrees(d.Value)
	}
	return d.Value
}
