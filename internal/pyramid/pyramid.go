package pyramid

import "math"

// Pyramid holds every measurement of a square pyramid derived from its base
// length and height. All values are computed in New and never change.
//
// Inputs are not validated. A zero or negative base length or height yields
// Inf or NaN in the dependent values, which the ratio search never selects.
type Pyramid struct {
	dims   [numKinds]Dimension
	layout Layout
}

// Option configures a Pyramid.
type Option func(*Pyramid)

// WithLayout replaces the default grouping used by ratio searches.
func WithLayout(layout Layout) Option {
	return func(p *Pyramid) {
		p.layout = layout
	}
}

// New creates a pyramid with the given base side length and apex height, in
// the same linear unit.
func New(baseLength, height int, opts ...Option) *Pyramid {
	p := &Pyramid{layout: FinalLayout()}
	for _, opt := range opts {
		opt(p)
	}

	l := float64(baseLength)
	h := float64(height)
	halfBase := 0.5 * l

	diagonal := math.Sqrt2 * l
	halfDiagonal := 0.5 * diagonal
	slant := math.Sqrt(halfBase*halfBase + h*h)
	lateralEdge := math.Sqrt(halfBase*halfBase + slant*slant)

	baseArea := l * l
	faceArea := l * slant * 0.5
	surfaceNoBase := 4.0 * faceArea

	p.set(BaseLength, l)
	p.set(Height, h)
	p.set(BasePerimeter, 4.0*l)
	p.set(BaseDiagonal, diagonal)
	p.set(SlantLength, slant)
	p.set(LateralEdgeLength, lateralEdge)

	slantAngle := math.Atan(h / halfBase)

	p.set(WestEastCornerAngle, slantAngle)
	p.set(WestEastVertexAngle, 2.0*math.Atan(halfBase/h))
	p.set(LateralFaceCornerAngle, math.Atan(slant/halfBase))
	p.set(LateralFaceVertexAngle, 2.0*math.Atan(halfBase/slant))
	p.set(SouthwestNortheastCornerAngle, math.Atan(h/halfDiagonal))
	p.set(SouthwestNortheastVertexAngle, 2.0*math.Atan(halfDiagonal/h))
	p.set(RightAngle, 0.5*math.Pi)
	p.set(NinetyDegreesMinusSlantAngle, 0.5*math.Pi-slantAngle)

	p.set(BaseArea, baseArea)
	p.set(LateralFaceArea, faceArea)
	p.set(SurfaceAreaNotIncludingBase, surfaceNoBase)
	p.set(SurfaceAreaIncludingBase, surfaceNoBase+baseArea)

	p.set(Volume, baseArea*h/3.0)

	return p
}

func (p *Pyramid) set(k Kind, v float64) {
	p.dims[k] = Dimension{Kind: k, Value: v}
}

// Dimension returns the measurement of kind k. Unknown kinds return a zero
// Dimension carrying k.
func (p *Pyramid) Dimension(k Kind) Dimension {
	if !k.Valid() {
		return Dimension{Kind: k}
	}
	return p.dims[k]
}

// Dimensions returns a copy of every measurement in report order.
func (p *Pyramid) Dimensions() []Dimension {
	out := make([]Dimension, numKinds)
	copy(out, p.dims[:])
	return out
}

// BaseLength returns the side length of the square base.
func (p *Pyramid) BaseLength() float64 { return p.dims[BaseLength].Value }

// Height returns the apex height.
func (p *Pyramid) Height() float64 { return p.dims[Height].Value }

// BasePerimeter returns four times the base length.
func (p *Pyramid) BasePerimeter() float64 { return p.dims[BasePerimeter].Value }

// Volume returns base area times height over three.
func (p *Pyramid) Volume() float64 { return p.dims[Volume].Value }

// HeightToBase returns height divided by base length.
func (p *Pyramid) HeightToBase() float64 {
	return p.dims[Height].Value / p.dims[BaseLength].Value
}

// Layout returns the grouping used by ratio searches.
func (p *Pyramid) Layout() Layout {
	return p.layout
}

// Groups resolves the layout into dimension values, one slice per group in
// layout order.
func (p *Pyramid) Groups() [][]Dimension {
	groups := make([][]Dimension, 0, len(p.layout))
	for _, g := range p.layout {
		groups = append(groups, p.Resolve(g))
	}
	return groups
}

// Resolve returns the dimensions named by g, in g's order. Unknown kinds are
// skipped.
func (p *Pyramid) Resolve(g Group) []Dimension {
	dims := make([]Dimension, 0, len(g.Kinds))
	for _, k := range g.Kinds {
		if k.Valid() {
			dims = append(dims, p.dims[k])
		}
	}
	return dims
}
