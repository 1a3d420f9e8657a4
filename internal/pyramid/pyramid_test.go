package pyramid_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/alexiusacademia/gopyramid/internal/pyramid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew_Khufu checks the Great Pyramid reference values.
func TestNew_Khufu(t *testing.T) {
	p := pyramid.New(440, 280)

	assert.Equal(t, 440.0, p.BaseLength())
	assert.Equal(t, 280.0, p.Height())
	assert.Equal(t, 1760.0, p.BasePerimeter(), "perimeter is 4L")
	assert.InDelta(t, 622.25, p.Dimension(pyramid.BaseDiagonal).Value, 0.01)
	assert.InDelta(t, 356.06, p.Dimension(pyramid.SlantLength).Value, 0.01)
	assert.Equal(t, 193600.0, p.Dimension(pyramid.BaseArea).Value)
	assert.InDelta(t, 18069333.33, p.Volume(), 0.01)
	assert.Equal(t, 440.0*440.0*280.0/3.0, p.Volume(), "volume is L²H/3")
}

// TestNew_Formulas checks every derived value against its closed form.
func TestNew_Formulas(t *testing.T) {
	const l, h = 230.0, 146.0
	p := pyramid.New(230, 146)

	half := l / 2
	diag := math.Sqrt(2) * l
	slant := math.Sqrt(half*half + h*h)

	cases := map[pyramid.Kind]float64{
		pyramid.BaseDiagonal:                  diag,
		pyramid.SlantLength:                   slant,
		pyramid.LateralEdgeLength:             math.Sqrt(half*half + slant*slant),
		pyramid.WestEastCornerAngle:           math.Atan(h / half),
		pyramid.WestEastVertexAngle:           2 * math.Atan(half/h),
		pyramid.LateralFaceCornerAngle:        math.Atan(slant / half),
		pyramid.LateralFaceVertexAngle:        2 * math.Atan(half/slant),
		pyramid.SouthwestNortheastCornerAngle: math.Atan(h / (diag / 2)),
		pyramid.SouthwestNortheastVertexAngle: 2 * math.Atan((diag/2)/h),
		pyramid.RightAngle:                    math.Pi / 2,
		pyramid.NinetyDegreesMinusSlantAngle:  math.Pi/2 - math.Atan(h/half),
		pyramid.LateralFaceArea:               l * slant / 2,
		pyramid.SurfaceAreaNotIncludingBase:   4 * (l * slant / 2),
	}
	for k, want := range cases {
		assert.InDelta(t, want, p.Dimension(k).Value, 1e-9, k.String())
	}
}

// TestNew_SurfaceAreaIdentity verifies that the surface area including the
// base is exactly the lateral surface plus the base area.
func TestNew_SurfaceAreaIdentity(t *testing.T) {
	for _, dims := range [][2]int{{440, 280}, {1, 1}, {7, 1000}, {999, 3}, {123, 456}} {
		p := pyramid.New(dims[0], dims[1])
		with := p.Dimension(pyramid.SurfaceAreaIncludingBase).Value
		without := p.Dimension(pyramid.SurfaceAreaNotIncludingBase).Value
		base := p.Dimension(pyramid.BaseArea).Value
		assert.Equal(t, without+base, with, "L=%d H=%d", dims[0], dims[1])
	}
}

// TestNew_AnglesComplement checks that the west-east corner angle and half the
// west-east vertex angle make a right angle.
func TestNew_AnglesComplement(t *testing.T) {
	p := pyramid.New(440, 280)
	corner := p.Dimension(pyramid.WestEastCornerAngle).Value
	vertex := p.Dimension(pyramid.WestEastVertexAngle).Value
	assert.InDelta(t, math.Pi/2, corner+vertex/2, 1e-12)
}

// TestNew_DegenerateHeight ensures zero height propagates instead of failing.
func TestNew_DegenerateHeight(t *testing.T) {
	p := pyramid.New(440, 0)

	assert.Equal(t, 0.0, p.Volume())
	assert.Equal(t, 0.0, p.Dimension(pyramid.WestEastCornerAngle).Value)
	assert.Equal(t, math.Pi, p.Dimension(pyramid.WestEastVertexAngle).Value, "atan of +Inf is π/2, doubled is π")
}

// TestNew_DegenerateBase ensures zero base length yields Inf/NaN, not a panic.
func TestNew_DegenerateBase(t *testing.T) {
	p := pyramid.New(0, 280)

	assert.Equal(t, math.Pi/2, p.Dimension(pyramid.WestEastCornerAngle).Value, "atan(+Inf) is π/2")
	assert.True(t, math.IsInf(p.HeightToBase(), 1))
}

// TestDimensions_Copy ensures callers cannot mutate the model.
func TestDimensions_Copy(t *testing.T) {
	p := pyramid.New(440, 280)
	dims := p.Dimensions()
	require.Len(t, dims, len(pyramid.Kinds()))

	dims[0].Value = -1
	assert.Equal(t, 440.0, p.BaseLength(), "model must be immutable after construction")

	for i, d := range dims {
		assert.Equal(t, pyramid.Kind(i), d.Kind, "dimensions are in kind order")
	}
}

// TestDimension_Unknown checks out-of-range kinds.
func TestDimension_Unknown(t *testing.T) {
	p := pyramid.New(440, 280)
	d := p.Dimension(pyramid.Kind(99))
	assert.Equal(t, 0.0, d.Value)
	assert.Equal(t, "UNKNOWN", d.Kind.String())
	assert.False(t, d.Kind.Valid())
}

// TestKind_Family checks the static family classification.
func TestKind_Family(t *testing.T) {
	counts := map[pyramid.Family]int{}
	for _, k := range pyramid.Kinds() {
		counts[k.Family()]++
	}
	assert.Equal(t, 6, counts[pyramid.FamilyLength])
	assert.Equal(t, 8, counts[pyramid.FamilyAngle])
	assert.Equal(t, 4, counts[pyramid.FamilyArea])
	assert.Equal(t, 1, counts[pyramid.FamilyVolume])
}

// TestKind_NamesUnique guards against two kinds sharing a display name.
func TestKind_NamesUnique(t *testing.T) {
	names := map[string]bool{}
	labels := map[string]bool{}
	for _, k := range pyramid.Kinds() {
		assert.False(t, names[k.String()], "duplicate name %s", k)
		assert.False(t, labels[k.Label()], "duplicate label %s", k.Label())
		names[k.String()] = true
		labels[k.Label()] = true
	}
}

// TestFinalLayout checks group sizes and family purity.
func TestFinalLayout(t *testing.T) {
	layout := pyramid.FinalLayout()
	require.Len(t, layout, 5)

	sizes := []int{6, 2, 2, 2, 4}
	for i, g := range layout {
		assert.Len(t, g.Kinds, sizes[i], g.Name)
		fam := g.Kinds[0].Family()
		for _, k := range g.Kinds {
			assert.Equal(t, fam, k.Family(), "group %s mixes families", g.Name)
		}
	}
	assert.Equal(t, 16, layout.Size())
}

// TestGroups_ResolveValues verifies groups carry the model's values.
func TestGroups_ResolveValues(t *testing.T) {
	p := pyramid.New(440, 280)
	groups := p.Groups()
	require.Len(t, groups, len(p.Layout()))

	for i, g := range p.Layout() {
		require.Len(t, groups[i], len(g.Kinds))
		for j, k := range g.Kinds {
			assert.Equal(t, p.Dimension(k), groups[i][j])
		}
	}
}

// TestWithLayout_Legacy checks layout selection.
func TestWithLayout_Legacy(t *testing.T) {
	p := pyramid.New(440, 280, pyramid.WithLayout(pyramid.LegacyLayout()))
	groups := p.Groups()
	require.Len(t, groups, 3)
	require.Len(t, groups[1], 4)

	want := []pyramid.Kind{
		pyramid.WestEastCornerAngle,
		pyramid.NinetyDegreesMinusSlantAngle,
		pyramid.LateralFaceVertexAngle,
		pyramid.LateralFaceCornerAngle,
	}
	for i, k := range want {
		assert.Equal(t, k, groups[1][i].Kind, "angle %d", i)
	}
	for _, g := range pyramid.FinalLayout() {
		assert.NotContains(t, g.Kinds, pyramid.NinetyDegreesMinusSlantAngle, g.Name)
	}

	_, ok := pyramid.LayoutByName("legacy")
	assert.True(t, ok)
	_, ok = pyramid.LayoutByName("bogus")
	assert.False(t, ok)
}

// TestResolve_SkipsUnknown ensures custom groups with bad kinds are tolerated.
func TestResolve_SkipsUnknown(t *testing.T) {
	p := pyramid.New(440, 280)
	dims := p.Resolve(pyramid.Group{Name: "custom", Kinds: []pyramid.Kind{pyramid.Height, pyramid.Kind(-1), pyramid.Volume}})
	require.Len(t, dims, 2)
	assert.Equal(t, pyramid.Height, dims[0].Kind)
	assert.Equal(t, pyramid.Volume, dims[1].Kind)
}

// TestWriteReport checks the field set, order and precision of the report.
func TestWriteReport(t *testing.T) {
	p := pyramid.New(440, 280)
	var buf bytes.Buffer
	require.NoError(t, p.WriteReport(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	kinds := pyramid.Kinds()
	require.Len(t, lines, len(kinds))
	for i, k := range kinds {
		assert.True(t, strings.HasPrefix(lines[i], k.Label()+": "), "line %d: %s", i, lines[i])
	}

	assert.Equal(t, "base perimeter: 1760", lines[pyramid.BasePerimeter])
	assert.Equal(t, "right angle: 90", lines[pyramid.RightAngle])
	assert.Equal(t, "base diagonal: 622.253967444162", lines[pyramid.BaseDiagonal])
}

// TestDegrees converts a few known angles.
func TestDegrees(t *testing.T) {
	assert.Equal(t, 180.0, pyramid.Degrees(math.Pi))
	assert.Equal(t, 90.0, pyramid.Dimension{Kind: pyramid.RightAngle, Value: math.Pi / 2}.Display())
	assert.Equal(t, 2.5, pyramid.Dimension{Kind: pyramid.Height, Value: 2.5}.Display())
}
