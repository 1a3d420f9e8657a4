package pyramid

// Group is a named set of dimension kinds searched together.
type Group struct {
	Name  string
	Kinds []Kind
}

// Layout is an ordered list of groups. Search results from earlier groups win
// ties against later ones.
type Layout []Group

// FinalLayout keeps lengths and areas apart from angles and splits the angles
// by the cross section they are measured in.
func FinalLayout() Layout {
	return Layout{
		{Name: "lengths", Kinds: lengthKinds()},
		{Name: "angles-west-east", Kinds: []Kind{WestEastCornerAngle, WestEastVertexAngle}},
		{Name: "angles-lateral-face", Kinds: []Kind{LateralFaceCornerAngle, LateralFaceVertexAngle}},
		{Name: "angles-southwest-northeast", Kinds: []Kind{SouthwestNortheastCornerAngle, SouthwestNortheastVertexAngle}},
		{Name: "areas", Kinds: areaKinds()},
	}
}

// LegacyLayout is the older, coarser grouping. Its single angle group holds
// the slant angle (west-east corner), its complement, and the lateral face
// vertex and corner angles, in that order.
func LegacyLayout() Layout {
	return Layout{
		{Name: "lengths", Kinds: lengthKinds()},
		{Name: "angles", Kinds: []Kind{
			WestEastCornerAngle,
			NinetyDegreesMinusSlantAngle,
			LateralFaceVertexAngle,
			LateralFaceCornerAngle,
		}},
		{Name: "areas", Kinds: areaKinds()},
	}
}

// LayoutByName returns "final" or "legacy".
func LayoutByName(name string) (Layout, bool) {
	switch name {
	case "", "final":
		return FinalLayout(), true
	case "legacy":
		return LegacyLayout(), true
	default:
		return nil, false
	}
}

// Size returns the total number of kinds across all groups.
func (l Layout) Size() int {
	n := 0
	for _, g := range l {
		n += len(g.Kinds)
	}
	return n
}

func lengthKinds() []Kind {
	return []Kind{BaseLength, Height, BasePerimeter, BaseDiagonal, SlantLength, LateralEdgeLength}
}

func areaKinds() []Kind {
	return []Kind{BaseArea, LateralFaceArea, SurfaceAreaNotIncludingBase, SurfaceAreaIncludingBase}
}
