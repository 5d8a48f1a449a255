package geom

// BoundBox accumulates the axis-aligned bounding box of a set of points or
// boxes. The zero value is empty; Union grows it. An empty box contributes
// no extent, which is how unresolvable part lookups degrade gracefully.
type BoundBox struct {
	Min, Max Vector
	set      bool
}

// IsEmpty reports whether the box has accumulated any extent.
func (b BoundBox) IsEmpty() bool { return !b.set }

// Union returns the box grown to include pt.
func (b BoundBox) Union(pt Vector) BoundBox {
	if !b.set {
		return BoundBox{Min: pt, Max: pt, set: true}
	}
	out := b
	out.Min.X = min(out.Min.X, pt.X)
	out.Min.Y = min(out.Min.Y, pt.Y)
	out.Min.Z = min(out.Min.Z, pt.Z)
	out.Max.X = max(out.Max.X, pt.X)
	out.Max.Y = max(out.Max.Y, pt.Y)
	out.Max.Z = max(out.Max.Z, pt.Z)
	return out
}

// UnionPts returns the box grown to include every point in pts.
func (b BoundBox) UnionPts(pts []Vector) BoundBox {
	out := b
	for _, pt := range pts {
		out = out.Union(pt)
	}
	return out
}

// UnionBox returns the box grown to include other. An empty other leaves b
// unchanged.
func (b BoundBox) UnionBox(other BoundBox) BoundBox {
	if !other.set {
		return b
	}
	return b.Union(other.Min).Union(other.Max)
}

// Translated returns the box shifted by pt.
func (b BoundBox) Translated(pt Vector) BoundBox {
	if !b.set {
		return b
	}
	return BoundBox{Min: b.Min.Add(pt), Max: b.Max.Add(pt), set: true}
}

// XLen returns the extent along the X axis.
func (b BoundBox) XLen() float64 { return b.Max.X - b.Min.X }

// YLen returns the extent along the Y axis.
func (b BoundBox) YLen() float64 { return b.Max.Y - b.Min.Y }

// ZLen returns the extent along the Z axis.
func (b BoundBox) ZLen() float64 { return b.Max.Z - b.Min.Z }

// Center returns the geometric center of the box.
func (b BoundBox) Center() Vector {
	return Vector{
		(b.Min.X + b.Max.X) / 2,
		(b.Min.Y + b.Max.Y) / 2,
		(b.Min.Z + b.Max.Z) / 2,
	}
}

// BiggestDim returns the longest axis ("x", "y" or "z") and its extent.
func (b BoundBox) BiggestDim() (string, float64) {
	axis, dim := "x", b.XLen()
	if b.YLen() > dim {
		axis, dim = "y", b.YLen()
	}
	if b.ZLen() > dim {
		axis, dim = "z", b.ZLen()
	}
	return axis, dim
}

// BoxFromPts builds a bounding box from a point set.
func BoxFromPts(pts []Vector) BoundBox {
	var b BoundBox
	return b.UnionPts(pts)
}
