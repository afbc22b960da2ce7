package math

// BoundingBox is an axis-aligned box accumulated from points.
type BoundingBox struct {
	XMin, XMax float64
	YMin, YMax float64
	ZMin, ZMax float64
}

// ZeroBounds returns a degenerate box at the origin. Folding points into it
// always keeps the origin inside the result.
func ZeroBounds() BoundingBox {
	return BoundingBox{}
}

// Include grows the box to contain p.
func (b BoundingBox) Include(p Vector3) BoundingBox {
	if p.X < b.XMin {
		b.XMin = p.X
	}
	if p.X > b.XMax {
		b.XMax = p.X
	}
	if p.Y < b.YMin {
		b.YMin = p.Y
	}
	if p.Y > b.YMax {
		b.YMax = p.Y
	}
	if p.Z < b.ZMin {
		b.ZMin = p.Z
	}
	if p.Z > b.ZMax {
		b.ZMax = p.Z
	}
	return b
}

// Center returns the midpoint of the box.
func (b BoundingBox) Center() Vector3 {
	return Vector3{
		(b.XMax + b.XMin) / 2,
		(b.YMax + b.YMin) / 2,
		(b.ZMax + b.ZMin) / 2,
	}
}

// Size returns the extent of the box along each axis.
func (b BoundingBox) Size() Vector3 {
	return Vector3{b.XMax - b.XMin, b.YMax - b.YMin, b.ZMax - b.ZMin}.Abs()
}
