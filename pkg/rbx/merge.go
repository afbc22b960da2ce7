package rbx

import (
	"slices"

	rmath "github.com/Faultbox/rbxvmf/pkg/math"
)

// ProgressFunc reports that a visual-hash bucket has been merged.
// bucket is 1-based; before and after are the bucket's part counts.
type ProgressFunc func(bucket, buckets, before, after int)

// JoinAdjacent reduces the part count by fusing block parts that look
// identical and share a complete face.
//
// Parts are grouped by VisualHash and merged greedily within each group.
// Parts without a visual hash pass through unchanged after the merged
// groups. Groups are processed in first-seen order, so the output is
// deterministic for a given input. progress may be nil.
func JoinAdjacent(parts []Part, progress ProgressFunc) []Part {
	var order []VisualHash
	buckets := make(map[VisualHash][]Part)
	var unique []Part

	for _, p := range parts {
		h, ok := p.VisualHash()
		if !ok {
			unique = append(unique, p)
			continue
		}
		if _, seen := buckets[h]; !seen {
			order = append(order, h)
		}
		buckets[h] = append(buckets[h], p)
	}

	out := make([]Part, 0, len(parts))
	for i, h := range order {
		before := len(buckets[h])
		merged := joinBucket(buckets[h])
		if progress != nil {
			progress(i+1, len(order), before, len(merged))
		}
		out = append(out, merged...)
	}
	return append(out, unique...)
}

// joinBucket merges parts in place until no pair shares a face.
func joinBucket(parts []Part) []Part {
	i := 0
scan:
	for i < len(parts) {
		for j := 0; j < i; j++ {
			if !absorb(&parts[i], parts[j]) {
				continue
			}

			// Swap-remove j. When i is the last index the absorbing part
			// moves into slot j, which is where scanning resumes.
			last := len(parts) - 1
			parts[j] = parts[last]
			parts = parts[:last]
			i = j
			continue scan
		}
		i++
	}
	return parts
}

// absorb extends dst to cover src when the two share a coincident face.
func absorb(dst *Part, src Part) bool {
	srcFaces := src.Faces()
	for _, f1 := range dst.Faces() {
		c1 := rmath.Centroid(f1.Points[:]...)
		for _, f2 := range srcFaces {
			c2 := rmath.Centroid(f2.Points[:]...)
			if !c1.ApproxEqual(c2) {
				continue
			}
			// Face points are ordered in each part's local space; sort to
			// compare them in world space.
			if !samePoints(f1.Points, f2.Points) {
				continue
			}

			dstAxis := c1.ToLocal(dst.Frame).ClosestAxis()
			srcAxis := c2.ToLocal(src.Frame).ClosestAxis()

			change := srcAxis.Mul(src.Size).Magnitude()
			dst.Size = dst.Size.Add(dstAxis.Abs().Scale(change))

			outward := c1.Sub(dst.Frame.Position)
			dst.Frame.Position = dst.Frame.Position.Add(outward.DivScalar(outward.Magnitude()).Scale(change / 2))
			return true
		}
	}
	return false
}

func samePoints(a, b [4]rmath.Vector3) bool {
	slices.SortFunc(a[:], rmath.Order)
	slices.SortFunc(b[:], rmath.Order)
	for k := range a {
		if !a[k].ApproxEqual(b[k]) {
			return false
		}
	}
	return true
}
