package math

// ToSourceCoordinates converts a Roblox-space vector to Source engine space.
// Roblox is Y-up; Source is Z-up and mirrored, hence the negated Z.
func ToSourceCoordinates(v Vector3) [3]float64 {
	return [3]float64{v.X, -v.Z, v.Y}
}

// FromSourceCoordinates reverses ToSourceCoordinates.
func FromSourceCoordinates(a [3]float64) Vector3 {
	return Vector3{a[0], a[2], -a[1]}
}
