package audio

import "math"

// Vector3 is a position or velocity in world units.
type Vector3 struct {
	X, Y, Z float32
}

// Spatial pairs a 3D position with a velocity. The two are always read and
// written together, so a position update can never clobber a velocity set
// earlier and vice versa.
type Spatial struct {
	Position Vector3
	Velocity Vector3
}

// DistanceRange bounds the inverse-distance attenuation model. Inside Min
// the sound plays at full volume, beyond Max attenuation stops growing.
type DistanceRange struct {
	Min float32
	Max float32
}

func distance(a, b Vector3) float32 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	dz := float64(a.Z - b.Z)
	return float32(math.Sqrt(dx*dx + dy*dy + dz*dz))
}

// attenuate returns the inverse-distance gain for an emitter heard from
// listener, clamped by rng.
func attenuate(listener, emitter Vector3, rng DistanceRange) float32 {
	if rng.Min <= 0 {
		return 1
	}

	d := distance(listener, emitter)
	if d <= rng.Min {
		return 1
	}
	if rng.Max > rng.Min && d >= rng.Max {
		return rng.Min / rng.Max
	}
	return rng.Min / d
}
