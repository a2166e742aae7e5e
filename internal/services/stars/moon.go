package stars

import "math"

// MoonIllumination converts a lunar phase fraction into the illuminated
// fraction of the moon's disc. Phase runs 0 (new) through 0.5 (full) back to
// 1 (new again), so illumination is the tent function peaking at full moon:
// both half moons (0.25 and 0.75) light half the disc.
func MoonIllumination(phase float64) float64 {
	return clamp(1 - math.Abs(2*phase-1))
}
