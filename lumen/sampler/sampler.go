// Package sampler generates randomized point sets on and within simple volumes.
//
// Sphere sampling is equal-area: azimuth is uniform in [0, 2π) and cos(polar)
// is uniform in [-1, 1], so points do not cluster at the poles. Invalid input
// (n <= 0, negative radii, rMax < rMin) yields an empty result.
package sampler

import (
	"math/rand/v2"

	"github.com/chewxy/math32"

	"lumen/lumen/quarkgl"
)

// Point3 is a sampled coordinate.
type Point3 = quarkgl.Vec3

// SphereSurface samples n points whose radius is drawn uniformly from [rMin, rMax].
// rMin == rMax samples the surface of a sphere.
func SphereSurface(rng *rand.Rand, n int, rMin, rMax float32) []Point3 {
	if !validBand(n, rMin, rMax) {
		return nil
	}
	rng = orDefault(rng)
	out := make([]Point3, n)
	for i := range out {
		theta := rng.Float32() * 2 * math32.Pi
		cosPhi := 2*rng.Float32() - 1
		out[i] = onSphere(theta, cosPhi, radius(rng, rMin, rMax))
	}
	return out
}

// SphereSpiral places n points along an index-derived spiral (phi = acos(-1+2i/n),
// theta = sqrt(nπ)*phi) with a random radius in [rMin, rMax]. The spiral is
// equal-area in latitude.
func SphereSpiral(rng *rand.Rand, n int, rMin, rMax float32) []Point3 {
	if !validBand(n, rMin, rMax) {
		return nil
	}
	rng = orDefault(rng)
	out := make([]Point3, n)
	k := math32.Sqrt(float32(n) * math32.Pi)
	for i := range out {
		cosPhi := -1 + 2*float32(i)/float32(n)
		phi := math32.Acos(cosPhi)
		out[i] = onSphere(k*phi, cosPhi, radius(rng, rMin, rMax))
	}
	return out
}

// Cube samples n points uniformly inside an axis-aligned cube of the given half extent.
func Cube(rng *rand.Rand, n int, half float32) []Point3 {
	return Box(rng, n, quarkgl.V3(half, half, half))
}

// Box samples n points uniformly inside an axis-aligned box with half extents half.
func Box(rng *rand.Rand, n int, half quarkgl.Vec3) []Point3 {
	if n <= 0 || half.X < 0 || half.Y < 0 || half.Z < 0 {
		return nil
	}
	rng = orDefault(rng)
	out := make([]Point3, n)
	for i := range out {
		out[i] = quarkgl.V3(
			(rng.Float32()*2-1)*half.X,
			(rng.Float32()*2-1)*half.Y,
			(rng.Float32()*2-1)*half.Z,
		)
	}
	return out
}

func validBand(n int, rMin, rMax float32) bool {
	return n > 0 && rMin >= 0 && rMax >= rMin && quarkgl.Finite(rMin) && quarkgl.Finite(rMax)
}

func radius(rng *rand.Rand, rMin, rMax float32) float32 {
	return rMin + rng.Float32()*(rMax-rMin)
}

func onSphere(theta, cosPhi, r float32) Point3 {
	sinPhi := math32.Sqrt(max(0, 1-cosPhi*cosPhi))
	return quarkgl.V3(
		r*sinPhi*math32.Cos(theta),
		r*sinPhi*math32.Sin(theta),
		r*cosPhi,
	)
}

func orDefault(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
