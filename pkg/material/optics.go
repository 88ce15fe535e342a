package material

import (
	"math"

	"github.com/snowjak88/ray2/pkg/core"
)

// ReflectanceFunc returns the fraction of light reflected at an interface,
// given the cosine of the incidence angle and the refractive indices on the incident (n1)
// and transmitted (n2) sides. It returns 1 under total internal reflection.
type ReflectanceFunc func(cosIncident, n1, n2 float64) float64

// Reflect calculates the reflection of a vector v off a surface with normal n
func Reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// Refract bends the unit vector uv through a surface with unit normal n facing against uv,
// using Snell's law with eta = n1/n2. It returns false under total internal reflection.
func Refract(uv, n core.Vec3, eta float64) (core.Vec3, bool) {
	cosTheta := math.Min(-uv.Dot(n), 1.0)
	sin2Theta := math.Max(0, 1.0-cosTheta*cosTheta)
	if eta*eta*sin2Theta > 1.0 {
		return core.Vec3{}, false
	}
	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(eta)
	rOutParallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel), true
}

// transmittedCosine returns cos(theta_t) and false under total internal reflection
func transmittedCosine(cosIncident, n1, n2 float64) (float64, bool) {
	eta := n1 / n2
	sin2T := eta * eta * math.Max(0, 1-cosIncident*cosIncident)
	if sin2T > 1 {
		return 0, false
	}
	return math.Sqrt(1 - sin2T), true
}

// Reflectance evaluates Schlick's polynomial for a cosine and refraction ratio n1/n2
func Reflectance(cosine, refractionRatio float64) float64 {
	// R0 for normal incidence
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}

// Schlick approximates Fresnel reflectance. Going into a less dense medium,
// the transmitted angle is used so the curve stays symmetric across the interface.
func Schlick(cosIncident, n1, n2 float64) float64 {
	cosIncident = math.Abs(cosIncident)
	cosT, ok := transmittedCosine(cosIncident, n1, n2)
	if !ok {
		return 1
	}
	cosine := cosIncident
	if n1 > n2 {
		cosine = cosT
	}
	return Reflectance(cosine, n1/n2)
}

// ExactFresnel averages the s- and p-polarized Fresnel reflectances
func ExactFresnel(cosIncident, n1, n2 float64) float64 {
	cosI := math.Abs(cosIncident)
	cosT, ok := transmittedCosine(cosI, n1, n2)
	if !ok {
		return 1
	}
	rs := (n1*cosI - n2*cosT) / (n1*cosI + n2*cosT)
	rp := (n1*cosT - n2*cosI) / (n1*cosT + n2*cosI)
	return (rs*rs + rp*rp) / 2
}
