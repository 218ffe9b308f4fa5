// Package geometry provides 3D point math and procedural point-cloud
// generation for the particle system.
package geometry

import "math"

// Point3D represents a 3D point in space with x, y, z coordinates.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns the component-wise sum of p and q.
func (p Point3D) Add(q Point3D) Point3D {
	return Point3D{X: p.X + q.X, Y: p.Y + q.Y, Z: p.Z + q.Z}
}

// Scale returns p with each axis multiplied by the given factors.
func (p Point3D) Scale(sx, sy, sz float64) Point3D {
	return Point3D{X: p.X * sx, Y: p.Y * sy, Z: p.Z * sz}
}

// Mul returns p uniformly scaled by s.
func (p Point3D) Mul(s float64) Point3D {
	return Point3D{X: p.X * s, Y: p.Y * s, Z: p.Z * s}
}

// DistanceTo returns the Euclidean distance between p and q.
func (p Point3D) DistanceTo(q Point3D) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	dz := p.Z - q.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Length returns the distance from the origin to p.
func (p Point3D) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// Rotate rotates p around the X, Y, and Z axes, in that order.
func (p Point3D) Rotate(ax, ay, az float64) Point3D {
	cosX, sinX := math.Cos(ax), math.Sin(ax)
	cosY, sinY := math.Cos(ay), math.Sin(ay)
	cosZ, sinZ := math.Cos(az), math.Sin(az)

	// X-axis rotation
	y1 := p.Y*cosX - p.Z*sinX
	z1 := p.Y*sinX + p.Z*cosX
	p.Y, p.Z = y1, z1

	// Y-axis rotation
	x1 := p.X*cosY + p.Z*sinY
	z2 := -p.X*sinY + p.Z*cosY
	p.X, p.Z = x1, z2

	// Z-axis rotation
	x2 := p.X*cosZ - p.Y*sinZ
	y2 := p.X*sinZ + p.Y*cosZ
	p.X, p.Y = x2, y2

	return p
}
