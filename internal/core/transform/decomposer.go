// Package transform folds source-protocol display transforms into the
// translation, per-axis scale and Euler rotation triple the target protocol can
// carry.
//
// Rotations are composed by adding Euler angles, not by multiplying quaternions.
// That is only exact while successive rotations commute (for example a sequence
// around a single axis); other sequences render as an approximation.
package transform

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// degenerateEpsilon is the squared quaternion length below which a rotation
// delta is treated as identity.
const degenerateEpsilon = 1e-12

// gimbalThreshold bounds x*y + z*w of a unit quaternion beyond which pitch is
// treated as exactly ±90° and the rotation is carried by yaw alone.
const gimbalThreshold = 0.4999

// Composed is the running transform of a display entity.
type Composed struct {
	Translation mgl32.Vec3
	// Scale is the per-axis scale magnitude. Mirroring deltas fold into it as
	// their absolute value, so it never goes negative.
	Scale mgl32.Vec3
	// Rotation holds (yaw, pitch, roll) in radians: rotation about the Y, Z and X
	// axes respectively, applied Z, then Y, then X.
	Rotation mgl32.Vec3
}

// Identity is the transform of a freshly spawned display.
func Identity() Composed {
	return Composed{Scale: mgl32.Vec3{1, 1, 1}}
}

// Decomposer accumulates incremental transform updates of one entity.
// It is not safe for concurrent use.
type Decomposer struct {
	current Composed
}

func NewDecomposer() *Decomposer {
	return &Decomposer{current: Identity()}
}

// Current returns a snapshot of the running transform.
func (d *Decomposer) Current() Composed {
	return d.current
}

// Reset returns the decomposer to identity.
func (d *Decomposer) Reset() {
	d.current = Identity()
}

func (d *Decomposer) ApplyTranslation(delta mgl32.Vec3) {
	d.current.Translation = d.current.Translation.Add(delta)
}

func (d *Decomposer) ApplyScale(delta mgl32.Vec3) {
	d.current.Scale = mulComponents(d.current.Scale, absComponents(delta))
}

// ApplyRotation decomposes q into a scale magnitude and Euler angles and folds
// both into the running transform. A zero-length q is ignored.
func (d *Decomposer) ApplyRotation(q mgl32.Quat) {
	scale, euler, ok := Decompose(q)
	if !ok {
		return
	}
	d.current.Scale = mulComponents(d.current.Scale, scale)
	d.current.Rotation = d.current.Rotation.Add(euler)
}

// Decompose splits q into the per-axis magnitude of q·e·q* for each basis vector e
// and the Euler angles of the normalized q. ok is false for a degenerate q.
func Decompose(q mgl32.Quat) (scale, euler mgl32.Vec3, ok bool) {
	if float64(q.Dot(q)) < degenerateEpsilon {
		return mgl32.Vec3{1, 1, 1}, mgl32.Vec3{}, false
	}

	conj := q.Conjugate()
	for i, basis := range []mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}} {
		scale[i] = q.Mul(mgl32.Quat{V: basis}).Mul(conj).V.Len()
	}

	return scale, EulerZYX(q), true
}

// EulerZYX extracts (yaw, pitch, roll) from q after normalizing it. At pitch ±90°
// yaw and roll share an axis; the whole turn is then reported as yaw.
func EulerZYX(q mgl32.Quat) mgl32.Vec3 {
	w, x, y, z := float64(q.W), float64(q.V[0]), float64(q.V[1]), float64(q.V[2])
	n := math.Sqrt(w*w + x*x + y*y + z*z)
	w, x, y, z = w/n, x/n, y/n, z/n

	switch t := x*y + z*w; {
	case t > gimbalThreshold:
		return mgl32.Vec3{float32(2 * math.Atan2(x, w)), math.Pi / 2, 0}
	case t < -gimbalThreshold:
		return mgl32.Vec3{float32(-2 * math.Atan2(x, w)), -math.Pi / 2, 0}
	}

	yaw := math.Atan2(2*(y*w-x*z), 1-2*(y*y+z*z))
	pitch := math.Asin(clamp(2*(x*y+z*w), -1, 1))
	roll := math.Atan2(2*(x*w-y*z), 1-2*(x*x+z*z))

	return mgl32.Vec3{float32(yaw), float32(pitch), float32(roll)}
}

func mulComponents(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

func absComponents(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{mgl32.Abs(v[0]), mgl32.Abs(v[1]), mgl32.Abs(v[2])}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
