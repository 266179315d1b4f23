package actor

import "math"

// Params tunes the rolling simulation. Angles are radians, times are
// milliseconds and distances pixels.
type Params struct {
	Size           float64 // diameter
	AngleIncrement float64 // rotation per millisecond at speed factor 1
	FallForce      float64 // fall speed gained per millisecond
	FatalVelocity  float64 // fall speed at which landing is no longer tested
	MaxAngleStep   float64 // largest rotation resolved in one sub-step

	// ContactSlack scales the squared radius when searching for support.
	ContactSlack float64
	// DieRadius is the fraction of the radius below which the actor is crushed.
	DieRadius float64
	// FallAngle is how far past the rail normal the actor may swing around
	// a rail end before it drops off.
	FallAngle float64

	ExplosionFrames    int
	ExplosionFrameTime float64
}

// DefaultParams returns the standard tuning.
func DefaultParams() Params {
	return Params{
		Size:               20,
		AngleIncrement:     0.006,
		FallForce:          0.03,
		FatalVelocity:      9,
		MaxAngleStep:       0.7,
		ContactSlack:       1.01,
		DieRadius:          0.5,
		FallAngle:          0.4 * math.Pi,
		ExplosionFrames:    9,
		ExplosionFrameTime: 80,
	}
}

// Radius is half of Size.
func (p Params) Radius() float64 {
	return p.Size / 2
}

// Valid reports whether the params can drive Update. A non-positive
// MaxAngleStep would never consume the rotation budget, and a zero Size
// leaves nothing to collide.
func (p Params) Valid() bool {
	return p.Size > 0 && p.MaxAngleStep > 0 && p.AngleIncrement >= 0 &&
		p.FallForce >= 0 && p.ContactSlack > 0 &&
		p.ExplosionFrames > 0 && p.ExplosionFrameTime >= 0
}
