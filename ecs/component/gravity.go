package component

// Gravity is the per-actor gravity model. Sign is +1 for normal gravity
// (pulling toward +Y) and -1 when inverted. Scale is the effective gravity
// scale with the sign already applied; Default is the unsigned scale restored
// when leaving a gravity zone.
type Gravity struct {
	Sign    float64
	Scale   float64
	Default float64
}

func (g Gravity) Inverted() bool {
	return g.Sign < 0
}

var GravityComponent = NewComponent[Gravity]()

// GravityZone overrides the gravity scale of actors overlapping it.
type GravityZone struct {
	Value  float64
	Width  float64
	Height float64
}

var GravityZoneComponent = NewComponent[GravityZone]()
