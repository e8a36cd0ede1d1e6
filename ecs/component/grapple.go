package component

const (
	GrappleModeReel    = "reel"
	GrappleModeAttract = "attract"
)

// Grapple is the grappling hook of an actor. Anchor and Length are only
// meaningful while Engaged.
type Grapple struct {
	Mode         string
	Range        float64
	MinLength    float64
	MaxLength    float64
	ReelStep     float64
	ReelSpeed    float64
	AttractForce float64
	FireOffsetX  float64
	FireOffsetY  float64
	Mask         uint32

	Engaged bool
	AnchorX float64
	AnchorY float64
	Length  float64

	// Marker is the ecs.Entity of the spawned anchor marker, 0 when none.
	Marker uint64
}

var GrappleComponent = NewComponent[Grapple]()

// Rope animates the grapple line from the fire point to the anchor.
type Rope struct {
	Precision        int
	StartWaveSize    float64
	StraightenSpeed  float64
	ProgressionSpeed float64
	Waves            float64

	Active   bool
	Straight bool
	MoveTime float64
	WaveSize float64
}

var RopeComponent = NewComponent[Rope]()
