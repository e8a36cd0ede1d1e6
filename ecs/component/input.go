package component

// Input stores per-frame input state for an entity. Held flags mirror the
// device; *Pressed/*Released flags are true only on the frame of the edge.
type Input struct {
	MoveX float64
	MoveY float64

	Jump         bool
	JumpPressed  bool
	JumpReleased bool

	DashPressed bool
	Sprint      bool

	Grapple         bool
	GrapplePressed  bool
	GrappleReleased bool

	ReelIn         bool
	ReelInPressed  bool
	ReelOut        bool
	ReelOutPressed bool

	InvertGravityPressed bool
	FirePressed          bool

	// Pointer position in world space, used for grapple aiming.
	PointerX float64
	PointerY float64
}

var InputComponent = NewComponent[Input]()
