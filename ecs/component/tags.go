package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

// SolidTag marks static level geometry that counts as ground and walls.
type SolidTag struct{}

var SolidTagComponent = NewComponent[SolidTag]()

// GrappleAnchorTag marks the visual marker spawned at a grapple anchor.
// Owner is the ecs.Entity (uint64) of the actor that fired the grapple.
type GrappleAnchorTag struct {
	Owner uint64
}

var GrappleAnchorTagComponent = NewComponent[GrappleAnchorTag]()
