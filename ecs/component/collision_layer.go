package component

// CollisionLayer declares a collision category and mask so the physics
// system can filter collisions and queries between groups of objects.
type CollisionLayer struct {
	// Category is a bitmask of this entity's collision category. If zero,
	// the physics system will treat it as common.CategorySolid.
	Category uint32
	// Mask is a bitmask of categories this entity should collide with. If
	// zero, the physics system will treat it as all-bits set (collide with all).
	Mask uint32
}

var CollisionLayerComponent = NewComponent[CollisionLayer]()
