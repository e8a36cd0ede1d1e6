package component

// RenderLayer orders drawing: lower indices draw first, ties keep entity
// order. Zones sit below solids, actors above both.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()
