package entity

import (
	"fmt"

	"github.com/milk9111/hookshot/ecs"
	"github.com/milk9111/hookshot/ecs/component"
)

// NewGrappleAnchor spawns the marker shown at a grapple anchor point.
func NewGrappleAnchor(w *ecs.World, owner ecs.Entity, x, y float64) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("grapple anchor: world is nil")
	}
	anchor, err := BuildEntity(w, "grapple_anchor.yaml")
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, anchor, x, y, 0); err != nil {
		ecs.DestroyEntity(w, anchor)
		return 0, fmt.Errorf("grapple anchor: override transform: %w", err)
	}
	if err := ecs.Add(w, anchor, component.GrappleAnchorTagComponent.Kind(), &component.GrappleAnchorTag{Owner: uint64(owner)}); err != nil {
		ecs.DestroyEntity(w, anchor)
		return 0, fmt.Errorf("grapple anchor: add tag: %w", err)
	}
	return anchor, nil
}
