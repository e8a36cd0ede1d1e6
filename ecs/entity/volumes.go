package entity

import (
	"fmt"

	"github.com/milk9111/hookshot/common"
	"github.com/milk9111/hookshot/ecs"
	"github.com/milk9111/hookshot/ecs/component"
)

func NewChaserAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	chaser, err := BuildEntity(w, "chaser.yaml")
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, chaser, x, y, 0); err != nil {
		return 0, fmt.Errorf("chaser: override transform: %w", err)
	}
	return chaser, nil
}

// NewSolid creates static level geometry centred on (x, y). Grappleable
// solids also answer grapple queries.
func NewSolid(w *ecs.World, x, y, width, height float64, grappleable bool) (ecs.Entity, error) {
	solid, err := BuildEntity(w, "solid.yaml")
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, solid, x, y, 0); err != nil {
		return 0, fmt.Errorf("solid: override transform: %w", err)
	}
	SetEntitySize(w, solid, width, height)
	if grappleable {
		layer, ok := ecs.Get(w, solid, component.CollisionLayerComponent.Kind())
		if !ok {
			layer = &component.CollisionLayer{Category: common.CategorySolid, Mask: ^uint32(0)}
			if err := ecs.Add(w, solid, component.CollisionLayerComponent.Kind(), layer); err != nil {
				return 0, fmt.Errorf("solid: add collision layer: %w", err)
			}
		}
		layer.Category |= common.CategoryGrapple
		if s, ok := ecs.Get(w, solid, component.SpriteComponent.Kind()); ok {
			s.Color.R, s.Color.G, s.Color.B = 0x8d, 0x6e, 0x63
		}
	}
	return solid, nil
}

// NewGravityZone creates a trigger volume centred on (x, y). A negative
// value is rejected.
func NewGravityZone(w *ecs.World, x, y, width, height, value float64) (ecs.Entity, error) {
	if value < 0 {
		return 0, fmt.Errorf("gravity zone: value must not be negative, got %v", value)
	}
	zone, err := BuildEntity(w, "gravity_zone.yaml")
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, zone, x, y, 0); err != nil {
		return 0, fmt.Errorf("gravity zone: override transform: %w", err)
	}
	SetEntitySize(w, zone, width, height)
	if gz, ok := ecs.Get(w, zone, component.GravityZoneComponent.Kind()); ok {
		gz.Value = value
	}
	return zone, nil
}
