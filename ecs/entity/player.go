package entity

import (
	"fmt"

	"github.com/milk9111/hookshot/ecs"
	"github.com/milk9111/hookshot/ecs/component"
	"github.com/milk9111/hookshot/prefabs"
)

const playerPrefab = "player.yaml"

func NewPlayerAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	entity, err := BuildEntity(w, playerPrefab)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, entity, x, y, 0); err != nil {
		return 0, fmt.Errorf("player: override transform: %w", err)
	}
	return entity, nil
}

// ReloadPlayerTuning re-reads the player prefab and replaces the movement
// tuning of every player in w. Runtime state is untouched.
func ReloadPlayerTuning(w *ecs.World) (int, error) {
	spec, err := prefabs.LoadEntityBuildSpec(playerPrefab)
	if err != nil {
		return 0, fmt.Errorf("player: reload: %w", err)
	}
	raw, ok := spec.Components["player"]
	if !ok {
		return 0, fmt.Errorf("player: reload: %q has no player component", playerPrefab)
	}
	decoded, err := prefabs.DecodeComponentSpec[playerSpec](raw)
	if err != nil {
		return 0, fmt.Errorf("player: reload: decode: %w", err)
	}

	n := 0
	ecs.ForEach(w, component.PlayerComponent.Kind(), func(e ecs.Entity, p *component.Player) {
		*p = *PlayerFromSpec(decoded)
		n++
	})
	return n, nil
}
