package entity

import (
	"fmt"
	"strings"

	"github.com/milk9111/hookshot/common"
	"github.com/milk9111/hookshot/ecs"
	"github.com/milk9111/hookshot/ecs/component"
	"github.com/milk9111/hookshot/levels"
	"github.com/rs/zerolog/log"
)

// LoadLevelToWorld creates the bounds, merged solid colliders and spawn
// entities of lvl in world.
func LoadLevelToWorld(world *ecs.World, lvl *levels.Level) error {
	if world == nil || lvl == nil {
		return fmt.Errorf("load level: nil world or level")
	}

	tileSize := float64(common.TileSize)
	boundsEntity := ecs.CreateEntity(world)
	if err := ecs.Add(world, boundsEntity, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:  float64(lvl.Width) * tileSize,
		Height: float64(lvl.Height) * tileSize,
	}); err != nil {
		return fmt.Errorf("load level: add bounds: %w", err)
	}

	for layerIdx, layer := range lvl.Layers {
		if layerIdx < len(lvl.LayerMeta) && !lvl.LayerMeta[layerIdx].Physics {
			continue
		}
		if err := addMergedTileColliders(world, layer, lvl.Width, lvl.Height, tileSize); err != nil {
			return fmt.Errorf("load level: layer %d: %w", layerIdx, err)
		}
	}

	for _, ent := range lvl.Entities {
		x, y := float64(ent.X), float64(ent.Y)
		var err error
		switch strings.ToLower(ent.Type) {
		case "player":
			_, err = NewPlayerAt(world, x, y)
		case "camera":
			_, err = NewCameraAt(world, x, y)
		case "chaser":
			_, err = NewChaserAt(world, x, y)
		case "gravity_zone":
			_, err = NewGravityZone(world, x, y,
				ent.PropFloat("width", tileSize*4),
				ent.PropFloat("height", tileSize*4),
				ent.PropFloat("value", 0))
		default:
			log.Warn().Str("type", ent.Type).Str("level", lvl.Name).Msg("unknown level entity")
		}
		if err != nil {
			return fmt.Errorf("load level: spawn %s: %w", ent.Type, err)
		}
	}

	log.Info().Str("level", lvl.Name).Int("entities", len(ecs.Entities(world))).Msg("level loaded")
	return nil
}

// addMergedTileColliders greedily merges runs of equal non-empty tiles into
// rectangles so each becomes one static collider.
func addMergedTileColliders(world *ecs.World, layer []int, width, height int, tileSize float64) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	visited := make([]bool, width*height)
	index := func(x, y int) int { return y*width + x }
	matches := func(idx, tile int) bool {
		return idx < len(layer) && !visited[idx] && layer[idx] == tile
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := index(x, y)
			if idx >= len(layer) || visited[idx] || layer[idx] == levels.TileEmpty {
				continue
			}
			tile := layer[idx]

			maxW := 0
			for x2 := x; x2 < width && matches(index(x2, y), tile); x2++ {
				maxW++
			}

			maxH := 1
			for y2 := y + 1; y2 < height; y2++ {
				rowOK := true
				for x2 := x; x2 < x+maxW; x2++ {
					if !matches(index(x2, y2), tile) {
						rowOK = false
						break
					}
				}
				if !rowOK {
					break
				}
				maxH++
			}

			for yy := y; yy < y+maxH; yy++ {
				for xx := x; xx < x+maxW; xx++ {
					visited[index(xx, yy)] = true
				}
			}

			w := float64(maxW) * tileSize
			h := float64(maxH) * tileSize
			cx := float64(x)*tileSize + w/2
			cy := float64(y)*tileSize + h/2
			if _, err := NewSolid(world, cx, cy, w, h, tile == levels.TileGrappleable); err != nil {
				return err
			}
		}
	}
	return nil
}
