package ecs

import "strconv"

// Entity is a generational handle. The low half is the slot id, starting at
// 1, and the high half counts how often that slot was recycled, so a handle
// kept past DestroyEntity never aliases the slot's next occupant.
type Entity uint64

type (
	entityID   uint32
	generation uint32
)

const (
	entityIDBits = 32
	entityIDMask = 1<<entityIDBits - 1
)

func makeEntity(id entityID, gen generation) Entity {
	return Entity(gen)<<entityIDBits | Entity(id)
}

func (e Entity) id() entityID { return entityID(e & entityIDMask) }
func (e Entity) generation() generation { return generation(e >> entityIDBits) }

// String renders e as "slot:generation" for logs.
func (e Entity) String() string {
	buf := strconv.AppendUint(nil, uint64(e.id()), 10)
	buf = append(buf, ':')
	return string(strconv.AppendUint(buf, uint64(e.generation()), 10))
}

// Valid reports whether e could name a slot; it says nothing about liveness.
func (e Entity) Valid() bool { return e.id() != 0 }
