package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/hookshot/common"
	"github.com/milk9111/hookshot/ecs"
	"github.com/milk9111/hookshot/ecs/component"
	"github.com/rs/zerolog/log"
)

const (
	collisionTypeActor cp.CollisionType = iota + 1
	collisionTypeFoot
	collisionTypeHead
	collisionTypeSolid
	collisionTypeZone
	collisionTypeEnemy
)

const (
	sensorThickness = 2.0
	// sensorInset keeps the ground strips clear of wall faces the body sinks
	// into while pressing against them.
	sensorInset = 3.0
	// groundNormalMin is the smallest normal component along gravity that
	// counts as standing on a surface.
	groundNormalMin = 0.5
)

// PhysicsSystem owns the Chipmunk space. Each fixed step it pushes Velocity
// into the bodies, mirrors grapples into slide joints, steps the space and
// reads positions, velocities and contacts back.
type PhysicsSystem struct {
	DT float64

	space         *cp.Space
	handlersReady bool

	entities    map[ecs.Entity]*bodyInfo
	shapeOwners map[*cp.Shape]ecs.Entity
	contacts    map[ecs.Entity]*groundContactState
	joints      map[ecs.Entity]*grappleJoint
	zoneEvents  []ecs.ZoneEvent
}

type bodyInfo struct {
	body      *cp.Body
	mainShape *cp.Shape
	shapes    []*cp.Shape
	static    bool
}

// groundContactState records whether the foot (+Y) or head (-Y) sensor of an
// actor rested on a surface during the current step.
type groundContactState struct {
	foot bool
	head bool
}

type grappleJoint struct {
	constraint *cp.Constraint
	anchor     cp.Vector
}

func NewPhysicsSystem(dt float64) *PhysicsSystem {
	ps := &PhysicsSystem{DT: dt}
	ps.Reset()
	return ps
}

// Reset drops every body and joint and starts from an empty space. Call it
// when a new level is loaded into a fresh world.
func (ps *PhysicsSystem) Reset() {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})

	ps.space = space
	ps.handlersReady = false
	ps.entities = make(map[ecs.Entity]*bodyInfo)
	ps.shapeOwners = make(map[*cp.Shape]ecs.Entity)
	ps.contacts = make(map[ecs.Entity]*groundContactState)
	ps.joints = make(map[ecs.Entity]*grappleJoint)
	ps.zoneEvents = nil
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.Reset()
	}

	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.syncWorldBounds(w)
	ps.pushVelocities(w)
	ps.syncGrappleJoints(w)
	ps.resetGroundContacts()

	ps.space.Step(ps.DT)

	ps.pullBodies(w)
	ps.flushGroundContacts(w)
	ps.flushZoneEvents(w)
}

// Raycast implements Raycaster with a space segment query.
func (ps *PhysicsSystem) Raycast(x0, y0, x1, y1 float64, mask uint32) (RayHit, bool) {
	if ps == nil || ps.space == nil {
		return RayHit{}, false
	}
	start := cp.Vector{X: x0, Y: y0}
	end := cp.Vector{X: x1, Y: y1}
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, uint(mask))
	info := ps.space.SegmentQueryFirst(start, end, 0, filter)
	if info.Shape == nil {
		return RayHit{}, false
	}
	return RayHit{
		Entity:   ps.shapeOwners[info.Shape],
		X:        info.Point.X,
		Y:        info.Point.Y,
		NormalX:  info.Normal.X,
		NormalY:  info.Normal.Y,
		Distance: info.Alpha * start.Distance(end),
	}, true
}

// HasJoint reports whether e currently has a grapple joint in the space.
func (ps *PhysicsSystem) HasJoint(e ecs.Entity) bool {
	_, ok := ps.joints[e]
	return ok
}

// JointLength returns the maximum length of e's grapple joint.
func (ps *PhysicsSystem) JointLength(e ecs.Entity) (float64, bool) {
	j, ok := ps.joints[e]
	if !ok {
		return 0, false
	}
	sj, ok := j.constraint.Class.(*cp.SlideJoint)
	if !ok {
		return 0, false
	}
	return sj.Max, true
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	footHandler := ps.space.NewCollisionHandler(collisionTypeFoot, collisionTypeSolid)
	footHandler.UserData = ps
	footHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		// the normal points from the strip into the solid, so a floor is +Y
		if st, n := ps.sensorContact(arb); st != nil && n.Y > groundNormalMin {
			st.foot = true
		}
		return true
	}

	headHandler := ps.space.NewCollisionHandler(collisionTypeHead, collisionTypeSolid)
	headHandler.UserData = ps
	headHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		if st, n := ps.sensorContact(arb); st != nil && n.Y < -groundNormalMin {
			st.head = true
		}
		return true
	}

	zoneHandler := ps.space.NewCollisionHandler(collisionTypeActor, collisionTypeZone)
	zoneHandler.UserData = ps
	zoneHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		ps.queueZoneEvent(arb, true)
		return true
	}
	zoneHandler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		ps.queueZoneEvent(arb, false)
	}

	ps.handlersReady = true
}

// sensorContact returns the contact state of the actor owning the sensor in
// arb and the contact normal pointing from that sensor into the other shape.
func (ps *PhysicsSystem) sensorContact(arb *cp.Arbiter) (*groundContactState, cp.Vector) {
	shapeA, shapeB := arb.Shapes()
	n := arb.Normal()
	e, ok := ps.shapeOwners[shapeA]
	if !ok || !shapeA.Sensor() {
		e, ok = ps.shapeOwners[shapeB]
		if !ok {
			return nil, n
		}
		n = n.Neg()
	}
	st := ps.contacts[e]
	if st == nil {
		st = &groundContactState{}
		ps.contacts[e] = st
	}
	return st, n
}

func (ps *PhysicsSystem) resetGroundContacts() {
	for _, st := range ps.contacts {
		st.foot = false
		st.head = false
	}
}

func (ps *PhysicsSystem) queueZoneEvent(arb *cp.Arbiter, entered bool) {
	shapeA, shapeB := arb.Shapes()
	actor, okA := ps.shapeOwners[shapeA]
	zone, okB := ps.shapeOwners[shapeB]
	if !okA || !okB {
		return
	}
	ps.zoneEvents = append(ps.zoneEvents, ecs.ZoneEvent{Actor: actor, Zone: zone, Entered: entered})
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	entities := w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind())
	for _, e := range entities {
		if _, exists := ps.entities[e]; exists {
			continue
		}
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())

		info := ps.createBodyInfo(w, e, transform, bodyComp)
		if info == nil {
			continue
		}
		ps.entities[e] = info
		for _, shape := range info.shapes {
			ps.shapeOwners[shape] = e
		}
		bodyComp.Body = info.body
		bodyComp.Shape = info.mainShape
	}
}

func (ps *PhysicsSystem) createBodyInfo(w *ecs.World, e ecs.Entity, transform *component.Transform, bodyComp *component.PhysicsBody) *bodyInfo {
	width := bodyComp.Width
	height := bodyComp.Height
	if width <= 0 || height <= 0 {
		width = common.TileSize
		height = common.TileSize
	}

	isActor := ecs.Has(w, e, component.PlayerTagComponent.Kind())
	isZone := ecs.Has(w, e, component.GravityZoneComponent.Kind())
	isEnemy := ecs.Has(w, e, component.ChaserComponent.Kind())
	filter := shapeFilterFor(w, e)

	info := &bodyInfo{static: bodyComp.Static}

	if bodyComp.Static {
		bb := cp.BB{
			L: transform.X - width/2,
			B: transform.Y - height/2,
			R: transform.X + width/2,
			T: transform.Y + height/2,
		}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		shape.SetFilter(filter)
		shape.SetCollisionType(collisionTypeSolid)
		if isZone || bodyComp.Sensor {
			shape.SetSensor(true)
		}
		if isZone {
			shape.SetCollisionType(collisionTypeZone)
		}
		ps.space.AddShape(shape)

		info.body = ps.space.StaticBody
		info.mainShape = shape
		info.shapes = []*cp.Shape{shape}
		return info
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}
	// actors never rotate
	moment := math.Inf(1)
	if !isActor && !isEnemy {
		moment = cp.MomentForBox(mass, width, height)
	}

	body := cp.NewBody(mass, moment)
	body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
	if bodyComp.CustomGravity {
		body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
			cp.BodyUpdateVelocity(body, cp.Vector{}, damping, dt)
		})
	}

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetFilter(filter)
	shape.SetSensor(bodyComp.Sensor)
	switch {
	case isActor:
		shape.SetCollisionType(collisionTypeActor)
	case isEnemy:
		shape.SetCollisionType(collisionTypeEnemy)
	default:
		shape.SetCollisionType(collisionTypeSolid)
	}

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	info.body = body
	info.mainShape = shape
	info.shapes = []*cp.Shape{shape}

	if isActor {
		for _, sensor := range ps.createGroundSensors(body, width, height) {
			ps.space.AddShape(sensor)
			info.shapes = append(info.shapes, sensor)
		}
		ps.contacts[e] = &groundContactState{}
	}
	return info
}

// createGroundSensors builds thin sensor strips below (+Y) and above (-Y) the
// body, inset from its sides. Whichever faces gravity decides groundedness.
func (ps *PhysicsSystem) createGroundSensors(body *cp.Body, width, height float64) []*cp.Shape {
	sensorFilter := cp.NewShapeFilter(cp.NO_GROUP, uint(common.CategoryPlayer), uint(common.CategorySolid))
	half := math.Max(width/2-sensorInset, width/4)

	foot := cp.NewBox2(body, cp.BB{
		L: -half,
		B: height / 2,
		R: half,
		T: height/2 + sensorThickness,
	}, 0)
	foot.SetSensor(true)
	foot.SetFilter(sensorFilter)
	foot.SetCollisionType(collisionTypeFoot)

	head := cp.NewBox2(body, cp.BB{
		L: -half,
		B: -height/2 - sensorThickness,
		R: half,
		T: -height / 2,
	}, 0)
	head.SetSensor(true)
	head.SetFilter(sensorFilter)
	head.SetCollisionType(collisionTypeHead)

	return []*cp.Shape{foot, head}
}

func shapeFilterFor(w *ecs.World, e ecs.Entity) cp.ShapeFilter {
	category := uint(common.CategorySolid)
	mask := cp.ALL_CATEGORIES
	if layer, ok := ecs.Get(w, e, component.CollisionLayerComponent.Kind()); ok {
		if layer.Category != 0 {
			category = uint(layer.Category)
		}
		if layer.Mask != 0 {
			mask = uint(layer.Mask)
		}
	}
	return cp.NewShapeFilter(cp.NO_GROUP, category, mask)
}

func (ps *PhysicsSystem) syncWorldBounds(w *ecs.World) {
	boundsEntity, ok := w.First(component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	if _, exists := ps.entities[boundsEntity]; exists {
		return
	}
	bounds, ok := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}

	worldW := bounds.Width
	worldH := bounds.Height
	if worldW <= 0 || worldH <= 0 {
		return
	}

	thickness := 1.0
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: worldW, Y: 0}},           // top
		{a: cp.Vector{X: 0, Y: worldH}, b: cp.Vector{X: worldW, Y: worldH}}, // bottom
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: worldH}},           // left
		{a: cp.Vector{X: worldW, Y: 0}, b: cp.Vector{X: worldW, Y: worldH}}, // right
	}

	info := &bodyInfo{static: true, body: ps.space.StaticBody}
	filter := cp.NewShapeFilter(cp.NO_GROUP, uint(common.CategorySolid), cp.ALL_CATEGORIES)
	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg.a, seg.b, thickness)
		shape.SetFriction(0.8)
		shape.SetFilter(filter)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
		info.shapes = append(info.shapes, shape)
		ps.shapeOwners[shape] = boundsEntity
	}

	ps.entities[boundsEntity] = info
}

func (ps *PhysicsSystem) pushVelocities(w *ecs.World) {
	for e, info := range ps.entities {
		if info.static {
			continue
		}
		vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
		if !ok {
			continue
		}
		info.body.SetVelocity(vel.X, vel.Y)
	}
}

// syncGrappleJoints mirrors each Grapple into a slide joint between the body
// and the static anchor point.
func (ps *PhysicsSystem) syncGrappleJoints(w *ecs.World) {
	for e, j := range ps.joints {
		g, ok := ecs.Get(w, e, component.GrappleComponent.Kind())
		if ok && g.Engaged && ps.entities[e] != nil {
			continue
		}
		ps.space.RemoveConstraint(j.constraint)
		delete(ps.joints, e)
	}

	ecs.ForEach(w, component.GrappleComponent.Kind(), func(e ecs.Entity, g *component.Grapple) {
		if !g.Engaged {
			return
		}
		info := ps.entities[e]
		if info == nil || info.static {
			return
		}
		anchor := cp.Vector{X: g.AnchorX, Y: g.AnchorY}
		j := ps.joints[e]
		if j != nil && j.anchor != anchor {
			ps.space.RemoveConstraint(j.constraint)
			delete(ps.joints, e)
			j = nil
		}
		if j == nil {
			slide := cp.NewSlideJoint(info.body, ps.space.StaticBody, cp.Vector{}, anchor, 0, g.Length)
			ps.space.AddConstraint(slide)
			ps.joints[e] = &grappleJoint{constraint: slide, anchor: anchor}
			return
		}
		if sj, ok := j.constraint.Class.(*cp.SlideJoint); ok {
			sj.Max = g.Length
		}
	})
}

func (ps *PhysicsSystem) pullBodies(w *ecs.World) {
	for e, info := range ps.entities {
		if info.static {
			continue
		}
		pos := info.body.Position()
		if transform, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			transform.X = pos.X
			transform.Y = pos.Y
		}
		if vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			v := info.body.Velocity()
			vel.X = v.X
			vel.Y = v.Y
		}
	}
}

// flushGroundContacts resolves the gravity-facing sensor into
// ContactSensor.Grounded and records edges. Edges accumulate across fixed
// steps until the controller consumes them.
func (ps *PhysicsSystem) flushGroundContacts(w *ecs.World) {
	for e, st := range ps.contacts {
		contact, ok := ecs.Get(w, e, component.ContactSensorComponent.Kind())
		if !ok {
			continue
		}
		g, _ := ecs.Get(w, e, component.GravityComponent.Kind())
		grounded := st.foot
		if gravitySign(g) < 0 {
			grounded = st.head
		}
		if grounded && !contact.Grounded {
			contact.GroundEntered = true
		}
		if !grounded && contact.Grounded {
			contact.GroundExited = true
		}
		contact.Grounded = grounded
	}
}

func (ps *PhysicsSystem) flushZoneEvents(w *ecs.World) {
	for _, ze := range ps.zoneEvents {
		w.Events().Push(ecs.Event{Type: ecs.EventZone, Data: ze})
	}
	ps.zoneEvents = ps.zoneEvents[:0]
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && (ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) || ecs.Has(w, e, component.LevelBoundsComponent.Kind())) {
			continue
		}

		if j, ok := ps.joints[e]; ok {
			ps.space.RemoveConstraint(j.constraint)
			delete(ps.joints, e)
		}
		for _, shape := range info.shapes {
			ps.space.RemoveShape(shape)
			delete(ps.shapeOwners, shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}

		delete(ps.entities, e)
		delete(ps.contacts, e)
		log.Debug().Uint64("entity", uint64(e)).Msg("physics body removed")
	}
}
