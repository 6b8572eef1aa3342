package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores the Chipmunk2D handles backing an entity. It is filled
// in by the physics system when the entity is registered with the space.
type PhysicsBody struct {
	Body  *cp.Body
	Shape *cp.Shape
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]("physics_body")
