package component

// PhysicsBody is the collider an entity is registered with in the spatial
// index: a vertical cylinder whose top HeadHeight band counts as head.
type PhysicsBody struct {
	Radius     float64
	Height     float64
	HeadHeight float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
