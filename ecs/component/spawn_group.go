package component

// SpawnGroup ties the four bodies created from one spawn point together for
// bookkeeping only. The engine sees them as unrelated bodies.
type SpawnGroup struct {
	Index   int
	OriginX float64
	OriginY float64
}

var SpawnGroupComponent = NewComponent[SpawnGroup]("spawn_group")
