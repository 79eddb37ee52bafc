package component

// Transform is the top-left position of an entity in map pixels.
type Transform struct {
	X int
	Y int
}

var TransformComponent = NewComponent[Transform]()
