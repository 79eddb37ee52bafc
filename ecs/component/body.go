package component

// Body is the size of an entity's bounding box. Its center point is
// Transform + Body/2.
type Body struct {
	Width  int
	Height int
}

var BodyComponent = NewComponent[Body]()
