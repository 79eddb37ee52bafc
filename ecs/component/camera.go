package component

// Viewport mirrors the camera rectangle onto the camera entity so render and
// debug systems can read it without holding the camera itself.
type Viewport struct {
	X, Y          int
	Width, Height int
	Moving        bool
}

var ViewportComponent = NewComponent[Viewport]()
