package component

// MapBounds stores the static size of the current map in pixels.
type MapBounds struct {
	Width  int
	Height int
}

var MapBoundsComponent = NewComponent[MapBounds]()
