package component

// HeroTag marks the entity the camera follows by default.
type HeroTag struct{}

var HeroTagComponent = NewComponent[HeroTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()
