package camera

import (
	"fmt"

	"github.com/milk9111/roomcam/common"
	"github.com/milk9111/roomcam/ecs/component"
)

// ApplyMapBounds keeps area inside a map of the given size. On an axis where
// the map is smaller than area, area is centered on the map instead.
func ApplyMapBounds(area common.Rect, mapSize common.Size) common.Rect {
	if mapSize.Width < area.Width {
		area.X = (mapSize.Width - area.Width) / 2
	} else {
		area.X = common.ClampInt(area.X, 0, mapSize.Width-area.Width)
	}

	if mapSize.Height < area.Height {
		area.Y = (mapSize.Height - area.Height) / 2
	} else {
		area.Y = common.ClampInt(area.Y, 0, mapSize.Height-area.Height)
	}
	return area
}

// crossesVertical reports whether the line of vertical separator sep lies
// strictly inside [x, x+w) and sep overlaps [y, y+h).
func crossesVertical(sep component.Separator, x, y, w, h int) bool {
	line := sep.Line()
	return x < line && line < x+w &&
		sep.Y < y+h && y < sep.Y+sep.Height
}

func crossesHorizontal(sep component.Separator, x, y, w, h int) bool {
	line := sep.Line()
	return y < line && line < y+h &&
		sep.X < x+w && x < sep.X+sep.Width
}

// nearestSide returns the origin that puts line on the closest edge of a span
// [origin, origin+extent). On a tie the span moves after the line.
func nearestSide(origin, extent, line int) int {
	before := line - origin
	after := origin + extent - line
	if before > after {
		return line - extent
	}
	return line
}

// ApplySeparators moves area so it does not straddle any separator.
//
// Every separator cutting through area proposes an adjusted coordinate on its
// split axis. When both axes get adjusted, the area may sit at a T or corner
// junction where one adjustment makes the other moot, so each applied
// separator is tested again against the other axis' adjusted coordinate and
// an axis keeps its adjustment only if one of its separators still overlaps.
//
// Separators are expected to be at least one area apart. When they are not,
// the last separator scanned on an axis wins and the area may still straddle
// the others.
func ApplySeparators(area common.Rect, separators []component.Separator) common.Rect {
	x, y := area.X, area.Y
	w, h := area.Width, area.Height

	adjustedX, adjustedY := x, y
	var applied []component.Separator
	for _, sep := range separators {
		switch sep.Orientation {
		case component.Vertical:
			if crossesVertical(sep, x, y, w, h) {
				adjustedX = nearestSide(x, w, sep.Line())
				applied = append(applied, sep)
			}
		case component.Horizontal:
			if crossesHorizontal(sep, x, y, w, h) {
				adjustedY = nearestSide(y, h, sep.Line())
				applied = append(applied, sep)
			}
		default:
			panic(fmt.Sprintf("camera: invalid separator orientation %d", sep.Orientation))
		}
	}

	keepX, keepY := true, true
	if adjustedX != x && adjustedY != y {
		keepX, keepY = false, false
		for _, sep := range applied {
			if sep.Orientation == component.Vertical {
				if crossesVertical(sep, x, adjustedY, w, h) {
					keepX = true
				}
			} else if crossesHorizontal(sep, adjustedX, y, w, h) {
				keepY = true
			}
		}
	}

	if keepX {
		area.X = adjustedX
	}
	if keepY {
		area.Y = adjustedY
	}
	return area
}

// ApplySeparatorsAndMapBounds resolves separators first and map edges last,
// so a separator can never push the area out of the map.
func ApplySeparatorsAndMapBounds(area common.Rect, separators []component.Separator, mapSize common.Size) common.Rect {
	return ApplyMapBounds(ApplySeparators(area, separators), mapSize)
}
