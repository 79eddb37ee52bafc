package system

import (
	"github.com/milk9111/roomcam/ecs"
	"github.com/milk9111/roomcam/ecs/component"
)

// SeparatorListener receives separator activations by separator name.
type SeparatorListener interface {
	SeparatorActivating(name string, dir component.Direction4)
	SeparatorActivated(name string, dir component.Direction4)
}

// ScriptSystem forwards separator events to the map script. It runs last so it
// sees events queued by the other systems in the same tick.
type ScriptSystem struct {
	listener SeparatorListener
}

func NewScriptSystem(listener SeparatorListener) *ScriptSystem {
	return &ScriptSystem{listener: listener}
}

func (s *ScriptSystem) Update(w *ecs.World) {
	// Listeners may queue more events.
	for w.Events().Len() > 0 {
		for _, evt := range w.Events().Drain() {
			s.dispatch(w, evt)
		}
	}
}

func (s *ScriptSystem) dispatch(w *ecs.World, evt ecs.Event) {
	data, ok := evt.Data.(ecs.SeparatorEvent)
	if !ok || s.listener == nil {
		return
	}
	sep, _ := ecs.Get(w, data.Separator, component.SeparatorComponent)
	dir := component.Direction4(data.Direction)
	switch evt.Type {
	case ecs.EventSeparatorActivating:
		s.listener.SeparatorActivating(sep.Name, dir)
	case ecs.EventSeparatorActivated:
		s.listener.SeparatorActivated(sep.Name, dir)
	}
}
