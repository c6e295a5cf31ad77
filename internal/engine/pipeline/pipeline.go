// Package pipeline owns global render-pipeline state shared by every
// renderer: macro flags that gate shader variants and the notification
// fan-out that triggers downstream recompilation when they change.
package pipeline

import (
	"go.uber.org/zap"

	"github.com/emberfall/caster/internal/logger"
)

// Listener is invoked when global pipeline state changes. Listeners
// typically schedule shader macro recompilation.
type Listener func()

// State is the global pipeline state object. Construct one per pipeline
// and share the reference; it is not a package-level singleton so tests
// can run against isolated instances.
//
// State is driven from the render thread only; it performs no locking.
type State struct {
	receiveShadow bool
	listeners     []Listener
	changes       int
}

// NewState returns pipeline state with all macro flags off.
func NewState() *State {
	return &State{}
}

// ReceiveShadowFlag reports whether shader variants compile the
// shadow-receiving code path.
func (s *State) ReceiveShadowFlag() bool {
	return s.receiveShadow
}

// SetReceiveShadowFlag sets the shadow-receiving macro flag. The caller is
// expected to follow a flag change with NotifyGlobalStateChanged.
func (s *State) SetReceiveShadowFlag(v bool) {
	s.receiveShadow = v
}

// OnGlobalStateChanged registers a listener for state-changed notifications.
func (s *State) OnGlobalStateChanged(fn Listener) {
	s.listeners = append(s.listeners, fn)
}

// NotifyGlobalStateChanged fans the state-changed notification out to all
// registered listeners. Each call notifies each listener exactly once.
func (s *State) NotifyGlobalStateChanged() {
	s.changes++
	logger.Debug("pipeline state changed",
		zap.Int("revision", s.changes),
		zap.Bool("receive_shadow", s.receiveShadow),
	)
	for _, fn := range s.listeners {
		fn()
	}
}

// Revision returns the number of state-changed notifications so far.
func (s *State) Revision() int {
	return s.changes
}
