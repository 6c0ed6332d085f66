package scene

import (
	"github.com/Carmen-Shannon/oxy-anim/engine/profiler"
	"github.com/Carmen-Shannon/oxy-anim/engine/rig"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is animating. Scenes start active.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithRigs adds initial rigs to the scene in order, assigning IDs from 1.
//
// Parameters:
//   - rigs: the rigs to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithRigs(rigs ...*rig.Rig) SceneBuilderOption {
	return func(s *scene) {
		for _, r := range rigs {
			s.addLocked(r)
		}
	}
}

// WithWorkers sets the number of worker goroutines used to update rigs in parallel.
// Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of update workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		s.updateWorkers = max(n, 1)
	}
}

// WithProfiler attaches a profiler that is ticked after every Update.
//
// Parameters:
//   - p: the profiler
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) SceneBuilderOption {
	return func(s *scene) {
		s.profiler = p
	}
}
