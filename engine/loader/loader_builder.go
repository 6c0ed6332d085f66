package loader

import (
	"github.com/Carmen-Shannon/oxy-anim/engine/rig"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithSkinIndex is an option builder that selects which skin of a multi-skin document defines
// the skeleton. Defaults to 0.
//
// Parameters:
//   - index: the skin index
//
// Returns:
//   - LoaderBuilderOption: a function that applies the skin index option to a loader
func WithSkinIndex(index int) LoaderBuilderOption {
	return func(l *loader) {
		l.settings.skinIndex = index
	}
}

// WithRigOptions is an option builder that forwards options to every rig the Loader builds.
//
// Parameters:
//   - opts: the rig options, applied after the loader's own skin and animation options
//
// Returns:
//   - LoaderBuilderOption: a function that applies the rig options to a loader
func WithRigOptions(opts ...rig.RigBuilderOption) LoaderBuilderOption {
	return func(l *loader) {
		l.settings.rigOptions = append(l.settings.rigOptions, opts...)
	}
}

// WithRig is an option builder that pre-populates the rig cache.
//
// Parameters:
//   - key: the cache key for the rig
//   - r: the rig to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the rig option to a loader
func WithRig(key string, r *rig.Rig) LoaderBuilderOption {
	return func(l *loader) {
		l.rigCache[key] = r
	}
}
