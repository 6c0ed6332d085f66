package rig

import (
	"github.com/Carmen-Shannon/oxy-anim/engine/animation"
	"github.com/Carmen-Shannon/oxy-anim/engine/animator"
	"github.com/Carmen-Shannon/oxy-anim/engine/skin"
)

// rigConfig collects construction-only settings that are not stored on the Rig.
type rigConfig struct {
	controllerOptions []animator.AnimationControllerBuilderOption
}

// RigBuilderOption is a functional option for configuring a Rig via NewRig.
type RigBuilderOption func(*Rig, *rigConfig)

// WithSkin is an option builder that adds a skin bound to the rig's skeleton.
//
// Parameters:
//   - s: the skin to add
//
// Returns:
//   - RigBuilderOption: a function that applies the skin option to a rig
func WithSkin(s *skin.Skin) RigBuilderOption {
	return func(r *Rig, _ *rigConfig) {
		r.skins = append(r.skins, s)
	}
}

// WithAnimations is an option builder that adds animation clips to the rig.
//
// Parameters:
//   - anims: the clips to add, in order
//
// Returns:
//   - RigBuilderOption: a function that applies the animations option to a rig
func WithAnimations(anims ...*animation.Animation) RigBuilderOption {
	return func(r *Rig, _ *rigConfig) {
		for _, a := range anims {
			r.addAnimation(a)
		}
	}
}

// WithControllerOptions is an option builder that forwards options to the rig's AnimationController.
//
// Parameters:
//   - opts: the controller options
//
// Returns:
//   - RigBuilderOption: a function that applies the controller options to a rig
func WithControllerOptions(opts ...animator.AnimationControllerBuilderOption) RigBuilderOption {
	return func(_ *Rig, cfg *rigConfig) {
		cfg.controllerOptions = append(cfg.controllerOptions, opts...)
	}
}
