package rig

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-anim/engine/animation"
	"github.com/Carmen-Shannon/oxy-anim/engine/animator"
	"github.com/Carmen-Shannon/oxy-anim/engine/skeleton"
	"github.com/Carmen-Shannon/oxy-anim/engine/skin"
)

// ErrUnknownClip is returned when a clip name does not match any animation on the rig.
var ErrUnknownClip = errors.New("unknown animation clip")

// Rig bundles a skeleton with its skins, its animation clips and the controller that plays them.
// It is what a loader produces and what a scene ticks each frame.
type Rig struct {
	name       string
	skeleton   *skeleton.Skeleton
	skins      []*skin.Skin
	animations []*animation.Animation
	byName     map[string]int
	controller animator.AnimationController
}

// NewRig creates a rig around skel. The controller is created after all options are applied,
// with the first skin (if any) attached so its joint matrices follow every Update.
//
// Parameters:
//   - name: the rig identifier
//   - skel: the rig's skeleton
//   - options: variadic list of RigBuilderOption functions to configure the rig
//
// Returns:
//   - *Rig: the new rig
func NewRig(name string, skel *skeleton.Skeleton, options ...RigBuilderOption) *Rig {
	r := &Rig{
		name:     name,
		skeleton: skel,
		byName:   make(map[string]int),
	}

	cfg := &rigConfig{}
	for _, opt := range options {
		opt(r, cfg)
	}

	controllerOpts := cfg.controllerOptions
	if len(r.skins) > 0 {
		controllerOpts = append(controllerOpts, animator.WithSkin(r.skins[0]))
	}
	r.controller = animator.NewAnimationController(skel, controllerOpts...)

	skel.UpdateWorldTransforms()
	for _, s := range r.skins {
		s.UpdateJointMatrices()
	}
	return r
}

// Name returns the rig identifier.
func (r *Rig) Name() string {
	return r.name
}

// Skeleton returns the rig's skeleton.
func (r *Rig) Skeleton() *skeleton.Skeleton {
	return r.skeleton
}

// Skins returns the rig's skins. The first one is refreshed by the controller.
func (r *Rig) Skins() []*skin.Skin {
	return r.skins
}

// Controller returns the rig's playback controller.
func (r *Rig) Controller() animator.AnimationController {
	return r.controller
}

// Animations returns all clips in load order.
func (r *Rig) Animations() []*animation.Animation {
	return r.animations
}

// AnimationNames returns the names of all clips in load order.
func (r *Rig) AnimationNames() []string {
	names := make([]string, len(r.animations))
	for i, a := range r.animations {
		names[i] = a.Name()
	}
	return names
}

// Animation returns the clip with the given name.
//
// Parameters:
//   - name: the clip name
//
// Returns:
//   - *animation.Animation: the clip, or nil
//   - bool: false if no clip has this name
func (r *Rig) Animation(name string) (*animation.Animation, bool) {
	idx, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return r.animations[idx], true
}

// Play starts the named clip on the rig's controller.
//
// Parameters:
//   - name: the clip name
//   - loop: whether playback wraps around
//
// Returns:
//   - error: ErrUnknownClip if the rig has no clip with this name
func (r *Rig) Play(name string, loop bool) error {
	a, ok := r.Animation(name)
	if !ok {
		return fmt.Errorf("rig %q: clip %q: %w", r.name, name, ErrUnknownClip)
	}
	r.controller.Play(a, loop)
	return nil
}

// Update advances the controller and refreshes every skin after the first, which the
// controller refreshes itself.
//
// Parameters:
//   - deltaTime: elapsed time since the last frame in seconds
func (r *Rig) Update(deltaTime float32) {
	if !r.controller.IsPlaying() {
		return
	}
	r.controller.Update(deltaTime)
	for _, s := range r.skins[min(1, len(r.skins)):] {
		s.UpdateJointMatrices()
	}
}

// addAnimation registers a clip; a later clip with the same name replaces the earlier lookup.
func (r *Rig) addAnimation(a *animation.Animation) {
	r.byName[a.Name()] = len(r.animations)
	r.animations = append(r.animations, a)
}
