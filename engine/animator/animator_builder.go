package animator

import (
	"github.com/Carmen-Shannon/oxy-anim/engine/skin"
)

// AnimationControllerBuilderOption is a functional option for configuring an AnimationController during construction.
type AnimationControllerBuilderOption func(*animationController)

// WithPlaybackSpeed is an option builder that sets the initial playback speed multiplier.
//
// Parameters:
//   - speed: the speed multiplier (1.0 = normal, 0.5 = half speed)
//
// Returns:
//   - AnimationControllerBuilderOption: a function that applies the speed option to a controller
func WithPlaybackSpeed(speed float32) AnimationControllerBuilderOption {
	return func(c *animationController) {
		c.speed = speed
	}
}

// WithSkin is an option builder that attaches a Skin whose joint matrices are refreshed at the
// end of every Update and Stop. The skin must be bound to the controller's skeleton.
//
// Parameters:
//   - s: the skin to keep in sync with the skeleton
//
// Returns:
//   - AnimationControllerBuilderOption: a function that applies the skin option to a controller
func WithSkin(s *skin.Skin) AnimationControllerBuilderOption {
	return func(c *animationController) {
		c.skin = s
	}
}
