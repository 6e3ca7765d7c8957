package stage3d

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// LoopMode controls what an AnimationAction does when it reaches either end of its clip.
type LoopMode int

const (
	LoopRepeat   LoopMode = iota // Wrap back to the start; never finishes
	LoopOnce                     // Play to the end once and finish
	LoopPingPong                 // Reverse direction at either end; never finishes
)

// AnimationAction is a playable instance of an Animation clip bound to an AnimationMixer's root. An action keeps its own
// playback clock, time scale and blend weight. Actions are created through AnimationMixer.ClipAction, and their setters
// return the action so calls can be chained:
//
//	action.Reset().SetEffectiveTimeScale(1).SetEffectiveWeight(1).FadeIn(0.5).Play()
type AnimationAction struct {
	mixer *AnimationMixer
	clip  *Animation

	Loop              LoopMode
	ClampWhenFinished bool // If true, a LoopOnce action holds its final pose after finishing instead of stopping.

	time      float64
	timeScale float64
	weight    float64
	direction float64

	running  bool
	finished bool

	fade      *gween.Tween
	fadingOut bool
}

func newAnimationAction(mixer *AnimationMixer, clip *Animation) *AnimationAction {
	return &AnimationAction{
		mixer:     mixer,
		clip:      clip,
		Loop:      LoopRepeat,
		timeScale: 1,
		weight:    1,
		direction: 1,
	}
}

// Name returns the name of the action's clip.
func (action *AnimationAction) Name() string {
	return action.clip.Name
}

// Clip returns the Animation the action plays.
func (action *AnimationAction) Clip() *Animation {
	return action.clip
}

// Mixer returns the AnimationMixer that owns the action.
func (action *AnimationAction) Mixer() *AnimationMixer {
	return action.mixer
}

// Play starts (or resumes) the action.
func (action *AnimationAction) Play() *AnimationAction {
	action.running = true
	return action
}

// Stop stops the action and rewinds it. A stopped action no longer contributes to the mixer's blended pose.
func (action *AnimationAction) Stop() *AnimationAction {
	action.running = false
	return action.Reset()
}

// Reset rewinds the action to the beginning of its clip, clears its finished state and cancels any running fade.
// Reset does not change whether the action is running.
func (action *AnimationAction) Reset() *AnimationAction {
	action.time = 0
	action.direction = 1
	action.finished = false
	action.stopFading()
	return action
}

// FadeIn fades the action's weight from 0 to 1 over duration seconds. A duration of zero or less sets the weight to 1 at once.
func (action *AnimationAction) FadeIn(duration float64) *AnimationAction {
	action.stopFading()
	if duration <= 0 {
		action.weight = 1
		return action
	}
	action.weight = 0
	action.fade = gween.New(0, 1, float32(duration), ease.Linear)
	return action
}

// FadeOut fades the action's weight from its current value to 0 over duration seconds, stopping the action once the fade completes.
// A duration of zero or less stops it at once.
func (action *AnimationAction) FadeOut(duration float64) *AnimationAction {
	action.stopFading()
	if duration <= 0 || action.weight <= 0 {
		action.weight = 0
		action.running = false
		return action
	}
	action.fade = gween.New(float32(action.weight), 0, float32(duration), ease.Linear)
	action.fadingOut = true
	return action
}

// IsFading returns whether the action is in the middle of a fade in or out.
func (action *AnimationAction) IsFading() bool {
	return action.fade != nil
}

// IsFadingOut returns whether the action is in the middle of a fade out.
func (action *AnimationAction) IsFadingOut() bool {
	return action.fade != nil && action.fadingOut
}

func (action *AnimationAction) stopFading() {
	action.fade = nil
	action.fadingOut = false
}

// SetEffectiveWeight sets the action's blend weight, cancelling any running fade.
func (action *AnimationAction) SetEffectiveWeight(weight float64) *AnimationAction {
	action.stopFading()
	action.weight = weight
	return action
}

// EffectiveWeight returns the weight the action currently blends with; a stopped action's effective weight is 0.
func (action *AnimationAction) EffectiveWeight() float64 {
	if !action.running {
		return 0
	}
	return action.weight
}

// SetEffectiveTimeScale sets the speed the action plays at; 1 is normal speed, and negative values play backwards.
func (action *AnimationAction) SetEffectiveTimeScale(timeScale float64) *AnimationAction {
	action.timeScale = timeScale
	return action
}

// EffectiveTimeScale returns the action's time scale.
func (action *AnimationAction) EffectiveTimeScale() float64 {
	return action.timeScale
}

// IsRunning returns whether the action is playing and contributing to the blended pose.
func (action *AnimationAction) IsRunning() bool {
	return action.running
}

// Finished returns whether a LoopOnce action has reached its end since it was last reset.
func (action *AnimationAction) Finished() bool {
	return action.finished
}

// Time returns the action's local playback time in seconds.
func (action *AnimationAction) Time() float64 {
	return action.time
}

// SetTime sets the action's local playback time, clamped to the clip's length.
func (action *AnimationAction) SetTime(t float64) *AnimationAction {
	action.time = math.Max(0, math.Min(t, action.clip.Length))
	return action
}

// update advances the action's fade and clock by dt seconds, reporting whether it finished or looped during this step.
func (action *AnimationAction) update(dt float64) (finished, looped bool) {

	if !action.running {
		return false, false
	}

	if action.fade != nil {
		w, done := action.fade.Update(float32(dt))
		action.weight = float64(w)
		if done {
			fadedOut := action.fadingOut
			action.stopFading()
			if fadedOut {
				action.weight = 0
				action.running = false
				return false, false
			}
		}
	}

	if action.finished {
		return false, false
	}

	length := action.clip.Length
	action.time += dt * action.timeScale * action.direction

	switch action.Loop {

	case LoopOnce:

		if action.time >= length || action.time <= 0 && action.timeScale*action.direction < 0 {

			if action.time >= length {
				action.time = length
			} else {
				action.time = 0
			}

			action.finished = true
			if !action.ClampWhenFinished {
				action.running = false
			}
			return true, false

		}

	case LoopRepeat:

		if length <= 0 {
			action.time = 0
		} else if action.time >= length {
			action.time = math.Mod(action.time, length)
			looped = true
		} else if action.time < 0 {
			action.time = length + math.Mod(action.time, length)
			looped = true
		}

	case LoopPingPong:

		if length <= 0 {
			action.time = 0
		} else if action.time > length {
			action.time = math.Max(0, 2*length-action.time)
			action.direction *= -1
			looped = true
		} else if action.time < 0 {
			action.time = math.Min(length, -action.time)
			action.direction *= -1
			looped = true
		}

	}

	return false, looped

}
