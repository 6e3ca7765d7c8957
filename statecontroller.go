package stage3d

import (
	"slices"
)

// StateControllerOptions configures an AnimationStateController.
type StateControllerOptions struct {
	// LoopingStates is the canonical ordering of the character's locomotion states. States from index 4 onwards
	// ("Death", "Sitting", "Standing" for the robot) play once and hold their final pose.
	LoopingStates []string
	// OneShotNames are the emotes: actions that play once, after which the last state set resumes.
	OneShotNames []string
	// StateFadeDuration is the crossfade time in seconds used by SetState.
	StateFadeDuration float64
	// EmoteFadeDuration is the crossfade time in seconds the demo GUI passes to TriggerEmote.
	EmoteFadeDuration float64
}

// oneShotStateIndex is the index in LoopingStates from which states stop looping.
const oneShotStateIndex = 4

// DefaultStateControllerOptions returns the options for the RobotExpressive character.
func DefaultStateControllerOptions() StateControllerOptions {
	return StateControllerOptions{
		LoopingStates:     []string{"Idle", "Walking", "Running", "Dance", "Death", "Sitting", "Standing"},
		OneShotNames:      []string{"Jump", "Yes", "No", "Wave", "Punch", "ThumbsUp"},
		StateFadeDuration: 0.5,
		EmoteFadeDuration: 0.2,
	}
}

// AnimationStateController switches a character between named animation actions. Exactly one action is active at a time;
// switching crossfades from the previous one. Emotes are one-shot actions that, once finished, crossfade back to the
// last state that was set.
type AnimationStateController struct {
	mixer   *AnimationMixer
	options StateControllerOptions

	actions map[string]*AnimationAction
	order   []string
	oneShot map[string]bool

	active        *AnimationAction
	previous      *AnimationAction
	restoreTarget string

	pendingRestore *Subscription
}

// NewAnimationStateController creates one action per clip on the mixer. Clips named in options.OneShotNames, or listed in
// options.LoopingStates at index 4 or later, are set to play once and clamp on their final frame. No action plays until
// the first SetState.
func NewAnimationStateController(mixer *AnimationMixer, clips []*Animation, options StateControllerOptions) *AnimationStateController {

	controller := &AnimationStateController{
		mixer:   mixer,
		options: options,
		actions: map[string]*AnimationAction{},
		oneShot: map[string]bool{},
	}

	for _, clip := range clips {

		action := mixer.ClipAction(clip)

		if _, exists := controller.actions[clip.Name]; !exists {
			controller.order = append(controller.order, clip.Name)
		}
		controller.actions[clip.Name] = action

		if slices.Contains(options.OneShotNames, clip.Name) || slices.Index(options.LoopingStates, clip.Name) >= oneShotStateIndex {
			action.ClampWhenFinished = true
			action.Loop = LoopOnce
			controller.oneShot[clip.Name] = true
		}

	}

	return controller

}

// SetState crossfades to the named state over the StateFadeDuration, cancelling any emote waiting to restore. Any name
// from LoopingStates, including the ones that play once, becomes the state emotes return to. Setting the current state
// again restarts it.
func (controller *AnimationStateController) SetState(name string) error {

	if _, exists := controller.actions[name]; !exists {
		return &UnknownStateError{Name: name}
	}

	controller.cancelRestore()

	if slices.Contains(controller.options.LoopingStates, name) {
		controller.restoreTarget = name
	}

	controller.transition(name, controller.options.StateFadeDuration)

	return nil

}

// TriggerEmote crossfades to the named one-shot action over duration seconds. When it finishes, the controller crossfades
// back to the restore target over the same duration; triggering another emote or setting a state before then cancels that
// return. An unknown name or a looping action is rejected without changing anything.
func (controller *AnimationStateController) TriggerEmote(name string, duration float64) error {

	action, exists := controller.actions[name]
	if !exists {
		return &UnknownStateError{Name: name}
	}

	if !controller.oneShot[name] {
		return ErrNotOneShot
	}

	controller.transition(name, duration)

	controller.cancelRestore()

	var sub *Subscription
	sub = controller.mixer.OnFinished(func(event AnimationEvent) {

		if event.Action != action || controller.pendingRestore != sub {
			return
		}

		controller.cancelRestore()

		if controller.restoreTarget != "" {
			controller.transition(controller.restoreTarget, duration)
		}

	})

	controller.pendingRestore = sub

	return nil

}

func (controller *AnimationStateController) cancelRestore() {
	if controller.pendingRestore != nil {
		controller.pendingRestore.Cancel()
		controller.pendingRestore = nil
	}
}

// transition makes the named action active, fading out the action it replaces and fading the new one in from the start.
func (controller *AnimationStateController) transition(name string, duration float64) {

	prev := controller.active
	controller.active = controller.actions[name]
	controller.previous = prev

	if prev != nil && prev != controller.active {
		prev.FadeOut(duration)
	}

	controller.active.
		Reset().
		SetEffectiveTimeScale(1).
		SetEffectiveWeight(1).
		FadeIn(duration).
		Play()

}

// ActiveAction returns the current action, or nil before the first SetState.
func (controller *AnimationStateController) ActiveAction() *AnimationAction {
	return controller.active
}

// PreviousAction returns the action that was active before the current one, if any.
func (controller *AnimationStateController) PreviousAction() *AnimationAction {
	return controller.previous
}

// RestoreTarget returns the name of the state emotes return to; it's empty until a state has been set.
func (controller *AnimationStateController) RestoreTarget() string {
	return controller.restoreTarget
}

// HasPendingRestore returns whether an emote is waiting to finish before restoring the last state.
func (controller *AnimationStateController) HasPendingRestore() bool {
	return controller.pendingRestore != nil && controller.pendingRestore.Active()
}

// Action returns the action with the given name, or nil.
func (controller *AnimationStateController) Action(name string) *AnimationAction {
	return controller.actions[name]
}

// IsOneShot returns whether the named action plays once rather than looping.
func (controller *AnimationStateController) IsOneShot(name string) bool {
	return controller.oneShot[name]
}

// States returns the names from the options' LoopingStates that the controller has actions for, in order.
func (controller *AnimationStateController) States() []string {
	out := []string{}
	for _, name := range controller.options.LoopingStates {
		if _, exists := controller.actions[name]; exists {
			out = append(out, name)
		}
	}
	return out
}

// Emotes returns the names from the options' OneShotNames that the controller has actions for, in order.
func (controller *AnimationStateController) Emotes() []string {
	out := []string{}
	for _, name := range controller.options.OneShotNames {
		if _, exists := controller.actions[name]; exists {
			out = append(out, name)
		}
	}
	return out
}

// ActionNames returns the names of every action, in clip order.
func (controller *AnimationStateController) ActionNames() []string {
	return append([]string{}, controller.order...)
}

// Options returns the controller's options.
func (controller *AnimationStateController) Options() StateControllerOptions {
	return controller.options
}

// SetFadeDurations changes the crossfade times, as when the demo's configuration is reloaded.
func (controller *AnimationStateController) SetFadeDurations(state, emote float64) {
	controller.options.StateFadeDuration = state
	controller.options.EmoteFadeDuration = emote
}
