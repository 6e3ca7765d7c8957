package stage3d

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T) (*AnimationMixer, *AnimationStateController) {
	t.Helper()

	root, _ := newTestRig()
	mixer := NewAnimationMixer(root)
	options := DefaultStateControllerOptions()

	clips := []*Animation{}
	for i, name := range append(append([]string{}, options.LoopingStates...), options.OneShotNames...) {
		y := float64(i + 1)
		clips = append(clips, newPositionClip(name, "Hips", NewVector(0, 0, 0), NewVector(0, y, 0), 1))
	}

	controller := NewAnimationStateController(mixer, clips, options)
	require.NotNil(t, controller)
	return mixer, controller
}

func finish(mixer *AnimationMixer, controller *AnimationStateController, name string) {
	mixer.Dispatch(AnimationEvent{Type: AnimationEventFinished, Action: controller.Action(name), Direction: 1})
}

func activeName(controller *AnimationStateController) string {
	if controller.ActiveAction() == nil {
		return ""
	}
	return controller.ActiveAction().Name()
}

func TestNoActionBeforeFirstState(t *testing.T) {
	_, controller := newTestController(t)
	assert.Nil(t, controller.ActiveAction())
	assert.Empty(t, controller.RestoreTarget())
}

func TestSetStateActivatesEachState(t *testing.T) {

	_, controller := newTestController(t)

	for _, name := range controller.States() {
		require.NoError(t, controller.SetState(name))
		assert.Equal(t, name, activeName(controller))
		assert.True(t, controller.ActiveAction().IsRunning())
	}

	for _, name := range controller.Emotes() {
		require.NoError(t, controller.SetState(name))
		assert.Equal(t, name, activeName(controller))
	}

}

func TestOneShotMarking(t *testing.T) {

	_, controller := newTestController(t)

	for _, name := range []string{"Death", "Sitting", "Standing", "Jump", "Yes", "No", "Wave", "Punch", "ThumbsUp"} {
		assert.True(t, controller.IsOneShot(name), name)
		assert.Equal(t, LoopOnce, controller.Action(name).Loop, name)
		assert.True(t, controller.Action(name).ClampWhenFinished, name)
	}

	for _, name := range []string{"Idle", "Walking", "Running", "Dance"} {
		assert.False(t, controller.IsOneShot(name), name)
		assert.Equal(t, LoopRepeat, controller.Action(name).Loop, name)
	}

	assert.Equal(t, []string{"Idle", "Walking", "Running", "Dance", "Death", "Sitting", "Standing"}, controller.States())
	assert.Equal(t, []string{"Jump", "Yes", "No", "Wave", "Punch", "ThumbsUp"}, controller.Emotes())
	assert.Len(t, controller.ActionNames(), 13)

}

func TestSetStateRestartsCurrentState(t *testing.T) {

	mixer, controller := newTestController(t)

	require.NoError(t, controller.SetState("Walking"))
	updateFor(mixer, 3, 0.125)
	assert.InDelta(t, 0.375, controller.ActiveAction().Time(), 1e-9)

	require.NoError(t, controller.SetState("Walking"))
	assert.Equal(t, "Walking", activeName(controller))
	assert.Zero(t, controller.ActiveAction().Time())
	assert.True(t, controller.ActiveAction().IsRunning())
	assert.False(t, controller.ActiveAction().IsFadingOut())

}

func TestSetStateCrossfades(t *testing.T) {

	mixer, controller := newTestController(t)

	require.NoError(t, controller.SetState("Idle"))
	updateFor(mixer, 6, 0.125)

	idle := controller.Action("Idle")
	assert.InDelta(t, 1, idle.EffectiveWeight(), 1e-6)

	require.NoError(t, controller.SetState("Walking"))
	assert.Same(t, idle, controller.PreviousAction())
	assert.True(t, idle.IsFadingOut())

	walking := controller.ActiveAction()
	assert.Zero(t, walking.EffectiveWeight())

	updateFor(mixer, 2, 0.125)
	assert.InDelta(t, 0.5, idle.EffectiveWeight(), 1e-4)
	assert.InDelta(t, 0.5, walking.EffectiveWeight(), 1e-4)

	updateFor(mixer, 3, 0.125)
	assert.False(t, idle.IsRunning())
	assert.InDelta(t, 1, walking.EffectiveWeight(), 1e-6)

}

func TestEmoteRestoresLastLoopingState(t *testing.T) {

	mixer, controller := newTestController(t)

	require.NoError(t, controller.SetState("Walking"))
	require.NoError(t, controller.TriggerEmote("Jump", 0.2))

	assert.Equal(t, "Jump", activeName(controller))
	assert.Equal(t, "Walking", controller.RestoreTarget())
	assert.True(t, controller.HasPendingRestore())

	finish(mixer, controller, "Jump")

	assert.Equal(t, "Walking", activeName(controller))
	assert.False(t, controller.HasPendingRestore())
	assert.Zero(t, mixer.ListenerCount())

}

func TestEmoteRestoresWhenClipEnds(t *testing.T) {

	mixer, controller := newTestController(t)

	require.NoError(t, controller.SetState("Idle"))
	require.NoError(t, controller.SetState("Walking"))
	require.NoError(t, controller.TriggerEmote("Jump", 0.2))

	jump := controller.Action("Jump")

	updateFor(mixer, 7, 0.125)
	assert.Equal(t, "Jump", activeName(controller))
	assert.False(t, jump.Finished())

	updateFor(mixer, 2, 0.125)
	assert.True(t, jump.Finished())
	assert.Equal(t, "Walking", activeName(controller))
	assert.True(t, jump.IsFadingOut())

	updateFor(mixer, 4, 0.125)
	assert.False(t, jump.IsRunning())
	assert.InDelta(t, 1, controller.ActiveAction().EffectiveWeight(), 1e-6)

}

func TestSupersededEmoteDoesNotRestore(t *testing.T) {

	mixer, controller := newTestController(t)

	require.NoError(t, controller.SetState("Walking"))
	require.NoError(t, controller.TriggerEmote("Jump", 0.2))
	require.NoError(t, controller.SetState("Running"))

	assert.False(t, controller.HasPendingRestore())

	finish(mixer, controller, "Jump")
	assert.Equal(t, "Running", activeName(controller))

}

func TestEmoteSupersededByEmote(t *testing.T) {

	mixer, controller := newTestController(t)

	require.NoError(t, controller.SetState("Walking"))
	require.NoError(t, controller.TriggerEmote("Jump", 0.2))
	require.NoError(t, controller.TriggerEmote("Wave", 0.2))

	finish(mixer, controller, "Jump")
	assert.Equal(t, "Wave", activeName(controller))
	assert.True(t, controller.HasPendingRestore())

	finish(mixer, controller, "Wave")
	assert.Equal(t, "Walking", activeName(controller))
	assert.Equal(t, 0, mixer.ListenerCount())

}

func TestRetriggeringEmoteRegistersOneRestore(t *testing.T) {

	mixer, controller := newTestController(t)

	require.NoError(t, controller.SetState("Idle"))
	require.NoError(t, controller.TriggerEmote("Punch", 0.2))
	require.NoError(t, controller.TriggerEmote("Punch", 0.2))

	assert.Equal(t, 1, mixer.ListenerCount())

	finish(mixer, controller, "Punch")
	assert.Equal(t, "Idle", activeName(controller))

}

func TestFinishedEventForAnotherActionIsIgnored(t *testing.T) {

	mixer, controller := newTestController(t)

	require.NoError(t, controller.SetState("Walking"))
	require.NoError(t, controller.TriggerEmote("Jump", 0.2))

	finish(mixer, controller, "Wave")

	assert.Equal(t, "Jump", activeName(controller))
	assert.True(t, controller.HasPendingRestore())

}

func TestEmoteWithoutRestoreTarget(t *testing.T) {

	mixer, controller := newTestController(t)

	require.NoError(t, controller.TriggerEmote("Yes", 0.2))
	finish(mixer, controller, "Yes")

	assert.Equal(t, "Yes", activeName(controller))
	assert.False(t, controller.HasPendingRestore())

}

func TestOneShotStateBecomesRestoreTarget(t *testing.T) {

	mixer, controller := newTestController(t)

	require.NoError(t, controller.SetState("Walking"))
	require.NoError(t, controller.SetState("Death"))
	assert.Equal(t, "Death", controller.RestoreTarget())

	updateFor(mixer, 10, 0.125)

	death := controller.Action("Death")
	assert.True(t, death.Finished())
	assert.True(t, death.IsRunning(), "one-shot states hold their final pose")
	assert.Equal(t, "Death", activeName(controller))

}

func TestEmoteReturnsToSitting(t *testing.T) {

	mixer, controller := newTestController(t)

	require.NoError(t, controller.SetState("Walking"))
	require.NoError(t, controller.SetState("Sitting"))
	assert.Equal(t, "Sitting", controller.RestoreTarget())

	require.NoError(t, controller.TriggerEmote("Wave", 0.2))
	finish(mixer, controller, "Wave")

	assert.Equal(t, "Sitting", activeName(controller))
	assert.False(t, controller.HasPendingRestore())

}

func TestEmoteDoesNotBecomeRestoreTarget(t *testing.T) {

	_, controller := newTestController(t)

	require.NoError(t, controller.SetState("Idle"))
	require.NoError(t, controller.SetState("Wave"))

	assert.Equal(t, "Wave", activeName(controller))
	assert.Equal(t, "Idle", controller.RestoreTarget())

}

func TestUnknownState(t *testing.T) {

	_, controller := newTestController(t)

	require.NoError(t, controller.SetState("Idle"))
	require.NoError(t, controller.SetState("Walking"))
	idle := controller.Action("Idle")
	require.Same(t, idle, controller.PreviousAction())

	err := controller.SetState("Nonexistent")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownAnimationState)

	var unknown *UnknownStateError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "Nonexistent", unknown.Name)

	assert.Equal(t, "Walking", activeName(controller))
	assert.Same(t, idle, controller.PreviousAction())
	assert.Equal(t, "Walking", controller.RestoreTarget())

	err = controller.TriggerEmote("Nonexistent", 0.2)
	assert.ErrorIs(t, err, ErrUnknownAnimationState)
	assert.Same(t, idle, controller.PreviousAction())
	assert.False(t, controller.HasPendingRestore())

}

func TestTriggerEmoteRejectsInvalidNames(t *testing.T) {

	mixer, controller := newTestController(t)

	require.NoError(t, controller.SetState("Idle"))

	err := controller.TriggerEmote("Backflip", 0.2)
	assert.ErrorIs(t, err, ErrUnknownAnimationState)

	err = controller.TriggerEmote("Walking", 0.2)
	assert.ErrorIs(t, err, ErrNotOneShot)

	assert.Equal(t, "Idle", activeName(controller))
	assert.False(t, controller.HasPendingRestore())
	assert.Zero(t, mixer.ListenerCount())

}

func TestIdleWalkingJumpScenario(t *testing.T) {

	mixer, controller := newTestController(t)
	hips := mixer.Root().Get("Hips")
	require.NotNil(t, hips)

	require.NoError(t, controller.SetState("Idle"))
	updateFor(mixer, 8, 0.125)

	require.NoError(t, controller.SetState("Walking"))
	updateFor(mixer, 8, 0.125)

	require.NoError(t, controller.TriggerEmote("Jump", 0.2))
	updateFor(mixer, 4, 0.125)
	assert.Equal(t, "Jump", activeName(controller))

	updateFor(mixer, 20, 0.125)
	assert.Equal(t, "Walking", activeName(controller))
	assert.False(t, controller.Action("Jump").IsRunning())
	assert.False(t, controller.Action("Idle").IsRunning())

	// Only Walking contributes now, so Hips follow its track exactly
	walking := controller.ActiveAction()
	expected, ok := walking.Clip().Channels["Hips"].Tracks[TrackTypePosition].ValueAsVector(walking.Time())
	require.True(t, ok)
	assert.InDelta(t, expected.Y, hips.LocalPosition().Y, 1e-9)

}

func TestSetFadeDurations(t *testing.T) {

	_, controller := newTestController(t)
	controller.SetFadeDurations(1, 0.5)

	assert.Equal(t, 1.0, controller.Options().StateFadeDuration)
	assert.Equal(t, 0.5, controller.Options().EmoteFadeDuration)

}

func TestThreeClipCharacter(t *testing.T) {

	root, _ := newTestRig()
	mixer := NewAnimationMixer(root)

	clips := []*Animation{
		newPositionClip("Idle", "Hips", NewVectorZero(), NewVector(0, 1, 0), 1),
		newPositionClip("Walking", "Hips", NewVectorZero(), NewVector(0, 2, 0), 1),
		newPositionClip("Jump", "Hips", NewVectorZero(), NewVector(0, 3, 0), 1),
	}

	controller := NewAnimationStateController(mixer, clips, StateControllerOptions{
		LoopingStates:     []string{"Idle", "Walking"},
		OneShotNames:      []string{"Jump"},
		StateFadeDuration: 0.5,
		EmoteFadeDuration: 0.2,
	})

	assert.Equal(t, []string{"Idle", "Walking", "Jump"}, controller.ActionNames())
	assert.True(t, controller.IsOneShot("Jump"))
	assert.False(t, controller.IsOneShot("Walking"))

	require.NoError(t, controller.SetState("Walking"))
	assert.Equal(t, "Walking", activeName(controller))

	require.NoError(t, controller.TriggerEmote("Jump", 0.2))
	assert.Equal(t, "Jump", activeName(controller))
	assert.Equal(t, "Walking", controller.RestoreTarget())

	finish(mixer, controller, "Jump")
	assert.Equal(t, "Walking", activeName(controller))
	assert.False(t, controller.HasPendingRestore())

}
