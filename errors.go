package stage3d

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownAnimationState is matched (through errors.Is) by the error returned when an AnimationStateController is asked for a
	// state or emote it has no action for.
	ErrUnknownAnimationState = errors.New("unknown animation state")

	// ErrNotOneShot is returned when an emote is triggered for an action that loops; a looping action never finishes, so
	// nothing would ever restore the previous state.
	ErrNotOneShot = errors.New("animation is not a one-shot")

	// ErrAssetLoad is matched by every error returned from loading a glTF file.
	ErrAssetLoad = errors.New("asset load failed")
)

// UnknownStateError reports the name of a state that an AnimationStateController doesn't know.
type UnknownStateError struct {
	Name string
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownAnimationState, e.Name)
}

func (e *UnknownStateError) Is(target error) bool {
	return target == ErrUnknownAnimationState
}

// AssetLoadError wraps the reason a glTF file couldn't be loaded.
type AssetLoadError struct {
	Path string
	Err  error
}

func (e *AssetLoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", ErrAssetLoad, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", ErrAssetLoad, e.Path, e.Err)
}

func (e *AssetLoadError) Is(target error) bool {
	return target == ErrAssetLoad
}

func (e *AssetLoadError) Unwrap() error {
	return e.Err
}
