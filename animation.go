package stage3d

import (
	"sort"
)

const (
	TrackTypePosition = "Pos"
	TrackTypeScale    = "Sca"
	TrackTypeRotation = "Rot"
)

const (
	InterpolationLinear   = iota // Linear interpolation between keyframes (slerp for rotations)
	InterpolationConstant        // Step; the value holds until the next keyframe
)

// Data is the value stored in a Keyframe; either a Vector (position and scale tracks) or a Quaternion (rotation tracks).
type Data struct {
	contents any
}

// AsVector returns the Data as a Vector.
func (data Data) AsVector() Vector {
	return data.contents.(Vector)
}

// AsQuaternion returns the Data as a Quaternion.
func (data Data) AsQuaternion() Quaternion {
	return data.contents.(Quaternion)
}

// Keyframe is a single value in an AnimationTrack at a given time in seconds.
type Keyframe struct {
	Time float64
	Data Data
}

func newKeyframe(time float64, data Data) *Keyframe {
	return &Keyframe{
		Time: time,
		Data: data,
	}
}

// AnimationTrack is a sorted list of Keyframes animating one property (position, scale or rotation) of a node.
type AnimationTrack struct {
	Type          string
	Keyframes     []*Keyframe
	Interpolation int
}

// AddKeyframe adds a keyframe to the track; data should be a Vector for position and scale tracks, and a Quaternion for rotation tracks.
// Keyframes are kept sorted by time.
func (track *AnimationTrack) AddKeyframe(time float64, data any) {
	track.Keyframes = append(track.Keyframes, newKeyframe(time, Data{data}))
	sort.SliceStable(track.Keyframes, func(i, j int) bool { return track.Keyframes[i].Time < track.Keyframes[j].Time })
}

// surrounding returns the keyframes on either side of time and the percentage between them. Both are the same keyframe outside
// of the track's range.
func (track *AnimationTrack) surrounding(time float64) (*Keyframe, *Keyframe, float64) {

	if first := track.Keyframes[0]; time <= first.Time {
		return first, first, 0
	}

	if last := track.Keyframes[len(track.Keyframes)-1]; time >= last.Time {
		return last, last, 0
	}

	index := sort.Search(len(track.Keyframes), func(i int) bool { return track.Keyframes[i].Time > time })
	first := track.Keyframes[index-1]
	last := track.Keyframes[index]

	if track.Interpolation == InterpolationConstant {
		return first, first, 0
	}

	return first, last, (time - first.Time) / (last.Time - first.Time)

}

// ValueAsVector returns the track's Vector value at the given time in seconds. ok is false if the track is empty.
func (track *AnimationTrack) ValueAsVector(time float64) (value Vector, ok bool) {

	if len(track.Keyframes) == 0 {
		return Vector{}, false
	}

	first, last, t := track.surrounding(time)

	if first == last {
		return first.Data.AsVector(), true
	}

	return first.Data.AsVector().Lerp(last.Data.AsVector(), t), true

}

// ValueAsQuaternion returns the track's Quaternion value at the given time in seconds. ok is false if the track is empty.
func (track *AnimationTrack) ValueAsQuaternion(time float64) (value Quaternion, ok bool) {

	if len(track.Keyframes) == 0 {
		return NewQuaternionIdentity(), false
	}

	first, last, t := track.surrounding(time)

	if first == last {
		return first.Data.AsQuaternion(), true
	}

	return first.Data.AsQuaternion().Slerp(last.Data.AsQuaternion(), t), true

}

func newAnimationTrack(trackType string) *AnimationTrack {
	return &AnimationTrack{
		Type:      trackType,
		Keyframes: []*Keyframe{},
	}
}

// AnimationChannel holds the tracks animating a single node, found by name under the animated root.
type AnimationChannel struct {
	Name   string
	Tracks map[string]*AnimationTrack
}

// NewAnimationChannel returns a new AnimationChannel targeting the node with the given name.
func NewAnimationChannel(name string) *AnimationChannel {
	return &AnimationChannel{
		Name:   name,
		Tracks: map[string]*AnimationTrack{},
	}
}

// AddTrack adds (or replaces) the track of the given type on the channel, returning it.
func (channel *AnimationChannel) AddTrack(trackType string) *AnimationTrack {
	newTrack := newAnimationTrack(trackType)
	channel.Tracks[trackType] = newTrack
	return newTrack
}

// Animation is a clip: a named, fixed-length set of channels of keyframes.
type Animation struct {
	library  *Library
	Name     string
	Channels map[string]*AnimationChannel
	Length   float64 // Length of the animation in seconds
}

// NewAnimation returns a new, empty Animation.
func NewAnimation(name string) *Animation {
	return &Animation{
		Name:     name,
		Channels: map[string]*AnimationChannel{},
	}
}

// AddChannel adds a channel for the node of the given name, returning it. If the channel already exists, it is returned instead.
func (animation *Animation) AddChannel(name string) *AnimationChannel {
	if existing, ok := animation.Channels[name]; ok {
		return existing
	}
	newChannel := NewAnimationChannel(name)
	animation.Channels[name] = newChannel
	return newChannel
}

// RecalculateLength sets the Animation's Length to the time of its last keyframe.
func (animation *Animation) RecalculateLength() {
	animation.Length = 0
	for _, channel := range animation.Channels {
		for _, track := range channel.Tracks {
			if n := len(track.Keyframes); n > 0 && track.Keyframes[n-1].Time > animation.Length {
				animation.Length = track.Keyframes[n-1].Time
			}
		}
	}
}

// Library returns the Library the Animation was loaded from, if any.
func (animation *Animation) Library() *Library {
	return animation.library
}
