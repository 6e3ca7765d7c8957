package stage3d

import (
	"log"
)

// restPose is a node's local transform from before any action touched it; blends with a total weight below 1 are filled up with it.
type restPose struct {
	position Vector
	scale    Vector
	rotation Quaternion
}

type poseBlend struct {
	position       Vector
	positionWeight float64
	scale          Vector
	scaleWeight    float64
	rotation       Quaternion
	rotationWeight float64
}

// AnimationMixer plays AnimationActions on the node hierarchy under a root node, blending every running action by its weight.
// Each animated character owns its own mixer.
type AnimationMixer struct {
	root    INode
	actions []*AnimationAction
	byClip  map[*Animation]*AnimationAction

	bindings map[*Animation]map[*AnimationChannel]INode
	rest     map[INode]restPose
	touched  map[INode]bool

	listeners listeners
	time      float64
}

// NewAnimationMixer returns a new AnimationMixer animating the hierarchy under root.
func NewAnimationMixer(root INode) *AnimationMixer {
	return &AnimationMixer{
		root:     root,
		byClip:   map[*Animation]*AnimationAction{},
		bindings: map[*Animation]map[*AnimationChannel]INode{},
		rest:     map[INode]restPose{},
		touched:  map[INode]bool{},
	}
}

// Root returns the node the mixer animates.
func (mixer *AnimationMixer) Root() INode {
	return mixer.root
}

// SetRoot changes the node the mixer animates; channels are bound again on the next update.
func (mixer *AnimationMixer) SetRoot(root INode) {
	mixer.root = root
	mixer.rest = map[INode]restPose{}
	mixer.touched = map[INode]bool{}
	mixer.Rebind()
}

// ClipAction returns the AnimationAction for the clip, creating it the first time; later calls return the same action.
func (mixer *AnimationMixer) ClipAction(clip *Animation) *AnimationAction {
	if action, exists := mixer.byClip[clip]; exists {
		return action
	}
	action := newAnimationAction(mixer, clip)
	mixer.byClip[clip] = action
	mixer.actions = append(mixer.actions, action)
	return action
}

// Actions returns every action created on the mixer, in creation order.
func (mixer *AnimationMixer) Actions() []*AnimationAction {
	return append([]*AnimationAction{}, mixer.actions...)
}

// StopAllActions stops every action on the mixer.
func (mixer *AnimationMixer) StopAllActions() {
	for _, action := range mixer.actions {
		action.Stop()
	}
}

// Time returns the total time the mixer has been updated for, in seconds.
func (mixer *AnimationMixer) Time() float64 {
	return mixer.time
}

// OnFinished registers fn to be called whenever a LoopOnce action finishes.
func (mixer *AnimationMixer) OnFinished(fn func(AnimationEvent)) *Subscription {
	return mixer.listeners.add(AnimationEventFinished, fn)
}

// OnLoop registers fn to be called whenever a repeating or ping-ponging action wraps around.
func (mixer *AnimationMixer) OnLoop(fn func(AnimationEvent)) *Subscription {
	return mixer.listeners.add(AnimationEventLoop, fn)
}

// ListenerCount returns the number of active listeners registered on the mixer.
func (mixer *AnimationMixer) ListenerCount() int {
	return mixer.listeners.count()
}

// Dispatch sends an event to the mixer's listeners as though the mixer had raised it.
func (mixer *AnimationMixer) Dispatch(event AnimationEvent) {
	mixer.listeners.dispatch(event)
}

// Rebind clears the mixer's channel bindings so they're looked up again by name on the next update; call it after the
// hierarchy under the root changes.
func (mixer *AnimationMixer) Rebind() {
	mixer.bindings = map[*Animation]map[*AnimationChannel]INode{}
}

// bind matches the clip's channels to nodes of the same name under the root node.
func (mixer *AnimationMixer) bind(clip *Animation) map[*AnimationChannel]INode {

	if bound, exists := mixer.bindings[clip]; exists {
		return bound
	}

	bound := map[*AnimationChannel]INode{}

	if mixer.root != nil {

		childrenRecursive := mixer.root.ChildrenRecursive()

		for _, channel := range clip.Channels {

			var found INode

			if mixer.root.Name() == channel.Name {
				found = mixer.root
			} else {
				for _, n := range childrenRecursive {
					if n.Name() == channel.Name {
						found = n
						break
					}
				}
			}

			if found == nil {
				log.Println("Warning: Cannot find matching node for channel " + channel.Name + " for root " + mixer.root.Name())
				continue
			}

			bound[channel] = found

			if _, exists := mixer.rest[found]; !exists {
				mixer.rest[found] = restPose{
					position: found.LocalPosition(),
					scale:    found.LocalScale(),
					rotation: found.LocalRotation().ToQuaternion(),
				}
			}

		}

	}

	mixer.bindings[clip] = bound

	return bound

}

// Update advances every running action by dt seconds, dispatches the events raised while doing so (after all actions have been
// advanced, in action order), and then writes the blended pose of all weighted actions into the bound nodes.
func (mixer *AnimationMixer) Update(dt float64) {

	mixer.time += dt

	events := []AnimationEvent{}

	for _, action := range mixer.actions {
		finished, looped := action.update(dt)
		if looped {
			events = append(events, AnimationEvent{Type: AnimationEventLoop, Action: action, Direction: int(action.direction)})
		}
		if finished {
			events = append(events, AnimationEvent{Type: AnimationEventFinished, Action: action, Direction: int(action.direction)})
		}
	}

	for _, event := range events {
		mixer.listeners.dispatch(event)
	}

	mixer.apply()

}

func (mixer *AnimationMixer) apply() {

	blends := map[INode]*poseBlend{}

	for _, action := range mixer.actions {

		weight := action.EffectiveWeight()

		if weight <= 0 {
			continue
		}

		for channel, node := range mixer.bind(action.clip) {

			blend, exists := blends[node]
			if !exists {
				blend = &poseBlend{}
				blends[node] = blend
			}

			if track, exists := channel.Tracks[TrackTypePosition]; exists {
				if v, ok := track.ValueAsVector(action.time); ok {
					blend.position = blend.position.Add(v.Scale(weight))
					blend.positionWeight += weight
				}
			}

			if track, exists := channel.Tracks[TrackTypeScale]; exists {
				if v, ok := track.ValueAsVector(action.time); ok {
					blend.scale = blend.scale.Add(v.Scale(weight))
					blend.scaleWeight += weight
				}
			}

			if track, exists := channel.Tracks[TrackTypeRotation]; exists {
				if q, ok := track.ValueAsQuaternion(action.time); ok {
					// Keep every contribution in the same hemisphere so they don't cancel out
					if blend.rotationWeight > 0 && blend.rotation.Dot(q) < 0 {
						q = q.Negated()
					}
					blend.rotation = blend.rotation.Add(q.Scale(weight))
					blend.rotationWeight += weight
				}
			}

		}

	}

	for node, blend := range blends {

		rest := mixer.rest[node]

		if blend.positionWeight > 0 {
			node.SetLocalPositionVec(fillVector(blend.position, blend.positionWeight, rest.position))
		}

		if blend.scaleWeight > 0 {
			node.SetLocalScaleVec(fillVector(blend.scale, blend.scaleWeight, rest.scale))
		}

		if blend.rotationWeight > 0 {
			q := blend.rotation
			if blend.rotationWeight < 1 {
				r := rest.rotation
				if q.Dot(r) < 0 {
					r = r.Negated()
				}
				q = q.Add(r.Scale(1 - blend.rotationWeight))
			}
			node.SetLocalRotation(q.Normalized().ToMatrix4())
		}

	}

	// Nodes nothing animates anymore go back to their rest pose.
	for node := range mixer.touched {
		if _, exists := blends[node]; !exists {
			rest := mixer.rest[node]
			node.SetLocalPositionVec(rest.position)
			node.SetLocalScaleVec(rest.scale)
			node.SetLocalRotation(rest.rotation.ToMatrix4())
		}
	}

	mixer.touched = make(map[INode]bool, len(blends))
	for node := range blends {
		mixer.touched[node] = true
	}

}

// fillVector turns a weighted sum into a value, topping it up with the rest value when the total weight is below 1.
func fillVector(sum Vector, weight float64, rest Vector) Vector {
	if weight < 1 {
		return sum.Add(rest.Scale(1 - weight))
	}
	return sum.Scale(1 / weight)
}
