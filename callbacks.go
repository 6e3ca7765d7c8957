package stage3d

// AnimationEventType is the kind of event an AnimationMixer dispatches.
type AnimationEventType string

const (
	// AnimationEventFinished is dispatched when a LoopOnce action reaches its end.
	AnimationEventFinished AnimationEventType = "finished"
	// AnimationEventLoop is dispatched each time a repeating or ping-ponging action wraps around.
	AnimationEventLoop AnimationEventType = "loop"
)

// AnimationEvent is passed to listeners registered on an AnimationMixer.
type AnimationEvent struct {
	Type      AnimationEventType
	Action    *AnimationAction
	Direction int // Playback direction at the moment of the event; 1 forwards, -1 backwards.
}

// Subscription is a handle to a listener registered on an AnimationMixer. Cancel it to stop receiving events.
type Subscription struct {
	eventType AnimationEventType
	fn        func(AnimationEvent)
	cancelled bool
}

// Cancel unregisters the listener. Calling it more than once has no further effect.
func (sub *Subscription) Cancel() {
	sub.cancelled = true
}

// Active returns whether the listener is still registered.
func (sub *Subscription) Active() bool {
	return !sub.cancelled
}

// listeners is a list of subscriptions, snapshotted on dispatch so listeners added while an event is running
// only see the next event. A cancellation takes effect immediately.
type listeners struct {
	subs []*Subscription
}

func (l *listeners) add(eventType AnimationEventType, fn func(AnimationEvent)) *Subscription {
	sub := &Subscription{eventType: eventType, fn: fn}
	l.subs = append(l.subs, sub)
	return sub
}

func (l *listeners) dispatch(event AnimationEvent) {

	snapshot := make([]*Subscription, 0, len(l.subs))
	for _, sub := range l.subs {
		if sub.Active() && sub.eventType == event.Type {
			snapshot = append(snapshot, sub)
		}
	}

	for _, sub := range snapshot {
		if sub.Active() {
			sub.fn(event)
		}
	}

	l.prune()

}

func (l *listeners) prune() {
	active := l.subs[:0]
	for _, sub := range l.subs {
		if sub.Active() {
			active = append(active, sub)
		}
	}
	for i := len(active); i < len(l.subs); i++ {
		l.subs[i] = nil
	}
	l.subs = active
}

func (l *listeners) count() int {
	n := 0
	for _, sub := range l.subs {
		if sub.Active() {
			n++
		}
	}
	return n
}
