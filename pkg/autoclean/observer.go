package autoclean

import (
	"fmt"
	"reflect"
)

// EventKind identifies what happened to a member.
type EventKind uint8

const (
	EventReleased EventKind = iota + 1
	EventReset
	EventReleaseFailed
)

func (k EventKind) String() string {
	switch k {
	case EventReleased:
		return "released"
	case EventReset:
		return "reset"
	case EventReleaseFailed:
		return "release_failed"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
}

// Event is emitted for every member a Cleaner touches.
type Event struct {
	Kind EventKind
	// Target is the runtime type of the instance being reset.
	Target    reflect.Type
	Owner     reflect.Type
	Member    string
	Partition Hierarchy
	Err       error
}

// Observer receives events synchronously, in member order.
type Observer interface {
	Notify(event Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(event Event)

func (f ObserverFunc) Notify(event Event) {
	f(event)
}
