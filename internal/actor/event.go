package actor

// Event is a discrete transition reported to a Listener.
type Event int

const (
	EventSpawn Event = iota
	EventLand
	EventDie
	EventHome
)

func (e Event) String() string {
	switch e {
	case EventSpawn:
		return "spawn"
	case EventLand:
		return "land"
	case EventDie:
		return "die"
	case EventHome:
		return "home"
	default:
		return "unknown"
	}
}

// Listener receives actor events. Implementations must not block; they are
// called from inside the simulation step.
type Listener interface {
	OnEvent(ev Event, z *Zit)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(ev Event, z *Zit)

// OnEvent calls f.
func (f ListenerFunc) OnEvent(ev Event, z *Zit) { f(ev, z) }

type nopListener struct{}

func (nopListener) OnEvent(Event, *Zit) {}

// Nop is a Listener that ignores every event.
var Nop Listener = nopListener{}

// Listeners fans an event out to several listeners in order.
type Listeners []Listener

// OnEvent forwards ev to every listener.
func (ls Listeners) OnEvent(ev Event, z *Zit) {
	for _, l := range ls {
		l.OnEvent(ev, z)
	}
}
