package outfit

// EventType identifies a kind of character change.
type EventType uint8

const (
	EventPartChanged       EventType = iota // a part's variant index changed
	EventVisibilityChanged                  // a part's hidden flag changed
	EventColorChanged                       // a color override was set
)

// Event describes one committed change. Listeners run after the state is
// updated and before the composite skin is rebuilt.
type Event struct {
	Type   EventType
	Part   PartType // EventPartChanged, EventVisibilityChanged
	Index  int      // EventPartChanged
	Hidden bool     // EventVisibilityChanged
	Prefix string   // EventColorChanged
	Color  Color    // EventColorChanged
}

// EventSink is the interface for optional ECS integration.
// When set on a Character, every event is forwarded to the sink after the
// registered listeners.
type EventSink interface {
	EmitEvent(event Event)
}

type listener struct {
	id int
	fn func(Event)
}

// AddListener registers fn and returns an id for RemoveListener. Listeners
// are called in registration order.
func (c *Character) AddListener(fn func(Event)) int {
	c.nextListenerID++
	c.listeners = append(c.listeners, listener{id: c.nextListenerID, fn: fn})
	return c.nextListenerID
}

// RemoveListener unregisters the listener with the given id.
func (c *Character) RemoveListener(id int) {
	for i, l := range c.listeners {
		if l.id == id {
			c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
			return
		}
	}
}

// SetEventSink sets the optional ECS bridge.
func (c *Character) SetEventSink(sink EventSink) {
	c.sink = sink
}

func (c *Character) emit(e Event) {
	for _, l := range c.listeners {
		l.fn(e)
	}
	if c.sink != nil {
		c.sink.EmitEvent(e)
	}
}
