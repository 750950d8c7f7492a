// Package event is the trace hook of the simulation: producers buffer typed
// events during a tick or a shot and listeners receive them on Flush.
package event

const (
	LANDED EventType = iota
	LEFT_GROUND
	JUMPED
	SURF_ENTER
	SURF_EXIT
	VELOCITY_CLIPPED
	PENETRATION_RESOLVED
	PORTAL_REDIRECTED
	PORTAL_PLACED
	PORTAL_ABORTED
	TRIGGER_ENTER
	TRIGGER_EXIT
)

type EventType uint8

var eventTypeNames = [...]string{
	LANDED:               "LANDED",
	LEFT_GROUND:          "LEFT_GROUND",
	JUMPED:               "JUMPED",
	SURF_ENTER:           "SURF_ENTER",
	SURF_EXIT:            "SURF_EXIT",
	VELOCITY_CLIPPED:     "VELOCITY_CLIPPED",
	PENETRATION_RESOLVED: "PENETRATION_RESOLVED",
	PORTAL_REDIRECTED:    "PORTAL_REDIRECTED",
	PORTAL_PLACED:        "PORTAL_PLACED",
	PORTAL_ABORTED:       "PORTAL_ABORTED",
	TRIGGER_ENTER:        "TRIGGER_ENTER",
	TRIGGER_EXIT:         "TRIGGER_EXIT",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "UNKNOWN"
}

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// Listener - callback for events
type Listener func(event Event)

// Events manager. A nil *Events discards everything.
type Events struct {
	// Listeners by event type
	listeners map[EventType][]Listener

	// Event buffer to send at flush
	buffer []Event
}

func NewEvents() *Events {
	return &Events{
		listeners: make(map[EventType][]Listener),
		buffer:    make([]Event, 0, 32),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener Listener) {
	if e.listeners == nil {
		e.listeners = make(map[EventType][]Listener)
	}
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// SubscribeAll adds a listener for every known event type
func (e *Events) SubscribeAll(listener Listener) {
	for t := range eventTypeNames {
		e.Subscribe(EventType(t), listener)
	}
}

// Emit buffers an event until the next Flush
func (e *Events) Emit(event Event) {
	if e == nil {
		return
	}
	// Nobody listens for it, skip the allocation
	if len(e.listeners[event.Type()]) == 0 {
		return
	}
	e.buffer = append(e.buffer, event)
}

// Flush sends all buffered events in emission order and clears the buffer
func (e *Events) Flush() {
	if e == nil {
		return
	}

	for _, event := range e.buffer {
		for _, listener := range e.listeners[event.Type()] {
			listener(event)
		}
	}
	e.buffer = e.buffer[:0]
}

// Pending returns the number of buffered events
func (e *Events) Pending() int {
	if e == nil {
		return 0
	}
	return len(e.buffer)
}
