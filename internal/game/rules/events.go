package rules

import (
	"sync"
	"time"
)

// EventType indicates the category of a game event.
type EventType string

const (
	EventGameStarted      EventType = "GAME_STARTED"
	EventCardPlayed       EventType = "CARD_PLAYED"
	EventTrickResolved    EventType = "TRICK_RESOLVED"
	EventTaskCompleted    EventType = "TASK_COMPLETED"
	EventTaskFailed       EventType = "TASK_FAILED"
	EventAllTasksComplete EventType = "ALL_TASKS_COMPLETE"
	EventGameWon          EventType = "GAME_WON"
	EventGameLost         EventType = "GAME_LOST"
)

// Event represents a state change that other subsystems may react to. Cards
// are carried in their display form ("B5", "R2"); seats are dense indices.
type Event struct {
	Type        EventType
	GameID      string
	Seat        int    // acting seat, or the task owner for task events
	Card        string // card the event concerns, empty when not card-scoped
	Winner      int    // trick winner, meaningful for trick and task events
	Trick       int    // 1-based trick number
	Timestamp   time.Time
	Description string
}

// NewEvent builds an event with the timestamp filled in.
func NewEvent(eventType EventType, gameID string, seat int) Event {
	return Event{
		Type:      eventType,
		GameID:    gameID,
		Seat:      seat,
		Winner:    -1,
		Timestamp: time.Now(),
	}
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

// TypedListener defines a callback that reacts to a specific event type.
type TypedListener struct {
	Handle    int
	EventType EventType
	Callback  func(Event)
}

// EventBus provides a synchronous publish/subscribe implementation with type
// filtering. Delivery happens on the publishing goroutine, so listeners see
// events in exactly the order the engine produced them.
type EventBus struct {
	mu             sync.RWMutex
	listeners      map[int]Listener
	typedListeners map[EventType][]TypedListener
	nextHandle     int
}

// NewEventBus creates an empty event bus.
func NewEventBus() *EventBus {
	return &EventBus{
		listeners:      make(map[int]Listener),
		typedListeners: make(map[EventType][]TypedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *EventBus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners[handle] = listener
	return handle
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, callback func(Event)) int {
	if callback == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.typedListeners[eventType] = append(bus.typedListeners[eventType], TypedListener{
		Handle:    handle,
		EventType: eventType,
		Callback:  callback,
	})
	return handle
}

// Unsubscribe removes the listener identified by the provided handle,
// regardless of whether it was registered for all events or a single type.
func (bus *EventBus) Unsubscribe(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	delete(bus.listeners, handle)
	for eventType, listeners := range bus.typedListeners {
		for i := len(listeners) - 1; i >= 0; i-- {
			if listeners[i].Handle == handle {
				bus.typedListeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers the event to all registered listeners synchronously.
func (bus *EventBus) Publish(event Event) {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	for _, listener := range bus.listeners {
		listener(event)
	}
	for _, listener := range bus.typedListeners[event.Type] {
		listener.Callback(event)
	}
}
