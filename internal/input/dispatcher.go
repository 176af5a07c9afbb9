package input

import (
	"sync"

	"github.com/vovakirdan/term2048/internal/core"
)

// Handler receives actions from a Dispatcher.
type Handler func(core.Action)

// Dispatcher fans key presses out to subscribed handlers. The hosting
// shell subscribes when a game starts and calls the returned release
// function when it ends.
type Dispatcher struct {
	keys KeyMap

	mu       sync.Mutex
	nextID   int
	handlers map[int]Handler
	order    []int
}

// NewDispatcher creates a dispatcher using the given key map.
func NewDispatcher(keys KeyMap) *Dispatcher {
	return &Dispatcher{
		keys:     keys,
		handlers: make(map[int]Handler),
	}
}

// KeyMap returns the bindings used for lookups.
func (d *Dispatcher) KeyMap() KeyMap {
	return d.keys
}

// Subscribe registers h and returns a function that removes it.
// The release function is safe to call more than once.
func (d *Dispatcher) Subscribe(h Handler) (unsubscribe func()) {
	d.mu.Lock()
	id := d.nextID
	d.nextID++
	d.handlers[id] = h
	d.order = append(d.order, id)
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			delete(d.handlers, id)
			for i, v := range d.order {
				if v == id {
					d.order = append(d.order[:i], d.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Subscribers returns the number of active handlers.
func (d *Dispatcher) Subscribers() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.handlers)
}

// Dispatch maps keyStr to an action and delivers it to every handler in
// subscription order. It reports whether the key was recognized and at
// least one handler received it; unrecognized keys are ignored.
func (d *Dispatcher) Dispatch(keyStr string) bool {
	action, ok := d.keys.Lookup(keyStr)
	if !ok {
		return false
	}
	return d.Send(action)
}

// Send delivers an action directly, bypassing the key map.
func (d *Dispatcher) Send(action core.Action) bool {
	d.mu.Lock()
	handlers := make([]Handler, 0, len(d.order))
	for _, id := range d.order {
		handlers = append(handlers, d.handlers[id])
	}
	d.mu.Unlock()

	for _, h := range handlers {
		h(action)
	}
	return len(handlers) > 0
}
