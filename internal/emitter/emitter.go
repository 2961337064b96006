// Package emitter provides a synchronous, per-owner publish/subscribe capability.
//
// An Emitter is embedded or held as a field by whatever entity wants to expose
// named events. Each Emitter owns its own listener table; nothing is shared
// between instances.
package emitter

import (
	"sync"
)

// Handler is invoked with the payload passed to Trigger.
type Handler[T any] func(payload T)

// ListenerID identifies a registered handler for later removal with Un.
type ListenerID uint64

type listener[T any] struct {
	id      ListenerID
	handler Handler[T]
}

// Emitter dispatches payloads of type T to handlers registered per event name.
// The zero value is ready to use.
type Emitter[T any] struct {
	mu        sync.Mutex
	nextID    ListenerID
	listeners map[string][]listener[T]
	once      map[string][]listener[T]
}

// New creates an empty Emitter.
func New[T any]() *Emitter[T] {
	return &Emitter[T]{}
}

// On registers handler for every future Trigger of name.
func (e *Emitter[T]) On(name string, handler Handler[T]) ListenerID {
	if handler == nil {
		return 0
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.listeners == nil {
		e.listeners = make(map[string][]listener[T])
	}
	e.nextID++
	e.listeners[name] = append(e.listeners[name], listener[T]{id: e.nextID, handler: handler})
	return e.nextID
}

// Once registers handler for the next Trigger of name only.
func (e *Emitter[T]) Once(name string, handler Handler[T]) ListenerID {
	if handler == nil {
		return 0
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.once == nil {
		e.once = make(map[string][]listener[T])
	}
	e.nextID++
	e.once[name] = append(e.once[name], listener[T]{id: e.nextID, handler: handler})
	return e.nextID
}

// Un removes the handler registered under id for name. It reports whether a
// handler was removed. A dispatch already in progress is not affected.
func (e *Emitter[T]) Un(name string, id ListenerID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if removeListener(e.listeners, name, id) {
		return true
	}
	return removeListener(e.once, name, id)
}

// HasListener reports whether any handler is registered for name.
// An empty name asks whether any handler is registered at all.
func (e *Emitter[T]) HasListener(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if name == "" {
		for _, l := range e.listeners {
			if len(l) > 0 {
				return true
			}
		}
		for _, l := range e.once {
			if len(l) > 0 {
				return true
			}
		}
		return false
	}
	return len(e.listeners[name]) > 0 || len(e.once[name]) > 0
}

// Trigger invokes every handler registered for name, in registration order,
// persistent handlers first. Handlers run on the calling goroutine.
//
// The persistent handlers are snapshotted and the once handlers detached before
// any handler runs, so handlers may freely call On, Once, Un or Trigger.
func (e *Emitter[T]) Trigger(name string, payload T) {
	e.mu.Lock()
	var snapshot []listener[T]
	if l := e.listeners[name]; len(l) > 0 {
		snapshot = make([]listener[T], len(l))
		copy(snapshot, l)
	}
	onceList := e.once[name]
	if onceList != nil {
		delete(e.once, name)
	}
	e.mu.Unlock()

	for _, l := range snapshot {
		l.handler(payload)
	}
	for _, l := range onceList {
		l.handler(payload)
	}
}

// Clear removes every handler.
func (e *Emitter[T]) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = nil
	e.once = nil
}

func removeListener[T any](table map[string][]listener[T], name string, id ListenerID) bool {
	list := table[name]
	for i, l := range list {
		if l.id != id {
			continue
		}
		next := make([]listener[T], 0, len(list)-1)
		next = append(next, list[:i]...)
		next = append(next, list[i+1:]...)
		if len(next) == 0 {
			delete(table, name)
		} else {
			table[name] = next
		}
		return true
	}
	return false
}
