// Package notify provides the change events generated code raises.
//
// An Event is a list of handlers receiving the sender and the new value;
// a Signal is its package-level counterpart whose handlers receive the
// value alone. Handlers are identified by the ID returned when they are
// added, since Go funcs cannot be compared.
//
// The zero value of both types is ready to use, and invoking an event with
// no subscribers does nothing.
package notify

import (
	"reflect"
	"sync"
)

// ID identifies one subscription.
type ID uint64

// Handler receives instance change notifications.
type Handler[S, T any] func(sender S, value T)

// Action receives package-level change notifications.
type Action[T any] func(value T)

type entry[H any] struct {
	id ID
	fn H
}

// list is the subscription bookkeeping shared by Event and Signal.
type list[H any] struct {
	mu      sync.Mutex
	next    ID
	entries []entry[H]
}

func (l *list[H]) add(fn H) ID {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.next++
	l.entries = append(l.entries, entry[H]{id: l.next, fn: fn})
	return l.next
}

func (l *list[H]) remove(id ID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, e := range l.entries {
		if e.id == id {
			l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

// snapshot copies the handlers so they run outside the lock and may
// subscribe or unsubscribe while being notified.
func (l *list[H]) snapshot() []H {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) == 0 {
		return nil
	}
	out := make([]H, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.fn
	}
	return out
}

func (l *list[H]) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Event is a list of instance handlers.
type Event[S, T any] struct {
	handlers list[Handler[S, T]]
}

// Add subscribes h and returns its ID.
func (e *Event[S, T]) Add(h Handler[S, T]) ID {
	return e.handlers.add(h)
}

// Remove unsubscribes the handler registered under id.
// It reports whether a handler was removed.
func (e *Event[S, T]) Remove(id ID) bool {
	if e == nil {
		return false
	}
	return e.handlers.remove(id)
}

// Invoke calls every handler in subscription order.
func (e *Event[S, T]) Invoke(sender S, value T) {
	if e == nil {
		return
	}
	for _, h := range e.handlers.snapshot() {
		h(sender, value)
	}
}

// Len returns the number of subscribed handlers.
func (e *Event[S, T]) Len() int {
	if e == nil {
		return 0
	}
	return e.handlers.len()
}

// Signal is a list of package-level handlers.
type Signal[T any] struct {
	handlers list[Action[T]]
}

// Add subscribes a and returns its ID.
func (s *Signal[T]) Add(a Action[T]) ID {
	return s.handlers.add(a)
}

// Remove unsubscribes the handler registered under id.
func (s *Signal[T]) Remove(id ID) bool {
	if s == nil {
		return false
	}
	return s.handlers.remove(id)
}

// Invoke calls every handler in subscription order.
func (s *Signal[T]) Invoke(value T) {
	if s == nil {
		return
	}
	for _, a := range s.handlers.snapshot() {
		a(value)
	}
}

// Len returns the number of subscribed handlers.
func (s *Signal[T]) Len() int {
	if s == nil {
		return 0
	}
	return s.handlers.len()
}

// Differs reports whether a and b are not deeply equal. Generated setters
// use it for types that do not support !=.
func Differs[T any](a, b T) bool {
	return !reflect.DeepEqual(a, b)
}
