// Package services implements availability lookup, the reservation lifecycle, the waitlist,
// accounts and reminders on top of the repositories.
package services

// Notifier fans domain events out to listeners. Implementations must not block.
type Notifier interface {
	Broadcast(event string, data interface{})
}

// NopNotifier drops every event.
type NopNotifier struct{}

func (NopNotifier) Broadcast(string, interface{}) {}
