// Package events defines the in-process domain events and the bus that
// dispatches them. Events are immutable facts; they reach handlers only after
// the unit of work that emitted them has committed.
package events

import "time"

// Kind is the stable name of an event type. Each concrete event declares its
// own Kind constant next to its struct; dispatch keys on it, never on
// reflection.
type Kind string

// ActorExternal is the actor recorded when no authenticated account drove the
// operation (public registration, webhook callbacks).
const ActorExternal = "<external>"

// Event is an immutable fact emitted by a domain operation.
type Event interface {
	// EventKind names the concrete event type.
	EventKind() Kind
	// Actor is the acting account id, or ActorExternal.
	Actor() string
	// IssuedAt is the emission time.
	IssuedAt() time.Time
}

// Meta carries the fields every event shares. Embed it and set it with
// NewMeta at construction; events are never mutated after that.
type Meta struct {
	ActorAccountID string
	Issued         time.Time
}

// NewMeta stamps an event's shared fields. An empty actor becomes
// ActorExternal.
func NewMeta(actor string) Meta {
	if actor == "" {
		actor = ActorExternal
	}
	return Meta{ActorAccountID: actor, Issued: time.Now()}
}

func (m Meta) Actor() string       { return m.ActorAccountID }
func (m Meta) IssuedAt() time.Time { return m.Issued }
