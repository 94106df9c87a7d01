package domain

import "time"

// Entity carries the audit timestamps shared by entities and aggregates.
// Callers supply "now" so that time stays injectable end to end.
type Entity struct {
	createdAt time.Time
	updatedAt time.Time
}

func NewEntity(now time.Time) Entity {
	return Entity{createdAt: now, updatedAt: now}
}

func RestoreEntity(createdAt, updatedAt time.Time) Entity {
	return Entity{createdAt: createdAt, updatedAt: updatedAt}
}

func (e *Entity) CreatedAt() time.Time { return e.createdAt }
func (e *Entity) UpdatedAt() time.Time { return e.updatedAt }

// Touch bumps the updated timestamp. Mutators call it after a state change.
func (e *Entity) Touch(now time.Time) {
	e.updatedAt = now
}

// AggregateBase adds the event buffer and the optimistic-concurrency version
// to Entity. Aggregates stage events during mutation; the use-case layer
// drains them after a successful save.
type AggregateBase struct {
	Entity
	version int64
	events  []Event
}

func NewAggregateBase(now time.Time) AggregateBase {
	return AggregateBase{Entity: NewEntity(now)}
}

func RestoreAggregateBase(createdAt, updatedAt time.Time, version int64) AggregateBase {
	return AggregateBase{Entity: RestoreEntity(createdAt, updatedAt), version: version}
}

// Version is the persisted optimistic-lock counter. Zero means the aggregate
// has never been saved.
func (b *AggregateBase) Version() int64 { return b.version }

// SetVersion is for the persistence layer only.
func (b *AggregateBase) SetVersion(v int64) { b.version = v }

// Record stages an event for publication after the next successful save.
func (b *AggregateBase) Record(event Event) {
	b.events = append(b.events, event)
}

// UncommittedEvents returns the staged events in occurrence order.
func (b *AggregateBase) UncommittedEvents() []Event {
	out := make([]Event, len(b.events))
	copy(out, b.events)
	return out
}

// MarkEventsCommitted clears the buffer once the events have been published.
func (b *AggregateBase) MarkEventsCommitted() {
	b.events = nil
}
