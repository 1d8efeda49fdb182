// Copyright 2025 zkLocus Contributors

package session

import "github.com/google/uuid"

// Event is one entry in a Session's audit log (History): an operation
// that was attempted, in the order it was attempted, with its outcome.
// zkLocus circuits only ever prove that a predicate held; Event exists so
// a caller can also answer "what sequence of predicates did we prove, and
// did any step fail" without re-deriving it from proof artifacts. ID is a
// UUID rather than the sequence number alone, the same way the teacher's
// main.go tags each anchor batch callback with a uuid.UUID rather than
// relying on its position in a list -- useful once History entries get
// forwarded to an external log aggregator that interleaves multiple
// sessions.
type Event struct {
	ID     uuid.UUID
	Op     string
	Detail string
	Seq    int
}

func newEvent(op, detail string) Event {
	return Event{ID: uuid.New(), Op: op, Detail: detail}
}
