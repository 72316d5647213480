// Package messagequeue defines the message queue port for run lifecycle events.
package messagequeue

import "context"

// Subjects for run lifecycle events. Workers consume runs.created and report
// outcomes on runs.result.
const (
	SubjectRunCreated = "runs.created"
	SubjectRunResult  = "runs.result"
)

// Handler processes a single message. Returning an error causes redelivery.
type Handler func(subject string, data []byte) error

// Queue is the publish/subscribe interface between the service and external
// evaluation workers.
type Queue interface {
	Publish(ctx context.Context, subject string, data []byte) error
	// Subscribe registers a durable handler and returns a stop function.
	Subscribe(ctx context.Context, subject string, handler Handler) (func(), error)
	Close() error
}
