package service

import (
	"context"
)

// DecisionEvent represents a terminal decision on a request, published for
// asynchronous consumers (digest mails, statistics, audit trails).
type DecisionEvent struct {
	RequestID   string `json:"request_id"`
	RequestKind string `json:"request_kind"` // join_household / temporary_residence / temporary_absence
	Outcome     string `json:"outcome"`      // approved / rejected
	SubmitterID string `json:"submitter_id"`
	DeciderID   string `json:"decider_id"`
	DecidedAt   string `json:"decided_at"` // RFC 3339
	TraceID     string `json:"trace_id,omitempty"`
}

// EventPublisher defines the interface for publishing events to a message queue.
type EventPublisher interface {
	// PublishDecisionEvent publishes a decision event for async processing.
	PublishDecisionEvent(ctx context.Context, event *DecisionEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
