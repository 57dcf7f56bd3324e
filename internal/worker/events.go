package worker

import (
	"uk_numcheck/internal/domain/entity"
)

type EventKind string

const (
	// EventPublished reports a successfully published rule set.
	EventPublished EventKind = "published"
	// EventDriftWarning reports a rule count far from the previous set. The
	// set is published anyway, the warning exists so an operator looks at it.
	EventDriftWarning EventKind = "drift_warning"
	// EventRefreshFailed reports a refresh that produced no rule set.
	EventRefreshFailed EventKind = "refresh_failed"
)

// Event is an operator notification produced by the refresh job.
type Event struct {
	Kind EventKind

	// Meta describes the published rule set, set for every kind but
	// EventRefreshFailed.
	Meta entity.Meta

	// PrevRuleCount is the rule count before this publish, set for
	// EventDriftWarning.
	PrevRuleCount int

	// SkippedRows counts source rows dropped by validation, set for
	// EventPublished.
	SkippedRows int

	// Err is what stopped the refresh, set for EventRefreshFailed.
	Err error
}
