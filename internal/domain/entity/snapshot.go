package entity

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot is one archived download of the allocation table: the parsed rule
// set plus enough metadata to audit where and when it came from.
type Snapshot struct {
	ID        uuid.UUID        `json:"id"`
	Source    string           `json:"source"`
	ETag      string           `json:"etag,omitempty"`
	FetchedAt time.Time        `json:"fetched_at"`
	Rules     []AllocationRule `json:"rules"`
}

// Meta is the snapshot without its rule payload, safe to expose over the API
// and cheap to keep on the serving path.
type Meta struct {
	ID        uuid.UUID `json:"id"`
	Source    string    `json:"source"`
	ETag      string    `json:"etag,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
	RuleCount int       `json:"rule_count"`
	Policy    string    `json:"policy"`
}

// Meta derives the API-safe metadata view. Policy is stamped by the service
// that publishes the snapshot, not stored with it.
func (s Snapshot) Meta(policy string) Meta {
	return Meta{
		ID:        s.ID,
		Source:    s.Source,
		ETag:      s.ETag,
		FetchedAt: s.FetchedAt,
		RuleCount: len(s.Rules),
		Policy:    policy,
	}
}
