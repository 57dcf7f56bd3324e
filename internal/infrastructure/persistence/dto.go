package persistence

import (
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"uk_numcheck/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// snapshotSchema maps a plan_snapshots row. Rules travel as a jsonb payload;
// rule_count is denormalized so listing and pruning never touch it.
type snapshotSchema struct {
	ID        uuid.UUID `db:"id"`
	Source    string    `db:"source"`
	ETag      string    `db:"etag"`
	FetchedAt time.Time `db:"fetched_at"`
	RuleCount int       `db:"rule_count"`
	Rules     []byte    `db:"rules"`
}

func fromSnapshot(snap entity.Snapshot) (*snapshotSchema, error) {
	rules, err := json.Marshal(snap.Rules)
	if err != nil {
		return nil, err
	}

	return &snapshotSchema{
		ID:        snap.ID,
		Source:    snap.Source,
		ETag:      snap.ETag,
		FetchedAt: snap.FetchedAt,
		RuleCount: len(snap.Rules),
		Rules:     rules,
	}, nil
}

func (s *snapshotSchema) toDomain() (entity.Snapshot, error) {
	var rules []entity.AllocationRule

	if len(s.Rules) > 0 {
		if err := json.Unmarshal(s.Rules, &rules); err != nil {
			return entity.Snapshot{}, err
		}
	}

	return entity.Snapshot{
		ID:        s.ID,
		Source:    s.Source,
		ETag:      s.ETag,
		FetchedAt: s.FetchedAt,
		Rules:     rules,
	}, nil
}
