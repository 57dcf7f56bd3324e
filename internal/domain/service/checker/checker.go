package checker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"

	"uk_numcheck/internal/domain"
	"uk_numcheck/internal/domain/entity"
	"uk_numcheck/internal/domain/service/numplan"
	"uk_numcheck/internal/domain/value"
	"uk_numcheck/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const (
	resultCacheTTL     = 5 * time.Minute
	resultCacheCleanup = 15 * time.Minute
)

// snapshotState pairs a compiled classifier with the metadata of the rule
// set it was built from. One refresh publishes one of these, wholesale.
type snapshotState struct {
	classifier *numplan.Classifier
	meta       entity.Meta
}

// Service owns the currently published rule set and answers every
// classification against it. Publish swaps the whole state in one atomic
// store, so a request observes either the previous rule set or the new one,
// never a mix of both.
type Service struct {
	current atomic.Pointer[snapshotState]
	results *cache.Cache
	policy  numplan.StatusPolicy
}

func NewService(policy numplan.StatusPolicy) *Service {
	return &Service{
		results: cache.New(resultCacheTTL, resultCacheCleanup),
		policy:  policy,
	}
}

// Publish compiles the snapshot into a fresh index and makes it the serving
// rule set. The result cache is flushed in the same breath: a cached answer
// must never outlive the data it was computed from.
func (s *Service) Publish(ctx context.Context, snap entity.Snapshot) {
	classifier := numplan.NewClassifier(numplan.BuildIndex(snap.Rules), s.policy)

	s.current.Store(&snapshotState{
		classifier: classifier,
		meta:       snap.Meta(s.policy.Name()),
	})
	s.results.Flush()

	observePublish(len(snap.Rules), snap.FetchedAt)

	logger(ctx).Info("rule set published",
		"snapshot_id", snap.ID,
		"source", snap.Source,
		"rules", len(snap.Rules),
	)
}

// Ready reports whether a rule set has been published yet. Wired to the
// readiness probe so an instance takes no traffic while still empty.
func (s *Service) Ready() bool {
	return s.current.Load() != nil
}

// Dataset returns the metadata of the published rule set.
func (s *Service) Dataset() (entity.Meta, error) {
	state := s.current.Load()
	if state == nil {
		return entity.Meta{}, domain.ErrDatasetUnavailable
	}

	return state.meta, nil
}

// Check classifies one raw number string. Input the normalizer rejects is a
// NUMBER_INVALID report, not an error; the only error is asking before any
// rule set has been published.
func (s *Service) Check(ctx context.Context, raw string) (entity.ValidationReport, error) {
	state := s.current.Load()
	if state == nil {
		return entity.ValidationReport{}, domain.ErrDatasetUnavailable
	}

	return s.check(state, raw), nil
}

// CheckBatch classifies the numbers in input order against a single view of
// the rule set, even when a publish lands mid-batch. Size limits are the
// transport's concern.
func (s *Service) CheckBatch(ctx context.Context, raws []string) ([]entity.ValidationReport, error) {
	state := s.current.Load()
	if state == nil {
		return nil, domain.ErrDatasetUnavailable
	}

	reports := make([]entity.ValidationReport, len(raws))
	for i, raw := range raws {
		reports[i] = s.check(state, raw)
	}

	return reports, nil
}

func (s *Service) check(state *snapshotState, raw string) entity.ValidationReport {
	report := entity.ValidationReport{Number: raw}

	national, err := value.ParseNationalNumber(raw)
	if err != nil {
		report.Classification = entity.Classification{Outcome: entity.NumberInvalid}
		observeClassification(entity.NumberInvalid)

		return report
	}

	report.Canonical = national.String()

	if cached, found := s.results.Get(report.Canonical); found {
		if classification, ok := cached.(entity.Classification); ok {
			report.Classification = classification
			observeClassification(classification.Outcome)
			observeCacheHit()

			return report
		}
	}

	report.Classification = state.classifier.Classify(national)
	s.results.Set(report.Canonical, report.Classification, cache.DefaultExpiration)
	observeClassification(report.Classification.Outcome)

	return report
}
