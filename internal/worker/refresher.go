package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"uk_numcheck/internal/domain"
	"uk_numcheck/internal/domain/entity"
	"uk_numcheck/internal/domain/service/numplan"
	"uk_numcheck/internal/infrastructure/ofcom"
	"uk_numcheck/pkg/errcodes"
	"uk_numcheck/pkg/logx"
)

const (
	defaultDriftThresholdPct = 20.0
	defaultRetention         = 90 * 24 * time.Hour
)

type Fetcher interface {
	Fetch(ctx context.Context) (ofcom.Result, error)
}

type SnapshotRepository interface {
	Save(ctx context.Context, snapshot entity.Snapshot) error
	Latest(ctx context.Context) (entity.Snapshot, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Publisher receives the parsed rule set and makes it live.
type Publisher interface {
	Publish(ctx context.Context, snapshot entity.Snapshot)
	Dataset() (entity.Meta, error)
}

// Refresher drives one dataset refresh end to end: fetch the source files,
// parse them, archive a snapshot and publish the rule set. It also restores
// the last archived snapshot on startup so the service answers before the
// first fetch completes.
type Refresher struct {
	fetcher   Fetcher
	snapshots SnapshotRepository
	publisher Publisher
	policy    numplan.StatusPolicy
	source    string

	events            chan<- Event
	seedFile          string
	driftThresholdPct float64
	retention         time.Duration
}

func NewRefresher(
	fetcher Fetcher,
	snapshots SnapshotRepository,
	publisher Publisher,
	policy numplan.StatusPolicy,
	source string,
) *Refresher {
	return &Refresher{
		fetcher:           fetcher,
		snapshots:         snapshots,
		publisher:         publisher,
		policy:            policy,
		source:            source,
		driftThresholdPct: defaultDriftThresholdPct,
		retention:         defaultRetention,
	}
}

// WithEvents routes operator notifications into events. Without it they are
// only logged.
func (w *Refresher) WithEvents(events chan<- Event) *Refresher {
	w.events = events
	return w
}

// WithSeedFile sets a rule file to publish when no snapshot is archived yet.
func (w *Refresher) WithSeedFile(path string) *Refresher {
	w.seedFile = path
	return w
}

func (w *Refresher) WithDriftThreshold(pct float64) *Refresher {
	w.driftThresholdPct = pct
	return w
}

func (w *Refresher) WithRetention(retention time.Duration) *Refresher {
	w.retention = retention
	return w
}

// Bootstrap publishes the most recent archived snapshot, falling back to the
// seed file. Finding nothing to publish is not an error, the service then
// stays unready until the first refresh.
func (w *Refresher) Bootstrap(ctx context.Context) error {
	snapshot, err := w.snapshots.Latest(ctx)
	if err == nil {
		w.publisher.Publish(ctx, snapshot)

		logger(ctx).Info(
			"published archived snapshot",
			slog.String("snapshot_id", snapshot.ID.String()),
			slog.Int("rules", len(snapshot.Rules)),
		)

		return nil
	}

	if code, ok := domain.GetCode(err); !ok || code != errcodes.SnapshotNotFound {
		return fmt.Errorf("snapshots.Latest: %w", err)
	}

	if w.seedFile == "" {
		logger(ctx).Info("no archived snapshot, waiting for first refresh")
		return nil
	}

	snapshot, err = w.loadSeed()
	if err != nil {
		return fmt.Errorf("seed file %s: %w", w.seedFile, err)
	}

	w.publisher.Publish(ctx, snapshot)

	logger(ctx).Info("published seed rule set", slog.String("file", w.seedFile), slog.Int("rules", len(snapshot.Rules)))

	return nil
}

func (w *Refresher) loadSeed() (entity.Snapshot, error) {
	content, err := os.ReadFile(w.seedFile)
	if err != nil {
		return entity.Snapshot{}, fmt.Errorf("os.ReadFile: %w", err)
	}

	var rules []entity.AllocationRule
	if err := json.Unmarshal(content, &rules); err != nil {
		return entity.Snapshot{}, fmt.Errorf("json.Unmarshal: %w", err)
	}

	if len(rules) == 0 {
		return entity.Snapshot{}, errors.New("no rules in seed file")
	}

	return entity.Snapshot{
		ID:        uuid.New(),
		Source:    "seed:" + w.seedFile,
		FetchedAt: time.Now().UTC(),
		Rules:     rules,
	}, nil
}

// HandleRefresh processes one queued refresh task.
func (w *Refresher) HandleRefresh(ctx context.Context, _ *asynq.Task) error {
	return w.Refresh(ctx)
}

// Refresh runs one refresh pass. Errors are reported to the events channel
// and returned, so a queued run is retried by asynq.
func (w *Refresher) Refresh(ctx context.Context) error {
	started := time.Now()

	outcome, err := w.refresh(ctx)
	if err != nil {
		observeRefresh(refreshResultFailed, time.Since(started))

		logger(ctx).Error("refresh failed", logx.Error(err))
		w.emit(ctx, Event{Kind: EventRefreshFailed, Err: err})

		return err
	}

	observeRefresh(outcome, time.Since(started))

	return nil
}

func (w *Refresher) refresh(ctx context.Context) (string, error) {
	result, err := w.fetcher.Fetch(ctx)
	if err != nil {
		return "", fmt.Errorf("fetcher.Fetch: %w", err)
	}

	if result.NotModified {
		logger(ctx).Info("refresh skipped, upstream unchanged")
		return refreshResultUnchanged, nil
	}

	// Validators can be lost with the Redis state while the content is
	// still the set archived last time.
	if latest, err := w.snapshots.Latest(ctx); err == nil && latest.ETag == result.ContentHash {
		logger(ctx).Info("refresh skipped, content matches archived snapshot")
		return refreshResultUnchanged, nil
	}

	rules, skipped, err := ofcom.ParseFiles(ctx, result.Files, w.policy)
	if err != nil {
		return "", fmt.Errorf("ofcom.ParseFiles: %w", err)
	}

	observeSkippedRows(skipped)

	if len(rules) == 0 {
		return "", errors.New("parsed rule set is empty")
	}

	snapshot := entity.Snapshot{
		ID:        uuid.New(),
		Source:    w.source,
		ETag:      result.ContentHash,
		FetchedAt: result.FetchedAt,
		Rules:     rules,
	}

	prev, prevKnown := w.previousRuleCount()

	if err := w.snapshots.Save(ctx, snapshot); err != nil {
		return "", fmt.Errorf("snapshots.Save: %w", err)
	}

	w.publisher.Publish(ctx, snapshot)

	meta := snapshot.Meta(w.policy.Name())

	if prevKnown && w.driftThresholdPct > 0 {
		if drift := driftPercent(prev, len(rules)); drift > w.driftThresholdPct {
			logger(ctx).Warn(
				"rule count drifted",
				slog.Int("previous", prev),
				slog.Int("current", len(rules)),
				slog.Float64("drift_pct", drift),
			)

			w.emit(ctx, Event{Kind: EventDriftWarning, Meta: meta, PrevRuleCount: prev})
		}
	}

	w.emit(ctx, Event{Kind: EventPublished, Meta: meta, SkippedRows: skipped})

	w.prune(ctx)

	return refreshResultPublished, nil
}

func (w *Refresher) previousRuleCount() (int, bool) {
	meta, err := w.publisher.Dataset()
	if err != nil {
		return 0, false
	}

	return meta.RuleCount, true
}

// prune drops snapshots past the retention window. Failures only cost disk
// space, so they never fail the refresh.
func (w *Refresher) prune(ctx context.Context) {
	if w.retention <= 0 {
		return
	}

	deleted, err := w.snapshots.DeleteOlderThan(ctx, time.Now().Add(-w.retention))
	if err != nil {
		logger(ctx).Warn("pruning snapshots", logx.Error(err))
		return
	}

	if deleted > 0 {
		logger(ctx).Info("pruned snapshots", slog.Int64("deleted", deleted))
	}
}

func (w *Refresher) emit(ctx context.Context, event Event) {
	if w.events == nil {
		return
	}

	select {
	case w.events <- event:
	default:
		logger(ctx).Warn("notification dropped", slog.String("kind", string(event.Kind)))
	}
}

func driftPercent(prev, next int) float64 {
	if prev == 0 {
		return 0
	}

	return math.Abs(float64(next-prev)) / float64(prev) * 100
}
