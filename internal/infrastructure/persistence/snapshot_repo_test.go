package persistence_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"uk_numcheck/internal/domain"
	"uk_numcheck/internal/domain/entity"
	"uk_numcheck/internal/infrastructure/persistence"
	"uk_numcheck/pkg/dbtest"
	"uk_numcheck/pkg/errcodes"
)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN is not set")
	}

	db, err := sqlx.Connect("pgx", dsn)
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	require.NoError(t, dbtest.MigrateFromFile(db, "../../../migrations/001_plan_snapshots.sql"))

	_, err = db.Exec(`TRUNCATE plan_snapshots`)
	require.NoError(t, err)

	return db
}

func TestSnapshotRepositorySaveAndLatest(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	repo := persistence.NewSnapshotRepository(testDB(t))

	snap := entity.Snapshot{
		ID:        uuid.New(),
		Source:    "https://www.ofcom.org.uk/static/numbering/sabc.csv",
		ETag:      `"v1"`,
		FetchedAt: time.Now().UTC().Truncate(time.Microsecond),
		Rules: []entity.AllocationRule{
			{Prefix: "0208099", TotalLength: 11, Status: "Allocated", Provider: "ExampleTelco"},
			{Prefix: "0800", TotalLength: 11, Status: "Free for allocation"},
		},
	}

	rq.NoError(repo.Save(ctx, snap))

	// Saving the same snapshot again must not duplicate it.
	rq.NoError(repo.Save(ctx, snap))

	got, err := repo.Latest(ctx)
	rq.NoError(err)

	rq.Equal(snap.ID, got.ID)
	rq.Equal(snap.Source, got.Source)
	rq.Equal(snap.ETag, got.ETag)
	rq.True(snap.FetchedAt.Equal(got.FetchedAt))
	rq.Equal(snap.Rules, got.Rules)
}

func TestSnapshotRepositoryLatestPicksNewest(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	repo := persistence.NewSnapshotRepository(testDB(t))

	older := entity.Snapshot{
		ID:        uuid.New(),
		Source:    "sabc.csv",
		FetchedAt: time.Now().UTC().Add(-48 * time.Hour),
		Rules:     []entity.AllocationRule{{Prefix: "0151", TotalLength: 11, Status: "Allocated"}},
	}
	newer := entity.Snapshot{
		ID:        uuid.New(),
		Source:    "sabc.csv",
		FetchedAt: time.Now().UTC(),
		Rules:     []entity.AllocationRule{{Prefix: "0161", TotalLength: 11, Status: "Allocated"}},
	}

	rq.NoError(repo.Save(ctx, older))
	rq.NoError(repo.Save(ctx, newer))

	got, err := repo.Latest(ctx)
	rq.NoError(err)
	rq.Equal(newer.ID, got.ID)
}

func TestSnapshotRepositoryLatestEmpty(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	repo := persistence.NewSnapshotRepository(testDB(t))

	_, err := repo.Latest(ctx)
	rq.Error(err)

	var appErr *domain.AppError
	rq.True(errors.As(err, &appErr))
	rq.Equal(errcodes.SnapshotNotFound, appErr.Code)
}

func TestSnapshotRepositoryDeleteOlderThan(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	repo := persistence.NewSnapshotRepository(testDB(t))

	stale := entity.Snapshot{
		ID:        uuid.New(),
		Source:    "sabc.csv",
		FetchedAt: time.Now().UTC().Add(-30 * 24 * time.Hour),
		Rules:     []entity.AllocationRule{{Prefix: "0151", TotalLength: 11, Status: "Allocated"}},
	}
	current := entity.Snapshot{
		ID:        uuid.New(),
		Source:    "sabc.csv",
		FetchedAt: time.Now().UTC(),
		Rules:     []entity.AllocationRule{{Prefix: "0161", TotalLength: 11, Status: "Allocated"}},
	}

	rq.NoError(repo.Save(ctx, stale))
	rq.NoError(repo.Save(ctx, current))

	deleted, err := repo.DeleteOlderThan(ctx, time.Now().UTC().Add(-7*24*time.Hour))
	rq.NoError(err)
	rq.EqualValues(1, deleted)

	got, err := repo.Latest(ctx)
	rq.NoError(err)
	rq.Equal(current.ID, got.ID)
}

// The newest snapshot survives pruning even when the cutoff would cover it.
func TestSnapshotRepositoryDeleteKeepsNewest(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	repo := persistence.NewSnapshotRepository(testDB(t))

	only := entity.Snapshot{
		ID:        uuid.New(),
		Source:    "sabc.csv",
		FetchedAt: time.Now().UTC().Add(-365 * 24 * time.Hour),
		Rules:     []entity.AllocationRule{{Prefix: "0151", TotalLength: 11, Status: "Allocated"}},
	}

	rq.NoError(repo.Save(ctx, only))

	deleted, err := repo.DeleteOlderThan(ctx, time.Now().UTC())
	rq.NoError(err)
	rq.EqualValues(0, deleted)

	got, err := repo.Latest(ctx)
	rq.NoError(err)
	rq.Equal(only.ID, got.ID)
}
