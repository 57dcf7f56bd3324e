package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"uk_numcheck/internal/domain"
	"uk_numcheck/internal/domain/entity"
	"uk_numcheck/pkg/errcodes"
)

type SnapshotRepository struct {
	db *sqlx.DB
}

func NewSnapshotRepository(db *sqlx.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to commit")
	}
	return nil
}

// Save archives one downloaded rule set. Saving the same snapshot id twice
// is a no-op, so a retried refresh cannot duplicate rows.
func (r *SnapshotRepository) Save(ctx context.Context, snap entity.Snapshot) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		schema, err := fromSnapshot(snap)
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to encode rules")
		}

		query := `
			INSERT INTO plan_snapshots (
				id, source, etag, fetched_at, rule_count, rules
			) VALUES (
				:id, :source, :etag, :fetched_at, :rule_count, :rules
			)
			ON CONFLICT (id) DO NOTHING`

		if _, err := tx.NamedExecContext(ctx, query, schema); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to save snapshot")
		}
		return nil
	})
}

// Latest returns the most recently fetched snapshot with its full rule
// payload.
func (r *SnapshotRepository) Latest(ctx context.Context) (entity.Snapshot, error) {
	query := `SELECT * FROM plan_snapshots ORDER BY fetched_at DESC LIMIT 1`

	var schema snapshotSchema
	if err := r.db.GetContext(ctx, &schema, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Snapshot{}, domain.NewError(errcodes.SnapshotNotFound, "no snapshot archived")
		}
		return entity.Snapshot{}, domain.WrapError(err, errcodes.InternalServerError, "failed to get latest snapshot")
	}

	snap, err := schema.toDomain()
	if err != nil {
		return entity.Snapshot{}, domain.WrapError(err, errcodes.InternalServerError, "failed to decode rules")
	}
	return snap, nil
}

// DeleteOlderThan prunes snapshots fetched before the cutoff, always keeping
// the newest row so a startup load never comes up empty.
func (r *SnapshotRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64

	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			DELETE FROM plan_snapshots
			WHERE fetched_at < $1
			  AND id <> (SELECT id FROM plan_snapshots ORDER BY fetched_at DESC LIMIT 1)`

		res, err := tx.ExecContext(ctx, query, cutoff)
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to prune snapshots")
		}

		deleted, _ = res.RowsAffected()
		return nil
	})

	return deleted, err
}
