package records

import (
	"context"
	"time"

	"github.com/dmitrijs2005/nutrisync/internal/client/models"
)

// Filter narrows ListLive. Zero values mean no restriction.
type Filter struct {
	// Date matches the payload "date" field (YYYY-MM-DD).
	Date string
	// Limit keeps only the most recent N records, still returned oldest first.
	Limit int
}

// Repository describes the local store operations used by domain services
// and the sync coordinator.
type Repository interface {
	// Create persists a new record: assigns a sync identity when empty,
	// stamps updated-at and marks it pending.
	Create(ctx context.Context, rec *models.Record) (*models.Record, error)

	// Update replaces the payload of a live record, bumps updated-at and
	// marks it pending. Unknown or tombstoned ids yield common.ErrorNotFound.
	Update(ctx context.Context, rec *models.Record) (*models.Record, error)

	// SoftDelete tombstones a record. Deleting a tombstone is a no-op.
	SoftDelete(ctx context.Context, t models.EntityType, syncID string) (*models.Record, error)

	// GetBySyncID returns (nil, nil) when the record does not exist.
	GetBySyncID(ctx context.Context, t models.EntityType, syncID string) (*models.Record, error)

	// ListChangedSince returns records with updated-at >= since, oldest first,
	// tombstones included.
	ListChangedSince(ctx context.Context, t models.EntityType, since time.Time) ([]*models.Record, error)

	// ListUnsynced returns pending and failed records, oldest first.
	ListUnsynced(ctx context.Context, t models.EntityType) ([]*models.Record, error)

	// ListLive returns non-deleted records matching f.
	ListLive(ctx context.Context, t models.EntityType, f Filter) ([]*models.Record, error)

	// Count returns the number of live records.
	Count(ctx context.Context, t models.EntityType) (int, error)

	// MarkStatus sets the sync status if the record still has updatedAt.
	// It reports false when a newer local edit won the race.
	MarkStatus(ctx context.Context, t models.EntityType, syncID string, status models.SyncStatus, updatedAt time.Time) (bool, error)

	// ApplyRemote stores rec exactly as received with status synced.
	// A nil expected inserts and fails softly if the id already exists;
	// otherwise the row is replaced only while its updated-at equals *expected.
	ApplyRemote(ctx context.Context, rec *models.Record, expected *time.Time) (bool, error)
}
