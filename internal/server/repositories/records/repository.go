// Package records stores the synchronized entity versions of every user.
package records

import (
	"context"

	"github.com/dmitrijs2005/nutrisync/internal/server/models"
)

// Filter selects rows for a physical delete. An empty UserID spans every
// user and an empty Type spans every entity type. Zero UpdatedBeforeMs
// means no age limit.
type Filter struct {
	UserID          string
	Type            string
	SyncIDs         []string
	UpdatedBeforeMs int64
	TombstonesOnly  bool
}

// Deleted reports a physical delete: how many rows went and the object
// storage keys they referenced.
type Deleted struct {
	Count       int64
	PayloadKeys []string
}

type Repository interface {
	// LockOwner serializes writers of one user until the surrounding
	// transaction ends, so change sequence numbers commit in order.
	LockOwner(ctx context.Context, userID string) error

	// GetForUpdate returns the stored version and locks it until the
	// surrounding transaction ends. A missing row yields common.ErrorNotFound.
	GetForUpdate(ctx context.Context, userID, entityType, syncID string) (*models.Record, error)

	// Upsert stores rec unless the stored version beats it. It reports
	// whether rec was written and sets rec.ChangeSeq when it was.
	Upsert(ctx context.Context, rec *models.Record) (bool, error)

	// ListChanged returns at most limit records of one type whose change
	// sequence is above afterSeq, tombstones included, in sequence order.
	ListChanged(ctx context.Context, userID, entityType string, afterSeq int64, limit int) ([]*models.Record, error)

	// DeleteScope physically removes the rows matching f.
	DeleteScope(ctx context.Context, f Filter) (*Deleted, error)
}
