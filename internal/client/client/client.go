package client

import (
	"context"
	"time"

	"github.com/dmitrijs2005/nutrisync/internal/client/models"
)

// PushAck is the backend's answer to a push. When Applied is false the
// backend kept Current, a version that wins over the pushed one.
type PushAck struct {
	Applied bool
	Current *models.Record
}

// PullPage is one page of remote changes in change sequence order. NextSeq
// is the cursor to resume from and More is set while later changes remain.
type PullPage struct {
	Records []*models.Record
	NextSeq int64
	More    bool
}

// DeleteFilter selects remote rows for a physical delete. Zero values do
// not restrict.
type DeleteFilter struct {
	Type           models.EntityType
	SyncIDs        []string
	UpdatedBefore  time.Time
	TombstonesOnly bool
	// AllUsers widens the scope beyond the signed-in identity; it is honored
	// only together with the admin key.
	AllUsers bool
}

type Client interface {
	Close() error
	Register(ctx context.Context, username string, salt []byte, key []byte) error
	GetSalt(ctx context.Context, username string) ([]byte, error)
	Login(ctx context.Context, username string, key []byte) error
	Logout()
	Ping(ctx context.Context) error
	// Identity is the signed-in user id, or "" without a session.
	Identity() string
	Push(ctx context.Context, rec *models.Record) (*PushAck, error)
	// Pull returns the changes of one type stored after afterSeq. A zero
	// limit leaves the page size to the backend.
	Pull(ctx context.Context, t models.EntityType, afterSeq int64, limit int) (*PullPage, error)
	DeleteScope(ctx context.Context, f DeleteFilter) (int64, error)
}
