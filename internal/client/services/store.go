package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/nutrisync/internal/client/models"
	"github.com/dmitrijs2005/nutrisync/internal/client/repositories/records"
)

// Notifier is told about every local mutation, typically to schedule a
// sync pass.
type Notifier interface {
	Trigger()
}

type nopNotifier struct{}

func (nopNotifier) Trigger() {}

func orNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}

type entityPtr[T any] interface {
	*T
	models.Entity
}

func decodeOne[T any, P entityPtr[T]](rec *models.Record) (P, error) {
	var v T
	p := P(&v)
	if err := models.Decode(rec, p); err != nil {
		return nil, err
	}
	return p, nil
}

func decodeAll[T any, P entityPtr[T]](recs []*models.Record) ([]P, error) {
	out := make([]P, 0, len(recs))
	for _, r := range recs {
		p, err := decodeOne[T, P](r)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// save validates e and creates or updates its record, depending on whether
// it already has a sync identity. The stored envelope is copied back to e.
func save(ctx context.Context, repo records.Repository, e models.Entity) error {
	if err := e.Validate(); err != nil {
		return err
	}
	rec, err := models.Encode(e)
	if err != nil {
		return err
	}

	var stored *models.Record
	if e.SyncEnvelope().LocalID == 0 && e.SyncEnvelope().UpdatedAt.IsZero() {
		stored, err = repo.Create(ctx, rec)
	} else {
		stored, err = repo.Update(ctx, rec)
	}
	if err != nil {
		return fmt.Errorf("saving error: %w", err)
	}
	*e.SyncEnvelope() = stored.Envelope
	return nil
}

func get[T any, P entityPtr[T]](ctx context.Context, repo records.Repository, t models.EntityType, syncID string) (P, error) {
	rec, err := repo.GetBySyncID(ctx, t, syncID)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.IsDeleted() {
		return nil, nil
	}
	return decodeOne[T, P](rec)
}
