package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/nutrisync/internal/common"
	"github.com/dmitrijs2005/nutrisync/internal/dbx"
	"github.com/dmitrijs2005/nutrisync/internal/logging"
	"github.com/dmitrijs2005/nutrisync/internal/server/blobstore"
	"github.com/dmitrijs2005/nutrisync/internal/server/config"
	"github.com/dmitrijs2005/nutrisync/internal/server/models"
	"github.com/dmitrijs2005/nutrisync/internal/server/repositories/records"
	"github.com/dmitrijs2005/nutrisync/internal/server/repositories/repomanager"
)

// PushResult is the outcome of a push. When Applied is false Current holds
// the stored version that won.
type PushResult struct {
	Applied bool
	Current *models.Record
}

// Pull page sizes. A request without a limit gets DefaultPullLimit and
// larger requests are cut to MaxPullLimit.
const (
	DefaultPullLimit = 200
	MaxPullLimit     = 1000
)

// PullPage is one page of changes in change sequence order. NextSeq is the
// cursor to resume from and More is set while later changes remain.
type PullPage struct {
	Records []*models.Record
	NextSeq int64
	More    bool
}

// RecordService stores entity versions with last-writer-wins semantics.
// Payloads above the offload threshold go to object storage and only their
// key and hash stay in PostgreSQL.
type RecordService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	blobs        blobstore.Store
	offloadBytes int64
	pageBytes    int64
	log          logging.Logger
}

// NewRecordService builds the service. blobs may be nil, which disables
// offload regardless of the configured threshold.
func NewRecordService(db *sql.DB, m repomanager.RepositoryManager, blobs blobstore.Store, cfg *config.Config, log logging.Logger) *RecordService {
	return &RecordService{
		db:           db,
		repomanager:  m,
		blobs:        blobs,
		offloadBytes: cfg.PayloadOffloadBytes,
		pageBytes:    cfg.PullPageBytes,
		log:          log.With("module", "records"),
	}
}

func (s *RecordService) offloads(payload []byte) bool {
	return s.blobs != nil && s.offloadBytes > 0 && int64(len(payload)) > s.offloadBytes
}

func payloadKey(r *models.Record) string {
	return fmt.Sprintf("users/%s/%s/%s/%s", r.UserID, r.Type, r.SyncID, r.PayloadHash)
}

func validate(r *models.Record) error {
	switch {
	case !models.KnownType(r.Type):
		return fmt.Errorf("%w: unknown entity type %q", common.ErrorValidation, r.Type)
	case r.SyncID == "":
		return fmt.Errorf("%w: empty sync id", common.ErrorValidation)
	case r.UpdatedAtMs <= 0:
		return fmt.Errorf("%w: updated_at must be set", common.ErrorValidation)
	case !json.Valid(r.Payload):
		return fmt.Errorf("%w: payload is not JSON", common.ErrorValidation)
	}
	return nil
}

// loadPayload fills Payload for a record whose body is in object storage.
func (s *RecordService) loadPayload(ctx context.Context, r *models.Record) error {
	if r.PayloadKey == "" {
		return nil
	}
	if s.blobs == nil {
		return fmt.Errorf("record %s/%s is offloaded but no object storage is configured", r.Type, r.SyncID)
	}
	data, err := s.blobs.Get(ctx, r.PayloadKey)
	if err != nil {
		return fmt.Errorf("load payload of %s/%s: %w", r.Type, r.SyncID, err)
	}
	r.Payload = data
	return nil
}

func (s *RecordService) dropBlob(ctx context.Context, key string) {
	if key == "" || s.blobs == nil {
		return
	}
	if err := s.blobs.Delete(ctx, key); err != nil {
		s.log.Warn(ctx, "orphaned payload object", "key", key, "error", err)
	}
}

// Push stores rec when it beats the stored version of the same sync
// identity. Pushing a version that is already stored is a no-op answered
// with that version.
func (s *RecordService) Push(ctx context.Context, rec *models.Record) (*PushResult, error) {
	if err := validate(rec); err != nil {
		return nil, err
	}
	rec.PayloadHash = models.PayloadHash(rec.Payload)
	rec.PayloadKey = ""

	if s.offloads(rec.Payload) {
		rec.PayloadKey = payloadKey(rec)
		if err := s.blobs.Put(ctx, rec.PayloadKey, rec.Payload); err != nil {
			return nil, fmt.Errorf("offload payload: %w", err)
		}
	}

	var replacedKey string
	res, err := dbx.WithTxResult(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*PushResult, error) {
		repo := s.repomanager.Records(tx)

		if err := repo.LockOwner(ctx, rec.UserID); err != nil {
			return nil, err
		}

		existing, err := repo.GetForUpdate(ctx, rec.UserID, rec.Type, rec.SyncID)
		if err != nil && !errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		if existing != nil && !rec.Beats(existing) {
			return &PushResult{Current: existing}, nil
		}

		applied, err := repo.Upsert(ctx, rec)
		if err != nil {
			return nil, err
		}
		if !applied {
			// a concurrent insert won between the read and the write
			current, err := repo.GetForUpdate(ctx, rec.UserID, rec.Type, rec.SyncID)
			if err != nil {
				return nil, err
			}
			return &PushResult{Current: current}, nil
		}
		if existing != nil && existing.PayloadKey != rec.PayloadKey {
			replacedKey = existing.PayloadKey
		}
		return &PushResult{Applied: true}, nil
	})
	if err != nil {
		return nil, err
	}

	if !res.Applied {
		if rec.PayloadKey != "" && rec.PayloadKey != res.Current.PayloadKey {
			s.dropBlob(ctx, rec.PayloadKey)
		}
		if err := s.loadPayload(ctx, res.Current); err != nil {
			return nil, err
		}
		s.log.Debug(ctx, "push kept stored version", "type", rec.Type, "sync_id", rec.SyncID)
		return res, nil
	}

	s.dropBlob(ctx, replacedKey)
	s.log.Debug(ctx, "push applied", "type", rec.Type, "sync_id", rec.SyncID, "device_id", rec.DeviceID, "offloaded", rec.PayloadKey != "")
	return res, nil
}

// Pull returns the changes of one type stored after afterSeq, tombstones
// included. The page stops at limit records or once the payload budget is
// spent, whichever comes first; the first record always fits so a single
// oversized payload cannot stall the cursor.
func (s *RecordService) Pull(ctx context.Context, userID, entityType string, afterSeq int64, limit int) (*PullPage, error) {
	if !models.KnownType(entityType) {
		return nil, fmt.Errorf("%w: unknown entity type %q", common.ErrorValidation, entityType)
	}
	if afterSeq < 0 {
		return nil, fmt.Errorf("%w: negative cursor", common.ErrorValidation)
	}
	switch {
	case limit <= 0:
		limit = DefaultPullLimit
	case limit > MaxPullLimit:
		limit = MaxPullLimit
	}

	recs, err := s.repomanager.Records(s.db).ListChanged(ctx, userID, entityType, afterSeq, limit+1)
	if err != nil {
		return nil, err
	}

	page := &PullPage{NextSeq: afterSeq, More: len(recs) > limit}
	if page.More {
		recs = recs[:limit]
	}

	var size int64
	for i, r := range recs {
		if err := s.loadPayload(ctx, r); err != nil {
			return nil, err
		}
		size += int64(len(r.Payload))
		if s.pageBytes > 0 && i > 0 && size > s.pageBytes {
			page.More = true
			break
		}
		page.Records = append(page.Records, r)
		page.NextSeq = r.ChangeSeq
	}
	return page, nil
}

// DeleteScope physically removes matching rows and their offloaded
// payloads. It is the reset path, not sync deletion: other devices are not
// told about rows removed here.
func (s *RecordService) DeleteScope(ctx context.Context, f records.Filter) (int64, error) {
	if f.Type != "" && !models.KnownType(f.Type) {
		return 0, fmt.Errorf("%w: unknown entity type %q", common.ErrorValidation, f.Type)
	}

	d, err := s.repomanager.Records(s.db).DeleteScope(ctx, f)
	if err != nil {
		return 0, err
	}
	for _, key := range d.PayloadKeys {
		s.dropBlob(ctx, key)
	}

	s.log.Info(ctx, "records deleted",
		"user_id", f.UserID, "type", f.Type, "count", d.Count, "tombstones_only", f.TombstonesOnly)
	return d.Count, nil
}
