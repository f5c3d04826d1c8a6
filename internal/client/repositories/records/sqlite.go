package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/nutrisync/internal/client/models"
	"github.com/dmitrijs2005/nutrisync/internal/common"
	"github.com/dmitrijs2005/nutrisync/internal/dbx"
	"github.com/dmitrijs2005/nutrisync/internal/timex"
	"github.com/google/uuid"
)

const columns = `id, sync_id, updated_at, deleted_at, sync_status, payload`

// maxBumpRetries bounds optimistic retries when a concurrent writer moves
// updated-at between our read and our write.
const maxBumpRetries = 3

var tables = map[models.EntityType]string{
	models.TypeFoodEntry:   "food_entries",
	models.TypeDailyGoal:   "daily_goals",
	models.TypeChatMessage: "chat_messages",
}

func tableFor(t models.EntityType) (string, error) {
	name, ok := tables[t]
	if !ok {
		return "", fmt.Errorf("%w: %q", models.ErrUnknownType, t)
	}
	return name, nil
}

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

// WithClock replaces the time source used to stamp mutations.
func (r *SQLiteRepository) WithClock(now func() time.Time) *SQLiteRepository {
	r.now = now
	return r
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(t models.EntityType, s scanner) (*models.Record, error) {
	var (
		rec       = &models.Record{Type: t}
		updatedAt int64
		deletedAt sql.NullInt64
		status    string
		payload   []byte
	)
	if err := s.Scan(&rec.LocalID, &rec.SyncID, &updatedAt, &deletedAt, &status, &payload); err != nil {
		return nil, err
	}
	rec.UpdatedAt = timex.FromMillis(updatedAt)
	if deletedAt.Valid {
		d := timex.FromMillis(deletedAt.Int64)
		rec.DeletedAt = &d
	}
	rec.SyncStatus = models.SyncStatus(status)
	rec.Payload = payload
	return rec, nil
}

func deletedArg(d *time.Time) any {
	if d == nil {
		return nil
	}
	return timex.ToMillis(*d)
}

func (r *SQLiteRepository) query(ctx context.Context, t models.EntityType, q string, args ...any) ([]*models.Record, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select %s: %w", t, err)
	}
	defer rows.Close()

	var result []*models.Record
	for rows.Next() {
		rec, err := scanRecord(t, rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", t, err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s rows: %w", t, err)
	}
	return result, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, rec *models.Record) (*models.Record, error) {
	table, err := tableFor(rec.Type)
	if err != nil {
		return nil, err
	}

	out := rec.Clone()
	if out.SyncID == "" {
		out.SyncID = uuid.NewString()
	}
	out.UpdatedAt = timex.Truncate(r.now())
	out.SyncStatus = models.StatusPending

	q := fmt.Sprintf(`INSERT INTO %s (sync_id, updated_at, deleted_at, sync_status, payload) VALUES (?, ?, ?, ?, ?)`, table)
	res, err := r.db.ExecContext(ctx, q, out.SyncID, timex.ToMillis(out.UpdatedAt), deletedArg(out.DeletedAt), string(out.SyncStatus), string(out.Payload))
	if err != nil {
		return nil, fmt.Errorf("failed to insert %s: %w", rec.Type, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}
	out.LocalID = id
	return out, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, rec *models.Record) (*models.Record, error) {
	table, err := tableFor(rec.Type)
	if err != nil {
		return nil, err
	}

	for range maxBumpRetries {
		current, err := r.GetBySyncID(ctx, rec.Type, rec.SyncID)
		if err != nil {
			return nil, err
		}
		if current == nil || current.IsDeleted() {
			return nil, fmt.Errorf("%s %s: %w", rec.Type, rec.SyncID, common.ErrorNotFound)
		}

		next := timex.Bump(r.now(), current.UpdatedAt)
		q := fmt.Sprintf(`UPDATE %s SET payload = ?, updated_at = ?, sync_status = ? WHERE sync_id = ? AND updated_at = ?`, table)
		ok, err := r.execOne(ctx, q, string(rec.Payload), timex.ToMillis(next), string(models.StatusPending), rec.SyncID, timex.ToMillis(current.UpdatedAt))
		if err != nil {
			return nil, fmt.Errorf("failed to update %s: %w", rec.Type, err)
		}
		if ok {
			current.Payload = append(current.Payload[:0:0], rec.Payload...)
			current.UpdatedAt = next
			current.SyncStatus = models.StatusPending
			return current, nil
		}
	}
	return nil, fmt.Errorf("update %s %s: %w", rec.Type, rec.SyncID, common.ErrVersionConflict)
}

func (r *SQLiteRepository) SoftDelete(ctx context.Context, t models.EntityType, syncID string) (*models.Record, error) {
	table, err := tableFor(t)
	if err != nil {
		return nil, err
	}

	for range maxBumpRetries {
		current, err := r.GetBySyncID(ctx, t, syncID)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, fmt.Errorf("%s %s: %w", t, syncID, common.ErrorNotFound)
		}
		if current.IsDeleted() {
			return current, nil
		}

		next := timex.Bump(r.now(), current.UpdatedAt)
		q := fmt.Sprintf(`UPDATE %s SET deleted_at = ?, updated_at = ?, sync_status = ? WHERE sync_id = ? AND updated_at = ?`, table)
		ok, err := r.execOne(ctx, q, timex.ToMillis(next), timex.ToMillis(next), string(models.StatusPending), syncID, timex.ToMillis(current.UpdatedAt))
		if err != nil {
			return nil, fmt.Errorf("failed to delete %s: %w", t, err)
		}
		if ok {
			current.DeletedAt = &next
			current.UpdatedAt = next
			current.SyncStatus = models.StatusPending
			return current, nil
		}
	}
	return nil, fmt.Errorf("delete %s %s: %w", t, syncID, common.ErrVersionConflict)
}

func (r *SQLiteRepository) GetBySyncID(ctx context.Context, t models.EntityType, syncID string) (*models.Record, error) {
	table, err := tableFor(t)
	if err != nil {
		return nil, err
	}
	q := fmt.Sprintf(`SELECT %s FROM %s WHERE sync_id = ?`, columns, table)
	rec, err := scanRecord(t, r.db.QueryRowContext(ctx, q, syncID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s[%s]: %w", t, syncID, err)
	}
	return rec, nil
}

func (r *SQLiteRepository) ListChangedSince(ctx context.Context, t models.EntityType, since time.Time) ([]*models.Record, error) {
	table, err := tableFor(t)
	if err != nil {
		return nil, err
	}
	q := fmt.Sprintf(`SELECT %s FROM %s WHERE updated_at >= ? ORDER BY updated_at, id`, columns, table)
	return r.query(ctx, t, q, timex.ToMillis(since))
}

func (r *SQLiteRepository) ListUnsynced(ctx context.Context, t models.EntityType) ([]*models.Record, error) {
	table, err := tableFor(t)
	if err != nil {
		return nil, err
	}
	q := fmt.Sprintf(`SELECT %s FROM %s WHERE sync_status != 'synced' ORDER BY updated_at, id`, columns, table)
	return r.query(ctx, t, q)
}

func (r *SQLiteRepository) ListLive(ctx context.Context, t models.EntityType, f Filter) ([]*models.Record, error) {
	table, err := tableFor(t)
	if err != nil {
		return nil, err
	}

	where := `deleted_at IS NULL`
	var args []any
	if f.Date != "" {
		where += ` AND json_extract(payload, '$.date') = ?`
		args = append(args, f.Date)
	}

	q := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY id`, columns, table, where)
	if f.Limit > 0 {
		q = fmt.Sprintf(`SELECT %s FROM (SELECT %s FROM %s WHERE %s ORDER BY id DESC LIMIT ?) ORDER BY id`, columns, columns, table, where)
		args = append(args, f.Limit)
	}
	return r.query(ctx, t, q, args...)
}

func (r *SQLiteRepository) Count(ctx context.Context, t models.EntityType) (int, error) {
	table, err := tableFor(t)
	if err != nil {
		return 0, err
	}
	var n int
	q := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE deleted_at IS NULL`, table)
	if err := r.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", t, err)
	}
	return n, nil
}

func (r *SQLiteRepository) MarkStatus(ctx context.Context, t models.EntityType, syncID string, status models.SyncStatus, updatedAt time.Time) (bool, error) {
	table, err := tableFor(t)
	if err != nil {
		return false, err
	}
	q := fmt.Sprintf(`UPDATE %s SET sync_status = ? WHERE sync_id = ? AND updated_at = ?`, table)
	ok, err := r.execOne(ctx, q, string(status), syncID, timex.ToMillis(updatedAt))
	if err != nil {
		return false, fmt.Errorf("failed to mark %s[%s] %s: %w", t, syncID, status, err)
	}
	return ok, nil
}

func (r *SQLiteRepository) ApplyRemote(ctx context.Context, rec *models.Record, expected *time.Time) (bool, error) {
	table, err := tableFor(rec.Type)
	if err != nil {
		return false, err
	}

	updatedAt := timex.ToMillis(rec.UpdatedAt)
	synced := string(models.StatusSynced)

	var (
		q    string
		args []any
	)
	if expected == nil {
		q = fmt.Sprintf(`INSERT INTO %s (sync_id, updated_at, deleted_at, sync_status, payload) VALUES (?, ?, ?, ?, ?) ON CONFLICT(sync_id) DO NOTHING`, table)
		args = []any{rec.SyncID, updatedAt, deletedArg(rec.DeletedAt), synced, string(rec.Payload)}
	} else {
		q = fmt.Sprintf(`UPDATE %s SET updated_at = ?, deleted_at = ?, sync_status = ?, payload = ? WHERE sync_id = ? AND updated_at = ?`, table)
		args = []any{updatedAt, deletedArg(rec.DeletedAt), synced, string(rec.Payload), rec.SyncID, timex.ToMillis(*expected)}
	}

	ok, err := r.execOne(ctx, q, args...)
	if err != nil {
		return false, fmt.Errorf("failed to apply remote %s[%s]: %w", rec.Type, rec.SyncID, err)
	}
	return ok, nil
}

// execOne runs a statement expected to touch at most one row and reports
// whether it did.
func (r *SQLiteRepository) execOne(ctx context.Context, q string, args ...any) (bool, error) {
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	switch n {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("wrong rows affected count: %d", n)
	}
}
