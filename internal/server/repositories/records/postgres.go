package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/nutrisync/internal/common"
	"github.com/dmitrijs2005/nutrisync/internal/dbx"
	"github.com/dmitrijs2005/nutrisync/internal/server/models"
)

const (
	columns       = `user_id, type, sync_id, updated_at_ms, deleted_at_ms, payload, payload_hash, payload_key, device_id`
	selectColumns = columns + `, change_seq`
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*models.Record, error) {
	var (
		r          models.Record
		deletedAt  sql.NullInt64
		payloadKey sql.NullString
		deviceID   sql.NullString
	)
	if err := row.Scan(&r.UserID, &r.Type, &r.SyncID, &r.UpdatedAtMs, &deletedAt,
		&r.Payload, &r.PayloadHash, &payloadKey, &deviceID, &r.ChangeSeq); err != nil {
		return nil, err
	}
	if deletedAt.Valid {
		d := deletedAt.Int64
		r.DeletedAtMs = &d
	}
	r.PayloadKey = payloadKey.String
	r.DeviceID = deviceID.String
	return &r, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *PostgresRepository) LockOwner(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, userID); err != nil {
		return fmt.Errorf("failed to lock owner: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetForUpdate(ctx context.Context, userID, entityType, syncID string) (*models.Record, error) {
	query := `SELECT ` + selectColumns + `
		FROM records
		WHERE user_id = $1 AND type = $2 AND sync_id = $3
		FOR UPDATE`

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, userID, entityType, syncID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

// Upsert relies on a row comparison in the ON CONFLICT guard; it encodes
// the same order as models.Record.Beats. Hashes compare bytewise under the
// C collation. Inserts take change_seq from the column default and
// applied updates draw a fresh one.
func (r *PostgresRepository) Upsert(ctx context.Context, rec *models.Record) (bool, error) {
	query := `INSERT INTO records (` + columns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, type, sync_id) DO UPDATE SET
			updated_at_ms = EXCLUDED.updated_at_ms,
			deleted_at_ms = EXCLUDED.deleted_at_ms,
			payload       = EXCLUDED.payload,
			payload_hash  = EXCLUDED.payload_hash,
			payload_key   = EXCLUDED.payload_key,
			device_id     = EXCLUDED.device_id,
			change_seq    = nextval('records_change_seq')
		WHERE (EXCLUDED.updated_at_ms, EXCLUDED.deleted_at_ms IS NOT NULL, EXCLUDED.payload_hash COLLATE "C")
			> (records.updated_at_ms, records.deleted_at_ms IS NOT NULL, records.payload_hash COLLATE "C")
		RETURNING change_seq`

	var deletedAt sql.NullInt64
	if rec.DeletedAtMs != nil {
		deletedAt = sql.NullInt64{Int64: *rec.DeletedAtMs, Valid: true}
	}
	var payload any
	if rec.PayloadKey == "" {
		payload = rec.Payload
	}

	var seq int64
	err := r.db.QueryRowContext(ctx, query,
		rec.UserID, rec.Type, rec.SyncID, rec.UpdatedAtMs, deletedAt,
		payload, rec.PayloadHash, nullString(rec.PayloadKey), nullString(rec.DeviceID)).Scan(&seq)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to upsert record: %w", err)
	}
	rec.ChangeSeq = seq
	return true, nil
}

func (r *PostgresRepository) ListChanged(ctx context.Context, userID, entityType string, afterSeq int64, limit int) ([]*models.Record, error) {
	query := `SELECT ` + selectColumns + `
		FROM records
		WHERE user_id = $1 AND type = $2 AND change_seq > $3
		ORDER BY change_seq
		LIMIT $4`

	rows, err := r.db.QueryContext(ctx, query, userID, entityType, afterSeq, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

// scopeWhere renders f as a WHERE clause with positional arguments.
func scopeWhere(f Filter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.UserID != "" {
		add("user_id = $%d", f.UserID)
	}
	if f.Type != "" {
		add("type = $%d", f.Type)
	}
	if len(f.SyncIDs) > 0 {
		ph := make([]string, 0, len(f.SyncIDs))
		for _, id := range f.SyncIDs {
			args = append(args, id)
			ph = append(ph, fmt.Sprintf("$%d", len(args)))
		}
		conds = append(conds, "sync_id IN ("+strings.Join(ph, ", ")+")")
	}
	if f.UpdatedBeforeMs > 0 {
		add("updated_at_ms < $%d", f.UpdatedBeforeMs)
	}
	if f.TombstonesOnly {
		conds = append(conds, "deleted_at_ms IS NOT NULL")
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *PostgresRepository) DeleteScope(ctx context.Context, f Filter) (*Deleted, error) {
	where, args := scopeWhere(f)
	query := `DELETE FROM records` + where + ` RETURNING payload_key`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to delete records: %w", err)
	}
	defer rows.Close()

	d := &Deleted{}
	for rows.Next() {
		var key sql.NullString
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to delete records: %w", err)
		}
		d.Count++
		if key.Valid && key.String != "" {
			d.PayloadKeys = append(d.PayloadKeys, key.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to delete records: %w", err)
	}
	return d, nil
}
