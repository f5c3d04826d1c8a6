// Package models defines the client-side entities tracked by NutriSync and
// the transport record they are synchronized as.
package models

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// EntityType names a synchronized table.
type EntityType string

const (
	TypeFoodEntry   EntityType = "food_entry"
	TypeDailyGoal   EntityType = "daily_goal"
	TypeChatMessage EntityType = "chat_message"
)

// SyncOrder is the fixed order in which a sync pass visits entity types.
var SyncOrder = []EntityType{TypeFoodEntry, TypeDailyGoal, TypeChatMessage}

// Valid reports whether t is one of the synchronized types.
func (t EntityType) Valid() bool {
	switch t {
	case TypeFoodEntry, TypeDailyGoal, TypeChatMessage:
		return true
	}
	return false
}

// SyncStatus tracks push bookkeeping for a local record.
type SyncStatus string

const (
	StatusPending SyncStatus = "pending"
	StatusSynced  SyncStatus = "synced"
	StatusFailed  SyncStatus = "failed"
)

var (
	ErrUnknownType   = errors.New("unknown entity type")
	ErrTypeMismatch  = errors.New("entity type mismatch")
	ErrMalformed     = errors.New("malformed record")
	ErrInvalidEntity = errors.New("invalid entity")
)

// Envelope is the sync metadata shared by every synchronized entity.
// LocalID is the store's row id and is never transmitted.
type Envelope struct {
	LocalID    int64
	SyncID     string
	UpdatedAt  time.Time
	DeletedAt  *time.Time
	SyncStatus SyncStatus
}

// SyncEnvelope gives access to the embedded envelope of any entity.
func (e *Envelope) SyncEnvelope() *Envelope { return e }

// IsDeleted reports whether the envelope is a tombstone.
func (e Envelope) IsDeleted() bool { return e.DeletedAt != nil }

// Entity is implemented by FoodEntry, DailyGoal and ChatMessage.
type Entity interface {
	EntityType() EntityType
	SyncEnvelope() *Envelope
	Validate() error
}

// Record is the type-erased form of an entity: its envelope plus the JSON
// encoding of its domain fields. The local store and the remote backend
// both persist records.
type Record struct {
	Type EntityType
	Envelope
	Payload json.RawMessage
}

// Hash is the hex SHA-256 of the payload.
func (r *Record) Hash() string {
	return PayloadHash(r.Payload)
}

// PayloadHash hashes an encoded payload.
func PayloadHash(p []byte) string {
	sum := sha256.Sum256(p)
	return hex.EncodeToString(sum[:])
}

// Clone returns a deep copy of r.
func (r *Record) Clone() *Record {
	c := *r
	if r.DeletedAt != nil {
		d := *r.DeletedAt
		c.DeletedAt = &d
	}
	c.Payload = append(json.RawMessage(nil), r.Payload...)
	return &c
}

// Check verifies the structural fields a record must carry before it may be
// applied locally.
func (r *Record) Check() error {
	if !r.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownType, r.Type)
	}
	if r.SyncID == "" {
		return fmt.Errorf("%w: empty sync id", ErrMalformed)
	}
	if r.UpdatedAt.IsZero() {
		return fmt.Errorf("%w: zero updated_at for %s", ErrMalformed, r.SyncID)
	}
	e, err := NewEntity(r.Type)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(r.Payload, e); err != nil {
		return fmt.Errorf("%w: payload of %s: %v", ErrMalformed, r.SyncID, err)
	}
	return nil
}

// NewEntity returns an empty entity of type t.
func NewEntity(t EntityType) (Entity, error) {
	switch t {
	case TypeFoodEntry:
		return &FoodEntry{}, nil
	case TypeDailyGoal:
		return &DailyGoal{}, nil
	case TypeChatMessage:
		return &ChatMessage{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
}

// Encode turns an entity into a record. The envelope is copied as is.
func Encode(e Entity) (*Record, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", e.EntityType(), err)
	}
	return &Record{Type: e.EntityType(), Envelope: *e.SyncEnvelope(), Payload: payload}, nil
}

// Decode fills into from rec, including the envelope.
func Decode(rec *Record, into Entity) error {
	if rec.Type != into.EntityType() {
		return fmt.Errorf("%w: record is %s, target is %s", ErrTypeMismatch, rec.Type, into.EntityType())
	}
	if err := json.Unmarshal(rec.Payload, into); err != nil {
		return fmt.Errorf("decode %s %s: %w", rec.Type, rec.SyncID, err)
	}
	*into.SyncEnvelope() = rec.Envelope
	return nil
}
