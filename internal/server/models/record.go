package models

import (
	"crypto/sha256"
	"encoding/hex"
)

// Record is one stored version of a synchronized entity, scoped to its
// owner. Rows are only ever soft-deleted by sync: a tombstone keeps its
// sync identity so other devices can learn about the deletion.
//
// When PayloadKey is set the payload lives in object storage and Payload
// is empty until it is loaded. ChangeSeq is assigned by the database on
// every stored write and orders pulls; it plays no part in conflicts.
type Record struct {
	UserID      string
	Type        string
	SyncID      string
	UpdatedAtMs int64
	DeletedAtMs *int64
	Payload     []byte
	PayloadHash string
	PayloadKey  string
	DeviceID    string
	ChangeSeq   int64
}

// IsDeleted reports whether r is a tombstone.
func (r *Record) IsDeleted() bool {
	return r.DeletedAtMs != nil
}

// PayloadHash hashes a payload the same way every client does.
func PayloadHash(p []byte) string {
	sum := sha256.Sum256(p)
	return hex.EncodeToString(sum[:])
}

// Beats reports whether r should replace other. The later updated-at wins,
// a tombstone wins a timestamp tie, and the greater payload hash decides
// the rest. Identical versions do not beat each other.
func (r *Record) Beats(other *Record) bool {
	if r.UpdatedAtMs != other.UpdatedAtMs {
		return r.UpdatedAtMs > other.UpdatedAtMs
	}
	if r.IsDeleted() != other.IsDeleted() {
		return r.IsDeleted()
	}
	return r.PayloadHash > other.PayloadHash
}

// Entity types the backend accepts.
const (
	TypeFoodEntry   = "food_entry"
	TypeDailyGoal   = "daily_goal"
	TypeChatMessage = "chat_message"
)

// KnownType reports whether t names a synchronized entity type.
func KnownType(t string) bool {
	switch t {
	case TypeFoodEntry, TypeDailyGoal, TypeChatMessage:
		return true
	}
	return false
}
