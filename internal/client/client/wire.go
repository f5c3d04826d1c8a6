package client

import (
	"github.com/dmitrijs2005/nutrisync/internal/client/models"
	pb "github.com/dmitrijs2005/nutrisync/internal/proto"
	"github.com/dmitrijs2005/nutrisync/internal/timex"
)

// ToWire converts a record to its transport form. The local id and the
// sync status stay on the device.
func ToWire(r *models.Record) *pb.Record {
	w := &pb.Record{
		Type:        string(r.Type),
		SyncId:      r.SyncID,
		UpdatedAtMs: timex.ToMillis(r.UpdatedAt),
		Payload:     append([]byte(nil), r.Payload...),
	}
	if r.DeletedAt != nil {
		w.DeletedAtMs = timex.ToMillis(*r.DeletedAt)
	}
	return w
}

// FromWire is the inverse of ToWire. A zero deleted_at_ms is a live record.
// The result is not validated; callers apply models.Record.Check before
// trusting it.
func FromWire(w *pb.Record) *models.Record {
	r := &models.Record{
		Type:    models.EntityType(w.GetType()),
		Payload: append([]byte(nil), w.GetPayload()...),
	}
	r.SyncID = w.GetSyncId()
	r.UpdatedAt = timex.FromMillis(w.GetUpdatedAtMs())
	if d := w.GetDeletedAtMs(); d != 0 {
		del := timex.FromMillis(d)
		r.DeletedAt = &del
	}
	return r
}
