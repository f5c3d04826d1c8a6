package syncer

import (
	"time"
)

// State is the coordinator's run state.
type State string

const (
	StateIdle    State = "idle"
	StateSyncing State = "syncing"
	StateError   State = "error"
)

// Snapshot is the observable status of the sync engine.
type Snapshot struct {
	Configured    bool
	Identity      string
	State         State
	InProgress    bool
	LastSyncAt    time.Time
	LastError     string
	LastErrorKind ErrorKind
}

// NotConfigured is the fixed snapshot reported when remote sync is off.
func NotConfigured() Snapshot {
	return Snapshot{Configured: false, State: StateIdle}
}

// broadcaster fans snapshots out to subscribers. Each subscriber has a
// one-slot buffer; a slow reader loses intermediate snapshots but the slot
// always holds the latest one. Callers hold the coordinator lock.
type broadcaster struct {
	next int
	subs map[int]chan Snapshot
}

func (b *broadcaster) add(initial Snapshot) (int, chan Snapshot) {
	if b.subs == nil {
		b.subs = make(map[int]chan Snapshot)
	}
	ch := make(chan Snapshot, 1)
	ch <- initial
	id := b.next
	b.next++
	b.subs[id] = ch
	return id, ch
}

func (b *broadcaster) remove(id int) {
	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
}

func (b *broadcaster) publish(s Snapshot) {
	for _, ch := range b.subs {
		select {
		case ch <- s:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- s:
		default:
		}
	}
}
