// Package conflict decides which of two versions of the same record
// survives a sync. Selection is whole-record last-writer-wins; fields are
// never merged.
package conflict

import "github.com/dmitrijs2005/nutrisync/internal/client/models"

// Decision is the outcome of comparing a local and a remote version.
type Decision int

const (
	// KeepLocal means the local version wins and must reach the remote.
	KeepLocal Decision = iota
	// TakeRemote means the remote version replaces the local one.
	TakeRemote
	// Identical means both sides already hold the same version.
	Identical
)

func (d Decision) String() string {
	switch d {
	case KeepLocal:
		return "keep_local"
	case TakeRemote:
		return "take_remote"
	case Identical:
		return "identical"
	}
	return "unknown"
}

// Resolve compares two versions of one sync identity.
//
// The later updated-at wins. On equal timestamps a tombstone beats a live
// version. When both timestamp and deleted state are equal, equal payloads
// are Identical; otherwise the lexically greater payload hash wins, which
// gives every device the same answer for the same pair.
func Resolve(local, remote *models.Record) Decision {
	switch {
	case local.UpdatedAt.After(remote.UpdatedAt):
		return KeepLocal
	case remote.UpdatedAt.After(local.UpdatedAt):
		return TakeRemote
	}

	ld, rd := local.IsDeleted(), remote.IsDeleted()
	if ld != rd {
		if ld {
			return KeepLocal
		}
		return TakeRemote
	}

	lh, rh := local.Hash(), remote.Hash()
	switch {
	case lh == rh:
		return Identical
	case lh > rh:
		return KeepLocal
	default:
		return TakeRemote
	}
}

// Winner returns whichever of a and b Resolve selects, a on Identical.
func Winner(a, b *models.Record) *models.Record {
	if Resolve(a, b) == TakeRemote {
		return b
	}
	return a
}
