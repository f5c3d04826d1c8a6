package syncer

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/nutrisync/internal/client/client"
	"github.com/dmitrijs2005/nutrisync/internal/client/models"
)

var (
	ErrNotConfigured  = errors.New("sync is not configured")
	ErrNotSignedIn    = errors.New("not signed in")
	ErrOffline        = errors.New("remote backend unreachable")
	ErrSyncInProgress = errors.New("sync in progress")
)

// ErrorKind classifies why a pass aborted.
type ErrorKind string

const (
	KindTransient     ErrorKind = "transient"
	KindAuthorization ErrorKind = "authorization"
	KindRejected      ErrorKind = "rejected"
	KindMalformed     ErrorKind = "malformed"
	KindLocalStorage  ErrorKind = "local_storage"
	KindCancelled     ErrorKind = "cancelled"
)

// Phase names the step of a pass in which an error happened.
type Phase string

const (
	PhaseGate    Phase = "gate"
	PhasePush    Phase = "push"
	PhasePull    Phase = "pull"
	PhaseResolve Phase = "resolve"
	PhaseCommit  Phase = "commit"
)

// RunError is returned when a pass aborts.
type RunError struct {
	Kind  ErrorKind
	Phase Phase
	Type  models.EntityType
	Err   error
}

func (e *RunError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("sync %s failed (%s): %v", e.Phase, e.Kind, e.Err)
	}
	return fmt.Sprintf("sync %s of %s failed (%s): %v", e.Phase, e.Type, e.Kind, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }

// KindOf returns the kind of a RunError anywhere in err's chain, or "".
func KindOf(err error) ErrorKind {
	var re *RunError
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}

func remoteKind(ctx context.Context, err error) ErrorKind {
	switch {
	case ctx.Err() != nil, errors.Is(err, context.Canceled):
		return KindCancelled
	case errors.Is(err, client.ErrUnauthorized):
		return KindAuthorization
	case errors.Is(err, client.ErrRejected):
		return KindRejected
	case errors.Is(err, models.ErrMalformed), errors.Is(err, models.ErrUnknownType):
		return KindMalformed
	}
	return KindTransient
}

func localErr(phase Phase, t models.EntityType, err error) *RunError {
	return &RunError{Kind: KindLocalStorage, Phase: phase, Type: t, Err: err}
}

func cancelled(ctx context.Context, phase Phase, t models.EntityType) *RunError {
	return &RunError{Kind: KindCancelled, Phase: phase, Type: t, Err: ctx.Err()}
}
