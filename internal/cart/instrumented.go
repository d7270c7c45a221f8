package cart

import (
	"context"
	"time"

	pkgerrors "github.com/angelmondragon/cartview/pkg/errors"
	"github.com/angelmondragon/cartview/pkg/logger"
	"github.com/angelmondragon/cartview/pkg/metrics"
)

type dispatchObserver interface {
	ObserveDispatch(kind, outcome string, took time.Duration)
	SetEntries(count int)
}

// InstrumentedStore logs and counts every intent before handing it to the
// wrapped store.
type InstrumentedStore struct {
	next     Store
	observer dispatchObserver
	logg     *logger.Logger
}

// Instrument wraps next with logging and metrics. Either collaborator may be nil.
func Instrument(next Store, observer dispatchObserver, logg *logger.Logger) *InstrumentedStore {
	return &InstrumentedStore{next: next, observer: observer, logg: logg}
}

func (s *InstrumentedStore) Snapshot(ctx context.Context) (State, error) {
	state, err := s.next.Snapshot(ctx)
	if err == nil && s.observer != nil {
		s.observer.SetEntries(state.Len())
	}
	return state, err
}

func (s *InstrumentedStore) Dispatch(ctx context.Context, intent Intent) error {
	if s.logg != nil {
		ctx = s.logg.WithIntent(ctx, intent.Kind.String(), intent.Name)
	}
	start := time.Now()
	err := s.next.Dispatch(ctx, intent)
	outcome := outcomeOf(err)
	if s.observer != nil {
		s.observer.ObserveDispatch(intent.Kind.String(), outcome, time.Since(start))
	}
	if s.logg != nil {
		switch outcome {
		case metrics.OutcomeApplied:
			s.logg.Info(s.logg.WithField(ctx, "quantity", intent.Quantity), "cart.intent.applied")
		case metrics.OutcomeRejected:
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "cart.intent.rejected")
		default:
			s.logg.Error(ctx, "cart.intent.failed", err)
		}
	}
	return err
}

// Ping forwards to the wrapped store when it has an external dependency.
func (s *InstrumentedStore) Ping(ctx context.Context) error {
	if pinger, ok := s.next.(Pinger); ok {
		return pinger.Ping(ctx)
	}
	return nil
}

func outcomeOf(err error) string {
	if err == nil {
		return metrics.OutcomeApplied
	}
	if pkgerrors.IsCode(err, pkgerrors.CodeValidation) || pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		return metrics.OutcomeRejected
	}
	return metrics.OutcomeFailed
}
