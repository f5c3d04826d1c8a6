package services

import (
	"context"

	"github.com/dmitrijs2005/nutrisync/internal/client/models"
	"github.com/dmitrijs2005/nutrisync/internal/client/repositories/records"
)

// GoalService manages per-day targets. A day without its own goal falls
// back to the defaults in the user settings.
type GoalService interface {
	Set(ctx context.Context, date string, protein float64, calories *float64) (*models.DailyGoal, error)
	Get(ctx context.Context, date string) (*models.DailyGoal, error)
	Effective(ctx context.Context, date string) (*models.DailyGoal, error)
	Clear(ctx context.Context, date string) error
}

type goalService struct {
	repo     records.Repository
	settings SettingsService
	notify   Notifier
}

func NewGoalService(repo records.Repository, settings SettingsService, n Notifier) GoalService {
	return &goalService{repo: repo, settings: settings, notify: orNop(n)}
}

func (s *goalService) Set(ctx context.Context, date string, protein float64, calories *float64) (*models.DailyGoal, error) {
	g, err := s.Get(ctx, date)
	if err != nil {
		return nil, err
	}
	if g == nil {
		g = &models.DailyGoal{Date: date}
	}
	g.ProteinTargetGrams = protein
	g.CalorieTarget = calories

	if err := save(ctx, s.repo, g); err != nil {
		return nil, err
	}
	s.notify.Trigger()
	return g, nil
}

// Get returns the goal stored for date, or nil. When several devices
// created a goal for the same date offline, the most recently updated one
// is used.
func (s *goalService) Get(ctx context.Context, date string) (*models.DailyGoal, error) {
	recs, err := s.repo.ListLive(ctx, models.TypeDailyGoal, records.Filter{Date: date})
	if err != nil {
		return nil, err
	}
	var latest *models.Record
	for _, r := range recs {
		if latest == nil || r.UpdatedAt.After(latest.UpdatedAt) {
			latest = r
		}
	}
	if latest == nil {
		return nil, nil
	}
	return decodeOne[models.DailyGoal](latest)
}

// Effective returns the stored goal or one built from the settings
// defaults. The fallback is not persisted.
func (s *goalService) Effective(ctx context.Context, date string) (*models.DailyGoal, error) {
	g, err := s.Get(ctx, date)
	if err != nil || g != nil {
		return g, err
	}
	st, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &models.DailyGoal{Date: date, ProteinTargetGrams: st.DefaultProteinGoal, CalorieTarget: st.DefaultCalorieGoal}, nil
}

func (s *goalService) Clear(ctx context.Context, date string) error {
	recs, err := s.repo.ListLive(ctx, models.TypeDailyGoal, records.Filter{Date: date})
	if err != nil {
		return err
	}
	for _, r := range recs {
		if _, err := s.repo.SoftDelete(ctx, models.TypeDailyGoal, r.SyncID); err != nil {
			return err
		}
	}
	if len(recs) > 0 {
		s.notify.Trigger()
	}
	return nil
}
