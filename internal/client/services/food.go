package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/nutrisync/internal/client/models"
	"github.com/dmitrijs2005/nutrisync/internal/client/mps"
	"github.com/dmitrijs2005/nutrisync/internal/client/repositories/records"
	"github.com/dmitrijs2005/nutrisync/internal/common"
	"github.com/dmitrijs2005/nutrisync/internal/timex"
)

// DayTotals aggregates the live food entries of one date.
type DayTotals struct {
	Date     string
	Entries  int
	Protein  float64
	Calories float64
}

type FoodService interface {
	Add(ctx context.Context, e *models.FoodEntry) error
	Update(ctx context.Context, e *models.FoodEntry) error
	Delete(ctx context.Context, syncID string) error
	Get(ctx context.Context, syncID string) (*models.FoodEntry, error)
	List(ctx context.Context, date string) ([]*models.FoodEntry, error)
	Totals(ctx context.Context, date string) (DayTotals, error)
	Hits(ctx context.Context, date string) (mps.DailySummary, error)
}

type foodService struct {
	repo   records.Repository
	notify Notifier
	now    func() time.Time
}

func NewFoodService(repo records.Repository, n Notifier) FoodService {
	return &foodService{repo: repo, notify: orNop(n), now: time.Now}
}

// Add stores a new entry. A missing creation time is set to now and a
// missing date is taken from the effective time.
func (s *foodService) Add(ctx context.Context, e *models.FoodEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = timex.Truncate(s.now())
	}
	if e.Source == "" {
		e.Source = models.SourceManual
	}
	if e.Date == "" {
		e.Date = e.EffectiveTime().Local().Format(common.DateLayout)
	}
	if err := save(ctx, s.repo, e); err != nil {
		return err
	}
	s.notify.Trigger()
	return nil
}

func (s *foodService) Update(ctx context.Context, e *models.FoodEntry) error {
	if e.SyncID == "" {
		return fmt.Errorf("%w: food entry has no sync id", models.ErrInvalidEntity)
	}
	if err := save(ctx, s.repo, e); err != nil {
		return err
	}
	s.notify.Trigger()
	return nil
}

func (s *foodService) Delete(ctx context.Context, syncID string) error {
	if _, err := s.repo.SoftDelete(ctx, models.TypeFoodEntry, syncID); err != nil {
		return fmt.Errorf("delete error: %w", err)
	}
	s.notify.Trigger()
	return nil
}

// Get returns (nil, nil) for unknown or deleted entries.
func (s *foodService) Get(ctx context.Context, syncID string) (*models.FoodEntry, error) {
	return get[models.FoodEntry](ctx, s.repo, models.TypeFoodEntry, syncID)
}

func (s *foodService) List(ctx context.Context, date string) ([]*models.FoodEntry, error) {
	recs, err := s.repo.ListLive(ctx, models.TypeFoodEntry, records.Filter{Date: date})
	if err != nil {
		return nil, err
	}
	return decodeAll[models.FoodEntry](recs)
}

func (s *foodService) Totals(ctx context.Context, date string) (DayTotals, error) {
	entries, err := s.List(ctx, date)
	if err != nil {
		return DayTotals{}, err
	}
	t := DayTotals{Date: date, Entries: len(entries)}
	for _, e := range entries {
		t.Protein += e.ProteinGrams
		if e.Calories != nil {
			t.Calories += *e.Calories
		}
	}
	return t, nil
}

func (s *foodService) Hits(ctx context.Context, date string) (mps.DailySummary, error) {
	entries, err := s.List(ctx, date)
	if err != nil {
		return mps.DailySummary{}, err
	}
	return mps.Summarize(date, entries, mps.DefaultParams()), nil
}
