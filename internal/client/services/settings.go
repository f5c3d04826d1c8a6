package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/nutrisync/internal/client/models"
	"github.com/dmitrijs2005/nutrisync/internal/client/repositories/metadata"
)

const keySettings = "settings.user"

// SettingsService keeps device-local preferences in the metadata table.
// Settings never take part in a sync pass.
type SettingsService interface {
	Get(ctx context.Context) (models.UserSettings, error)
	Save(ctx context.Context, s models.UserSettings) error
}

type settingsService struct {
	repo metadata.Repository
}

func NewSettingsService(db *sql.DB) SettingsService {
	return &settingsService{repo: metadata.NewSQLiteRepository(db)}
}

func (s *settingsService) Get(ctx context.Context) (models.UserSettings, error) {
	v, err := s.repo.Get(ctx, keySettings)
	if err != nil {
		return models.UserSettings{}, err
	}
	if v == nil {
		return models.DefaultSettings(), nil
	}
	st := models.DefaultSettings()
	if err := json.Unmarshal(v, &st); err != nil {
		return models.UserSettings{}, fmt.Errorf("corrupt settings: %w", err)
	}
	return st, nil
}

func (s *settingsService) Save(ctx context.Context, st models.UserSettings) error {
	if st.DefaultProteinGoal <= 0 {
		return fmt.Errorf("%w: default protein goal must be positive", models.ErrInvalidEntity)
	}
	if st.DefaultCalorieGoal != nil && *st.DefaultCalorieGoal <= 0 {
		return fmt.Errorf("%w: default calorie goal must be positive", models.ErrInvalidEntity)
	}
	v, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.repo.Set(ctx, keySettings, v)
}
