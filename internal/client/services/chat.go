package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/nutrisync/internal/client/models"
	"github.com/dmitrijs2005/nutrisync/internal/client/repositories/records"
	"github.com/dmitrijs2005/nutrisync/internal/timex"
)

// DefaultHistoryLimit bounds History when no limit is given.
const DefaultHistoryLimit = 50

type ChatService interface {
	Append(ctx context.Context, m *models.ChatMessage) error
	History(ctx context.Context, limit int) ([]*models.ChatMessage, error)
	Delete(ctx context.Context, syncID string) error
}

type chatService struct {
	repo   records.Repository
	notify Notifier
	now    func() time.Time
}

func NewChatService(repo records.Repository, n Notifier) ChatService {
	return &chatService{repo: repo, notify: orNop(n), now: time.Now}
}

func (s *chatService) Append(ctx context.Context, m *models.ChatMessage) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = timex.Truncate(s.now())
	}
	if err := save(ctx, s.repo, m); err != nil {
		return err
	}
	s.notify.Trigger()
	return nil
}

// History returns the latest messages, oldest first.
func (s *chatService) History(ctx context.Context, limit int) ([]*models.ChatMessage, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	recs, err := s.repo.ListLive(ctx, models.TypeChatMessage, records.Filter{Limit: limit})
	if err != nil {
		return nil, err
	}
	return decodeAll[models.ChatMessage](recs)
}

func (s *chatService) Delete(ctx context.Context, syncID string) error {
	if _, err := s.repo.SoftDelete(ctx, models.TypeChatMessage, syncID); err != nil {
		return err
	}
	s.notify.Trigger()
	return nil
}
