package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/nutrisync/internal/common"
)

// Source is the channel a food entry was logged through.
type Source string

const (
	SourceManual   Source = "manual"
	SourceChat     Source = "chat"
	SourcePhoto    Source = "photo"
	SourceQuickAdd Source = "quick_add"
)

// Confidence grades how reliable the protein estimate is.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// FoodEntry is one logged food item.
type FoodEntry struct {
	Envelope `json:"-"`

	Date         string     `json:"date"`
	Source       Source     `json:"source"`
	Name         string     `json:"name"`
	ProteinGrams float64    `json:"protein_grams"`
	Calories     *float64   `json:"calories,omitempty"`
	Confidence   Confidence `json:"confidence,omitempty"`
	Image        []byte     `json:"image,omitempty"`
	ConsumedAt   *time.Time `json:"consumed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (f *FoodEntry) EntityType() EntityType { return TypeFoodEntry }

// EffectiveTime is the consumption time when known, else the creation time.
func (f *FoodEntry) EffectiveTime() time.Time {
	if f.ConsumedAt != nil {
		return *f.ConsumedAt
	}
	return f.CreatedAt
}

func (f *FoodEntry) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: food name is empty", ErrInvalidEntity)
	}
	if f.ProteinGrams < 0 {
		return fmt.Errorf("%w: protein must not be negative", ErrInvalidEntity)
	}
	if f.Calories != nil && *f.Calories < 0 {
		return fmt.Errorf("%w: calories must not be negative", ErrInvalidEntity)
	}
	if err := validateDate(f.Date); err != nil {
		return err
	}
	switch f.Source {
	case SourceManual, SourceChat, SourcePhoto, SourceQuickAdd:
	default:
		return fmt.Errorf("%w: unknown source %q", ErrInvalidEntity, f.Source)
	}
	switch f.Confidence {
	case "", ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
	default:
		return fmt.Errorf("%w: unknown confidence %q", ErrInvalidEntity, f.Confidence)
	}
	return nil
}

// DailyGoal is the target for one calendar day.
type DailyGoal struct {
	Envelope `json:"-"`

	Date               string   `json:"date"`
	ProteinTargetGrams float64  `json:"protein_target_grams"`
	CalorieTarget      *float64 `json:"calorie_target,omitempty"`
}

func (g *DailyGoal) EntityType() EntityType { return TypeDailyGoal }

func (g *DailyGoal) Validate() error {
	if g.ProteinTargetGrams <= 0 {
		return fmt.Errorf("%w: protein target must be positive", ErrInvalidEntity)
	}
	if g.CalorieTarget != nil && *g.CalorieTarget <= 0 {
		return fmt.Errorf("%w: calorie target must be positive", ErrInvalidEntity)
	}
	return validateDate(g.Date)
}

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ChatMessage is one line of the conversational logging history.
type ChatMessage struct {
	Envelope `json:"-"`

	Role            Role      `json:"role"`
	Content         string    `json:"content"`
	FoodEntrySyncID string    `json:"food_entry_sync_id,omitempty"`
	QuickReplies    []string  `json:"quick_replies,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func (m *ChatMessage) EntityType() EntityType { return TypeChatMessage }

func (m *ChatMessage) Validate() error {
	switch m.Role {
	case RoleUser, RoleAssistant, RoleSystem:
	default:
		return fmt.Errorf("%w: unknown role %q", ErrInvalidEntity, m.Role)
	}
	if strings.TrimSpace(m.Content) == "" {
		return fmt.Errorf("%w: message is empty", ErrInvalidEntity)
	}
	return nil
}

// UserSettings are device-local preferences. They are never synchronized.
type UserSettings struct {
	DefaultProteinGoal float64  `json:"default_protein_goal"`
	DefaultCalorieGoal *float64 `json:"default_calorie_goal,omitempty"`
	MPSTrackingEnabled bool     `json:"mps_tracking_enabled"`
	DisplayName        string   `json:"display_name,omitempty"`
}

// DefaultSettings is used until the user saves their own.
func DefaultSettings() UserSettings {
	return UserSettings{DefaultProteinGoal: 150, MPSTrackingEnabled: true}
}

func validateDate(d string) error {
	if _, err := time.Parse(common.DateLayout, d); err != nil {
		return fmt.Errorf("%w: bad date %q", ErrInvalidEntity, d)
	}
	return nil
}
