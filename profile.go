package sdk

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lingoflow/lingoflow-go/routes"
)

// Level is a CEFR proficiency level.
type Level string

const (
	LevelA1 Level = "a1"
	LevelA2 Level = "a2"
	LevelB1 Level = "b1"
	LevelB2 Level = "b2"
	LevelC1 Level = "c1"
	LevelC2 Level = "c2"
)

// Validate checks that the level is a known CEFR code.
func (l Level) Validate() error {
	switch l {
	case LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2:
		return nil
	}
	return fmt.Errorf("unknown level %q", string(l))
}

// Profile is the authenticated user's learning profile.
type Profile struct {
	ID             uuid.UUID `json:"id"`
	TelegramID     int64     `json:"telegram_id"`
	Username       string    `json:"username,omitempty"`
	NativeLanguage string    `json:"native_language"`
	TargetLanguage string    `json:"target_language"`
	Level          Level     `json:"level"`
	DailyGoal      int       `json:"daily_goal"`
	StreakDays     int       `json:"streak_days"`
	XP             int       `json:"xp"`
	Onboarded      bool      `json:"onboarded"`
	CreatedAt      time.Time `json:"created_at"`
}

// UpdateProfileRequest changes mutable profile fields. Nil fields are left
// untouched by the server.
type UpdateProfileRequest struct {
	TargetLanguage *string `json:"target_language,omitempty"`
	Level          *Level  `json:"level,omitempty"`
	DailyGoal      *int    `json:"daily_goal,omitempty"`
}

// Validate checks the fields that are present.
func (r UpdateProfileRequest) Validate() error {
	if r.TargetLanguage != nil && strings.TrimSpace(*r.TargetLanguage) == "" {
		return fmt.Errorf("target_language cannot be empty")
	}
	if r.Level != nil {
		if err := r.Level.Validate(); err != nil {
			return err
		}
	}
	if r.DailyGoal != nil && *r.DailyGoal <= 0 {
		return fmt.Errorf("daily_goal must be positive")
	}
	return nil
}

// ProfileClient wraps the current-user endpoints.
type ProfileClient struct {
	client *Client
}

// Me returns the authenticated user's profile.
func (p *ProfileClient) Me(ctx context.Context) (Profile, error) {
	if p == nil || p.client == nil {
		return Profile{}, ConfigError{Reason: "profile client not initialized"}
	}
	var profile Profile
	if err := p.client.getJSON(ctx, routes.Me, &profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

// Update applies partial changes to the profile and returns the result.
func (p *ProfileClient) Update(ctx context.Context, req UpdateProfileRequest) (Profile, error) {
	if p == nil || p.client == nil {
		return Profile{}, ConfigError{Reason: "profile client not initialized"}
	}
	if err := req.Validate(); err != nil {
		return Profile{}, ConfigError{Reason: err.Error()}
	}
	var profile Profile
	if err := p.client.doJSON(ctx, http.MethodPatch, routes.Me, req, &profile, &requestState{}); err != nil {
		return Profile{}, err
	}
	return profile, nil
}
