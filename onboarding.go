package sdk

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/lingoflow/lingoflow-go/routes"
)

// OnboardingRequest completes first-run profile setup.
type OnboardingRequest struct {
	NativeLanguage string   `json:"native_language"`
	TargetLanguage string   `json:"target_language"`
	Level          Level    `json:"level"`
	Interests      []string `json:"interests,omitempty"`
	DailyGoal      int      `json:"daily_goal,omitempty"`
}

// Validate checks that required fields are set.
func (r OnboardingRequest) Validate() error {
	if strings.TrimSpace(r.NativeLanguage) == "" {
		return fmt.Errorf("native_language is required")
	}
	if strings.TrimSpace(r.TargetLanguage) == "" {
		return fmt.Errorf("target_language is required")
	}
	if r.NativeLanguage == r.TargetLanguage {
		return fmt.Errorf("target_language must differ from native_language")
	}
	if err := r.Level.Validate(); err != nil {
		return err
	}
	if r.DailyGoal < 0 {
		return fmt.Errorf("daily_goal must be non-negative")
	}
	return nil
}

// OnboardingClient wraps first-run setup.
type OnboardingClient struct {
	client *Client
}

// Complete submits the onboarding answers and returns the resulting profile.
func (o *OnboardingClient) Complete(ctx context.Context, req OnboardingRequest) (Profile, error) {
	if o == nil || o.client == nil {
		return Profile{}, ConfigError{Reason: "onboarding client not initialized"}
	}
	if err := req.Validate(); err != nil {
		return Profile{}, ConfigError{Reason: err.Error()}
	}
	var profile Profile
	if err := o.client.doJSON(ctx, http.MethodPost, routes.Onboarding, req, &profile, &requestState{}); err != nil {
		return Profile{}, err
	}
	return profile, nil
}
