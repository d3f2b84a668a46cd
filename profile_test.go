package sdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/lingoflow/lingoflow-go/routes"
)

func TestProfileMe(t *testing.T) {
	userID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != routes.Me || r.Method != http.MethodGet {
			t.Fatalf("unexpected %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Profile{
			ID:             userID,
			NativeLanguage: "ru",
			TargetLanguage: "es",
			Level:          LevelB1,
			Onboarded:      true,
		})
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	profile, err := client.Profile.Me(context.Background())
	if err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if profile.ID != userID || profile.Level != LevelB1 || !profile.Onboarded {
		t.Fatalf("unexpected profile %+v", profile)
	}
}

func TestProfileUpdateValidates(t *testing.T) {
	client := newTestClient(t, "https://api.lingoflow.app")

	badLevel := Level("z9")
	if _, err := client.Profile.Update(context.Background(), UpdateProfileRequest{Level: &badLevel}); err == nil {
		t.Fatal("expected error for unknown level")
	}
	zeroGoal := 0
	if _, err := client.Profile.Update(context.Background(), UpdateProfileRequest{DailyGoal: &zeroGoal}); err == nil {
		t.Fatal("expected error for non-positive goal")
	}
}

func TestProfileUpdatePatchesFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Fatalf("unexpected method %s", r.Method)
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if payload["daily_goal"] != float64(30) {
			t.Fatalf("unexpected payload %v", payload)
		}
		if _, present := payload["target_language"]; present {
			t.Fatal("unset fields must be omitted from the patch")
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Profile{DailyGoal: 30})
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	goal := 30
	profile, err := client.Profile.Update(context.Background(), UpdateProfileRequest{DailyGoal: &goal})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if profile.DailyGoal != 30 {
		t.Fatalf("unexpected profile %+v", profile)
	}
}
