package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lingoflow/lingoflow-go/routes"
)

func TestDecksList(t *testing.T) {
	deckID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != routes.Decks || r.Method != http.MethodGet {
			t.Fatalf("unexpected %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"decks": []Deck{{ID: deckID, Title: "Food & Drink", Language: "es", CardCount: 42, DueCount: 7}},
		})
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	decks, err := client.Decks.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(decks) != 1 || decks[0].ID != deckID || decks[0].DueCount != 7 {
		t.Fatalf("unexpected decks %+v", decks)
	}
}

func TestCardsDuePassesLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != routes.CardsDue {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("limit"); got != "20" {
			t.Fatalf("unexpected limit %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"cards": []Card{{ID: uuid.New(), Front: "la manzana", Back: "the apple", DueAt: time.Now()}},
		})
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	cards, err := client.Cards.Due(context.Background(), 20)
	if err != nil {
		t.Fatalf("Due failed: %v", err)
	}
	if len(cards) != 1 || cards[0].Front != "la manzana" {
		t.Fatalf("unexpected cards %+v", cards)
	}
}

func TestCardsReviewPostsGrade(t *testing.T) {
	cardID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != routes.CardReview(cardID.String()) || r.Method != http.MethodPost {
			t.Fatalf("unexpected %s %s", r.Method, r.URL.Path)
		}
		var payload struct {
			Grade ReviewGrade `json:"grade"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if payload.Grade != GradeGood {
			t.Fatalf("unexpected grade %q", payload.Grade)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ReviewResult{CardID: cardID, IntervalDays: 3, EaseFactor: 2.5, XP: 5})
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	result, err := client.Cards.Review(context.Background(), cardID, GradeGood)
	if err != nil {
		t.Fatalf("Review failed: %v", err)
	}
	if result.CardID != cardID || result.IntervalDays != 3 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestCardsReviewValidatesInput(t *testing.T) {
	client := newTestClient(t, "https://api.lingoflow.app")

	if _, err := client.Cards.Review(context.Background(), uuid.Nil, GradeGood); err == nil {
		t.Fatal("expected error for nil card id")
	}
	_, err := client.Cards.Review(context.Background(), uuid.New(), ReviewGrade("meh"))
	var cfgErr ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestCardsCreateValidatesRequest(t *testing.T) {
	cases := []struct {
		name string
		req  CreateCardRequest
	}{
		{"MissingDeck", CreateCardRequest{Front: "hola", Back: "hello"}},
		{"MissingFront", CreateCardRequest{DeckID: uuid.New(), Back: "hello"}},
		{"BlankBack", CreateCardRequest{DeckID: uuid.New(), Front: "hola", Back: "   "}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.req.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
	ok := CreateCardRequest{DeckID: uuid.New(), Front: "hola", Back: "hello"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
