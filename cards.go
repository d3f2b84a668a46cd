package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lingoflow/lingoflow-go/routes"
)

// Deck groups flashcards for one topic or word list.
type Deck struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Language  string    `json:"language"`
	CardCount int       `json:"card_count"`
	DueCount  int       `json:"due_count"`
	CreatedAt time.Time `json:"created_at"`
}

// Card is a single flashcard with its spaced-repetition scheduling state.
type Card struct {
	ID           uuid.UUID `json:"id"`
	DeckID       uuid.UUID `json:"deck_id"`
	Front        string    `json:"front"`
	Back         string    `json:"back"`
	Example      string    `json:"example,omitempty"`
	DueAt        time.Time `json:"due_at"`
	IntervalDays int       `json:"interval_days"`
	EaseFactor   float64   `json:"ease_factor"`
}

// ReviewGrade is the learner's self-assessment for a reviewed card.
type ReviewGrade string

const (
	GradeAgain ReviewGrade = "again"
	GradeHard  ReviewGrade = "hard"
	GradeGood  ReviewGrade = "good"
	GradeEasy  ReviewGrade = "easy"
)

// Validate checks that the grade is one of the four review outcomes.
func (g ReviewGrade) Validate() error {
	switch g {
	case GradeAgain, GradeHard, GradeGood, GradeEasy:
		return nil
	}
	return fmt.Errorf("unknown review grade %q", string(g))
}

// ReviewResult is the updated schedule after a card review.
type ReviewResult struct {
	CardID       uuid.UUID `json:"card_id"`
	NextDueAt    time.Time `json:"next_due_at"`
	IntervalDays int       `json:"interval_days"`
	EaseFactor   float64   `json:"ease_factor"`
	XP           int       `json:"xp"`
}

// CreateCardRequest adds a user-authored card to a deck.
type CreateCardRequest struct {
	DeckID  uuid.UUID `json:"deck_id"`
	Front   string    `json:"front"`
	Back    string    `json:"back"`
	Example string    `json:"example,omitempty"`
}

// Validate checks that required fields are set.
func (r CreateCardRequest) Validate() error {
	if r.DeckID == uuid.Nil {
		return fmt.Errorf("deck_id is required")
	}
	if strings.TrimSpace(r.Front) == "" {
		return fmt.Errorf("front is required")
	}
	if strings.TrimSpace(r.Back) == "" {
		return fmt.Errorf("back is required")
	}
	return nil
}

// DecksClient wraps deck endpoints.
type DecksClient struct {
	client *Client
}

// List returns the user's decks.
func (d *DecksClient) List(ctx context.Context) ([]Deck, error) {
	if d == nil || d.client == nil {
		return nil, ConfigError{Reason: "decks client not initialized"}
	}
	var payload struct {
		Decks []Deck `json:"decks"`
	}
	if err := d.client.getJSON(ctx, routes.Decks, &payload); err != nil {
		return nil, err
	}
	return payload.Decks, nil
}

// Get returns a single deck.
func (d *DecksClient) Get(ctx context.Context, id uuid.UUID) (Deck, error) {
	if d == nil || d.client == nil {
		return Deck{}, ConfigError{Reason: "decks client not initialized"}
	}
	if id == uuid.Nil {
		return Deck{}, ConfigError{Reason: "deck id is required"}
	}
	var deck Deck
	if err := d.client.getJSON(ctx, routes.Deck(id.String()), &deck); err != nil {
		return Deck{}, err
	}
	return deck, nil
}

// CardsClient wraps flashcard endpoints.
type CardsClient struct {
	client *Client
}

// Due returns up to limit cards currently due for review. limit <= 0 leaves
// the batch size to the server.
func (c *CardsClient) Due(ctx context.Context, limit int) ([]Card, error) {
	if c == nil || c.client == nil {
		return nil, ConfigError{Reason: "cards client not initialized"}
	}
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var payload struct {
		Cards []Card `json:"cards"`
	}
	if err := c.client.getJSON(ctx, joinQuery(routes.CardsDue, q), &payload); err != nil {
		return nil, err
	}
	return payload.Cards, nil
}

// Create adds a user-authored card.
func (c *CardsClient) Create(ctx context.Context, req CreateCardRequest) (Card, error) {
	if c == nil || c.client == nil {
		return Card{}, ConfigError{Reason: "cards client not initialized"}
	}
	if err := req.Validate(); err != nil {
		return Card{}, ConfigError{Reason: err.Error()}
	}
	var card Card
	if err := c.client.doJSON(ctx, http.MethodPost, routes.Cards, req, &card, &requestState{}); err != nil {
		return Card{}, err
	}
	return card, nil
}

// Review records a review outcome and returns the card's new schedule.
func (c *CardsClient) Review(ctx context.Context, cardID uuid.UUID, grade ReviewGrade) (ReviewResult, error) {
	if c == nil || c.client == nil {
		return ReviewResult{}, ConfigError{Reason: "cards client not initialized"}
	}
	if cardID == uuid.Nil {
		return ReviewResult{}, ConfigError{Reason: "card id is required"}
	}
	if err := grade.Validate(); err != nil {
		return ReviewResult{}, ConfigError{Reason: err.Error()}
	}
	payload := struct {
		Grade ReviewGrade `json:"grade"`
	}{Grade: grade}
	var result ReviewResult
	if err := c.client.doJSON(ctx, http.MethodPost, routes.CardReview(cardID.String()), payload, &result, &requestState{}); err != nil {
		return ReviewResult{}, err
	}
	return result, nil
}
