package sdk

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/lingoflow/lingoflow-go/routes"
)

// ExerciseType identifies the exercise format.
type ExerciseType string

const (
	ExerciseMultipleChoice ExerciseType = "multiple_choice"
	ExerciseFillBlank      ExerciseType = "fill_blank"
	ExerciseTranslation    ExerciseType = "translation"
)

// Exercise is one generated practice task.
type Exercise struct {
	ID      uuid.UUID    `json:"id"`
	Type    ExerciseType `json:"type"`
	Prompt  string       `json:"prompt"`
	Choices []string     `json:"choices,omitempty"`
	CardID  *uuid.UUID   `json:"card_id,omitempty"`
}

// ExerciseResult is the server's verdict for a submitted answer.
type ExerciseResult struct {
	ExerciseID    uuid.UUID `json:"exercise_id"`
	Correct       bool      `json:"correct"`
	CorrectAnswer string    `json:"correct_answer"`
	Explanation   string    `json:"explanation,omitempty"`
	XP            int       `json:"xp"`
}

// ExercisesClient wraps practice-exercise endpoints.
type ExercisesClient struct {
	client *Client
}

// Next returns the next exercise for the user's current study queue.
func (e *ExercisesClient) Next(ctx context.Context) (Exercise, error) {
	if e == nil || e.client == nil {
		return Exercise{}, ConfigError{Reason: "exercises client not initialized"}
	}
	var exercise Exercise
	if err := e.client.getJSON(ctx, routes.ExercisesNext, &exercise); err != nil {
		return Exercise{}, err
	}
	return exercise, nil
}

// Submit grades an answer for the given exercise.
func (e *ExercisesClient) Submit(ctx context.Context, exerciseID uuid.UUID, answer string) (ExerciseResult, error) {
	if e == nil || e.client == nil {
		return ExerciseResult{}, ConfigError{Reason: "exercises client not initialized"}
	}
	if exerciseID == uuid.Nil {
		return ExerciseResult{}, ConfigError{Reason: "exercise id is required"}
	}
	if strings.TrimSpace(answer) == "" {
		return ExerciseResult{}, ConfigError{Reason: fmt.Sprintf("answer is required for exercise %s", exerciseID)}
	}
	payload := struct {
		Answer string `json:"answer"`
	}{Answer: answer}
	var result ExerciseResult
	if err := e.client.doJSON(ctx, http.MethodPost, routes.ExerciseSubmit(exerciseID.String()), payload, &result, &requestState{}); err != nil {
		return ExerciseResult{}, err
	}
	return result, nil
}
