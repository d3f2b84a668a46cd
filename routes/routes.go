// Package routes provides shared API route constants used by both the API
// server and clients to prevent path mismatches.
package routes

// API route paths - these constants are shared between server and clients
// to ensure compile-time safety and prevent endpoint mismatches.
const (
	// AuthTelegram exchanges a signed Telegram WebApp init payload for a
	// session token pair.
	AuthTelegram = "/auth/telegram"

	// AuthRefresh rotates a refresh token into a new session token pair.
	AuthRefresh = "/auth/refresh" // #nosec G101 -- route path, not a credential

	// Me returns the current authenticated user's profile.
	Me = "/me"

	// Onboarding completes first-run profile setup.
	Onboarding = "/onboarding"

	// Decks lists the user's flashcard decks.
	Decks = "/decks"

	// Cards creates user cards.
	Cards = "/cards"

	// CardsDue returns the cards currently due for review.
	CardsDue = "/cards/due"

	// ExercisesNext returns the next generated exercise for the user.
	ExercisesNext = "/exercises/next"

	// ChatMessages sends and lists tutor chat messages.
	ChatMessages = "/chat/messages"
)

// Deck returns the path for a single deck.
func Deck(id string) string {
	return Decks + "/" + id
}

// CardReview returns the path that records a review outcome for a card.
func CardReview(id string) string {
	return Cards + "/" + id + "/review"
}

// ExerciseSubmit returns the path that grades a submitted answer.
func ExerciseSubmit(id string) string {
	return "/exercises/" + id + "/submit"
}
