package models

// UserAccount represents a registered user who owns a movie list.
type UserAccount struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Movie represents a movie stored in a user's list. Optional fields are
// nil when the metadata service reported nothing usable for them.
type Movie struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Director *string  `json:"director"`
	Year     *int     `json:"year"`
	Rating   *float64 `json:"rating"`
	Poster   *string  `json:"poster"`
	UserID   int      `json:"user_id"`
}

// CreateUserRequest is the request body for creating or renaming a user.
type CreateUserRequest struct {
	Name string `json:"name"`
}

// AddMovieRequest is the request body for adding a movie by title. The
// remaining fields are filled in by the metadata lookup.
type AddMovieRequest struct {
	Title string `json:"title"`
}

// UpdateMovieRequest is the request body for a full-overwrite update.
// All fields arrive as raw strings, as submitted, and pass through
// validation before anything is persisted.
type UpdateMovieRequest struct {
	Title    string `json:"title"`
	Director string `json:"director"`
	Year     string `json:"year"`
	Rating   string `json:"rating"`
	Poster   string `json:"poster"`
}

// MoodRequest is the request body for requesting recommendations.
type MoodRequest struct {
	Mood string `json:"mood"`
}

// Recommendation is a single AI-recommended movie enriched with a poster.
type Recommendation struct {
	Title  string `json:"title"`
	Poster string `json:"poster"`
}

// RecommendationResponse wraps the recommendation list. Message is set
// when the list is empty because the reply could not be parsed.
type RecommendationResponse struct {
	UserID          int              `json:"user_id"`
	Recommendations []Recommendation `json:"recommendations"`
	Message         string           `json:"message,omitempty"`
}
