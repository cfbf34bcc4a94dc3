package genai

import (
	"encoding/json"
	"strings"

	"github.com/daniil-kharaman/movie-web-app/internal/apperr"
)

// RecommendedMovie is one entry parsed out of a chat reply.
type RecommendedMovie struct {
	Title string `json:"title"`
}

// ParseRecommendations extracts a recommendation list from a free-text
// chat reply. It takes the substring between the first '[' and the
// first ']' and decodes it as a JSON list of entries. No brackets, a
// ']' before the '[', non-list content, or an empty or title-less list
// all yield a Parse-kind error, never a panic.
func ParseRecommendations(reply string) ([]RecommendedMovie, error) {
	start := strings.Index(reply, "[")
	end := strings.Index(reply, "]")
	if start == -1 || end == -1 || end < start {
		return nil, apperr.New(apperr.Parse, "No recommendations found")
	}

	var entries []RecommendedMovie
	if err := json.Unmarshal([]byte(reply[start:end+1]), &entries); err != nil {
		return nil, apperr.Wrap(apperr.Parse, "No recommendations found", err)
	}

	recommendations := make([]RecommendedMovie, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.Title) == "" {
			continue
		}
		recommendations = append(recommendations, e)
	}
	if len(recommendations) == 0 {
		return nil, apperr.New(apperr.Parse, "No recommendations found")
	}
	return recommendations, nil
}
