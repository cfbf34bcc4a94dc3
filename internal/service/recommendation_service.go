package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/daniil-kharaman/movie-web-app/internal/apperr"
	"github.com/daniil-kharaman/movie-web-app/internal/genai"
	"github.com/daniil-kharaman/movie-web-app/internal/models"
	"github.com/daniil-kharaman/movie-web-app/internal/session"
)

// ChatOpener creates a new conversational session guided by the given
// system instructions.
type ChatOpener func(instructions string) session.Chat

// RecommendationService manages per-user AI recommendation sessions:
// it opens chats, forwards the user's list and mood, parses the reply
// and enriches each recommended title with a poster.
type RecommendationService struct {
	users      UserStore
	movies     MovieStore
	metadata   MetadataFinder
	openChat   ChatOpener
	sessions   *session.Store
	promptPath string
}

// NewRecommendationService creates a new RecommendationService.
func NewRecommendationService(
	users UserStore,
	movies MovieStore,
	metadata MetadataFinder,
	openChat ChatOpener,
	sessions *session.Store,
	promptPath string,
) *RecommendationService {
	return &RecommendationService{
		users:      users,
		movies:     movies,
		metadata:   metadata,
		openChat:   openChat,
		sessions:   sessions,
		promptPath: promptPath,
	}
}

// OpenSession opens a fresh chat session for a user, replacing any
// existing one. The instruction text comes from an external file; a
// missing file is a soft failure surfaced to the caller.
func (s *RecommendationService) OpenSession(ctx context.Context, userID int) error {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return err
	}
	chat, err := s.newChat()
	if err != nil {
		return err
	}
	s.sessions.Put(userID, chat)
	slog.Info("recommendation session opened", "user_id", userID)
	return nil
}

// Recommend sends the user's current titles and mood to the session and
// returns the parsed, poster-enriched recommendations. A session opened
// earlier is reused so the chat keeps its exchange history; when none
// exists one is opened on the spot.
func (s *RecommendationService) Recommend(ctx context.Context, userID int, mood string) ([]models.Recommendation, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	chat, ok := s.sessions.Get(userID)
	if !ok {
		c, err := s.newChat()
		if err != nil {
			return nil, err
		}
		s.sessions.Put(userID, c)
		chat = c
	}

	movies, err := s.movies.ListMovies(ctx, userID)
	if err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(movies))
	for _, m := range movies {
		titles = append(titles, m.Title)
	}

	message := fmt.Sprintf("Movies already in my list: [%s]. My mood: %s",
		strings.Join(titles, ", "), mood)

	reply, err := chat.Send(ctx, message)
	if err != nil {
		// A broken session is not worth keeping.
		s.sessions.Evict(userID)
		return nil, err
	}

	entries, err := genai.ParseRecommendations(reply)
	if err != nil {
		return nil, err
	}

	recommendations := make([]models.Recommendation, 0, len(entries))
	for _, entry := range entries {
		details, err := s.metadata.FindByTitle(ctx, entry.Title)
		if err != nil || details.Poster == nil {
			slog.Warn("dropping recommendation without poster", "title", entry.Title, "error", err)
			continue
		}
		recommendations = append(recommendations, models.Recommendation{
			Title:  entry.Title,
			Poster: *details.Poster,
		})
	}
	return recommendations, nil
}

func (s *RecommendationService) newChat() (session.Chat, error) {
	instructions, err := os.ReadFile(s.promptPath)
	if err != nil {
		return nil, apperr.Wrap(apperr.Transport, "Recommendations are unavailable right now",
			fmt.Errorf("read instructions: %w", err))
	}
	return s.openChat(string(instructions)), nil
}
