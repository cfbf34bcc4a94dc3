package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniil-kharaman/movie-web-app/internal/apperr"
	"github.com/daniil-kharaman/movie-web-app/internal/models"
	"github.com/daniil-kharaman/movie-web-app/internal/omdb"
	"github.com/daniil-kharaman/movie-web-app/internal/repository/memory"
	"github.com/daniil-kharaman/movie-web-app/internal/session"
)

// scriptedChat replays canned replies and records what was sent.
type scriptedChat struct {
	reply string
	err   error
	sent  []string
}

func (c *scriptedChat) Send(_ context.Context, message string) (string, error) {
	c.sent = append(c.sent, message)
	if c.err != nil {
		return "", c.err
	}
	return c.reply, nil
}

func writePrompt(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prompt.txt")
	require.NoError(t, os.WriteFile(path, []byte("recommend movies"), 0o600))
	return path
}

func movieFor(userID int, title string) *models.Movie {
	return &models.Movie{Title: title, UserID: userID}
}

func posterDetails(titles ...string) map[string]*omdb.MovieDetails {
	details := make(map[string]*omdb.MovieDetails)
	for _, title := range titles {
		poster := "https://example.com/" + title + ".jpg"
		details[title] = &omdb.MovieDetails{Title: title, Poster: &poster}
	}
	return details
}

func newRecommender(t *testing.T, chat *scriptedChat, details map[string]*omdb.MovieDetails) (*RecommendationService, *memory.Store, *session.Store) {
	t.Helper()
	store := memory.New()
	sessions := session.NewStore(time.Minute)
	t.Cleanup(sessions.Close)
	svc := NewRecommendationService(
		store, store, &fakeMetadata{details: details},
		func(string) session.Chat { return chat },
		sessions, writePrompt(t),
	)
	return svc, store, sessions
}

func TestOpenSession(t *testing.T) {
	ctx := context.Background()
	chat := &scriptedChat{}
	svc, store, sessions := newRecommender(t, chat, nil)

	user, err := store.CreateUser(ctx, "Ada")
	require.NoError(t, err)

	require.NoError(t, svc.OpenSession(ctx, user.ID))
	_, ok := sessions.Get(user.ID)
	assert.True(t, ok)

	t.Run("unknown user", func(t *testing.T) {
		err := svc.OpenSession(ctx, 999)
		assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	})
}

func TestOpenSessionMissingInstructions(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	sessions := session.NewStore(time.Minute)
	t.Cleanup(sessions.Close)
	svc := NewRecommendationService(
		store, store, &fakeMetadata{},
		func(string) session.Chat { return &scriptedChat{} },
		sessions, "/nonexistent/prompt.txt",
	)

	user, err := store.CreateUser(ctx, "Ada")
	require.NoError(t, err)

	err = svc.OpenSession(ctx, user.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.Transport, apperr.KindOf(err))
	_, ok := sessions.Get(user.ID)
	assert.False(t, ok)
}

func TestRecommend(t *testing.T) {
	ctx := context.Background()
	chat := &scriptedChat{reply: `Here are some picks: [{"title": "Up"}, {"title": "Nemo"}] Enjoy!`}
	svc, store, _ := newRecommender(t, chat, posterDetails("Up", "Nemo"))

	user, err := store.CreateUser(ctx, "Ada")
	require.NoError(t, err)
	_, err = store.CreateMovie(ctx, movieFor(user.ID, "Inception"))
	require.NoError(t, err)

	require.NoError(t, svc.OpenSession(ctx, user.ID))

	recs, err := svc.Recommend(ctx, user.ID, "adventurous")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Up", recs[0].Title)
	assert.Equal(t, "https://example.com/Up.jpg", recs[0].Poster)
	assert.Equal(t, "Nemo", recs[1].Title)

	// The message carries the current titles and the mood.
	require.Len(t, chat.sent, 1)
	assert.Contains(t, chat.sent[0], "Inception")
	assert.Contains(t, chat.sent[0], "adventurous")
}

func TestRecommendDropsEntriesWithoutPoster(t *testing.T) {
	ctx := context.Background()
	chat := &scriptedChat{reply: `[{"title": "Up"}, {"title": "Nemo"}]`}
	svc, store, _ := newRecommender(t, chat, posterDetails("Up"))

	user, err := store.CreateUser(ctx, "Ada")
	require.NoError(t, err)

	recs, err := svc.Recommend(ctx, user.ID, "cozy")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Up", recs[0].Title)
}

func TestRecommendOpensSessionLazily(t *testing.T) {
	ctx := context.Background()
	chat := &scriptedChat{reply: `[{"title": "Up"}]`}
	svc, store, sessions := newRecommender(t, chat, posterDetails("Up"))

	user, err := store.CreateUser(ctx, "Ada")
	require.NoError(t, err)

	// No GET happened first; POST still works.
	recs, err := svc.Recommend(ctx, user.ID, "cozy")
	require.NoError(t, err)
	assert.Len(t, recs, 1)
	_, ok := sessions.Get(user.ID)
	assert.True(t, ok)
}

func TestRecommendUnparsableReply(t *testing.T) {
	ctx := context.Background()
	chat := &scriptedChat{reply: "I have nothing for you."}
	svc, store, _ := newRecommender(t, chat, nil)

	user, err := store.CreateUser(ctx, "Ada")
	require.NoError(t, err)

	_, err = svc.Recommend(ctx, user.ID, "gloomy")
	require.Error(t, err)
	assert.Equal(t, apperr.Parse, apperr.KindOf(err))
}

func TestRecommendEvictsBrokenSession(t *testing.T) {
	ctx := context.Background()
	chat := &scriptedChat{err: apperr.Wrap(apperr.Transport, "Recommendation service is unavailable", errors.New("boom"))}
	svc, store, sessions := newRecommender(t, chat, nil)

	user, err := store.CreateUser(ctx, "Ada")
	require.NoError(t, err)
	require.NoError(t, svc.OpenSession(ctx, user.ID))

	_, err = svc.Recommend(ctx, user.ID, "cozy")
	require.Error(t, err)
	assert.Equal(t, apperr.Transport, apperr.KindOf(err))

	_, ok := sessions.Get(user.ID)
	assert.False(t, ok)
}
