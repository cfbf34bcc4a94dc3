package genai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniil-kharaman/movie-web-app/internal/apperr"
)

func TestParseRecommendations(t *testing.T) {
	tests := []struct {
		name       string
		reply      string
		wantTitles []string
		wantErr    bool
	}{
		{
			name:       "list embedded in prose",
			reply:      `Here are some picks: [{"title": "Up"}, {"title": "Nemo"}] Enjoy!`,
			wantTitles: []string{"Up", "Nemo"},
		},
		{
			name:       "bare list",
			reply:      `[{"title": "Up"}]`,
			wantTitles: []string{"Up"},
		},
		{
			name:    "no brackets",
			reply:   "Sorry, I have nothing for you today.",
			wantErr: true,
		},
		{
			name:    "closing bracket before opening",
			reply:   "weird ] text [",
			wantErr: true,
		},
		{
			name:    "non-list content between brackets",
			reply:   `look at [this site](https://example.com)`,
			wantErr: true,
		},
		{
			name:    "empty list",
			reply:   "Nothing fits your mood: []",
			wantErr: true,
		},
		{
			name:    "entries without titles",
			reply:   `[{"genre": "drama"}, {"title": "  "}]`,
			wantErr: true,
		},
		{
			name:       "titleless entries are dropped",
			reply:      `[{"title": "Up"}, {"genre": "drama"}]`,
			wantTitles: []string{"Up"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := ParseRecommendations(tt.reply)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperr.Parse, apperr.KindOf(err))
				return
			}
			require.NoError(t, err)
			titles := make([]string, 0, len(entries))
			for _, e := range entries {
				titles = append(titles, e.Title)
			}
			assert.Equal(t, tt.wantTitles, titles)
		})
	}
}
