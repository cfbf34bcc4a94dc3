package omdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniil-kharaman/movie-web-app/internal/apperr"
)

func TestFindByTitle(t *testing.T) {
	tests := []struct {
		name     string
		response string
		status   int
		wantKind apperr.Kind
		check    func(t *testing.T, d *MovieDetails)
	}{
		{
			name: "full metadata",
			response: `{"Title":"Inception","Year":"2010","Director":"Christopher Nolan",
				"Poster":"https://example.com/inception.jpg","imdbRating":"8.8","Response":"True"}`,
			status: http.StatusOK,
			check: func(t *testing.T, d *MovieDetails) {
				assert.Equal(t, "Inception", d.Title)
				require.NotNil(t, d.Year)
				assert.Equal(t, 2010, *d.Year)
				require.NotNil(t, d.Rating)
				assert.Equal(t, 8.8, *d.Rating)
				require.NotNil(t, d.Director)
				assert.Equal(t, "Christopher Nolan", *d.Director)
				require.NotNil(t, d.Poster)
			},
		},
		{
			name: "year range takes first value",
			response: `{"Title":"Some Series","Year":"2001–2003","Director":"N/A",
				"Poster":"N/A","imdbRating":"N/A","Response":"True"}`,
			status: http.StatusOK,
			check: func(t *testing.T, d *MovieDetails) {
				require.NotNil(t, d.Year)
				assert.Equal(t, 2001, *d.Year)
			},
		},
		{
			name: "sentinel values become absent",
			response: `{"Title":"Obscure","Year":"N/A","Director":"N/A",
				"Poster":"N/A","imdbRating":"N/A","Response":"True"}`,
			status: http.StatusOK,
			check: func(t *testing.T, d *MovieDetails) {
				assert.Nil(t, d.Year)
				assert.Nil(t, d.Rating)
				assert.Nil(t, d.Director)
				assert.Nil(t, d.Poster)
			},
		},
		{
			name: "empty values become absent",
			response: `{"Title":"Obscure","Year":"","Director":"",
				"Poster":"","imdbRating":"","Response":"True"}`,
			status: http.StatusOK,
			check: func(t *testing.T, d *MovieDetails) {
				assert.Nil(t, d.Year)
				assert.Nil(t, d.Rating)
				assert.Nil(t, d.Director)
				assert.Nil(t, d.Poster)
			},
		},
		{
			name:     "not found",
			response: `{"Response":"False","Error":"Movie not found!"}`,
			status:   http.StatusOK,
			wantKind: apperr.NotFound,
		},
		{
			name:     "server error is transport",
			response: `oops`,
			status:   http.StatusInternalServerError,
			wantKind: apperr.Transport,
		},
		{
			name:     "malformed body is transport",
			response: `{not json`,
			status:   http.StatusOK,
			wantKind: apperr.Transport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "testkey", r.URL.Query().Get("apikey"))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.response))
			}))
			defer srv.Close()

			client := NewClient("testkey", srv.URL)
			details, err := client.FindByTitle(context.Background(), "whatever")

			if tt.wantKind != apperr.Unknown {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))
				return
			}
			require.NoError(t, err)
			tt.check(t, details)
		})
	}
}

func TestFindByTitleConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	client := NewClient("testkey", srv.URL)
	_, err := client.FindByTitle(context.Background(), "Inception")
	require.Error(t, err)
	assert.Equal(t, apperr.Transport, apperr.KindOf(err))
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		raw  string
		want *int
	}{
		{raw: "2010", want: intPtr(2010)},
		{raw: "2001–2003", want: intPtr(2001)},
		{raw: "2001-2003", want: intPtr(2001)},
		{raw: "N/A", want: nil},
		{raw: "", want: nil},
		{raw: "unknown", want: nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseYear(tt.raw), tt.raw)
	}
}

func intPtr(v int) *int { return &v }
