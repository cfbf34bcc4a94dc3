// Package omdb is the client for the movie-metadata lookup service.
package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/daniil-kharaman/movie-web-app/internal/apperr"
)

// sentinel is the placeholder the API uses for fields it has no data for.
const sentinel = "N/A"

// Client is the metadata API client.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a new metadata API client.
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// lookupResponse is the raw API answer for a title query.
type lookupResponse struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Director   string `json:"Director"`
	Poster     string `json:"Poster"`
	ImdbRating string `json:"imdbRating"`
	Response   string `json:"Response"`
	Error      string `json:"Error"`
}

// MovieDetails is the normalized lookup result. Optional fields are nil
// when the API reported a sentinel or nothing at all.
type MovieDetails struct {
	Title    string
	Year     *int
	Rating   *float64
	Director *string
	Poster   *string
}

// FindByTitle queries the metadata service for a movie title and
// normalizes the answer. It fails with a NotFound-kind error when the
// service reports no match and a Transport-kind error for connectivity
// or protocol failures.
func (c *Client) FindByTitle(ctx context.Context, title string) (*MovieDetails, error) {
	reqURL := fmt.Sprintf("%s/?apikey=%s&t=%s", c.baseURL, c.apiKey, url.QueryEscape(title))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.Transport, "movie data service is unavailable", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.Transport, "movie data service is unavailable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, apperr.Wrap(apperr.Transport, "movie data service is unavailable",
			fmt.Errorf("metadata API returned status %d: %s", resp.StatusCode, string(body)))
	}

	var result lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, apperr.Wrap(apperr.Transport, "movie data service is unavailable",
			fmt.Errorf("failed to decode lookup response: %w", err))
	}

	if result.Response != "True" {
		return nil, apperr.New(apperr.NotFound, fmt.Sprintf("Movie %q was not found", title))
	}

	details := &MovieDetails{
		Title:    result.Title,
		Year:     parseYear(result.Year),
		Rating:   parseRating(result.ImdbRating),
		Director: optional(result.Director),
		Poster:   optional(result.Poster),
	}
	if details.Title == "" || details.Title == sentinel {
		details.Title = title
	}
	return details, nil
}

// optional turns a sentinel or empty API value into an absent field.
func optional(s string) *string {
	if s == "" || s == sentinel {
		return nil
	}
	return &s
}

// parseYear reduces a year value to its leading integer component, so a
// range like "2001-2003" becomes 2001. Sentinel or unparsable values
// become absent.
func parseYear(s string) *int {
	if s == "" || s == sentinel {
		return nil
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return nil
	}
	year, err := strconv.Atoi(s[:end])
	if err != nil {
		return nil
	}
	return &year
}

// parseRating parses the rating string into a float. Sentinel or
// unparsable values become absent.
func parseRating(s string) *float64 {
	if s == "" || s == sentinel {
		return nil
	}
	rating, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &rating
}
