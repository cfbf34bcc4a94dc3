// Package validate checks and normalizes raw user-submitted field values.
// Every validator returns either a normalized value (empty or
// whitespace-only optional input becomes absent) or a Validation-kind
// error carrying a user-facing message.
package validate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/daniil-kharaman/movie-web-app/internal/apperr"
)

const (
	MaxNameLen     = 30
	MaxTitleLen    = 100
	MaxDirectorLen = 100
	MinYear        = 1890
	MinRating      = 0
	MaxRating      = 10
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	_ = val.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = val.RegisterValidation("nowyear", func(fl validator.FieldLevel) bool {
		return int(fl.Field().Int()) <= time.Now().Year()
	})
	return val
}

// firstTag returns the tag of the first failed rule, or "" when err is
// not a validator error.
func firstTag(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Tag()
	}
	return ""
}

// UserName validates a user name: non-blank, at most 30 characters.
func UserName(raw string) (string, error) {
	if err := v.Var(raw, fmt.Sprintf("required,notblank,max=%d", MaxNameLen)); err != nil {
		switch firstTag(err) {
		case "max":
			return "", apperr.New(apperr.Validation, fmt.Sprintf("Name must be at most %d characters", MaxNameLen))
		default:
			return "", apperr.New(apperr.Validation, "Name must not be empty")
		}
	}
	return raw, nil
}

// MovieTitle validates a movie title: non-blank, at most 100 characters.
func MovieTitle(raw string) (string, error) {
	if err := v.Var(raw, fmt.Sprintf("required,notblank,max=%d", MaxTitleLen)); err != nil {
		switch firstTag(err) {
		case "max":
			return "", apperr.New(apperr.Validation, fmt.Sprintf("Title must be at most %d characters", MaxTitleLen))
		default:
			return "", apperr.New(apperr.Validation, "Title must not be empty")
		}
	}
	return raw, nil
}

// Director validates an optional director name. Empty input is absent;
// non-empty all-whitespace input is rejected.
func Director(raw string) (*string, error) {
	if raw == "" {
		return nil, nil
	}
	if err := v.Var(raw, fmt.Sprintf("notblank,max=%d", MaxDirectorLen)); err != nil {
		switch firstTag(err) {
		case "max":
			return nil, apperr.New(apperr.Validation, fmt.Sprintf("Director must be at most %d characters", MaxDirectorLen))
		default:
			return nil, apperr.New(apperr.Validation, "Director must not be blank")
		}
	}
	return &raw, nil
}

// Poster validates an optional poster URL. Empty input is absent;
// non-empty all-whitespace input is rejected.
func Poster(raw string) (*string, error) {
	if raw == "" {
		return nil, nil
	}
	if err := v.Var(raw, "notblank"); err != nil {
		return nil, apperr.New(apperr.Validation, "Poster must not be blank")
	}
	return &raw, nil
}

// Year validates an optional release year. Blank input is absent;
// anything else must parse as an integer in [1890, current year].
func Year(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperr.New(apperr.Validation, "Year must be a whole number")
	}
	if err := v.Var(year, fmt.Sprintf("min=%d,nowyear", MinYear)); err != nil {
		return nil, apperr.New(apperr.Validation,
			fmt.Sprintf("Year must be between %d and %d", MinYear, time.Now().Year()))
	}
	return &year, nil
}

// Rating validates an optional rating. Blank input is absent; anything
// else must parse as a number in [0, 10].
func Rating(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	rating, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperr.New(apperr.Validation, "Rating must be a number")
	}
	if err := v.Var(rating, fmt.Sprintf("min=%d,max=%d", MinRating, MaxRating)); err != nil {
		return nil, apperr.New(apperr.Validation,
			fmt.Sprintf("Rating must be between %d and %d", MinRating, MaxRating))
	}
	return &rating, nil
}

// MovieInput is a fully validated, normalized set of movie fields.
type MovieInput struct {
	Title    string
	Director *string
	Year     *int
	Rating   *float64
	Poster   *string
}

// Movie runs every field validator and returns either the normalized
// input or the first rejection. It never partially applies.
func Movie(title, director, year, rating, poster string) (*MovieInput, error) {
	t, err := MovieTitle(title)
	if err != nil {
		return nil, err
	}
	d, err := Director(director)
	if err != nil {
		return nil, err
	}
	y, err := Year(year)
	if err != nil {
		return nil, err
	}
	r, err := Rating(rating)
	if err != nil {
		return nil, err
	}
	p, err := Poster(poster)
	if err != nil {
		return nil, err
	}
	return &MovieInput{Title: t, Director: d, Year: y, Rating: r, Poster: p}, nil
}
