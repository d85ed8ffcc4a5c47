package service

import (
	"encoding/json"
	"fmt"
)

// Request and reply shapes of the HTTP API

type SearchMoviesRequest struct {
	Query string `json:"query"`
}

type SearchItem struct {
	Title       string  `json:"title"`
	TmdbID      int64   `json:"tmdbId"`
	Genre       string  `json:"genre"`
	Actors      string  `json:"actors"`
	ReleaseYear *int    `json:"releaseYear"`
	Rating      float64 `json:"rating"`
	Description string  `json:"description"`
}

type SearchMoviesReply struct {
	Movies []*SearchItem `json:"movies"`
}

type MovieItem struct {
	ID          string  `json:"id"`
	TmdbID      int64   `json:"tmdbId"`
	Title       string  `json:"title"`
	Genre       string  `json:"genre"`
	Actors      string  `json:"actors"`
	ReleaseYear *int    `json:"releaseYear"`
	Rating      float64 `json:"rating"`
	Description string  `json:"description"`
}

type MoviesReply struct {
	Movies []*MovieItem `json:"movies"`
}

type AddToListRequest struct {
	MovieID       int64  `json:"movieId"`
	CuratedListID ListID `json:"curatedListId,omitempty"`
}

// ListID is a curated list id that clients may send as a JSON string or number.
type ListID string

func (id *ListID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = ListID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("curatedListId must be a string or a number: %w", err)
	}
	*id = ListID(n.String())
	return nil
}

type AddToListReply struct {
	Message string `json:"message"`
	EntryID string `json:"entryId"`
	MovieID string `json:"movieId"`
}

type AddReviewRequest struct {
	MovieID    string   `json:"movieId"`
	Rating     *float64 `json:"rating"`
	ReviewText string   `json:"reviewText"`
}

type AddReviewReply struct {
	Message  string `json:"message"`
	ReviewID string `json:"reviewId"`
}

type GenreActorRequest struct {
	Genre string `json:"genre"`
	Actor string `json:"actor"`
}

type SortMoviesRequest struct {
	List          string `json:"list"`
	SortBy        string `json:"sortBy"`
	Order         string `json:"order"`
	CuratedListID string `json:"curatedListId"`
}

type TopRatedRequest struct{}

type ReviewExcerpt struct {
	Text      string `json:"text"`
	WordCount int    `json:"wordCount"`
}

type RankedItem struct {
	Title  string        `json:"title"`
	Rating float64       `json:"rating"`
	Review ReviewExcerpt `json:"review"`
}

type CreateCuratedListRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type UpdateCuratedListRequest struct {
	CuratedListID string `json:"curatedListId"`
	Name          string `json:"name"`
	Description   string `json:"description"`
}

type CuratedListItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type CuratedListReply struct {
	Message     string           `json:"message"`
	CuratedList *CuratedListItem `json:"curatedList"`
}

type HealthCheckRequest struct{}

type HealthCheckReply struct {
	Status string `json:"status"`
}
