package biz

import (
	"context"
	"time"
)

// Movie domain model
type Movie struct {
	ID          string
	ExternalID  int64
	Title       string
	Genre       string
	Actors      string
	ReleaseYear *int
	Rating      float64
	Description string
}

// MovieSummary is a provider search hit, never persisted
type MovieSummary struct {
	ExternalID  int64
	Title       string
	Genre       string
	Actors      []string
	ReleaseYear *int
	Rating      float64
	Description string
}

// MovieDetails is the full provider record for one movie, credits included
type MovieDetails struct {
	ExternalID  int64
	Title       string
	Genres      []string
	ReleaseDate string
	Rating      float64
	Overview    string
	Actors      []string
}

// ListKind names one of the membership containers
type ListKind string

const (
	ListWatchlist ListKind = "watchlist"
	ListWishlist  ListKind = "wishlist"
	ListCurated   ListKind = "curatedlist"
)

// ParseListKind accepts the canonical names plus the "curated" and
// "curated-list" spellings used by the HTTP routes.
func ParseListKind(s string) (ListKind, bool) {
	switch s {
	case "watchlist":
		return ListWatchlist, true
	case "wishlist":
		return ListWishlist, true
	case "curatedlist", "curated", "curated-list":
		return ListCurated, true
	}
	return "", false
}

// ListRef identifies one concrete list. CuratedListID is only set for ListCurated.
type ListRef struct {
	Kind          ListKind
	CuratedListID string
}

// MembershipEntry links a list to a movie
type MembershipEntry struct {
	ID            string
	Kind          ListKind
	CuratedListID string
	MovieID       string
	CreatedAt     time.Time
}

// CuratedList domain model
type CuratedList struct {
	ID          string
	Name        string
	Slug        string
	Description string
}

// Review domain model
type Review struct {
	ID         string
	MovieID    string
	Rating     float64
	ReviewText string
	CreatedAt  time.Time
}

// SortField is a movie column a list projection can be ordered by
type SortField string

const (
	SortByRating      SortField = "rating"
	SortByReleaseYear SortField = "releaseYear"
)

// SortOrder is ASC or DESC
type SortOrder string

const (
	OrderAsc  SortOrder = "ASC"
	OrderDesc SortOrder = "DESC"
)

// ListQuery describes an explicit join: the membership table picked by
// List is joined to movies on movie_id and ordered by Field and Order.
type ListQuery struct {
	List  ListRef
	Field SortField
	Order SortOrder
}

// ReviewExcerpt is the single review attached to a ranked movie
type ReviewExcerpt struct {
	Text      string
	WordCount int
}

// RankedMovie is one entry of a top-rated view
type RankedMovie struct {
	Title  string
	Rating float64
	Review ReviewExcerpt
}

// MovieRepo defines the repository interface for movies
type MovieRepo interface {
	// GetMovieByExternalID returns a NotFound error on miss.
	GetMovieByExternalID(ctx context.Context, externalID int64) (*Movie, error)
	// CreateMovie inserts the row unless one with the same external id exists.
	// It returns the stored row and whether this call created it.
	CreateMovie(ctx context.Context, movie *Movie) (*Movie, bool, error)
	FindByGenreAndActor(ctx context.Context, genre, actor string) ([]*Movie, error)
	TopRated(ctx context.Context, n int) ([]*Movie, error)
}

// ListRepo defines the repository interface for list membership
type ListRepo interface {
	// FindEntry returns a NotFound error when the movie is not in the list.
	FindEntry(ctx context.Context, list ListRef, movieID string) (*MembershipEntry, error)
	// AddEntry returns a Conflict error if the storage unique index rejects the row.
	AddEntry(ctx context.Context, list ListRef, movieID string) (*MembershipEntry, error)
	ListMovies(ctx context.Context, query *ListQuery) ([]*Movie, error)
}

// ReviewRepo defines the repository interface for reviews
type ReviewRepo interface {
	CreateReview(ctx context.Context, review *Review) error
	// FirstReviews returns the earliest review of each given movie, keyed by movie id.
	FirstReviews(ctx context.Context, movieIDs []string) (map[string]*Review, error)
}

// CuratedListRepo defines the repository interface for curated lists
type CuratedListRepo interface {
	CreateCuratedList(ctx context.Context, list *CuratedList) error
	UpdateCuratedList(ctx context.Context, list *CuratedList) error
	// GetCuratedList returns a NotFound error on miss.
	GetCuratedList(ctx context.Context, id string) (*CuratedList, error)
}

// MetadataProvider is the external movie metadata service
type MetadataProvider interface {
	Search(ctx context.Context, query string) ([]*MovieSummary, error)
	FetchDetails(ctx context.Context, externalID int64) (*MovieDetails, error)
}
