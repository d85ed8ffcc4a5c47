package biz

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-kratos/kratos/v2/log"
)

// DefaultTopN is the size of the top-rated view
const DefaultTopN = 5

// QueryUseCase serves the read-side views
type QueryUseCase struct {
	provider   MetadataProvider
	movieRepo  MovieRepo
	listRepo   ListRepo
	reviewRepo ReviewRepo
	log        *log.Helper
}

// NewQueryUseCase creates a new QueryUseCase instance
func NewQueryUseCase(provider MetadataProvider, movieRepo MovieRepo, listRepo ListRepo, reviewRepo ReviewRepo, logger log.Logger) *QueryUseCase {
	return &QueryUseCase{
		provider:   provider,
		movieRepo:  movieRepo,
		listRepo:   listRepo,
		reviewRepo: reviewRepo,
		log:        log.NewHelper(logger),
	}
}

// Search queries the provider directly. Nothing is persisted.
func (uc *QueryUseCase) Search(ctx context.Context, query string) ([]*MovieSummary, error) {
	return uc.provider.Search(ctx, query)
}

// FindByGenreAndActor matches both fields case-insensitively as substrings.
// An empty result is not an error.
func (uc *QueryUseCase) FindByGenreAndActor(ctx context.Context, genre, actor string) ([]*Movie, error) {
	movies, err := uc.movieRepo.FindByGenreAndActor(ctx, strings.TrimSpace(genre), strings.TrimSpace(actor))
	if err != nil {
		return nil, fmt.Errorf("failed to search movies: %w", err)
	}
	return movies, nil
}

// SortList returns the movies of one list kind ordered by field. Arguments
// are validated before any storage access.
func (uc *QueryUseCase) SortList(ctx context.Context, list ListRef, field SortField, order SortOrder) ([]*Movie, error) {
	switch list.Kind {
	case ListWatchlist, ListWishlist, ListCurated:
	default:
		return nil, Validation("list", fmt.Sprintf("unknown list kind %q", list.Kind))
	}
	switch field {
	case SortByRating, SortByReleaseYear:
	default:
		return nil, Validation("sortBy", fmt.Sprintf("unknown sort field %q", field))
	}
	switch SortOrder(strings.ToUpper(string(order))) {
	case OrderAsc, "":
		order = OrderAsc
	case OrderDesc:
		order = OrderDesc
	default:
		return nil, Validation("order", fmt.Sprintf("unknown sort order %q", order))
	}

	movies, err := uc.listRepo.ListMovies(ctx, &ListQuery{List: list, Field: field, Order: order})
	if err != nil {
		return nil, fmt.Errorf("failed to sort %s: %w", list.Kind, err)
	}
	return movies, nil
}

// TopRated returns the n best rated movies, each with its first review or an
// empty excerpt.
func (uc *QueryUseCase) TopRated(ctx context.Context, n int) ([]*RankedMovie, error) {
	if n <= 0 {
		n = DefaultTopN
	}

	movies, err := uc.movieRepo.TopRated(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("failed to rank movies: %w", err)
	}
	if len(movies) == 0 {
		return []*RankedMovie{}, nil
	}

	ids := make([]string, 0, len(movies))
	for _, m := range movies {
		ids = append(ids, m.ID)
	}
	reviews, err := uc.reviewRepo.FirstReviews(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}

	ranked := make([]*RankedMovie, 0, len(movies))
	for _, m := range movies {
		item := &RankedMovie{Title: m.Title, Rating: m.Rating}
		if r, ok := reviews[m.ID]; ok {
			item.Review = ReviewExcerpt{Text: r.ReviewText, WordCount: WordCount(r.ReviewText)}
		}
		ranked = append(ranked, item)
	}
	return ranked, nil
}

// WordCount counts whitespace separated tokens
func WordCount(text string) int {
	return len(strings.Fields(text))
}
