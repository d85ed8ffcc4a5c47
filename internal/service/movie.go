package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"moviecurator/internal/biz"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/google/wire"
)

// ProviderSet is service providers.
var ProviderSet = wire.NewSet(NewMovieService, NewCuratedListService)

// MovieService implements the movie API
type MovieService struct {
	listUC   *biz.ListUseCase
	reviewUC *biz.ReviewUseCase
	queryUC  *biz.QueryUseCase
}

// NewMovieService creates a new MovieService
func NewMovieService(listUC *biz.ListUseCase, reviewUC *biz.ReviewUseCase, queryUC *biz.QueryUseCase) *MovieService {
	return &MovieService{
		listUC:   listUC,
		reviewUC: reviewUC,
		queryUC:  queryUC,
	}
}

func badRequest(msg string) error {
	return errors.BadRequest("BAD_REQUEST", msg)
}

// SearchMovies proxies a provider search
func (s *MovieService) SearchMovies(ctx context.Context, req *SearchMoviesRequest) (*SearchMoviesReply, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, badRequest("Query parameter is required")
	}

	hits, err := s.queryUC.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	reply := &SearchMoviesReply{Movies: make([]*SearchItem, 0, len(hits))}
	for _, h := range hits {
		reply.Movies = append(reply.Movies, &SearchItem{
			Title:       h.Title,
			TmdbID:      h.ExternalID,
			Genre:       h.Genre,
			Actors:      strings.Join(h.Actors, ", "),
			ReleaseYear: h.ReleaseYear,
			Rating:      h.Rating,
			Description: h.Description,
		})
	}
	return reply, nil
}

// AddToWatchlist implements POST /api/movies/watchlist
func (s *MovieService) AddToWatchlist(ctx context.Context, req *AddToListRequest) (*AddToListReply, error) {
	return s.addToList(ctx, biz.ListRef{Kind: biz.ListWatchlist}, req.MovieID, "Movie added to watchlist successfully.")
}

// AddToWishlist implements POST /api/movies/wishlist
func (s *MovieService) AddToWishlist(ctx context.Context, req *AddToListRequest) (*AddToListReply, error) {
	return s.addToList(ctx, biz.ListRef{Kind: biz.ListWishlist}, req.MovieID, "Movie added to wishlist successfully.")
}

// AddToCuratedList implements POST /api/movies/curated-list
func (s *MovieService) AddToCuratedList(ctx context.Context, req *AddToListRequest) (*AddToListReply, error) {
	listID := strings.TrimSpace(string(req.CuratedListID))
	if req.MovieID == 0 || listID == "" {
		return nil, badRequest("Both movieId and curatedListId are required.")
	}
	ref := biz.ListRef{Kind: biz.ListCurated, CuratedListID: listID}
	return s.addToList(ctx, ref, req.MovieID, "Movie added to curated list successfully.")
}

func (s *MovieService) addToList(ctx context.Context, ref biz.ListRef, movieID int64, msg string) (*AddToListReply, error) {
	if movieID == 0 {
		return nil, badRequest("Movie ID is required.")
	}

	entry, err := s.listUC.AddToList(ctx, ref, movieID)
	if err != nil {
		return nil, err
	}
	return &AddToListReply{Message: msg, EntryID: entry.ID, MovieID: entry.MovieID}, nil
}

// AddReview implements POST /api/movies/{movieId}/reviews
func (s *MovieService) AddReview(ctx context.Context, req *AddReviewRequest) (*AddReviewReply, error) {
	const invalid = "Valid movieId, rating (0-10), and reviewText (max 500 characters) are required."

	movieID, err := strconv.ParseInt(req.MovieID, 10, 64)
	if err != nil || movieID <= 0 {
		return nil, badRequest(invalid)
	}
	if req.Rating == nil || *req.Rating < biz.MinReviewRating || *req.Rating > biz.MaxReviewRating {
		return nil, badRequest(invalid)
	}
	if strings.TrimSpace(req.ReviewText) == "" || len([]rune(req.ReviewText)) > biz.MaxReviewTextLength {
		return nil, badRequest(invalid)
	}

	review, err := s.reviewUC.AddReview(ctx, movieID, *req.Rating, req.ReviewText)
	if err != nil {
		return nil, err
	}
	return &AddReviewReply{Message: "Review added successfully.", ReviewID: review.ID}, nil
}

// SearchByGenreAndActor implements GET /api/movies/searchByGenreAndActor
func (s *MovieService) SearchByGenreAndActor(ctx context.Context, req *GenreActorRequest) (*MoviesReply, error) {
	genre, actor := strings.TrimSpace(req.Genre), strings.TrimSpace(req.Actor)
	if genre == "" || actor == "" {
		return nil, badRequest("Genre and actor are required.")
	}

	movies, err := s.queryUC.FindByGenreAndActor(ctx, genre, actor)
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return nil, errors.NotFound("NOT_FOUND", "No movies found.")
	}
	return &MoviesReply{Movies: moviesToItems(movies)}, nil
}

// SortMovies implements GET /api/movies/sort
func (s *MovieService) SortMovies(ctx context.Context, req *SortMoviesRequest) (*MoviesReply, error) {
	if req.List == "" || (req.SortBy != string(biz.SortByRating) && req.SortBy != string(biz.SortByReleaseYear)) {
		return nil, badRequest(`Query params "list" and valid "sortBy" (rating, releaseYear) are required.`)
	}

	// Unknown list names are passed through so the use case reports them.
	kind, ok := biz.ParseListKind(req.List)
	if !ok {
		kind = biz.ListKind(req.List)
	}
	order := biz.SortOrder(req.Order)
	if order == "" {
		order = biz.OrderAsc
	}

	movies, err := s.queryUC.SortList(ctx, biz.ListRef{Kind: kind, CuratedListID: req.CuratedListID}, biz.SortField(req.SortBy), order)
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return nil, errors.NotFound("NOT_FOUND", fmt.Sprintf("No movie found in %s", req.List))
	}
	return &MoviesReply{Movies: moviesToItems(movies)}, nil
}

// TopRated implements GET /api/movies/top5
func (s *MovieService) TopRated(ctx context.Context, _ *TopRatedRequest) ([]*RankedItem, error) {
	ranked, err := s.queryUC.TopRated(ctx, biz.DefaultTopN)
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return nil, errors.NotFound("NOT_FOUND", "No movies found.")
	}

	items := make([]*RankedItem, 0, len(ranked))
	for _, r := range ranked {
		items = append(items, &RankedItem{
			Title:  r.Title,
			Rating: r.Rating,
			Review: ReviewExcerpt{Text: r.Review.Text, WordCount: r.Review.WordCount},
		})
	}
	return items, nil
}

// HealthCheck implements health check
func (s *MovieService) HealthCheck(ctx context.Context, _ *HealthCheckRequest) (*HealthCheckReply, error) {
	return &HealthCheckReply{
		Status: "ok",
	}, nil
}

func moviesToItems(movies []*biz.Movie) []*MovieItem {
	items := make([]*MovieItem, 0, len(movies))
	for _, m := range movies {
		items = append(items, &MovieItem{
			ID:          m.ID,
			TmdbID:      m.ExternalID,
			Title:       m.Title,
			Genre:       m.Genre,
			Actors:      m.Actors,
			ReleaseYear: m.ReleaseYear,
			Rating:      m.Rating,
			Description: m.Description,
		})
	}
	return items
}
