package service

import (
	"context"
	"testing"

	"moviecurator/internal/biz"

	"github.com/go-kratos/kratos/v2/encoding"
	_ "github.com/go-kratos/kratos/v2/encoding/json"
	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct{}

func (stubProvider) Search(_ context.Context, query string) ([]*biz.MovieSummary, error) {
	year := 2006
	return []*biz.MovieSummary{{
		ExternalID:  27210,
		Title:       "Slither",
		Genre:       "Horror, Comedy",
		Actors:      []string{"Nathan Fillion", "Elizabeth Banks"},
		ReleaseYear: &year,
		Rating:      6.3,
	}}, nil
}

func (stubProvider) FetchDetails(_ context.Context, externalID int64) (*biz.MovieDetails, error) {
	return &biz.MovieDetails{ExternalID: externalID, Title: "Slither", Rating: 6.3}, nil
}

type stubMovieRepo struct {
	movies []*biz.Movie
}

func (r *stubMovieRepo) GetMovieByExternalID(_ context.Context, id int64) (*biz.Movie, error) {
	for _, m := range r.movies {
		if m.ExternalID == id {
			return m, nil
		}
	}
	return nil, biz.NotFound("movie", "", nil)
}

func (r *stubMovieRepo) CreateMovie(_ context.Context, m *biz.Movie) (*biz.Movie, bool, error) {
	r.movies = append(r.movies, m)
	return m, true, nil
}

func (r *stubMovieRepo) FindByGenreAndActor(context.Context, string, string) ([]*biz.Movie, error) {
	return nil, nil
}

func (r *stubMovieRepo) TopRated(_ context.Context, n int) ([]*biz.Movie, error) {
	return r.movies, nil
}

type stubListRepo struct {
	entries map[string]bool
}

func (r *stubListRepo) FindEntry(_ context.Context, list biz.ListRef, movieID string) (*biz.MembershipEntry, error) {
	if r.entries[string(list.Kind)+movieID] {
		return &biz.MembershipEntry{}, nil
	}
	return nil, biz.NotFound(string(list.Kind), movieID, nil)
}

func (r *stubListRepo) AddEntry(_ context.Context, list biz.ListRef, movieID string) (*biz.MembershipEntry, error) {
	r.entries[string(list.Kind)+movieID] = true
	return &biz.MembershipEntry{ID: "e1", Kind: list.Kind, MovieID: movieID}, nil
}

func (r *stubListRepo) ListMovies(context.Context, *biz.ListQuery) ([]*biz.Movie, error) {
	return nil, nil
}

type stubCuratedRepo struct{}

func (stubCuratedRepo) CreateCuratedList(context.Context, *biz.CuratedList) error { return nil }

func (stubCuratedRepo) UpdateCuratedList(context.Context, *biz.CuratedList) error { return nil }

func (stubCuratedRepo) GetCuratedList(_ context.Context, id string) (*biz.CuratedList, error) {
	if id != "1" {
		return nil, biz.NotFound("curated list", id, nil)
	}
	return &biz.CuratedList{ID: id, Name: "Horror Movies", Slug: "horror-movies"}, nil
}

type stubReviewRepo struct{}

func (stubReviewRepo) CreateReview(context.Context, *biz.Review) error { return nil }

func (stubReviewRepo) FirstReviews(_ context.Context, ids []string) (map[string]*biz.Review, error) {
	return map[string]*biz.Review{ids[0]: {ReviewText: "A very good movie"}}, nil
}

func newTestMovieService() (*MovieService, *stubMovieRepo) {
	logger := log.DefaultLogger
	movies := &stubMovieRepo{}
	lists := &stubListRepo{entries: map[string]bool{}}
	movieUC := biz.NewMovieUseCase(movies, stubProvider{}, logger)
	curatedUC := biz.NewCuratedListUseCase(stubCuratedRepo{}, logger)
	svc := NewMovieService(
		biz.NewListUseCase(movieUC, lists, curatedUC, logger),
		biz.NewReviewUseCase(movieUC, stubReviewRepo{}, logger),
		biz.NewQueryUseCase(stubProvider{}, movies, lists, stubReviewRepo{}, logger),
	)
	return svc, movies
}

func TestSearchMoviesJoinsActors(t *testing.T) {
	svc, _ := newTestMovieService()

	reply, err := svc.SearchMovies(context.Background(), &SearchMoviesRequest{Query: "slither"})
	require.NoError(t, err)
	require.Len(t, reply.Movies, 1)
	assert.Equal(t, "Nathan Fillion, Elizabeth Banks", reply.Movies[0].Actors)
	assert.Equal(t, int64(27210), reply.Movies[0].TmdbID)
}

func TestAddToWatchlistTwice(t *testing.T) {
	svc, _ := newTestMovieService()
	ctx := context.Background()

	reply, err := svc.AddToWatchlist(ctx, &AddToListRequest{MovieID: 27210})
	require.NoError(t, err)
	assert.Equal(t, "Movie added to watchlist successfully.", reply.Message)

	_, err = svc.AddToWatchlist(ctx, &AddToListRequest{MovieID: 27210})
	assert.True(t, biz.IsConflict(err))
}

func TestAddReviewParsesPathID(t *testing.T) {
	svc, _ := newTestMovieService()
	rating := 9.0

	reply, err := svc.AddReview(context.Background(), &AddReviewRequest{MovieID: "27210", Rating: &rating, ReviewText: "great"})
	require.NoError(t, err)
	assert.Equal(t, "Review added successfully.", reply.Message)

	_, err = svc.AddReview(context.Background(), &AddReviewRequest{MovieID: "abc", Rating: &rating, ReviewText: "great"})
	assert.True(t, errors.IsBadRequest(err))
}

func TestEmptyResultsAreNotFound(t *testing.T) {
	svc, _ := newTestMovieService()
	ctx := context.Background()

	_, err := svc.SearchByGenreAndActor(ctx, &GenreActorRequest{Genre: "horror", Actor: "fillion"})
	assert.True(t, errors.IsNotFound(err))

	_, err = svc.SortMovies(ctx, &SortMoviesRequest{List: "watchlist", SortBy: "rating"})
	assert.True(t, errors.IsNotFound(err))

	_, err = svc.TopRated(ctx, &TopRatedRequest{})
	assert.True(t, errors.IsNotFound(err))
}

func TestTopRatedShapesReview(t *testing.T) {
	svc, movies := newTestMovieService()
	movies.movies = []*biz.Movie{{ID: "m1", Title: "Slither", Rating: 6.3}}

	items, err := svc.TopRated(context.Background(), &TopRatedRequest{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, ReviewExcerpt{Text: "A very good movie", WordCount: 4}, items[0].Review)
}

func TestAddToCuratedListAcceptsNumericID(t *testing.T) {
	svc, _ := newTestMovieService()
	codec := encoding.GetCodec("json")

	var req AddToListRequest
	require.NoError(t, codec.Unmarshal([]byte(`{"movieId":27210,"curatedListId":1}`), &req))
	assert.Equal(t, ListID("1"), req.CuratedListID)

	reply, err := svc.AddToCuratedList(context.Background(), &req)
	require.NoError(t, err)
	assert.Equal(t, "Movie added to curated list successfully.", reply.Message)

	req = AddToListRequest{}
	require.NoError(t, codec.Unmarshal([]byte(`{"movieId":27210,"curatedListId":"2"}`), &req))
	_, err = svc.AddToCuratedList(context.Background(), &req)
	assert.True(t, biz.IsNotFound(err))

	assert.Error(t, codec.Unmarshal([]byte(`{"movieId":27210,"curatedListId":true}`), &AddToListRequest{}))
}
