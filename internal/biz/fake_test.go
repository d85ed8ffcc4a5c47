package biz

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// In-memory implementations of the repo and provider interfaces

type fakeMovieRepo struct {
	mu      sync.Mutex
	movies  map[int64]*Movie
	creates int
}

func newFakeMovieRepo() *fakeMovieRepo {
	return &fakeMovieRepo{movies: map[int64]*Movie{}}
}

func (r *fakeMovieRepo) GetMovieByExternalID(_ context.Context, externalID int64) (*Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.movies[externalID]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, NotFound("movie", "x", nil)
}

func (r *fakeMovieRepo) CreateMovie(_ context.Context, movie *Movie) (*Movie, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.movies[movie.ExternalID]; ok {
		cp := *m
		return &cp, false, nil
	}
	r.creates++
	cp := *movie
	r.movies[movie.ExternalID] = &cp
	return movie, true, nil
}

func (r *fakeMovieRepo) FindByGenreAndActor(_ context.Context, genre, actor string) ([]*Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Movie
	for _, m := range r.movies {
		if strings.Contains(strings.ToLower(m.Genre), strings.ToLower(genre)) &&
			strings.Contains(strings.ToLower(m.Actors), strings.ToLower(actor)) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovieRepo) TopRated(_ context.Context, n int) ([]*Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*Movie, 0, len(r.movies))
	for _, m := range r.movies {
		all = append(all, m)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Rating > all[j].Rating })
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

type fakeListRepo struct {
	mu      sync.Mutex
	entries []*MembershipEntry
	queries int
	movies  *fakeMovieRepo
}

func (r *fakeListRepo) FindEntry(_ context.Context, list ListRef, movieID string) (*MembershipEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.Kind == list.Kind && e.CuratedListID == list.CuratedListID && e.MovieID == movieID {
			return e, nil
		}
	}
	return nil, NotFound(string(list.Kind), list.CuratedListID, nil)
}

func (r *fakeListRepo) AddEntry(_ context.Context, list ListRef, movieID string) (*MembershipEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := &MembershipEntry{
		ID:            uuid.NewString(),
		Kind:          list.Kind,
		CuratedListID: list.CuratedListID,
		MovieID:       movieID,
		CreatedAt:     time.Now(),
	}
	r.entries = append(r.entries, e)
	return e, nil
}

func (r *fakeListRepo) ListMovies(_ context.Context, q *ListQuery) ([]*Movie, error) {
	r.mu.Lock()
	r.queries++
	r.mu.Unlock()
	return nil, nil
}

func (r *fakeListRepo) count(kind ListKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.entries {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews []*Review
}

func (r *fakeReviewRepo) CreateReview(_ context.Context, review *Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviews = append(r.reviews, review)
	return nil
}

func (r *fakeReviewRepo) FirstReviews(_ context.Context, movieIDs []string) (map[string]*Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := map[string]bool{}
	for _, id := range movieIDs {
		want[id] = true
	}
	out := map[string]*Review{}
	for _, rv := range r.reviews {
		if _, seen := out[rv.MovieID]; !seen && want[rv.MovieID] {
			out[rv.MovieID] = rv
		}
	}
	return out, nil
}

type fakeCuratedRepo struct {
	lists map[string]*CuratedList
}

func (r *fakeCuratedRepo) CreateCuratedList(_ context.Context, list *CuratedList) error {
	for _, l := range r.lists {
		if l.Slug == list.Slug {
			return Conflict("curatedList", list.Slug, "slug already exists", nil)
		}
	}
	cp := *list
	r.lists[list.ID] = &cp
	return nil
}

func (r *fakeCuratedRepo) UpdateCuratedList(_ context.Context, list *CuratedList) error {
	cp := *list
	r.lists[list.ID] = &cp
	return nil
}

func (r *fakeCuratedRepo) GetCuratedList(_ context.Context, id string) (*CuratedList, error) {
	if l, ok := r.lists[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, NotFound("curatedList", id, nil)
}

type fakeProvider struct {
	mu      sync.Mutex
	details map[int64]*MovieDetails
	fetches int
	err     error
}

func (p *fakeProvider) Search(_ context.Context, query string) ([]*MovieSummary, error) {
	if p.err != nil {
		return nil, p.err
	}
	return []*MovieSummary{{ExternalID: 1, Title: query}}, nil
}

func (p *fakeProvider) FetchDetails(_ context.Context, externalID int64) (*MovieDetails, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fetches++
	if p.err != nil {
		return nil, p.err
	}
	d, ok := p.details[externalID]
	if !ok {
		return nil, NotFound("movie", "x", errors.New("404"))
	}
	return d, nil
}

type fixture struct {
	movies   *fakeMovieRepo
	lists    *fakeListRepo
	reviews  *fakeReviewRepo
	curated  *fakeCuratedRepo
	provider *fakeProvider

	movieUC   *MovieUseCase
	listUC    *ListUseCase
	reviewUC  *ReviewUseCase
	curatedUC *CuratedListUseCase
	queryUC   *QueryUseCase
}

func newFixture() *fixture {
	f := &fixture{
		movies:  newFakeMovieRepo(),
		reviews: &fakeReviewRepo{},
		curated: &fakeCuratedRepo{lists: map[string]*CuratedList{}},
		provider: &fakeProvider{details: map[int64]*MovieDetails{
			27205: {
				ExternalID:  27205,
				Title:       "Inception",
				Genres:      []string{"Action", "Science Fiction"},
				ReleaseDate: "2010-07-15",
				Rating:      8.4,
				Overview:    "A thief who steals corporate secrets.",
				Actors:      []string{"Leonardo DiCaprio", "Joseph Gordon-Levitt", "Ken Watanabe", "Tom Hardy", "Elliot Page", "Dileep Rao"},
			},
			27210: {ExternalID: 27210, Title: "Slither", Genres: []string{"Horror", "Comedy"}, ReleaseDate: "2006-03-31", Rating: 6.3},
		}},
	}
	f.lists = &fakeListRepo{movies: f.movies}
	logger := log.DefaultLogger
	f.movieUC = NewMovieUseCase(f.movies, f.provider, logger)
	f.curatedUC = NewCuratedListUseCase(f.curated, logger)
	f.listUC = NewListUseCase(f.movieUC, f.lists, f.curatedUC, logger)
	f.reviewUC = NewReviewUseCase(f.movieUC, f.reviews, logger)
	f.queryUC = NewQueryUseCase(f.provider, f.movies, f.lists, f.reviews, logger)
	return f
}
