package data

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"moviecurator/internal/biz"
	"moviecurator/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/errgroup"
)

const (
	defaultTMDBBaseURL       = "https://api.themoviedb.org/3"
	defaultTMDBTimeout       = 10 * time.Second
	defaultEnrichConcurrency = 4
	actingDepartment         = "Acting"
)

// tmdbGenres maps TMDB movie genre ids to names.
var tmdbGenres = map[int]string{
	28: "Action", 12: "Adventure", 16: "Animation", 35: "Comedy", 80: "Crime",
	99: "Documentary", 18: "Drama", 10751: "Family", 14: "Fantasy", 36: "History",
	27: "Horror", 10402: "Music", 9648: "Mystery", 10749: "Romance",
	878: "Science Fiction", 10770: "TV Movie", 53: "Thriller", 10752: "War", 37: "Western",
}

type tmdbSearchResponse struct {
	Results []struct {
		ID            int64   `json:"id"`
		OriginalTitle string  `json:"original_title"`
		GenreIDs      []int   `json:"genre_ids"`
		ReleaseDate   string  `json:"release_date"`
		VoteAverage   float64 `json:"vote_average"`
		Overview      string  `json:"overview"`
	} `json:"results"`
}

type tmdbMovieResponse struct {
	ID            int64  `json:"id"`
	OriginalTitle string `json:"original_title"`
	Genres        []struct {
		Name string `json:"name"`
	} `json:"genres"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	Overview    string  `json:"overview"`
}

type tmdbCreditsResponse struct {
	Cast []struct {
		Name               string `json:"name"`
		KnownForDepartment string `json:"known_for_department"`
	} `json:"cast"`
}

type tmdbErrorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

type tmdbClient struct {
	client      *resty.Client
	apiKey      string
	concurrency int
	log         *log.Helper
}

// NewTMDBClient creates the metadata provider client. The API key comes from
// config only; calls fail fast when it is empty.
func NewTMDBClient(c *conf.Provider, logger log.Logger) biz.MetadataProvider {
	baseURL := defaultTMDBBaseURL
	timeout := defaultTMDBTimeout
	concurrency := defaultEnrichConcurrency
	var apiKey string
	if c != nil {
		if c.BaseURL != "" {
			baseURL = strings.TrimRight(c.BaseURL, "/")
		}
		if c.Timeout.AsDuration() > 0 {
			timeout = c.Timeout.AsDuration()
		}
		if c.EnrichConcurrency > 0 {
			concurrency = c.EnrichConcurrency
		}
		apiKey = c.APIKey
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)

	return &tmdbClient{
		client:      client,
		apiKey:      apiKey,
		concurrency: concurrency,
		log:         log.NewHelper(logger),
	}
}

func (c *tmdbClient) checkKey() error {
	if c.apiKey == "" {
		return biz.Configuration("missing TMDB API key")
	}
	return nil
}

// Search returns provider hits enriched with up to five lead actors each.
// A failed credits lookup leaves that hit without actors.
func (c *tmdbClient) Search(ctx context.Context, query string) ([]*biz.MovieSummary, error) {
	if err := c.checkKey(); err != nil {
		return nil, err
	}

	var result tmdbSearchResponse
	var apiErr tmdbErrorResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("api_key", c.apiKey).
		SetQueryParam("query", query).
		SetResult(&result).
		SetError(&apiErr).
		Get("/search/movie")
	if err != nil {
		return nil, biz.Provider("TMDB API Error: "+err.Error(), err)
	}
	if resp.IsError() {
		return nil, biz.Provider("TMDB API Error: "+statusMessage(resp, &apiErr), nil)
	}

	movies := make([]*biz.MovieSummary, len(result.Results))
	for i, r := range result.Results {
		movies[i] = &biz.MovieSummary{
			ExternalID:  r.ID,
			Title:       r.OriginalTitle,
			Genre:       genreNames(r.GenreIDs),
			Actors:      []string{},
			ReleaseYear: biz.ParseReleaseYear(r.ReleaseDate),
			Rating:      r.VoteAverage,
			Description: r.Overview,
		}
	}

	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for _, m := range movies {
		g.Go(func() error {
			actors, err := c.fetchActors(ctx, m.ExternalID)
			if err != nil {
				c.log.Warnf("failed to fetch actors for movie %d: %v", m.ExternalID, err)
				return nil
			}
			m.Actors = actors
			return nil
		})
	}
	_ = g.Wait()

	return movies, nil
}

// FetchDetails loads one movie with its credits. Every failure is reported
// as NotFound; the cause stays wrapped for logging.
func (c *tmdbClient) FetchDetails(ctx context.Context, externalID int64) (*biz.MovieDetails, error) {
	if err := c.checkKey(); err != nil {
		return nil, err
	}
	id := strconv.FormatInt(externalID, 10)

	var movie tmdbMovieResponse
	var apiErr tmdbErrorResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetQueryParam("api_key", c.apiKey).
		SetResult(&movie).
		SetError(&apiErr).
		Get("/movie/{id}")
	if err != nil {
		return nil, biz.NotFound("movie", id, err)
	}
	if resp.IsError() {
		return nil, biz.NotFound("movie", id, fmt.Errorf("tmdb: %s", statusMessage(resp, &apiErr)))
	}
	if movie.ID != externalID {
		return nil, biz.NotFound("movie", id, fmt.Errorf("tmdb: details response carried id %d", movie.ID))
	}

	actors, err := c.fetchActors(ctx, externalID)
	if err != nil {
		return nil, biz.NotFound("movie", id, err)
	}

	genres := make([]string, 0, len(movie.Genres))
	for _, g := range movie.Genres {
		genres = append(genres, g.Name)
	}

	return &biz.MovieDetails{
		ExternalID:  externalID,
		Title:       movie.OriginalTitle,
		Genres:      genres,
		ReleaseDate: movie.ReleaseDate,
		Rating:      movie.VoteAverage,
		Overview:    movie.Overview,
		Actors:      actors,
	}, nil
}

// fetchActors returns up to biz.MaxActors cast names from the Acting department
func (c *tmdbClient) fetchActors(ctx context.Context, externalID int64) ([]string, error) {
	var credits tmdbCreditsResponse
	var apiErr tmdbErrorResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(externalID, 10)).
		SetQueryParam("api_key", c.apiKey).
		SetResult(&credits).
		SetError(&apiErr).
		Get("/movie/{id}/credits")
	if err != nil {
		return nil, fmt.Errorf("credits request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("credits request failed: %s", statusMessage(resp, &apiErr))
	}

	actors := make([]string, 0, biz.MaxActors)
	for _, member := range credits.Cast {
		if member.KnownForDepartment != actingDepartment {
			continue
		}
		actors = append(actors, member.Name)
		if len(actors) == biz.MaxActors {
			break
		}
	}
	return actors, nil
}

func statusMessage(resp *resty.Response, apiErr *tmdbErrorResponse) string {
	if apiErr.StatusMessage != "" {
		return apiErr.StatusMessage
	}
	return fmt.Sprintf("unexpected status code: %d", resp.StatusCode())
}

func genreNames(ids []int) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := tmdbGenres[id]; ok {
			names = append(names, name)
		} else {
			names = append(names, strconv.Itoa(id))
		}
	}
	return strings.Join(names, ", ")
}
