package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"moviecurator/internal/biz"

	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type movieRepo struct {
	data *Data
	log  *log.Helper
}

// NewMovieRepo creates a new movie repository
func NewMovieRepo(data *Data, logger log.Logger) biz.MovieRepo {
	return &movieRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func movieCacheKey(externalID int64) string {
	return fmt.Sprintf("movie:ext:%d", externalID)
}

func (r *movieRepo) GetMovieByExternalID(ctx context.Context, externalID int64) (*biz.Movie, error) {
	// Try cache first if Redis is available
	if r.data.rdb != nil {
		cached, err := r.data.rdb.Get(ctx, movieCacheKey(externalID)).Result()
		if err == nil {
			var movie biz.Movie
			if err := json.Unmarshal([]byte(cached), &movie); err == nil {
				r.log.Debugf("cache hit for movie: %d", externalID)
				return &movie, nil
			}
		}
	}

	movie, err := r.findByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}

	r.cache(ctx, movie)
	return movie, nil
}

func (r *movieRepo) findByExternalID(ctx context.Context, externalID int64) (*biz.Movie, error) {
	var dbMovie Movie
	err := r.data.db.WithContext(ctx).Where("external_id = ?", externalID).First(&dbMovie).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, biz.NotFound("movie", strconv.FormatInt(externalID, 10), err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}
	return movieToBiz(&dbMovie), nil
}

func (r *movieRepo) CreateMovie(ctx context.Context, movie *biz.Movie) (*biz.Movie, bool, error) {
	dbMovie := movieToModel(movie)

	// A concurrent reconciliation may have inserted the same external id;
	// keep the first row and hand it back to the loser.
	result := r.data.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "external_id"}},
		DoNothing: true,
	}).Create(dbMovie)
	if result.Error != nil {
		return nil, false, fmt.Errorf("failed to create movie: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		existing, err := r.findByExternalID(ctx, movie.ExternalID)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}

	stored := movieToBiz(dbMovie)
	r.cache(ctx, stored)
	return stored, true, nil
}

func (r *movieRepo) FindByGenreAndActor(ctx context.Context, genre, actor string) ([]*biz.Movie, error) {
	var dbMovies []Movie
	err := r.data.db.WithContext(ctx).
		Where(`LOWER(genre) LIKE ? ESCAPE '\'`, containsPattern(genre)).
		Where(`LOWER(actors) LIKE ? ESCAPE '\'`, containsPattern(actor)).
		Order("title").
		Find(&dbMovies).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search movies: %w", err)
	}
	return moviesToBiz(dbMovies), nil
}

func (r *movieRepo) TopRated(ctx context.Context, n int) ([]*biz.Movie, error) {
	var dbMovies []Movie
	err := r.data.db.WithContext(ctx).
		Order("rating DESC").
		Order("created_at").
		Limit(n).
		Find(&dbMovies).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank movies: %w", err)
	}
	return moviesToBiz(dbMovies), nil
}

func (r *movieRepo) cache(ctx context.Context, movie *biz.Movie) {
	if r.data.rdb == nil {
		return
	}
	data, err := json.Marshal(movie)
	if err != nil {
		return
	}
	if err := r.data.rdb.Set(ctx, movieCacheKey(movie.ExternalID), data, r.data.cacheTTL).Err(); err != nil {
		r.log.Warnf("failed to cache movie %d: %v", movie.ExternalID, err)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a lower-cased LIKE pattern matching s anywhere
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

func movieToModel(m *biz.Movie) *Movie {
	return &Movie{
		ID:          m.ID,
		ExternalID:  m.ExternalID,
		Title:       m.Title,
		Genre:       m.Genre,
		Actors:      m.Actors,
		ReleaseYear: m.ReleaseYear,
		Rating:      m.Rating,
		Description: m.Description,
	}
}

func movieToBiz(m *Movie) *biz.Movie {
	return &biz.Movie{
		ID:          m.ID,
		ExternalID:  m.ExternalID,
		Title:       m.Title,
		Genre:       m.Genre,
		Actors:      m.Actors,
		ReleaseYear: m.ReleaseYear,
		Rating:      m.Rating,
		Description: m.Description,
	}
}

func moviesToBiz(ms []Movie) []*biz.Movie {
	movies := make([]*biz.Movie, 0, len(ms))
	for i := range ms {
		movies = append(movies, movieToBiz(&ms[i]))
	}
	return movies
}
