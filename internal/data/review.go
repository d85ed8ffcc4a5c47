package data

import (
	"context"
	"errors"
	"fmt"

	"moviecurator/internal/biz"

	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type reviewRepo struct {
	data *Data
	log  *log.Helper
}

// NewReviewRepo creates a new review repository
func NewReviewRepo(data *Data, logger log.Logger) biz.ReviewRepo {
	return &reviewRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *reviewRepo) CreateReview(ctx context.Context, review *biz.Review) error {
	dbReview := &Review{
		ID:         review.ID,
		MovieID:    review.MovieID,
		Rating:     review.Rating,
		ReviewText: review.ReviewText,
	}

	err := r.data.db.WithContext(ctx).Omit(clause.Associations).Create(dbReview).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return biz.NotFound("movie", review.MovieID, err)
	}
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	review.CreatedAt = dbReview.CreatedAt
	return nil
}

func (r *reviewRepo) FirstReviews(ctx context.Context, movieIDs []string) (map[string]*biz.Review, error) {
	first := make(map[string]*biz.Review, len(movieIDs))
	if len(movieIDs) == 0 {
		return first, nil
	}

	var dbReviews []Review
	err := r.data.db.WithContext(ctx).
		Where("movie_id IN ?", movieIDs).
		Order("created_at").
		Order("id").
		Find(&dbReviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}

	for i := range dbReviews {
		rv := &dbReviews[i]
		if _, ok := first[rv.MovieID]; ok {
			continue
		}
		first[rv.MovieID] = &biz.Review{
			ID:         rv.ID,
			MovieID:    rv.MovieID,
			Rating:     rv.Rating,
			ReviewText: rv.ReviewText,
			CreatedAt:  rv.CreatedAt,
		}
	}
	return first, nil
}
