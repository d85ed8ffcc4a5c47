package biz

import (
	"context"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

const (
	MinReviewRating     = 0
	MaxReviewRating     = 10
	MaxReviewTextLength = 500
)

// ReviewUseCase handles review submission
type ReviewUseCase struct {
	movies     *MovieUseCase
	reviewRepo ReviewRepo
	log        *log.Helper
}

// NewReviewUseCase creates a new ReviewUseCase instance
func NewReviewUseCase(movies *MovieUseCase, reviewRepo ReviewRepo, logger log.Logger) *ReviewUseCase {
	return &ReviewUseCase{
		movies:     movies,
		reviewRepo: reviewRepo,
		log:        log.NewHelper(logger),
	}
}

// AddReview stores a new review for the movie. Any number of reviews per
// movie is allowed.
func (uc *ReviewUseCase) AddReview(ctx context.Context, externalMovieID int64, rating float64, text string) (*Review, error) {
	if err := validateReview(rating, text); err != nil {
		return nil, err
	}

	rec, err := uc.movies.Reconcile(ctx, externalMovieID)
	if err != nil {
		return nil, err
	}

	reviewID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate review ID: %w", err)
	}

	review := &Review{
		ID:         reviewID.String(),
		MovieID:    rec.Movie.ID,
		Rating:     rating,
		ReviewText: text,
	}
	if err := uc.reviewRepo.CreateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	return review, nil
}

func validateReview(rating float64, text string) error {
	if math.IsNaN(rating) || rating < MinReviewRating || rating > MaxReviewRating {
		return Validation("rating", "must be between 0 and 10")
	}
	if utf8.RuneCountInString(text) > MaxReviewTextLength {
		return Validation("reviewText", "must be at most 500 characters")
	}
	return nil
}
