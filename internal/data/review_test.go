package data

import (
	"context"
	"testing"

	"moviecurator/internal/biz"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewRepoFirstReviews(t *testing.T) {
	d := newTestData(t)
	movies := NewMovieRepo(d, log.DefaultLogger)
	reviews := NewReviewRepo(d, log.DefaultLogger)
	ctx := context.Background()

	seedMovie(t, movies, &biz.Movie{ID: "m1", ExternalID: 1, Title: "One"})
	seedMovie(t, movies, &biz.Movie{ID: "m2", ExternalID: 2, Title: "Two"})
	seedMovie(t, movies, &biz.Movie{ID: "m3", ExternalID: 3, Title: "Three"})

	for _, r := range []*biz.Review{
		{ID: "r1", MovieID: "m1", Rating: 9, ReviewText: "A very good movie"},
		{ID: "r2", MovieID: "m1", Rating: 3, ReviewText: "later"},
		{ID: "r3", MovieID: "m2", Rating: 5, ReviewText: "ok"},
	} {
		require.NoError(t, reviews.CreateReview(ctx, r))
		assert.False(t, r.CreatedAt.IsZero())
	}

	first, err := reviews.FirstReviews(ctx, []string{"m1", "m2", "m3"})
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "A very good movie", first["m1"].ReviewText)
	assert.Equal(t, "ok", first["m2"].ReviewText)
	assert.NotContains(t, first, "m3")

	empty, err := reviews.FirstReviews(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
