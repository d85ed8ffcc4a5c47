package data

import (
	"context"
	"testing"

	"moviecurator/internal/biz"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCuratedListRepo(t *testing.T) {
	repo := NewCuratedListRepo(newTestData(t), log.DefaultLogger)
	ctx := context.Background()

	list := &biz.CuratedList{ID: "c1", Name: "Horror Movies", Slug: "horror-movies", Description: "A collection of the best horror films."}
	require.NoError(t, repo.CreateCuratedList(ctx, list))

	err := repo.CreateCuratedList(ctx, &biz.CuratedList{ID: "c2", Name: "Other", Slug: "horror-movies"})
	assert.True(t, biz.IsConflict(err))

	list.Name = "Updated List Name"
	list.Slug = "updated-list-name"
	require.NoError(t, repo.UpdateCuratedList(ctx, list))

	got, err := repo.GetCuratedList(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Updated List Name", got.Name)
	assert.Equal(t, "updated-list-name", got.Slug)

	_, err = repo.GetCuratedList(ctx, "missing")
	assert.True(t, biz.IsNotFound(err))

	err = repo.UpdateCuratedList(ctx, &biz.CuratedList{ID: "missing", Name: "x", Slug: "x"})
	assert.True(t, biz.IsNotFound(err))
}
