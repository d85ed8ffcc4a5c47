package data

import (
	"context"
	"errors"
	"fmt"

	"moviecurator/internal/biz"

	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/gorm"
)

type curatedListRepo struct {
	data *Data
	log  *log.Helper
}

// NewCuratedListRepo creates a new curated list repository
func NewCuratedListRepo(data *Data, logger log.Logger) biz.CuratedListRepo {
	return &curatedListRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *curatedListRepo) CreateCuratedList(ctx context.Context, list *biz.CuratedList) error {
	dbList := &CuratedList{
		ID:          list.ID,
		Name:        list.Name,
		Slug:        list.Slug,
		Description: list.Description,
	}

	err := r.data.db.WithContext(ctx).Create(dbList).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return biz.Conflict("curatedList", list.Slug, "slug already exists", err)
	}
	if err != nil {
		return fmt.Errorf("failed to create curated list: %w", err)
	}
	return nil
}

func (r *curatedListRepo) UpdateCuratedList(ctx context.Context, list *biz.CuratedList) error {
	result := r.data.db.WithContext(ctx).
		Model(&CuratedList{}).
		Where("id = ?", list.ID).
		Updates(map[string]interface{}{
			"name":        list.Name,
			"slug":        list.Slug,
			"description": list.Description,
		})
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return biz.Conflict("curatedList", list.Slug, "slug already exists", result.Error)
	}
	if result.Error != nil {
		return fmt.Errorf("failed to update curated list: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return biz.NotFound("curatedList", list.ID, nil)
	}
	return nil
}

func (r *curatedListRepo) GetCuratedList(ctx context.Context, id string) (*biz.CuratedList, error) {
	var dbList CuratedList
	err := r.data.db.WithContext(ctx).Where("id = ?", id).First(&dbList).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, biz.NotFound("curatedList", id, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get curated list: %w", err)
	}

	return &biz.CuratedList{
		ID:          dbList.ID,
		Name:        dbList.Name,
		Slug:        dbList.Slug,
		Description: dbList.Description,
	}, nil
}
