package biz

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// CuratedListUseCase handles curated list metadata
type CuratedListUseCase struct {
	repo CuratedListRepo
	log  *log.Helper
}

// NewCuratedListUseCase creates a new CuratedListUseCase instance
func NewCuratedListUseCase(repo CuratedListRepo, logger log.Logger) *CuratedListUseCase {
	return &CuratedListUseCase{
		repo: repo,
		log:  log.NewHelper(logger),
	}
}

// CreateCuratedList stores a new list. Name and slug are required.
func (uc *CuratedListUseCase) CreateCuratedList(ctx context.Context, name, listSlug, description string) (*CuratedList, error) {
	name = strings.TrimSpace(name)
	listSlug = strings.TrimSpace(listSlug)
	if name == "" || listSlug == "" {
		return nil, Validation("curatedList", "name and slug are required")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate curated list ID: %w", err)
	}

	list := &CuratedList{
		ID:          id.String(),
		Name:        name,
		Slug:        listSlug,
		Description: description,
	}
	if err := uc.repo.CreateCuratedList(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateCuratedList renames a list and regenerates its slug from the new name
func (uc *CuratedListUseCase) UpdateCuratedList(ctx context.Context, id, name, description string) (*CuratedList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, Validation("name", "is required")
	}

	list, err := uc.repo.GetCuratedList(ctx, id)
	if err != nil {
		return nil, err
	}

	list.Name = name
	list.Slug = slug.Make(name)
	list.Description = description

	if err := uc.repo.UpdateCuratedList(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (uc *CuratedListUseCase) GetCuratedList(ctx context.Context, id string) (*CuratedList, error) {
	return uc.repo.GetCuratedList(ctx, id)
}
