package service

import (
	"context"
	"strings"

	"moviecurator/internal/biz"
)

// CuratedListService implements the curated list API
type CuratedListService struct {
	uc *biz.CuratedListUseCase
}

// NewCuratedListService creates a new CuratedListService
func NewCuratedListService(uc *biz.CuratedListUseCase) *CuratedListService {
	return &CuratedListService{uc: uc}
}

// CreateCuratedList implements POST /api/curated-lists
func (s *CuratedListService) CreateCuratedList(ctx context.Context, req *CreateCuratedListRequest) (*CuratedListReply, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Slug) == "" {
		return nil, badRequest("Name and slug are required.")
	}

	list, err := s.uc.CreateCuratedList(ctx, req.Name, req.Slug, req.Description)
	if err != nil {
		return nil, err
	}
	return &CuratedListReply{Message: "Curated list created successfully.", CuratedList: curatedToItem(list)}, nil
}

// UpdateCuratedList implements PUT /api/curated-lists/{curatedListId}
func (s *CuratedListService) UpdateCuratedList(ctx context.Context, req *UpdateCuratedListRequest) (*CuratedListReply, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, badRequest("Name is required and should be a string")
	}

	list, err := s.uc.UpdateCuratedList(ctx, req.CuratedListID, req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	return &CuratedListReply{Message: "Curated list updated successfully.", CuratedList: curatedToItem(list)}, nil
}

func curatedToItem(l *biz.CuratedList) *CuratedListItem {
	return &CuratedListItem{
		ID:          l.ID,
		Name:        l.Name,
		Slug:        l.Slug,
		Description: l.Description,
	}
}
