package biz

import (
	"context"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"
)

// ListUseCase handles list membership
type ListUseCase struct {
	movies    *MovieUseCase
	listRepo  ListRepo
	curatedUC *CuratedListUseCase
	log       *log.Helper
}

// NewListUseCase creates a new ListUseCase instance
func NewListUseCase(movies *MovieUseCase, listRepo ListRepo, curatedUC *CuratedListUseCase, logger log.Logger) *ListUseCase {
	return &ListUseCase{
		movies:    movies,
		listRepo:  listRepo,
		curatedUC: curatedUC,
		log:       log.NewHelper(logger),
	}
}

// AddToList puts the movie into the list at most once. A repeated add fails
// with a Conflict error. The movie row may be created even when the add fails.
func (uc *ListUseCase) AddToList(ctx context.Context, list ListRef, externalMovieID int64) (*MembershipEntry, error) {
	if err := validateListRef(list); err != nil {
		return nil, err
	}

	rec, err := uc.movies.Reconcile(ctx, externalMovieID)
	if err != nil {
		return nil, err
	}
	movie := rec.Movie

	if list.Kind == ListCurated {
		if _, err := uc.curatedUC.GetCuratedList(ctx, list.CuratedListID); err != nil {
			return nil, err
		}
	}

	_, err = uc.listRepo.FindEntry(ctx, list, movie.ID)
	if err == nil {
		return nil, Conflict(string(list.Kind), list.CuratedListID, "movie already in list", nil)
	}
	if !IsNotFound(err) {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	entry, err := uc.listRepo.AddEntry(ctx, list, movie.ID)
	if err != nil {
		return nil, err
	}

	uc.log.Infof("added movie %s to %s", movie.ID, list.Kind)
	return entry, nil
}

func validateListRef(list ListRef) error {
	switch list.Kind {
	case ListWatchlist, ListWishlist:
		return nil
	case ListCurated:
		if list.CuratedListID == "" {
			return Validation("curatedListId", "is required for curated lists")
		}
		return nil
	}
	return Validation("list", fmt.Sprintf("unknown list kind %q", list.Kind))
}
