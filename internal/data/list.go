package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"moviecurator/internal/biz"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// membershipTable describes how a list kind is stored and joined to movies
type membershipTable struct {
	table   string
	joinKey string
	// scopeKey is set when rows belong to a specific list instance
	scopeKey string
}

var membershipTables = map[biz.ListKind]membershipTable{
	biz.ListWatchlist: {table: Watchlist{}.TableName(), joinKey: "movie_id"},
	biz.ListWishlist:  {table: Wishlist{}.TableName(), joinKey: "movie_id"},
	biz.ListCurated:   {table: CuratedListItem{}.TableName(), joinKey: "movie_id", scopeKey: "curated_list_id"},
}

// sortColumns whitelists the movie columns a projection may be ordered by
var sortColumns = map[biz.SortField]string{
	biz.SortByRating:      "movies.rating",
	biz.SortByReleaseYear: "movies.release_year",
}

type membershipRow struct {
	ID            string
	MovieID       string
	CuratedListID string
}

type listRepo struct {
	data *Data
	log  *log.Helper
}

// NewListRepo creates a new list membership repository
func NewListRepo(data *Data, logger log.Logger) biz.ListRepo {
	return &listRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func lookupTable(kind biz.ListKind) (membershipTable, error) {
	t, ok := membershipTables[kind]
	if !ok {
		return membershipTable{}, biz.Validation("list", fmt.Sprintf("unknown list kind %q", kind))
	}
	return t, nil
}

func (r *listRepo) FindEntry(ctx context.Context, list biz.ListRef, movieID string) (*biz.MembershipEntry, error) {
	t, err := lookupTable(list.Kind)
	if err != nil {
		return nil, err
	}

	db := r.data.db.WithContext(ctx).Table(t.table).Where(t.joinKey+" = ?", movieID)
	if t.scopeKey != "" {
		db = db.Where(t.scopeKey+" = ?", list.CuratedListID)
	}

	var row membershipRow
	err = db.Select(t.columns()).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, biz.NotFound(string(list.Kind), movieID, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find %s entry: %w", list.Kind, err)
	}

	return &biz.MembershipEntry{
		ID:            row.ID,
		Kind:          list.Kind,
		CuratedListID: row.CuratedListID,
		MovieID:       row.MovieID,
	}, nil
}

func (r *listRepo) AddEntry(ctx context.Context, list biz.ListRef, movieID string) (*biz.MembershipEntry, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate entry ID: %w", err)
	}

	now := time.Now().UTC()
	var row interface{}
	switch list.Kind {
	case biz.ListWatchlist:
		row = &Watchlist{ID: id.String(), MovieID: movieID, CreatedAt: now}
	case biz.ListWishlist:
		row = &Wishlist{ID: id.String(), MovieID: movieID, CreatedAt: now}
	case biz.ListCurated:
		row = &CuratedListItem{ID: id.String(), CuratedListID: list.CuratedListID, MovieID: movieID, CreatedAt: now}
	default:
		return nil, biz.Validation("list", fmt.Sprintf("unknown list kind %q", list.Kind))
	}

	// Omit associations so gorm does not try to upsert the referenced rows.
	err = r.data.db.WithContext(ctx).Omit(clause.Associations).Create(row).Error
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return nil, biz.Conflict(string(list.Kind), list.CuratedListID, "movie already in list", err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return nil, biz.NotFound(string(list.Kind), list.CuratedListID, err)
	case err != nil:
		return nil, fmt.Errorf("failed to add %s entry: %w", list.Kind, err)
	}

	return &biz.MembershipEntry{
		ID:            id.String(),
		Kind:          list.Kind,
		CuratedListID: list.CuratedListID,
		MovieID:       movieID,
		CreatedAt:     now,
	}, nil
}

func (r *listRepo) ListMovies(ctx context.Context, q *biz.ListQuery) ([]*biz.Movie, error) {
	t, err := lookupTable(q.List.Kind)
	if err != nil {
		return nil, err
	}
	column, ok := sortColumns[q.Field]
	if !ok {
		return nil, biz.Validation("sortBy", fmt.Sprintf("unknown sort field %q", q.Field))
	}
	direction := "ASC"
	if q.Order == biz.OrderDesc {
		direction = "DESC"
	}

	db := r.data.db.WithContext(ctx).
		Model(&Movie{}).
		Distinct("movies.*").
		Joins(fmt.Sprintf("JOIN %s ON %s.%s = movies.id", t.table, t.table, t.joinKey))
	if t.scopeKey != "" && q.List.CuratedListID != "" {
		db = db.Where(fmt.Sprintf("%s.%s = ?", t.table, t.scopeKey), q.List.CuratedListID)
	}

	var dbMovies []Movie
	err = db.Order(column + " " + direction).Order("movies.title").Find(&dbMovies).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list %s movies: %w", q.List.Kind, err)
	}
	return moviesToBiz(dbMovies), nil
}

func (t membershipTable) columns() []string {
	cols := []string{"id", t.joinKey}
	if t.scopeKey != "" {
		cols = append(cols, t.scopeKey)
	}
	return cols
}
