package data

import (
	"time"
)

// Movie represents the movies table
type Movie struct {
	ID          string  `gorm:"primaryKey;size:64"`
	ExternalID  int64   `gorm:"column:external_id;uniqueIndex;not null"`
	Title       string  `gorm:"not null;size:255"`
	Genre       string  `gorm:"size:255;index:idx_movies_genre"`
	Actors      string  `gorm:"size:512"`
	ReleaseYear *int    `gorm:"column:release_year;index:idx_movies_release_year"`
	Rating      float64 `gorm:"not null;default:0;index:idx_movies_rating"`
	Description string  `gorm:"type:text"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName overrides the table name
func (Movie) TableName() string {
	return "movies"
}

// Watchlist represents the watchlist table
type Watchlist struct {
	ID        string    `gorm:"primaryKey;size:64"`
	MovieID   string    `gorm:"not null;size:64;uniqueIndex:uq_watchlist_movie"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Movie Movie `gorm:"foreignKey:MovieID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Watchlist) TableName() string {
	return "watchlist"
}

// Wishlist represents the wishlist table
type Wishlist struct {
	ID        string    `gorm:"primaryKey;size:64"`
	MovieID   string    `gorm:"not null;size:64;uniqueIndex:uq_wishlist_movie"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Movie Movie `gorm:"foreignKey:MovieID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Wishlist) TableName() string {
	return "wishlist"
}

// CuratedList represents the curated_lists table
type CuratedList struct {
	ID          string    `gorm:"primaryKey;size:64"`
	Name        string    `gorm:"not null;size:255"`
	Slug        string    `gorm:"not null;size:255;uniqueIndex"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (CuratedList) TableName() string {
	return "curated_lists"
}

// CuratedListItem represents the curated_list_items table
type CuratedListItem struct {
	ID            string    `gorm:"primaryKey;size:64"`
	CuratedListID string    `gorm:"not null;size:64;uniqueIndex:uq_curated_item_list_movie"`
	MovieID       string    `gorm:"not null;size:64;uniqueIndex:uq_curated_item_list_movie"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`

	CuratedList CuratedList `gorm:"foreignKey:CuratedListID;references:ID;constraint:OnDelete:CASCADE"`
	Movie       Movie       `gorm:"foreignKey:MovieID;references:ID;constraint:OnDelete:CASCADE"`
}

func (CuratedListItem) TableName() string {
	return "curated_list_items"
}

// Review represents the reviews table
type Review struct {
	ID         string    `gorm:"primaryKey;size:64"`
	MovieID    string    `gorm:"not null;size:64;index:idx_reviews_movie_id"`
	Rating     float64   `gorm:"not null;check:chk_reviews_rating,rating >= 0 AND rating <= 10"`
	ReviewText string    `gorm:"column:review_text;not null;size:500"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`

	Movie Movie `gorm:"foreignKey:MovieID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Review) TableName() string {
	return "reviews"
}

// models lists every table for AutoMigrate, parents first
var models = []interface{}{
	&Movie{},
	&Watchlist{},
	&Wishlist{},
	&CuratedList{},
	&CuratedListItem{},
	&Review{},
}
