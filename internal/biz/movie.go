package biz

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// Outcome tells which path a reconciliation took
type Outcome int

const (
	OutcomeExisting Outcome = iota + 1
	OutcomeCreated
)

func (o Outcome) String() string {
	if o == OutcomeCreated {
		return "created"
	}
	return "existing"
}

// Reconciled is a persisted movie plus how it was obtained
type Reconciled struct {
	Movie   *Movie
	Outcome Outcome
}

// MovieUseCase resolves external movie ids to persisted movies
type MovieUseCase struct {
	repo     MovieRepo
	provider MetadataProvider
	log      *log.Helper
}

// NewMovieUseCase creates a new MovieUseCase instance
func NewMovieUseCase(repo MovieRepo, provider MetadataProvider, logger log.Logger) *MovieUseCase {
	return &MovieUseCase{
		repo:     repo,
		provider: provider,
		log:      log.NewHelper(logger),
	}
}

// Reconcile returns the local movie for externalID, fetching and storing it
// on first reference.
func (uc *MovieUseCase) Reconcile(ctx context.Context, externalID int64) (*Reconciled, error) {
	if externalID <= 0 {
		return nil, Validation("movieId", "must be a positive provider id")
	}

	existing, err := uc.repo.GetMovieByExternalID(ctx, externalID)
	if err == nil {
		return &Reconciled{Movie: existing, Outcome: OutcomeExisting}, nil
	}
	if !IsNotFound(err) {
		return nil, fmt.Errorf("failed to look up movie: %w", err)
	}

	details, err := uc.provider.FetchDetails(ctx, externalID)
	if err != nil {
		return nil, err
	}

	movieID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate movie ID: %w", err)
	}

	movie := movieFromDetails(externalID, details)
	movie.ID = movieID.String()

	stored, created, err := uc.repo.CreateMovie(ctx, movie)
	if err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}
	if !created {
		// Lost a race with a concurrent first reference.
		uc.log.Infof("movie %d was created concurrently, reusing %s", externalID, stored.ID)
		return &Reconciled{Movie: stored, Outcome: OutcomeExisting}, nil
	}

	uc.log.Infof("stored movie %d as %s", externalID, stored.ID)
	return &Reconciled{Movie: stored, Outcome: OutcomeCreated}, nil
}

// movieFromDetails keys the row on the requested id, never the payload's.
func movieFromDetails(externalID int64, d *MovieDetails) *Movie {
	return &Movie{
		ExternalID:  externalID,
		Title:       d.Title,
		Genre:       strings.Join(d.Genres, ", "),
		Actors:      strings.Join(leadActors(d.Actors), ", "),
		ReleaseYear: ParseReleaseYear(d.ReleaseDate),
		Rating:      d.Rating,
		Description: d.Overview,
	}
}

// MaxActors is how many cast names are kept per movie
const MaxActors = 5

func leadActors(actors []string) []string {
	if len(actors) > MaxActors {
		return actors[:MaxActors]
	}
	return actors
}

// ParseReleaseYear reads the leading year of a "YYYY-MM-DD" date.
func ParseReleaseYear(date string) *int {
	head, _, _ := strings.Cut(strings.TrimSpace(date), "-")
	if head == "" {
		return nil
	}
	year, err := strconv.Atoi(head)
	if err != nil {
		return nil
	}
	return &year
}
