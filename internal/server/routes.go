package server

import (
	"context"
	"net/http"

	"moviecurator/internal/service"

	khttp "github.com/go-kratos/kratos/v2/transport/http"
)

const (
	OperationSearchMovies          = "/moviecurator.v1.MovieService/SearchMovies"
	OperationAddToWatchlist        = "/moviecurator.v1.MovieService/AddToWatchlist"
	OperationAddToWishlist         = "/moviecurator.v1.MovieService/AddToWishlist"
	OperationAddToCuratedList      = "/moviecurator.v1.MovieService/AddToCuratedList"
	OperationAddReview             = "/moviecurator.v1.MovieService/AddReview"
	OperationSearchByGenreAndActor = "/moviecurator.v1.MovieService/SearchByGenreAndActor"
	OperationSortMovies            = "/moviecurator.v1.MovieService/SortMovies"
	OperationTopRated              = "/moviecurator.v1.MovieService/TopRated"
	OperationHealthCheck           = "/moviecurator.v1.MovieService/HealthCheck"
	OperationCreateCuratedList     = "/moviecurator.v1.CuratedListService/CreateCuratedList"
	OperationUpdateCuratedList     = "/moviecurator.v1.CuratedListService/UpdateCuratedList"
)

// RegisterMovieHTTPServer mounts the movie routes
func RegisterMovieHTTPServer(s *khttp.Server, svc *service.MovieService) {
	r := s.Route("/")
	r.GET("/api/movies/search", handle(OperationSearchMovies, http.StatusOK, bindQuery[service.SearchMoviesRequest], svc.SearchMovies))
	r.POST("/api/movies/watchlist", handle(OperationAddToWatchlist, http.StatusCreated, bindBody[service.AddToListRequest], svc.AddToWatchlist))
	r.POST("/api/movies/wishlist", handle(OperationAddToWishlist, http.StatusCreated, bindBody[service.AddToListRequest], svc.AddToWishlist))
	r.POST("/api/movies/curated-list", handle(OperationAddToCuratedList, http.StatusCreated, bindBody[service.AddToListRequest], svc.AddToCuratedList))
	r.POST("/api/movies/{movieId}/reviews", handle(OperationAddReview, http.StatusCreated, bindVarsAndBody[service.AddReviewRequest], svc.AddReview))
	r.GET("/api/movies/searchByGenreAndActor", handle(OperationSearchByGenreAndActor, http.StatusOK, bindQuery[service.GenreActorRequest], svc.SearchByGenreAndActor))
	r.GET("/api/movies/sort", handle(OperationSortMovies, http.StatusOK, bindQuery[service.SortMoviesRequest], svc.SortMovies))
	r.GET("/api/movies/top5", handle(OperationTopRated, http.StatusOK, bindNone[service.TopRatedRequest], svc.TopRated))
	r.GET("/healthz", handle(OperationHealthCheck, http.StatusOK, bindNone[service.HealthCheckRequest], svc.HealthCheck))
}

// RegisterCuratedListHTTPServer mounts the curated list routes
func RegisterCuratedListHTTPServer(s *khttp.Server, svc *service.CuratedListService) {
	r := s.Route("/")
	r.POST("/api/curated-lists", handle(OperationCreateCuratedList, http.StatusCreated, bindBody[service.CreateCuratedListRequest], svc.CreateCuratedList))
	r.PUT("/api/curated-lists/{curatedListId}", handle(OperationUpdateCuratedList, http.StatusOK, bindVarsAndBody[service.UpdateCuratedListRequest], svc.UpdateCuratedList))
}

// handle adapts a service method to a kratos route, running the server
// middleware chain under the given operation name.
func handle[Req any, Reply any](operation string, status int, bind func(khttp.Context, *Req) error, call func(context.Context, *Req) (Reply, error)) khttp.HandlerFunc {
	return func(ctx khttp.Context) error {
		var in Req
		if err := bind(ctx, &in); err != nil {
			return err
		}
		khttp.SetOperation(ctx, operation)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(ctx, req.(*Req))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(status, out)
	}
}

func bindQuery[Req any](ctx khttp.Context, in *Req) error {
	return ctx.BindQuery(in)
}

func bindBody[Req any](ctx khttp.Context, in *Req) error {
	return ctx.Bind(in)
}

func bindVarsAndBody[Req any](ctx khttp.Context, in *Req) error {
	if err := ctx.Bind(in); err != nil {
		return err
	}
	// Path variables win over body fields of the same name.
	return ctx.BindVars(in)
}

func bindNone[Req any](khttp.Context, *Req) error {
	return nil
}
