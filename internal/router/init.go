package router

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/screenlog/movie-catalog-api/config"
	"github.com/screenlog/movie-catalog-api/internal/application"
	"github.com/screenlog/movie-catalog-api/internal/infrastructure/postgres"
	handlers "github.com/screenlog/movie-catalog-api/internal/interface/http"
	"github.com/screenlog/movie-catalog-api/internal/router/modules"
	"github.com/screenlog/movie-catalog-api/pkg/helpers"
	"github.com/screenlog/movie-catalog-api/pkg/mailer"
)

// Deps carries everything the modules need. All dependencies are passed
// explicitly; there is no shared global state.
type Deps struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	Pool   *pgxpool.Pool
	Redis  *redis.Client
	GCS    *storage.Client
	ES     *elasticsearch.Client
	Tokens *helpers.TokenManager
	Mailer *mailer.VerificationQueue
}

// InitModules wires repositories, services and handlers, then registers
// every feature module with the registry. Called once during startup.
func InitModules(r *Registry, d Deps) {
	users := postgres.NewUserRepository(d.Pool)
	movies := postgres.NewMovieRepository(d.Pool)
	ratings := postgres.NewRatingRepository(d.Pool)
	comments := postgres.NewCommentRepository(d.Pool)

	authSvc := application.NewAuthService(users, d.Tokens, verificationSender(d.Mailer), d.Logger, d.Cfg.VerificationTTL)
	movieSvc := application.NewMovieService(movies, d.Logger, d.GCS, d.Cfg.GCSBucket, d.ES, d.Cfg.ESMoviesIndex)
	ratingSvc := application.NewRatingService(ratings, movies, d.Logger)
	commentSvc := application.NewCommentService(comments, movies, d.Logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, d.Logger), authSvc, d.Redis))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(d.Logger), authSvc, d.Redis))
	r.Add(modules.NewMovieModule(handlers.NewMovieHandler(movieSvc, d.Logger), authSvc, d.Redis))
	r.Add(modules.NewRatingModule(handlers.NewRatingHandler(ratingSvc, d.Logger), authSvc, d.Redis))
	r.Add(modules.NewCommentModule(handlers.NewCommentHandler(commentSvc, d.Logger), authSvc, d.Redis))
}

// verificationSender keeps a nil queue from becoming a non-nil interface.
func verificationSender(q *mailer.VerificationQueue) application.VerificationSender {
	if q == nil {
		return nil
	}
	return q
}
