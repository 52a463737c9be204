package wire

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"lms-backend/internal/adaptor"
	"lms-backend/internal/credential"
	"lms-backend/internal/data/repository"
	"lms-backend/internal/usecase"
	"lms-backend/pkg/mailer"
	"lms-backend/pkg/middleware"
	"lms-backend/pkg/storage"
	"lms-backend/pkg/token"
	"lms-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const requestTimeout = 60 * time.Second

// App holds the wired router plus the issuer so the caller can run its sweeper.
type App struct {
	Router *chi.Mux
	Issuer *credential.Issuer
}

// guards are the auth middlewares shared by every route group.
type guards struct {
	auth     func(http.Handler) http.Handler
	optional func(http.Handler) http.Handler
}

// Wiring builds every service and handler. store may be nil when no object
// storage driver is configured.
func Wiring(repo *repository.Repository, store storage.ObjectStorage, config *utils.Config, logger *zap.Logger) (*App, error) {
	codec, err := token.NewCodec(config.JWT.Secret, token.WithIssuer(config.App.Name))
	if err != nil {
		return nil, fmt.Errorf("init token codec: %w", err)
	}

	issuer := credential.NewIssuer(repo.OTP, mailer.New(config, logger), codec, logger)

	service := usecase.NewService(repo, issuer, store, config, logger)
	handler := adaptor.NewHandler(service, logger)

	g := guards{
		auth:     middleware.Authenticate(codec, repo.User, logger),
		optional: middleware.OptionalAuth(codec),
	}

	return &App{
		Router: setupRouter(handler, g, repo, config, logger),
		Issuer: issuer,
	}, nil
}

func setupRouter(
	handler *adaptor.Handler,
	g guards,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.SecureHeaders())
	r.Use(middleware.CORS(config.HTTP.CORSAllowedOrigins))
	r.Use(middleware.RateLimit(config.HTTP.RateLimitRequests, config.HTTP.RateLimitWindow))
	r.Use(chimw.Timeout(requestTimeout))

	wireAuth(r, handler.Auth, g)
	wireUser(r, handler.User, g)
	wireDepartment(r, handler.Department, g)
	wireCourse(r, handler.Course, g)
	wireLesson(r, handler.Lesson, g)
	wireEnrollment(r, handler.Enrollment, g)
	wireUpload(r, handler.Upload, g)
	wireAsset(r, handler.Asset, g)

	r.Get("/health", healthHandler(repo, logger))
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, config.App.Name+" is running", map[string]string{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Route not found")
	})

	return r
}

func healthHandler(repo *repository.Repository, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := repo.DB.Ping(ctx); err != nil {
			logger.Warn("Health check failed", zap.Error(err))
			utils.ResponseServiceUnavailable(w, "Database unavailable")
			return
		}

		utils.ResponseSuccess(w, "OK", map[string]string{"database": "up"})
	}
}
