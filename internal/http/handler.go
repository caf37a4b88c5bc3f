package httpapp

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cesargomez89/praiseteam/internal/app"
	"github.com/cesargomez89/praiseteam/internal/auth"
	"github.com/cesargomez89/praiseteam/internal/domain"
	"github.com/cesargomez89/praiseteam/internal/logger"
)

// WeekService is the schedule API the handlers drive. app.WeekService
// implements it.
type WeekService interface {
	List(ctx context.Context, filter app.WeekFilter) ([]domain.Week, error)
	Get(ctx context.Context, id string) (*domain.Week, error)
	Current(ctx context.Context) (*domain.Week, error)
	Upcoming(ctx context.Context, count int) ([]domain.Week, error)
	Create(ctx context.Context, fields domain.WeekFields) (*domain.Week, error)
	Update(ctx context.Context, id string, fields domain.WeekFields) (*domain.Week, error)
	Delete(ctx context.Context, id string) error
}

// MetadataService resolves a video URL. youtube.Enricher implements it.
type MetadataService interface {
	Enrich(ctx context.Context, rawURL string) (*domain.VideoMetadata, error)
}

var _ WeekService = (*app.WeekService)(nil)

type Handler struct {
	Weeks         WeekService
	Metadata      MetadataService
	Auth          *auth.Service
	Logger        *logger.Logger
	SecureCookies bool
	StartedAt     time.Time
}

func NewHandler(weeks WeekService, metadata MetadataService, authService *auth.Service, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Default()
	}
	return &Handler{
		Weeks:     weeks,
		Metadata:  metadata,
		Auth:      authService,
		Logger:    log.WithComponent("http"),
		StartedAt: time.Now(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/songs", h.ListWeeks)
		r.Get("/songs/{id}", h.GetWeek)
		r.Get("/weeks/current", h.CurrentWeek)
		r.Get("/weeks/upcoming", h.UpcomingWeeks)

		r.Post("/auth/login", h.Login)
		r.Get("/auth/verify", h.Verify)
		r.Post("/auth/logout", h.Logout)

		r.Group(func(r chi.Router) {
			r.Use(h.Auth.Middleware)
			r.Post("/songs", h.CreateWeek)
			r.Put("/songs/{id}", h.UpdateWeek)
			r.Delete("/songs/{id}", h.DeleteWeek)
			r.Post("/youtube/metadata", h.VideoMetadata)
		})
	})
}
