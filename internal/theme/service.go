package theme

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"salon-api/internal/models"
)

// Store is the persistence the theme needs. It is satisfied by
// *resource.MongoRepository[models.Theme].
type Store interface {
	First(ctx context.Context) (*models.Theme, error)
	Insert(ctx context.Context, doc *models.Theme) error
	Update(ctx context.Context, id primitive.ObjectID, doc *models.Theme) error
}

// Service gives access to the single theme document.
type Service struct {
	store Store
	log   *slog.Logger
	now   func() time.Time
}

func NewService(store Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log, now: time.Now}
}

// Current returns the theme, or nil when none has been stored.
func (s *Service) Current(ctx context.Context) (*models.Theme, error) {
	return s.store.First(ctx)
}

// EnsureDefault stores the default palette unless a theme already exists.
// It reports whether a document was created.
func (s *Service) EnsureDefault(ctx context.Context) (bool, error) {
	existing, err := s.store.First(ctx)
	if err != nil {
		return false, err
	}
	if existing != nil {
		s.log.Info("theme already exists", slog.String("theme_id", existing.ID.Hex()))
		return false, nil
	}

	theme := models.DefaultTheme()
	now := s.timestamp()
	theme.Base = models.Base{ID: primitive.NewObjectID(), CreatedAt: now, UpdatedAt: now}
	if err := s.store.Insert(ctx, &theme); err != nil {
		return false, err
	}
	s.log.Info("theme created", slog.String("theme_id", theme.ID.Hex()))
	return true, nil
}

// Save writes theme back, keeping its id and creation time.
func (s *Service) Save(ctx context.Context, theme *models.Theme) error {
	theme.UpdatedAt = s.timestamp()
	return s.store.Update(ctx, theme.ID, theme)
}

func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}
