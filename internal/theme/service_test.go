package theme

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"salon-api/internal/models"
)

type memStore struct {
	docs     []models.Theme
	firstErr error
}

func (m *memStore) First(ctx context.Context) (*models.Theme, error) {
	if m.firstErr != nil {
		return nil, m.firstErr
	}
	if len(m.docs) == 0 {
		return nil, nil
	}
	doc := m.docs[0]
	return &doc, nil
}

func (m *memStore) Insert(ctx context.Context, doc *models.Theme) error {
	m.docs = append(m.docs, *doc)
	return nil
}

func (m *memStore) Update(ctx context.Context, id primitive.ObjectID, doc *models.Theme) error {
	for i := range m.docs {
		if m.docs[i].ID == id {
			m.docs[i] = *doc
			return nil
		}
	}
	return errors.New("missing")
}

func newTestService(store Store) *Service {
	return NewService(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestEnsureDefaultIsIdempotent(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store)
	ctx := context.Background()

	created, err := svc.EnsureDefault(ctx)
	if err != nil || !created {
		t.Fatalf("first EnsureDefault: created=%v err=%v", created, err)
	}
	created, err = svc.EnsureDefault(ctx)
	if err != nil || created {
		t.Fatalf("second EnsureDefault: created=%v err=%v", created, err)
	}

	if len(store.docs) != 1 {
		t.Fatalf("expected exactly one theme, got %d", len(store.docs))
	}
	got := store.docs[0]
	if got.ID.IsZero() || got.CreatedAt.IsZero() {
		t.Fatalf("expected server-assigned id and timestamps, got %+v", got.Base)
	}
	if got.Palette != models.DefaultTheme().Palette {
		t.Fatalf("unexpected palette %+v", got.Palette)
	}
}

func TestEnsureDefaultKeepsExistingTheme(t *testing.T) {
	existing := models.Theme{Base: models.Base{ID: primitive.NewObjectID()}, Palette: models.Palette{
		Primary:   models.Color{Main: "#000"},
		Secondary: models.Color{Main: "#111"},
		Error:     models.Color{Main: "#222"},
	}}
	store := &memStore{docs: []models.Theme{existing}}

	created, err := newTestService(store).EnsureDefault(context.Background())
	if err != nil || created {
		t.Fatalf("EnsureDefault: created=%v err=%v", created, err)
	}
	if len(store.docs) != 1 || store.docs[0].Palette.Primary.Main != "#000" {
		t.Fatalf("existing theme changed: %+v", store.docs)
	}
}

func TestEnsureDefaultPropagatesStoreError(t *testing.T) {
	boom := errors.New("boom")
	_, err := newTestService(&memStore{firstErr: boom}).EnsureDefault(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}
