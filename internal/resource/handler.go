package resource

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"salon-api/internal/apperr"
	"salon-api/internal/httpx"
	"salon-api/internal/middleware"
	"salon-api/internal/models"
	"salon-api/internal/transport"
	"salon-api/internal/validation"
)

// Entity is satisfied by pointers to the stored models, all of which embed
// models.Base.
type Entity[T any] interface {
	*T
	Meta() *models.Base
}

// Normalizer is implemented by models that clean up their fields before
// validation.
type Normalizer interface {
	Normalize()
}

type entityKey struct{}

// Handler serves the CRUD routes of one collection. Routes addressing a
// single document must be wrapped in LoadByID.
type Handler[T any, P Entity[T]] struct {
	repo     Repository[T]
	val      *validation.Validator
	log      *slog.Logger
	name     string
	basePath string
	now      func() time.Time
}

// NewHandler builds a handler for documents called name, mounted at
// basePath (used for Location headers).
func NewHandler[T any, P Entity[T]](repo Repository[T], val *validation.Validator, log *slog.Logger, name, basePath string) *Handler[T, P] {
	return &Handler[T, P]{
		repo:     repo,
		val:      val,
		log:      log,
		name:     name,
		basePath: strings.TrimSuffix(basePath, "/"),
		now:      time.Now,
	}
}

func (h *Handler[T, P]) LoadByID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := h.logWithRequest(r)
		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(chi.URLParam(r, "id")))
		if err != nil {
			transport.WriteFailure(w, log, apperr.NotFound(h.name+" not found"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		doc, err := h.repo.FindByID(ctx, id)
		if err != nil {
			transport.WriteFailure(w, log, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), entityKey{}, P(doc))))
	})
}

func (h *Handler[T, P]) FindOne(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.loaded(r)
	if !ok {
		transport.WriteFailure(w, h.logWithRequest(r), apperr.NotFound(h.name+" not found"))
		return
	}
	transport.WriteJSON(w, http.StatusOK, doc)
}

func (h *Handler[T, P]) FindAll(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := h.repo.FindAll(ctx)
	if err != nil {
		transport.WriteFailure(w, log, err)
		return
	}

	log.Info(h.name+" list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler[T, P]) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var doc T
	p := P(&doc)
	if err := httpx.DecodeJSON(r.Body, p); err != nil {
		transport.WriteFailure(w, log, apperr.BadRequest("invalid json", err))
		return
	}

	now := h.timestamp()
	*p.Meta() = models.Base{ID: primitive.NewObjectID(), CreatedAt: now, UpdatedAt: now}

	if err := Validate(h.val, p); err != nil {
		transport.WriteFailure(w, log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	if err := h.repo.Insert(ctx, p); err != nil {
		transport.WriteFailure(w, log, err)
		return
	}

	id := p.Meta().ID.Hex()
	log.Info(h.name+" create: ok", slog.String("id", id))
	w.Header().Set("Location", httpx.BaseURL(r)+h.basePath+"/"+id)
	transport.WriteJSON(w, http.StatusCreated, p)
}

// Update merges the request body over the loaded document, so fields absent
// from the body keep their stored values and are not re-validated.
func (h *Handler[T, P]) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	doc, ok := h.loaded(r)
	if !ok {
		transport.WriteFailure(w, log, apperr.NotFound(h.name+" not found"))
		return
	}

	meta := *doc.Meta()
	fields, err := httpx.DecodeJSONFields(r.Body, doc)
	if err != nil {
		transport.WriteFailure(w, log, apperr.BadRequest("invalid json", err))
		return
	}
	meta.UpdatedAt = h.timestamp()
	*doc.Meta() = meta

	if err := ValidateFields(h.val, doc, fields); err != nil {
		transport.WriteFailure(w, log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	if err := h.repo.Update(ctx, meta.ID, doc); err != nil {
		transport.WriteFailure(w, log, err)
		return
	}

	log.Info(h.name+" update: ok", slog.String("id", meta.ID.Hex()))
	transport.NoContent(w)
}

func (h *Handler[T, P]) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	doc, ok := h.loaded(r)
	if !ok {
		transport.WriteFailure(w, log, apperr.NotFound(h.name+" not found"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id := doc.Meta().ID
	if err := h.repo.Delete(ctx, id); err != nil {
		transport.WriteFailure(w, log, err)
		return
	}

	log.Info(h.name+" delete: ok", slog.String("id", id.Hex()))
	transport.NoContent(w)
}

func (h *Handler[T, P]) loaded(r *http.Request) (P, bool) {
	doc, ok := r.Context().Value(entityKey{}).(P)
	return doc, ok && doc != nil
}

// Mongo keeps millisecond precision; truncating keeps responses equal to
// what a later read returns.
func (h *Handler[T, P]) timestamp() time.Time {
	return h.now().UTC().Truncate(time.Millisecond)
}

func (h *Handler[T, P]) logWithRequest(r *http.Request) *slog.Logger {
	return middleware.RequestLogger(h.log, r).With(slog.String("resource", h.name))
}

// Validate normalises doc when it supports it and checks its declared
// constraints, reporting violations as apperr.ErrInvalid.
func Validate(val *validation.Validator, doc interface{}) error {
	if n, ok := doc.(Normalizer); ok {
		n.Normalize()
	}
	return validationFailure(val, val.Struct(doc))
}

// ValidateFields is Validate restricted to the top-level json fields listed,
// for partial updates.
func ValidateFields(val *validation.Validator, doc interface{}, fields []string) error {
	if n, ok := doc.(Normalizer); ok {
		n.Normalize()
	}
	return validationFailure(val, val.StructFields(doc, fields))
}

func validationFailure(val *validation.Validator, err error) error {
	if err == nil {
		return nil
	}
	if ve := val.ValidationErrors(err); ve != nil {
		return apperr.Invalid(httpx.ValidationDetails(ve), err)
	}
	return err
}
