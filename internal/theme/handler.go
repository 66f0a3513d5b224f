package theme

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"salon-api/internal/apperr"
	"salon-api/internal/httpx"
	"salon-api/internal/middleware"
	"salon-api/internal/resource"
	"salon-api/internal/transport"
	"salon-api/internal/validation"
)

type Handler struct {
	service *Service
	val     *validation.Validator
	log     *slog.Logger
}

func NewHandler(service *Service, val *validation.Validator, log *slog.Logger) *Handler {
	return &Handler{
		service: service,
		val:     val,
		log:     log,
	}
}

// FindOne writes the theme, or JSON null when there is none.
func (h *Handler) FindOne(w http.ResponseWriter, r *http.Request) {
	log := middleware.RequestLogger(h.log, r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	theme, err := h.service.Current(ctx)
	if err != nil {
		transport.WriteFailure(w, log, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, theme)
}

// Update merges the body into the stored theme. With no stored theme the
// request succeeds without writing anything.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := middleware.RequestLogger(h.log, r)

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	theme, err := h.service.Current(ctx)
	if err != nil {
		transport.WriteFailure(w, log, err)
		return
	}
	if theme == nil {
		log.Warn("theme update: no theme stored")
		transport.NoContent(w)
		return
	}

	base := theme.Base
	fields, err := httpx.DecodeJSONFields(r.Body, theme)
	if err != nil {
		transport.WriteFailure(w, log, apperr.BadRequest("invalid json", err))
		return
	}
	theme.Base = base

	if err := resource.ValidateFields(h.val, theme, fields); err != nil {
		transport.WriteFailure(w, log, err)
		return
	}

	if err := h.service.Save(ctx, theme); err != nil {
		transport.WriteFailure(w, log, err)
		return
	}

	log.Info("theme update: ok", slog.String("theme_id", theme.ID.Hex()))
	transport.NoContent(w)
}
