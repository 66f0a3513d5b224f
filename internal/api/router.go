package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"salon-api/internal/auth"
	"salon-api/internal/middleware"
	"salon-api/internal/models"
	"salon-api/internal/resource"
	"salon-api/internal/theme"
	"salon-api/internal/transport"
	"salon-api/internal/validation"
)

const APIPrefix = "/v1"

type Deps struct {
	Appointments    resource.Repository[models.Appointment]
	Services        resource.Repository[models.Service]
	ContactRequests resource.Repository[models.ContactRequest]
	Emails          resource.Repository[models.Email]
	Theme           *theme.Service
	Validator       *validation.Validator
	Auth            *auth.Manager
	Log             *slog.Logger
	FrontendOrigins []string
	RequestTimeout  time.Duration
}

type crudHandler interface {
	LoadByID(next http.Handler) http.Handler
	FindOne(w http.ResponseWriter, r *http.Request)
	FindAll(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

// guard returns the middleware protecting an action that needs perm. A nil
// guard leaves every action public.
type guard func(perm auth.Permission) []func(http.Handler) http.Handler

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(d.Log))
	r.Use(middleware.Recover(d.Log))
	r.Use(middleware.CORS(d.FrontendOrigins))
	if d.RequestTimeout > 0 {
		r.Use(chiMiddleware.Timeout(d.RequestTimeout))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		transport.WriteError(w, http.StatusNotFound, "not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		transport.WriteError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
	})

	protect := func(perm auth.Permission) []func(http.Handler) http.Handler {
		return []func(http.Handler) http.Handler{
			middleware.Authenticate(d.Auth, d.Log),
			middleware.RequirePermission(perm, d.Log),
		}
	}

	r.Route(APIPrefix, func(api chi.Router) {
		api.Get("/", func(w http.ResponseWriter, r *http.Request) {
			transport.WriteJSON(w, http.StatusOK, map[string]string{
				"message": "Welcome to version 1 of the salon API!",
			})
		})

		mountCRUD(api, "/appointments", resource.NewHandler[models.Appointment](
			d.Appointments, d.Validator, d.Log, "appointment", APIPrefix+"/appointments"), nil)
		mountCRUD(api, "/services", resource.NewHandler[models.Service](
			d.Services, d.Validator, d.Log, "service", APIPrefix+"/services"), protect)
		mountCRUD(api, "/contactRequests", resource.NewHandler[models.ContactRequest](
			d.ContactRequests, d.Validator, d.Log, "contact request", APIPrefix+"/contactRequests"), nil)
		mountCRUD(api, "/emails", resource.NewHandler[models.Email](
			d.Emails, d.Validator, d.Log, "email", APIPrefix+"/emails"), nil)

		themes := theme.NewHandler(d.Theme, d.Validator, d.Log)
		api.Route("/theme", func(tr chi.Router) {
			tr.Get("/", themes.FindOne)
			tr.With(protect(auth.PermUpdate)...).Put("/", themes.Update)
		})
	})

	return r
}

// mountCRUD registers list, create and the item routes under path. Item
// routes load the document before any guard runs, so an unknown id is
// always 404.
func mountCRUD(r chi.Router, path string, h crudHandler, g guard) {
	with := func(perm auth.Permission) []func(http.Handler) http.Handler {
		if g == nil {
			return nil
		}
		return g(perm)
	}

	r.Route(path, func(cr chi.Router) {
		cr.Get("/", h.FindAll)
		cr.With(with(auth.PermCreate)...).Post("/", h.Create)

		cr.Route("/{id}", func(ir chi.Router) {
			ir.Use(h.LoadByID)
			ir.With(with(auth.PermRead)...).Get("/", h.FindOne)
			ir.With(with(auth.PermUpdate)...).Put("/", h.Update)
			ir.With(with(auth.PermDelete)...).Delete("/", h.Delete)
		})
	})
}
