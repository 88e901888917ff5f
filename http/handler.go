package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/kvgate/kvgate"
	"github.com/kvgate/kvgate/audit"
)

// Store is the backend read surface the routes execute against.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	HGet(ctx context.Context, key, field string) (string, bool, error)
	HGetAll(ctx context.Context, key string) (map[string]string, error)
}

// CredentialValidator checks a username/password pair against the backend.
// The bool reports whether the credentials were accepted; a non-nil error
// means the check itself failed (backend unreachable, timeout), which is
// distinct from a denial even though both reject the request.
type CredentialValidator func(ctx context.Context, username, password string) (bool, error)

// CORSConfig holds cross-origin settings for the router.
type CORSConfig struct {
	Enabled        bool     `mapstructure:"enabled"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
	MaxAge         int      `mapstructure:"max_age"`
}

// HandlerConfig configures the gateway routes.
type HandlerConfig struct {
	Validator CredentialValidator
	CORS      CORSConfig
	Audit     *audit.Log
}

// Handler provides the HTTP handlers for the gateway's store reads.
type Handler struct {
	config HandlerConfig
	store  Store
}

// NewHandler creates a Handler with the given configuration and store.
func NewHandler(config *HandlerConfig, store Store) *Handler {
	return &Handler{
		config: *config,
		store:  store,
	}
}

// Router returns the configured gateway router. Every route requires Basic
// auth; CORS applies before authentication so preflight requests succeed.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestLogger)
	if h.config.Audit != nil {
		r.Use(AuditRecorder(h.config.Audit))
	}

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: h.config.CORS.AllowedOrigins,
			AllowedMethods: h.config.CORS.AllowedMethods,
			AllowedHeaders: h.config.CORS.AllowedHeaders,
			MaxAge:         h.config.CORS.MaxAge,
		}))
	}

	r.Group(func(r chi.Router) {
		r.Use(BasicAuth(h.config.Validator))
		r.Get("/GET/{key}", h.handleGet)
		r.Get("/MGET/{key}/{field}", h.handleHGet)
		r.Get("/MGETALL/{key}", h.handleHGetAll)
	})

	return r
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	format := kvgate.DetectFormat(r.Header.Get("Accept"))

	var resp kvgate.ScalarResponse
	val, ok, err := h.store.Get(r.Context(), key)
	switch {
	case err != nil:
		resp = kvgate.ScalarResponse{Error: kvgate.String(err.Error())}
	case ok:
		resp = kvgate.ScalarResponse{Success: true, Result: kvgate.String(val)}
	default:
		// Key absent: still a successful read.
		resp = kvgate.ScalarResponse{Success: true}
	}

	WriteResponse(w, resp, format)
}

func (h *Handler) handleHGet(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	field := chi.URLParam(r, "field")
	format := kvgate.DetectFormat(r.Header.Get("Accept"))

	var resp kvgate.FieldResponse
	val, ok, err := h.store.HGet(r.Context(), key, field)
	switch {
	case err != nil:
		resp = kvgate.FieldResponse{Error: kvgate.String(err.Error())}
	case ok:
		resp = kvgate.FieldResponse{Success: true, Value: kvgate.String(val)}
	default:
		resp = kvgate.FieldResponse{Success: true}
	}

	WriteResponse(w, resp, format)
}

func (h *Handler) handleHGetAll(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	format := kvgate.DetectFormat(r.Header.Get("Accept"))

	var resp kvgate.HashResponse
	fields, err := h.store.HGetAll(r.Context(), key)
	if err != nil {
		resp = kvgate.HashResponse{Error: kvgate.String(err.Error())}
	} else {
		resp = kvgate.HashResponse{Success: true, Fields: fields}
	}

	WriteResponse(w, resp, format)
}
