package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/deviceatlas/pkg/deviceatlas"
	"github.com/dmitrymomot/deviceatlas/pkg/httpserver"
	"github.com/dmitrymomot/deviceatlas/pkg/logger"
	"github.com/dmitrymomot/deviceatlas/pkg/requestid"
)

// deviceResponse is the JSON body of a lookup.
type deviceResponse struct {
	UserAgent  string         `json:"user_agent"`
	Properties map[string]any `json:"properties"`
	Matched    string         `json:"matched"`
	Unmatched  string         `json:"unmatched"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func newRouter(atlas *deviceatlas.Atlas, log *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", httpserver.HealthCheckHandler(log))

	r.Group(func(r chi.Router) {
		r.Use(deviceatlas.Middleware(atlas))
		r.Get("/device", deviceHandler(atlas, log))
	})

	return r
}

// deviceHandler resolves ?ua= or, when absent, the request's own User-Agent.
// Repeated ?property= parameters restrict the lookup to those properties.
// The header User-Agent is only resolved when neither parameter is given.
func deviceHandler(atlas *deviceatlas.Atlas, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		q := r.URL.Query()
		ua := r.UserAgent()
		if q.Has("ua") {
			ua = q.Get("ua")
		}

		ctx := r.Context()
		var d deviceatlas.Device
		switch props := q["property"]; {
		case len(props) > 0:
			var err error
			d, err = atlas.Properties(ua, props...)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
				return
			}
			ctx = deviceatlas.WithContext(ctx, d)
		case q.Has("ua"):
			d = atlas.Device(ua)
			ctx = deviceatlas.WithContext(ctx, d)
		default:
			d = deviceatlas.FromContext(ctx)
		}

		log.DebugContext(ctx, "device resolved",
			logger.UserAgent(ua),
			logger.Matched(d.Matched()),
			logger.Count("properties", len(d.Properties())),
			logger.Duration(time.Since(start)),
		)

		writeJSON(w, http.StatusOK, deviceResponse{
			UserAgent:  ua,
			Properties: d.Properties(),
			Matched:    d.Matched(),
			Unmatched:  d.Unmatched(),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
