// Package server exposes the strip cropper over HTTP.
//
// The handlers are thin I/O glue: they validate the upload, hand the
// decoded buffer to the detection pipeline, and ship the cropped buffer
// plus its metadata back out. All algorithmic work lives in
// internal/detection.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"strip-cropper/internal/detection"
	"strip-cropper/internal/storage"
)

// Server wires the detection pipeline, the crop store, and the HTTP
// handlers together. It carries no per-request state; one instance serves
// all requests concurrently.
type Server struct {
	detectCfg detection.Config
	store     *storage.Store
	maxUpload int64
	version   string
	log       zerolog.Logger
}

// New builds a Server from its collaborators.
func New(detectCfg detection.Config, store *storage.Store, maxUpload int64, version string, log zerolog.Logger) *Server {
	return &Server{
		detectCfg: detectCfg,
		store:     store,
		maxUpload: maxUpload,
		version:   version,
		log:       log,
	}
}

// Handler returns the routed HTTP handler with CORS and request logging
// applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleInfo)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/crop", s.handleCrop)
	mux.HandleFunc("/crop/save", s.handleCropSave)
	mux.HandleFunc("/crop/debug", s.handleCropDebug)

	return corsMiddleware(s.logMiddleware(mux))
}

// Run serves HTTP on addr until ctx is canceled, then shuts down
// gracefully with a short drain window.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// corsMiddleware adds permissive CORS headers and answers preflights.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
