package httpserver

import (
	"net/http"
	"time"

	"voltid/internal/platform/config"
)

// New builds the API server. Writes get a margin over the per-request
// timeout so the timeout middleware can still send its error body.
func New(cfg config.Server, handler http.Handler) *http.Server {
	write := cfg.RequestTimeout + 5*time.Second
	if cfg.RequestTimeout <= 0 {
		write = 60 * time.Second
	}
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      write,
		IdleTimeout:       2 * time.Minute,
	}
}
