package metadata

import (
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"voltid/pkg/requestcontext"
)

// ClientMetadata extracts the client IP and User-Agent and stores them, plus a
// short device summary, on the request context. Apply it early in the chain.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("User-Agent")
		ctx := requestcontext.WithClientMetadata(r.Context(), ClientIPFromRequest(r), raw, DeviceSummary(raw))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// DeviceSummary renders a User-Agent as "browser on os", e.g. "Chrome on Android 14".
// Bots are tagged so audit consumers can filter them.
func DeviceSummary(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	ua := useragent.New(raw)
	browser, _ := ua.Browser()
	if browser == "" {
		browser = "unknown"
	}
	os := ua.OS()
	if os == "" {
		os = "unknown"
	}
	summary := browser + " on " + os
	switch {
	case ua.Bot():
		summary += " (bot)"
	case ua.Mobile():
		summary += " (mobile)"
	}
	return summary
}

// ClientIPFromRequest extracts the real client IP, honouring proxy headers.
func ClientIPFromRequest(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if addr := r.RemoteAddr; addr != "" {
		if idx := strings.LastIndex(addr, ":"); idx != -1 {
			return addr[:idx]
		}
		return addr
	}
	return "unknown"
}
