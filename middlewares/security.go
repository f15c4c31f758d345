package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// apiHeaders are sent on every response. The API only serves JSON, so nothing
// may be loaded, framed or sniffed from it.
var apiHeaders = [][2]string{
	{"Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'"},
	{"Cross-Origin-Resource-Policy", "same-site"},
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"Referrer-Policy", "no-referrer"},
}

// SecurityHeaders sets the API response headers. Responses to authenticated
// requests carry orders, reservations and profiles and are never cached;
// public catalog reads stay cacheable.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		for _, kv := range apiHeaders {
			h.Set(kv[0], kv[1])
		}
		if c.GetHeader("Authorization") != "" {
			h.Set("Cache-Control", "no-store")
			h.Set("Vary", "Authorization")
		}
		if c.Request.TLS != nil || strings.EqualFold(c.GetHeader("X-Forwarded-Proto"), "https") {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		c.Next()
	}
}
