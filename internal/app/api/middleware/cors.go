package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/fatflowers/storefront/pkg/config"
)

// CORS allows browser storefront clients and provider callbacks to reach the
// public function routes. Preflights are answered with 200. An empty
// allow-list admits every origin.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	c := cors.Config{
		AllowMethods:              []string{http.MethodPost, http.MethodOptions},
		AllowHeaders:              []string{"Content-Type", "Authorization"},
		ExposeHeaders:             []string{HeaderRequestID},
		MaxAge:                    12 * time.Hour,
		OptionsResponseStatusCode: http.StatusOK,
	}
	if len(cfg.AllowedOrigins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.AllowedOrigins
	}
	return cors.New(c)
}
