package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-noticeboard/config"
	"github.com/oksasatya/go-noticeboard/internal/container"
	"github.com/oksasatya/go-noticeboard/internal/interface/middleware"
)

// NewEngine builds the gin engine with global middleware and every module registered.
func NewEngine(ct *container.Container) *gin.Engine {
	cfg := ct.Config

	r := gin.New()
	if err := middleware.TrustProxies(r, cfg.TrustedProxyList()); err != nil {
		if ct.Logger != nil {
			ct.Logger.WithError(err).Warn("invalid TRUSTED_PROXIES, trusting none")
		}
		_ = middleware.TrustProxies(r, nil)
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	if cfg.Env == "development" || cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}
	r.Use(cors.New(corsConfig(cfg)))
	if cfg.GzipEnabled {
		// uploaded images are already compressed
		r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/uploads"})))
	}
	r.Use(middleware.MaxBytesMiddleware(cfg.MaxBodyBytes))

	reg := NewRegistry(r)
	InitModules(reg, ct)
	reg.RegisterAll()
	return r
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if cfg.AllowAllOrigins() {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = cfg.CORSOrigins()
	c.AllowCredentials = true
	return c
}
