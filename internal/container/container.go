package container

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-noticeboard/config"
	"github.com/oksasatya/go-noticeboard/internal/application"
	repo "github.com/oksasatya/go-noticeboard/internal/domain/repository"
	"github.com/oksasatya/go-noticeboard/internal/infrastructure/search"
	"github.com/oksasatya/go-noticeboard/internal/interface/middleware"
	"github.com/oksasatya/go-noticeboard/pkg/helpers"
)

// Container holds the constructed components shared by the router modules.
// Optional clients (Redis, Publisher, Search) are nil when disabled.
type Container struct {
	Config  *config.Config
	Logger  *logrus.Logger
	Users   repo.UserRepository
	Notices repo.NoticeRepository
	Images  repo.ImageStorage

	Redis     *redis.Client
	Publisher *helpers.RabbitPublisher
	Search    *search.NoticeIndex
}

func (c *Container) AuthService() *application.AuthService {
	return application.NewAuthService(c.Users, c.Config.BcryptCost, c.Logger)
}

func (c *Container) NoticeService() *application.NoticeService {
	svc := application.NewNoticeService(c.Notices, c.Images, c.Logger)
	// typed nils must not leak into the interfaces
	if c.Publisher != nil {
		svc.Events = c.Publisher
	}
	if c.Search != nil {
		svc.Search = c.Search
	}
	return svc
}

// RateLimit returns a per-IP limiter: Redis-backed when a client is set,
// in-memory otherwise, pass-through when rate limiting is disabled.
func (c *Container) RateLimit(max int, window time.Duration) gin.HandlerFunc {
	if !c.Config.RateLimitEnabled {
		return func(ctx *gin.Context) { ctx.Next() }
	}
	var allow middleware.AllowFunc
	if c.Config.RateLimitBypassPrivate {
		allow = middleware.AllowPrivateIP()
	}
	if c.Redis != nil {
		return middleware.RateLimit(c.Redis, max, window, middleware.KeyByIPAndPath(), allow)
	}
	return middleware.MemoryRateLimit(middleware.NewMemoryLimiter(max, window), middleware.KeyByIPAndPath(), allow)
}
