package router

import (
	"github.com/oksasatya/go-noticeboard/config"
	"github.com/oksasatya/go-noticeboard/internal/container"
	handlers "github.com/oksasatya/go-noticeboard/internal/interface/http"
	"github.com/oksasatya/go-noticeboard/internal/router/modules"
)

// InitModules wires handlers from the container and adds every module to the registry.
// Call once during startup, before RegisterAll.
func InitModules(r *Registry, ct *container.Container) {
	cfg := ct.Config

	authHandler := handlers.NewAuthHandler(ct.AuthService(), ct.Logger)
	noticeHandler := handlers.NewNoticeHandler(ct.NoticeService(), ct.Logger)

	r.Add(modules.NewAuthModule(authHandler, ct.RateLimit))
	r.Add(modules.NewNoticeModule(noticeHandler, ct.RateLimit))

	uploadDir := ""
	if cfg.UploadBackend == config.UploadLocal {
		uploadDir = cfg.UploadDir
	}
	r.Add(modules.NewStaticModule(uploadDir))

	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(ct.RateLimit))
	}
}
