package modules

import (
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-noticeboard/web"
)

type StaticModule struct {
	Public    fs.FS
	UploadDir string // empty when uploads are not on local disk
}

func NewStaticModule(uploadDir string) *StaticModule {
	return &StaticModule{Public: web.Public(), UploadDir: uploadDir}
}

func (m *StaticModule) Register(rg *gin.RouterGroup) {
	// served from bytes; http.FileServer would redirect /index.html to /
	rg.GET("/", func(c *gin.Context) {
		page, err := fs.ReadFile(m.Public, "index.html")
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	})

	pages := http.FS(m.Public)
	for _, name := range []string{"login.html", "signup.html", "upload.html"} {
		rg.StaticFileFS("/"+name, name, pages)
	}
	if js, err := fs.Sub(m.Public, "js"); err == nil {
		rg.StaticFS("/js", http.FS(js))
	}

	if m.UploadDir != "" {
		rg.Static("/uploads", m.UploadDir)
	}
}
