// Package web embeds the browser client served by the static module.
package web

import (
	"embed"
	"io/fs"
)

//go:embed public
var public embed.FS

// Public returns the client files rooted at public/.
func Public() fs.FS {
	sub, err := fs.Sub(public, "public")
	if err != nil {
		panic(err)
	}
	return sub
}
