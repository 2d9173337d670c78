package web

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublic_ContainsClient(t *testing.T) {
	pub := Public()
	for _, name := range []string{"index.html", "login.html", "signup.html", "upload.html", "js/display.js", "js/auth.js", "js/upload.js"} {
		_, err := fs.Stat(pub, name)
		assert.NoError(t, err, name)
	}

	index, err := fs.ReadFile(pub, "index.html")
	require.NoError(t, err)
	assert.Contains(t, string(index), "/js/display.js")
}
