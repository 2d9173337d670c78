package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotice_HasContent(t *testing.T) {
	text, empty, img := "hello", "", "/uploads/1-abcdef12.png"
	tests := []struct {
		name string
		n    Notice
		want bool
	}{
		{"nothing", Notice{}, false},
		{"empty strings", Notice{Text: &empty, Image: &empty}, false},
		{"text only", Notice{Text: &text}, true},
		{"image only", Notice{Image: &img}, true},
		{"both", Notice{Text: &text, Image: &img}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.n.HasContent())
		})
	}
}
