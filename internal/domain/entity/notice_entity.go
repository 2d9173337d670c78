package entity

import "time"

// DefaultUsername is recorded when a notice arrives without an author.
const DefaultUsername = "guest"

// Notice is an immutable text and/or image posting.
// Image is a server-relative path, an object URL or an inline data URI.
type Notice struct {
	ID        string
	Username  string
	Text      *string
	Image     *string
	CreatedAt time.Time
}

// HasContent reports whether the notice carries text or an image.
func (n *Notice) HasContent() bool {
	return (n.Text != nil && *n.Text != "") || (n.Image != nil && *n.Image != "")
}
