package events

import (
	"time"

	"github.com/oksasatya/go-noticeboard/internal/domain/entity"
)

// NoticeCreatedType is the AMQP message type for NoticeCreated.
const NoticeCreatedType = "notice.created"

// NoticeCreated is the JSON payload put on the RabbitMQ queue after a notice is stored.
// Image bytes are never carried; inline images can approach the body cap.
type NoticeCreated struct {
	Type      string    `json:"type"`
	NoticeID  string    `json:"noticeId"`
	Username  string    `json:"username"`
	Text      string    `json:"text,omitempty"`
	HasImage  bool      `json:"hasImage"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewNoticeCreated builds the event for n.
func NewNoticeCreated(n *entity.Notice) NoticeCreated {
	ev := NoticeCreated{
		Type:      NoticeCreatedType,
		NoticeID:  n.ID,
		Username:  n.Username,
		HasImage:  n.Image != nil && *n.Image != "",
		CreatedAt: n.CreatedAt,
	}
	if n.Text != nil {
		ev.Text = *n.Text
	}
	return ev
}
