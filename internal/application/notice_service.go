package application

import (
	"context"
	"expvar"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-noticeboard/internal/domain/entity"
	repo "github.com/oksasatya/go-noticeboard/internal/domain/repository"
	"github.com/oksasatya/go-noticeboard/pkg/events"
	"github.com/oksasatya/go-noticeboard/pkg/helpers"
)

// NoNoticeText is returned as the latest text while the board is empty.
const NoNoticeText = "No notice text available."

var noticesCreatedTotal = expvar.NewInt("notices_created_total")

// EventPublisher delivers notice events; helpers.RabbitPublisher satisfies it.
type EventPublisher interface {
	PublishJSON(ctx context.Context, msgType string, body any) error
}

// NoticeSearcher answers full-text queries over notices.
type NoticeSearcher interface {
	Search(ctx context.Context, q string, size int) ([]map[string]any, error)
}

type NoticeService struct {
	Notices repo.NoticeRepository
	Images  repo.ImageStorage
	Events  EventPublisher
	Search  NoticeSearcher
	Logger  *logrus.Logger
	Now     func() time.Time
}

func NewNoticeService(notices repo.NoticeRepository, images repo.ImageStorage, logger *logrus.Logger) *NoticeService {
	return &NoticeService{Notices: notices, Images: images, Logger: logger, Now: time.Now}
}

// UploadedFile is a file received with a multipart notice.
type UploadedFile struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// LatestNotice is the public display view of the newest notice.
type LatestNotice struct {
	Text  *string `json:"text"`
	Image *string `json:"image"`
}

// CreateFromFile stores a notice whose image is an uploaded file.
// The file is written first; if the store insert then fails the file is removed.
func (s *NoticeService) CreateFromFile(ctx context.Context, username, text string, file *UploadedFile) (*entity.Notice, error) {
	n := s.newNotice(username, text)
	if file == nil && !n.HasContent() {
		return nil, ErrNoticeContentRequired
	}
	var stored string
	if file != nil {
		if s.Images == nil {
			return nil, fmt.Errorf("image storage not configured")
		}
		stored = helpers.UploadFilename(file.Filename, n.CreatedAt)
		ref, err := s.Images.Save(ctx, stored, file.ContentType, file.Body)
		if err != nil {
			return nil, fmt.Errorf("save image: %w", err)
		}
		n.Image = &ref
	}

	if err := s.Notices.Create(ctx, n); err != nil {
		if stored != "" {
			if rmErr := s.Images.Remove(ctx, stored); rmErr != nil && s.Logger != nil {
				s.Logger.WithError(rmErr).WithField("file", stored).Warn("remove orphaned upload failed")
			}
		}
		return nil, fmt.Errorf("create notice: %w", err)
	}
	s.created(ctx, n)
	return n, nil
}

// CreateFromInline stores a notice whose image is an inline encoded string, kept verbatim.
func (s *NoticeService) CreateFromInline(ctx context.Context, username, text, encodedImage string) (*entity.Notice, error) {
	n := s.newNotice(username, text)
	if encodedImage != "" {
		n.Image = &encodedImage
	}
	if !n.HasContent() {
		return nil, ErrNoticeContentRequired
	}
	if err := s.Notices.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("create notice: %w", err)
	}
	s.created(ctx, n)
	return n, nil
}

// GetLatest returns the newest notice, or the empty-board placeholder.
func (s *NoticeService) GetLatest(ctx context.Context) (LatestNotice, error) {
	n, err := s.Notices.Latest(ctx)
	if err != nil {
		if isNotFound(err) {
			text := NoNoticeText
			return LatestNotice{Text: &text}, nil
		}
		return LatestNotice{}, fmt.Errorf("latest notice: %w", err)
	}
	return LatestNotice{Text: n.Text, Image: n.Image}, nil
}

// ListAll returns every notice newest first; never nil.
func (s *NoticeService) ListAll(ctx context.Context) ([]entity.Notice, error) {
	list, err := s.Notices.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}
	if list == nil {
		list = []entity.Notice{}
	}
	return list, nil
}

// SearchNotices runs a full-text query; without a searcher it returns no hits.
func (s *NoticeService) SearchNotices(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if q == "" {
		return nil, ErrSearchQueryRequired
	}
	if s.Search == nil {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	hits, err := s.Search.Search(ctx, q, size)
	if err != nil {
		return nil, fmt.Errorf("search notices: %w", err)
	}
	return hits, nil
}

func (s *NoticeService) newNotice(username, text string) *entity.Notice {
	if username == "" {
		username = entity.DefaultUsername
	}
	n := &entity.Notice{
		ID:        uuid.NewString(),
		Username:  username,
		CreatedAt: s.Now().UTC(),
	}
	if text != "" {
		n.Text = &text
	}
	return n
}

// created records metrics and publishes the event; publish failures never fail the request.
func (s *NoticeService) created(ctx context.Context, n *entity.Notice) {
	noticesCreatedTotal.Add(1)
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"notice_id": n.ID, "username": n.Username}).Info("notice created")
	}
	if s.Events == nil {
		return
	}
	if err := s.Events.PublishJSON(ctx, events.NoticeCreatedType, events.NewNoticeCreated(n)); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("notice_id", n.ID).Warn("publish notice event failed")
	}
}
