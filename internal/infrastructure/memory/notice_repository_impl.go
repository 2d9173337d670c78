package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/oksasatya/go-noticeboard/internal/domain/entity"
	"github.com/oksasatya/go-noticeboard/internal/domain/repository"
)

// NoticeRepository keeps notices in insertion order.
type NoticeRepository struct {
	mu      sync.RWMutex
	notices []entity.Notice
}

func NewNoticeRepository() *NoticeRepository {
	return &NoticeRepository{}
}

func (r *NoticeRepository) Create(_ context.Context, n *entity.Notice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, *n)
	return nil
}

func (r *NoticeRepository) Latest(ctx context.Context) (*entity.Notice, error) {
	list, _ := r.List(ctx)
	if len(list) == 0 {
		return nil, repository.ErrNotFound
	}
	return &list[0], nil
}

// List sorts by CreatedAt descending; equal timestamps keep the later insert first.
func (r *NoticeRepository) List(_ context.Context) ([]entity.Notice, error) {
	r.mu.RLock()
	out := make([]entity.Notice, len(r.notices))
	for i := range r.notices {
		out[len(out)-1-i] = r.notices[i]
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

var _ repository.NoticeRepository = (*NoticeRepository)(nil)
