package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/go-noticeboard/internal/domain/entity"
	"github.com/oksasatya/go-noticeboard/internal/domain/repository"
)

// Seq orders inserts that share a createdAt millisecond.
type noticeDocument struct {
	ID        string             `bson:"_id"`
	Username  string             `bson:"username"`
	Text      *string            `bson:"text,omitempty"`
	Image     *string            `bson:"image,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
	Seq       primitive.ObjectID `bson:"seq"`
}

func (d noticeDocument) toEntity() entity.Notice {
	return entity.Notice{ID: d.ID, Username: d.Username, Text: d.Text, Image: d.Image, CreatedAt: d.CreatedAt}
}

var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "seq", Value: -1}}

type NoticeRepository struct {
	coll *mongo.Collection
}

func NewNoticeRepository(db *mongo.Database) *NoticeRepository {
	return &NoticeRepository{coll: db.Collection(noticesCollection)}
}

func (r *NoticeRepository) Create(ctx context.Context, n *entity.Notice) error {
	_, err := r.coll.InsertOne(ctx, noticeDocument{
		ID:        n.ID,
		Username:  n.Username,
		Text:      n.Text,
		Image:     n.Image,
		CreatedAt: n.CreatedAt,
		Seq:       primitive.NewObjectID(),
	})
	if err != nil {
		return fmt.Errorf("insert notice: %w", err)
	}
	return nil
}

func (r *NoticeRepository) Latest(ctx context.Context) (*entity.Notice, error) {
	var doc noticeDocument
	err := r.coll.FindOne(ctx, bson.D{}, options.FindOne().SetSort(newestFirst)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("find latest notice: %w", err)
	}
	n := doc.toEntity()
	return &n, nil
}

func (r *NoticeRepository) List(ctx context.Context) ([]entity.Notice, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("find notices: %w", err)
	}
	defer func() { _ = cur.Close(ctx) }()

	var docs []noticeDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode notices: %w", err)
	}
	out := make([]entity.Notice, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toEntity())
	}
	return out, nil
}

var _ repository.NoticeRepository = (*NoticeRepository)(nil)
