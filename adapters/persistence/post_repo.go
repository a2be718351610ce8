package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"

	"github.com/JakeG-9191/Denver-Dev-Connect/internal/domain/post"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/logger"
)

type likeDoc struct {
	ID     string `bson:"_id"`
	UserID string `bson:"user_id"`
}

type commentDoc struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	Text      string    `bson:"text"`
	Name      string    `bson:"name"`
	Avatar    string    `bson:"avatar"`
	CreatedAt time.Time `bson:"date"`
}

type postDoc struct {
	ID        string       `bson:"_id"`
	UserID    string       `bson:"user_id"`
	Text      string       `bson:"text"`
	Name      string       `bson:"name"`
	Avatar    string       `bson:"avatar"`
	Likes     []likeDoc    `bson:"likes"`
	Comments  []commentDoc `bson:"comments"`
	CreatedAt time.Time    `bson:"date"`
}

func toLikeDoc(l post.Like) likeDoc {
	return likeDoc{ID: l.ID.String(), UserID: l.UserID.String()}
}

func toCommentDoc(c post.Comment) commentDoc {
	return commentDoc{
		ID:        c.ID.String(),
		UserID:    c.UserID.String(),
		Text:      c.Text,
		Name:      c.Name,
		Avatar:    c.Avatar,
		CreatedAt: c.CreatedAt,
	}
}

func toPostDoc(p *post.Post) postDoc {
	d := postDoc{
		ID:        p.ID.String(),
		UserID:    p.UserID.String(),
		Text:      p.Text,
		Name:      p.Name,
		Avatar:    p.Avatar,
		Likes:     make([]likeDoc, len(p.Likes)),
		Comments:  make([]commentDoc, len(p.Comments)),
		CreatedAt: p.CreatedAt,
	}
	for i, l := range p.Likes {
		d.Likes[i] = toLikeDoc(l)
	}
	for i, c := range p.Comments {
		d.Comments[i] = toCommentDoc(c)
	}
	return d
}

func (d postDoc) toDomain() (*post.Post, error) {
	var err error
	p := &post.Post{
		Text:      d.Text,
		Name:      d.Name,
		Avatar:    d.Avatar,
		Likes:     make([]post.Like, len(d.Likes)),
		Comments:  make([]post.Comment, len(d.Comments)),
		CreatedAt: d.CreatedAt,
	}
	if p.ID, err = uuid.Parse(d.ID); err != nil {
		return nil, fmt.Errorf("invalid post id %q: %w", d.ID, err)
	}
	if p.UserID, err = uuid.Parse(d.UserID); err != nil {
		return nil, fmt.Errorf("invalid post user_id %q: %w", d.UserID, err)
	}
	for i, l := range d.Likes {
		if p.Likes[i].ID, err = uuid.Parse(l.ID); err != nil {
			return nil, fmt.Errorf("invalid like id %q: %w", l.ID, err)
		}
		if p.Likes[i].UserID, err = uuid.Parse(l.UserID); err != nil {
			return nil, fmt.Errorf("invalid like user_id %q: %w", l.UserID, err)
		}
	}
	for i, c := range d.Comments {
		pc := post.Comment{Text: c.Text, Name: c.Name, Avatar: c.Avatar, CreatedAt: c.CreatedAt}
		if pc.ID, err = uuid.Parse(c.ID); err != nil {
			return nil, fmt.Errorf("invalid comment id %q: %w", c.ID, err)
		}
		if pc.UserID, err = uuid.Parse(c.UserID); err != nil {
			return nil, fmt.Errorf("invalid comment user_id %q: %w", c.UserID, err)
		}
		p.Comments[i] = pc
	}
	return p, nil
}

type mongoPostRepo struct {
	col    *mongo.Collection
	logger logger.Logger
}

func NewMongoPostRepo(db *mongo.Database, log logger.Logger) post.Repository {
	return &mongoPostRepo{col: db.Collection(postsCollection), logger: log}
}

func (r *mongoPostRepo) Save(ctx context.Context, p *post.Post) error {
	if _, err := r.col.InsertOne(ctx, toPostDoc(p)); err != nil {
		return fmt.Errorf("insert post failed: %w", err)
	}
	return nil
}

func (r *mongoPostRepo) FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	var d postDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, post.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post failed: %w", err)
	}
	return d.toDomain()
}

func (r *mongoPostRepo) List(ctx context.Context) ([]*post.Post, error) {
	return r.find(ctx, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
}

func (r *mongoPostRepo) ListRecent(ctx context.Context, limit int) ([]*post.Post, error) {
	return r.find(ctx, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}).SetLimit(int64(limit)))
}

func (r *mongoPostRepo) find(ctx context.Context, opts *options.FindOptionsBuilder) ([]*post.Post, error) {
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list posts failed: %w", err)
	}
	var docs []postDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts failed: %w", err)
	}

	out := make([]*post.Post, 0, len(docs))
	for _, d := range docs {
		p, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *mongoPostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("delete post failed: %w", err)
	}
	if res.DeletedCount == 0 {
		return post.ErrPostNotFound
	}
	return nil
}

func (r *mongoPostRepo) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	res, err := r.col.DeleteMany(ctx, bson.M{"user_id": userID.String()})
	if err != nil {
		return fmt.Errorf("delete posts by user failed: %w", err)
	}
	r.logger.Debug("Deleted posts by user", zap.String("user_id", userID.String()), zap.Int64("count", res.DeletedCount))
	return nil
}

func (r *mongoPostRepo) PushLike(ctx context.Context, postID uuid.UUID, l post.Like) (*post.Post, error) {
	return r.update(ctx, postID, bson.M{"$push": bson.M{"likes": bson.M{
		"$each":     bson.A{toLikeDoc(l)},
		"$position": 0,
	}}})
}

func (r *mongoPostRepo) PullLike(ctx context.Context, postID, userID uuid.UUID) (*post.Post, error) {
	return r.update(ctx, postID, bson.M{"$pull": bson.M{"likes": bson.M{"user_id": userID.String()}}})
}

func (r *mongoPostRepo) PushComment(ctx context.Context, postID uuid.UUID, c post.Comment) (*post.Post, error) {
	return r.update(ctx, postID, bson.M{"$push": bson.M{"comments": bson.M{
		"$each":     bson.A{toCommentDoc(c)},
		"$position": 0,
	}}})
}

func (r *mongoPostRepo) PullComment(ctx context.Context, postID, commentID uuid.UUID) (*post.Post, error) {
	return r.update(ctx, postID, bson.M{"$pull": bson.M{"comments": bson.M{"_id": commentID.String()}}})
}

func (r *mongoPostRepo) update(ctx context.Context, postID uuid.UUID, update bson.M) (*post.Post, error) {
	var d postDoc
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": postID.String()}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, post.ErrPostNotFound
		}
		return nil, fmt.Errorf("update post failed: %w", err)
	}
	return d.toDomain()
}
