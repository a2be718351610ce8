package post

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Like struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
}

type Comment struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"date"`
}

// Post carries a snapshot of the author's name and avatar taken at creation.
// Likes and Comments are ordered most recent first.
type Post struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Likes     []Like    `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"date"`
}

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment does not exist")
	ErrAlreadyLiked    = errors.New("post already liked")
	ErrNotLiked        = errors.New("post has not yet been liked")
	ErrNotOwner        = errors.New("user is not the owner")
	ErrEmptyText       = errors.New("text is required")
)

// Author is the denormalised identity copied onto posts and comments.
type Author struct {
	ID     uuid.UUID
	Name   string
	Avatar string
}

func New(author Author, text string, now time.Time) (*Post, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	return &Post{
		ID:        uuid.New(),
		UserID:    author.ID,
		Text:      text,
		Name:      author.Name,
		Avatar:    author.Avatar,
		Likes:     []Like{},
		Comments:  []Comment{},
		CreatedAt: now,
	}, nil
}

func (p *Post) OwnedBy(userID uuid.UUID) bool {
	return p.UserID == userID
}

func (p *Post) IsLikedBy(userID uuid.UUID) bool {
	for _, l := range p.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

// Like records a like by userID at the head of the list.
func (p *Post) Like(userID uuid.UUID) (Like, error) {
	if p.IsLikedBy(userID) {
		return Like{}, ErrAlreadyLiked
	}
	l := Like{ID: uuid.New(), UserID: userID}
	p.Likes = append([]Like{l}, p.Likes...)
	return l, nil
}

// Unlike removes the single like held by userID.
func (p *Post) Unlike(userID uuid.UUID) error {
	for i, l := range p.Likes {
		if l.UserID == userID {
			p.Likes = append(p.Likes[:i:i], p.Likes[i+1:]...)
			return nil
		}
	}
	return ErrNotLiked
}

func (p *Post) AddComment(author Author, text string, now time.Time) (Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Comment{}, ErrEmptyText
	}
	c := Comment{
		ID:        uuid.New(),
		UserID:    author.ID,
		Text:      text,
		Name:      author.Name,
		Avatar:    author.Avatar,
		CreatedAt: now,
	}
	p.Comments = append([]Comment{c}, p.Comments...)
	return c, nil
}

// RemoveComment deletes a comment on behalf of userID, who must have written it.
func (p *Post) RemoveComment(commentID, userID uuid.UUID) error {
	for i, c := range p.Comments {
		if c.ID != commentID {
			continue
		}
		if c.UserID != userID {
			return ErrNotOwner
		}
		p.Comments = append(p.Comments[:i:i], p.Comments[i+1:]...)
		return nil
	}
	return ErrCommentNotFound
}

type Repository interface {
	Save(ctx context.Context, p *Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*Post, error)
	// List returns every post, newest first.
	List(ctx context.Context) ([]*Post, error)
	ListRecent(ctx context.Context, limit int) ([]*Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteByUserID is idempotent.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error

	// The array operations touch a single entry and return the post as stored afterwards.
	PushLike(ctx context.Context, postID uuid.UUID, l Like) (*Post, error)
	PullLike(ctx context.Context, postID, userID uuid.UUID) (*Post, error)
	PushComment(ctx context.Context, postID uuid.UUID, c Comment) (*Post, error)
	PullComment(ctx context.Context, postID, commentID uuid.UUID) (*Post, error)
}
