package post

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPost(t *testing.T) *Post {
	t.Helper()
	p, err := New(Author{ID: uuid.New(), Name: "Alice", Avatar: "//gravatar/a"}, "hello", time.Now())
	require.NoError(t, err)
	return p
}

func TestNew(t *testing.T) {
	p := newPost(t)
	assert.Equal(t, "Alice", p.Name)
	assert.Equal(t, "hello", p.Text)
	assert.Empty(t, p.Likes)
	assert.NotNil(t, p.Likes)

	_, err := New(Author{ID: uuid.New()}, "   ", time.Now())
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestLike_Twice(t *testing.T) {
	p := newPost(t)
	u := uuid.New()

	_, err := p.Like(u)
	require.NoError(t, err)
	_, err = p.Like(u)
	assert.ErrorIs(t, err, ErrAlreadyLiked)
	assert.Len(t, p.Likes, 1)
}

func TestLike_MostRecentFirst(t *testing.T) {
	p := newPost(t)
	a, b := uuid.New(), uuid.New()
	_, _ = p.Like(a)
	_, _ = p.Like(b)

	require.Len(t, p.Likes, 2)
	assert.Equal(t, b, p.Likes[0].UserID)
	assert.Equal(t, a, p.Likes[1].UserID)
}

func TestLikeUnlike_RoundTrip(t *testing.T) {
	p := newPost(t)
	_, _ = p.Like(uuid.New())
	before := append([]Like(nil), p.Likes...)

	u := uuid.New()
	_, err := p.Like(u)
	require.NoError(t, err)
	require.NoError(t, p.Unlike(u))

	assert.Equal(t, before, p.Likes)
}

func TestUnlike_NeverLiked(t *testing.T) {
	p := newPost(t)
	_, _ = p.Like(uuid.New())

	err := p.Unlike(uuid.New())
	assert.ErrorIs(t, err, ErrNotLiked)
	assert.Len(t, p.Likes, 1)
}

func TestComments(t *testing.T) {
	p := newPost(t)
	bob := Author{ID: uuid.New(), Name: "Bob"}

	first, err := p.AddComment(bob, "nice", time.Now())
	require.NoError(t, err)
	second, err := p.AddComment(bob, "really", time.Now())
	require.NoError(t, err)
	assert.Equal(t, second.ID, p.Comments[0].ID)
	assert.Equal(t, "Bob", p.Comments[0].Name)

	_, err = p.AddComment(bob, "", time.Now())
	assert.ErrorIs(t, err, ErrEmptyText)

	assert.ErrorIs(t, p.RemoveComment(first.ID, uuid.New()), ErrNotOwner)
	assert.ErrorIs(t, p.RemoveComment(uuid.New(), bob.ID), ErrCommentNotFound)
	require.NoError(t, p.RemoveComment(first.ID, bob.ID))
	require.Len(t, p.Comments, 1)
	assert.Equal(t, second.ID, p.Comments[0].ID)
}
