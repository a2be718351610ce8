package post

import (
	"context"

	"github.com/google/uuid"

	"github.com/JakeG-9191/Denver-Dev-Connect/internal/domain/post"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/apperror"
)

// LikePostUseCase checks presence on the loaded post, then pushes or pulls the single like
// entry in storage. Likes by different users never overwrite each other. Two concurrent
// requests by the same user can both pass the presence check.
type LikePostUseCase struct {
	postRepo post.Repository
}

func NewLikePostUseCase(pRepo post.Repository) *LikePostUseCase {
	return &LikePostUseCase{postRepo: pRepo}
}

type LikeInput struct {
	PostID uuid.UUID
	UserID uuid.UUID
}

func (uc *LikePostUseCase) ExecuteLike(ctx context.Context, input LikeInput) ([]post.Like, error) {
	p, err := findPost(ctx, uc.postRepo, input.PostID)
	if err != nil {
		return nil, err
	}

	l, err := p.Like(input.UserID)
	if err != nil {
		return nil, apperror.NewConflict("Post already liked", "post "+input.PostID.String())
	}

	stored, err := uc.postRepo.PushLike(ctx, input.PostID, l)
	if err != nil {
		return nil, mapPostErr(err, input.PostID, "push like failed")
	}
	return stored.Likes, nil
}

func (uc *LikePostUseCase) ExecuteUnlike(ctx context.Context, input LikeInput) ([]post.Like, error) {
	p, err := findPost(ctx, uc.postRepo, input.PostID)
	if err != nil {
		return nil, err
	}

	if err := p.Unlike(input.UserID); err != nil {
		return nil, apperror.NewConflict("Post has not yet been liked", "post "+input.PostID.String())
	}

	stored, err := uc.postRepo.PullLike(ctx, input.PostID, input.UserID)
	if err != nil {
		return nil, mapPostErr(err, input.PostID, "pull like failed")
	}
	return stored.Likes, nil
}
