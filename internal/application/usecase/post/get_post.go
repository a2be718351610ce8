package post

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/JakeG-9191/Denver-Dev-Connect/internal/domain/post"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/apperror"
)

type GetPostUseCase struct {
	postRepo post.Repository
}

func NewGetPostUseCase(pRepo post.Repository) *GetPostUseCase {
	return &GetPostUseCase{postRepo: pRepo}
}

func (uc *GetPostUseCase) Execute(ctx context.Context, postID uuid.UUID) (*post.Post, error) {
	return findPost(ctx, uc.postRepo, postID)
}

type ListPostsUseCase struct {
	postRepo post.Repository
}

func NewListPostsUseCase(pRepo post.Repository) *ListPostsUseCase {
	return &ListPostsUseCase{postRepo: pRepo}
}

// Execute returns every post, newest first.
func (uc *ListPostsUseCase) Execute(ctx context.Context) ([]*post.Post, error) {
	posts, err := uc.postRepo.List(ctx)
	if err != nil {
		return nil, apperror.NewInternal("list posts failed", err)
	}
	return posts, nil
}

func findPost(ctx context.Context, repo post.Repository, id uuid.UUID) (*post.Post, error) {
	p, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapPostErr(err, id, "get post failed")
	}
	return p, nil
}

func mapPostErr(err error, id uuid.UUID, details string) error {
	if errors.Is(err, post.ErrPostNotFound) {
		return PostNotFound(id)
	}
	return apperror.NewInternal(details, err)
}

func PostNotFound(id uuid.UUID) error {
	return apperror.NewNotFound("Post", id.String())
}
