package post

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/JakeG-9191/Denver-Dev-Connect/internal/domain/post"
	"github.com/JakeG-9191/Denver-Dev-Connect/internal/domain/user"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/apperror"
)

type CommentPostUseCase struct {
	postRepo post.Repository
	userRepo user.Repository
}

func NewCommentPostUseCase(pRepo post.Repository, uRepo user.Repository) *CommentPostUseCase {
	return &CommentPostUseCase{postRepo: pRepo, userRepo: uRepo}
}

type AddCommentInput struct {
	PostID uuid.UUID
	UserID uuid.UUID
	Text   string
}

func (uc *CommentPostUseCase) ExecuteAdd(ctx context.Context, input AddCommentInput) ([]post.Comment, error) {
	p, err := findPost(ctx, uc.postRepo, input.PostID)
	if err != nil {
		return nil, err
	}
	author, err := loadAuthor(ctx, uc.userRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	c, err := p.AddComment(author, input.Text, time.Now().UTC())
	if err != nil {
		return nil, textRequired()
	}

	stored, err := uc.postRepo.PushComment(ctx, input.PostID, c)
	if err != nil {
		return nil, mapPostErr(err, input.PostID, "push comment failed")
	}
	return stored.Comments, nil
}

type RemoveCommentInput struct {
	PostID    uuid.UUID
	CommentID uuid.UUID
	UserID    uuid.UUID
}

func (uc *CommentPostUseCase) ExecuteRemove(ctx context.Context, input RemoveCommentInput) ([]post.Comment, error) {
	p, err := findPost(ctx, uc.postRepo, input.PostID)
	if err != nil {
		return nil, err
	}

	if err := p.RemoveComment(input.CommentID, input.UserID); err != nil {
		switch {
		case errors.Is(err, post.ErrCommentNotFound):
			return nil, apperror.NewAppError(apperror.ErrNotFound, "Comment does not exist", "comment "+input.CommentID.String(), nil)
		case errors.Is(err, post.ErrNotOwner):
			return nil, apperror.NewPermissionDenied("comment " + input.CommentID.String() + " belongs to another user")
		}
		return nil, apperror.NewInternal("remove comment failed", err)
	}

	stored, err := uc.postRepo.PullComment(ctx, input.PostID, input.CommentID)
	if err != nil {
		return nil, mapPostErr(err, input.PostID, "pull comment failed")
	}
	return stored.Comments, nil
}
