package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	postUC "github.com/JakeG-9191/Denver-Dev-Connect/internal/application/usecase/post"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/apperror"
)

type PostHandler struct {
	createPostUseCase  *postUC.CreatePostUseCase
	getPostUseCase     *postUC.GetPostUseCase
	listPostsUseCase   *postUC.ListPostsUseCase
	deletePostUseCase  *postUC.DeletePostUseCase
	likePostUseCase    *postUC.LikePostUseCase
	commentPostUseCase *postUC.CommentPostUseCase
}

func NewPostHandler(
	createUC *postUC.CreatePostUseCase,
	getUC *postUC.GetPostUseCase,
	listUC *postUC.ListPostsUseCase,
	deleteUC *postUC.DeletePostUseCase,
	likeUC *postUC.LikePostUseCase,
	commentUC *postUC.CommentPostUseCase,
) *PostHandler {
	return &PostHandler{
		createPostUseCase:  createUC,
		getPostUseCase:     getUC,
		listPostsUseCase:   listUC,
		deletePostUseCase:  deleteUC,
		likePostUseCase:    likeUC,
		commentPostUseCase: commentUC,
	}
}

func postIDParam(c *gin.Context) (uuid.UUID, bool) {
	raw := c.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		c.Error(apperror.NewNotFound("Post", raw))
		return uuid.Nil, false
	}
	return id, true
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.FromBinding(err))
		return
	}

	p, err := h.createPostUseCase.Execute(c.Request.Context(), postUC.CreatePostInput{OwnerID: userID, Text: req.Text})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PostHandler) ListPosts(c *gin.Context) {
	posts, err := h.listPostsUseCase.Execute(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) GetPost(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	p, err := h.getPostUseCase.Execute(c.Request.Context(), postID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	if err := h.deletePostUseCase.Execute(c.Request.Context(), postUC.DeletePostInput{PostID: postID, OwnerID: userID}); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Post removed"})
}

func (h *PostHandler) Like(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	likes, err := h.likePostUseCase.ExecuteLike(c.Request.Context(), postUC.LikeInput{PostID: postID, UserID: userID})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, likes)
}

func (h *PostHandler) Unlike(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	likes, err := h.likePostUseCase.ExecuteUnlike(c.Request.Context(), postUC.LikeInput{PostID: postID, UserID: userID})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, likes)
}

func (h *PostHandler) AddComment(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.FromBinding(err))
		return
	}

	comments, err := h.commentPostUseCase.ExecuteAdd(c.Request.Context(), postUC.AddCommentInput{
		PostID: postID,
		UserID: userID,
		Text:   req.Text,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *PostHandler) RemoveComment(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	comments, err := h.commentPostUseCase.ExecuteRemove(c.Request.Context(), postUC.RemoveCommentInput{
		PostID:    postID,
		CommentID: entryID(c, "comment_id"),
		UserID:    userID,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, comments)
}
