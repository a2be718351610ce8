package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	accountUC "github.com/JakeG-9191/Denver-Dev-Connect/internal/application/usecase/account"
	"github.com/JakeG-9191/Denver-Dev-Connect/internal/application/usecase/auth"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/apperror"
)

type AuthHandler struct {
	registerUseCase *auth.RegisterUseCase
	loginUseCase    *auth.LoginUseCase
	getMeUseCase    *auth.GetMeUseCase
	avatarUseCase   *accountUC.UploadAvatarUseCase
}

func NewAuthHandler(
	registerUC *auth.RegisterUseCase,
	loginUC *auth.LoginUseCase,
	getMeUC *auth.GetMeUseCase,
	avatarUC *accountUC.UploadAvatarUseCase,
) *AuthHandler {
	return &AuthHandler{
		registerUseCase: registerUC,
		loginUseCase:    loginUC,
		getMeUseCase:    getMeUC,
		avatarUseCase:   avatarUC,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.FromBinding(err))
		return
	}

	output, err := h.registerUseCase.Execute(c.Request.Context(), auth.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.FromBinding(err))
		return
	}

	output, err := h.loginUseCase.Execute(c.Request.Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output)
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	u, err := h.getMeUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *AuthHandler) UploadAvatar(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.NewValidation(apperror.FieldError{Field: "file", Msg: "File is required"}))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInternal("failed to open uploaded file", err))
		return
	}
	defer file.Close()

	u, err := h.avatarUseCase.Execute(c.Request.Context(), accountUC.UploadAvatarInput{UserID: userID, File: file})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, u)
}
