package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	accountUC "github.com/JakeG-9191/Denver-Dev-Connect/internal/application/usecase/account"
	profileUC "github.com/JakeG-9191/Denver-Dev-Connect/internal/application/usecase/profile"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/apperror"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/logger"
)

type ProfileHandler struct {
	profileUseCase *profileUC.ProfileUseCase
	githubUseCase  *profileUC.GithubReposUseCase
	deleteUseCase  *accountUC.DeleteAccountUseCase
	logger         logger.Logger
}

func NewProfileHandler(
	uc *profileUC.ProfileUseCase,
	githubUC *profileUC.GithubReposUseCase,
	deleteUC *accountUC.DeleteAccountUseCase,
	log logger.Logger,
) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: uc,
		githubUseCase:  githubUC,
		deleteUseCase:  deleteUC,
		logger:         log,
	}
}

func (h *ProfileHandler) GetMine(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	output, err := h.profileUseCase.ExecuteGetMine(c.Request.Context(), profileUC.GetProfileInput{OwnerID: userID})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output)
}

func (h *ProfileHandler) Upsert(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.FromBinding(err))
		return
	}

	output, err := h.profileUseCase.ExecuteUpsert(c.Request.Context(), profileUC.UpsertProfileInput{
		OwnerID: userID,
		Patch:   req.toPatch(),
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output)
}

func (h *ProfileHandler) List(c *gin.Context) {
	output, err := h.profileUseCase.ExecuteList(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output)
}

func (h *ProfileHandler) GetByUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.Error(profileUC.ProfileNotFound("Profile not found", uuid.Nil))
		return
	}

	output, err := h.profileUseCase.ExecuteGetByUser(c.Request.Context(), profileUC.GetProfileInput{OwnerID: userID})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output)
}

// Delete removes the caller's posts, profile and user record.
func (h *ProfileHandler) Delete(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), userID); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "User deleted"})
}

func (h *ProfileHandler) AddExperience(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	var req experienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.FromBinding(err))
		return
	}

	output, err := h.profileUseCase.ExecuteAddExperience(c.Request.Context(), profileUC.AddExperienceInput{
		OwnerID: userID,
		Entry:   req.toDomain(),
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output)
}

func (h *ProfileHandler) RemoveExperience(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	output, err := h.profileUseCase.ExecuteRemoveExperience(c.Request.Context(), profileUC.RemoveEntryInput{
		OwnerID: userID,
		EntryID: entryID(c, "exp_id"),
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output)
}

func (h *ProfileHandler) AddEducation(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	var req educationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.FromBinding(err))
		return
	}

	output, err := h.profileUseCase.ExecuteAddEducation(c.Request.Context(), profileUC.AddEducationInput{
		OwnerID: userID,
		Entry:   req.toDomain(),
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output)
}

func (h *ProfileHandler) RemoveEducation(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	output, err := h.profileUseCase.ExecuteRemoveEducation(c.Request.Context(), profileUC.RemoveEntryInput{
		OwnerID: userID,
		EntryID: entryID(c, "edu_id"),
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output)
}

func (h *ProfileHandler) GithubRepos(c *gin.Context) {
	body, err := h.githubUseCase.Execute(c.Request.Context(), c.Param("username"))
	if err != nil {
		c.Error(err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// entryID yields uuid.Nil for a malformed id, which matches no entry.
func entryID(c *gin.Context, param string) uuid.UUID {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return uuid.Nil
	}
	return id
}
