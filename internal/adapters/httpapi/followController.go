package httpapi

import (
	"net/http"

	"github.com/kevinseya/app-turismo-dnavarro/internal/adapters/httpapi/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type FollowController struct {
	fc     FollowUseCase
	logger *zap.Logger
}

func NewFollowController(fc FollowUseCase, logger *zap.Logger) *FollowController {
	return &FollowController{fc: fc, logger: logger}
}

func (ctl *FollowController) FollowUser(c *gin.Context) {
	targetID, ok := pathID(c, "id")
	if !ok {
		return
	}
	f, err := ctl.fc.FollowUser(c.Request.Context(), middleware.UserID(c), targetID)
	if err != nil {
		writeError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

func (ctl *FollowController) UnfollowUser(c *gin.Context) {
	targetID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctl.fc.UnfollowUser(c.Request.Context(), middleware.UserID(c), targetID); err != nil {
		writeError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "successfully unfollowed user"})
}

func (ctl *FollowController) GetFollowers(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	followers, err := ctl.fc.GetFollowersByUserID(c.Request.Context(), id)
	if err != nil {
		writeError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, followers)
}

func (ctl *FollowController) GetFollowing(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	following, err := ctl.fc.GetFollowingByUserID(c.Request.Context(), id)
	if err != nil {
		writeError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, following)
}
