package httpapi

import (
	"net/http"

	"github.com/kevinseya/app-turismo-dnavarro/internal/adapters/httpapi/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LikeController struct {
	lc     LikeUseCase
	logger *zap.Logger
}

func NewLikeController(lc LikeUseCase, logger *zap.Logger) *LikeController {
	return &LikeController{lc: lc, logger: logger}
}

func (ctl *LikeController) Like(c *gin.Context) {
	postID, ok := pathID(c, "postId")
	if !ok {
		return
	}
	res, err := ctl.lc.Like(c.Request.Context(), middleware.UserID(c), postID)
	if err != nil {
		writeError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *LikeController) Unlike(c *gin.Context) {
	postID, ok := pathID(c, "postId")
	if !ok {
		return
	}
	res, err := ctl.lc.Unlike(c.Request.Context(), middleware.UserID(c), postID)
	if err != nil {
		writeError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
