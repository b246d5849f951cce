package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AdminController struct {
	ac     AdminUseCase
	logger *zap.Logger
}

func NewAdminController(ac AdminUseCase, logger *zap.Logger) *AdminController {
	return &AdminController{ac: ac, logger: logger}
}

func (ctl *AdminController) Dashboard(c *gin.Context) {
	dash, err := ctl.ac.Dashboard(c.Request.Context())
	if err != nil {
		writeError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}
