package httpapi

import (
	"net/http"

	"github.com/kevinseya/app-turismo-dnavarro/internal/adapters/httpapi/middleware"
	notificationPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/notification"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type NotificationController struct {
	nc     NotificationUseCase
	logger *zap.Logger
}

func NewNotificationController(nc NotificationUseCase, logger *zap.Logger) *NotificationController {
	return &NotificationController{nc: nc, logger: logger}
}

// Send answers with the single notification when targeted and the full list on broadcast.
func (ctl *NotificationController) Send(c *gin.Context) {
	var req struct {
		Title   string `json:"title" binding:"required"`
		Message string `json:"message" binding:"required"`
		UserID  string `json:"userId" binding:"omitempty,uuid"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	in := notificationPort.SendInput{Title: req.Title, Message: req.Message}
	if req.UserID != "" {
		id := uuid.FromStringOrNil(req.UserID)
		in.UserID = &id
	}

	res, err := ctl.nc.Send(c.Request.Context(), in)
	if err != nil {
		writeError(c, ctl.logger, err)
		return
	}
	if in.UserID != nil && len(res) == 1 {
		c.JSON(http.StatusCreated, res[0])
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (ctl *NotificationController) MyNotifications(c *gin.Context) {
	res, err := ctl.nc.MyNotifications(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *NotificationController) RegisterDevice(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	if err := ctl.nc.RegisterDevice(c.Request.Context(), middleware.UserID(c), req.Token); err != nil {
		writeError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "device registered"})
}
