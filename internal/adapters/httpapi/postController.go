package httpapi

import (
	"net/http"

	"github.com/kevinseya/app-turismo-dnavarro/internal/adapters/httpapi/middleware"
	"github.com/kevinseya/app-turismo-dnavarro/internal/core/apperr"
	postPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/post"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PostController struct {
	pc     PostUseCase
	logger *zap.Logger
}

func NewPostController(pc PostUseCase, logger *zap.Logger) *PostController {
	return &PostController{pc: pc, logger: logger}
}

func (ctl *PostController) CreatePost(c *gin.Context) {
	var req struct {
		Title       string   `json:"title" binding:"required"`
		Description string   `json:"description" binding:"required"`
		Latitude    *float64 `json:"latitude" binding:"required,min=-90,max=90"`
		Longitude   *float64 `json:"longitude" binding:"required,min=-180,max=180"`
		Phone       string   `json:"phone" binding:"required"`
		Images      []string `json:"images"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	res, err := ctl.pc.CreatePost(c.Request.Context(), middleware.UserID(c), postPort.CreatePostInput{
		Title:       req.Title,
		Description: req.Description,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
		Phone:       req.Phone,
		Images:      req.Images,
	})
	if err != nil {
		writeError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (ctl *PostController) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		writeError(c, ctl.logger, apperr.Validation("multipart form with an images field is required"))
		return
	}
	paths, err := ctl.pc.UploadImages(c.Request.Context(), form.File["images"])
	if err != nil {
		writeError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"images": paths})
}

func (ctl *PostController) ListPosts(c *gin.Context) {
	posts, err := ctl.pc.ListPosts(c.Request.Context())
	if err != nil {
		writeError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (ctl *PostController) GetPost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	post, err := ctl.pc.GetPost(c.Request.Context(), id)
	if err != nil {
		writeError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (ctl *PostController) ListByUser(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	posts, err := ctl.pc.ListByUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (ctl *PostController) DeletePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctl.pc.DeletePost(c.Request.Context(), middleware.UserID(c), middleware.Role(c), id); err != nil {
		writeError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}
