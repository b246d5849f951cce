package httpapi

import (
	"net/http"

	"github.com/kevinseya/app-turismo-dnavarro/internal/adapters/httpapi/middleware"
	"github.com/kevinseya/app-turismo-dnavarro/internal/core/feed"
	feedPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/feed"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type FeedController struct {
	fc     FeedUseCase
	logger *zap.Logger
}

func NewFeedController(fc FeedUseCase, logger *zap.Logger) *FeedController {
	return &FeedController{fc: fc, logger: logger}
}

func (ctl *FeedController) GetFeed(c *gin.Context) {
	page, ok := queryInt(c, "page", feed.DefaultPage)
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit", feed.DefaultLimit)
	if !ok {
		return
	}
	posts, err := ctl.fc.GetFeed(c.Request.Context(), middleware.UserID(c), page, limit)
	if err != nil {
		writeError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (ctl *FeedController) GetNearbyFeed(c *gin.Context) {
	var q feedPort.NearbyQuery
	var ok bool
	if q.Lat, ok = queryFloat(c, "lat", 0, true); !ok {
		return
	}
	if q.Lng, ok = queryFloat(c, "lng", 0, true); !ok {
		return
	}
	if q.RadiusKm, ok = queryFloat(c, "radiusKm", feed.DefaultRadiusKm, false); !ok {
		return
	}
	if q.Page, ok = queryInt(c, "page", feed.DefaultPage); !ok {
		return
	}
	if q.Limit, ok = queryInt(c, "limit", feed.DefaultLimit); !ok {
		return
	}

	posts, err := ctl.fc.GetNearbyFeed(c.Request.Context(), q)
	if err != nil {
		writeError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}
