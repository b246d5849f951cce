package httpapi

import (
	"context"
	"mime/multipart"

	"github.com/kevinseya/app-turismo-dnavarro/internal/adapters/httpapi/middleware"
	userEntity "github.com/kevinseya/app-turismo-dnavarro/internal/core/user"
	userapp "github.com/kevinseya/app-turismo-dnavarro/internal/core/user/service"
	adminPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/admin"
	commentPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/comment"
	feedPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/feed"
	followPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/follow"
	likePort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/like"
	notificationPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/notification"
	postPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/post"
	userPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/user"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// Inbound ports: the use cases the controllers need.

type UserUseCase interface {
	RegisterUser(ctx context.Context, name, email, password string) (*userPort.UserDTO, error)
	LoginUser(ctx context.Context, email, password string) (*userPort.LoginResponse, error)
	VerifyToken(token string) (*userapp.Identity, error)
	ListUsers(ctx context.Context) ([]*userPort.UserDTO, error)
	GetProfile(ctx context.Context, viewerID, userID uuid.UUID) (*userPort.ProfileDTO, error)
	SetActive(ctx context.Context, userID uuid.UUID, active bool) (*userPort.UserDTO, error)
	ChangeRole(ctx context.Context, userID uuid.UUID, role string) (*userPort.UserDTO, error)
}

type FollowUseCase interface {
	FollowUser(ctx context.Context, followerID, followingID uuid.UUID) (*followPort.FollowDTO, error)
	UnfollowUser(ctx context.Context, followerID, followingID uuid.UUID) error
	GetFollowersByUserID(ctx context.Context, userID uuid.UUID) ([]*followPort.FollowDTO, error)
	GetFollowingByUserID(ctx context.Context, userID uuid.UUID) ([]*followPort.FollowDTO, error)
}

type PostUseCase interface {
	CreatePost(ctx context.Context, userID uuid.UUID, in postPort.CreatePostInput) (*postPort.PostDTO, error)
	ListPosts(ctx context.Context) ([]*postPort.PostDTO, error)
	GetPost(ctx context.Context, id uuid.UUID) (*postPort.PostDTO, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*postPort.PostDTO, error)
	DeletePost(ctx context.Context, callerID uuid.UUID, role userEntity.Role, id uuid.UUID) error
	UploadImages(ctx context.Context, files []*multipart.FileHeader) ([]string, error)
}

type LikeUseCase interface {
	Like(ctx context.Context, userID, postID uuid.UUID) (*likePort.LikeResultDTO, error)
	Unlike(ctx context.Context, userID, postID uuid.UUID) (*likePort.LikeResultDTO, error)
}

type CommentUseCase interface {
	CreateComment(ctx context.Context, userID, postID uuid.UUID, in commentPort.CreateCommentInput) (*commentPort.CommentDTO, error)
	ListComments(ctx context.Context, postID uuid.UUID) ([]*commentPort.CommentDTO, error)
	DeleteComment(ctx context.Context, callerID uuid.UUID, role userEntity.Role, postID, commentID uuid.UUID) error
}

type FeedUseCase interface {
	GetFeed(ctx context.Context, userID uuid.UUID, page, limit int) ([]*postPort.PostDTO, error)
	GetNearbyFeed(ctx context.Context, q feedPort.NearbyQuery) ([]*postPort.PostDTO, error)
}

type NotificationUseCase interface {
	Send(ctx context.Context, in notificationPort.SendInput) ([]*notificationPort.NotificationDTO, error)
	MyNotifications(ctx context.Context, userID uuid.UUID) ([]*notificationPort.NotificationDTO, error)
	RegisterDevice(ctx context.Context, userID uuid.UUID, token string) error
}

type AdminUseCase interface {
	Dashboard(ctx context.Context) (*adminPort.DashboardDTO, error)
}

// UseCases groups every inbound port wired into the router.
type UseCases struct {
	User         UserUseCase
	Follow       FollowUseCase
	Post         PostUseCase
	Like         LikeUseCase
	Comment      CommentUseCase
	Feed         FeedUseCase
	Notification NotificationUseCase
	Admin        AdminUseCase
}

// SetupRoutes only routes; use cases are injected from outside.
func SetupRoutes(uc UseCases, uploadDir string, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))
	r.MaxMultipartMemory = 8 << 20

	r.Static("/uploads", uploadDir)

	usc := NewUserController(uc.User, logger)
	fc := NewFollowController(uc.Follow, logger)
	pc := NewPostController(uc.Post, logger)
	lc := NewLikeController(uc.Like, logger)
	cc := NewCommentController(uc.Comment, logger)
	feedc := NewFeedController(uc.Feed, logger)
	nc := NewNotificationController(uc.Notification, logger)
	ac := NewAdminController(uc.Admin, logger)

	auth := middleware.JWTAuthMiddleware(uc.User)
	admin := middleware.RequireRole(userEntity.RoleAdmin)

	r.POST("/auth/register", usc.RegisterUser)
	r.POST("/auth/login", usc.LoginUser)

	users := r.Group("/users", auth)
	users.GET("", usc.ListUsers)
	users.GET("/:id", usc.GetProfile)
	users.GET("/:id/followers", fc.GetFollowers)
	users.GET("/:id/following", fc.GetFollowing)
	users.PATCH("/:id/block", admin, usc.BlockUser)
	users.PATCH("/:id/unblock", admin, usc.UnblockUser)
	users.PATCH("/:id/role", admin, usc.ChangeRole)
	users.POST("/follow/:id", fc.FollowUser)
	users.DELETE("/follow/:id", fc.UnfollowUser)

	// reads are public
	r.GET("/posts", pc.ListPosts)
	r.GET("/posts/:id", pc.GetPost)
	r.GET("/posts/user/:id", pc.ListByUser)

	posts := r.Group("/posts", auth)
	posts.POST("/upload", pc.UploadImages)
	posts.POST("", pc.CreatePost)
	posts.DELETE("/:id", pc.DeletePost)
	posts.POST("/:id/comments", cc.CreateComment)
	posts.GET("/:id/comments", cc.ListComments)
	posts.DELETE("/:id/comments/:commentId", cc.DeleteComment)

	likes := r.Group("/likes", auth)
	likes.POST("/:postId", lc.Like)
	likes.DELETE("/:postId", lc.Unlike)

	feed := r.Group("/feed", auth)
	feed.GET("", feedc.GetFeed)
	feed.GET("/nearby", feedc.GetNearbyFeed)

	notifications := r.Group("/notifications", auth)
	notifications.POST("/send", admin, nc.Send)
	notifications.GET("/my", nc.MyNotifications)
	notifications.POST("/devices", nc.RegisterDevice)

	r.GET("/admin/dashboard", auth, admin, ac.Dashboard)

	return r
}
