package cli

import (
	"context"
	"errors"
	"fmt"

	dbadapter "github.com/kevinseya/app-turismo-dnavarro/internal/adapters/database"
	"github.com/kevinseya/app-turismo-dnavarro/internal/adapters/httpapi"
	pushadapter "github.com/kevinseya/app-turismo-dnavarro/internal/adapters/push"
	redisadapter "github.com/kevinseya/app-turismo-dnavarro/internal/adapters/redis"
	"github.com/kevinseya/app-turismo-dnavarro/internal/adapters/storage"
	"github.com/kevinseya/app-turismo-dnavarro/internal/config"
	adminapp "github.com/kevinseya/app-turismo-dnavarro/internal/core/admin/service"
	commentapp "github.com/kevinseya/app-turismo-dnavarro/internal/core/comment/service"
	feedapp "github.com/kevinseya/app-turismo-dnavarro/internal/core/feed/service"
	followapp "github.com/kevinseya/app-turismo-dnavarro/internal/core/follow/service"
	likeapp "github.com/kevinseya/app-turismo-dnavarro/internal/core/like/service"
	notificationapp "github.com/kevinseya/app-turismo-dnavarro/internal/core/notification/service"
	postapp "github.com/kevinseya/app-turismo-dnavarro/internal/core/post/service"
	userapp "github.com/kevinseya/app-turismo-dnavarro/internal/core/user/service"
	feedPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/feed"
	notificationPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/notification"
	postPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/post"
	"github.com/kevinseya/app-turismo-dnavarro/internal/workers"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime is what every command needs: configuration, logger and database.
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
	redis  *redis.Client
}

func bootstrap(ctx context.Context, opts *RootOptions, withRedis bool) (*runtime, error) {
	if opts.EnvFile != "" {
		if !config.LoadDotEnv(opts.EnvFile) {
			return nil, fmt.Errorf("could not load %s", opts.EnvFile)
		}
	} else {
		config.LoadDotEnv()
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	config.AppConfig = cfg
	logger := config.InitLogger(cfg.Env)

	db, err := config.InitDB(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("✅ Database connected", zap.String("driver", cfg.DBDriver))

	rt := &runtime{cfg: cfg, logger: logger, db: db}
	if withRedis && cfg.NearbyIndex == "redis" {
		client, err := config.InitRedis(ctx, cfg)
		if err != nil {
			rt.close()
			return nil, err
		}
		logger.Info("✅ Redis connected", zap.String("addr", cfg.RedisAddr))
		rt.redis = client
	}
	return rt, nil
}

// close releases the Redis and database connections.
func (rt *runtime) close() {
	if rt.redis != nil {
		if err := rt.redis.Close(); err != nil {
			rt.logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}
	if err := config.CloseDB(rt.db); err != nil {
		rt.logger.Error("Error closing database connection", zap.Error(err))
	}
	_ = rt.logger.Sync()
}

// app is the fully wired server: outbound adapters -> services -> inbound adapter.
type app struct {
	useCases   httpapi.UseCases
	users      *userapp.UserService
	geoIndex   *redisadapter.GeoIndexRedis
	postRepo   *dbadapter.PostRepositoryDatabase
	pushWorker *workers.PushWorker
}

func wire(ctx context.Context, rt *runtime) (*app, error) {
	cfg, logger, db := rt.cfg, rt.logger, rt.db

	userRepo := dbadapter.NewUserRepositoryDatabase(db)
	postRepo := dbadapter.NewPostRepositoryDatabase(db)
	commentRepo := dbadapter.NewCommentRepositoryDatabase(db)
	likeRepo := dbadapter.NewLikeRepositoryDatabase(db)
	followRepo := dbadapter.NewFollowRepositoryDatabase(db)
	feedRepo := dbadapter.NewFeedRepositoryDatabase(db)
	notificationRepo := dbadapter.NewNotificationRepositoryDatabase(db)
	deviceRepo := dbadapter.NewDeviceRepositoryDatabase(db)
	queueRepo := dbadapter.NewPushQueueRepositoryDatabase(db)
	statsRepo := dbadapter.NewStatsRepositoryDatabase(db)

	imageStore, err := storage.NewLocalImageStore(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	var nearby feedPort.NearbyFinder = feedRepo
	var geoIndex postPort.GeoIndex
	var geoRedis *redisadapter.GeoIndexRedis
	if rt.redis != nil {
		geoRedis = redisadapter.NewGeoIndexRedis(rt.redis, postRepo, feedRepo, logger)
		nearby, geoIndex = geoRedis, geoRedis
	}

	var pusher notificationPort.Pusher
	if cfg.FirebaseCredentials != "" {
		fcm, err := pushadapter.NewFCMPusher(ctx, cfg.FirebaseCredentials, logger)
		if err != nil {
			return nil, err
		}
		pusher = fcm
	} else {
		logger.Warn("⚠️ FIREBASE_CREDENTIALS not set, push notifications are only logged")
		pusher = pushadapter.NewLogPusher(logger)
	}

	userSvc := userapp.NewUserService(userRepo, followRepo, []byte(cfg.JWTSecret), cfg.TokenTTL, logger)
	notificationSvc := notificationapp.NewNotificationService(notificationRepo, deviceRepo, queueRepo, userRepo, logger)

	return &app{
		useCases: httpapi.UseCases{
			User:         userSvc,
			Follow:       followapp.NewFollowService(followRepo, userRepo, logger),
			Post:         postapp.NewPostService(postRepo, commentRepo, imageStore, geoIndex, logger),
			Like:         likeapp.NewLikeService(likeRepo, postRepo, logger),
			Comment:      commentapp.NewCommentService(commentRepo, postRepo, notificationSvc, logger),
			Feed:         feedapp.NewFeedService(feedRepo, nearby, logger),
			Notification: notificationSvc,
			Admin:        adminapp.NewAdminService(statsRepo, logger),
		},
		users:      userSvc,
		geoIndex:   geoRedis,
		postRepo:   postRepo,
		pushWorker: workers.NewPushWorker(queueRepo, notificationRepo, deviceRepo, pusher, cfg.BatchSize, cfg.PushPollInterval, logger),
	}, nil
}

var errNoGeoIndex = errors.New("NEARBY_INDEX is not redis; nothing to reindex")

// reindexGeo rebuilds the Redis GEO set from the active posts in the database.
func (a *app) reindexGeo(ctx context.Context, logger *zap.Logger) error {
	if a.geoIndex == nil {
		return errNoGeoIndex
	}
	posts, err := a.postRepo.ListActive(ctx)
	if err != nil {
		return err
	}
	n, err := a.geoIndex.Rebuild(ctx, posts)
	if err != nil {
		return err
	}
	logger.Info("✅ GEO index rebuilt", zap.Int("posts", n))
	return nil
}
