package adminapp

import (
	"context"

	adminPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/admin"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const TopPostsLimit = 5

type AdminService struct {
	StatsRepository adminPort.StatsRepository
	Logger          *zap.Logger
}

func NewAdminService(repo adminPort.StatsRepository, logger *zap.Logger) *AdminService {
	return &AdminService{StatsRepository: repo, Logger: logger}
}

// Dashboard counts every row (active or not) and lists the most liked active posts.
func (s *AdminService) Dashboard(ctx context.Context) (*adminPort.DashboardDTO, error) {
	dash := &adminPort.DashboardDTO{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		dash.TotalUsers, err = s.StatsRepository.CountUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		dash.TotalPosts, err = s.StatsRepository.CountPosts(gctx)
		return err
	})
	g.Go(func() (err error) {
		dash.TotalComments, err = s.StatsRepository.CountComments(gctx)
		return err
	})
	g.Go(func() (err error) {
		dash.TotalLikes, err = s.StatsRepository.CountLikes(gctx)
		return err
	})
	g.Go(func() error {
		posts, err := s.StatsRepository.TopPostsByLikes(gctx, TopPostsLimit)
		if err != nil {
			return err
		}
		dash.TopPosts = make([]*adminPort.TopPostDTO, 0, len(posts))
		for _, p := range posts {
			dash.TopPosts = append(dash.TopPosts, &adminPort.TopPostDTO{
				ID:            p.ID.String(),
				Title:         p.Title,
				LikesCount:    p.LikesCount,
				CommentsCount: p.CommentsCount,
			})
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		s.Logger.Error("❌ Failed to build dashboard", zap.Error(err))
		return nil, err
	}
	return dash, nil
}
