package followapp

import (
	"context"
	"errors"

	"github.com/kevinseya/app-turismo-dnavarro/internal/core/apperr"
	followEntity "github.com/kevinseya/app-turismo-dnavarro/internal/core/follow"
	followPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/follow"
	userPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type FollowService struct {
	FollowRepository followPort.FollowRepository
	UserRepository   userPort.UserRepository
	Logger           *zap.Logger
}

func NewFollowService(repo followPort.FollowRepository, userRepo userPort.UserRepository, logger *zap.Logger) *FollowService {
	return &FollowService{FollowRepository: repo, UserRepository: userRepo, Logger: logger}
}

func (s *FollowService) FollowUser(ctx context.Context, followerID, followingID uuid.UUID) (*followPort.FollowDTO, error) {
	if followerID == followingID {
		return nil, apperr.Validation("you cannot follow yourself")
	}
	if _, err := s.UserRepository.FindByID(ctx, followingID); err != nil {
		return nil, err
	}

	exists, err := s.FollowRepository.Exists(ctx, followerID, followingID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, alreadyFollowing()
	}

	f, err := s.FollowRepository.Create(ctx, &followEntity.Follow{
		ID:          uuid.Must(uuid.NewV4()),
		FollowerID:  followerID,
		FollowingID: followingID,
	})
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, alreadyFollowing()
		}
		return nil, err
	}

	s.Logger.Info("User followed",
		zap.String("followerID", followerID.String()),
		zap.String("followingID", followingID.String()))
	return followPort.ToFollowDTO(f), nil
}

func (s *FollowService) UnfollowUser(ctx context.Context, followerID, followingID uuid.UUID) error {
	return s.FollowRepository.Delete(ctx, followerID, followingID)
}

func (s *FollowService) GetFollowersByUserID(ctx context.Context, userID uuid.UUID) ([]*followPort.FollowDTO, error) {
	follows, err := s.FollowRepository.ListFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toDTOs(follows), nil
}

func (s *FollowService) GetFollowingByUserID(ctx context.Context, userID uuid.UUID) ([]*followPort.FollowDTO, error) {
	follows, err := s.FollowRepository.ListFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toDTOs(follows), nil
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	return s.FollowRepository.Exists(ctx, followerID, followingID)
}

func (s *FollowService) FollowersCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.FollowRepository.CountFollowers(ctx, userID)
}

func (s *FollowService) FollowingCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.FollowRepository.CountFollowing(ctx, userID)
}

func alreadyFollowing() error {
	return apperr.Conflict("already following this user")
}

func toDTOs(follows []*followEntity.Follow) []*followPort.FollowDTO {
	dtos := make([]*followPort.FollowDTO, 0, len(follows))
	for _, f := range follows {
		dtos = append(dtos, followPort.ToFollowDTO(f))
	}
	return dtos
}
