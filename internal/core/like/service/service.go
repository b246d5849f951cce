package likeapp

import (
	"context"
	"errors"

	"github.com/kevinseya/app-turismo-dnavarro/internal/core/apperr"
	likeEntity "github.com/kevinseya/app-turismo-dnavarro/internal/core/like"
	likePort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/like"
	postPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/post"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type LikeService struct {
	LikeRepository likePort.LikeRepository
	PostRepository postPort.PostRepository
	Logger         *zap.Logger
}

func NewLikeService(likeRepo likePort.LikeRepository, postRepo postPort.PostRepository, logger *zap.Logger) *LikeService {
	return &LikeService{LikeRepository: likeRepo, PostRepository: postRepo, Logger: logger}
}

// Like is idempotent: liking twice returns the existing like and leaves the counter alone.
func (s *LikeService) Like(ctx context.Context, userID, postID uuid.UUID) (*likePort.LikeResultDTO, error) {
	post, err := s.PostRepository.FindActiveByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	existing, err := s.LikeRepository.Find(ctx, userID, postID)
	if err == nil {
		return likePort.ToLikeResultDTO(existing, post), nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	l, updated, err := s.LikeRepository.Create(ctx, &likeEntity.Like{
		ID:     uuid.Must(uuid.NewV4()),
		UserID: userID,
		PostID: postID,
	})
	if errors.Is(err, apperr.ErrConflict) {
		// lost a race with a concurrent like of the same pair
		return s.current(ctx, userID, postID)
	}
	if err != nil {
		return nil, err
	}

	s.Logger.Debug("Post liked", zap.String("postID", postID.String()), zap.String("userID", userID.String()))
	return likePort.ToLikeResultDTO(l, updated), nil
}

// Unlike removes the like; NotFound when the user has not liked the post.
func (s *LikeService) Unlike(ctx context.Context, userID, postID uuid.UUID) (*likePort.LikeResultDTO, error) {
	l, updated, err := s.LikeRepository.Delete(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	s.Logger.Debug("Post unliked", zap.String("postID", postID.String()), zap.String("userID", userID.String()))
	return likePort.ToLikeResultDTO(l, updated), nil
}

func (s *LikeService) current(ctx context.Context, userID, postID uuid.UUID) (*likePort.LikeResultDTO, error) {
	l, err := s.LikeRepository.Find(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	post, err := s.PostRepository.FindActiveByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return likePort.ToLikeResultDTO(l, post), nil
}
