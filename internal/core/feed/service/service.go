package feedapp

import (
	"context"
	"math"

	"github.com/kevinseya/app-turismo-dnavarro/internal/core/apperr"
	feedEntity "github.com/kevinseya/app-turismo-dnavarro/internal/core/feed"
	feedPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/feed"
	postPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/post"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type FeedService struct {
	FeedRepository feedPort.FeedRepository
	NearbyFinder   feedPort.NearbyFinder
	Logger         *zap.Logger
}

func NewFeedService(repo feedPort.FeedRepository, nearby feedPort.NearbyFinder, logger *zap.Logger) *FeedService {
	return &FeedService{FeedRepository: repo, NearbyFinder: nearby, Logger: logger}
}

// GetFeed returns the active posts of the users userID follows, newest first.
func (s *FeedService) GetFeed(ctx context.Context, userID uuid.UUID, page, limit int) ([]*postPort.PostDTO, error) {
	if err := validatePage(page, limit); err != nil {
		return nil, err
	}
	posts, err := s.FeedRepository.FollowingFeed(ctx, userID, feedEntity.Offset(page, limit), limit)
	if err != nil {
		return nil, err
	}
	return postPort.ToPostDTOs(posts), nil
}

// GetNearbyFeed returns one page of the active posts within q.RadiusKm, nearest first.
func (s *FeedService) GetNearbyFeed(ctx context.Context, q feedPort.NearbyQuery) ([]*postPort.PostDTO, error) {
	if err := validateNearby(q); err != nil {
		return nil, err
	}

	nearby, err := s.NearbyFinder.FindNearby(ctx, q.Lat, q.Lng, q.RadiusKm)
	if err != nil {
		return nil, err
	}

	items := feedEntity.Page(nearby, q.Page, q.Limit)
	dtos := make([]*postPort.PostDTO, 0, len(items))
	for _, n := range items {
		dto := postPort.ToPostDTO(n.Post)
		distance := n.DistanceKm
		dto.Distance = &distance
		dtos = append(dtos, dto)
	}
	return dtos, nil
}

func validatePage(page, limit int) error {
	if limit < 1 || limit > feedEntity.MaxLimit {
		return apperr.Validation("limit must be between 1 and %d", feedEntity.MaxLimit)
	}
	if page < 1 {
		return apperr.Validation("page must be at least 1")
	}
	// the row offset must fit in an int
	if page-1 > math.MaxInt/limit {
		return apperr.Validation("page is too large")
	}
	return nil
}

func validateNearby(q feedPort.NearbyQuery) error {
	switch {
	case math.IsNaN(q.Lat) || q.Lat < -90 || q.Lat > 90:
		return apperr.Validation("lat must be between -90 and 90")
	case math.IsNaN(q.Lng) || q.Lng < -180 || q.Lng > 180:
		return apperr.Validation("lng must be between -180 and 180")
	case math.IsNaN(q.RadiusKm) || math.IsInf(q.RadiusKm, 0) || q.RadiusKm < 0:
		return apperr.Validation("radiusKm must be a non-negative number")
	}
	return validatePage(q.Page, q.Limit)
}
