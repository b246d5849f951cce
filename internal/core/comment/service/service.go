package commentapp

import (
	"context"
	"fmt"
	"strings"

	"github.com/kevinseya/app-turismo-dnavarro/internal/core/apperr"
	commentEntity "github.com/kevinseya/app-turismo-dnavarro/internal/core/comment"
	notificationEntity "github.com/kevinseya/app-turismo-dnavarro/internal/core/notification"
	userEntity "github.com/kevinseya/app-turismo-dnavarro/internal/core/user"
	commentPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/comment"
	notificationPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/notification"
	postPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/post"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

const (
	NotificationTitle = "Nuevo comentario"
	previewLength     = 50
)

type CommentService struct {
	CommentRepository commentPort.CommentRepository
	PostRepository    postPort.PostRepository
	Notifier          notificationPort.Notifier
	Logger            *zap.Logger
}

func NewCommentService(commentRepo commentPort.CommentRepository, postRepo postPort.PostRepository, notifier notificationPort.Notifier, logger *zap.Logger) *CommentService {
	return &CommentService{
		CommentRepository: commentRepo,
		PostRepository:    postRepo,
		Notifier:          notifier,
		Logger:            logger,
	}
}

// CreateComment stores the comment and bumps the post counter, then notifies the post owner.
// A failed notification is logged and never fails the request.
func (s *CommentService) CreateComment(ctx context.Context, userID, postID uuid.UUID, in commentPort.CreateCommentInput) (*commentPort.CommentDTO, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, apperr.Validation("content is required")
	}
	if in.Rating < commentEntity.MinRating || in.Rating > commentEntity.MaxRating {
		return nil, apperr.Validation("rating must be between %d and %d", commentEntity.MinRating, commentEntity.MaxRating)
	}

	post, err := s.PostRepository.FindActiveByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	c, err := s.CommentRepository.Create(ctx, &commentEntity.Comment{
		ID:       uuid.Must(uuid.NewV4()),
		Content:  content,
		Rating:   in.Rating,
		UserID:   userID,
		PostID:   postID,
		IsActive: true,
	})
	if err != nil {
		return nil, err
	}

	if post.UserID != userID && s.Notifier != nil {
		n := &notificationEntity.Notification{
			Title:     NotificationTitle,
			Message:   CommentMessage(c.User.Name, content),
			UserID:    post.UserID,
			Type:      notificationEntity.TypeComment,
			PostID:    &post.ID,
			CommentID: &c.ID,
		}
		if err := s.Notifier.Notify(ctx, n); err != nil {
			s.Logger.Warn("⚠️ Comment notification failed",
				zap.String("postID", postID.String()),
				zap.String("commentID", c.ID.String()),
				zap.Error(err))
		}
	}

	return commentPort.ToCommentDTO(c), nil
}

// ListComments returns the active comments of an active post, newest first.
func (s *CommentService) ListComments(ctx context.Context, postID uuid.UUID) ([]*commentPort.CommentDTO, error) {
	if _, err := s.PostRepository.FindActiveByID(ctx, postID); err != nil {
		return nil, err
	}
	comments, err := s.CommentRepository.ListActiveByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return commentPort.ToCommentDTOs(comments), nil
}

func (s *CommentService) DeleteComment(ctx context.Context, callerID uuid.UUID, role userEntity.Role, postID, commentID uuid.UUID) error {
	c, err := s.CommentRepository.FindActiveByID(ctx, commentID)
	if err != nil {
		return err
	}
	if c.PostID != postID {
		return apperr.NotFound("comment not found")
	}
	if !userEntity.CanModify(callerID, role, c.UserID) {
		return apperr.Forbidden("only the author or an admin can delete this comment")
	}
	if err := s.CommentRepository.SoftDelete(ctx, c); err != nil {
		return err
	}
	s.Logger.Info("Comment deactivated", zap.String("commentID", commentID.String()), zap.String("by", callerID.String()))
	return nil
}

// CommentMessage builds the owner notification text: the author name (or "Alguien")
// and the first 50 characters of the comment, with "..." when truncated.
func CommentMessage(authorName, content string) string {
	if strings.TrimSpace(authorName) == "" {
		authorName = "Alguien"
	}
	preview := []rune(content)
	suffix := ""
	if len(preview) > previewLength {
		preview = preview[:previewLength]
		suffix = "..."
	}
	return fmt.Sprintf("%s comentó en tu publicación: \"%s%s\"", authorName, string(preview), suffix)
}
