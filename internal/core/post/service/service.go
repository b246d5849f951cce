package postapp

import (
	"context"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"strings"

	"github.com/kevinseya/app-turismo-dnavarro/internal/core/apperr"
	postEntity "github.com/kevinseya/app-turismo-dnavarro/internal/core/post"
	userEntity "github.com/kevinseya/app-turismo-dnavarro/internal/core/user"
	commentPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/comment"
	postPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/post"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const (
	MaxUploadFiles     = 5
	MaxUploadFileBytes = 10 << 20
)

type PostService struct {
	PostRepository    postPort.PostRepository
	CommentRepository commentPort.CommentRepository
	ImageStore        postPort.ImageStore
	GeoIndex          postPort.GeoIndex // optional
	Logger            *zap.Logger
}

func NewPostService(
	postRepo postPort.PostRepository,
	commentRepo commentPort.CommentRepository,
	imageStore postPort.ImageStore,
	geoIndex postPort.GeoIndex,
	logger *zap.Logger,
) *PostService {
	return &PostService{
		PostRepository:    postRepo,
		CommentRepository: commentRepo,
		ImageStore:        imageStore,
		GeoIndex:          geoIndex,
		Logger:            logger,
	}
}

// CreatePost stores an active post with zeroed counters and indexes its location.
func (s *PostService) CreatePost(ctx context.Context, userID uuid.UUID, in postPort.CreatePostInput) (*postPort.PostDTO, error) {
	if err := validateCreate(&in); err != nil {
		return nil, err
	}

	post := &postEntity.Post{
		ID:          uuid.Must(uuid.NewV4()),
		Title:       in.Title,
		Description: in.Description,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Phone:       in.Phone,
		Images:      datatypes.JSONSlice[string](in.Images),
		IsActive:    true,
		UserID:      userID,
	}

	created, err := s.PostRepository.Create(ctx, post)
	if err != nil {
		s.Logger.Error("❌ Failed to create post", zap.String("userID", userID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	s.Logger.Info("✅ Created post", zap.String("postID", created.ID.String()), zap.String("userID", userID.String()))

	if s.GeoIndex != nil {
		if err := s.GeoIndex.Add(ctx, created); err != nil {
			s.Logger.Warn("⚠️ Could not index post location", zap.String("postID", created.ID.String()), zap.Error(err))
		}
	}

	return postPort.ToPostDTO(created), nil
}

// ListPosts returns every active post, newest first, with its active comments.
func (s *PostService) ListPosts(ctx context.Context) ([]*postPort.PostDTO, error) {
	posts, err := s.PostRepository.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return s.withComments(ctx, posts)
}

func (s *PostService) GetPost(ctx context.Context, id uuid.UUID) (*postPort.PostDTO, error) {
	post, err := s.PostRepository.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dtos, err := s.withComments(ctx, []*postEntity.Post{post})
	if err != nil {
		return nil, err
	}
	return dtos[0], nil
}

func (s *PostService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*postPort.PostDTO, error) {
	posts, err := s.PostRepository.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return postPort.ToPostDTOs(posts), nil
}

// DeletePost soft-deletes a post; only its owner or an admin may do so.
func (s *PostService) DeletePost(ctx context.Context, callerID uuid.UUID, role userEntity.Role, id uuid.UUID) error {
	post, err := s.PostRepository.FindActiveByID(ctx, id)
	if err != nil {
		return err
	}
	if !userEntity.CanModify(callerID, role, post.UserID) {
		return apperr.Forbidden("only the owner or an admin can delete this post")
	}
	if err := s.PostRepository.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.Logger.Info("Post deactivated", zap.String("postID", id.String()), zap.String("by", callerID.String()))

	if s.GeoIndex != nil {
		if err := s.GeoIndex.Remove(ctx, id); err != nil {
			s.Logger.Warn("⚠️ Could not remove post from location index", zap.String("postID", id.String()), zap.Error(err))
		}
	}
	return nil
}

// UploadImages stores up to MaxUploadFiles images and returns their relative paths.
// Content is sniffed; the client-supplied type and extension are ignored.
func (s *PostService) UploadImages(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	if len(files) == 0 {
		return nil, apperr.Validation("at least one image is required")
	}
	if len(files) > MaxUploadFiles {
		return nil, apperr.Validation("at most %d images per upload", MaxUploadFiles)
	}

	paths := make([]string, 0, len(files))
	for _, fh := range files {
		p, err := s.saveImage(ctx, fh)
		if err != nil {
			s.discardImages(paths)
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// discardImages removes the files of a batch that failed part way.
func (s *PostService) discardImages(paths []string) {
	// the request context may already be cancelled
	ctx := context.Background()
	for _, p := range paths {
		if err := s.ImageStore.Remove(ctx, p); err != nil {
			s.Logger.Warn("⚠️ Could not remove orphaned upload", zap.String("path", p), zap.Error(err))
		}
	}
}

func (s *PostService) saveImage(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	if fh.Size > MaxUploadFileBytes {
		return "", apperr.Validation("%s exceeds %d bytes", fh.Filename, MaxUploadFileBytes)
	}
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", apperr.Validation("only image files are allowed: %s is %s", fh.Filename, mtype.String())
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	name := uuid.Must(uuid.NewV4()).String() + mtype.Extension()
	return s.ImageStore.Save(ctx, name, f)
}

func (s *PostService) withComments(ctx context.Context, posts []*postEntity.Post) ([]*postPort.PostDTO, error) {
	ids := make([]uuid.UUID, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	comments, err := s.CommentRepository.ListActiveByPosts(ctx, ids)
	if err != nil {
		return nil, err
	}

	byPost := make(map[uuid.UUID][]*commentPort.CommentDTO, len(posts))
	for _, c := range comments {
		byPost[c.PostID] = append(byPost[c.PostID], commentPort.ToCommentDTO(c))
	}

	dtos := postPort.ToPostDTOs(posts)
	for i, p := range posts {
		dtos[i].Comments = byPost[p.ID]
		if dtos[i].Comments == nil {
			dtos[i].Comments = []*commentPort.CommentDTO{}
		}
	}
	return dtos, nil
}

func validateCreate(in *postPort.CreatePostInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Phone = strings.TrimSpace(in.Phone)

	switch {
	case in.Title == "":
		return apperr.Validation("title is required")
	case in.Description == "":
		return apperr.Validation("description is required")
	case in.Phone == "":
		return apperr.Validation("phone is required")
	case math.IsNaN(in.Latitude) || in.Latitude < -90 || in.Latitude > 90:
		return apperr.Validation("latitude must be between -90 and 90")
	case math.IsNaN(in.Longitude) || in.Longitude < -180 || in.Longitude > 180:
		return apperr.Validation("longitude must be between -180 and 180")
	}

	images := make([]string, 0, len(in.Images))
	for _, img := range in.Images {
		img = strings.TrimSpace(img)
		if img == "" {
			return apperr.Validation("images must not contain empty paths")
		}
		images = append(images, img)
	}
	in.Images = images
	return nil
}
