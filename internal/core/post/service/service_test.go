package postapp

import (
	"bytes"
	"context"
	"mime/multipart"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	dbadapter "github.com/kevinseya/app-turismo-dnavarro/internal/adapters/database"
	"github.com/kevinseya/app-turismo-dnavarro/internal/adapters/storage"
	"github.com/kevinseya/app-turismo-dnavarro/internal/core/apperr"
	"github.com/kevinseya/app-turismo-dnavarro/internal/core/comment"
	postEntity "github.com/kevinseya/app-turismo-dnavarro/internal/core/post"
	userEntity "github.com/kevinseya/app-turismo-dnavarro/internal/core/user"
	postPort "github.com/kevinseya/app-turismo-dnavarro/internal/ports/post"
	"github.com/kevinseya/app-turismo-dnavarro/internal/testutil"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingGeoIndex struct {
	added   []uuid.UUID
	removed []uuid.UUID
}

func (g *recordingGeoIndex) Add(_ context.Context, p *postEntity.Post) error {
	g.added = append(g.added, p.ID)
	return nil
}

func (g *recordingGeoIndex) Remove(_ context.Context, id uuid.UUID) error {
	g.removed = append(g.removed, id)
	return nil
}

func setup(t *testing.T) (*PostService, *gorm.DB, *recordingGeoIndex, string) {
	db := testutil.NewTestDB(t)
	dir := t.TempDir()
	store, err := storage.NewLocalImageStore(dir)
	require.NoError(t, err)
	geo := &recordingGeoIndex{}
	svc := NewPostService(
		dbadapter.NewPostRepositoryDatabase(db),
		dbadapter.NewCommentRepositoryDatabase(db),
		store,
		geo,
		testutil.Logger(),
	)
	return svc, db, geo, dir
}

func validInput() postPort.CreatePostInput {
	return postPort.CreatePostInput{
		Title:       "Laguna de Quilotoa",
		Description: "Cráter volcánico",
		Latitude:    -0.8589,
		Longitude:   -78.9063,
		Phone:       "0991234567",
		Images:      []string{"uploads/a.png"},
	}
}

func TestCreatePost(t *testing.T) {
	ctx := context.Background()
	svc, db, geo, _ := setup(t)
	owner := testutil.CreateUser(t, db, "owner", userEntity.RoleClient)

	dto, err := svc.CreatePost(ctx, owner.ID, validInput())
	require.NoError(t, err)
	assert.True(t, dto.IsActive)
	assert.Zero(t, dto.LikesCount)
	assert.Zero(t, dto.CommentsCount)
	assert.Equal(t, []string{"uploads/a.png"}, dto.Images)
	assert.Equal(t, []uuid.UUID{uuid.FromStringOrNil(dto.ID)}, geo.added)

	got, err := svc.GetPost(ctx, uuid.FromStringOrNil(dto.ID))
	require.NoError(t, err)
	assert.Equal(t, "Laguna de Quilotoa", got.Title)
	require.NotNil(t, got.User)
	assert.Equal(t, "owner", got.User.Name)
}

func TestCreatePostValidation(t *testing.T) {
	ctx := context.Background()
	svc, db, _, _ := setup(t)
	owner := testutil.CreateUser(t, db, "owner", userEntity.RoleClient)

	mutations := []func(*postPort.CreatePostInput){
		func(in *postPort.CreatePostInput) { in.Title = " " },
		func(in *postPort.CreatePostInput) { in.Description = "" },
		func(in *postPort.CreatePostInput) { in.Phone = "" },
		func(in *postPort.CreatePostInput) { in.Latitude = 90.5 },
		func(in *postPort.CreatePostInput) { in.Longitude = -180.1 },
		func(in *postPort.CreatePostInput) { in.Images = []string{""} },
	}
	for i, mutate := range mutations {
		in := validInput()
		mutate(&in)
		_, err := svc.CreatePost(ctx, owner.ID, in)
		assert.ErrorIs(t, err, apperr.ErrValidation, "case %d", i)
	}
}

func TestListPostsAttachesActiveComments(t *testing.T) {
	ctx := context.Background()
	svc, db, _, _ := setup(t)
	owner := testutil.CreateUser(t, db, "owner", userEntity.RoleClient)
	p := testutil.CreatePost(t, db, owner)
	testutil.CreatePost(t, db, owner, testutil.Inactive())

	require.NoError(t, db.Create(&comment.Comment{Content: "visible", Rating: 5, UserID: owner.ID, PostID: p.ID, IsActive: true}).Error)
	require.NoError(t, db.Create(&comment.Comment{Content: "removed", Rating: 1, UserID: owner.ID, PostID: p.ID}).Error)

	posts, err := svc.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Len(t, posts[0].Comments, 1)
	assert.Equal(t, "visible", posts[0].Comments[0].Content)

	byUser, err := svc.ListByUser(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, byUser, 1)
}

func TestDeletePost(t *testing.T) {
	ctx := context.Background()
	svc, db, geo, _ := setup(t)
	owner := testutil.CreateUser(t, db, "owner", userEntity.RoleClient)
	stranger := testutil.CreateUser(t, db, "stranger", userEntity.RoleClient)
	admin := testutil.CreateUser(t, db, "admin", userEntity.RoleAdmin)
	mine := testutil.CreatePost(t, db, owner)
	theirs := testutil.CreatePost(t, db, owner)

	err := svc.DeletePost(ctx, stranger.ID, userEntity.RoleClient, mine.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	require.NoError(t, svc.DeletePost(ctx, owner.ID, userEntity.RoleClient, mine.ID))
	require.NoError(t, svc.DeletePost(ctx, admin.ID, userEntity.RoleAdmin, theirs.ID))
	assert.Equal(t, []uuid.UUID{mine.ID, theirs.ID}, geo.removed)

	_, err = svc.GetPost(ctx, mine.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	err = svc.DeletePost(ctx, owner.ID, userEntity.RoleClient, mine.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.False(t, testutil.ReloadPost(t, db, mine.ID).IsActive)
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func fileHeaders(t *testing.T, files map[string][]byte) []*multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		part, err := w.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = part.Write(files[name])
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["images"]
}

func TestUploadImages(t *testing.T) {
	ctx := context.Background()
	svc, _, _, dir := setup(t)

	paths, err := svc.UploadImages(ctx, fileHeaders(t, map[string][]byte{"photo.txt": pngHeader}))
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.True(t, strings.HasPrefix(paths[0], "uploads/"))
	assert.True(t, strings.HasSuffix(paths[0], ".png"), "extension comes from the content")

	stored, err := os.ReadFile(filepath.Join(dir, filepath.Base(paths[0])))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, stored)
}

func TestUploadImagesRejects(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := setup(t)

	_, err := svc.UploadImages(ctx, nil)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.UploadImages(ctx, fileHeaders(t, map[string][]byte{"evil.png": []byte("just some text")}))
	assert.ErrorIs(t, err, apperr.ErrValidation)

	six := map[string][]byte{}
	for _, n := range []string{"1", "2", "3", "4", "5", "6"} {
		six[n+".png"] = pngHeader
	}
	_, err = svc.UploadImages(ctx, fileHeaders(t, six))
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestUploadImagesRemovesSavedFilesOnFailure(t *testing.T) {
	ctx := context.Background()
	svc, _, _, dir := setup(t)

	// files are sent in name order: two images, then a text file
	_, err := svc.UploadImages(ctx, fileHeaders(t, map[string][]byte{
		"1.png": pngHeader,
		"2.png": pngHeader,
		"3.png": []byte("just some text"),
	}))
	require.ErrorIs(t, err, apperr.ErrValidation)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
