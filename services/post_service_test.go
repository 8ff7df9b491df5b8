package services

import (
	"context"
	"testing"
	"time"

	"quill/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2026, time.March, 5, 10, 0, 0, 0, time.UTC)
}

func TestCreatePostStampsDateAndAuthor(t *testing.T) {
	db := newTestDB(t)
	admin := mustCreateUser(t, db, "admin@x.com", "Admin")
	posts := NewPostService(db).WithClock(fixedClock)

	post, err := posts.CreatePost(context.Background(), admin.ID, postRequest("Hello"))
	require.NoError(t, err)

	assert.NotZero(t, post.ID)
	assert.Equal(t, admin.ID, post.AuthorID)
	assert.Equal(t, "March 05, 2026", post.Date)
}

func TestCreatePostDuplicateTitle(t *testing.T) {
	db := newTestDB(t)
	admin := mustCreateUser(t, db, "admin@x.com", "Admin")
	posts := NewPostService(db)
	ctx := context.Background()

	_, err := posts.CreatePost(ctx, admin.ID, postRequest("Hello"))
	require.NoError(t, err)

	_, err = posts.CreatePost(ctx, admin.ID, postRequest("Hello"))
	assert.ErrorIs(t, err, ErrDuplicateTitle)

	all, err := posts.ListPosts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreatePostUnknownAuthor(t *testing.T) {
	db := newTestDB(t)
	_, err := NewPostService(db).CreatePost(context.Background(), 99, postRequest("Orphan"))
	assert.ErrorIs(t, err, ErrForeignKeyViolation)
}

func TestCreateEditViewRoundTrip(t *testing.T) {
	db := newTestDB(t)
	admin := mustCreateUser(t, db, "admin@x.com", "Admin")
	posts := NewPostService(db).WithClock(fixedClock)
	ctx := context.Background()

	created, err := posts.CreatePost(ctx, admin.ID, postRequest("Hello"))
	require.NoError(t, err)

	posts.WithClock(func() time.Time { return fixedClock().AddDate(0, 1, 0) })
	edited := models.PostRequest{
		Title:    "Hello again",
		Subtitle: "new sub",
		Body:     "new body",
		ImgURL:   "https://img.test/new.png",
	}
	update := edited.AsUpdate()
	_, err = posts.UpdatePost(ctx, created.ID, &update)
	require.NoError(t, err)

	view, err := posts.GetPost(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, view.ID)
	assert.Equal(t, admin.ID, view.AuthorID)
	assert.Equal(t, "Admin", view.AuthorName)
	assert.Equal(t, created.Date, view.Date)
	assert.Equal(t, edited.Title, view.Title)
	assert.Equal(t, edited.Subtitle, view.Subtitle)
	assert.Equal(t, edited.Body, view.Body)
	assert.Equal(t, edited.ImgURL, view.ImgURL)
}

func TestUpdatePostLeavesMissingFieldsAlone(t *testing.T) {
	db := newTestDB(t)
	admin := mustCreateUser(t, db, "admin@x.com", "Admin")
	posts := NewPostService(db)
	ctx := context.Background()

	created, err := posts.CreatePost(ctx, admin.ID, postRequest("Hello"))
	require.NoError(t, err)

	subtitle := "only this"
	updated, err := posts.UpdatePost(ctx, created.ID, &models.UpdatePostRequest{Subtitle: &subtitle})
	require.NoError(t, err)

	assert.Equal(t, "only this", updated.Subtitle)
	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, created.Body, updated.Body)
	assert.Equal(t, created.ImgURL, updated.ImgURL)

	unchanged, err := posts.UpdatePost(ctx, created.ID, &models.UpdatePostRequest{})
	require.NoError(t, err)
	assert.Equal(t, "only this", unchanged.Subtitle)
}

func TestUpdatePostErrors(t *testing.T) {
	db := newTestDB(t)
	admin := mustCreateUser(t, db, "admin@x.com", "Admin")
	posts := NewPostService(db)
	ctx := context.Background()

	first, err := posts.CreatePost(ctx, admin.ID, postRequest("First"))
	require.NoError(t, err)
	_, err = posts.CreatePost(ctx, admin.ID, postRequest("Second"))
	require.NoError(t, err)

	title := "Second"
	_, err = posts.UpdatePost(ctx, first.ID, &models.UpdatePostRequest{Title: &title})
	assert.ErrorIs(t, err, ErrDuplicateTitle)

	_, err = posts.UpdatePost(ctx, 404, &models.UpdatePostRequest{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)

	view, err := posts.GetPost(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "First", view.Title)
}

func TestDeletePostCascadesComments(t *testing.T) {
	db := newTestDB(t)
	admin := mustCreateUser(t, db, "admin@x.com", "Admin")
	reader := mustCreateUser(t, db, "reader@x.com", "Reader")
	posts := NewPostService(db)
	comments := NewCommentService(db)
	ctx := context.Background()

	doomed, err := posts.CreatePost(ctx, admin.ID, postRequest("Doomed"))
	require.NoError(t, err)
	kept, err := posts.CreatePost(ctx, admin.ID, postRequest("Kept"))
	require.NoError(t, err)

	_, err = comments.CreateComment(ctx, doomed.ID, reader.ID, "first!")
	require.NoError(t, err)
	_, err = comments.CreateComment(ctx, kept.ID, reader.ID, "stays")
	require.NoError(t, err)

	require.NoError(t, posts.DeletePost(ctx, doomed.ID))

	all, err := posts.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, kept.ID, all[0].ID)

	orphans, err := comments.CountComments(ctx, doomed.ID)
	require.NoError(t, err)
	assert.Zero(t, orphans)

	remaining, err := comments.CountComments(ctx, kept.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), remaining)

	_, err = posts.GetPost(ctx, doomed.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, posts.DeletePost(ctx, doomed.ID), ErrNotFound)
}

func TestListPostsInIDOrder(t *testing.T) {
	db := newTestDB(t)
	admin := mustCreateUser(t, db, "admin@x.com", "Admin")
	posts := NewPostService(db)
	ctx := context.Background()

	for _, title := range []string{"c", "a", "b"} {
		_, err := posts.CreatePost(ctx, admin.ID, postRequest(title))
		require.NoError(t, err)
	}

	all, err := posts.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{all[0].Title, all[1].Title, all[2].Title})
	assert.Equal(t, "Admin", all[0].AuthorName)
}
