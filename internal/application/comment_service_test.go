package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screenlog/movie-catalog-api/internal/infrastructure/memory"
)

func newCommentFixture(t *testing.T) (*CommentService, *MovieService) {
	t.Helper()
	movies := memory.NewMovieRepository()
	comments := memory.NewCommentRepository()
	return NewCommentService(comments, movies, testLogger()),
		NewMovieService(movies, testLogger(), nil, "", nil, "")
}

func TestCommentCreateTopLevel(t *testing.T) {
	svc, movieSvc := newCommentFixture(t)
	ctx := context.Background()

	m, err := movieSvc.Create(ctx, sampleMovie("Heat", "1995-12-15"), "owner")
	require.NoError(t, err)

	c, err := svc.CreateTopLevel(ctx, m.ID, "user-1", "what a shootout")
	require.NoError(t, err)
	require.NotNil(t, c.MovieID)
	assert.Equal(t, m.ID, *c.MovieID)
	assert.Nil(t, c.ParentCommentID)

	_, err = svc.CreateTopLevel(ctx, "missing", "user-1", "hello")
	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestCommentReplyDepthLimited(t *testing.T) {
	svc, movieSvc := newCommentFixture(t)
	ctx := context.Background()

	m, err := movieSvc.Create(ctx, sampleMovie("Heat", "1995-12-15"), "owner")
	require.NoError(t, err)

	parent, err := svc.CreateTopLevel(ctx, m.ID, "user-1", "what a shootout")
	require.NoError(t, err)

	reply, err := svc.CreateReply(ctx, parent.ID, "user-2", "agreed")
	require.NoError(t, err)
	require.NotNil(t, reply.ParentCommentID)
	assert.Equal(t, parent.ID, *reply.ParentCommentID)

	// one level only
	_, err = svc.CreateReply(ctx, reply.ID, "user-3", "me too")
	assert.ErrorIs(t, err, ErrReplyToReply)

	_, err = svc.CreateReply(ctx, "missing", "user-3", "hello")
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestCommentListAttachesReplies(t *testing.T) {
	svc, movieSvc := newCommentFixture(t)
	ctx := context.Background()

	m, err := movieSvc.Create(ctx, sampleMovie("Heat", "1995-12-15"), "owner")
	require.NoError(t, err)

	first, err := svc.CreateTopLevel(ctx, m.ID, "user-1", "first comment")
	require.NoError(t, err)
	second, err := svc.CreateTopLevel(ctx, m.ID, "user-2", "second comment")
	require.NoError(t, err)
	_, err = svc.CreateReply(ctx, first.ID, "user-3", "a reply")
	require.NoError(t, err)

	oldest, err := svc.List(ctx, m.ID, 0, 10, false)
	require.NoError(t, err)
	require.Len(t, oldest, 2)
	assert.Equal(t, first.ID, oldest[0].ID)
	assert.Equal(t, second.ID, oldest[1].ID)
	require.Len(t, oldest[0].Replies, 1)
	assert.Equal(t, "a reply", oldest[0].Replies[0].Content)
	assert.Empty(t, oldest[1].Replies)

	newest, err := svc.List(ctx, m.ID, 0, 10, true)
	require.NoError(t, err)
	require.Len(t, newest, 2)
	assert.Equal(t, second.ID, newest[0].ID)

	// replies never appear as top-level entries
	for _, c := range newest {
		assert.Nil(t, c.ParentCommentID)
	}

	_, err = svc.List(ctx, "missing", 0, 10, false)
	assert.ErrorIs(t, err, ErrMovieNotFound)
}
