package archive

import (
	"context"
	"testing"
	"time"

	"github.com/itchan-dev/vault/shared/domain"
	internal_errors "github.com/itchan-dev/vault/shared/errors"
	"github.com/itchan-dev/vault/shared/timemachine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPosts(t *testing.T) {
	ctx := context.Background()

	t.Run("orders by floor and respects cutoff", func(t *testing.T) {
		s := newSqliteStorage(t)
		f := newFixture(t, s)
		f.thread(1, "thread", 10)
		f.post(103, 1, 3, 10, at(3), text("third"))
		f.post(101, 1, 1, 10, at(1), text("first"))
		f.post(102, 1, 2, 11, at(2), text("second"))

		posts, err := s.ListPosts(ctx, 1, timemachine.EndOfTime)
		require.NoError(t, err)
		assert.Equal(t, []int64{101, 102, 103}, postIdsOf(posts))
		assert.Equal(t, domain.Content{domain.Text{Text: "first"}}, posts[0].Content)
		assert.True(t, posts[0].Time.Equal(at(1)))

		posts, err = s.ListPosts(ctx, 1, at(2))
		require.NoError(t, err)
		assert.Equal(t, []int64{101}, postIdsOf(posts), "cutoff is exclusive")
	})

	t.Run("deletion applies from its operation time", func(t *testing.T) {
		s := newSqliteStorage(t)
		f := newFixture(t, s)
		f.thread(1, "thread", 10)
		f.post(101, 1, 1, 10, at(1), text("op"))
		f.post(102, 1, 2, 11, at(2), text("reply"))
		f.postLog(1, 1, int64(102), domain.OperationDeletePost, at(5))

		posts, err := s.ListPosts(ctx, 1, at(4))
		require.NoError(t, err)
		assert.Equal(t, []int64{101, 102}, postIdsOf(posts), "cutoff between creation and deletion")

		posts, err = s.ListPosts(ctx, 1, at(6))
		require.NoError(t, err)
		assert.Equal(t, []int64{101}, postIdsOf(posts), "cutoff after deletion")

		posts, err = s.ListPosts(ctx, 1, timemachine.EndOfTime)
		require.NoError(t, err)
		assert.Equal(t, []int64{101}, postIdsOf(posts), "present day")
	})

	t.Run("deletion inside an incident window is ignored", func(t *testing.T) {
		s := newSqliteStorage(t)
		f := newFixture(t, s)
		f.thread(1, "thread", 10)
		f.post(101, 1, 1, 10, at(1), text("op"))
		f.postLog(1, 1, int64(101), domain.OperationDeletePost, timemachine.FirstIncident.Start.Add(30*time.Minute))
		f.postLog(2, 1, int64(101), domain.OperationHidePost, timemachine.SecondIncident.Start)

		for _, cutoff := range []time.Time{at(2), timemachine.SecondIncident.End.Add(time.Hour), timemachine.EndOfTime} {
			posts, err := s.ListPosts(ctx, 1, cutoff)
			require.NoError(t, err)
			assert.Equal(t, []int64{101}, postIdsOf(posts), "cutoff %s", cutoff)
		}
	})

	t.Run("incident window end is exclusive", func(t *testing.T) {
		s := newSqliteStorage(t)
		f := newFixture(t, s)
		f.thread(1, "thread", 10)
		f.post(101, 1, 1, 10, at(1), text("op"))
		f.postLog(1, 1, int64(101), domain.OperationDeletePost, timemachine.FirstIncident.End)

		posts, err := s.ListPosts(ctx, 1, timemachine.EndOfTime)
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("latest admissible action wins", func(t *testing.T) {
		s := newSqliteStorage(t)
		f := newFixture(t, s)
		f.thread(1, "thread", 10)
		f.post(101, 1, 1, 10, at(1), text("op"))
		f.postLog(1, 1, int64(101), domain.OperationDeletePost, at(2))
		f.postLog(2, 1, int64(101), domain.OperationRestorePost, at(4))

		posts, err := s.ListPosts(ctx, 1, at(3))
		require.NoError(t, err)
		assert.Empty(t, posts, "deleted, not yet restored")

		posts, err = s.ListPosts(ctx, 1, at(5))
		require.NoError(t, err)
		assert.Equal(t, []int64{101}, postIdsOf(posts), "restored")
	})

	t.Run("restore inside an incident window does not undo a deletion", func(t *testing.T) {
		s := newSqliteStorage(t)
		f := newFixture(t, s)
		f.thread(1, "thread", 10)
		f.post(101, 1, 1, 10, at(1), text("op"))
		f.postLog(1, 1, int64(101), domain.OperationDeletePost, at(2))
		f.postLog(2, 1, int64(101), domain.OperationRestorePost, timemachine.FirstIncident.Start)

		posts, err := s.ListPosts(ctx, 1, timemachine.EndOfTime)
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("thread level deletion hides every post", func(t *testing.T) {
		s := newSqliteStorage(t)
		f := newFixture(t, s)
		f.thread(1, "thread", 10)
		f.thread(2, "other", 10)
		f.post(101, 1, 1, 10, at(1), text("op"))
		f.post(102, 1, 2, 11, at(2), text("reply"))
		f.post(201, 2, 1, 10, at(1), text("other op"))
		f.postLog(1, 1, nil, domain.OperationDeleteThread, at(3))

		posts, err := s.ListPosts(ctx, 1, timemachine.EndOfTime)
		require.NoError(t, err)
		assert.Empty(t, posts)

		posts, err = s.ListPosts(ctx, 2, timemachine.EndOfTime)
		require.NoError(t, err)
		assert.Equal(t, []int64{201}, postIdsOf(posts))
	})

	t.Run("absent content and optional fields", func(t *testing.T) {
		s := newSqliteStorage(t)
		f := newFixture(t, s)
		f.thread(1, "thread", 10)
		f.post(101, 1, 1, 10, at(1), "")

		posts, err := s.ListPosts(ctx, 1, timemachine.EndOfTime)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Nil(t, posts[0].Content)
		assert.Nil(t, posts[0].Signature)
		assert.Nil(t, posts[0].Tail)
	})

	t.Run("malformed content is an inconsistency", func(t *testing.T) {
		s := newSqliteStorage(t)
		f := newFixture(t, s)
		f.thread(1, "thread", 10)
		f.post(101, 1, 1, 10, at(1), `[{"type":"hologram"}]`)

		_, err := s.ListPosts(ctx, 1, timemachine.EndOfTime)
		require.Error(t, err)
		assert.True(t, internal_errors.Is[*internal_errors.DataInconsistency](err))
	})
}

func TestGetPostThread(t *testing.T) {
	ctx := context.Background()
	s := newSqliteStorage(t)
	f := newFixture(t, s)
	f.thread(1, "thread", 10)
	f.post(101, 1, 1, 10, at(1), text("op"))

	threadId, err := s.GetPostThread(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, int64(1), threadId)

	_, err = s.GetPostThread(ctx, 999)
	require.Error(t, err)
	assert.Equal(t, 404, internal_errors.StatusCode(err))
}

func TestListCommentPreviews(t *testing.T) {
	ctx := context.Background()
	s := newSqliteStorage(t)
	f := newFixture(t, s)
	f.thread(1, "thread", 10)
	f.post(101, 1, 1, 10, at(1), text("op"))
	f.post(102, 1, 2, 10, at(1), text("reply"))
	f.post(103, 1, 3, 10, at(1), text("quiet"))
	for i := int64(0); i < 4; i++ {
		f.comment(1000+i, 101, 20, at(2+float64(i)), text("c"))
	}
	f.comment(2000, 102, 20, at(3), text("kept"))
	f.comment(2001, 102, 21, at(4), text("deleted"))
	f.postLog(1, 1, int64(2001), domain.OperationDeletePost, at(5))

	previews, err := s.ListCommentPreviews(ctx, []int64{101, 102, 103}, timemachine.EndOfTime, 3)
	require.NoError(t, err)
	assert.Equal(t, []int64{1000, 1001, 1002}, commentIdsOf(previews[101]))
	assert.Equal(t, []int64{2000}, commentIdsOf(previews[102]))
	assert.Empty(t, previews[103])

	previews, err = s.ListCommentPreviews(ctx, nil, timemachine.EndOfTime, 3)
	require.NoError(t, err)
	assert.Empty(t, previews)
}
