package archive

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/itchan-dev/vault/shared/domain"
	internal_errors "github.com/itchan-dev/vault/shared/errors"
)

type postRow struct {
	Id         int64   `db:"id"`
	ThreadId   int64   `db:"thread_id"`
	Floor      int     `db:"floor"`
	UserId     int64   `db:"user_id"`
	Content    []byte  `db:"content"`
	Time       dbTime  `db:"time"`
	CommentNum int     `db:"comment_num"`
	Signature  *string `db:"signature"`
	Tail       *string `db:"tail"`
}

func (r postRow) toDomain() (domain.Post, error) {
	content, err := domain.ParseContent(r.Content)
	if err != nil {
		return domain.Post{}, internal_errors.Inconsistent("post %d has malformed content: %v", r.Id, err)
	}
	return domain.Post{
		Id:         r.Id,
		ThreadId:   r.ThreadId,
		Floor:      r.Floor,
		UserId:     r.UserId,
		Content:    content,
		Time:       r.Time.Time,
		CommentNum: r.CommentNum,
		Signature:  r.Signature,
		Tail:       r.Tail,
	}, nil
}

// ListPosts returns the posts of a thread visible at cutoff, by floor.
func (s *Storage) ListPosts(ctx context.Context, threadId domain.ThreadId, cutoff time.Time) ([]domain.Post, error) {
	v := s.visibility(cutoff)
	q := &query{}
	q.add(`
		SELECT p.id, p.thread_id, p.floor, p.user_id, p.content, p.time, p.comment_num, p.signature, p.tail
		FROM pr_post p
		WHERE p.thread_id = ? AND `, threadId)
	v.post(q, "p")
	q.add(`
		ORDER BY p.floor ASC`)

	var rows []postRow
	if err := s.selectAll(ctx, "posts_by_thread", &rows, q.String(), q.args...); err != nil {
		return nil, err
	}

	posts := make([]domain.Post, 0, len(rows))
	for _, r := range rows {
		post, err := r.toDomain()
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// GetPostThread returns the thread a post belongs to, or a 404 error for an unknown post.
func (s *Storage) GetPostThread(ctx context.Context, postId domain.PostId) (domain.ThreadId, error) {
	var threadId domain.ThreadId
	err := s.getOne(ctx, "post_thread", &threadId, `SELECT thread_id FROM pr_post WHERE id = ?`, postId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, internal_errors.NotFound("Post")
		}
		return 0, err
	}
	return threadId, nil
}

// ListCommentPreviews returns, per post, its first limit comments visible at cutoff.
// The posts themselves are expected to be visible already.
func (s *Storage) ListCommentPreviews(ctx context.Context, postIds []domain.PostId, cutoff time.Time, limit int) (map[domain.PostId][]domain.Comment, error) {
	previews := make(map[domain.PostId][]domain.Comment, len(postIds))
	if len(postIds) == 0 {
		return previews, nil
	}

	v := s.visibility(cutoff)
	q := &query{}
	q.add(`
		SELECT id, post_id, user_id, content, time
		FROM (
			SELECT c.id, c.post_id, c.user_id, c.content, c.time,
				ROW_NUMBER() OVER (PARTITION BY c.post_id ORDER BY `+s.dialect.instant("c.time")+` ASC, c.id ASC) AS rn
			FROM pr_comment c
			JOIN pr_post p ON p.id = c.post_id
			WHERE c.post_id IN (?) AND `, postIds)
	v.comment(q, "c", "p")
	q.add(`
		) ranked
		WHERE rn <= ?
		ORDER BY post_id, rn`, limit)

	var rows []commentRow
	if err := s.selectAll(ctx, "comment_previews", &rows, q.String(), q.args...); err != nil {
		return nil, err
	}

	for _, r := range rows {
		comment, err := r.toDomain()
		if err != nil {
			return nil, err
		}
		previews[comment.PostId] = append(previews[comment.PostId], comment)
	}
	return previews, nil
}
