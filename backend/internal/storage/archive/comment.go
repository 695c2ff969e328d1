package archive

import (
	"context"
	"time"

	"github.com/itchan-dev/vault/shared/domain"
	internal_errors "github.com/itchan-dev/vault/shared/errors"
)

type commentRow struct {
	Id      int64  `db:"id"`
	PostId  int64  `db:"post_id"`
	UserId  int64  `db:"user_id"`
	Content []byte `db:"content"`
	Time    dbTime `db:"time"`
}

func (r commentRow) toDomain() (domain.Comment, error) {
	content, err := domain.ParseContent(r.Content)
	if err != nil {
		return domain.Comment{}, internal_errors.Inconsistent("comment %d has malformed content: %v", r.Id, err)
	}
	return domain.Comment{
		Id:      r.Id,
		PostId:  r.PostId,
		UserId:  r.UserId,
		Content: content,
		Time:    r.Time.Time,
	}, nil
}

// ListComments returns the comments of a post visible at cutoff, oldest first.
// Nothing is visible under a post that is itself hidden.
func (s *Storage) ListComments(ctx context.Context, postId domain.PostId, cutoff time.Time) ([]domain.Comment, error) {
	v := s.visibility(cutoff)
	q := &query{}
	q.add(`
		SELECT c.id, c.post_id, c.user_id, c.content, c.time
		FROM pr_comment c
		JOIN pr_post p ON p.id = c.post_id
		WHERE c.post_id = ? AND `, postId)
	v.comment(q, "c", "p")
	q.add(`
		ORDER BY `+s.dialect.instant("c.time")+` ASC, c.id ASC`)

	var rows []commentRow
	if err := s.selectAll(ctx, "comments_by_post", &rows, q.String(), q.args...); err != nil {
		return nil, err
	}

	comments := make([]domain.Comment, 0, len(rows))
	for _, r := range rows {
		comment, err := r.toDomain()
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, nil
}
