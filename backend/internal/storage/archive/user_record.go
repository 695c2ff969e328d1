package archive

import (
	"context"
	"time"

	"github.com/itchan-dev/vault/shared/domain"
	internal_errors "github.com/itchan-dev/vault/shared/errors"
)

type userRecordRow struct {
	Kind       string `db:"kind"`
	ThreadId   int64  `db:"thread_id"`
	Title      string `db:"title"`
	PostId     int64  `db:"post_id"`
	Floor      int    `db:"floor"`
	CommentId  *int64 `db:"comment_id"`
	RecordId   int64  `db:"record_id"`
	Content    []byte `db:"content"`
	RecordTime dbTime `db:"record_time"`
}

func (r userRecordRow) toDomain() (domain.UserRecord, error) {
	content, err := domain.ParseContent(r.Content)
	if err != nil {
		return nil, internal_errors.Inconsistent("%s %d has malformed content: %v", r.Kind, r.RecordId, err)
	}
	switch {
	case r.CommentId != nil:
		return domain.CommentRecord{
			ThreadId:  r.ThreadId,
			Title:     r.Title,
			PostId:    r.PostId,
			Floor:     r.Floor,
			CommentId: *r.CommentId,
			Content:   content,
			Time:      r.RecordTime.Time,
		}, nil
	case r.Floor == 1:
		return domain.ThreadRecord{
			ThreadId: r.ThreadId,
			Title:    r.Title,
			PostId:   r.PostId,
			Content:  content,
			Time:     r.RecordTime.Time,
		}, nil
	default:
		return domain.PostRecord{
			ThreadId: r.ThreadId,
			Title:    r.Title,
			PostId:   r.PostId,
			Floor:    r.Floor,
			Content:  content,
			Time:     r.RecordTime.Time,
		}, nil
	}
}

// ListUserRecords returns everything the user wrote that is visible at cutoff,
// newest first. Opening posts come back as thread records.
func (s *Storage) ListUserRecords(ctx context.Context, userId domain.UserId, cutoff time.Time) ([]domain.UserRecord, error) {
	v := s.visibility(cutoff)
	q := &query{}
	q.add(`
		SELECT kind, thread_id, title, post_id, floor, comment_id, record_id, content, record_time
		FROM (
		SELECT 'post' AS kind, p.thread_id AS thread_id, t.title AS title, p.id AS post_id, p.floor AS floor,
			NULL AS comment_id, p.id AS record_id, p.content AS content, p.time AS record_time
		FROM pr_post p
		JOIN pr_thread t ON t.id = p.thread_id
		WHERE p.user_id = ? AND `, userId)
	v.post(q, "p")
	q.add(`
		UNION ALL
		SELECT 'comment', p.thread_id, t.title, p.id, p.floor,
			c.id, c.id, c.content, c.time
		FROM pr_comment c
		JOIN pr_post p ON p.id = c.post_id
		JOIN pr_thread t ON t.id = p.thread_id
		WHERE c.user_id = ? AND `, userId)
	v.comment(q, "c", "p")
	q.add(`
		) r
		ORDER BY `+s.dialect.instant("r.record_time")+` DESC, r.record_id DESC`)

	var rows []userRecordRow
	if err := s.selectAll(ctx, "user_records", &rows, q.String(), q.args...); err != nil {
		return nil, err
	}

	records := make([]domain.UserRecord, 0, len(rows))
	for _, r := range rows {
		record, err := r.toDomain()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
