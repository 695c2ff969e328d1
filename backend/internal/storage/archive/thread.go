package archive

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/itchan-dev/vault/shared/domain"
	internal_errors "github.com/itchan-dev/vault/shared/errors"
)

type threadActivityRow struct {
	ThreadId     int64  `db:"thread_id"`
	UserId       int64  `db:"user_id"`
	ActivityTime dbTime `db:"activity_time"`
}

func (r threadActivityRow) toDomain() domain.ThreadActivity {
	return domain.ThreadActivity{
		ThreadId: r.ThreadId,
		UserId:   r.UserId,
		Time:     r.ActivityTime.Time,
	}
}

type activityContentRow struct {
	ThreadId     int64  `db:"thread_id"`
	UserId       int64  `db:"user_id"`
	ActivityTime dbTime `db:"activity_time"`
	Id           int64  `db:"id"`
	Content      []byte `db:"content"`
}

// addActivity appends every post and comment visible at v's cutoff, as
// (thread_id, user_id, activity_time, id, content).
func addActivity(q *query, v visibility) {
	q.add(`
		SELECT p.thread_id AS thread_id, p.user_id AS user_id, p.time AS activity_time, p.id AS id, p.content AS content
		FROM pr_post p
		WHERE `)
	v.post(q, "p")
	q.add(`
		UNION ALL
		SELECT p.thread_id, c.user_id, c.time, c.id, c.content
		FROM pr_comment c
		JOIN pr_post p ON p.id = c.post_id
		WHERE `)
	v.comment(q, "c", "p")
}

// ListThreadActivity returns every thread with visible activity at cutoff,
// most recently active first (ties by thread id). Activity is a visible post
// or comment; with a keyword only activity whose text contains it counts.
func (s *Storage) ListThreadActivity(ctx context.Context, cutoff time.Time, keyword string) ([]domain.ThreadActivity, error) {
	if keyword != "" {
		return s.listMatchingActivity(ctx, cutoff, keyword)
	}

	d := s.dialect
	q := &query{}
	q.add(`
	WITH activity AS (`)
	addActivity(q, s.visibility(cutoff))
	q.add(`
	), ranked AS (
		SELECT thread_id, user_id, activity_time,
			ROW_NUMBER() OVER (PARTITION BY thread_id ORDER BY ` + d.instant("activity_time") + ` DESC, id DESC) AS rn
		FROM activity
	)
	SELECT thread_id, user_id, activity_time
	FROM ranked
	WHERE rn = 1
	ORDER BY ` + d.instant("activity_time") + ` DESC, thread_id ASC`)

	var rows []threadActivityRow
	if err := s.selectAll(ctx, "thread_activity", &rows, q.String(), q.args...); err != nil {
		return nil, err
	}

	activity := make([]domain.ThreadActivity, 0, len(rows))
	for _, r := range rows {
		activity = append(activity, r.toDomain())
	}
	return activity, nil
}

// listMatchingActivity is ListThreadActivity with a keyword. The keyword is a
// case sensitive substring of the content's readable text, so matching happens
// on parsed segments rather than on the stored payload.
func (s *Storage) listMatchingActivity(ctx context.Context, cutoff time.Time, keyword string) ([]domain.ThreadActivity, error) {
	q := &query{}
	q.add(`
	SELECT a.thread_id, a.user_id, a.activity_time, a.id, a.content
	FROM (`)
	addActivity(q, s.visibility(cutoff))
	q.add(`
	) a
	ORDER BY ` + s.dialect.instant("a.activity_time") + ` DESC, a.id DESC`)

	var rows []activityContentRow
	if err := s.selectAll(ctx, "thread_activity_keyword", &rows, q.String(), q.args...); err != nil {
		return nil, err
	}

	// rows come newest first, so the first match of a thread is its latest
	matched := make(map[domain.ThreadId]struct{})
	activity := make([]domain.ThreadActivity, 0)
	for _, r := range rows {
		if _, ok := matched[r.ThreadId]; ok {
			continue
		}
		content, err := domain.ParseContent(r.Content)
		if err != nil {
			return nil, internal_errors.Inconsistent("item %d of thread %d has malformed content: %v", r.Id, r.ThreadId, err)
		}
		if !strings.Contains(content.PlainText(), keyword) {
			continue
		}
		matched[r.ThreadId] = struct{}{}
		activity = append(activity, domain.ThreadActivity{
			ThreadId: r.ThreadId,
			UserId:   r.UserId,
			Time:     r.ActivityTime.Time,
		})
	}
	slices.SortStableFunc(activity, byRecency)
	return activity, nil
}

func byRecency(a, b domain.ThreadActivity) int {
	if c := b.Time.Compare(a.Time); c != 0 {
		return c
	}
	return cmp.Compare(a.ThreadId, b.ThreadId)
}

type threadRow struct {
	Id       int64  `db:"id"`
	Title    string `db:"title"`
	UserId   int64  `db:"user_id"`
	ReplyNum int    `db:"reply_num"`
	IsGood   bool   `db:"is_good"`
	Content  []byte `db:"content"`
}

func (r threadRow) metadata() domain.ThreadMetadata {
	return domain.ThreadMetadata{
		Id:       r.Id,
		Title:    r.Title,
		UserId:   r.UserId,
		ReplyNum: r.ReplyNum,
		IsGood:   r.IsGood,
	}
}

// GetThreadMetadata returns the thread header, or a 404 error for an unknown id.
func (s *Storage) GetThreadMetadata(ctx context.Context, id domain.ThreadId) (domain.ThreadMetadata, error) {
	var row threadRow
	err := s.getOne(ctx, "thread_metadata", &row, `
		SELECT id, title, user_id, reply_num, is_good
		FROM pr_thread
		WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ThreadMetadata{}, internal_errors.NotFound("Thread")
		}
		return domain.ThreadMetadata{}, err
	}
	return row.metadata(), nil
}

// GetThreads loads the listed threads with their opening post content.
// Ids missing from the archive are absent from the result map.
func (s *Storage) GetThreads(ctx context.Context, ids []domain.ThreadId) (map[domain.ThreadId]domain.Thread, error) {
	threads := make(map[domain.ThreadId]domain.Thread, len(ids))
	if len(ids) == 0 {
		return threads, nil
	}

	var rows []threadRow
	err := s.selectAll(ctx, "threads_by_id", &rows, `
		SELECT t.id, t.title, t.user_id, t.reply_num, t.is_good, p.content AS content
		FROM pr_thread t
		LEFT JOIN pr_post p ON p.thread_id = t.id AND p.floor = 1
		WHERE t.id IN (?)`, ids)
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		content, err := domain.ParseContent(r.Content)
		if err != nil {
			return nil, internal_errors.Inconsistent("opening post of thread %d has malformed content: %v", r.Id, err)
		}
		threads[r.Id] = domain.Thread{ThreadMetadata: r.metadata(), Content: content}
	}
	return threads, nil
}
