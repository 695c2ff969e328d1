package archive

import (
	"context"

	"github.com/itchan-dev/vault/shared/domain"
	internal_errors "github.com/itchan-dev/vault/shared/errors"
)

type postLogRow struct {
	Id             int64  `db:"id"`
	ThreadId       int64  `db:"thread_id"`
	PostId         *int64 `db:"post_id"`
	Title          string `db:"title"`
	ContentPreview string `db:"content_preview"`
	Username       string `db:"username"`
	PostTime       dbTime `db:"post_time"`
	Operation      string `db:"operation"`
	Operator       string `db:"operator"`
	OperationTime  dbTime `db:"operation_time"`
}

func (r postLogRow) toDomain() domain.PostLog {
	return domain.PostLog{
		Id:             r.Id,
		ThreadId:       r.ThreadId,
		PostId:         r.PostId,
		Title:          r.Title,
		ContentPreview: r.ContentPreview,
		Username:       r.Username,
		PostTime:       r.PostTime.Time,
		Operation:      r.Operation,
		Operator:       r.Operator,
		OperationTime:  r.OperationTime.Time,
	}
}

type userLogRow struct {
	Id            int64  `db:"id"`
	Avatar        string `db:"avatar"`
	Username      string `db:"username"`
	Operation     string `db:"operation"`
	Duration      string `db:"duration"`
	Operator      string `db:"operator"`
	OperationTime dbTime `db:"operation_time"`
}

type bawuLogRow struct {
	Id            int64  `db:"id"`
	Avatar        string `db:"avatar"`
	Username      string `db:"username"`
	Operation     string `db:"operation"`
	Operator      string `db:"operator"`
	OperationTime dbTime `db:"operation_time"`
}

const postLogColumns = `l.id, l.thread_id, l.post_id, l.title, l.content_preview, l.username,
	l.post_time, l.operation, l.operator, l.operation_time`

// ListAdminLogs returns a whole moderation table, newest first.
// With hideIncidents, entries inside the incident windows are left out.
func (s *Storage) ListAdminLogs(ctx context.Context, category domain.AdminLogCategory, hideIncidents bool) ([]domain.AdminLog, error) {
	q := &query{}
	switch category {
	case domain.AdminLogPost:
		q.add(`SELECT ` + postLogColumns + ` FROM pr_admin_log_post l WHERE 1 = 1`)
	case domain.AdminLogUser:
		q.add(`SELECT l.id, l.avatar, l.username, l.operation, l.duration, l.operator, l.operation_time
		FROM pr_admin_log_user l WHERE 1 = 1`)
	case domain.AdminLogBawu:
		q.add(`SELECT l.id, l.avatar, l.username, l.operation, l.operator, l.operation_time
		FROM pr_admin_log_bawu l WHERE 1 = 1`)
	default:
		return nil, internal_errors.Unprocessable("unknown admin log category %q", category)
	}
	if hideIncidents {
		s.dialect.excludeIncidents(q, "l.operation_time")
	}
	q.add(`
		ORDER BY ` + s.dialect.instant("l.operation_time") + ` DESC, l.id DESC`)

	name := "admin_logs_" + string(category)
	switch category {
	case domain.AdminLogPost:
		var rows []postLogRow
		if err := s.selectAll(ctx, name, &rows, q.String(), q.args...); err != nil {
			return nil, err
		}
		logs := make([]domain.AdminLog, 0, len(rows))
		for _, r := range rows {
			logs = append(logs, r.toDomain())
		}
		return logs, nil
	case domain.AdminLogUser:
		var rows []userLogRow
		if err := s.selectAll(ctx, name, &rows, q.String(), q.args...); err != nil {
			return nil, err
		}
		logs := make([]domain.AdminLog, 0, len(rows))
		for _, r := range rows {
			logs = append(logs, domain.UserLog{
				Id:            r.Id,
				Avatar:        r.Avatar,
				Username:      r.Username,
				Operation:     r.Operation,
				Duration:      r.Duration,
				Operator:      r.Operator,
				OperationTime: r.OperationTime.Time,
			})
		}
		return logs, nil
	default:
		var rows []bawuLogRow
		if err := s.selectAll(ctx, name, &rows, q.String(), q.args...); err != nil {
			return nil, err
		}
		logs := make([]domain.AdminLog, 0, len(rows))
		for _, r := range rows {
			logs = append(logs, domain.BawuLog{
				Id:            r.Id,
				Avatar:        r.Avatar,
				Username:      r.Username,
				Operation:     r.Operation,
				Operator:      r.Operator,
				OperationTime: r.OperationTime.Time,
			})
		}
		return logs, nil
	}
}

// ThreadPostLogs returns every post removal entry of a thread, newest first.
func (s *Storage) ThreadPostLogs(ctx context.Context, threadId domain.ThreadId) ([]domain.PostLog, error) {
	return s.postLogs(ctx, "thread_post_logs", `
		SELECT `+postLogColumns+`
		FROM pr_admin_log_post l
		WHERE l.thread_id = ?
		ORDER BY `+s.dialect.instant("l.operation_time")+` DESC, l.id DESC`, threadId)
}

// PostLogs returns the post removal entries acting on a post, on its comments,
// or on its whole thread, newest first.
func (s *Storage) PostLogs(ctx context.Context, postId domain.PostId) ([]domain.PostLog, error) {
	return s.postLogs(ctx, "post_post_logs", `
		SELECT `+postLogColumns+`
		FROM pr_admin_log_post l
		WHERE l.post_id = ?
			OR l.post_id IN (SELECT c.id FROM pr_comment c WHERE c.post_id = ?)
			OR (l.post_id IS NULL AND l.thread_id = (SELECT p.thread_id FROM pr_post p WHERE p.id = ?))
		ORDER BY `+s.dialect.instant("l.operation_time")+` DESC, l.id DESC`, postId, postId, postId)
}

func (s *Storage) postLogs(ctx context.Context, name, q string, args ...any) ([]domain.PostLog, error) {
	var rows []postLogRow
	if err := s.selectAll(ctx, name, &rows, q, args...); err != nil {
		return nil, err
	}
	logs := make([]domain.PostLog, 0, len(rows))
	for _, r := range rows {
		logs = append(logs, r.toDomain())
	}
	return logs, nil
}
