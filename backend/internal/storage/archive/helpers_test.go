package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/itchan-dev/vault/shared/domain"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2021, time.June, 1, 12, 0, 0, 0, time.UTC)

// at is base shifted by h hours.
func at(h float64) time.Time {
	return base.Add(time.Duration(h * float64(time.Hour)))
}

func mustReadSchema(t testing.TB) string {
	t.Helper()
	schema, err := os.ReadFile(filepath.Join("migrations", "init.sql"))
	require.NoError(t, err)
	return string(schema)
}

// newSqliteStorage returns a store over a fresh in-memory archive.
func newSqliteStorage(t *testing.T) *Storage {
	t.Helper()
	db, err := sqlx.Open(DriverSqlite, sqliteDSN(":memory:"))
	require.NoError(t, err)
	// every connection would get its own in-memory database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(mustReadSchema(t))
	require.NoError(t, err)
	return NewWithDB(db)
}

// fixture inserts archive rows through the store's own connection.
type fixture struct {
	t *testing.T
	s *Storage
}

func newFixture(t *testing.T, s *Storage) fixture {
	return fixture{t: t, s: s}
}

func (f fixture) exec(q string, args ...any) {
	f.t.Helper()
	_, err := f.s.db.Exec(f.s.db.Rebind(q), args...)
	require.NoError(f.t, err)
}

func text(s string) string {
	return fmt.Sprintf(`[{"type":"text","text":%q}]`, s)
}

func nullable(content string) any {
	if content == "" {
		return nil
	}
	return content
}

// user inserts a user; a nil username is an anonymized account.
func (f fixture) user(id int64, username any, nickname string) {
	f.t.Helper()
	f.exec(`INSERT INTO pr_user (id, username, nickname, avatar) VALUES (?, ?, ?, ?)`,
		id, username, nickname, fmt.Sprintf("avatar-%d", id))
}

func (f fixture) thread(id int64, title string, userId int64) {
	f.t.Helper()
	f.exec(`INSERT INTO pr_thread (id, title, user_id, reply_num, is_good) VALUES (?, ?, ?, ?, ?)`,
		id, title, userId, 0, false)
}

func (f fixture) post(id, threadId int64, floor int, userId int64, created time.Time, content string) {
	f.t.Helper()
	f.exec(`INSERT INTO pr_post (id, thread_id, floor, user_id, content, time, comment_num) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, threadId, floor, userId, nullable(content), created, 0)
}

func (f fixture) comment(id, postId, userId int64, created time.Time, content string) {
	f.t.Helper()
	f.exec(`INSERT INTO pr_comment (id, post_id, user_id, content, time) VALUES (?, ?, ?, ?, ?)`,
		id, postId, userId, nullable(content), created)
}

// postLog inserts a post removal entry; a nil postId acts on the whole thread.
func (f fixture) postLog(id, threadId int64, postId any, operation string, operated time.Time) {
	f.t.Helper()
	f.exec(`INSERT INTO pr_admin_log_post
		(id, thread_id, post_id, title, content_preview, username, post_time, operation, operator, operation_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, threadId, postId, "title", "preview", "author", base, operation, "moderator", operated)
}

func (f fixture) userLog(id int64, username, operation string, operated time.Time) {
	f.t.Helper()
	f.exec(`INSERT INTO pr_admin_log_user (id, avatar, username, operation, duration, operator, operation_time)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, "avatar", username, operation, "1 day", "moderator", operated)
}

func (f fixture) bawuLog(id int64, username, operation string, operated time.Time) {
	f.t.Helper()
	f.exec(`INSERT INTO pr_admin_log_bawu (id, avatar, username, operation, operator, operation_time)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, "avatar", username, operation, "owner", operated)
}

func postIdsOf(posts []domain.Post) []int64 {
	ids := make([]int64, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.Id)
	}
	return ids
}

func commentIdsOf(comments []domain.Comment) []int64 {
	ids := make([]int64, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.Id)
	}
	return ids
}

func threadIdsOf(activity []domain.ThreadActivity) []int64 {
	ids := make([]int64, 0, len(activity))
	for _, a := range activity {
		ids = append(ids, a.ThreadId)
	}
	return ids
}
