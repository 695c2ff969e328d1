package archive

import (
	"fmt"
	"strings"
	"time"

	"github.com/itchan-dev/vault/shared/domain"
	"github.com/itchan-dev/vault/shared/timemachine"
)

// query accumulates SQL text and its "?" arguments in order.
type query struct {
	sb   strings.Builder
	args []any
}

func (q *query) add(sql string, args ...any) *query {
	q.sb.WriteString(sql)
	q.args = append(q.args, args...)
	return q
}

func (q *query) String() string {
	return q.sb.String()
}

// visibility builds the predicates deciding which content exists at cutoff.
//
// A post or comment is visible when it was created before the cutoff and the
// latest moderation entry acting on it, among entries outside the incident
// windows and before the cutoff, is not a deletion. A restore after a delete
// brings content back; no entry at all leaves it visible.
type visibility struct {
	dialect dialect
	cutoff  time.Time
}

func (s *Storage) visibility(cutoff time.Time) visibility {
	return visibility{dialect: s.dialect, cutoff: cutoff}
}

// excludeIncidents drops rows whose col falls in an incident window.
func (d dialect) excludeIncidents(q *query, col string) {
	for _, w := range timemachine.IncidentWindows() {
		q.add(fmt.Sprintf(" AND NOT (%[1]s >= ? AND %[1]s < ?)", d.instant(col)), d.bind(w.Start), d.bind(w.End))
	}
}

// before appends "col < cutoff".
func (v visibility) before(q *query, col string) {
	q.add(v.dialect.instant(col)+" < ?", v.dialect.bind(v.cutoff))
}

// notDeleted appends "latest admissible entry matching target is not a deletion".
// target is a condition over the log alias l.
func (v visibility) notDeleted(q *query, target string) {
	q.add(`COALESCE((
			SELECT l.operation FROM pr_admin_log_post l
			WHERE (` + target + `) AND `)
	v.before(q, "l.operation_time")
	v.dialect.excludeIncidents(q, "l.operation_time")
	q.add(`
			ORDER BY ` + v.dialect.instant("l.operation_time") + ` DESC, l.id DESC
			LIMIT 1
		), '') NOT IN (?)`, domain.DeletionOperations)
}

// post appends the visibility condition of the post aliased p.
// Entries without a post id act on the whole thread.
func (v visibility) post(q *query, p string) {
	v.before(q, p+".time")
	q.add(" AND ")
	v.notDeleted(q, fmt.Sprintf("(l.post_id IS NULL AND l.thread_id = %[1]s.thread_id) OR l.post_id = %[1]s.id", p))
}

// comment appends the visibility condition of the comment aliased c under its post p.
func (v visibility) comment(q *query, c, p string) {
	v.before(q, c+".time")
	q.add(" AND ")
	v.post(q, p)
	q.add(" AND ")
	v.notDeleted(q, fmt.Sprintf("l.post_id = %s.id", c))
}
