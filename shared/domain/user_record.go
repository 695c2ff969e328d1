package domain

import "time"

type UserRecordType string

const (
	RecordThread  UserRecordType = "thread"
	RecordPost    UserRecordType = "post"
	RecordComment UserRecordType = "comment"
)

// UserRecord is one entry of a user's activity feed: an opening post,
// a reply post or a comment, with the context needed to link back to it.
type UserRecord interface {
	RecordType() UserRecordType
	RecordTime() time.Time
}

type ThreadRecord struct {
	ThreadId ThreadId    `json:"thread_id"`
	Title    ThreadTitle `json:"title"`
	PostId   PostId      `json:"post_id"`
	Content  Content     `json:"content"`
	Time     time.Time   `json:"time"`
}

type PostRecord struct {
	ThreadId ThreadId    `json:"thread_id"`
	Title    ThreadTitle `json:"title"`
	PostId   PostId      `json:"post_id"`
	Floor    Floor       `json:"floor"`
	Content  Content     `json:"content"`
	Time     time.Time   `json:"time"`
}

type CommentRecord struct {
	ThreadId  ThreadId    `json:"thread_id"`
	Title     ThreadTitle `json:"title"`
	PostId    PostId      `json:"post_id"`
	Floor     Floor       `json:"floor"`
	CommentId CommentId   `json:"comment_id"`
	Content   Content     `json:"content"`
	Time      time.Time   `json:"time"`
}

func (ThreadRecord) RecordType() UserRecordType  { return RecordThread }
func (PostRecord) RecordType() UserRecordType    { return RecordPost }
func (CommentRecord) RecordType() UserRecordType { return RecordComment }

func (r ThreadRecord) RecordTime() time.Time  { return r.Time }
func (r PostRecord) RecordTime() time.Time    { return r.Time }
func (r CommentRecord) RecordTime() time.Time { return r.Time }

type threadRecordJSON ThreadRecord
type postRecordJSON PostRecord
type commentRecordJSON CommentRecord

func (r ThreadRecord) MarshalJSON() ([]byte, error) {
	return tagged(string(RecordThread), threadRecordJSON(r))
}

func (r PostRecord) MarshalJSON() ([]byte, error) {
	return tagged(string(RecordPost), postRecordJSON(r))
}

func (r CommentRecord) MarshalJSON() ([]byte, error) {
	return tagged(string(RecordComment), commentRecordJSON(r))
}
