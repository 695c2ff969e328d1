package domain

import (
	"time"
)

// ThreadMetadata is the thread header shown above its posts.
type ThreadMetadata struct {
	Id       ThreadId    `json:"thread_id"`
	Title    ThreadTitle `json:"title"`
	UserId   UserId      `json:"user_id"` // opening post author
	ReplyNum int         `json:"reply_num"`
	IsGood   bool        `json:"is_good"`
}

// Thread is a thread listing entry as seen at a cutoff.
type Thread struct {
	ThreadMetadata
	LastReplyUserId UserId    `json:"last_reply_user_id"`
	LastReplyTime   time.Time `json:"last_reply_time"`
	// snapshot of the opening post, nil when the archive has no payload for it
	Content Content `json:"content"`
}

// ThreadActivity is one entry of the ordered thread candidate set:
// the most recent visible activity of a thread.
type ThreadActivity struct {
	ThreadId ThreadId
	UserId   UserId
	Time     time.Time
}

type Post struct {
	Id         PostId    `json:"post_id"`
	ThreadId   ThreadId  `json:"thread_id"`
	Floor      Floor     `json:"floor"`
	UserId     UserId    `json:"user_id"`
	Content    Content   `json:"content"`
	Time       time.Time `json:"time"`
	CommentNum int       `json:"comment_num"`
	Signature  *string   `json:"signature"`
	Tail       *string   `json:"tail"`
	// first page of visible comments, filled on post listings only
	Comments []Comment `json:"comments,omitempty"`
}

type Comment struct {
	Id      CommentId `json:"comment_id"`
	PostId  PostId    `json:"post_id"`
	UserId  UserId    `json:"user_id"`
	Content Content   `json:"content"`
	Time    time.Time `json:"time"`
}
