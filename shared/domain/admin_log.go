package domain

import (
	"encoding/json"
	"time"
)

// AdminLogCategory is the moderation table a log entry comes from.
type AdminLogCategory string

const (
	AdminLogPost AdminLogCategory = "post"
	AdminLogUser AdminLogCategory = "user"
	AdminLogBawu AdminLogCategory = "bawu"
)

func (c AdminLogCategory) Valid() bool {
	switch c {
	case AdminLogPost, AdminLogUser, AdminLogBawu:
		return true
	}
	return false
}

// Operations recorded on post removal logs.
const (
	OperationDeletePost   = "删贴"
	OperationDeleteThread = "删主题"
	OperationHidePost     = "屏蔽"
	OperationRestorePost  = "恢复"
	OperationUnhidePost   = "取消屏蔽"
)

// DeletionOperations are the post log operations that retract content.
var DeletionOperations = []string{OperationDeletePost, OperationDeleteThread, OperationHidePost}

// AdminLog is one append-only moderation entry: a PostLog, UserLog or BawuLog.
// Category doubles as the JSON "type" tag.
type AdminLog interface {
	Category() AdminLogCategory
}

// PostLog records an action on a thread, or on one of its posts when PostId is set.
type PostLog struct {
	Id             LogId       `json:"-"`
	ThreadId       ThreadId    `json:"thread_id"`
	PostId         *PostId     `json:"post_id"`
	Title          ThreadTitle `json:"title"`
	ContentPreview string      `json:"content_preview"`
	Username       string      `json:"username"`
	PostTime       time.Time   `json:"post_time"`
	Operation      string      `json:"operation"`
	Operator       string      `json:"operator"`
	OperationTime  time.Time   `json:"operation_time"`
}

// UserLog records a sanction on an account.
type UserLog struct {
	Id            LogId     `json:"-"`
	Avatar        string    `json:"avatar"`
	Username      string    `json:"username"`
	Operation     string    `json:"operation"`
	Duration      string    `json:"duration"`
	Operator      string    `json:"operator"`
	OperationTime time.Time `json:"operation_time"`
}

// BawuLog records an action on the board moderator team.
type BawuLog struct {
	Id            LogId     `json:"-"`
	Avatar        string    `json:"avatar"`
	Username      string    `json:"username"`
	Operation     string    `json:"operation"`
	Operator      string    `json:"operator"`
	OperationTime time.Time `json:"operation_time"`
}

func (PostLog) Category() AdminLogCategory { return AdminLogPost }
func (UserLog) Category() AdminLogCategory { return AdminLogUser }
func (BawuLog) Category() AdminLogCategory { return AdminLogBawu }

type postLogJSON PostLog
type userLogJSON UserLog
type bawuLogJSON BawuLog

func (l PostLog) MarshalJSON() ([]byte, error) { return tagged(string(l.Category()), postLogJSON(l)) }
func (l UserLog) MarshalJSON() ([]byte, error) { return tagged(string(l.Category()), userLogJSON(l)) }
func (l BawuLog) MarshalJSON() ([]byte, error) { return tagged(string(l.Category()), bawuLogJSON(l)) }

var (
	_ json.Marshaler = PostLog{}
	_ json.Marshaler = UserLog{}
	_ json.Marshaler = BawuLog{}
)
