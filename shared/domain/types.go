package domain

type (
	UserId    = int64
	ThreadId  = int64
	PostId    = int64
	CommentId = int64
	LogId     = int64

	ThreadTitle = string
	Floor       = int
)

// UserLookup names the column a user page is looked up by.
type UserLookup string

const (
	LookupById       UserLookup = "id"
	LookupByUsername UserLookup = "username"
	LookupByNickname UserLookup = "nickname"
	LookupByAvatar   UserLookup = "avatar"
)

func (l UserLookup) Valid() bool {
	switch l {
	case LookupById, LookupByUsername, LookupByNickname, LookupByAvatar:
		return true
	}
	return false
}
