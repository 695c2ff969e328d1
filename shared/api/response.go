package api

import "github.com/itchan-dev/vault/shared/domain"

// Response DTOs. Every listing carries total_pages of the full candidate set.

type ThreadListResponse struct {
	Threads    []domain.Thread `json:"threads"`
	Users      []domain.User   `json:"users"`
	TotalPages int             `json:"total_pages"`
}

type PostListResponse struct {
	Thread     domain.ThreadMetadata `json:"thread"`
	Posts      []domain.Post         `json:"posts"`
	Users      []domain.User         `json:"users"`
	AdminLogs  []domain.AdminLog     `json:"admin_logs"`
	TotalPages int                   `json:"total_pages"`
}

type CommentListResponse struct {
	PostId     domain.PostId     `json:"post_id"`
	Comments   []domain.Comment  `json:"comments"`
	Users      []domain.User     `json:"users"`
	AdminLogs  []domain.AdminLog `json:"admin_logs"`
	TotalPages int               `json:"total_pages"`
}

type UserResponse struct {
	User       domain.User         `json:"user"`
	Records    []domain.UserRecord `json:"records"`
	TotalPages int                 `json:"total_pages"`
}

type AdminLogListResponse struct {
	Category   domain.AdminLogCategory `json:"category"`
	AdminLogs  []domain.AdminLog       `json:"admin_logs"`
	TotalPages int                     `json:"total_pages"`
}
