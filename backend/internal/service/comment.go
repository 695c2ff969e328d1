package service

import (
	"context"
	"fmt"
	"time"

	"github.com/itchan-dev/vault/shared/api"
	"github.com/itchan-dev/vault/shared/domain"
	"github.com/itchan-dev/vault/shared/pagination"
	"github.com/itchan-dev/vault/shared/timemachine"
)

type CommentService interface {
	List(ctx context.Context, postId domain.PostId, page int, requested *time.Time) (*api.CommentListResponse, error)
}

type Comment struct {
	storage  CommentStorage
	metadata MetadataJoiner
}

type CommentStorage interface {
	GetPostThread(ctx context.Context, postId domain.PostId) (domain.ThreadId, error)
	ListComments(ctx context.Context, postId domain.PostId, cutoff time.Time) ([]domain.Comment, error)
}

func NewComment(storage CommentStorage, metadata MetadataJoiner) CommentService {
	return &Comment{storage, metadata}
}

func (s *Comment) List(ctx context.Context, postId domain.PostId, page int, requested *time.Time) (*api.CommentListResponse, error) {
	cutoff := timemachine.ResolveCutoff(requested)

	// 404 for unknown posts; a known post may still have nothing visible
	if _, err := s.storage.GetPostThread(ctx, postId); err != nil {
		return nil, err
	}

	comments, err := s.storage.ListComments(ctx, postId, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	slice, totalPages, err := paginate(comments, page, pagination.CommentPageSize)
	if err != nil {
		return nil, err
	}

	userIds := make([]domain.UserId, 0, len(slice))
	for _, c := range slice {
		userIds = append(userIds, c.UserId)
	}
	users, err := s.metadata.Users(ctx, userIds...)
	if err != nil {
		return nil, err
	}
	logs, err := s.metadata.PostLogs(ctx, postId, cutoff)
	if err != nil {
		return nil, err
	}

	return &api.CommentListResponse{
		PostId:     postId,
		Comments:   slice,
		Users:      users,
		AdminLogs:  logs,
		TotalPages: totalPages,
	}, nil
}
