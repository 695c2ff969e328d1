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

type PostService interface {
	List(ctx context.Context, threadId domain.ThreadId, page int, requested *time.Time) (*api.PostListResponse, error)
}

type Post struct {
	storage  PostStorage
	metadata MetadataJoiner
}

type PostStorage interface {
	GetThreadMetadata(ctx context.Context, id domain.ThreadId) (domain.ThreadMetadata, error)
	ListPosts(ctx context.Context, threadId domain.ThreadId, cutoff time.Time) ([]domain.Post, error)
	ListCommentPreviews(ctx context.Context, postIds []domain.PostId, cutoff time.Time, limit int) (map[domain.PostId][]domain.Comment, error)
}

func NewPost(storage PostStorage, metadata MetadataJoiner) PostService {
	return &Post{storage, metadata}
}

// List returns one page of a thread's posts, each with the first page of its comments.
func (s *Post) List(ctx context.Context, threadId domain.ThreadId, page int, requested *time.Time) (*api.PostListResponse, error) {
	cutoff := timemachine.ResolveCutoff(requested)

	thread, err := s.storage.GetThreadMetadata(ctx, threadId)
	if err != nil {
		return nil, err
	}

	posts, err := s.storage.ListPosts(ctx, threadId, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	slice, totalPages, err := paginate(posts, page, pagination.PostPageSize)
	if err != nil {
		return nil, err
	}

	postIds := make([]domain.PostId, 0, len(slice))
	for _, p := range slice {
		postIds = append(postIds, p.Id)
	}
	previews, err := s.storage.ListCommentPreviews(ctx, postIds, cutoff, pagination.CommentPageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list comment previews: %w", err)
	}

	userIds := make([]domain.UserId, 0, len(slice))
	for i := range slice {
		slice[i].Comments = previews[slice[i].Id]
		userIds = append(userIds, slice[i].UserId)
		for _, c := range slice[i].Comments {
			userIds = append(userIds, c.UserId)
		}
	}

	users, err := s.metadata.Users(ctx, userIds...)
	if err != nil {
		return nil, err
	}
	logs, err := s.metadata.ThreadLogs(ctx, threadId, cutoff)
	if err != nil {
		return nil, err
	}

	return &api.PostListResponse{
		Thread:     thread,
		Posts:      slice,
		Users:      users,
		AdminLogs:  logs,
		TotalPages: totalPages,
	}, nil
}
