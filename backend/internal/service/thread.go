package service

import (
	"context"
	"fmt"
	"time"

	"github.com/itchan-dev/vault/shared/api"
	"github.com/itchan-dev/vault/shared/domain"
	internal_errors "github.com/itchan-dev/vault/shared/errors"
	"github.com/itchan-dev/vault/shared/pagination"
	"github.com/itchan-dev/vault/shared/timemachine"
)

type ThreadService interface {
	List(ctx context.Context, page int, requested *time.Time, keyword string) (*api.ThreadListResponse, error)
}

type Thread struct {
	storage  ThreadStorage
	metadata MetadataJoiner
}

type ThreadStorage interface {
	ListThreadActivity(ctx context.Context, cutoff time.Time, keyword string) ([]domain.ThreadActivity, error)
	GetThreads(ctx context.Context, ids []domain.ThreadId) (map[domain.ThreadId]domain.Thread, error)
}

func NewThread(storage ThreadStorage, metadata MetadataJoiner) ThreadService {
	return &Thread{storage, metadata}
}

// List returns one page of threads ordered by their latest activity visible at the requested instant.
func (s *Thread) List(ctx context.Context, page int, requested *time.Time, keyword string) (*api.ThreadListResponse, error) {
	cutoff := timemachine.ResolveCutoff(requested)

	activity, err := s.storage.ListThreadActivity(ctx, cutoff, keyword)
	if err != nil {
		return nil, fmt.Errorf("failed to list thread activity: %w", err)
	}
	slice, totalPages, err := paginate(activity, page, pagination.ThreadPageSize)
	if err != nil {
		return nil, err
	}

	ids := make([]domain.ThreadId, 0, len(slice))
	for _, a := range slice {
		ids = append(ids, a.ThreadId)
	}
	byId, err := s.storage.GetThreads(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get threads: %w", err)
	}

	threads := make([]domain.Thread, 0, len(slice))
	userIds := make([]domain.UserId, 0, 2*len(slice))
	for _, a := range slice {
		thread, ok := byId[a.ThreadId]
		if !ok {
			return nil, internal_errors.Inconsistent("thread %d has posts but no thread row", a.ThreadId)
		}
		thread.LastReplyUserId = a.UserId
		thread.LastReplyTime = a.Time
		threads = append(threads, thread)
		userIds = append(userIds, thread.UserId, a.UserId)
	}

	users, err := s.metadata.Users(ctx, userIds...)
	if err != nil {
		return nil, err
	}

	return &api.ThreadListResponse{
		Threads:    threads,
		Users:      users,
		TotalPages: totalPages,
	}, nil
}
