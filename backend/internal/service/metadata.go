package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/itchan-dev/vault/shared/domain"
	internal_errors "github.com/itchan-dev/vault/shared/errors"
	"github.com/itchan-dev/vault/shared/logger"
	"github.com/itchan-dev/vault/shared/pagination"
	"github.com/itchan-dev/vault/shared/timemachine"
)

// MetadataJoiner attaches what a page references but does not contain:
// the authors it mentions and the moderation entries next to it.
type MetadataJoiner interface {
	Users(ctx context.Context, ids ...domain.UserId) ([]domain.User, error)
	ThreadLogs(ctx context.Context, threadId domain.ThreadId, cutoff time.Time) ([]domain.AdminLog, error)
	PostLogs(ctx context.Context, postId domain.PostId, cutoff time.Time) ([]domain.AdminLog, error)
}

type MetadataStorage interface {
	GetUsersByIds(ctx context.Context, ids []domain.UserId) (map[domain.UserId]domain.User, error)
	ThreadPostLogs(ctx context.Context, threadId domain.ThreadId) ([]domain.PostLog, error)
	PostLogs(ctx context.Context, postId domain.PostId) ([]domain.PostLog, error)
}

type Metadata struct {
	storage MetadataStorage
}

func NewMetadata(storage MetadataStorage) MetadataJoiner {
	return &Metadata{storage: storage}
}

// Users resolves every distinct id in one lookup, in order of first appearance.
// The archive guarantees every author exists, so a missing one fails the request.
func (m *Metadata) Users(ctx context.Context, ids ...domain.UserId) ([]domain.User, error) {
	seen := make(map[domain.UserId]struct{}, len(ids))
	distinct := make([]domain.UserId, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}
	if len(distinct) == 0 {
		return []domain.User{}, nil
	}

	found, err := m.storage.GetUsersByIds(ctx, distinct)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	users := make([]domain.User, 0, len(distinct))
	for _, id := range distinct {
		user, ok := found[id]
		if !ok {
			logger.FromContext(ctx).Error("referenced user missing from archive", "user_id", id)
			return nil, internal_errors.Inconsistent("user %d is referenced but missing", id)
		}
		users = append(users, user)
	}
	return users, nil
}

func (m *Metadata) ThreadLogs(ctx context.Context, threadId domain.ThreadId, cutoff time.Time) ([]domain.AdminLog, error) {
	logs, err := m.storage.ThreadPostLogs(ctx, threadId)
	if err != nil {
		return nil, fmt.Errorf("failed to get thread logs: %w", err)
	}
	return admitted(logs, cutoff), nil
}

func (m *Metadata) PostLogs(ctx context.Context, postId domain.PostId, cutoff time.Time) ([]domain.AdminLog, error) {
	logs, err := m.storage.PostLogs(ctx, postId)
	if err != nil {
		return nil, fmt.Errorf("failed to get post logs: %w", err)
	}
	return admitted(logs, cutoff), nil
}

// admitted keeps the entries in effect at cutoff, with the same window and
// cutoff rules the visibility predicate applies.
func admitted(logs []domain.PostLog, cutoff time.Time) []domain.AdminLog {
	out := make([]domain.AdminLog, 0, len(logs))
	for _, l := range logs {
		if timemachine.Admits(l.OperationTime, cutoff) {
			out = append(out, l)
		}
	}
	return out
}

// paginate is pagination.Paginate with a page past the end reported as 404.
func paginate[T any](items []T, page, size int) ([]T, int, error) {
	slice, totalPages, err := pagination.Paginate(items, page, size)
	if errors.Is(err, pagination.ErrOutOfRange) {
		return nil, totalPages, internal_errors.NotFound("Page")
	}
	return slice, totalPages, err
}
