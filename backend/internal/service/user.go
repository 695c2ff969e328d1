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

// UserService serves a user's profile together with their activity feed
type UserService interface {
	Get(ctx context.Context, kind domain.UserLookup, value string, page int, requested *time.Time) (*api.UserResponse, error)
}

type User struct {
	storage UserStorage
}

type UserStorage interface {
	GetUser(ctx context.Context, kind domain.UserLookup, value string) (domain.User, error)
	ListUserRecords(ctx context.Context, userId domain.UserId, cutoff time.Time) ([]domain.UserRecord, error)
}

func NewUser(storage UserStorage) UserService {
	return &User{storage: storage}
}

// Get finds the user and returns one page of what they wrote, newest first.
// Posts and comments share a single ordering.
func (s *User) Get(ctx context.Context, kind domain.UserLookup, value string, page int, requested *time.Time) (*api.UserResponse, error) {
	if !kind.Valid() {
		return nil, internal_errors.Unprocessable("unknown user lookup %q", kind)
	}
	cutoff := timemachine.ResolveCutoff(requested)

	user, err := s.storage.GetUser(ctx, kind, value)
	if err != nil {
		return nil, err
	}

	records, err := s.storage.ListUserRecords(ctx, user.Id, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list user records: %w", err)
	}
	slice, totalPages, err := paginate(records, page, pagination.UserRecordPageSize)
	if err != nil {
		return nil, err
	}

	return &api.UserResponse{
		User:       user,
		Records:    slice,
		TotalPages: totalPages,
	}, nil
}
