package service

import (
	"context"
	"fmt"

	"github.com/itchan-dev/vault/shared/api"
	"github.com/itchan-dev/vault/shared/domain"
	internal_errors "github.com/itchan-dev/vault/shared/errors"
	"github.com/itchan-dev/vault/shared/pagination"
)

type AdminLogService interface {
	List(ctx context.Context, category domain.AdminLogCategory, page int, hideIncidents bool) (*api.AdminLogListResponse, error)
}

type AdminLog struct {
	storage AdminLogStorage
}

type AdminLogStorage interface {
	ListAdminLogs(ctx context.Context, category domain.AdminLogCategory, hideIncidents bool) ([]domain.AdminLog, error)
}

func NewAdminLog(storage AdminLogStorage) AdminLogService {
	return &AdminLog{storage: storage}
}

// List pages through one moderation table. The log is not affected by the time machine.
func (s *AdminLog) List(ctx context.Context, category domain.AdminLogCategory, page int, hideIncidents bool) (*api.AdminLogListResponse, error) {
	if !category.Valid() {
		return nil, internal_errors.Unprocessable("unknown admin log category %q", category)
	}

	logs, err := s.storage.ListAdminLogs(ctx, category, hideIncidents)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s admin logs: %w", category, err)
	}
	slice, totalPages, err := paginate(logs, page, pagination.AdminLogPageSize)
	if err != nil {
		return nil, err
	}

	return &api.AdminLogListResponse{
		Category:   category,
		AdminLogs:  slice,
		TotalPages: totalPages,
	}, nil
}
