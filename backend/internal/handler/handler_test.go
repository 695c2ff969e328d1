package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/vault/shared/api"
	"github.com/itchan-dev/vault/shared/config"
	"github.com/itchan-dev/vault/shared/domain"
)

// --- Mocks ---

type MockThreadService struct {
	ListFunc func(ctx context.Context, page int, requested *time.Time, keyword string) (*api.ThreadListResponse, error)
}

func (m *MockThreadService) List(ctx context.Context, page int, requested *time.Time, keyword string) (*api.ThreadListResponse, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, page, requested, keyword)
	}
	return &api.ThreadListResponse{Threads: []domain.Thread{}, Users: []domain.User{}}, nil
}

type MockPostService struct {
	ListFunc func(ctx context.Context, threadId domain.ThreadId, page int, requested *time.Time) (*api.PostListResponse, error)
}

func (m *MockPostService) List(ctx context.Context, threadId domain.ThreadId, page int, requested *time.Time) (*api.PostListResponse, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, threadId, page, requested)
	}
	return &api.PostListResponse{}, nil
}

type MockCommentService struct {
	ListFunc func(ctx context.Context, postId domain.PostId, page int, requested *time.Time) (*api.CommentListResponse, error)
}

func (m *MockCommentService) List(ctx context.Context, postId domain.PostId, page int, requested *time.Time) (*api.CommentListResponse, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, postId, page, requested)
	}
	return &api.CommentListResponse{PostId: postId}, nil
}

type MockUserService struct {
	GetFunc func(ctx context.Context, kind domain.UserLookup, value string, page int, requested *time.Time) (*api.UserResponse, error)
}

func (m *MockUserService) Get(ctx context.Context, kind domain.UserLookup, value string, page int, requested *time.Time) (*api.UserResponse, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, kind, value, page, requested)
	}
	return &api.UserResponse{}, nil
}

type MockAdminLogService struct {
	ListFunc func(ctx context.Context, category domain.AdminLogCategory, page int, hideIncidents bool) (*api.AdminLogListResponse, error)
}

func (m *MockAdminLogService) List(ctx context.Context, category domain.AdminLogCategory, page int, hideIncidents bool) (*api.AdminLogListResponse, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, category, page, hideIncidents)
	}
	return &api.AdminLogListResponse{Category: category}, nil
}

// mocks bundles the services a test handler is built from; nil fields get defaults.
type mocks struct {
	thread   *MockThreadService
	post     *MockPostService
	comment  *MockCommentService
	user     *MockUserService
	adminLog *MockAdminLogService
}

func newTestHandler(m mocks) *Handler {
	if m.thread == nil {
		m.thread = &MockThreadService{}
	}
	if m.post == nil {
		m.post = &MockPostService{}
	}
	if m.comment == nil {
		m.comment = &MockCommentService{}
	}
	if m.user == nil {
		m.user = &MockUserService{}
	}
	if m.adminLog == nil {
		m.adminLog = &MockAdminLogService{}
	}
	cfg := &config.Config{Public: config.Public{ArchiveTimezone: "UTC"}}
	return New(m.thread, m.post, m.comment, m.user, m.adminLog, &MockHealthChecker{}, cfg)
}

// serve routes the request the way the router mounts these handlers.
func serve(h *Handler, method, url string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Get("/thread/{page}", h.GetThreads)
	r.Get("/post/{threadId}/{page}", h.GetPosts)
	r.Get("/comment/{postId}/{page}", h.GetComments)
	r.Get("/user/{lookupKind}/{lookupValue}/{page}", h.GetUser)
	r.Get("/admin_log/{category}/{page}", h.GetAdminLogs)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(method, url, nil))
	return rr
}

func get(t *testing.T, h *Handler, url string) *httptest.ResponseRecorder {
	t.Helper()
	return serve(h, http.MethodGet, url)
}
