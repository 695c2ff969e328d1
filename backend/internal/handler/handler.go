package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/itchan-dev/vault/backend/internal/service"
	"github.com/itchan-dev/vault/shared/config"
)

// HealthChecker reports whether the archive can be reached.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	thread   service.ThreadService
	post     service.PostService
	comment  service.CommentService
	user     service.UserService
	adminLog service.AdminLogService
	health   HealthChecker
	cfg      *config.Config
	loc      *time.Location
	validate *validator.Validate
}

func New(
	thread service.ThreadService,
	post service.PostService,
	comment service.CommentService,
	user service.UserService,
	adminLog service.AdminLogService,
	health HealthChecker,
	cfg *config.Config,
) *Handler {
	return &Handler{
		thread:   thread,
		post:     post,
		comment:  comment,
		user:     user,
		adminLog: adminLog,
		health:   health,
		cfg:      cfg,
		loc:      cfg.Public.Location(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// requestContext keeps request values but not cancellation:
// a started query runs to completion even if the client goes away.
func requestContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}
