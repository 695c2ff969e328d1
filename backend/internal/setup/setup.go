package setup

import (
	"time"

	"github.com/itchan-dev/vault/backend/internal/handler"
	"github.com/itchan-dev/vault/backend/internal/service"
	"github.com/itchan-dev/vault/backend/internal/storage/archive"
	"github.com/itchan-dev/vault/shared/config"
	"github.com/itchan-dev/vault/shared/middleware/ratelimiter"
)

// rate limit keys idle this long are dropped
const limiterIdle = time.Hour

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config  *config.Config
	Storage *archive.Storage
	Handler *handler.Handler
	// nil when the limit is disabled
	PerIPLimiter  *ratelimiter.Limiter
	GlobalLimiter *ratelimiter.Limiter
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := archive.New(cfg)
	if err != nil {
		return nil, err
	}
	return wire(cfg, storage), nil
}

func wire(cfg *config.Config, storage *archive.Storage) *Dependencies {
	metadata := service.NewMetadata(storage)
	h := handler.New(
		service.NewThread(storage, metadata),
		service.NewPost(storage, metadata),
		service.NewComment(storage, metadata),
		service.NewUser(storage),
		service.NewAdminLog(storage),
		storage,
		cfg,
	)

	return &Dependencies{
		Config:        cfg,
		Storage:       storage,
		Handler:       h,
		PerIPLimiter:  newLimiter(cfg.Public.RateLimit.PerIP),
		GlobalLimiter: newLimiter(cfg.Public.RateLimit.Global),
	}
}

func newLimiter(rps float64) *ratelimiter.Limiter {
	if rps <= 0 {
		return nil
	}
	return ratelimiter.New(rps, rps, limiterIdle)
}

// Cleanup releases the store and stops limiter timers.
func (d *Dependencies) Cleanup() error {
	for _, l := range []*ratelimiter.Limiter{d.PerIPLimiter, d.GlobalLimiter} {
		if l != nil {
			l.Stop()
		}
	}
	return d.Storage.Cleanup()
}
