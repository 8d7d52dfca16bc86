package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"profilehub/internal/app/storage"
	"profilehub/internal/app/user"
	"profilehub/internal/configs"
	"profilehub/internal/pkg/limiter"
	"profilehub/internal/pkg/metrics"
	"profilehub/internal/pkg/password"
)

// UserStore is the Credential Store as seen by the handlers.
type UserStore interface {
	Create(ctx context.Context, nu user.NewUser) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	Update(ctx context.Context, id uuid.UUID, f user.UpdateFields) (*user.User, error)
	Delete(ctx context.Context, id uuid.UUID) (string, error)
}

// TokenService issues and verifies bearer tokens.
type TokenService interface {
	Issue(userID uuid.UUID) (string, error)
	Verify(token string) (uuid.UUID, error)
}

// ImageServer serves stored images.
type ImageServer interface {
	ServeImage(w http.ResponseWriter, r *http.Request, name string) error
}

// ImageReplacer runs the profile image replacement protocol.
type ImageReplacer interface {
	Replace(ctx context.Context, userID uuid.UUID, up storage.Upload) (string, error)
	Discard(name string)
}

// AppDeps bundles everything the handlers need. It is built once in main.
type AppDeps struct {
	Config    *configs.AppConfig
	Users     UserStore
	Passwords *password.Hasher
	Tokens    TokenService
	Images    ImageServer
	Replacer  ImageReplacer
	Metrics   *metrics.Collector

	// AuthLimiter throttles /register and /login per client IP. Nil disables it.
	AuthLimiter *limiter.IPRateLimiter
}
