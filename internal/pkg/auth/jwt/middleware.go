package jwt

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"profilehub/internal/pkg/errs"
	"profilehub/internal/pkg/logx"
	"profilehub/internal/pkg/resp"
)

// Define Context Key for storing the authenticated user id, preventing key collisions with other packages.
type contextKey string

const (
	// ContextUserIDKey is the key used to store the verified user id in the request Context.
	ContextUserIDKey contextKey = "auth_user_id"
)

// Verifier is the part of Service the middleware depends on.
type Verifier interface {
	Verify(token string) (uuid.UUID, error)
}

// RequireAuth guards a route with a bearer token taken from the Authorization header.
// A missing header or token is rejected with 403 (ErrAuthRequired); a token that fails
// verification is rejected with 401 (ErrInvalidToken). On success the user id is injected
// into the request Context.
func RequireAuth(tokens Verifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				resp.RespondError(w, r, errs.NewError(errs.ErrAuthRequired))
				return
			}

			userID, err := tokens.Verify(tokenString)
			if err != nil {
				logx.WarnCtx(r.Context(), "Rejected bearer token", "reason", err.Error())
				resp.RespondError(w, r, errs.NewError(errs.ErrInvalidToken))
				return
			}

			ctx := WithUserID(r.Context(), userID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header value.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}

// WithUserID returns a copy of ctx carrying userID as the authenticated caller.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, ContextUserIDKey, userID)
}

// UserIDFromContext returns the caller id injected by RequireAuth.
// It is the only source handlers may trust for the caller's identity.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(ContextUserIDKey).(uuid.UUID)
	return userID, ok
}
