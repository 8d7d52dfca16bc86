package handler

import (
	"errors"
	"net/http"

	"profilehub/internal/app/user"
	"profilehub/internal/pkg/errs"
	"profilehub/internal/pkg/logx"
	"profilehub/internal/pkg/metrics"
	"profilehub/internal/pkg/req"
	"profilehub/internal/pkg/resp"
)

type RegisterInput struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,maxbytes=72"`
	Email    string `json:"email" validate:"required,email,max=254"`
}

// HandleRegister creates an account and responds 201 with its id and username.
func HandleRegister(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input RegisterInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		input.Username = user.NormalizeUsername(input.Username)
		input.Email = user.NormalizeEmail(input.Email)

		if customErr := req.Validate(&input); customErr != nil {
			deps.Metrics.RecordRegistration(metrics.ResultRejected)
			resp.RespondError(w, r, customErr)
			return
		}

		digest, err := deps.Passwords.Hash(input.Password)
		if err != nil {
			deps.Metrics.RecordRegistration(metrics.ResultFailure)
			respondInternal(w, r, err, "register: failed to hash password")
			return
		}

		created, err := deps.Users.Create(r.Context(), user.NewUser{
			Username:     input.Username,
			Email:        input.Email,
			PasswordHash: digest,
		})
		if err != nil {
			switch {
			case errors.Is(err, user.ErrUsernameTaken):
				deps.Metrics.RecordRegistration(metrics.ResultRejected)
				logx.WarnCtx(r.Context(), "registration conflict: username already exists", "username", input.Username)
				resp.RespondError(w, r, errs.NewError(errs.ErrUsernameTaken))
			case errors.Is(err, user.ErrEmailTaken):
				deps.Metrics.RecordRegistration(metrics.ResultRejected)
				logx.WarnCtx(r.Context(), "registration conflict: email already exists")
				resp.RespondError(w, r, errs.NewError(errs.ErrEmailTaken))
			default:
				deps.Metrics.RecordRegistration(metrics.ResultFailure)
				respondInternal(w, r, err, "register: failed to create user in database")
			}
			return
		}

		deps.Metrics.RecordRegistration(metrics.ResultSuccess)
		logx.Info("User registered", "user_id", created.ID, "username", created.Username)

		resp.RespondCreated(w, r, map[string]any{
			"message":  "User created successfully",
			"userId":   created.ID,
			"username": created.Username,
		})
	}
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin verifies user credentials and issues a bearer token.
// Unknown usernames and wrong passwords produce the same response and cost the
// same bcrypt work, so neither the body nor the timing reveals which accounts exist.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input LoginInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		input.Username = user.NormalizeUsername(input.Username)
		if customErr := req.Validate(&input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		account, err := deps.Users.FindByUsername(r.Context(), input.Username)
		if err != nil {
			if !errors.Is(err, user.ErrNotFound) {
				deps.Metrics.RecordLogin(metrics.ResultFailure)
				respondInternal(w, r, err, "login: user fetch failed")
				return
			}

			deps.Passwords.VerifyDummy(input.Password)
			deps.Metrics.RecordLogin(metrics.ResultRejected)
			logx.WarnCtx(r.Context(), "login: unknown username")
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
			return
		}

		if !deps.Passwords.Verify(input.Password, account.PasswordHash) {
			deps.Metrics.RecordLogin(metrics.ResultRejected)
			logx.WarnCtx(r.Context(), "login: password mismatch", "user_id", account.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
			return
		}

		token, err := deps.Tokens.Issue(account.ID)
		if err != nil {
			deps.Metrics.RecordLogin(metrics.ResultFailure)
			respondInternal(w, r, err, "login: token generation failed")
			return
		}

		deps.Metrics.RecordLogin(metrics.ResultSuccess)

		resp.RespondSuccess(w, r, map[string]any{
			"token": token,
		})
	}
}

// respondInternal logs err with the request's logger and answers with a generic 500.
func respondInternal(w http.ResponseWriter, r *http.Request, err error, msg string, fields ...any) {
	logx.ErrorCtx(r.Context(), err, msg, fields...)
	resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
}
