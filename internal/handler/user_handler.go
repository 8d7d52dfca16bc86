package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"profilehub/internal/app/user"
	"profilehub/internal/pkg/auth/jwt"
	"profilehub/internal/pkg/errs"
	"profilehub/internal/pkg/logx"
	"profilehub/internal/pkg/req"
	"profilehub/internal/pkg/resp"
)

// UploadsPath is the URL prefix stored images are served under.
const UploadsPath = "/uploads/"

type ProfileResponse struct {
	ID              uuid.UUID `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	ProfileImage    *string   `json:"profile_image"`
	ProfileImageURL *string   `json:"profile_image_url"`
}

// imageURL returns the public path of a stored image.
func imageURL(name string) string {
	return UploadsPath + name
}

// currentUserID returns the caller id set by the auth middleware. Handlers behind
// RequireAuth always have one; a missing id is answered like a missing token.
func currentUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := jwt.UserIDFromContext(r.Context())
	if !ok {
		resp.RespondError(w, r, errs.NewError(errs.ErrAuthRequired))
	}
	return id, ok
}

// HandleGetProfile returns the caller's profile.
func HandleGetProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(w, r)
		if !ok {
			return
		}

		account, err := deps.Users.FindByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				logx.WarnCtx(r.Context(), "get_profile: user not found", "user_id", userID)
				resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
				return
			}
			respondInternal(w, r, err, "get_profile: user fetch failed", "user_id", userID)
			return
		}

		profile := ProfileResponse{
			ID:       account.ID,
			Username: account.Username,
			Email:    account.Email,
		}
		if account.HasProfileImage() {
			image, url := account.ProfileImage, imageURL(account.ProfileImage)
			profile.ProfileImage = &image
			profile.ProfileImageURL = &url
		}

		resp.RespondSuccess(w, r, profile)
	}
}

type UpdateProfileInput struct {
	Username *string `json:"username" validate:"omitempty,max=64"`
	Email    *string `json:"email" validate:"omitempty,email,max=254"`
}

// normalize trims both fields and drops the ones left empty: an empty string
// means "not provided", never "clear this field".
func (in *UpdateProfileInput) normalize() {
	if in.Username != nil {
		if v := user.NormalizeUsername(*in.Username); v != "" {
			in.Username = &v
		} else {
			in.Username = nil
		}
	}
	if in.Email != nil {
		if v := user.NormalizeEmail(*in.Email); v != "" {
			in.Email = &v
		} else {
			in.Email = nil
		}
	}
}

// HandleUpdateProfile changes the caller's username and/or email.
func HandleUpdateProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(w, r)
		if !ok {
			return
		}

		var input UpdateProfileInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		input.normalize()
		if input.Username == nil && input.Email == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrNoFieldsProvided))
			return
		}

		if customErr := req.Validate(&input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		updated, err := deps.Users.Update(r.Context(), userID, user.UpdateFields{
			Username: input.Username,
			Email:    input.Email,
		})
		if err != nil {
			switch {
			case errors.Is(err, user.ErrNoFieldsProvided):
				resp.RespondError(w, r, errs.NewError(errs.ErrNoFieldsProvided))
			case errors.Is(err, user.ErrUsernameTaken):
				resp.RespondError(w, r, errs.NewError(errs.ErrUsernameTaken))
			case errors.Is(err, user.ErrEmailTaken):
				resp.RespondError(w, r, errs.NewError(errs.ErrEmailTaken))
			case errors.Is(err, user.ErrNotFound):
				resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
			default:
				respondInternal(w, r, err, "update_profile: failed to update user", "user_id", userID)
			}
			return
		}

		fields := make([]string, 0, 2)
		if input.Username != nil {
			fields = append(fields, "username")
		}
		if input.Email != nil {
			fields = append(fields, "email")
		}
		logx.Info("Profile updated", "user_id", userID, "fields", strings.Join(fields, ","))

		resp.RespondSuccess(w, r, map[string]any{
			"message":  "User updated successfully",
			"id":       updated.ID,
			"username": updated.Username,
			"email":    updated.Email,
		})
	}
}

// HandleDeleteProfile deletes the caller's account and schedules removal of its image.
// Tokens already issued to the account stay valid until they expire, but every
// protected lookup afterwards answers 404.
func HandleDeleteProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(w, r)
		if !ok {
			return
		}

		image, err := deps.Users.Delete(r.Context(), userID)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
				return
			}
			respondInternal(w, r, err, "delete_profile: failed to delete user", "user_id", userID)
			return
		}

		deps.Replacer.Discard(image)
		logx.Info("User deleted", "user_id", userID)

		resp.RespondSuccess(w, r, map[string]any{
			"message": "User deleted successfully",
		})
	}
}
