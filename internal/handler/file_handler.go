package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"profilehub/internal/app/storage"
	"profilehub/internal/app/user"
	"profilehub/internal/pkg/errs"
	"profilehub/internal/pkg/logx"
	"profilehub/internal/pkg/req"
	"profilehub/internal/pkg/resp"
)

// ImageFormField is the multipart field carrying the profile image.
const ImageFormField = "image"

// HandleUploadProfileImage stores the uploaded image and makes it the caller's
// profile image. It serves both POST /upload and PUT /profile/image.
func HandleUploadProfileImage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(w, r)
		if !ok {
			return
		}

		if customErr := req.SetupMultipart(w, r); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		defer func() {
			if err := r.MultipartForm.RemoveAll(); err != nil {
				logx.Warn("Failed to remove multipart temp files", "error", err.Error())
			}
		}()

		file, header, err := r.FormFile(ImageFormField)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrNoFileUploaded))
			return
		}
		defer file.Close()

		name, err := deps.Replacer.Replace(r.Context(), userID, storage.Upload{
			Body:     file,
			Filename: header.Filename,
			MimeType: header.Header.Get("Content-Type"),
			Size:     header.Size,
		})
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrInvalidType):
				resp.RespondError(w, r, errs.NewError(errs.ErrInvalidFileType))
			case errors.Is(err, storage.ErrTooLarge):
				resp.RespondError(w, r, errs.NewError(errs.ErrFileTooLarge))
			case errors.Is(err, user.ErrNotFound):
				resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
			case errors.Is(err, storage.ErrStoreFailed):
				logx.ErrorCtx(r.Context(), err, "upload: failed to store image", "user_id", userID)
				resp.RespondError(w, r, errs.NewError(errs.ErrFileStorageFailed))
			default:
				respondInternal(w, r, err, "upload: failed to update profile image", "user_id", userID)
			}
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"message":           "Profile image updated successfully",
			"profile_image_url": imageURL(name),
		})
	}
}

// HandleServeImage serves a stored image by file name.
func HandleServeImage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "filename")

		err := deps.Images.ServeImage(w, r, name)
		if err == nil {
			return
		}

		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidName) {
			resp.RespondError(w, r, errs.NewError(errs.ErrFileNotFound))
			return
		}
		respondInternal(w, r, err, "serve_image: backend failure", "filename", name)
	}
}
