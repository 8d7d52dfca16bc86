/*
Package resp provides helper functions for constructing and sending HTTP JSON responses.

Successful responses carry the handler's payload as-is; error responses share one
shape, {"code": <business code>, "error": <message>}, so clients can branch on either.
*/
package resp

import (
	"encoding/json"
	"net/http"

	"profilehub/internal/pkg/errs"
	"profilehub/internal/pkg/logx"
)

// ErrorResponse is the JSON body written for every failed request.
type ErrorResponse struct {
	// Code is the business error code (see the errs package).
	Code int `json:"code"`

	// Error is the client-facing message. It never contains internal details.
	Error string `json:"error"`
}

// RespondJSON is a generic response function used to set the Content-Type and send the JSON payload.
func RespondJSON(w http.ResponseWriter, r *http.Request, httpStatus int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	response, err := json.Marshal(payload)
	if err != nil {
		logx.ErrorCtx(
			r.Context(),
			err,
			"Error encoding JSON response",
			"http_status", httpStatus,
		)

		http.Error(w, "Error encoding JSON response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(httpStatus)
	w.Write(response)
}

// RespondSuccess sends data with HTTP 200 OK.
func RespondSuccess(w http.ResponseWriter, r *http.Request, data any) {
	RespondJSON(w, r, http.StatusOK, data)
}

// RespondCreated sends data with HTTP 201 Created.
func RespondCreated(w http.ResponseWriter, r *http.Request, data any) {
	RespondJSON(w, r, http.StatusCreated, data)
}

// RespondError sends an HTTP response containing custom error information.
func RespondError(w http.ResponseWriter, r *http.Request, customErr *errs.CustomError) {
	if customErr == nil {
		customErr = errs.NewError(errs.ErrUnknown)
	}

	RespondJSON(w, r, customErr.Status, ErrorResponse{
		Code:  customErr.Code,
		Error: customErr.Message,
	})
}
