/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to standardize
HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value contains the user message and HTTP status code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters."},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Malformed JSON body."},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data."},
	ErrFormParseFailed:      {Code: ErrFormParseFailed, Message: "Failed to process uploaded data."},
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},
	ErrNoFieldsProvided:     {Code: ErrNoFieldsProvided, Message: "No data provided to update"},

	// 2xxx: Account Errors
	ErrUsernameTaken:      {Code: ErrUsernameTaken, Message: "Username already in use"},
	ErrEmailTaken:         {Code: ErrEmailTaken, Message: "Email already in use"},
	ErrInvalidCredentials: {Code: ErrInvalidCredentials, Message: "Invalid username or password"},
	ErrUserNotFound:       {Code: ErrUserNotFound, Message: "User not found", Status: http.StatusNotFound},

	// 3xxx: Authentication Errors
	ErrAuthRequired: {Code: ErrAuthRequired, Message: "Token is required for authentication", Status: http.StatusForbidden},
	ErrInvalidToken: {Code: ErrInvalidToken, Message: "Invalid Token", Status: http.StatusUnauthorized},

	// 4xxx: Upload Errors
	ErrNoFileUploaded:  {Code: ErrNoFileUploaded, Message: "No file uploaded"},
	ErrInvalidFileType: {Code: ErrInvalidFileType, Message: "Invalid file type. Only JPEG, PNG, and GIF are allowed."},
	ErrFileTooLarge:    {Code: ErrFileTooLarge, Message: "File size exceeds limit (5MB)"},
	ErrFileNotFound:    {Code: ErrFileNotFound, Message: "File not found", Status: http.StatusNotFound},

	// 5xxx: Internal System Errors
	ErrUnknown:           {Code: ErrUnknown, Message: "Internal server error", Status: http.StatusInternalServerError},
	ErrFileStorageFailed: {Code: ErrFileStorageFailed, Message: "File upload failed. Please try again.", Status: http.StatusInternalServerError},
}
