/*
Package errs provides custom error types and application-level error code constants.

These error codes are used to clearly identify specific business or system errors
both internally within the server and in communication with clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect (e.g., syntax error).
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrFormParseFailed indicates failure to parse multipart or URL-encoded form data.
	ErrFormParseFailed = 1005

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1007

	// ErrNoFieldsProvided indicates that a partial update carried no updatable field.
	ErrNoFieldsProvided = 1008
)

// 2xxx: Account Errors
const (
	// ErrUsernameTaken indicates that another account already uses the username.
	ErrUsernameTaken = 2001

	// ErrEmailTaken indicates that another account already uses the email address.
	ErrEmailTaken = 2002

	// ErrInvalidCredentials covers both an unknown username and a wrong password.
	ErrInvalidCredentials = 2003

	// ErrUserNotFound indicates that the account addressed by the request no longer exists.
	ErrUserNotFound = 2004
)

// 3xxx: Authentication Errors
const (
	// ErrAuthRequired indicates that no bearer token was presented.
	ErrAuthRequired = 3001

	// ErrInvalidToken indicates that the bearer token failed verification.
	ErrInvalidToken = 3002
)

// 4xxx: Upload Errors
const (
	// ErrNoFileUploaded indicates that the multipart field "image" was missing.
	ErrNoFileUploaded = 4001

	// ErrInvalidFileType indicates that the upload is not a JPEG, PNG or GIF image.
	ErrInvalidFileType = 4002

	// ErrFileTooLarge indicates that the upload exceeds the 5 MiB limit.
	ErrFileTooLarge = 4003

	// ErrFileNotFound indicates that a requested stored image does not exist.
	ErrFileNotFound = 4004
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000

	// ErrFileStorageFailed indicates that the image backend could not store the upload.
	ErrFileStorageFailed = 5001
)
