package errors

import "errors"

// Custom application errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrRequestNotFound   = errors.New("request not found")
	ErrNoEncryptionKey   = errors.New("no encryption key for user")
	ErrDecryptionFailed  = errors.New("failed to decrypt jobs data")
	ErrDatabaseOperation = errors.New("database operation failed")
	ErrEmailSend         = errors.New("failed to send email")
	ErrScheduling        = errors.New("scheduling failed")
	ErrValidation        = errors.New("invalid request parameters")
	ErrInternalServer    = errors.New("internal server error")
)
