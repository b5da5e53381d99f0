package util

import "errors"

var (
	ErrLoginRequired      = errors.New("login required")
	ErrUserNotFound       = errors.New("user not found")
	ErrAlreadyConnected   = errors.New("already connected")
	ErrRequestPending     = errors.New("request already pending")
	ErrConnectionNotFound = errors.New("connection not found")
	ErrMeetingNotFound    = errors.New("meeting request not found")
	ErrValidationFailed   = errors.New("validation failed")
	ErrSubmitInFlight     = errors.New("a submission is already in flight")
	ErrBlocked            = errors.New("interaction blocked")
	ErrTokenExpired       = errors.New("deletion token expired")
)

// GenericRequestFailed 在服务端没有给出 message 时使用的兜底文案
const GenericRequestFailed = "Something went wrong. Please try again."
