package domain

import "errors"

var (
	ErrMessageNotFound = errors.New("message not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidLimit    = errors.New("limit must be positive")
	ErrEmptyContent    = errors.New("empty message content")
	ErrContentTooLong  = errors.New("message content too long")
)
