package service

import "errors"

var (
	ErrInvalidRequest        = errors.New("invalid request")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrMalformedNotification = errors.New("notification is missing the invoice number")
)
