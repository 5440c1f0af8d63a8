package mailer

import "errors"

var (
	// ErrInternal returned on client-side failures
	ErrInternal = errors.New("mailer client: internal error")

	// ErrInvalidResponse returned when the mail service answers unexpectedly
	ErrInvalidResponse = errors.New("mailer client: invalid response")
)
