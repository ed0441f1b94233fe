package payment

import "errors"

var (
	ErrProviderNotFound = errors.New("payment provider not found")
	ErrSessionNotFound  = errors.New("payment session not found")
)
