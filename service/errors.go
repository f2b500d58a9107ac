package service

import (
	"errors"
	"fmt"
)

var (
	ErrValidation      = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrZeroIncome      = errors.New("income must be greater than zero")
	ErrRateLimited     = errors.New("rate limits exceeded, please try again later")
	ErrPaymentRequired = errors.New("payment required, please add funds to your AI workspace")
	ErrGateway         = errors.New("AI gateway error")
	ErrNotConfigured   = errors.New("not configured")
	ErrVideoAPI        = errors.New("YouTube API error")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
