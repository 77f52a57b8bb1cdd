package apperror

import (
	"errors"
	"fmt"
)

var (
	// ErrStorageUnavailable means the backing store could not be reached or rejected a write.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrSessionNotFound means the referenced chat session does not exist.
	ErrSessionNotFound = errors.New("chat session not found")
	// ErrUpstreamFailure means the assistant or the messaging gateway failed.
	ErrUpstreamFailure = errors.New("upstream failure")
	ErrValidation      = errors.New("validation failed")
)

func Storage(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}

func Upstream(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrUpstreamFailure, err)
}

func Validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
