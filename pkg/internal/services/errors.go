package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrValidation             = errors.New("validation failed")
	ErrPermissionDenied       = errors.New("permission denied")
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrInvalidRelationship    = errors.New("invalid relationship")
	ErrNotFound               = errors.New("not found")
)

// wrapLookupErr turns a record-not-found from gorm into ErrNotFound and keeps other errors as is.
func wrapLookupErr(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
	}
	return fmt.Errorf("unable to get %s: %v", fmt.Sprintf(format, args...), err)
}
