// Package types holds the statement kinds and error sentinels shared by the
// completion packages.
package types

import (
	"github.com/cockroachdb/errors"
)

// Sentinel errors. Wrap them with errors.Wrapf to add context and test with
// errors.Is.
var (
	// ErrInvalidArgument marks a caller bug, such as a cursor outside the text.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownDialect is returned when a grammar dialect is not registered.
	ErrUnknownDialect = errors.New("unknown dialect")

	// ErrInvalidSchema is returned when a schema document cannot be decoded.
	ErrInvalidSchema = errors.New("invalid schema")
)

// InvalidArgumentf creates an invalid-argument error with a formatted message.
func InvalidArgumentf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}

// IsInvalidArgument checks if an error is or wraps ErrInvalidArgument
func IsInvalidArgument(err error) bool {
	return err != nil && errors.Is(err, ErrInvalidArgument)
}

// IsUnknownDialect checks if an error is or wraps ErrUnknownDialect
func IsUnknownDialect(err error) bool {
	return err != nil && errors.Is(err, ErrUnknownDialect)
}
