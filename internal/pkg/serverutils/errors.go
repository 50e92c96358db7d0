package serverutils

import (
	"errors"
	"fmt"
)

// The service layer surfaces every failure as one of these types; the
// error handler middleware maps them onto HTTP statuses. Nothing below the
// controllers is allowed to swallow an error.

type NotFoundError struct {
	Resource string
	Detail   string
}

func (e *NotFoundError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.Detail)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func NewNotFound(resource string, detailFmt string, args ...interface{}) error {
	return &NotFoundError{Resource: resource, Detail: fmt.Sprintf(detailFmt, args...)}
}

type PermissionError struct {
	Detail string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: %s", e.Detail)
}

func NewPermissionDenied(detailFmt string, args ...interface{}) error {
	return &PermissionError{Detail: fmt.Sprintf(detailFmt, args...)}
}

type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Detail)
}

func NewValidation(detailFmt string, args ...interface{}) error {
	return &ValidationError{Detail: fmt.Sprintf(detailFmt, args...)}
}

// CorruptStateError marks a stored value outside its closed domain (an
// operation status or update interval we do not recognize). It indicates an
// upstream data integrity bug and is surfaced as a 500, never defaulted.
type CorruptStateError struct {
	Detail string
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("corrupt stored state: %s", e.Detail)
}

func NewCorruptState(detailFmt string, args ...interface{}) error {
	return &CorruptStateError{Detail: fmt.Sprintf(detailFmt, args...)}
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsPermissionDenied(err error) bool {
	var target *PermissionError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsCorruptState(err error) bool {
	var target *CorruptStateError
	return errors.As(err, &target)
}
