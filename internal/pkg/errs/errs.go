package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound          = errors.New("object not found")
	ErrValueIsInvalid          = errors.New("value is invalid")
	ErrValueIsOutOfRange       = errors.New("value is out of range")
	ErrValueIsRequired         = errors.New("value is required")
	ErrReferenceIsInvalid      = errors.New("reference is invalid")
	ErrDependencyIsUnavailable = errors.New("dependency is unavailable")
	ErrConflict                = errors.New("state conflict")
)

// sanitize keeps user supplied values on a single log line.
func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

// ObjectNotFoundError reports a lookup by identifier that found nothing.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{
		ParamName: paramName,
		ID:        id,
	}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{
		ParamName: paramName,
		ID:        id,
		Cause:     cause,
	}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a value that failed a domain rule.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{
		ParamName: paramName,
		Cause:     cause,
	}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside of [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{
		ParamName: paramName,
		Value:     value,
		Min:       minValue,
		Max:       maxValue,
	}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{
		ParamName: paramName,
		Value:     value,
		Min:       minValue,
		Max:       maxValue,
		Cause:     cause,
	}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	return withCause(msg, e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{
		ParamName: paramName,
		Cause:     cause,
	}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ReferenceIsInvalidError reports an identifier that points at nothing in an
// external system of record. The client has to correct its input.
type ReferenceIsInvalidError struct {
	ParamName string
	Reference any
	Cause     error
}

func NewReferenceIsInvalidError(paramName string, reference any) *ReferenceIsInvalidError {
	return &ReferenceIsInvalidError{
		ParamName: paramName,
		Reference: reference,
	}
}

func NewReferenceIsInvalidErrorWithCause(paramName string, reference any, cause error) *ReferenceIsInvalidError {
	return &ReferenceIsInvalidError{
		ParamName: paramName,
		Reference: reference,
		Cause:     cause,
	}
}

func (e *ReferenceIsInvalidError) Error() string {
	msg := fmt.Sprintf("%s: %s %s does not exist", ErrReferenceIsInvalid, e.ParamName, sanitize(e.Reference))
	return withCause(msg, e.Cause)
}

func (e *ReferenceIsInvalidError) Unwrap() error {
	return ErrReferenceIsInvalid
}

// DependencyIsUnavailableError reports a downstream service that timed out or
// could not be reached. Retrying the whole operation is safe.
type DependencyIsUnavailableError struct {
	Dependency string
	Cause      error
}

func NewDependencyIsUnavailableError(dependency string) *DependencyIsUnavailableError {
	return &DependencyIsUnavailableError{Dependency: dependency}
}

func NewDependencyIsUnavailableErrorWithCause(dependency string, cause error) *DependencyIsUnavailableError {
	return &DependencyIsUnavailableError{
		Dependency: dependency,
		Cause:      cause,
	}
}

func (e *DependencyIsUnavailableError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrDependencyIsUnavailable, e.Dependency), e.Cause)
}

func (e *DependencyIsUnavailableError) Unwrap() error {
	return ErrDependencyIsUnavailable
}

// ConflictError reports an operation rejected by the current state of an object.
type ConflictError struct {
	Reason string
	Cause  error
}

func NewConflictError(reason string) *ConflictError {
	return &ConflictError{Reason: reason}
}

func NewConflictErrorWithCause(reason string, cause error) *ConflictError {
	return &ConflictError{
		Reason: reason,
		Cause:  cause,
	}
}

func (e *ConflictError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrConflict, sanitize(e.Reason)), e.Cause)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
