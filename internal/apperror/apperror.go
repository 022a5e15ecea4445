// Package apperror defines the failure taxonomy shared by the ledger store
// and the balance engine.
//
// Each typed error matches its sentinel through errors.Is, so callers can
// branch on the class without caring about the details:
//
//	if errors.Is(err, apperror.ErrReferentialIntegrity) { ... }
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrValidation           = errors.New("validation failed")
	ErrDuplicateName        = errors.New("duplicate name")
	ErrReferentialIntegrity = errors.New("referenced by other records")
	ErrNotFound             = errors.New("not found")
)

// ValidationError is returned before any write happens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func Validation(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// DuplicateNameError reports a unique title/name clash.
type DuplicateNameError struct {
	Entity string
	Name   string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Entity, e.Name)
}

func (e *DuplicateNameError) Is(target error) bool { return target == ErrDuplicateName }

func Duplicate(entity, name string) error {
	return &DuplicateNameError{Entity: entity, Name: name}
}

// ReferentialIntegrityError reports a delete blocked by dependent rows.
type ReferentialIntegrityError struct {
	Entity     string
	ID         int64
	References int
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("%s %d is referenced by %d transaction(s)", e.Entity, e.ID, e.References)
}

func (e *ReferentialIntegrityError) Is(target error) bool { return target == ErrReferentialIntegrity }

type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	if e.ID == 0 {
		return e.Entity + " not found"
	}
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func NotFound(entity string, id int64) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// IsUserError reports whether err belongs to the taxonomy, i.e. nothing was
// written and the message can be shown as is.
func IsUserError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrDuplicateName) ||
		errors.Is(err, ErrReferentialIntegrity) ||
		errors.Is(err, ErrNotFound)
}
