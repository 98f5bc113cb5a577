package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates that a requested resource was not found.
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidInput indicates that a required input value was missing.
	ErrInvalidInput = errors.New("invalid input")

	ErrNilUser        = fmt.Errorf("%w: user is required", ErrInvalidInput)
	ErrNilPhoneRecord = fmt.Errorf("%w: phone record is required", ErrInvalidInput)
)

// Entity names the kind of resource a NotFoundError refers to.
type Entity string

const (
	EntityUser        Entity = "user"
	EntityPhoneRecord Entity = "phone record"
)

// NotFoundError is returned when a lookup by identifier has no match.
// errors.Is(err, ErrNotFound) holds for every NotFoundError.
type NotFoundError struct {
	Entity Entity
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s id-%d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func UserNotFound(id int64) error {
	return &NotFoundError{Entity: EntityUser, ID: id}
}

func PhoneRecordNotFound(id int64) error {
	return &NotFoundError{Entity: EntityPhoneRecord, ID: id}
}
