package app

import "errors"

var (
	// ErrNotFound is returned when the named entity does not exist or is not
	// visible to the caller.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken is returned by SignUp when the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned by Login on a bad email/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden is returned when the caller does not own the target entity.
	ErrForbidden = errors.New("forbidden")
	// ErrEmptyCart is returned by PlaceOrder when no items are supplied.
	ErrEmptyCart = errors.New("order has no items")
	// ErrValidation is returned when a request is missing required fields.
	ErrValidation = errors.New("invalid request")
)
