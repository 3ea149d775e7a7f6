// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the referenced agent, task, badge, or dimension does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidState indicates a task is not in the state required for the requested transition.
var ErrInvalidState = errors.New("invalid state")

// ErrForbidden indicates the acting agent is not allowed to perform the operation.
var ErrForbidden = errors.New("forbidden")

// ErrValidation indicates the request payload failed validation.
var ErrValidation = errors.New("validation failed")
