package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("not found")          // 404
	ErrInvalidInput      = errors.New("invalid input")      // 400
	ErrForbidden         = errors.New("forbidden")          // 403
	ErrUnauthorized      = errors.New("unauthorized")       // 401
	ErrConflict          = errors.New("conflict")           // 409
	ErrCascadeIncomplete = errors.New("cascade incomplete") // 500, some records already removed
)

// Error carries a message that is safe to show to the caller.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg + ": " + e.Kind.Error() }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// PublicMessage returns the caller-facing message of err, or "" when err
// carries none.
func PublicMessage(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Msg
	}
	return ""
}

// notFoundOr turns a missing record into ErrNotFound with msg and passes
// anything else through.
func notFoundOr(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return newError(ErrNotFound, msg)
	}
	return err
}

type CascadeStep string

const (
	StepLookupShop CascadeStep = "lookup_shop"
	StepItems      CascadeStep = "items"
	StepShop       CascadeStep = "shop"
	StepUser       CascadeStep = "user"
)

// CascadeError reports an owner deletion that stopped part way. Completed
// lists the steps whose records are already gone.
type CascadeError struct {
	Step      CascadeStep
	Completed []CascadeStep
	Err       error
}

func (e *CascadeError) Error() string {
	done := make([]string, len(e.Completed))
	for i, s := range e.Completed {
		done[i] = string(s)
	}
	return fmt.Sprintf("delete owner: step %s failed (completed: [%s]): %v", e.Step, strings.Join(done, ","), e.Err)
}

func (e *CascadeError) Unwrap() []error {
	return []error{ErrCascadeIncomplete, e.Err}
}
