// Package access decides who may read or write an interview.
package access

import (
	"errors"

	"interviewprep/api/internal/models"
)

var (
	ErrUnauthorized    = errors.New("authentication required")
	ErrAccountNotFound = errors.New("user not found")
	ErrForbidden       = errors.New("access denied")
)

type Action int

const (
	Read Action = iota
	Write
)

// Caller is the resolved identity behind a request. Subject is the identity
// provider id; UserID is the local account, empty when none exists yet.
type Caller struct {
	Subject string
	UserID  string
}

func Anonymous() Caller {
	return Caller{}
}

func (c Caller) Authenticated() bool {
	return c.Subject != ""
}

func (c Caller) HasAccount() bool {
	return c.UserID != ""
}

// Authorize returns nil when caller may perform action on interview.
// Templates are readable by anyone; everything else, and every write,
// needs the owning account.
func Authorize(interview *models.Interview, caller Caller, action Action) error {
	if action == Read && interview.IsTemplate {
		return nil
	}
	if err := CanCreate(caller); err != nil {
		return err
	}
	if !interview.OwnedBy(caller.UserID) {
		return ErrForbidden
	}
	return nil
}

// CanCreate reports whether caller may create new interviews.
func CanCreate(caller Caller) error {
	if !caller.Authenticated() {
		return ErrUnauthorized
	}
	if !caller.HasAccount() {
		return ErrAccountNotFound
	}
	return nil
}
