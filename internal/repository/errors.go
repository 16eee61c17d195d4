// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios without inspecting
// driver error strings themselves. Duplicate-key errors from MySQL (error
// 1062) are translated here into domain conflicts, which is what makes the
// unique index the final arbiter of races: a writer that loses a concurrent
// insert observes the same sentinel as one that hit a plain duplicate.
package repository

import "errors"

// ErrAlreadyRegistered is returned when an insert into registrations
// violates the (event_id, user_id) unique key. Handlers translate it into
// the same 400 "already registered" message as the application-level
// duplicate check, so clients cannot tell a race from a simple duplicate.
var ErrAlreadyRegistered = errors.New("already registered for this event")

// ErrRegistrationNotFound is returned when a registration lookup by id or
// qr token matches nothing. Handlers map it to 404 (or the NOT_FOUND gate
// outcome).
var ErrRegistrationNotFound = errors.New("registration not found")

// ErrEventNotFound is returned when an event lookup matches nothing.
var ErrEventNotFound = errors.New("event not found")

// ErrEmailExists, ErrRegNumberExists and ErrPhoneExists report which unique
// user key was violated during signup, so the student sees which field to
// change.
var (
    ErrEmailExists     = errors.New("email already exists")
    ErrRegNumberExists = errors.New("registration number already in use")
    ErrPhoneExists     = errors.New("phone number already in use")
)
