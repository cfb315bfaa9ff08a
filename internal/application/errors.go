package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for fatal sync conditions
var (
	ErrPathInvalid      = errors.New("campaign path invalid")
	ErrHeaderAbsent     = errors.New("campaign header absent")
	ErrIdentityConflict = errors.New("pilot identity conflict")
)

// ValidationError reports invalid command input before any work is done.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// PathInvalidError means the campaign directory itself is not readable.
// Anything deeper is reported per-category as absent, never raised.
type PathInvalidError struct {
	Path string
	Err  error
}

func (e *PathInvalidError) Error() string {
	return fmt.Sprintf("campaign path %s: %v", e.Path, e.Err)
}

func (e *PathInvalidError) Is(target error) bool {
	return target == ErrPathInvalid
}

func (e *PathInvalidError) Unwrap() error {
	return e.Err
}

// MalformedRecordError tags an unparsable file with its path. It is
// recovered: the file is skipped and the condition becomes a diagnostic.
type MalformedRecordError struct {
	Path string
	Err  error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record %s: %v", e.Path, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

// IdentityConflictError means one serial number resolved to materially
// different pilot names. Ambiguous, so the sync aborts rather than guess.
type IdentityConflictError struct {
	Serial  int64
	NameA   string
	NameB   string
	SourceA string
	SourceB string
}

func (e *IdentityConflictError) Error() string {
	return fmt.Sprintf("serial %d claimed by %q (%s) and %q (%s)",
		e.Serial, e.NameA, e.SourceA, e.NameB, e.SourceB)
}

func (e *IdentityConflictError) Is(target error) bool {
	return target == ErrIdentityConflict
}

// StoreCorruptError records that the annotation store's backing file was
// unreadable and has been re-initialized empty. Recovered: annotation loss
// is repairable by the user, a blocked sync is not.
type StoreCorruptError struct {
	Path string
	Err  error
}

func (e *StoreCorruptError) Error() string {
	return fmt.Sprintf("annotation store %s corrupt, re-initialized: %v", e.Path, e.Err)
}

func (e *StoreCorruptError) Unwrap() error {
	return e.Err
}
