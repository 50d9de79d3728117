package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrItemNotFound is returned when a media item is not found
	ErrItemNotFound = errors.New("media item not found")

	// ErrFolderNotFound is returned when a media folder is not found
	ErrFolderNotFound = errors.New("media folder not found")

	// ErrEmptySelection is returned when a batch operation runs against an empty selection
	ErrEmptySelection = errors.New("selection is empty")
)

// ValidationError reports a file rejected before any byte transfer began
// (size ceiling exceeded or disallowed kind). Surfaced per-file.
type ValidationError struct {
	FileName string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %q: %s", e.FileName, e.Reason)
}

// TransferError reports a network or service failure during an upload, delete
// or move. Retry is at the caller's discretion.
type TransferError struct {
	Op  string
	Err error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("transfer failed during %s: %v", e.Op, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

// EditorCommitError reports a crop or trim commit that failed to produce a
// valid blob. It blocks the commit and leaves prior editor state untouched.
type EditorCommitError struct {
	Op  string
	Err error
}

func (e *EditorCommitError) Error() string {
	return fmt.Sprintf("editor commit failed during %s: %v", e.Op, e.Err)
}

func (e *EditorCommitError) Unwrap() error {
	return e.Err
}

// InvariantViolation reports an internal consistency failure, e.g. an item
// referencing a nonexistent folder. It should never surface to the user;
// offending records are excluded from derivations and the violation logged.
type InvariantViolation struct {
	Msg string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation: %s", e.Msg)
}
