package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/invoisio/paymentledger/internal/ledger"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Ledger-level failure (unauthorized, duplicate invoice, not found, ...)
	ExitCommandError = 2 // Command error (bad flags, unreadable database, invalid config)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// ledgerError wraps a ledger operation failure with the right exit code:
// taxonomy failures are ExitFailure, everything else is a command error.
func ledgerError(err error) error {
	if err == nil {
		return nil
	}
	if ledger.CodeOf(err) != "" {
		return WrapExitError(ExitFailure, "ledger operation failed", err)
	}
	return WrapExitError(ExitCommandError, "ledger operation failed", err)
}

// printResult writes v to w as JSON or text depending on format.
// For text, textual is written as-is (with a trailing newline).
func printResult(w io.Writer, format string, v any, textual string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprintln(w, textual)
	return err
}
