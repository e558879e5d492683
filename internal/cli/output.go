package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/jsondoc/internal/jv"
	"github.com/roach88/jsondoc/internal/store"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Document or scenario failure (parse error, missing key, failed scenario, etc.)
	ExitCommandError = 2 // Command error (unreadable file, missing document in store, etc.)
)

// Error codes reported in CLIError.Code, one per error kind.
const (
	ErrCodeGeneric  = "E001"
	ErrCodeParse    = "E002"
	ErrCodeType     = "E003"
	ErrCodeKey      = "E004"
	ErrCodeIndex    = "E005"
	ErrCodeRange    = "E006"
	ErrCodeOverflow = "E007"
	ErrCodeIO       = "E008"
	ErrCodeNotFound = "E009"
)

// ErrorCode maps an error to its CLI error code.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrCodeNotFound
	case errors.Is(err, jv.ErrIO):
		return ErrCodeIO
	case errors.Is(err, jv.ErrOverflow):
		return ErrCodeOverflow
	case errors.Is(err, jv.ErrParse):
		return ErrCodeParse
	case errors.Is(err, jv.ErrType):
		return ErrCodeType
	case errors.Is(err, jv.ErrKey):
		return ErrCodeKey
	case errors.Is(err, jv.ErrIndex):
		return ErrCodeIndex
	case errors.Is(err, jv.ErrRange):
		return ErrCodeRange
	}
	return ErrCodeGeneric
}

// exitCodeFor classifies err: input that could not be found or read is a
// command error, everything else is a document failure.
func exitCodeFor(err error) int {
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, jv.ErrIO) {
		return ExitCommandError
	}
	return ExitFailure
}

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
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

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // "E001", "E002", etc.
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	// Human-readable text output
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	// Human-readable error
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
// When format is JSON, verbose logs go to ErrWriter to avoid corrupting JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// Fail reports err in the configured format and returns the ExitError the
// command should return.
func (f *OutputFormatter) Fail(message string, err error) error {
	if outErr := f.Error(ErrorCode(err), fmt.Sprintf("%s: %v", message, err), nil); outErr != nil {
		return outErr
	}
	return WrapExitError(exitCodeFor(err), message, err)
}

// SuccessList outputs items one per line in text mode, or as a JSON array.
func SuccessList[T fmt.Stringer](f *OutputFormatter, items []T) error {
	if f.Format == "json" {
		return f.Success(items)
	}
	for _, item := range items {
		fmt.Fprintln(f.Writer, item)
	}
	return nil
}
