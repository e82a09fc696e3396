package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Domain failure (card errors, failed scenarios, invalid document)
	ExitCommandError = 2 // Command error (missing files, bad flags, database not found)
)

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
	Format  string
	Writer  io.Writer
	Verbose bool

	printer *message.Printer
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string      `json:"status"`          // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`  // success payload
	Error  *CLIError   `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// JSON outputs a successful payload as an envelope in JSON mode and
// returns false in text mode, letting the caller render text itself.
func (f *OutputFormatter) JSON(data interface{}) (bool, error) {
	if f.Format != "json" {
		return false, nil
	}
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return true, enc.Encode(CLIResponse{Status: "ok", Data: data})
}

// JSONError outputs an error envelope in JSON mode and returns false
// in text mode.
func (f *OutputFormatter) JSONError(code, msg string, details interface{}) (bool, error) {
	if f.Format != "json" {
		return false, nil
	}
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return true, enc.Encode(CLIResponse{
		Status: "error",
		Error:  &CLIError{Code: code, Message: msg, Details: details},
	})
}

// Number renders a float for text output: grouped thousands, up to
// six fraction digits.
func (f *OutputFormatter) Number(v float64) string {
	if f.printer == nil {
		f.printer = message.NewPrinter(language.English)
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return f.printer.Sprint(number.Decimal(int64(v)))
	}
	return f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(6)))
}
