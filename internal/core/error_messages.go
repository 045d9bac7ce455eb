package core

// error_messages.go turns technical errors into messages a pharmacy user can
// act on. Each message carries a short code that support staff can look up.
//
// # Error Codes Reference
//
// File errors:
//
//	FILE001 - File too large            ErrFileTooLarge
//	FILE002 - File is not a valid CSV   IngestError of kind parse_error
//	FILE004 - No file selected          ErrNoFile
//	FILE005 - Empty file                ErrEmptyFile
//	FILE006 - Not a CSV file            IngestError of kind unsupported_file_type
//
// Upload errors:
//
//	UPL002 - System busy                ErrTooManyUploads
//	UPL004 - Request cancelled          context.Canceled
//	UPL005 - Request timed out          context.DeadlineExceeded
//
// Import history errors:
//
//	IMP001 - Import not found           ErrImportNotFound
//	IMP002 - Malformed import id        ErrInvalidImportID
//
// Request errors:
//
//	REQ001 - Unreadable request body    ErrInvalidRequest
//	QTY001 - Negative packaging level   quantity.ErrNegativeQuantity
//	QTY002 - Invalid unit price         quantity.ErrInvalidPrice
//	QTY003 - Total out of range         quantity.ErrQuantityOverflow
//
// Database errors are matched on driver text:
//
//	DB001 - "duplicate key"
//	DB002 - "unique constraint", "violates unique"
//	DB003 - "connection refused"
//	DB004 - "connection reset"
//	DB005 - "timeout"
//	DB006 - "deadlock"
//
//	RATE001 - "rate limit"
//	ERR000  - anything else; check the logs for the original error.

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/JonMunkholm/pharmastock/internal/quantity"
)

// UserMessage is a user-facing description of an error.
type UserMessage struct {
	Message string // What went wrong
	Action  string // What the user can do about it
	Code    string // Support reference
	Detail  string // Technical detail safe to show, e.g. the CSV parser message
}

// typedError maps a sentinel (matched with errors.Is) to a message.
type typedError struct {
	target error
	msg    UserMessage
	detail bool // copy err.Error() into Detail
}

var typedErrors = []typedError{
	{
		target: ErrUnsupportedFileType,
		msg: UserMessage{
			Message: "Only CSV files can be imported",
			Action:  "Export your spreadsheet as .csv and upload it again",
			Code:    "FILE006",
		},
	},
	{
		target: ErrParse,
		msg: UserMessage{
			Message: "File is not a valid CSV",
			Action:  "Ensure every row has the same number of comma-separated columns and quotes are closed",
			Code:    "FILE002",
		},
	},
	{
		target: ErrFileTooLarge,
		msg: UserMessage{
			Message: "File exceeds the maximum upload size",
			Action:  "Split the file into smaller files",
			Code:    "FILE001",
		},
	},
	{
		target: ErrNoFile,
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select a CSV file to upload",
			Code:    "FILE004",
		},
	},
	{
		target: ErrEmptyFile,
		msg: UserMessage{
			Message: "The uploaded file is empty",
			Action:  "Please upload a CSV file with a header and data rows",
			Code:    "FILE005",
		},
	},
	{
		target: ErrTooManyUploads,
		msg: UserMessage{
			Message: "System is busy processing other uploads",
			Action:  "Please wait a moment and try again",
			Code:    "UPL002",
		},
	},
	{
		target: context.Canceled,
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "UPL004",
		},
	},
	{
		target: context.DeadlineExceeded,
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try uploading a smaller file or check your connection",
			Code:    "UPL005",
		},
	},
	{
		target: ErrImportNotFound,
		msg: UserMessage{
			Message: "Import not found",
			Action:  "It may already have been rolled back. Refresh the import history",
			Code:    "IMP001",
		},
	},
	{
		target: ErrInvalidImportID,
		msg: UserMessage{
			Message: "Import id is not valid",
			Action:  "Use the id shown in the import history",
			Code:    "IMP002",
		},
	},
	{
		target: ErrInvalidRequest,
		msg: UserMessage{
			Message: "Request could not be read",
			Action:  "Check the request body is valid JSON",
			Code:    "REQ001",
		},
		detail: true,
	},
	{
		target: quantity.ErrNegativeQuantity,
		msg: UserMessage{
			Message: "Quantities cannot be negative",
			Action:  "Enter 0 for packaging levels that do not apply",
			Code:    "QTY001",
		},
		detail: true,
	},
	{
		target: quantity.ErrInvalidPrice,
		msg: UserMessage{
			Message: "Unit price is not a valid amount",
			Action:  "Enter the price as a plain number, e.g. 12.50",
			Code:    "QTY002",
		},
		detail: true,
	},
	{
		target: quantity.ErrQuantityOverflow,
		msg: UserMessage{
			Message: "Total unit count is too large",
			Action:  "Check the packaging levels for extra digits",
			Code:    "QTY003",
		},
	},
}

// errorPattern maps a substring of a lower-cased error message to a message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{
		pattern: "duplicate key",
		msg: UserMessage{
			Message: "A record with this ID already exists",
			Action:  "Check for duplicate entries in your CSV",
			Code:    "DB001",
		},
	},
	{
		pattern: "unique constraint",
		msg: UserMessage{
			Message: "This value must be unique but already exists",
			Action:  "Check for duplicate entries in your CSV",
			Code:    "DB002",
		},
	},
	{
		pattern: "violates unique",
		msg: UserMessage{
			Message: "A duplicate value was found",
			Action:  "Review your data for duplicate key values",
			Code:    "DB002",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DB003",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Database connection was interrupted",
			Action:  "Please try again",
			Code:    "DB004",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Try uploading a smaller file or try again later",
			Code:    "DB005",
		},
	},
	{
		pattern: "deadlock",
		msg: UserMessage{
			Message: "Database was busy with conflicting operations",
			Action:  "Please try again",
			Code:    "DB006",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
//
// Known sentinels are matched first with errors.Is, then the error text is
// searched case-insensitively for known driver patterns. For CSV syntax errors
// Detail carries the parser's message verbatim so the user can find the line.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, te := range typedErrors {
		if errors.Is(err, te.target) {
			msg := te.msg
			var ie *IngestError
			if errors.As(err, &ie) && ie.Kind == KindParseError {
				msg.Detail = ie.Message
			} else if te.detail {
				msg.Detail = err.Error()
			}
			return msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError renders err as "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	if msg.Detail != "" {
		return fmt.Sprintf("%s: %s (Code: %s). %s", msg.Message, msg.Detail, msg.Code, msg.Action)
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}
